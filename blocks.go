// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package marco

import (
	"github.com/Ranrar/Marco-sub007/grammar"
)

// blockStart tries to recognize a block at the start of in.
// On success, it returns the input after the block
// and the node to append, which is nil for blocks with no visible node
// such as blank lines and link reference definitions.
type blockStart func(p *parser, in grammar.Input, depth int) (rest grammar.Input, node *Node, ok bool)

// blockStarts is the list of block recognizers in priority order.
// It is assigned in init because the container rules recurse into parseBlocks.
var blockStarts []blockStart

func init() {
	blockStarts = []blockStart{
		// Blank lines.
		func(p *parser, in grammar.Input, depth int) (grammar.Input, *Node, bool) {
			rest, _, ok := grammar.ParseBlankLines(in)
			return rest, nil, ok
		},

		// HTML block.
		func(p *parser, in grammar.Input, depth int) (grammar.Input, *Node, bool) {
			rest, hb, ok := grammar.ParseHTMLBlock(in)
			if !ok {
				return in, nil, false
			}
			return rest, &Node{
				Kind:    KindHTMLBlock,
				Span:    hb.Content.TrimRight().Span(),
				Literal: hb.Content.String(),
			}, true
		},

		// ATX heading.
		func(p *parser, in grammar.Input, depth int) (grammar.Input, *Node, bool) {
			rest, h, ok := grammar.ParseATXHeading(in)
			if !ok {
				return in, nil, false
			}
			return rest, p.heading(h.Level, h.Content, depth), true
		},

		// Fenced code block.
		func(p *parser, in grammar.Input, depth int) (grammar.Input, *Node, bool) {
			rest, fc, ok := grammar.ParseFencedCode(in)
			if !ok {
				return in, nil, false
			}
			return rest, &Node{
				Kind:    KindCodeBlock,
				Span:    in.Until(rest).TrimRight().Span(),
				Literal: fc.Code,
				Info:    grammar.UnescapeString(fc.Info.String()),
				Marker:  fc.Fence,
			}, true
		},

		// Thematic break.
		func(p *parser, in grammar.Input, depth int) (grammar.Input, *Node, bool) {
			rest, tb, ok := grammar.ParseThematicBreak(in)
			if !ok {
				return in, nil, false
			}
			return rest, &Node{
				Kind:   KindThematicBreak,
				Span:   tb.Line.TrimRight().Span(),
				Marker: string(tb.Marker),
			}, true
		},

		// Block quote.
		func(p *parser, in grammar.Input, depth int) (grammar.Input, *Node, bool) {
			rest, bq, ok := grammar.ParseBlockQuote(in)
			if !ok {
				return in, nil, false
			}
			return rest, &Node{
				Kind:     KindBlockquote,
				Span:     in.Until(rest).TrimRight().Span(),
				Children: p.parseBlocks(grammar.NewFragment(bq.Lines), depth+1),
			}, true
		},

		// Indented code block.
		func(p *parser, in grammar.Input, depth int) (grammar.Input, *Node, bool) {
			rest, ic, ok := grammar.ParseIndentedCode(in)
			if !ok {
				return in, nil, false
			}
			return rest, &Node{
				Kind:    KindCodeBlock,
				Span:    ic.Content.TrimRight().Span(),
				Literal: ic.Code,
			}, true
		},

		// Tab group.
		func(p *parser, in grammar.Input, depth int) (grammar.Input, *Node, bool) {
			rest, tb, ok := grammar.ParseTabBlock(in)
			if !ok {
				return in, nil, false
			}
			group := &Node{
				Kind: KindTabGroup,
				Span: in.Until(rest).TrimRight().Span(),
			}
			for _, item := range tb.Items {
				group.Children = append(group.Children, &Node{
					Kind:     KindTabItem,
					Span:     item.Header.Span().Union(item.Content.TrimRight().Span()),
					Title:    item.Title.String(),
					HasTitle: true,
					Children: p.parseBlocks(item.Content, depth+1),
				})
			}
			return rest, group, true
		},

		// Slide deck.
		func(p *parser, in grammar.Input, depth int) (grammar.Input, *Node, bool) {
			rest, sd, ok := grammar.ParseSlideDeck(in)
			if !ok {
				return in, nil, false
			}
			deck := &Node{
				Kind:  KindSlideDeck,
				Span:  in.Until(rest).TrimRight().Span(),
				Timer: sd.Timer,
			}
			for _, slide := range sd.Slides {
				deck.Children = append(deck.Children, &Node{
					Kind:     KindSlide,
					Span:     slide.Content.TrimSpace().Span(),
					Vertical: slide.Vertical,
					Children: p.parseBlocks(slide.Content, depth+1),
				})
			}
			return rest, deck, true
		},

		// List.
		func(p *parser, in grammar.Input, depth int) (grammar.Input, *Node, bool) {
			rest, l, ok := grammar.ParseList(in)
			if !ok {
				return in, nil, false
			}
			return rest, p.list(in.Until(rest), l, depth), true
		},

		// Footnote definition.
		func(p *parser, in grammar.Input, depth int) (grammar.Input, *Node, bool) {
			rest, fd, ok := grammar.ParseFootnoteDefinition(in)
			if !ok {
				return in, nil, false
			}
			return rest, &Node{
				Kind:     KindFootnoteDefinition,
				Span:     in.Until(rest).TrimRight().Span(),
				Label:    fd.Label.String(),
				Children: p.parseBlocks(grammar.NewFragment(fd.Lines), depth+1),
			}, true
		},

		// Table.
		func(p *parser, in grammar.Input, depth int) (grammar.Input, *Node, bool) {
			rest, t, ok := grammar.ParseTable(in)
			if !ok {
				return in, nil, false
			}
			return rest, p.table(in.Until(rest), t, depth), true
		},

		// Table without a header row.
		func(p *parser, in grammar.Input, depth int) (grammar.Input, *Node, bool) {
			rest, t, ok := grammar.ParseHeaderlessTable(in)
			if !ok {
				return in, nil, false
			}
			return rest, p.table(in.Until(rest), t, depth), true
		},

		// Definition list.
		func(p *parser, in grammar.Input, depth int) (grammar.Input, *Node, bool) {
			rest, dl, ok := grammar.ParseDefinitionList(in)
			if !ok {
				return in, nil, false
			}
			return rest, p.definitionList(in.Until(rest), dl, depth), true
		},

		// Setext heading.
		func(p *parser, in grammar.Input, depth int) (grammar.Input, *Node, bool) {
			rest, h, ok := grammar.ParseSetextHeading(in)
			if !ok {
				return in, nil, false
			}
			return rest, p.heading(h.Level, h.Content, depth), true
		},

		// Link reference definition.
		func(p *parser, in grammar.Input, depth int) (grammar.Input, *Node, bool) {
			rest, def, ok := grammar.ParseLinkReferenceDefinition(in)
			if !ok {
				return in, nil, false
			}
			if !p.refs.Define(def.Label.String(), LinkDefinition{
				Destination:  def.Destination,
				Title:        def.Title,
				TitlePresent: def.HasTitle,
			}) {
				return in, nil, false
			}
			return rest, nil, true
		},

		// Paragraph.
		func(p *parser, in grammar.Input, depth int) (grammar.Input, *Node, bool) {
			rest, para, ok := grammar.ParseParagraph(in)
			if !ok {
				return in, nil, false
			}
			return rest, &Node{
				Kind:     KindParagraph,
				Span:     para.Content.Span(),
				Children: p.parseInlines(para.Content, depth),
			}, true
		},
	}
}

// parseBlocks parses a document or a container body into block nodes.
// depth is the container nesting level of in.
func (p *parser) parseBlocks(in grammar.Input, depth int) []*Node {
	if depth > p.maxDepth {
		return p.failClosed(in)
	}
	var nodes []*Node
	for !in.IsEmpty() {
		rest, node, ok := p.parseBlock(in, depth)
		if !ok || rest.Len() >= in.Len() {
			rest, node = p.skipOne(in)
		}
		if node != nil {
			nodes = append(nodes, node)
		}
		in = rest
	}
	return nodes
}

func (p *parser) parseBlock(in grammar.Input, depth int) (grammar.Input, *Node, bool) {
	for _, start := range blockStarts {
		if rest, node, ok := start(p, in, depth); ok && rest.Len() < in.Len() {
			return rest, node, true
		}
	}
	return in, nil, false
}

func (p *parser) heading(level int, content grammar.Input, depth int) *Node {
	return &Node{
		Kind:     KindHeading,
		Span:     content.Span(),
		Level:    level,
		Literal:  content.String(),
		Children: p.parseInlines(content, depth),
	}
}

func (p *parser) list(source grammar.Input, l grammar.List, depth int) *Node {
	list := &Node{
		Kind:    KindList,
		Span:    source.TrimRight().Span(),
		Ordered: l.Ordered,
		Start:   l.Start,
		Marker:  string(l.Delimiter),
		Tight:   !l.BlankBetweenItems,
	}
	for _, item := range l.Items {
		child := &Node{
			Kind:     KindListItem,
			Span:     Span{Start: item.Marker.Pos(), End: item.Source.TrimRight().EndPos()},
			Marker:   item.Marker.String(),
			Start:    item.Number,
			Children: p.parseBlocks(grammar.NewFragment(item.Lines), depth+1),
		}
		if hasBlankBetween(child.Children) {
			list.Tight = false
		}
		list.Children = append(list.Children, child)
	}
	return list
}

// hasBlankBetween reports whether any two adjacent nodes
// are separated by at least one source line.
func hasBlankBetween(nodes []*Node) bool {
	for i := 1; i < len(nodes); i++ {
		prev, next := nodes[i-1].Span, nodes[i].Span
		if !prev.IsValid() || !next.IsValid() {
			continue
		}
		if next.Start.Line > lastLine(prev)+1 {
			return true
		}
	}
	return false
}

// lastLine returns the line number of the last byte in span.
func lastLine(span Span) int {
	if span.End.Column == 1 && span.End.Line > span.Start.Line {
		return span.End.Line - 1
	}
	return span.End.Line
}

func (p *parser) table(source grammar.Input, t grammar.Table, depth int) *Node {
	table := &Node{
		Kind: KindTable,
		Span: source.TrimRight().Span(),
	}
	if t.Header != nil {
		table.Children = append(table.Children, p.tableRow(*t.Header, t.Align, true, depth))
	}
	for _, row := range t.Rows {
		table.Children = append(table.Children, p.tableRow(row, t.Align, false, depth))
	}
	return table
}

// tableRow converts a row, padding or truncating it to the number of columns.
func (p *parser) tableRow(row grammar.TableRow, align []Alignment, header bool, depth int) *Node {
	n := &Node{
		Kind:   KindTableRow,
		Span:   row.Line.TrimRight().Span(),
		Header: header,
	}
	for i, a := range align {
		cell := &Node{
			Kind:   KindTableCell,
			Header: header,
			Align:  a,
		}
		if i < len(row.Cells) {
			cell.Span = row.Cells[i].Span()
			cell.Children = p.parseInlines(row.Cells[i], depth)
		}
		n.Children = append(n.Children, cell)
	}
	if len(row.Cells) > len(align) {
		p.log.Debug("dropping extra table cells", "pos", row.Line.Pos(), "cells", len(row.Cells), "columns", len(align))
	}
	return n
}

func (p *parser) definitionList(source grammar.Input, dl grammar.DefinitionList, depth int) *Node {
	list := &Node{
		Kind: KindDefinitionList,
		Span: source.TrimRight().Span(),
	}
	for _, item := range dl.Items {
		list.Children = append(list.Children, &Node{
			Kind:     KindDefinitionTerm,
			Span:     item.Term.Span(),
			Children: p.parseInlines(item.Term, depth),
		})
		for _, desc := range item.Descriptions {
			body := grammar.NewFragment(desc.Lines)
			list.Children = append(list.Children, &Node{
				Kind:     KindDefinitionDescription,
				Span:     desc.Marker.Span().Union(body.TrimRight().Span()),
				Children: p.parseBlocks(body, depth+1),
			})
		}
	}
	return list
}
