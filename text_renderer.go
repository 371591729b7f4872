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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// A TextRenderer converts parsed documents into plain text
// suitable for a terminal.
type TextRenderer struct {
	// Width is the column at which paragraphs are wrapped.
	// If Width is zero or negative, paragraphs are not wrapped.
	Width int
}

// Render writes the given document to the given writer as plain text.
func (r *TextRenderer) Render(w io.Writer, doc *Document) error {
	text := r.blocks(doc.Children, r.Width)
	if len(doc.Footnotes) > 0 {
		text += "\n\n" + r.blocks(doc.Footnotes, r.Width)
	}
	if text != "" {
		text += "\n"
	}
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("render markdown to text: %w", err)
	}
	return nil
}

// blocks renders a sequence of blocks separated by blank lines.
func (r *TextRenderer) blocks(nodes []*Node, width int) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if s := r.block(n, width); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (r *TextRenderer) block(n *Node, width int) string {
	switch n.Kind {
	case KindParagraph, KindDefinitionTerm:
		return wrap(inlineText(n.Children), width)
	case KindHeading:
		text := inlineText(n.Children)
		switch n.Level {
		case 1, 2:
			underline := "="
			if n.Level == 2 {
				underline = "-"
			}
			return text + "\n" + strings.Repeat(underline, max(ansi.PrintableRuneWidth(text), 3))
		default:
			return strings.Repeat("#", n.Level) + " " + text
		}
	case KindCodeBlock:
		return indent.String(strings.TrimSuffix(n.Literal, "\n"), 4)
	case KindHTMLBlock:
		return strings.TrimRight(n.Literal, "\n")
	case KindThematicBreak:
		return strings.Repeat("-", max(min(width, 40), 3))
	case KindBlockquote:
		return prefixLines(r.blocks(n.Children, width-2), "> ")
	case KindAdmonition:
		title := n.Title
		if n.Icon != "" {
			title = n.Icon + " " + title
		} else {
			title = strings.ToUpper(n.Admonition.String())
		}
		return prefixLines(title+"\n"+r.blocks(n.Children, width-2), "| ")
	case KindList:
		items := make([]string, 0, len(n.Children))
		for i, item := range n.Children {
			marker := "- "
			if n.Ordered {
				marker = strconv.Itoa(n.Start+i) + n.Marker + " "
			}
			body := r.blocks(item.Children, width-len(marker))
			if body == "" {
				items = append(items, strings.TrimRight(marker, " "))
				continue
			}
			body = indent.String(body, uint(len(marker)))
			items = append(items, marker+body[len(marker):])
		}
		sep := "\n"
		if !n.Tight {
			sep = "\n\n"
		}
		return strings.Join(items, sep)
	case KindDefinitionList:
		parts := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			if c.Kind == KindDefinitionDescription {
				parts = append(parts, indent.String(r.blocks(c.Children, width-4), 4))
			} else {
				parts = append(parts, r.block(c, width))
			}
		}
		return strings.Join(parts, "\n")
	case KindTable:
		return table(n)
	case KindTabGroup:
		parts := make([]string, 0, len(n.Children))
		for _, item := range n.Children {
			parts = append(parts, "["+item.Title+"]\n"+r.blocks(item.Children, width))
		}
		return strings.Join(parts, "\n\n")
	case KindSlideDeck:
		parts := make([]string, 0, len(n.Children))
		for _, slide := range n.Children {
			parts = append(parts, r.blocks(slide.Children, width))
		}
		return strings.Join(parts, "\n\n---\n\n")
	case KindFootnoteDefinition:
		body := r.blocks(n.Children, width-4)
		return "[^" + n.Label + "]: " + strings.TrimLeft(indent.String(body, 4), " ")
	default:
		return r.blocks(n.Children, width)
	}
}

// inlineText flattens inline nodes into plain text.
func inlineText(nodes []*Node) string {
	sb := new(strings.Builder)
	for _, n := range nodes {
		switch n.Kind {
		case KindText, KindCodeSpan:
			sb.WriteString(n.Literal)
		case KindSoftBreak:
			sb.WriteString(" ")
		case KindHardBreak:
			sb.WriteString("\n")
		case KindMention:
			sb.WriteString("@" + n.Username)
		case KindTaskCheckbox:
			if n.Checked {
				sb.WriteString("[x]")
			} else {
				sb.WriteString("[ ]")
			}
		case KindFootnoteReference:
			sb.WriteString("[^" + n.Label + "]")
		case KindLink:
			text := inlineText(n.Children)
			sb.WriteString(text)
			if dest := strings.TrimPrefix(n.Destination, "mailto:"); dest != text {
				sb.WriteString(" (" + n.Destination + ")")
			}
		case KindInlineHTML:
		default:
			sb.WriteString(inlineText(n.Children))
		}
	}
	return sb.String()
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}

func prefixLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(prefix+line, " ")
	}
	return strings.Join(lines, "\n")
}

// table renders a table with padded columns.
func table(n *Node) string {
	var rows [][]string
	var widths []int
	for _, row := range n.Children {
		cells := make([]string, len(row.Children))
		for i, cell := range row.Children {
			cells[i] = inlineText(cell.Children)
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], ansi.PrintableRuneWidth(cells[i]))
		}
		rows = append(rows, cells)
	}
	sb := new(strings.Builder)
	for i, cells := range rows {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, cell := range cells {
			if j > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(cell)
			if j < len(cells)-1 {
				sb.WriteString(strings.Repeat(" ", widths[j]-ansi.PrintableRuneWidth(cell)))
			}
		}
		if i == 0 && len(n.Children) > 0 && n.Children[0].Header {
			sb.WriteString("\n")
			for j, w := range widths {
				if j > 0 {
					sb.WriteString("-+-")
				}
				sb.WriteString(strings.Repeat("-", w))
			}
		}
	}
	return sb.String()
}
