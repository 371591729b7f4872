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

package grammar

import (
	"strconv"
	"strings"
)

// BlockQuote is a [block quote] with its markers removed.
// The body is meant to be re-parsed with [NewFragment].
//
// [block quote]: https://spec.commonmark.org/0.30/#block-quotes
type BlockQuote struct {
	Lines []FragmentLine
	// Lazy is the number of lazy continuation lines in the body.
	Lazy int
}

// ParseBlockQuote recognizes a block quote.
// Lazy continuation lines that would read as a setext heading underline
// get a backslash inserted so that the re-parse keeps them as paragraph text.
func ParseBlockQuote(in Input) (rest Input, bq BlockQuote, ok bool) {
	if !hasBlockQuoteMarker(in.text) {
		return in, bq, false
	}
	var fence fenceTracker
	continuable := false
	cur := in
	for !cur.IsEmpty() {
		line, next := cur.SplitLine()
		s := line.text
		if hasBlockQuoteMarker(s) {
			i := upTo3Spaces(s)
			k := i + 1
			insert := ""
			if k < len(s) {
				switch s[k] {
				case ' ':
					k++
				case '\t':
					// The tab after '>' counts as one column of the marker;
					// the rest of its width stays with the content.
					k++
					if w := tabStopSize - (i+1)%tabStopSize; w > 1 {
						insert = strings.Repeat(" ", w-1)
					}
				}
			}
			content := line.Advance(k)
			bq.Lines = append(bq.Lines, FragmentLine{Insert: insert, Content: content})
			wasFence := fence.inFence()
			fence.update(content.text)
			continuable = !wasFence && !fence.inFence() && isParagraphText(content.text)
			cur = next
			continue
		}
		if IsBlank(s) || !continuable || InterruptsParagraph(s) {
			break
		}
		if IsLazyUnderline(s) {
			n := 0
			for n < len(s) && isSpaceOrTab(s[n]) {
				n++
			}
			bq.Lines = append(bq.Lines, FragmentLine{Insert: `\`, Content: line.Advance(n)})
		} else {
			bq.Lines = append(bq.Lines, FragmentLine{Content: line})
		}
		bq.Lazy++
		cur = next
	}
	return cur, bq, true
}

func hasBlockQuoteMarker(line string) bool {
	i := upTo3Spaces(line)
	return i >= 0 && i < len(line) && line[i] == '>'
}

// isParagraphText reports whether a line inside a container
// could be paragraph text that a lazy line continues.
func isParagraphText(line string) bool {
	if IsBlank(line) {
		return false
	}
	if cols, _ := indentation(line); cols >= codeBlockIndentLimit {
		return false
	}
	in := NewInput(line)
	if _, _, ok := ParseATXHeading(in); ok {
		return false
	}
	if _, _, ok := ParseThematicBreak(in); ok {
		return false
	}
	if HTMLBlockStart(line) > 0 {
		return false
	}
	return true
}

// listMarker describes the [list marker] at the start of a line.
//
// [list marker]: https://spec.commonmark.org/0.30/#list-marker
type listMarker struct {
	indent   int  // bytes before the marker
	end      int  // byte just past the marker
	ordered  bool // whether the marker is a number
	number   int
	delim    byte // bullet character or '.'/')'
	blankRem bool // whether the rest of the line is blank
}

func parseListMarker(line string) (m listMarker, ok bool) {
	s := trimLineEnding(line)
	i := upTo3Spaces(s)
	if i < 0 || i >= len(s) {
		return m, false
	}
	m.indent = i
	switch c := s[i]; {
	case c == '-' || c == '+' || c == '*':
		m.delim = c
		m.end = i + 1
	case isASCIIDigit(c):
		j := i
		for j < len(s) && isASCIIDigit(s[j]) {
			j++
		}
		if j-i > 9 || j >= len(s) || (s[j] != '.' && s[j] != ')') {
			return m, false
		}
		n, err := strconv.Atoi(s[i:j])
		if err != nil {
			return m, false
		}
		m.ordered = true
		m.number = n
		m.delim = s[j]
		m.end = j + 1
	default:
		return m, false
	}
	if m.end < len(s) && !isSpaceOrTab(s[m.end]) {
		return m, false
	}
	m.blankRem = IsBlank(s[m.end:])
	return m, true
}

// canInterruptParagraph implements the rule that
// only non-empty items, and ordered items starting at 1,
// may interrupt a paragraph.
func (m listMarker) canInterruptParagraph(line string) bool {
	return !m.blankRem && (!m.ordered || m.number == 1)
}

func (m listMarker) sameList(other listMarker) bool {
	return m.ordered == other.ordered && m.delim == other.delim
}

// contentColumns returns the indentation required for lines
// to continue the item, and the number of bytes of the first line
// to strip before its content.
func (m listMarker) content(line string) (width, n int, insert string) {
	s := trimLineEnding(line)
	if m.blankRem {
		return m.end + 1, len(s), ""
	}
	cols, spaceBytes := indentation(s[m.end:])
	if cols > codeBlockIndentLimit {
		// The content starts with indented code:
		// the marker is followed by a single column of space.
		n, insert = stripColumns(s[m.end:], 1)
		return m.end + 1, m.end + n, insert
	}
	return m.end + cols, m.end + spaceBytes, ""
}

// ListItem is one item of a [List].
type ListItem struct {
	// Marker is the bullet or number with its delimiter.
	Marker Input
	Number int
	// Lines is the item body, meant to be re-parsed with [NewFragment].
	Lines []FragmentLine
	// Source is the raw text of the item.
	Source Input
}

// List is a [list] of items of the same type.
//
// [list]: https://spec.commonmark.org/0.30/#lists
type List struct {
	Ordered bool
	Start   int
	// Delimiter is the bullet character for bullet lists
	// or '.' or ')' for ordered lists.
	Delimiter byte
	Items     []ListItem
	// BlankBetweenItems reports whether any two items are separated by a blank line.
	BlankBetweenItems bool
}

// ParseList recognizes a list and the extent of each item.
func ParseList(in Input) (rest Input, list List, ok bool) {
	first, _ := in.SplitLine()
	if _, _, isBreak := ParseThematicBreak(first); isBreak {
		return in, list, false
	}
	m, ok := parseListMarker(first.text)
	if !ok {
		return in, list, false
	}
	list.Ordered = m.ordered
	list.Start = m.number
	list.Delimiter = m.delim

	cur := in
	for {
		item, next := parseListItem(cur, m)
		list.Items = append(list.Items, item)
		cur = next

		afterBlank, blanks, _ := ParseBlankLines(cur)
		if afterBlank.IsEmpty() {
			break
		}
		line, _ := afterBlank.SplitLine()
		if _, _, isBreak := ParseThematicBreak(line); isBreak {
			break
		}
		nm, isItem := parseListMarker(line.text)
		if !isItem || !nm.sameList(m) {
			break
		}
		if blanks > 0 {
			list.BlankBetweenItems = true
		}
		m = nm
		cur = afterBlank
	}
	return cur, list, true
}

// parseListItem consumes one item starting at in, whose first line has marker m.
func parseListItem(in Input, m listMarker) (ListItem, Input) {
	first, cur := in.SplitLine()
	width, n, insert := m.content(first.text)
	item := ListItem{
		Marker: first.Slice(m.indent, m.end),
		Number: m.number,
	}
	var fence fenceTracker
	firstContent := first.Advance(min(n, len(trimLineEnding(first.text))))
	item.Lines = append(item.Lines, FragmentLine{Insert: insert, Content: firstContent})
	fence.update(firstContent.text)
	continuable := isParagraphText(firstContent.text)
	emptyStart := m.blankRem

	var pending []FragmentLine
	end := cur
	for !cur.IsEmpty() {
		line, next := cur.SplitLine()
		if IsBlank(line.text) {
			if emptyStart && len(item.Lines) == 1 {
				// An item can begin with at most one blank line.
				break
			}
			k, _ := stripColumns(line.text, width)
			pending = append(pending, FragmentLine{Content: line.Advance(min(k, len(trimLineEnding(line.text))))})
			cur = next
			continuable = false
			continue
		}
		if cols, _ := indentation(line.text); cols >= width {
			item.Lines = append(item.Lines, pending...)
			pending = pending[:0]
			k, ins := stripColumns(line.text, width)
			content := line.Advance(k)
			item.Lines = append(item.Lines, FragmentLine{Insert: ins, Content: content})
			wasFence := fence.inFence()
			fence.update(content.text)
			continuable = !wasFence && !fence.inFence() && isParagraphText(content.text)
			cur = next
			end = cur
			continue
		}
		if len(pending) > 0 || !continuable || InterruptsParagraph(line.text) {
			break
		}
		if _, isItem := parseListMarker(line.text); isItem {
			break
		}
		item.Lines = append(item.Lines, FragmentLine{Content: line})
		cur = next
		end = cur
	}
	item.Source = in.Until(end).TrimLineEnding()
	return item, end
}

// FootnoteDefinition is a footnote body introduced by "[^label]:".
type FootnoteDefinition struct {
	Label Input
	Lines []FragmentLine
}

// ParseFootnoteDefinition recognizes a footnote definition.
// Continuation lines are indented by four columns;
// unindented paragraph text continues lazily.
func ParseFootnoteDefinition(in Input) (rest Input, fd FootnoteDefinition, ok bool) {
	first, cur := in.SplitLine()
	s := trimLineEnding(first.text)
	i := upTo3Spaces(s)
	if i < 0 || !strings.HasPrefix(s[i:], "[^") {
		return in, fd, false
	}
	labelStart := i + 2
	j := labelStart
	for j < len(s) && s[j] != ']' {
		if isSpaceOrTab(s[j]) || s[j] == '[' {
			return in, fd, false
		}
		j++
	}
	if j == labelStart || j+1 >= len(s) || s[j+1] != ':' {
		return in, fd, false
	}
	fd.Label = first.Slice(labelStart, j)
	k := j + 2
	for k < len(s) && isSpaceOrTab(s[k]) {
		k++
	}
	fd.Lines = append(fd.Lines, FragmentLine{Content: first.Advance(k)})
	continuable := !IsBlank(s[k:])

	var pending []FragmentLine
	end := cur
	for !cur.IsEmpty() {
		line, next := cur.SplitLine()
		if IsBlank(line.text) {
			pending = append(pending, FragmentLine{Content: line.Advance(len(trimLineEnding(line.text)))})
			cur = next
			continuable = false
			continue
		}
		if cols, _ := indentation(line.text); cols >= codeBlockIndentLimit {
			fd.Lines = append(fd.Lines, pending...)
			pending = pending[:0]
			n, insert := stripColumns(line.text, codeBlockIndentLimit)
			content := line.Advance(n)
			fd.Lines = append(fd.Lines, FragmentLine{Insert: insert, Content: content})
			continuable = isParagraphText(content.text)
			cur = next
			end = cur
			continue
		}
		if len(pending) > 0 || !continuable || InterruptsParagraph(line.text) || isFootnoteDefinitionStart(line.text) {
			break
		}
		fd.Lines = append(fd.Lines, FragmentLine{Content: line})
		cur = next
		end = cur
	}
	return end, fd, true
}

func isFootnoteDefinitionStart(line string) bool {
	_, _, ok := ParseFootnoteDefinition(NewInput(trimLineEnding(line)))
	return ok
}

// DefinitionItem is one term of a [DefinitionList]
// with the descriptions that follow it.
type DefinitionItem struct {
	Term         Input
	Descriptions []Description
}

// Description is the body of one ": " line and its continuation lines.
type Description struct {
	Marker Input
	Lines  []FragmentLine
}

// DefinitionList is a sequence of terms, each followed by
// one or more lines starting with ": ".
type DefinitionList struct {
	Items []DefinitionItem
}

// ParseDefinitionList recognizes a definition list:
//
//	Term
//	: Definition
//
// A description marker must be a single ':' followed by whitespace,
// and it must follow a term.
func ParseDefinitionList(in Input) (rest Input, dl DefinitionList, ok bool) {
	cur := in
	for {
		item, next, found := parseDefinitionItem(cur)
		if !found {
			break
		}
		dl.Items = append(dl.Items, item)
		cur = next
		afterBlank, _, _ := ParseBlankLines(cur)
		if _, _, more := parseDefinitionItem(afterBlank); !more {
			break
		}
		cur = afterBlank
	}
	if len(dl.Items) == 0 {
		return in, dl, false
	}
	return cur, dl, true
}

func parseDefinitionItem(in Input) (item DefinitionItem, rest Input, ok bool) {
	termLine, cur := in.SplitLine()
	ts := trimLineEnding(termLine.text)
	if IsBlank(ts) || InterruptsParagraph(ts) || descriptionMarker(ts) >= 0 {
		return item, in, false
	}
	if cols, _ := indentation(ts); cols >= codeBlockIndentLimit {
		return item, in, false
	}
	item.Term = termLine.TrimSpace()
	for !cur.IsEmpty() {
		line, next := cur.SplitLine()
		k := descriptionMarker(line.text)
		if k < 0 {
			break
		}
		desc, after := parseDescription(line, next, k)
		item.Descriptions = append(item.Descriptions, desc)
		cur = after
	}
	if len(item.Descriptions) == 0 {
		return item, in, false
	}
	return item, cur, true
}

// descriptionMarker returns the byte offset of the description content
// if line starts with a definition marker, or -1.
func descriptionMarker(line string) int {
	s := trimLineEnding(line)
	i := upTo3Spaces(s)
	if i < 0 || i+1 >= len(s) || s[i] != ':' || !isSpaceOrTab(s[i+1]) {
		return -1
	}
	k := i + 1
	for k < len(s) && isSpaceOrTab(s[k]) {
		k++
	}
	if k >= len(s) {
		return -1
	}
	return k
}

func parseDescription(line, cur Input, k int) (Description, Input) {
	desc := Description{
		Marker: line.Slice(upTo3Spaces(line.text), k).TrimSpace(),
		Lines:  []FragmentLine{{Content: line.Advance(k)}},
	}
	width := k
	continuable := true
	var pending []FragmentLine
	end := cur
	for !cur.IsEmpty() {
		l, next := cur.SplitLine()
		if IsBlank(l.text) {
			pending = append(pending, FragmentLine{Content: l.Advance(len(trimLineEnding(l.text)))})
			continuable = false
			cur = next
			continue
		}
		if descriptionMarker(l.text) >= 0 {
			break
		}
		if cols, _ := indentation(l.text); cols >= width {
			desc.Lines = append(desc.Lines, pending...)
			pending = pending[:0]
			n, insert := stripColumns(l.text, width)
			content := l.Advance(n)
			desc.Lines = append(desc.Lines, FragmentLine{Insert: insert, Content: content})
			continuable = isParagraphText(content.text)
			cur = next
			end = cur
			continue
		}
		if len(pending) > 0 || !continuable || InterruptsParagraph(l.text) {
			break
		}
		desc.Lines = append(desc.Lines, FragmentLine{Content: l})
		cur = next
		end = cur
	}
	return desc, end
}

// TabItem is one "@tab Title" panel of a [TabBlock].
type TabItem struct {
	Header  Input
	Title   Input
	Content Input
}

// TabBlock is a tab group:
//
//	:::tab
//	@tab First
//	...
//	@tab Second
//	...
//	:::
//
// Markers inside fenced code are ignored.
type TabBlock struct {
	Items []TabItem
}

// ParseTabBlock recognizes a tab group.
// A group without a closing ":::" line or without any "@tab" header is not a tab group.
func ParseTabBlock(in Input) (rest Input, tb TabBlock, ok bool) {
	first, cur := in.SplitLine()
	s := trimLineEnding(first.text)
	i := upTo3Spaces(s)
	if i < 0 || !strings.HasPrefix(s[i:], ":::tab") {
		return in, tb, false
	}
	if after := s[i+len(":::tab"):]; after != "" && !isSpaceOrTab(after[0]) {
		return in, tb, false
	}

	var fence fenceTracker
	var current *TabItem
	var contentStart Input
	for !cur.IsEmpty() {
		line, next := cur.SplitLine()
		ls := trimLineEnding(line.text)
		fence.update(ls)
		if !fence.inFence() {
			j := upTo3Spaces(ls)
			if j >= 0 {
				marker := ls[j:]
				switch {
				case strings.HasPrefix(marker, ":::") && IsBlank(marker[3:]):
					if current != nil {
						current.Content = contentStart.Until(cur)
						tb.Items = append(tb.Items, *current)
					}
					if len(tb.Items) == 0 {
						return in, TabBlock{}, false
					}
					return next, tb, true
				case strings.HasPrefix(marker, "@tab") && len(marker) > 4 && isSpaceOrTab(marker[4]):
					title := line.Slice(j+4, len(ls)).TrimSpace()
					if title.IsEmpty() {
						return in, TabBlock{}, false
					}
					if current != nil {
						current.Content = contentStart.Until(cur)
						tb.Items = append(tb.Items, *current)
					}
					current = &TabItem{Header: line.TrimLineEnding(), Title: title}
					contentStart = next
				}
			}
		}
		cur = next
	}
	return in, TabBlock{}, false
}

// Slide is one slide of a [SlideDeck].
type Slide struct {
	Content Input
	// Vertical reports whether the slide was introduced by a "--" separator.
	Vertical bool
}

// SlideDeck is a slide deck:
//
//	@slidestart:t5
//	First
//	---
//	Second
//	--
//	Below second
//	@slideend
//
// The optional ":tN" suffix sets an auto-advance timer of N seconds.
type SlideDeck struct {
	Timer  int
	Slides []Slide
}

// ParseSlideDeck recognizes a slide deck.
// A deck without a closing "@slideend" line is not a deck.
func ParseSlideDeck(in Input) (rest Input, deck SlideDeck, ok bool) {
	first, cur := in.SplitLine()
	s := trimLineEnding(first.text)
	i := upTo3Spaces(s)
	if i < 0 || !strings.HasPrefix(s[i:], "@slidestart") {
		return in, deck, false
	}
	after := s[i+len("@slidestart"):]
	if strings.HasPrefix(after, ":t") {
		j := 2
		for j < len(after) && isASCIIDigit(after[j]) {
			j++
		}
		secs, err := strconv.Atoi(after[2:j])
		if err != nil || secs <= 0 {
			return in, deck, false
		}
		deck.Timer = secs
		after = after[j:]
	}
	if !IsBlank(after) {
		return in, deck, false
	}

	var fence fenceTracker
	start := cur
	vertical := false
	for !cur.IsEmpty() {
		line, next := cur.SplitLine()
		ls := trimLineEnding(line.text)
		fence.update(ls)
		if !fence.inFence() {
			j := upTo3Spaces(ls)
			if j >= 0 {
				marker := strings.TrimSpace(ls[j:])
				switch marker {
				case "@slideend":
					deck.Slides = append(deck.Slides, Slide{Content: start.Until(cur), Vertical: vertical})
					return next, deck, true
				case "---", "--":
					deck.Slides = append(deck.Slides, Slide{Content: start.Until(cur), Vertical: vertical})
					vertical = marker == "--"
					start = next
				}
			}
		}
		cur = next
	}
	return in, SlideDeck{}, false
}
