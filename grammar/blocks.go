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

import "strings"

// ParseBlankLines consumes a run of blank lines.
// It reports the number of lines consumed.
func ParseBlankLines(in Input) (rest Input, n int, ok bool) {
	rest = in
	for !rest.IsEmpty() {
		line, next := rest.SplitLine()
		if !IsBlank(line.text) {
			break
		}
		rest = next
		n++
	}
	return rest, n, n > 0
}

// ATXHeading is an [ATX heading].
//
// [ATX heading]: https://spec.commonmark.org/0.30/#atx-headings
type ATXHeading struct {
	Level int
	// Content is the heading text
	// with surrounding whitespace and the closing sequence removed.
	Content Input
}

// ParseATXHeading recognizes an ATX heading line.
// A run of more than six '#' characters
// or a run not followed by whitespace or the end of the line
// is not a heading.
func ParseATXHeading(in Input) (rest Input, h ATXHeading, ok bool) {
	line, after := in.SplitLine()
	s := trimLineEnding(line.text)
	i := upTo3Spaces(s)
	if i < 0 {
		return in, h, false
	}
	level := 0
	for i+level < len(s) && s[i+level] == '#' {
		level++
	}
	if level < 1 || level > 6 {
		return in, h, false
	}
	i += level
	if i < len(s) && !isSpaceOrTab(s[i]) {
		return in, h, false
	}

	start := i
	for start < len(s) && isSpaceOrTab(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isSpaceOrTab(s[end-1]) {
		end--
	}
	// Optional closing sequence.
	j := end
	for j > start && s[j-1] == '#' {
		j--
	}
	if j < end && (j == start || isSpaceOrTab(s[j-1])) {
		end = j
		for end > start && isSpaceOrTab(s[end-1]) {
			end--
		}
	}
	return after, ATXHeading{Level: level, Content: line.Slice(start, end)}, true
}

// ThematicBreak is a [thematic break] line.
//
// [thematic break]: https://spec.commonmark.org/0.30/#thematic-breaks
type ThematicBreak struct {
	Marker byte
	Line   Input
}

// ParseThematicBreak recognizes three or more matching '-', '_', or '*' characters,
// optionally separated by spaces or tabs.
func ParseThematicBreak(in Input) (rest Input, tb ThematicBreak, ok bool) {
	line, after := in.SplitLine()
	s := trimLineEnding(line.text)
	i := upTo3Spaces(s)
	if i < 0 || i >= len(s) {
		return in, tb, false
	}
	c := s[i]
	if c != '-' && c != '_' && c != '*' {
		return in, tb, false
	}
	n := 0
	for ; i < len(s); i++ {
		switch {
		case s[i] == c:
			n++
		case isSpaceOrTab(s[i]):
		default:
			return in, tb, false
		}
	}
	if n < 3 {
		return in, tb, false
	}
	return after, ThematicBreak{Marker: c, Line: line.TrimLineEnding()}, true
}

// SetextHeading is a [setext heading].
//
// [setext heading]: https://spec.commonmark.org/0.30/#setext-headings
type SetextHeading struct {
	Level   int
	Content Input
}

// ParseSetextHeading recognizes paragraph text followed by an underline of '=' or '-'.
func ParseSetextHeading(in Input) (rest Input, h SetextHeading, ok bool) {
	first, cur := in.SplitLine()
	if IsBlank(first.text) {
		return in, h, false
	}
	if cols, _ := indentation(first.text); cols >= codeBlockIndentLimit {
		return in, h, false
	}
	for !cur.IsEmpty() {
		line, next := cur.SplitLine()
		if IsBlank(line.text) {
			break
		}
		if level := setextUnderlineLevel(line.text); level > 0 {
			return next, SetextHeading{
				Level:   level,
				Content: in.Until(cur).TrimSpace(),
			}, true
		}
		if InterruptsParagraph(line.text) {
			break
		}
		cur = next
	}
	return in, h, false
}

// setextUnderlineLevel returns 1 for a '=' underline, 2 for a '-' underline,
// or 0 if line is not a [setext heading underline].
//
// [setext heading underline]: https://spec.commonmark.org/0.30/#setext-heading-underline
func setextUnderlineLevel(line string) int {
	s := trimLineEnding(line)
	i := upTo3Spaces(s)
	if i < 0 || i >= len(s) {
		return 0
	}
	c := s[i]
	if c != '=' && c != '-' {
		return 0
	}
	for i < len(s) && s[i] == c {
		i++
	}
	for ; i < len(s); i++ {
		if !isSpaceOrTab(s[i]) {
			return 0
		}
	}
	if c == '=' {
		return 1
	}
	return 2
}

// IsLazyUnderline reports whether line would be read as a setext heading underline
// but is not a thematic break.
// Such lines must be escaped before they are re-parsed as lazy continuation text.
func IsLazyUnderline(line string) bool {
	if setextUnderlineLevel(line) == 0 {
		return false
	}
	_, _, isBreak := ParseThematicBreak(NewInput(line))
	return !isBreak
}

// FencedCode is a [fenced code block].
//
// [fenced code block]: https://spec.commonmark.org/0.30/#fenced-code-blocks
type FencedCode struct {
	// Fence is the opening code fence.
	Fence string
	// Info is the trimmed info string.
	Info Input
	// Code is the block content with the fence's indentation removed.
	Code string
	// Content is the raw source of the content lines.
	Content Input
	// Closed reports whether a closing fence was found.
	Closed bool
}

// ParseFencedCode recognizes a fenced code block.
// An unclosed fence runs to the end of the input.
func ParseFencedCode(in Input) (rest Input, fc FencedCode, ok bool) {
	line, cur := in.SplitLine()
	s := trimLineEnding(line.text)
	indent := upTo3Spaces(s)
	if indent < 0 || indent >= len(s) {
		return in, fc, false
	}
	c := s[indent]
	if c != '`' && c != '~' {
		return in, fc, false
	}
	n := 0
	for indent+n < len(s) && s[indent+n] == c {
		n++
	}
	if n < 3 {
		return in, fc, false
	}
	info := line.Slice(indent+n, len(s)).TrimSpace()
	if c == '`' && strings.IndexByte(info.text, '`') >= 0 {
		return in, fc, false
	}

	fc.Fence = s[indent : indent+n]
	fc.Info = info
	contentStart := cur
	contentEnd := cur
	code := new(strings.Builder)
	for !cur.IsEmpty() {
		l, next := cur.SplitLine()
		if isClosingFence(l.text, c, n) {
			fc.Closed = true
			cur = next
			break
		}
		k := 0
		for k < indent && k < len(l.text) && l.text[k] == ' ' {
			k++
		}
		code.WriteString(l.text[k:])
		cur = next
		contentEnd = cur
	}
	fc.Code = code.String()
	fc.Content = contentStart.Until(contentEnd)
	return cur, fc, true
}

func isClosingFence(line string, c byte, minLen int) bool {
	s := trimLineEnding(line)
	i := upTo3Spaces(s)
	if i < 0 {
		return false
	}
	n := 0
	for i < len(s) && s[i] == c {
		i++
		n++
	}
	if n < minLen {
		return false
	}
	for ; i < len(s); i++ {
		if !isSpaceOrTab(s[i]) {
			return false
		}
	}
	return true
}

// fenceOpening reports the fence character and length
// if line opens a code fence.
func fenceOpening(line string) (c byte, n int) {
	_, fc, ok := ParseFencedCode(NewInput(trimLineEnding(line)))
	if !ok {
		return 0, 0
	}
	return fc.Fence[0], len(fc.Fence)
}

// fenceTracker follows code fences across lines
// so that container scanners can ignore markers inside fenced code.
type fenceTracker struct {
	c byte
	n int
}

func (ft *fenceTracker) inFence() bool {
	return ft.n > 0
}

// update advances the tracker past line.
func (ft *fenceTracker) update(line string) {
	if ft.inFence() {
		if isClosingFence(line, ft.c, ft.n) {
			ft.c, ft.n = 0, 0
		}
		return
	}
	ft.c, ft.n = fenceOpening(line)
}

// IndentedCode is an [indented code block].
//
// [indented code block]: https://spec.commonmark.org/0.30/#indented-code-blocks
type IndentedCode struct {
	// Code is the block content with four columns of indentation removed.
	Code string
	// Content is the raw source of the block.
	Content Input
}

// ParseIndentedCode recognizes lines indented by four or more columns.
// Trailing blank lines are not part of the block.
func ParseIndentedCode(in Input) (rest Input, ic IndentedCode, ok bool) {
	first, _ := in.SplitLine()
	if cols, _ := indentation(first.text); IsBlank(first.text) || cols < codeBlockIndentLimit {
		return in, ic, false
	}
	code := new(strings.Builder)
	var pending []string
	cur, end := in, in
	for !cur.IsEmpty() {
		line, next := cur.SplitLine()
		if IsBlank(line.text) {
			n, insert := stripColumns(line.text, codeBlockIndentLimit)
			pending = append(pending, insert+line.text[n:])
			cur = next
			continue
		}
		if cols, _ := indentation(line.text); cols < codeBlockIndentLimit {
			break
		}
		for _, p := range pending {
			code.WriteString(p)
		}
		pending = pending[:0]
		n, insert := stripColumns(line.text, codeBlockIndentLimit)
		code.WriteString(insert)
		code.WriteString(line.text[n:])
		cur = next
		end = cur
	}
	ic.Code = code.String()
	ic.Content = in.Until(end)
	return end, ic, true
}

// Paragraph is a [paragraph].
//
// [paragraph]: https://spec.commonmark.org/0.30/#paragraphs
type Paragraph struct {
	// Content is the paragraph text with leading and trailing whitespace removed.
	Content Input
}

// ParseParagraph consumes non-blank lines
// until a blank line or a line that starts a block that may interrupt a paragraph.
func ParseParagraph(in Input) (rest Input, p Paragraph, ok bool) {
	first, cur := in.SplitLine()
	if IsBlank(first.text) {
		return in, p, false
	}
	for !cur.IsEmpty() {
		line, next := cur.SplitLine()
		if IsBlank(line.text) || InterruptsParagraph(line.text) {
			break
		}
		cur = next
	}
	return cur, Paragraph{Content: in.Until(cur).TrimSpace()}, true
}

// InterruptsParagraph reports whether line starts a block
// that can interrupt a paragraph.
// Such lines are never lazy continuation lines.
func InterruptsParagraph(line string) bool {
	in := NewInput(line)
	if _, _, ok := ParseATXHeading(in); ok {
		return true
	}
	if _, _, ok := ParseThematicBreak(in); ok {
		return true
	}
	if c, _ := fenceOpening(line); c != 0 {
		return true
	}
	s := trimLineEnding(line)
	if i := upTo3Spaces(s); i >= 0 && i < len(s) && s[i] == '>' {
		return true
	}
	if t := HTMLBlockStart(line); t > 0 && t < 7 {
		return true
	}
	if m, ok := parseListMarker(s); ok && m.canInterruptParagraph(s) {
		return true
	}
	return false
}
