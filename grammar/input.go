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

// Package grammar provides the stateless recognizers
// for the block and inline constructs of Marco-flavored Markdown.
//
// Every recognizer has the shape
//
//	func(in Input) (rest Input, result T, ok bool)
//
// On success, rest is the input that follows the match.
// On failure, rest is in unchanged and ok is false,
// so recognizers may be tried one after another in priority order.
package grammar

import (
	"fmt"
	"strings"
)

// Position is a location in a source document.
//
// Column is a byte offset within the line, not a character count.
// Callers that address text by code point (for example, a text widget)
// must convert columns before use.
type Position struct {
	// Line is the 1-based line number.
	Line int
	// Column is the 1-based byte offset within the line.
	Column int
	// Offset is the 0-based byte offset from the start of the document.
	Offset int
}

// IsValid reports whether p refers to a location.
// The zero Position is not valid.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

// Advance returns the position reached after consuming s starting at p.
// A match that ends exactly on a newline ends at column 1 of the next line.
func (p Position) Advance(s string) Position {
	n := strings.Count(s, "\n")
	if n == 0 {
		p.Column += len(s)
		p.Offset += len(s)
		return p
	}
	tail := s[strings.LastIndexByte(s, '\n')+1:]
	return Position{
		Line:   p.Line + n,
		Column: 1 + len(tail),
		Offset: p.Offset + len(s),
	}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open range of positions in a source document.
// The zero Span is used for nodes that have no source text.
type Span struct {
	Start Position
	End   Position
}

// IsValid reports whether span refers to source text.
func (span Span) IsValid() bool {
	return span.Start.IsValid() && span.End.IsValid() && span.Start.Offset <= span.End.Offset
}

// Len returns the number of bytes covered by the span.
func (span Span) Len() int {
	if !span.IsValid() {
		return 0
	}
	return span.End.Offset - span.Start.Offset
}

// Contains reports whether other lies entirely within span.
func (span Span) Contains(other Span) bool {
	return span.IsValid() && other.IsValid() &&
		span.Start.Offset <= other.Start.Offset &&
		other.End.Offset <= span.End.Offset
}

// Union returns the smallest span that covers both span and other.
// Invalid spans are ignored.
func (span Span) Union(other Span) Span {
	switch {
	case !span.IsValid():
		return other
	case !other.IsValid():
		return span
	}
	if other.Start.Offset < span.Start.Offset {
		span.Start = other.Start
	}
	if other.End.Offset > span.End.Offset {
		span.End = other.End
	}
	return span
}

func (span Span) String() string {
	if !span.IsValid() {
		return "-"
	}
	return span.Start.String() + "-" + span.End.String()
}

// Input is an immutable view into source text
// that knows the position of its first byte.
//
// Inputs produced by [NewFragment] carry a line map
// so that positions inside a de-indented container body
// still report locations in the original document.
type Input struct {
	text string
	pos  Position
	lm   *lineMap
}

// NewInput returns an Input for a whole document.
func NewInput(text string) Input {
	return Input{
		text: text,
		pos:  Position{Line: 1, Column: 1, Offset: 0},
	}
}

// String returns the text of the view.
func (in Input) String() string {
	return in.text
}

// Len returns the number of bytes in the view.
func (in Input) Len() int {
	return len(in.text)
}

// IsEmpty reports whether the view has no bytes.
func (in Input) IsEmpty() bool {
	return len(in.text) == 0
}

// Pos returns the document position of the first byte of the view.
func (in Input) Pos() Position {
	return in.lm.mapPos(in.pos)
}

// EndPos returns the document position just past the last byte of the view.
func (in Input) EndPos() Position {
	return in.lm.mapPos(in.pos.Advance(in.text))
}

// Span returns the document span covered by the view.
func (in Input) Span() Span {
	return SpanOf(in)
}

// SpanOf converts a matched view into a [Span].
// It is the single conversion used by the block and inline layers.
func SpanOf(in Input) Span {
	return Span{Start: in.Pos(), End: in.EndPos()}
}

// Advance returns the view with its first n bytes removed.
func (in Input) Advance(n int) Input {
	return Input{
		text: in.text[n:],
		pos:  in.pos.Advance(in.text[:n]),
		lm:   in.lm,
	}
}

// Take splits the view after n bytes.
func (in Input) Take(n int) (rest, taken Input) {
	return in.Advance(n), in.Truncate(n)
}

// Truncate returns the first n bytes of the view.
func (in Input) Truncate(n int) Input {
	in.text = in.text[:n]
	return in
}

// Slice returns the view of bytes [i, j).
func (in Input) Slice(i, j int) Input {
	return in.Advance(i).Truncate(j - i)
}

// Until returns the bytes of in that precede end,
// where end is a view obtained by advancing in.
func (in Input) Until(end Input) Input {
	n := end.pos.Offset - in.pos.Offset
	if n < 0 {
		n = 0
	}
	if n > len(in.text) {
		n = len(in.text)
	}
	return in.Truncate(n)
}

// SplitLine splits off the first line of the view,
// including its line ending.
func (in Input) SplitLine() (line, rest Input) {
	n := lineLen(in.text)
	return in.Truncate(n), in.Advance(n)
}

// TrimSpace removes leading and trailing spaces, tabs and line endings.
func (in Input) TrimSpace() Input {
	return in.TrimLeft().TrimRight()
}

// TrimLeft removes leading spaces, tabs and line endings.
func (in Input) TrimLeft() Input {
	i := 0
	for i < len(in.text) && isSpaceTabOrLineEnding(in.text[i]) {
		i++
	}
	return in.Advance(i)
}

// TrimRight removes trailing spaces, tabs and line endings.
func (in Input) TrimRight() Input {
	j := len(in.text)
	for j > 0 && isSpaceTabOrLineEnding(in.text[j-1]) {
		j--
	}
	return in.Truncate(j)
}

// TrimLeftSpaceOrTab removes leading spaces and tabs.
func (in Input) TrimLeftSpaceOrTab() Input {
	i := 0
	for i < len(in.text) && isSpaceOrTab(in.text[i]) {
		i++
	}
	return in.Advance(i)
}

// TrimLineEnding removes a single trailing "\n" or "\r\n".
func (in Input) TrimLineEnding() Input {
	return in.Truncate(len(trimLineEnding(in.text)))
}

// FragmentLine is one line of a container body:
// the source bytes of the line
// plus any text inserted in front of them
// (an escape for a lazy line, spaces for a partially consumed tab).
type FragmentLine struct {
	Insert  string
	Content Input
}

// NewFragment joins container body lines into a single Input.
// Positions inside the result map back to the source of each line.
func NewFragment(lines []FragmentLine) Input {
	if len(lines) == 0 {
		return Input{pos: Position{Line: 1, Column: 1}}
	}
	sb := new(strings.Builder)
	m := &lineMap{lines: make([]lineOrigin, 0, len(lines)+1)}
	for i, l := range lines {
		sb.WriteString(l.Insert)
		sb.WriteString(l.Content.text)
		if i < len(lines)-1 && !strings.HasSuffix(l.Content.text, "\n") {
			sb.WriteByte('\n')
		}
		m.lines = append(m.lines, lineOrigin{
			pos:      l.Content.Pos(),
			inserted: len(l.Insert),
		})
	}
	m.lines = append(m.lines, lineOrigin{pos: lines[len(lines)-1].Content.EndPos()})
	return Input{
		text: sb.String(),
		pos:  Position{Line: 1, Column: 1, Offset: 0},
		lm:   m,
	}
}

type lineOrigin struct {
	pos      Position
	inserted int
}

// lineMap translates positions inside a fragment
// to positions in the original document.
// Entry i describes fragment line i+1;
// the final entry is the position after the last line.
type lineMap struct {
	lines []lineOrigin
}

func (m *lineMap) mapPos(p Position) Position {
	if m == nil || len(m.lines) == 0 {
		return p
	}
	i := p.Line - 1
	if i >= len(m.lines) {
		i = len(m.lines) - 1
	}
	if i < 0 {
		i = 0
	}
	o := m.lines[i]
	col := p.Column - 1 - o.inserted
	if col < 0 {
		col = 0
	}
	return Position{
		Line:   o.pos.Line,
		Column: o.pos.Column + col,
		Offset: o.pos.Offset + col,
	}
}
