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

// Alignment is the horizontal alignment of a table column.
type Alignment uint8

// Table column alignments.
const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns the CSS text-align value for the alignment,
// or the empty string for [AlignNone].
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return ""
	}
}

// TableRow is one line of a table split into trimmed cells.
type TableRow struct {
	Line  Input
	Cells []Input
}

// Table is a [GFM table].
// Headerless tables start directly with the delimiter row
// and have a nil Header.
//
// [GFM table]: https://github.github.com/gfm/#tables-extension-
type Table struct {
	Header    *TableRow
	Delimiter Input
	Align     []Alignment
	Rows      []TableRow
}

// ParseTable recognizes a header row, a delimiter row with the same number of cells,
// and the body rows that follow.
func ParseTable(in Input) (rest Input, t Table, ok bool) {
	headerLine, cur := in.SplitLine()
	if strings.IndexByte(headerLine.text, '|') < 0 || IsBlank(headerLine.text) {
		return in, t, false
	}
	if cols, _ := indentation(headerLine.text); cols >= codeBlockIndentLimit {
		return in, t, false
	}
	delimLine, cur := cur.SplitLine()
	align, ok := parseDelimiterRow(delimLine.text)
	if !ok {
		return in, t, false
	}
	header := splitTableRow(headerLine)
	if len(header.Cells) != len(align) {
		return in, Table{}, false
	}
	t.Header = &header
	t.Delimiter = delimLine.TrimSpace()
	t.Align = align
	cur, t.Rows = parseTableBody(cur)
	return cur, t, true
}

// ParseHeaderlessTable recognizes a table that starts with its delimiter row.
// At least one body row is required.
func ParseHeaderlessTable(in Input) (rest Input, t Table, ok bool) {
	delimLine, cur := in.SplitLine()
	if strings.IndexByte(delimLine.text, '|') < 0 {
		return in, t, false
	}
	align, ok := parseDelimiterRow(delimLine.text)
	if !ok {
		return in, t, false
	}
	cur, rows := parseTableBody(cur)
	if len(rows) == 0 {
		return in, t, false
	}
	t.Delimiter = delimLine.TrimSpace()
	t.Align = align
	t.Rows = rows
	return cur, t, true
}

func parseTableBody(in Input) (rest Input, rows []TableRow) {
	cur := in
	for !cur.IsEmpty() {
		line, next := cur.SplitLine()
		if IsBlank(line.text) || InterruptsParagraph(line.text) {
			break
		}
		rows = append(rows, splitTableRow(line))
		cur = next
	}
	return cur, rows
}

// parseDelimiterRow parses a [delimiter row] such as "| :--- | :-: | --: |".
//
// [delimiter row]: https://github.github.com/gfm/#delimiter-row
func parseDelimiterRow(line string) ([]Alignment, bool) {
	s := strings.TrimSpace(trimLineEnding(line))
	if s == "" {
		return nil, false
	}
	if cols, _ := indentation(trimLineEnding(line)); cols >= codeBlockIndentLimit {
		return nil, false
	}
	hasPipe := strings.IndexByte(s, '|') >= 0
	s = strings.TrimPrefix(s, "|")
	s = strings.TrimSuffix(s, "|")
	var align []Alignment
	for _, cell := range strings.Split(s, "|") {
		cell = strings.TrimSpace(cell)
		left := strings.HasPrefix(cell, ":")
		right := strings.HasSuffix(cell, ":")
		dashes := strings.TrimSuffix(strings.TrimPrefix(cell, ":"), ":")
		if dashes == "" || strings.Trim(dashes, "-") != "" {
			return nil, false
		}
		switch {
		case left && right:
			align = append(align, AlignCenter)
		case left:
			align = append(align, AlignLeft)
		case right:
			align = append(align, AlignRight)
		default:
			align = append(align, AlignNone)
		}
	}
	if len(align) == 1 && !hasPipe {
		// A lone run of dashes is a setext underline or thematic break.
		return nil, false
	}
	return align, true
}

// splitTableRow splits a row on unescaped pipes.
// A leading and a trailing pipe are optional.
func splitTableRow(line Input) TableRow {
	row := TableRow{Line: line.TrimSpace()}
	s := row.Line.text
	start := 0
	if strings.HasPrefix(s, "|") {
		start = 1
	}
	end := len(s)
	if end > start && s[end-1] == '|' && !isEndEscaped(s[:end-1]) {
		end--
	}
	cellStart := start
	for i := start; i < end; i++ {
		switch s[i] {
		case '\\':
			i++
		case '|':
			row.Cells = append(row.Cells, row.Line.Slice(cellStart, i).TrimSpace())
			cellStart = i + 1
		}
	}
	if cellStart <= end {
		row.Cells = append(row.Cells, row.Line.Slice(cellStart, end).TrimSpace())
	}
	return row
}
