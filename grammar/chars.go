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
	"strings"
	"unicode"
	"unicode/utf8"
)

// tabStopSize is the multiple of columns that a [tab] advances to.
//
// [tab]: https://spec.commonmark.org/0.30/#tabs
const tabStopSize = 4

// codeBlockIndentLimit is the column width of an indent
// required to start an indented code block.
const codeBlockIndentLimit = 4

func isSpaceTabOrLineEnding(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isSpaceOrTab(c byte) bool {
	return c == ' ' || c == '\t'
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isASCIIAlnum(c byte) bool {
	return isASCIILetter(c) || isASCIIDigit(c)
}

func isHexDigit(c byte) bool {
	return isASCIIDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// IsASCIIPunctuation reports whether c is an [ASCII punctuation character].
//
// [ASCII punctuation character]: https://spec.commonmark.org/0.30/#ascii-punctuation-character
func IsASCIIPunctuation(c byte) bool {
	return '!' <= c && c <= '/' ||
		':' <= c && c <= '@' ||
		'[' <= c && c <= '`' ||
		'{' <= c && c <= '~'
}

// IsUnicodeWhitespace reports whether c is a [Unicode whitespace character].
//
// [Unicode whitespace character]: https://spec.commonmark.org/0.30/#unicode-whitespace-character
func IsUnicodeWhitespace(c rune) bool {
	return c == '\t' || c == '\n' || c == '\f' || c == '\r' || unicode.Is(unicode.Zs, c)
}

// IsUnicodePunctuation reports whether c is a [Unicode punctuation character].
//
// [Unicode punctuation character]: https://spec.commonmark.org/0.30/#unicode-punctuation-character
func IsUnicodePunctuation(c rune) bool {
	if c < utf8.RuneSelf {
		return IsASCIIPunctuation(byte(c))
	}
	return unicode.In(c, unicode.P, unicode.S)
}

// IsWordChar reports whether c is a letter, digit or underscore.
// It decides intraword delimiter and checkbox placement.
func IsWordChar(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

// IsBlank reports whether s contains only spaces, tabs and line endings.
func IsBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isSpaceTabOrLineEnding(s[i]) {
			return false
		}
	}
	return true
}

// lineLen returns the length of the first line of s,
// including its line ending.
func lineLen(s string) int {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return i + 1
	}
	return len(s)
}

func trimLineEnding(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

// indentation measures the leading whitespace of a line.
// cols is the width in columns (tabs advance to the next tab stop),
// n is the number of bytes.
func indentation(line string) (cols, n int) {
	for n < len(line) {
		switch line[n] {
		case ' ':
			cols++
		case '\t':
			cols += tabStopSize - cols%tabStopSize
		default:
			return cols, n
		}
		n++
	}
	return cols, n
}

// upTo3Spaces returns the number of leading spaces in line
// if there are at most three of them, or -1 otherwise.
func upTo3Spaces(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	if n > 3 {
		return -1
	}
	return n
}

// stripColumns removes up to width columns of leading whitespace from line.
// If a tab straddles the limit, the columns it would contribute beyond the limit
// are returned as spaces to insert before the remaining bytes.
func stripColumns(line string, width int) (n int, insert string) {
	cols := 0
	for n < len(line) && cols < width {
		switch line[n] {
		case ' ':
			cols++
			n++
		case '\t':
			next := cols + tabStopSize - cols%tabStopSize
			n++
			if next > width {
				return n, strings.Repeat(" ", next-width)
			}
			cols = next
		default:
			return n, ""
		}
	}
	return n, ""
}

// isEndEscaped reports whether s ends with an odd number of backslashes.
func isEndEscaped(s string) bool {
	n := 0
	for ; n < len(s); n++ {
		if s[len(s)-n-1] != '\\' {
			break
		}
	}
	return n%2 == 1
}

func hasCaseInsensitivePrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func caseInsensitiveContains(s, search string) bool {
	return strings.Contains(strings.ToLower(s), search)
}

// firstRune returns the first rune of s or ' ' if s is empty.
func firstRune(s string) rune {
	if s == "" {
		return ' '
	}
	c, _ := utf8.DecodeRuneInString(s)
	return c
}
