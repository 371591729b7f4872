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
	"unicode/utf8"

	"golang.org/x/net/html"
)

// BacktickRun returns the number of consecutive backticks at the start of s.
func BacktickRun(s string) int {
	n := 0
	for n < len(s) && s[n] == '`' {
		n++
	}
	return n
}

// CodeSpan is a [code span].
//
// [code span]: https://spec.commonmark.org/0.30/#code-spans
type CodeSpan struct {
	// Content is the literal text between the backtick runs.
	Content Input
}

// ParseCodeSpan recognizes a run of N backticks
// closed by the first following run of exactly N backticks.
func ParseCodeSpan(in Input) (rest Input, cs CodeSpan, ok bool) {
	s := in.text
	n := BacktickRun(s)
	if n == 0 {
		return in, cs, false
	}
	closer := findBacktickRun(s, n, n)
	if closer < 0 {
		return in, cs, false
	}
	cs.Content = in.Slice(n, closer)
	return in.Advance(closer + n), cs, true
}

// findBacktickRun returns the index of the first run of exactly n backticks
// in s at or after i, or -1.
func findBacktickRun(s string, n, i int) int {
	for i < len(s) {
		j := strings.IndexByte(s[i:], '`')
		if j < 0 {
			return -1
		}
		j += i
		r := BacktickRun(s[j:])
		if r == n {
			return j
		}
		i = j + r
	}
	return -1
}

// skipCodeSpan returns the index just past the code span that starts at s[i].
// An unmatched backtick run is skipped as a whole.
func skipCodeSpan(s string, i int) int {
	n := BacktickRun(s[i:])
	if closer := findBacktickRun(s, n, i+n); closer >= 0 {
		return closer + n
	}
	return i + n
}

// NormalizeCodeSpan converts line endings in code span content to spaces
// and strips one leading and trailing space
// if the content both begins and ends with a space and is not all spaces.
func NormalizeCodeSpan(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) >= 2 && s[0] == ' ' && s[len(s)-1] == ' ' && strings.Trim(s, " ") != "" {
		s = s[1 : len(s)-1]
	}
	return s
}

// ParseBackslashEscape recognizes a [backslash escape]
// and returns the escaped character.
//
// [backslash escape]: https://spec.commonmark.org/0.30/#backslash-escapes
func ParseBackslashEscape(in Input) (rest Input, escaped Input, ok bool) {
	s := in.text
	if len(s) < 2 || s[0] != '\\' || !IsASCIIPunctuation(s[1]) {
		return in, escaped, false
	}
	return in.Advance(2), in.Slice(1, 2), true
}

// maxEntityNameLength bounds the scan for a named entity reference.
const maxEntityNameLength = 32

// ParseEntity recognizes an [entity or numeric character reference]
// and returns its decoded text.
// A reference that does not decode to something different is not matched.
//
// [entity or numeric character reference]: https://spec.commonmark.org/0.30/#entity-and-numeric-character-references
func ParseEntity(in Input) (rest Input, decoded string, ok bool) {
	s := in.text
	if !strings.HasPrefix(s, "&") {
		return in, "", false
	}
	end := -1
	switch {
	case strings.HasPrefix(s, "&#x") || strings.HasPrefix(s, "&#X"):
		i := 3
		for i < len(s) && i-3 < 6 && isHexDigit(s[i]) {
			i++
		}
		if i > 3 && i < len(s) && s[i] == ';' {
			end = i + 1
		}
	case strings.HasPrefix(s, "&#"):
		i := 2
		for i < len(s) && i-2 < 7 && isASCIIDigit(s[i]) {
			i++
		}
		if i > 2 && i < len(s) && s[i] == ';' {
			end = i + 1
		}
	default:
		i := 1
		for i < len(s) && i-1 < maxEntityNameLength && isASCIIAlnum(s[i]) {
			i++
		}
		if i > 1 && i < len(s) && s[i] == ';' {
			end = i + 1
		}
	}
	if end < 0 {
		return in, "", false
	}
	raw := s[:end]
	decoded = html.UnescapeString(raw)
	if decoded == raw {
		return in, "", false
	}
	return in.Advance(end), decoded, true
}

// Delimited is a construct wrapped in matching delimiter runs,
// such as "**strong**" or "~~strikethrough~~".
type Delimited struct {
	Delimiter string
	// Content is the text between the opening and closing runs.
	Content Input
}

// Emphasis-class delimiters.
const (
	DelimStrongEmphasis          = "***"
	DelimStrong                  = "**"
	DelimEmphasis                = "*"
	DelimUnderlineStrongEmphasis = "___"
	DelimUnderlineStrong         = "__"
	DelimUnderlineEmphasis       = "_"
	DelimStrikethrough           = "~~"
	DelimDashStrike              = "--"
	DelimMark                    = "=="
	DelimSuperscript             = "^"
	DelimSubscript               = "~"
	DelimSubscriptArrow          = "˅"
)

// ParseStrongEmphasis recognizes "***text***" or "___text___".
func ParseStrongEmphasis(in Input) (rest Input, d Delimited, ok bool) {
	return (*DelimiterCache)(nil).Parse(in, DelimStrongEmphasis, DelimUnderlineStrongEmphasis)
}

// ParseStrong recognizes "**text**" or "__text__".
func ParseStrong(in Input) (rest Input, d Delimited, ok bool) {
	return (*DelimiterCache)(nil).Parse(in, DelimStrong, DelimUnderlineStrong)
}

// ParseEmphasis recognizes "*text*" or "_text_".
func ParseEmphasis(in Input) (rest Input, d Delimited, ok bool) {
	return (*DelimiterCache)(nil).Parse(in, DelimEmphasis, DelimUnderlineEmphasis)
}

// ParseStrikethrough recognizes "~~text~~".
func ParseStrikethrough(in Input) (rest Input, d Delimited, ok bool) {
	return (*DelimiterCache)(nil).Parse(in, DelimStrikethrough)
}

// ParseDashStrikethrough recognizes "--text--".
func ParseDashStrikethrough(in Input) (rest Input, d Delimited, ok bool) {
	return (*DelimiterCache)(nil).Parse(in, DelimDashStrike)
}

// ParseMark recognizes "==text==".
func ParseMark(in Input) (rest Input, d Delimited, ok bool) {
	return (*DelimiterCache)(nil).Parse(in, DelimMark)
}

// ParseSuperscript recognizes "^text^".
func ParseSuperscript(in Input) (rest Input, d Delimited, ok bool) {
	return (*DelimiterCache)(nil).Parse(in, DelimSuperscript)
}

// ParseSubscript recognizes "~text~".
func ParseSubscript(in Input) (rest Input, d Delimited, ok bool) {
	return (*DelimiterCache)(nil).Parse(in, DelimSubscript)
}

// ParseSubscriptArrow recognizes "˅text˅".
func ParseSubscriptArrow(in Input) (rest Input, d Delimited, ok bool) {
	return (*DelimiterCache)(nil).Parse(in, DelimSubscriptArrow)
}

// A DelimiterCache remembers, for each delimiter,
// a suffix of the text that holds no run able to close it.
// A scan whose opener lies inside that suffix fails without rescanning,
// so a line of unmatched openers is handled in linear time.
//
// Every input given to one cache must end where the same text ends,
// as the successive positions of a single inline parse do.
// The zero value is an empty cache; a nil cache remembers nothing.
type DelimiterCache struct {
	// noCloser maps a delimiter to the length of the closer-free suffix.
	noCloser map[string]int
}

// Parse recognizes content wrapped in the first of delims that matches.
func (c *DelimiterCache) Parse(in Input, delims ...string) (rest Input, d Delimited, ok bool) {
	for _, delim := range delims {
		if rest, d, ok = c.parseDelimited(in, delim); ok {
			return rest, d, true
		}
	}
	return in, Delimited{}, false
}

// parseDelimited recognizes content wrapped in delim,
// which is one or more repetitions of a single delimiter character.
//
// The opening run must be exactly delim:
// a longer run is rejected so that "**" is never read as two "*".
// Opening and closing runs must be left- and right-flanking respectively.
// Code spans and backslash escapes are skipped while looking for the closer.
// A closing run longer than delim is accepted
// only when its surplus closes an unclosed inner run of exactly that length,
// as in "**bold with *nested italic***".
func (c *DelimiterCache) parseDelimited(in Input, delim string) (rest Input, d Delimited, ok bool) {
	s := in.text
	unit, unitSize := utf8.DecodeRuneInString(delim)
	n := utf8.RuneCountInString(delim)
	if !strings.HasPrefix(s, delim) {
		return in, d, false
	}
	start := len(delim)
	if start >= len(s) || firstRune(s[start:]) == unit || delimiterFlags(s, 0, start)&openerFlag == 0 {
		return in, d, false
	}
	if c != nil && len(s)-start <= c.noCloser[delim] {
		return in, d, false
	}

	// Unclosed inner runs, keyed by run length.
	inner := make(map[int]int)
	// Length of the suffix after the last run that could close.
	free := len(s) - start
	for i := start; i < len(s); {
		switch c := s[i]; {
		case c == '\\' && i+1 < len(s):
			i += 2
			continue
		case c == '`':
			i = skipCodeSpan(s, i)
			continue
		case c == '\n' && i+1 < len(s) && IsBlank(s[i+1:i+1+lineLen(s[i+1:])]):
			return in, d, false
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r != unit {
			i += size
			continue
		}
		runLen := 0
		j := i
		for j < len(s) && strings.HasPrefix(s[j:], string(unit)) {
			j += unitSize
			runLen++
		}
		flags := delimiterFlags(s, i, j)
		canClose := flags&closerFlag != 0
		canOpen := flags&openerFlag != 0
		if canClose {
			free = len(s) - j
			switch {
			case inner[runLen] > 0:
				inner[runLen]--
				i = j
				continue
			case runLen == n:
				d.Delimiter = s[:start]
				d.Content = in.Slice(start, i)
				return in.Advance(j), d, true
			case runLen > n && inner[runLen-n] > 0:
				closeAt := j - len(delim)
				d.Delimiter = s[:start]
				d.Content = in.Slice(start, closeAt)
				return in.Advance(j), d, true
			}
		}
		if canOpen {
			inner[runLen]++
		}
		i = j
	}
	if c != nil && free > c.noCloser[delim] {
		if c.noCloser == nil {
			c.noCloser = make(map[string]int)
		}
		c.noCloser[delim] = free
	}
	return in, d, false
}

// TaskCheckbox is "[ ]", "[x]", or "[X]".
type TaskCheckbox struct {
	Checked bool
}

// ParseTaskCheckbox recognizes a task checkbox marker.
// The marker must be followed by whitespace, punctuation, or the end of the input,
// but not by an opening bracket or parenthesis.
// The caller decides whether the marker is at an acceptable place in the line.
func ParseTaskCheckbox(in Input) (rest Input, tc TaskCheckbox, ok bool) {
	s := in.text
	switch {
	case strings.HasPrefix(s, "[ ]"):
	case strings.HasPrefix(s, "[x]"), strings.HasPrefix(s, "[X]"):
		tc.Checked = true
	default:
		return in, tc, false
	}
	if len(s) > 3 {
		c := firstRune(s[3:])
		if c == '(' || c == '[' || IsWordChar(c) {
			return in, TaskCheckbox{}, false
		}
	}
	return in.Advance(3), tc, true
}

// ParseHardBreak recognizes a [hard line break]:
// two or more spaces or a backslash before a line ending.
// The leading whitespace of the next line is consumed as well,
// but is not part of the returned break.
//
// [hard line break]: https://spec.commonmark.org/0.30/#hard-line-breaks
func ParseHardBreak(in Input) (rest Input, brk Input, ok bool) {
	s := in.text
	i := 0
	switch {
	case strings.HasPrefix(s, "\\"):
		i = 1
	case strings.HasPrefix(s, "  "):
		for i < len(s) && s[i] == ' ' {
			i++
		}
	default:
		return in, brk, false
	}
	if i < len(s) && s[i] == '\r' {
		i++
	}
	if i >= len(s) || s[i] != '\n' {
		return in, brk, false
	}
	i++
	rest, brk = in.Take(i)
	return rest.TrimLeftSpaceOrTab(), brk, true
}

// ParseSoftBreak recognizes a [soft line break]
// with any spaces or tabs that precede it.
// The leading whitespace of the next line is consumed as well.
//
// [soft line break]: https://spec.commonmark.org/0.30/#soft-line-breaks
func ParseSoftBreak(in Input) (rest Input, brk Input, ok bool) {
	s := in.text
	i := 0
	for i < len(s) && isSpaceOrTab(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '\r' {
		i++
	}
	if i >= len(s) || s[i] != '\n' {
		return in, brk, false
	}
	i++
	rest, brk = in.Take(i)
	return rest.TrimLeftSpaceOrTab(), brk, true
}

// maxShortcodeLength bounds the name of an emoji shortcode.
const maxShortcodeLength = 64

// ParseEmojiShortcode recognizes a known ":shortcode:" and returns its emoji.
func ParseEmojiShortcode(in Input) (rest Input, emoji string, ok bool) {
	s := in.text
	if !strings.HasPrefix(s, ":") || len(s) < 3 {
		return in, "", false
	}
	end := strings.IndexByte(s[1:], ':')
	if end <= 0 || end > maxShortcodeLength {
		return in, "", false
	}
	name := s[1 : 1+end]
	for i := 0; i < len(name); i++ {
		if c := name[i]; !isASCIIAlnum(c) && c != '_' && c != '+' && c != '-' {
			return in, "", false
		}
	}
	emoji, ok = LookupEmoji(name)
	if !ok {
		return in, "", false
	}
	return in.Advance(end + 2), emoji, true
}

// Limits on the parts of a platform mention.
const (
	maxMentionUsernameLength = 128
	maxMentionPlatformLength = 64
	maxMentionDisplayLength  = 256
)

// Mention is a platform mention "@user[platform](Display Name)".
type Mention struct {
	Username string
	// Platform is lower-cased.
	Platform string
	// Display is the trimmed display name, or empty if absent.
	Display string
}

// ParseMention recognizes a platform mention.
// The display name in parentheses is optional.
func ParseMention(in Input) (rest Input, m Mention, ok bool) {
	s := in.text
	if !strings.HasPrefix(s, "@") {
		return in, m, false
	}
	i := 1
	for i < len(s) && s[i] != '[' {
		if c := s[i]; !isASCIIAlnum(c) && c != '_' && c != '-' && c != '.' {
			return in, m, false
		}
		i++
	}
	if i == 1 || i >= len(s) || i-1 > maxMentionUsernameLength {
		return in, m, false
	}
	m.Username = s[1:i]
	j := i + 1
	for j < len(s) && s[j] != ']' {
		if c := s[j]; !isASCIIAlnum(c) && c != '_' && c != '-' {
			return in, Mention{}, false
		}
		j++
	}
	if j == i+1 || j >= len(s) || j-i-1 > maxMentionPlatformLength {
		return in, Mention{}, false
	}
	m.Platform = strings.ToLower(s[i+1 : j])
	end := j + 1
	if end < len(s) && s[end] == '(' {
		k := strings.IndexAny(s[end+1:], ")\n")
		if k < 0 || s[end+1+k] != ')' || k > maxMentionDisplayLength {
			return in, Mention{}, false
		}
		m.Display = strings.TrimSpace(s[end+1 : end+1+k])
		end += k + 2
	}
	return in.Advance(end), m, true
}
