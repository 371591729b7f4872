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

	"golang.org/x/net/html"
)

// maxLinkLabelLength is the maximum number of characters in a [link label].
//
// [link label]: https://spec.commonmark.org/0.30/#link-label
const maxLinkLabelLength = 999

// LinkDefinition is a [link reference definition].
//
// [link reference definition]: https://spec.commonmark.org/0.30/#link-reference-definition
type LinkDefinition struct {
	Label       Input
	Destination string
	Title       string
	HasTitle    bool
}

// ParseLinkReferenceDefinition recognizes "[label]: destination 'title'".
// The title may be on the line after the destination;
// if text follows the title on its line,
// the definition ends after the destination instead.
func ParseLinkReferenceDefinition(in Input) (rest Input, def LinkDefinition, ok bool) {
	s := in.text
	i := upTo3Spaces(s)
	if i < 0 || i >= len(s) || s[i] != '[' || strings.HasPrefix(s[i:], "[^") {
		return in, def, false
	}
	labelEnd := scanLinkLabel(s, i)
	if labelEnd < 0 || labelEnd+1 >= len(s) || s[labelEnd+1] != ':' {
		return in, def, false
	}
	def.Label = in.Slice(i+1, labelEnd)

	p := skipSpaceAndOneNewline(s, labelEnd+2)
	dest, destEnd, ok := scanLinkDestination(s, p)
	if !ok || (destEnd == p && !strings.HasPrefix(s[p:], "<")) {
		return in, def, false
	}
	def.Destination = UnescapeString(dest)

	// Definition without a title, if the rest of the line is blank.
	noTitleEnd := -1
	if e := restOfLineBlank(s, destEnd); e >= 0 {
		noTitleEnd = e
	}

	t := skipSpaceAndOneNewline(s, destEnd)
	if t > destEnd && t < len(s) {
		if title, titleEnd, ok := scanLinkTitle(s, t); ok {
			if e := restOfLineBlank(s, titleEnd); e >= 0 {
				def.Title = UnescapeString(title)
				def.HasTitle = true
				return in.Advance(e), def, true
			}
		}
	}
	if noTitleEnd < 0 {
		return in, LinkDefinition{}, false
	}
	return in.Advance(noTitleEnd), def, true
}

// scanLinkLabel returns the index of the ']' closing the label that opens at s[i],
// or -1. Labels may not contain unescaped brackets or blank lines.
func scanLinkLabel(s string, i int) int {
	n := 0
	blankLine := true
	for j := i + 1; j < len(s); j++ {
		switch c := s[j]; c {
		case '\\':
			j++
			n++
			blankLine = false
		case '[':
			return -1
		case ']':
			if strings.TrimSpace(s[i+1:j]) == "" || n > maxLinkLabelLength {
				return -1
			}
			return j
		case '\n':
			if blankLine {
				return -1
			}
			blankLine = true
		default:
			if !isSpaceOrTab(c) && c != '\r' {
				blankLine = false
			}
			n++
		}
	}
	return -1
}

func skipSpaceAndOneNewline(s string, i int) int {
	for i < len(s) && isSpaceOrTab(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '\r' {
		i++
	}
	if i < len(s) && s[i] == '\n' {
		i++
		for i < len(s) && isSpaceOrTab(s[i]) {
			i++
		}
	}
	return i
}

// restOfLineBlank returns the index after the line ending
// if s[i:] is blank up to the end of the line, or -1.
func restOfLineBlank(s string, i int) int {
	for i < len(s) && isSpaceOrTab(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '\r' {
		i++
	}
	switch {
	case i == len(s):
		return i
	case s[i] == '\n':
		return i + 1
	default:
		return -1
	}
}

// scanLinkDestination parses a [link destination] starting at s[i].
//
// [link destination]: https://spec.commonmark.org/0.30/#link-destination
func scanLinkDestination(s string, i int) (dest string, end int, ok bool) {
	if i < len(s) && s[i] == '<' {
		for j := i + 1; j < len(s); j++ {
			switch s[j] {
			case '\\':
				j++
			case '\n', '<':
				return "", i, false
			case '>':
				return s[i+1 : j], j + 1, true
			}
		}
		return "", i, false
	}
	depth := 0
	j := i
	for ; j < len(s); j++ {
		c := s[j]
		if c <= ' ' || c == 0x7f {
			break
		}
		switch c {
		case '\\':
			if j+1 < len(s) && IsASCIIPunctuation(s[j+1]) {
				j++
			}
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return s[i:j], j, j > i
			}
			depth--
		}
	}
	if depth != 0 {
		return "", i, false
	}
	return s[i:j], j, j > i
}

// scanLinkTitle parses a [link title] starting at s[i].
//
// [link title]: https://spec.commonmark.org/0.30/#link-title
func scanLinkTitle(s string, i int) (title string, end int, ok bool) {
	if i >= len(s) {
		return "", i, false
	}
	var closer byte
	switch s[i] {
	case '"':
		closer = '"'
	case '\'':
		closer = '\''
	case '(':
		closer = ')'
	default:
		return "", i, false
	}
	for j := i + 1; j < len(s); j++ {
		switch c := s[j]; {
		case c == '\\':
			j++
		case c == closer:
			return s[i+1 : j], j + 1, true
		case c == '(' && closer == ')':
			return "", i, false
		case c == '\n' && j+1 < len(s) && IsBlank(s[j+1:j+1+lineLen(s[j+1:])]):
			return "", i, false
		}
	}
	return "", i, false
}

// UnescapeString processes backslash escapes and entity references
// in link destinations and titles.
func UnescapeString(s string) string {
	if strings.IndexByte(s, '\\') < 0 && strings.IndexByte(s, '&') < 0 {
		return s
	}
	sb := new(strings.Builder)
	sb.Grow(len(s))
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && IsASCIIPunctuation(s[i+1]) {
			// Escaped characters are never part of an entity.
			sb.WriteString(html.UnescapeString(s[start:i]))
			sb.WriteByte(s[i+1])
			i++
			start = i + 1
		}
	}
	sb.WriteString(html.UnescapeString(s[start:]))
	return sb.String()
}

// InlineLink is the result of [ParseLink] and [ParseImage].
type InlineLink struct {
	// Text is the bracketed link text (or image description).
	Text        Input
	Destination string
	Title       string
	HasTitle    bool
}

// ParseLink recognizes an inline link "[text](destination "title")".
//
// The title lies between the first and second double quotes
// after the opening parenthesis,
// and the closing parenthesis is the first one after the second quote.
// The destination ends at the last space-quote pair before that parenthesis.
// Without a second quote, the closing parenthesis is the first unbalanced one
// and the link has no title.
func ParseLink(in Input) (rest Input, link InlineLink, ok bool) {
	s := in.text
	if !strings.HasPrefix(s, "[") {
		return in, link, false
	}
	closeBracket := matchBracket(s, 0)
	if closeBracket < 0 || closeBracket+1 >= len(s) || s[closeBracket+1] != '(' {
		return in, link, false
	}
	open := closeBracket + 2
	end, dest, title, hasTitle, ok := scanInlineDestination(s, open)
	if !ok {
		return in, link, false
	}
	link = InlineLink{
		Text:        in.Slice(1, closeBracket),
		Destination: dest,
		Title:       title,
		HasTitle:    hasTitle,
	}
	return in.Advance(end), link, true
}

// ParseImage recognizes an image "![alt](destination "title")".
func ParseImage(in Input) (rest Input, img InlineLink, ok bool) {
	if !strings.HasPrefix(in.text, "![") {
		return in, img, false
	}
	rest, img, ok = ParseLink(in.Advance(1))
	if !ok {
		return in, InlineLink{}, false
	}
	return rest, img, true
}

// scanInlineDestination parses the parenthesized part of an inline link
// starting just after '('.
// It returns the index just past the closing parenthesis.
func scanInlineDestination(s string, open int) (end int, dest, title string, hasTitle, ok bool) {
	body := s[open:]
	lineBreak := strings.Index(body, "\n\n")
	if lineBreak >= 0 {
		body = body[:lineBreak]
	}
	if strings.HasPrefix(strings.TrimLeft(body, " \t\n"), "<") {
		// Pointy-bracket destination.
		p := open + (len(body) - len(strings.TrimLeft(body, " \t\n")))
		d, dEnd, ok := scanLinkDestination(s, p)
		if !ok {
			return 0, "", "", false, false
		}
		q := skipHTMLSpace(s, dEnd)
		if q < len(s) && s[q] == '"' {
			if t, tEnd, tok := scanLinkTitle(s, q); tok {
				q = skipHTMLSpace(s, tEnd)
				title, hasTitle = t, true
			}
		}
		if q >= len(s) || s[q] != ')' {
			return 0, "", "", false, false
		}
		return q + 1, UnescapeString(d), UnescapeString(title), hasTitle, true
	}

	if q1 := quoteIndex(body, 0); q1 >= 0 {
		if q2 := quoteIndex(body, q1+1); q2 >= 0 {
			if cp := strings.IndexByte(body[q2+1:], ')'); cp >= 0 {
				cp += q2 + 1
				d := body[:cp]
				if i := strings.LastIndex(d, ` "`); i >= 0 {
					d = d[:i]
				}
				return open + cp + 1, UnescapeString(strings.TrimSpace(d)), UnescapeString(body[q1+1 : q2]), true, true
			}
		}
	}

	// No usable title: the destination runs to the first unbalanced ')'.
	p := 0
	for p < len(body) && isSpaceTabOrLineEnding(body[p]) {
		p++
	}
	depth := 0
	for i := p; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
				continue
			}
			return open + i + 1, UnescapeString(strings.TrimSpace(body[p:i])), "", false, true
		}
	}
	return 0, "", "", false, false
}

// quoteIndex returns the index of the first unescaped '"' in s at or after i.
func quoteIndex(s string, i int) int {
	for ; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

// matchBracket returns the index of the ']' that closes the '[' at s[i],
// honoring nesting, backslash escapes and code spans, or -1.
func matchBracket(s string, i int) int {
	depth := 0
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '`':
			j = skipCodeSpan(s, j) - 1
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// ReferenceLink is a reference-style link before resolution.
type ReferenceLink struct {
	// Text is the bracketed link text.
	Text Input
	// Label is the raw label used for lookup:
	// the explicit label for full references,
	// or the link text for collapsed and shortcut references.
	Label string
	// Suffix is the source text that follows the link text:
	// "" for shortcut, "[]" for collapsed, or "[label]" for full references.
	Suffix string
}

// ParseReferenceLink recognizes "[text][label]", "[text][]", and "[text]".
// Link text with an unbalanced number of backticks is rejected,
// as is link text immediately followed by '(' (a failed inline link).
func ParseReferenceLink(in Input) (rest Input, ref ReferenceLink, ok bool) {
	s := in.text
	if !strings.HasPrefix(s, "[") || strings.HasPrefix(s, "[^") {
		return in, ref, false
	}
	closeBracket := matchBracket(s, 0)
	if closeBracket <= 1 {
		return in, ref, false
	}
	text := s[1:closeBracket]
	if strings.Count(text, "`")%2 == 1 || strings.TrimSpace(text) == "" {
		return in, ref, false
	}
	after := s[closeBracket+1:]
	if strings.HasPrefix(after, "(") {
		return in, ref, false
	}
	ref.Text = in.Slice(1, closeBracket)
	end := closeBracket + 1
	switch {
	case strings.HasPrefix(after, "[]"):
		ref.Label = text
		ref.Suffix = "[]"
		end += 2
	case strings.HasPrefix(after, "["):
		labelEnd := scanLinkLabel(after, 0)
		if labelEnd < 0 {
			ref.Label = text
			break
		}
		ref.Label = after[1:labelEnd]
		ref.Suffix = after[:labelEnd+1]
		end += labelEnd + 1
	default:
		ref.Label = text
	}
	if len(ref.Label) > maxLinkLabelLength {
		return in, ReferenceLink{}, false
	}
	return in.Advance(end), ref, true
}

// Autolink is an [autolink].
//
// [autolink]: https://spec.commonmark.org/0.30/#autolinks
type Autolink struct {
	// Destination is the text between the angle brackets.
	Destination Input
	Email       bool
}

// ParseAutolink recognizes "<scheme:...>" and "<local@domain>".
// The scheme is 2 to 32 characters: a letter followed by letters, digits, '+', '.', or '-'.
func ParseAutolink(in Input) (rest Input, al Autolink, ok bool) {
	s := in.text
	if !strings.HasPrefix(s, "<") {
		return in, al, false
	}
	end := strings.IndexAny(s[1:], "<> \t\r\n")
	if end < 0 || s[1+end] != '>' {
		return in, al, false
	}
	inner := s[1 : 1+end]
	switch {
	case isAbsoluteURI(inner):
	case IsEmailAddress(inner):
		al.Email = true
	default:
		return in, al, false
	}
	al.Destination = in.Slice(1, 1+end)
	return in.Advance(end + 2), al, true
}

func isAbsoluteURI(s string) bool {
	colon := strings.IndexByte(s, ':')
	if colon < 2 || colon > 32 || !isASCIILetter(s[0]) {
		return false
	}
	for i := 1; i < colon; i++ {
		if c := s[i]; !isASCIIAlnum(c) && c != '+' && c != '.' && c != '-' {
			return false
		}
	}
	for i := colon + 1; i < len(s); i++ {
		if s[i] < ' ' || s[i] == '<' || s[i] == '>' {
			return false
		}
	}
	return true
}

// IsEmailAddress reports whether s is an email address
// as recognized in autolinks.
func IsEmailAddress(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	for i := 0; i < at; i++ {
		if c := s[i]; !isASCIIAlnum(c) && strings.IndexByte(".!#$%&'*+/=?^_`{|}~-", c) < 0 {
			return false
		}
	}
	for _, label := range strings.Split(s[at+1:], ".") {
		if len(label) == 0 || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for i := 0; i < len(label); i++ {
			if c := label[i]; !isASCIIAlnum(c) && c != '-' {
				return false
			}
		}
	}
	return true
}

// AutolinkLiteral is a bare URL recognized by the
// [GFM autolink extension].
//
// [GFM autolink extension]: https://github.github.com/gfm/#autolinks-extension-
type AutolinkLiteral struct {
	Text Input
	// Destination is Text with a scheme prepended for "www." links.
	Destination string
}

// ParseAutolinkLiteral recognizes "http://", "https://", and "www." links.
// Trailing punctuation and unbalanced closing parentheses are not part of the link.
// The caller is responsible for checking that the link starts a word.
func ParseAutolinkLiteral(in Input) (rest Input, al AutolinkLiteral, ok bool) {
	s := in.text
	var prefix string
	switch {
	case hasCaseInsensitivePrefix(s, "https://"):
		prefix = s[:len("https://")]
	case hasCaseInsensitivePrefix(s, "http://"):
		prefix = s[:len("http://")]
	case hasCaseInsensitivePrefix(s, "www."):
		prefix = s[:len("www.")]
	default:
		return in, al, false
	}
	end := len(prefix)
	for end < len(s) && !isSpaceTabOrLineEnding(s[end]) && s[end] != '<' {
		end++
	}
	domainEnd := len(prefix)
	for domainEnd < end && (isASCIIAlnum(s[domainEnd]) || s[domainEnd] == '-' || s[domainEnd] == '.' || s[domainEnd] == '_' || s[domainEnd] >= 0x80) {
		domainEnd++
	}
	domain := strings.Trim(s[len(prefix):domainEnd], ".")
	if domain == "" {
		return in, al, false
	}
	www := strings.EqualFold(prefix, "www.")
	if www && !strings.Contains(domain, ".") {
		return in, al, false
	}
	end = trimAutolinkTrailing(s, end)
	if end <= len(prefix) {
		return in, al, false
	}
	al.Text = in.Truncate(end)
	al.Destination = s[:end]
	if www {
		al.Destination = "http://" + al.Destination
	}
	return in.Advance(end), al, true
}

// trimAutolinkTrailing applies the extended autolink path validation:
// trailing punctuation is excluded, closing parentheses are kept only when balanced,
// and a trailing entity-like "&name;" is excluded.
func trimAutolinkTrailing(s string, end int) int {
	for end > 0 {
		c := s[end-1]
		switch {
		case strings.IndexByte("?!.,:*_~'\"", c) >= 0:
			end--
		case c == ')':
			if strings.Count(s[:end], "(") >= strings.Count(s[:end], ")") {
				return end
			}
			end--
		case c == ';':
			amp := strings.LastIndexByte(s[:end], '&')
			if amp < 0 || !isEntityName(s[amp+1:end-1]) {
				return end
			}
			end = amp
		default:
			return end
		}
	}
	return end
}

func isEntityName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isASCIIAlnum(s[i]) {
			return false
		}
	}
	return true
}

// FootnoteReference is "[^label]".
type FootnoteReference struct {
	Label Input
}

// ParseFootnoteReference recognizes a footnote reference.
// The label may not be empty or contain whitespace.
func ParseFootnoteReference(in Input) (rest Input, fr FootnoteReference, ok bool) {
	s := in.text
	if !strings.HasPrefix(s, "[^") {
		return in, fr, false
	}
	i := 2
	for i < len(s) && s[i] != ']' {
		if isSpaceTabOrLineEnding(s[i]) || s[i] == '[' {
			return in, fr, false
		}
		i++
	}
	if i == 2 || i >= len(s) {
		return in, fr, false
	}
	if i+1 < len(s) && s[i+1] == ':' {
		// That is a definition, not a reference.
		return in, fr, false
	}
	fr.Label = in.Slice(2, i)
	return in.Advance(i + 1), fr, true
}

// ParseInlineFootnote recognizes "^[footnote text]".
// The returned content is the text between the brackets.
func ParseInlineFootnote(in Input) (rest Input, content Input, ok bool) {
	if !strings.HasPrefix(in.text, "^[") {
		return in, content, false
	}
	closeBracket := matchBracket(in.text, 1)
	if closeBracket < 0 || closeBracket == 2 {
		return in, content, false
	}
	return in.Advance(closeBracket + 1), in.Slice(2, closeBracket), true
}
