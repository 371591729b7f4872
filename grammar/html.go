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

	"golang.org/x/net/html/atom"
)

const (
	htmlCommentPrefix           = "<!--"
	htmlCommentSuffix           = "-->"
	processingInstructionPrefix = "<?"
	processingInstructionSuffix = "?>"
	cdataPrefix                 = "<![CDATA["
	cdataSuffix                 = "]]>"
)

// HTMLBlock is an [HTML block].
//
// [HTML block]: https://spec.commonmark.org/0.30/#html-blocks
type HTMLBlock struct {
	// Type is the CommonMark start condition number, 1 through 7.
	Type int
	// Content is the raw HTML without the final line ending.
	Content Input
}

// htmlBlockConditions is the set of HTML block start and end conditions,
// indexed by type minus one.
var htmlBlockConditions = []struct {
	startCondition func(line string) bool
	endCondition   func(line string) bool
}{
	{
		startCondition: func(line string) bool {
			for _, starter := range htmlBlockStarters1 {
				if hasCaseInsensitivePrefix(line, starter) {
					rest := line[len(starter):]
					if len(rest) == 0 || isSpaceTabOrLineEnding(rest[0]) || rest[0] == '>' {
						return true
					}
				}
			}
			return false
		},
		endCondition: func(line string) bool {
			for _, ender := range htmlBlockEnders1 {
				if caseInsensitiveContains(line, ender) {
					return true
				}
			}
			return false
		},
	},
	{
		startCondition: func(line string) bool {
			return strings.HasPrefix(line, htmlCommentPrefix)
		},
		endCondition: func(line string) bool {
			return strings.Contains(line, htmlCommentSuffix)
		},
	},
	{
		startCondition: func(line string) bool {
			return strings.HasPrefix(line, processingInstructionPrefix)
		},
		endCondition: func(line string) bool {
			return strings.Contains(line, processingInstructionSuffix)
		},
	},
	{
		startCondition: func(line string) bool {
			return strings.HasPrefix(line, "<!") && len(line) >= 3 && isASCIILetter(line[2])
		},
		endCondition: func(line string) bool {
			return strings.Contains(line, ">")
		},
	},
	{
		startCondition: func(line string) bool {
			return strings.HasPrefix(line, cdataPrefix)
		},
		endCondition: func(line string) bool {
			return strings.Contains(line, cdataSuffix)
		},
	},
	{
		startCondition: func(line string) bool {
			switch {
			case strings.HasPrefix(line, "</"):
				line = line[2:]
			case strings.HasPrefix(line, "<"):
				line = line[1:]
			default:
				return false
			}
			end := 0
			for end < len(line) && isASCIIAlnum(line[end]) {
				end++
			}
			if end == 0 || !htmlBlockStarters6[strings.ToLower(line[:end])] {
				return false
			}
			rest := line[end:]
			return len(rest) == 0 || isSpaceTabOrLineEnding(rest[0]) || rest[0] == '>' || strings.HasPrefix(rest, "/>")
		},
		endCondition: IsBlank,
	},
	{
		startCondition: func(line string) bool {
			if !strings.HasPrefix(line, "<") {
				return false
			}
			trimmed := trimLineEnding(line)
			rest, _, ok := ParseInlineHTML(NewInput(trimmed))
			if !ok || strings.HasPrefix(trimmed, htmlCommentPrefix) || strings.HasPrefix(trimmed, "<!") || strings.HasPrefix(trimmed, processingInstructionPrefix) {
				return false
			}
			return IsBlank(rest.text)
		},
		endCondition: IsBlank,
	},
}

// HTMLBlockStart returns the type of HTML block that line starts,
// or 0 if it does not start one.
func HTMLBlockStart(line string) int {
	i := upTo3Spaces(line)
	if i < 0 {
		return 0
	}
	s := line[i:]
	for j, cond := range htmlBlockConditions {
		if cond.startCondition(s) {
			return j + 1
		}
	}
	return 0
}

// ParseHTMLBlock recognizes an HTML block.
// Blocks of types 1 through 5 end at the line that satisfies their end condition;
// types 6 and 7 end before the next blank line.
func ParseHTMLBlock(in Input) (rest Input, hb HTMLBlock, ok bool) {
	first, _ := in.SplitLine()
	typ := HTMLBlockStart(first.text)
	if typ == 0 {
		return in, hb, false
	}
	end := htmlBlockConditions[typ-1].endCondition
	cur := in
	for !cur.IsEmpty() {
		line, next := cur.SplitLine()
		if typ >= 6 {
			if end(line.text) {
				break
			}
			cur = next
			continue
		}
		cur = next
		if end(line.text) {
			break
		}
	}
	return cur, HTMLBlock{Type: typ, Content: in.Until(cur).TrimLineEnding()}, true
}

// ParseInlineHTML recognizes [raw HTML]:
// an open tag, closing tag, comment, processing instruction,
// declaration, or CDATA section.
// Tag names must be known HTML elements, matched case-insensitively,
// so that angle-bracketed text that is not HTML stays text.
//
// [raw HTML]: https://spec.commonmark.org/0.30/#raw-html
func ParseInlineHTML(in Input) (rest Input, raw Input, ok bool) {
	s := in.text
	if !strings.HasPrefix(s, "<") || len(s) < 3 {
		return in, raw, false
	}
	end := -1
	switch {
	case strings.HasPrefix(s, htmlCommentPrefix):
		body := s[len(htmlCommentPrefix):]
		if strings.HasPrefix(body, ">") || strings.HasPrefix(body, "->") {
			return in, raw, false
		}
		if i := strings.Index(body, htmlCommentSuffix); i >= 0 {
			end = len(htmlCommentPrefix) + i + len(htmlCommentSuffix)
		}
	case strings.HasPrefix(s, cdataPrefix):
		if i := strings.Index(s, cdataSuffix); i >= 0 {
			end = i + len(cdataSuffix)
		}
	case strings.HasPrefix(s, "<!") && isASCIILetter(s[2]):
		if i := strings.IndexByte(s, '>'); i >= 0 {
			end = i + 1
		}
	case strings.HasPrefix(s, processingInstructionPrefix):
		if i := strings.Index(s[2:], processingInstructionSuffix); i >= 0 {
			end = 2 + i + len(processingInstructionSuffix)
		}
	case s[1] == '/':
		end = parseHTMLClosingTag(s)
	default:
		end = parseHTMLOpenTag(s)
	}
	if end < 0 {
		return in, raw, false
	}
	rest, raw = in.Take(end)
	return rest, raw, true
}

// parseHTMLOpenTag parses an [open tag] and returns the index just past it.
//
// [open tag]: https://spec.commonmark.org/0.30/#open-tag
func parseHTMLOpenTag(s string) (end int) {
	i := parseHTMLTagName(s, 1)
	if i < 0 {
		return -1
	}
	for {
		beforeSpace := i
		i = skipHTMLSpace(s, i)
		if i >= len(s) {
			return -1
		}
		switch s[i] {
		case '/':
			if i+1 < len(s) && s[i+1] == '>' {
				return i + 2
			}
			return -1
		case '>':
			return i + 1
		}
		if i == beforeSpace {
			return -1
		}
		if i = parseHTMLAttribute(s, i); i < 0 {
			return -1
		}
	}
}

// parseHTMLClosingTag parses a [closing tag] and returns the index just past it.
//
// [closing tag]: https://spec.commonmark.org/0.30/#closing-tag
func parseHTMLClosingTag(s string) (end int) {
	i := parseHTMLTagName(s, 2)
	if i < 0 {
		return -1
	}
	i = skipHTMLSpace(s, i)
	if i >= len(s) || s[i] != '>' {
		return -1
	}
	return i + 1
}

// parseHTMLTagName parses a tag name starting at i.
// The name must be a known element.
func parseHTMLTagName(s string, i int) int {
	if i >= len(s) || !isASCIILetter(s[i]) {
		return -1
	}
	start := i
	for i < len(s) && (isASCIIAlnum(s[i]) || s[i] == '-') {
		i++
	}
	if !IsKnownTag(s[start:i]) {
		return -1
	}
	return i
}

// IsKnownTag reports whether name is a known HTML element name,
// ignoring case.
func IsKnownTag(name string) bool {
	a := atom.Lookup([]byte(strings.ToLower(name)))
	return a != 0 && !htmlNonElements[a]
}

// htmlNonElements are atoms that name attributes or values rather than elements.
var htmlNonElements = map[atom.Atom]bool{
	atom.Href:   true,
	atom.Src:    true,
	atom.Class:  true,
	atom.Id:     true,
	atom.Type:   true,
	atom.Name:   true,
	atom.Value:  true,
	atom.Alt:    true,
	atom.Lang:   true,
	atom.Width:  true,
	atom.Height: true,
}

// skipHTMLSpace skips spaces, tabs and up to one line ending.
func skipHTMLSpace(s string, i int) int {
	newline := false
	for i < len(s) {
		switch s[i] {
		case ' ', '\t':
		case '\r':
		case '\n':
			if newline {
				return i
			}
			newline = true
		default:
			return i
		}
		i++
	}
	return i
}

func parseHTMLAttribute(s string, i int) int {
	// Attribute name.
	if c := s[i]; !isASCIILetter(c) && c != '_' && c != ':' {
		return -1
	}
	i++
	for i < len(s) && (isASCIIAlnum(s[i]) || strings.IndexByte("_.:-", s[i]) >= 0) {
		i++
	}

	// Attribute value specification.
	// Don't consume space unless it is followed by an equal sign,
	// since it will cause future attributes to fail.
	j := skipHTMLSpace(s, i)
	if j >= len(s) || s[j] != '=' {
		return i
	}
	j = skipHTMLSpace(s, j+1)
	if j >= len(s) {
		return -1
	}
	switch c := s[j]; {
	case c == '\'' || c == '"':
		k := strings.IndexByte(s[j+1:], c)
		if k < 0 {
			return -1
		}
		return j + 1 + k + 1
	case isUnquotedAttributeValueChar(c):
		for j < len(s) && isUnquotedAttributeValueChar(s[j]) {
			j++
		}
		return j
	default:
		return -1
	}
}

func isUnquotedAttributeValueChar(c byte) bool {
	return !isSpaceTabOrLineEnding(c) && strings.IndexByte("\"'=<>`", c) < 0
}

var (
	htmlBlockStarters1 = []string{
		"<pre",
		"<script",
		"<style",
		"<textarea",
	}
	htmlBlockEnders1 = []string{
		"</pre>",
		"</script>",
		"</style>",
		"</textarea>",
	}

	htmlBlockStarters6 = map[string]bool{
		atom.Address.String():    true,
		atom.Article.String():    true,
		atom.Aside.String():      true,
		atom.Base.String():       true,
		atom.Basefont.String():   true,
		atom.Blockquote.String(): true,
		atom.Body.String():       true,
		atom.Caption.String():    true,
		atom.Center.String():     true,
		atom.Col.String():        true,
		atom.Colgroup.String():   true,
		atom.Dd.String():         true,
		atom.Details.String():    true,
		atom.Dialog.String():     true,
		atom.Dir.String():        true,
		atom.Div.String():        true,
		atom.Dl.String():         true,
		atom.Dt.String():         true,
		atom.Fieldset.String():   true,
		atom.Figcaption.String(): true,
		atom.Figure.String():     true,
		atom.Footer.String():     true,
		atom.Form.String():       true,
		atom.Frame.String():      true,
		atom.Frameset.String():   true,
		atom.H1.String():         true,
		atom.H2.String():         true,
		atom.H3.String():         true,
		atom.H4.String():         true,
		atom.H5.String():         true,
		atom.H6.String():         true,
		atom.Head.String():       true,
		atom.Header.String():     true,
		atom.Hr.String():         true,
		atom.Html.String():       true,
		atom.Iframe.String():     true,
		atom.Legend.String():     true,
		atom.Li.String():         true,
		atom.Link.String():       true,
		atom.Main.String():       true,
		atom.Menu.String():       true,
		atom.Menuitem.String():   true,
		atom.Nav.String():        true,
		atom.Noframes.String():   true,
		atom.Ol.String():         true,
		atom.Optgroup.String():   true,
		atom.Option.String():     true,
		atom.P.String():          true,
		atom.Param.String():      true,
		atom.Section.String():    true,
		atom.Source.String():     true,
		atom.Summary.String():    true,
		atom.Table.String():      true,
		atom.Tbody.String():      true,
		atom.Td.String():         true,
		atom.Tfoot.String():      true,
		atom.Th.String():         true,
		atom.Thead.String():      true,
		atom.Title.String():      true,
		atom.Tr.String():         true,
		atom.Track.String():      true,
		atom.Ul.String():         true,
	}
)
