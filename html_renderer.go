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

//go:generate stringer -type=SoftBreakBehavior -output=html_string.go

package marco

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shurcooL/sanitized_anchor_name"
	"go4.org/bytereplacer"
	"golang.org/x/net/html/atom"

	"github.com/Ranrar/Marco-sub007/grammar"
)

// An HTMLRenderer converts parsed documents into HTML.
//
// # Security considerations
//
// Markdown permits the use of [raw HTML], which can introduce
// [Cross-Site Scripting (XSS)] vulnerabilities and [HTML parse errors]
// when used with untrusted inputs.
// There are a few options to mitigate this risk:
//
//   - The resulting HTML can be sent through an HTML sanitizer.
//     This is highly recommended.
//   - Set IgnoreRaw to prevent inclusion of raw HTML.
//     This eliminates any raw HTML usage,
//     so the output is guaranteed to use a fixed set of elements
//     and avoid parse errors.
//     However, this can lead to content being omitted from the document entirely,
//     which may be surprising to end-users for legitimate use cases.
//   - FilterTag can be used to prevent some tags from being used
//     while still showing the source text.
//     Note that this does not prevent parse errors.
//     For untrusted inputs, this technique should be combined with sanitization.
//
// [Cross-Site Scripting (XSS)]: https://owasp.org/www-community/attacks/xss/
// [HTML parse errors]: https://html.spec.whatwg.org/multipage/parsing.html#parse-errors
// [raw HTML]: https://spec.commonmark.org/0.30/#raw-html
type HTMLRenderer struct {
	// SoftBreakBehavior determines how soft line breaks are rendered.
	SoftBreakBehavior SoftBreakBehavior
	// If IgnoreRaw is true, the renderer skips any HTML blocks or raw HTML.
	IgnoreRaw bool
	// FilterTag is a predicate function
	// that reports whether an element with the given lowercased tag name
	// should have its leading angle bracket escaped.
	// If FilterTag is nil, then no filtering will occur.
	//
	// FilterTag functions must not modify the byte slice
	// nor retain the slice after the function returns.
	FilterTag func(tag []byte) bool
	// If HeadingIDs is true, headings get an id attribute
	// derived from their text.
	HeadingIDs bool
}

// RenderHTML writes the given document to the given writer as HTML
// using the default options for [HTMLRenderer].
func RenderHTML(w io.Writer, doc *Document) error {
	return new(HTMLRenderer).Render(w, doc)
}

// Render writes the given document to the given writer as HTML.
func (r *HTMLRenderer) Render(w io.Writer, doc *Document) error {
	if _, err := w.Write(r.AppendDocument(nil, doc)); err != nil {
		return fmt.Errorf("render markdown to html: %w", err)
	}
	return nil
}

// AppendDocument appends the rendered HTML of a document to dst
// and returns the resulting byte slice.
// Footnotes are collected into a trailing section
// numbered in order of first reference.
func (r *HTMLRenderer) AppendDocument(dst []byte, doc *Document) []byte {
	state := &renderState{
		HTMLRenderer:  r,
		dst:           dst,
		footnoteDefs:  make(map[string]*Node),
		footnoteIndex: make(map[string]int),
		headingIDs:    make(map[string]int),
	}
	WalkDocument(doc, &WalkOptions{
		Pre: func(c *Cursor) bool {
			if n := c.Node(); n.Kind == KindFootnoteDefinition {
				key := NormalizeLabel(n.Label)
				if _, dup := state.footnoteDefs[key]; !dup {
					state.footnoteDefs[key] = n
				}
			}
			return true
		},
	})
	for _, b := range doc.Children {
		state.block(b, false)
	}
	state.footnotes()
	return state.dst
}

type renderState struct {
	*HTMLRenderer
	dst      []byte
	lowerBuf []byte

	footnoteDefs  map[string]*Node
	footnoteIndex map[string]int
	footnoteOrder []string
	headingIDs    map[string]int
	tabGroups     int
}

func (r *renderState) openTagAttr(name atom.Atom) {
	start := len(r.dst)
	r.dst = append(r.dst, '<')
	r.dst = append(r.dst, name.String()...)
	if r.FilterTag != nil && r.FilterTag(r.dst[start+1:]) {
		r.dst = r.dst[:start]
		r.dst = append(r.dst, "&lt;"...)
		r.dst = append(r.dst, name.String()...)
	}
}

func (r *renderState) openTag(name atom.Atom) {
	r.openTagAttr(name)
	r.dst = append(r.dst, '>')
}

func (r *renderState) closeTag(name atom.Atom) {
	start := len(r.dst)
	r.dst = append(r.dst, "</"...)
	r.dst = append(r.dst, name.String()...)
	if r.FilterTag != nil && r.FilterTag(r.dst[start+2:]) {
		r.dst = r.dst[:start]
		r.dst = append(r.dst, "&lt;/"...)
		r.dst = append(r.dst, name.String()...)
	}
	r.dst = append(r.dst, '>')
}

func (r *renderState) attr(key, value string) {
	r.dst = append(r.dst, ' ')
	r.dst = append(r.dst, key...)
	r.dst = append(r.dst, `="`...)
	r.dst = escapeHTML(r.dst, value)
	r.dst = append(r.dst, '"')
}

func (r *renderState) openTagClass(name atom.Atom, class string) {
	r.openTagAttr(name)
	r.attr("class", class)
	r.dst = append(r.dst, '>')
}

var headingTags = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func (r *renderState) block(n *Node, tight bool) {
	switch n.Kind {
	case KindParagraph:
		if tight {
			r.inlines(n.Children)
			break
		}
		r.openTag(atom.P)
		r.inlines(n.Children)
		r.closeTag(atom.P)
	case KindThematicBreak:
		r.openTag(atom.Hr)
	case KindHeading:
		tagName := headingTags[min(max(n.Level, 1), 6)-1]
		r.openTagAttr(tagName)
		if r.HeadingIDs {
			r.attr("id", r.headingID(n))
		}
		r.dst = append(r.dst, '>')
		r.inlines(n.Children)
		r.closeTag(tagName)
	case KindCodeBlock:
		r.openTag(atom.Pre)
		r.openTagAttr(atom.Code)
		if lang := n.Language(); lang != "" {
			r.attr("class", "language-"+lang)
		}
		r.dst = append(r.dst, '>')
		r.dst = escapeHTML(r.dst, n.Literal)
		r.closeTag(atom.Code)
		r.closeTag(atom.Pre)
	case KindBlockquote:
		r.openTag(atom.Blockquote)
		r.dst = append(r.dst, '\n')
		r.blocks(n.Children, false)
		r.closeTag(atom.Blockquote)
	case KindAdmonition:
		kind := n.Admonition.String()
		r.openTagClass(atom.Div, "markdown-alert markdown-alert-"+kind+" markdown-alert-"+n.AdmonitionStyle())
		r.dst = append(r.dst, '\n')
		r.openTagClass(atom.P, "markdown-alert-title")
		if n.Icon != "" {
			r.dst = escapeHTML(r.dst, n.Icon+" "+n.Title)
		} else {
			r.dst = escapeHTML(r.dst, strings.ToUpper(kind[:1])+kind[1:])
		}
		r.closeTag(atom.P)
		r.dst = append(r.dst, '\n')
		r.blocks(n.Children, false)
		r.closeTag(atom.Div)
	case KindList:
		var tagName atom.Atom
		if n.Ordered {
			tagName = atom.Ol
			r.openTagAttr(tagName)
			if n.Start != 1 {
				r.dst = append(r.dst, ` start="`...)
				r.dst = strconv.AppendInt(r.dst, int64(n.Start), 10)
				r.dst = append(r.dst, `"`...)
			}
			r.dst = append(r.dst, ">"...)
		} else {
			tagName = atom.Ul
			r.openTag(tagName)
		}
		r.dst = append(r.dst, '\n')
		for _, item := range n.Children {
			r.openTag(atom.Li)
			if !n.Tight {
				r.dst = append(r.dst, '\n')
			}
			r.blocks(item.Children, n.Tight)
			r.closeTag(atom.Li)
			r.dst = append(r.dst, '\n')
		}
		r.closeTag(tagName)
	case KindTable:
		r.table(n)
	case KindHTMLBlock:
		if r.IgnoreRaw {
			return
		}
		r.raw(strings.TrimRight(n.Literal, "\n"))
	case KindDefinitionList:
		r.openTag(atom.Dl)
		r.dst = append(r.dst, '\n')
		for _, c := range n.Children {
			switch c.Kind {
			case KindDefinitionTerm:
				r.openTag(atom.Dt)
				r.inlines(c.Children)
				r.closeTag(atom.Dt)
			case KindDefinitionDescription:
				r.openTag(atom.Dd)
				r.blocks(c.Children, len(c.Children) == 1)
				r.closeTag(atom.Dd)
			}
			r.dst = append(r.dst, '\n')
		}
		r.closeTag(atom.Dl)
	case KindTabGroup:
		r.tabs(n)
	case KindSlideDeck:
		r.openTagAttr(atom.Div)
		r.attr("class", "marco-sliders")
		if n.Timer > 0 {
			r.attr("data-timer", strconv.Itoa(n.Timer))
		}
		r.dst = append(r.dst, ">\n"...)
		for _, slide := range n.Children {
			class := "marco-slide"
			if slide.Vertical {
				class += " marco-slide--vertical"
			}
			r.openTagClass(atom.Section, class)
			r.dst = append(r.dst, '\n')
			r.blocks(slide.Children, false)
			r.closeTag(atom.Section)
			r.dst = append(r.dst, '\n')
		}
		r.closeTag(atom.Div)
	case KindFootnoteDefinition:
		// Rendered in the footnotes section.
		return
	default:
		r.inlines(n.Children)
	}
	r.dst = append(r.dst, '\n')
}

func (r *renderState) blocks(nodes []*Node, tight bool) {
	for i, c := range nodes {
		r.block(c, tight)
		if tight && c.Kind == KindParagraph && i == len(nodes)-1 {
			// Drop the newline after the last tight paragraph.
			r.dst = r.dst[:len(r.dst)-1]
		}
	}
}

func (r *renderState) headingID(n *Node) string {
	id := sanitized_anchor_name.Create(n.Text())
	if id == "" {
		id = "section"
	}
	count := r.headingIDs[id]
	r.headingIDs[id] = count + 1
	if count > 0 {
		id += "-" + strconv.Itoa(count)
	}
	return id
}

func (r *renderState) table(n *Node) {
	r.openTag(atom.Table)
	r.dst = append(r.dst, '\n')
	inBody := false
	for i, row := range n.Children {
		if i == 0 && row.Header {
			r.openTag(atom.Thead)
			r.dst = append(r.dst, '\n')
			r.tableRow(row, atom.Th)
			r.closeTag(atom.Thead)
			r.dst = append(r.dst, '\n')
			continue
		}
		if !inBody {
			r.openTag(atom.Tbody)
			r.dst = append(r.dst, '\n')
			inBody = true
		}
		r.tableRow(row, atom.Td)
	}
	if inBody {
		r.closeTag(atom.Tbody)
		r.dst = append(r.dst, '\n')
	}
	r.closeTag(atom.Table)
}

func (r *renderState) tableRow(row *Node, cellTag atom.Atom) {
	r.openTag(atom.Tr)
	r.dst = append(r.dst, '\n')
	for _, cell := range row.Children {
		r.openTagAttr(cellTag)
		if cell.Align != AlignNone {
			r.attr("align", cell.Align.String())
		}
		r.dst = append(r.dst, '>')
		r.inlines(cell.Children)
		r.closeTag(cellTag)
		r.dst = append(r.dst, '\n')
	}
	r.closeTag(atom.Tr)
	r.dst = append(r.dst, '\n')
}

// tabs renders a tab group as radio inputs with labels followed by panels,
// so that the group works without scripts.
func (r *renderState) tabs(n *Node) {
	r.tabGroups++
	name := "marco-tabs-" + strconv.Itoa(r.tabGroups)
	r.openTagClass(atom.Div, "marco-tabs")
	r.dst = append(r.dst, '\n')
	for i, item := range n.Children {
		id := name + "-" + strconv.Itoa(i+1)
		r.openTagAttr(atom.Input)
		r.attr("type", "radio")
		r.attr("class", "marco-tabs__radio")
		r.attr("name", name)
		r.attr("id", id)
		if i == 0 {
			r.dst = append(r.dst, " checked"...)
		}
		r.dst = append(r.dst, '>')
		r.openTagAttr(atom.Label)
		r.attr("class", "marco-tabs__label")
		r.attr("for", id)
		r.dst = append(r.dst, '>')
		r.dst = escapeHTML(r.dst, item.Title)
		r.closeTag(atom.Label)
		r.dst = append(r.dst, '\n')
	}
	for _, item := range n.Children {
		r.openTagClass(atom.Div, "marco-tabs__panel")
		r.dst = append(r.dst, '\n')
		r.blocks(item.Children, false)
		r.closeTag(atom.Div)
		r.dst = append(r.dst, '\n')
	}
	r.closeTag(atom.Div)
}

func (r *renderState) footnotes() {
	if len(r.footnoteOrder) == 0 {
		return
	}
	r.openTagClass(atom.Section, "footnotes")
	r.dst = append(r.dst, '\n')
	r.openTag(atom.Ol)
	r.dst = append(r.dst, '\n')
	// Footnote bodies may reference further footnotes.
	for i := 0; i < len(r.footnoteOrder); i++ {
		key := r.footnoteOrder[i]
		def := r.footnoteDefs[key]
		r.openTagAttr(atom.Li)
		r.attr("id", "fn-"+key)
		r.dst = append(r.dst, ">\n"...)
		r.blocks(def.Children, false)
		r.openTagAttr(atom.A)
		r.attr("href", "#fnref-"+key)
		r.attr("class", "footnote-backref")
		r.dst = append(r.dst, ">↩"...)
		r.closeTag(atom.A)
		r.dst = append(r.dst, '\n')
		r.closeTag(atom.Li)
		r.dst = append(r.dst, '\n')
	}
	r.closeTag(atom.Ol)
	r.dst = append(r.dst, '\n')
	r.closeTag(atom.Section)
	r.dst = append(r.dst, '\n')
}

func (r *renderState) inlines(nodes []*Node) {
	for _, c := range nodes {
		r.inline(c)
	}
}

func (r *renderState) inline(n *Node) {
	const hardLineBreak = "<br>\n"
	switch n.Kind {
	case KindText:
		r.dst = escapeHTML(r.dst, n.Literal)
	case KindInlineHTML:
		if !r.IgnoreRaw {
			r.raw(n.Literal)
		}
	case KindSoftBreak:
		switch r.SoftBreakBehavior {
		case SoftBreakHarden:
			r.dst = append(r.dst, hardLineBreak...)
		case SoftBreakSpace:
			r.dst = append(r.dst, ' ')
		default:
			r.dst = append(r.dst, '\n')
		}
	case KindHardBreak:
		r.dst = append(r.dst, hardLineBreak...)
	case KindEmphasis:
		r.wrap(atom.Em, n.Children)
	case KindStrong:
		r.wrap(atom.Strong, n.Children)
	case KindStrikethrough:
		r.wrap(atom.Del, n.Children)
	case KindHighlight:
		r.wrap(atom.Mark, n.Children)
	case KindSuperscript:
		r.wrap(atom.Sup, n.Children)
	case KindSubscript:
		r.wrap(atom.Sub, n.Children)
	case KindCodeSpan:
		r.openTag(atom.Code)
		r.dst = escapeHTML(r.dst, grammar.NormalizeCodeSpan(n.Literal))
		r.closeTag(atom.Code)
	case KindLink:
		r.openTagAttr(atom.A)
		r.attr("href", NormalizeURI(n.Destination))
		if n.HasTitle {
			r.attr("title", n.Title)
		}
		r.dst = append(r.dst, ">"...)
		r.inlines(n.Children)
		r.closeTag(atom.A)
	case KindImage:
		r.openTagAttr(atom.Img)
		r.attr("src", NormalizeURI(n.Destination))
		r.attr("alt", strings.ReplaceAll(n.Text(), "\n", " "))
		if n.HasTitle {
			r.attr("title", n.Title)
		}
		r.dst = append(r.dst, ">"...)
	case KindLinkReference:
		// Only present if the document was not resolved.
		r.dst = escapeHTML(r.dst, n.Marker+"[")
		r.inlines(n.Children)
		r.dst = escapeHTML(r.dst, "]"+n.Suffix)
	case KindFootnoteReference:
		key := NormalizeLabel(n.Label)
		if _, ok := r.footnoteDefs[key]; !ok {
			r.dst = escapeHTML(r.dst, "[^"+n.Label+"]")
			return
		}
		num, seen := r.footnoteIndex[key]
		if !seen {
			r.footnoteOrder = append(r.footnoteOrder, key)
			num = len(r.footnoteOrder)
			r.footnoteIndex[key] = num
		}
		r.openTagClass(atom.Sup, "footnote-ref")
		r.openTagAttr(atom.A)
		r.attr("href", "#fn-"+key)
		if !seen {
			r.attr("id", "fnref-"+key)
		}
		r.dst = append(r.dst, '>')
		r.dst = strconv.AppendInt(r.dst, int64(num), 10)
		r.closeTag(atom.A)
		r.closeTag(atom.Sup)
	case KindTaskCheckbox:
		r.openTagAttr(atom.Input)
		r.dst = append(r.dst, ` type="checkbox" disabled`...)
		if n.Checked {
			r.dst = append(r.dst, " checked"...)
		}
		r.dst = append(r.dst, '>')
	case KindMention:
		r.openTagAttr(atom.Span)
		r.attr("class", "marco-mention")
		r.attr("data-platform", n.Platform)
		r.attr("data-username", n.Username)
		r.dst = append(r.dst, '>')
		if n.Literal != "" {
			r.dst = escapeHTML(r.dst, n.Literal)
		} else {
			r.dst = escapeHTML(r.dst, "@"+n.Username)
		}
		r.closeTag(atom.Span)
	default:
		r.inlines(n.Children)
	}
}

func (r *renderState) wrap(tagName atom.Atom, children []*Node) {
	r.openTag(tagName)
	r.inlines(children)
	r.closeTag(tagName)
}

func (r *renderState) raw(s string) {
	if r.FilterTag == nil {
		r.dst = append(r.dst, s...)
		return
	}
	r.filterRaw(s)
}

const (
	htmlCommentPrefix           = "<!--"
	htmlCommentSuffix           = "-->"
	processingInstructionPrefix = "<?"
	processingInstructionSuffix = "?>"
	cdataPrefix                 = "<![CDATA["
	cdataSuffix                 = "]]>"
)

// filterRaw performs the tag filtering
// described in https://github.github.com/gfm/#disallowed-raw-html-extension-.
//
// It cannot use a conventional HTML parser,
// since raw HTML in Markdown may be incomplete or start in the middle of a tag.
func (r *renderState) filterRaw(rawHTML string) {
	const (
		copyState = iota
		commentState
		piState
		declState
		cdataState
	)
	state := copyState
	copyStart := 0
	for i := 0; i < len(rawHTML); {
		switch state {
		case copyState:
			if rawHTML[i] != '<' {
				i++
				break
			}
			switch rest := rawHTML[i:]; {
			case strings.HasPrefix(rest, cdataPrefix):
				state = cdataState
				i += len(cdataPrefix)
			case strings.HasPrefix(rest, htmlCommentPrefix):
				state = commentState
				i += len(htmlCommentPrefix)
			case strings.HasPrefix(rest, processingInstructionPrefix):
				state = piState
				i += len(processingInstructionPrefix)
			case len(rest) >= 3 && rest[1] == '!' && isASCIILetter(rest[2]):
				state = declState
				i += len("<!x")
			default:
				tagNameStart := i + 1
				tagEnd := len(rawHTML)
				if j := strings.IndexByte(rawHTML[tagNameStart:], '>'); j >= 0 {
					tagEnd = tagNameStart + j + len(">")
				}
				tagNameEnd := tagNameStart + htmlTagNameEnd(rawHTML[tagNameStart:tagEnd])
				tagName := maybeLower(strings.TrimPrefix(rawHTML[tagNameStart:tagNameEnd], "/"), &r.lowerBuf)
				if r.FilterTag(tagName) {
					r.dst = append(r.dst, rawHTML[copyStart:i]...)
					r.dst = append(r.dst, "&lt;"...)
					r.dst = append(r.dst, rawHTML[tagNameStart:tagEnd]...)
					copyStart = tagEnd
				}
				i = tagEnd
			}
		case commentState:
			if strings.HasPrefix(rawHTML[i:], htmlCommentSuffix) {
				state = copyState
				i += len(htmlCommentSuffix)
			} else {
				i++
			}
		case piState:
			if strings.HasPrefix(rawHTML[i:], processingInstructionSuffix) {
				state = copyState
				i += len(processingInstructionSuffix)
			} else {
				i++
			}
		case declState:
			if rawHTML[i] == '>' {
				state = copyState
			}
			i++
		case cdataState:
			if strings.HasPrefix(rawHTML[i:], cdataSuffix) {
				state = copyState
				i += len(cdataSuffix)
			} else {
				i++
			}
		default:
			panic("unreachable")
		}
	}

	r.dst = append(r.dst, rawHTML[copyStart:]...)
}

// htmlTagNameEnd returns the end of the tag name at the start of s,
// skipping the slash of a closing tag.
func htmlTagNameEnd(s string) int {
	i := 0
	if i < len(s) && s[i] == '/' {
		i++
	}
	for i < len(s) && (isASCIILetter(s[i]) || isASCIIDigit(s[i]) || s[i] == '-') {
		i++
	}
	return i
}

var htmlEscaper = bytereplacer.New(
	"&", "&amp;",
	// "&#39;" is shorter than "&apos;" and apos was not in HTML until HTML5.
	`'`, "&#39;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
)

// escapeHTML appends the HTML-escaped version of a string to a byte slice.
func escapeHTML(dst []byte, s string) []byte {
	if !strings.ContainsAny(s, `&'<>"`) {
		return append(dst, s...)
	}
	return append(dst, htmlEscaper.Replace([]byte(s))...)
}

func maybeLower(x string, buf *[]byte) []byte {
	*buf = (*buf)[:0]
	for i := 0; i < len(x); i++ {
		if b := x[i]; 'A' <= b && b <= 'Z' {
			*buf = append(*buf, b-'A'+'a')
		} else {
			*buf = append(*buf, b)
		}
	}
	return *buf
}

// FilterTagGFM performs the same tag filtering as the
// GitHub Flavored Markdown [tagfilter extension].
// It is suitable for use as the FilterTag field in [HTMLRenderer].
//
// [tagfilter extension]: https://github.github.com/gfm/#disallowed-raw-html-extension-
func FilterTagGFM(tag []byte) bool {
	tagAtom := atom.Lookup(tag)
	return tagAtom == atom.Title ||
		tagAtom == atom.Textarea ||
		tagAtom == atom.Style ||
		tagAtom == atom.Xmp ||
		tagAtom == atom.Iframe ||
		tagAtom == atom.Noembed ||
		tagAtom == atom.Noframes ||
		tagAtom == atom.Script ||
		tagAtom == atom.Plaintext
}

// SoftBreakBehavior is an enumeration of rendering styles for [soft line breaks].
//
// [soft line breaks]: https://spec.commonmark.org/0.30/#soft-line-breaks
type SoftBreakBehavior int

const (
	// SoftBreakPreserve indicates that a soft line break should be rendered as a newline.
	SoftBreakPreserve SoftBreakBehavior = iota
	// SoftBreakSpace indicates that a soft line break should be rendered as a space.
	SoftBreakSpace
	// SoftBreakHarden indicates that a soft line break should be rendered as a hard line break.
	SoftBreakHarden
)

// ParseSoftBreakBehavior parses the lower-case name of a behavior
// ("preserve", "space" or "harden").
func ParseSoftBreakBehavior(name string) (SoftBreakBehavior, error) {
	for b := SoftBreakPreserve; b <= SoftBreakHarden; b++ {
		if strings.EqualFold(strings.TrimPrefix(b.String(), "SoftBreak"), name) {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown soft break behavior %q", name)
}

// NormalizeURI percent-encodes any characters in a string
// that are not reserved or unreserved URI characters.
// This is commonly used for transforming link destinations
// into strings suitable for href or src attributes.
func NormalizeURI(s string) string {
	// RFC 3986 reserved and unreserved characters.
	const safeSet = `;/?:@&=+$,-_.!~*'()#`

	sb := new(strings.Builder)
	sb.Grow(len(s))
	skip := 0
	var buf [utf8.UTFMax]byte
	for i, c := range s {
		if skip > 0 {
			skip--
			sb.WriteRune(c)
			continue
		}
		switch {
		case c == '%':
			if i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
				skip = 2
				sb.WriteByte('%')
			} else {
				sb.WriteString("%25")
			}
		case (c < 0x80 && (isASCIILetter(byte(c)) || isASCIIDigit(byte(c)))) || strings.ContainsRune(safeSet, c):
			sb.WriteRune(c)
		default:
			n := utf8.EncodeRune(buf[:], c)
			for _, b := range buf[:n] {
				sb.WriteByte('%')
				sb.WriteByte(urlHexDigit(b >> 4))
				sb.WriteByte(urlHexDigit(b & 0x0f))
			}
		}
	}
	return sb.String()
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHex(c byte) bool {
	return 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F' || isASCIIDigit(c)
}

func urlHexDigit(x byte) byte {
	switch {
	case x < 0xa:
		return '0' + x
	case x < 0x10:
		return 'A' + x - 0xa
	default:
		panic("out of bounds")
	}
}
