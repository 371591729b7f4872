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
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Ranrar/Marco-sub007/grammar"
)

// inlineParser converts the text of one leaf block into inline nodes.
type inlineParser struct {
	p      *parser
	depth  int
	// leaf is the full text being parsed,
	// used to look behind the current position.
	leaf   string
	nodes  []*Node
	// delims caches failed delimiter scans over leaf.
	delims grammar.DelimiterCache

	// Pending text: the pendingLen bytes starting at pendingStart.
	pendingStart grammar.Input
	pendingLen   int
}

// inlineStart tries to recognize an inline construct at the start of in.
// A match with no nodes consumes its bytes as literal text.
type inlineStart func(ip *inlineParser, in grammar.Input) (rest grammar.Input, nodes []*Node, ok bool)

// inlineStarts is the list of inline recognizers in priority order.
// It is assigned in init because wrapper rules recurse into parseInlines.
var inlineStarts []inlineStart

func init() {
	inlineStarts = []inlineStart{
		// Code span. An unmatched backtick run is literal text.
		func(ip *inlineParser, in grammar.Input) (grammar.Input, []*Node, bool) {
			n := grammar.BacktickRun(in.String())
			if n == 0 {
				return in, nil, false
			}
			rest, cs, ok := grammar.ParseCodeSpan(in)
			if !ok {
				return in.Advance(n), nil, true
			}
			return rest, []*Node{{
				Kind:    KindCodeSpan,
				Span:    in.Until(rest).Span(),
				Literal: cs.Content.String(),
			}}, true
		},

		// Backslash escape.
		func(ip *inlineParser, in grammar.Input) (grammar.Input, []*Node, bool) {
			rest, escaped, ok := grammar.ParseBackslashEscape(in)
			if !ok {
				return in, nil, false
			}
			return rest, []*Node{{
				Kind:    KindText,
				Span:    in.Until(rest).Span(),
				Literal: escaped.String(),
			}}, true
		},

		wrapperRule(KindStrikethrough, grammar.DelimStrikethrough),
		wrapperRule(KindStrikethrough, grammar.DelimDashStrike),
		wrapperRule(KindHighlight, grammar.DelimMark),

		// Intraword underscores are literal.
		func(ip *inlineParser, in grammar.Input) (grammar.Input, []*Node, bool) {
			s := in.String()
			if !strings.HasPrefix(s, "_") {
				return in, nil, false
			}
			prev := ip.prev(in)
			if prev == '_' || !grammar.IsWordChar(prev) {
				return in, nil, false
			}
			n := 0
			for n < len(s) && s[n] == '_' {
				n++
			}
			return in.Advance(n), nil, true
		},

		// Strong emphasis.
		func(ip *inlineParser, in grammar.Input) (grammar.Input, []*Node, bool) {
			rest, d, ok := ip.delims.Parse(in, grammar.DelimStrongEmphasis, grammar.DelimUnderlineStrongEmphasis)
			if !ok {
				return in, nil, false
			}
			span := in.Until(rest).Span()
			strong := &Node{
				Kind:     KindStrong,
				Span:     span,
				Marker:   d.Delimiter[:2],
				Children: ip.p.parseInlines(d.Content, ip.depth+1),
			}
			return rest, []*Node{{
				Kind:     KindEmphasis,
				Span:     span,
				Marker:   d.Delimiter[:1],
				Children: []*Node{strong},
			}}, true
		},

		wrapperRule(KindStrong, grammar.DelimStrong, grammar.DelimUnderlineStrong),
		wrapperRule(KindEmphasis, grammar.DelimEmphasis, grammar.DelimUnderlineEmphasis),

		// Inline footnote.
		func(ip *inlineParser, in grammar.Input) (grammar.Input, []*Node, bool) {
			rest, content, ok := grammar.ParseInlineFootnote(in)
			if !ok {
				return in, nil, false
			}
			// The definition is registered before its body is parsed
			// so that nested notes receive later labels.
			label := "inline-" + strconv.Itoa(len(ip.p.footnotes)+1)
			body := &Node{
				Kind: KindParagraph,
				Span: content.Span(),
			}
			ip.p.footnotes = append(ip.p.footnotes, &Node{
				Kind:     KindFootnoteDefinition,
				Label:    label,
				Children: []*Node{body},
			})
			body.Children = ip.p.parseInlines(content, ip.depth+1)
			return rest, []*Node{{
				Kind:  KindFootnoteReference,
				Span:  in.Until(rest).Span(),
				Label: label,
			}}, true
		},

		wrapperRule(KindSuperscript, grammar.DelimSuperscript),
		wrapperRule(KindSubscript, grammar.DelimSubscriptArrow),
		wrapperRule(KindSubscript, grammar.DelimSubscript),

		// A delimiter run that did not match is literal as a whole,
		// so that a suffix of the run cannot open a construct.
		func(ip *inlineParser, in grammar.Input) (grammar.Input, []*Node, bool) {
			s := in.String()
			if s == "" || strings.IndexByte("*_~=-^", s[0]) < 0 {
				if !strings.HasPrefix(s, grammar.DelimSubscriptArrow) {
					return in, nil, false
				}
			}
			c, size := utf8.DecodeRuneInString(s)
			n := 0
			for n < len(s) && strings.HasPrefix(s[n:], string(c)) {
				n += size
			}
			return in.Advance(n), nil, true
		},

		// Extended autolink.
		func(ip *inlineParser, in grammar.Input) (grammar.Input, []*Node, bool) {
			switch prev := ip.prev(in); {
			case grammar.IsUnicodeWhitespace(prev), prev == '*', prev == '_', prev == '~', prev == '(':
			default:
				return in, nil, false
			}
			rest, al, ok := grammar.ParseAutolinkLiteral(in)
			if !ok {
				return in, nil, false
			}
			return rest, []*Node{{
				Kind:        KindLink,
				Span:        al.Text.Span(),
				Destination: al.Destination,
				Children:    []*Node{{Kind: KindText, Span: al.Text.Span(), Literal: al.Text.String()}},
			}}, true
		},

		// Autolink.
		func(ip *inlineParser, in grammar.Input) (grammar.Input, []*Node, bool) {
			rest, al, ok := grammar.ParseAutolink(in)
			if !ok {
				return in, nil, false
			}
			dest := al.Destination.String()
			link := &Node{
				Kind:        KindLink,
				Span:        in.Until(rest).Span(),
				Destination: dest,
				Children:    []*Node{{Kind: KindText, Span: al.Destination.Span(), Literal: dest}},
			}
			if al.Email {
				link.Destination = "mailto:" + dest
			}
			return rest, []*Node{link}, true
		},

		// Footnote reference.
		func(ip *inlineParser, in grammar.Input) (grammar.Input, []*Node, bool) {
			rest, fr, ok := grammar.ParseFootnoteReference(in)
			if !ok {
				return in, nil, false
			}
			return rest, []*Node{{
				Kind:  KindFootnoteReference,
				Span:  in.Until(rest).Span(),
				Label: fr.Label.String(),
			}}, true
		},

		// Task checkbox, only at the start of a line.
		func(ip *inlineParser, in grammar.Input) (grammar.Input, []*Node, bool) {
			if !ip.atLineStart(in) {
				return in, nil, false
			}
			rest, tc, ok := grammar.ParseTaskCheckbox(in)
			if !ok {
				return in, nil, false
			}
			return rest, []*Node{{
				Kind:    KindTaskCheckbox,
				Span:    in.Until(rest).Span(),
				Checked: tc.Checked,
			}}, true
		},

		// Image.
		func(ip *inlineParser, in grammar.Input) (grammar.Input, []*Node, bool) {
			rest, img, ok := grammar.ParseImage(in)
			if !ok {
				return in, nil, false
			}
			return rest, []*Node{ip.link(KindImage, in.Until(rest), img)}, true
		},

		// Link.
		func(ip *inlineParser, in grammar.Input) (grammar.Input, []*Node, bool) {
			rest, link, ok := grammar.ParseLink(in)
			if !ok {
				return in, nil, false
			}
			return rest, []*Node{ip.link(KindLink, in.Until(rest), link)}, true
		},

		// Reference link or image, resolved after parsing.
		func(ip *inlineParser, in grammar.Input) (grammar.Input, []*Node, bool) {
			marker := ""
			start := in
			if strings.HasPrefix(in.String(), "![") {
				marker = "!"
				start = in.Advance(1)
			}
			rest, ref, ok := grammar.ParseReferenceLink(start)
			if !ok {
				return in, nil, false
			}
			return rest, []*Node{{
				Kind:     KindLinkReference,
				Span:     in.Until(rest).Span(),
				Label:    ref.Label,
				Suffix:   ref.Suffix,
				Marker:   marker,
				Children: ip.p.parseInlines(ref.Text, ip.depth+1),
			}}, true
		},

		// Inline HTML.
		func(ip *inlineParser, in grammar.Input) (grammar.Input, []*Node, bool) {
			rest, raw, ok := grammar.ParseInlineHTML(in)
			if !ok {
				return in, nil, false
			}
			return rest, []*Node{{
				Kind:    KindInlineHTML,
				Span:    raw.Span(),
				Literal: raw.String(),
			}}, true
		},

		// Hard line break.
		func(ip *inlineParser, in grammar.Input) (grammar.Input, []*Node, bool) {
			rest, brk, ok := grammar.ParseHardBreak(in)
			if !ok || rest.IsEmpty() {
				return in, nil, false
			}
			return rest, []*Node{{Kind: KindHardBreak, Span: brk.Span()}}, true
		},

		// Soft line break.
		func(ip *inlineParser, in grammar.Input) (grammar.Input, []*Node, bool) {
			rest, brk, ok := grammar.ParseSoftBreak(in)
			if !ok {
				return in, nil, false
			}
			return rest, []*Node{{Kind: KindSoftBreak, Span: brk.Span()}}, true
		},

		// Entity or numeric character reference.
		func(ip *inlineParser, in grammar.Input) (grammar.Input, []*Node, bool) {
			rest, decoded, ok := grammar.ParseEntity(in)
			if !ok {
				return in, nil, false
			}
			return rest, []*Node{{
				Kind:    KindText,
				Span:    in.Until(rest).Span(),
				Literal: decoded,
			}}, true
		},

		// Emoji shortcode.
		func(ip *inlineParser, in grammar.Input) (grammar.Input, []*Node, bool) {
			rest, emoji, ok := grammar.ParseEmojiShortcode(in)
			if !ok {
				return in, nil, false
			}
			return rest, []*Node{{
				Kind:    KindText,
				Span:    in.Until(rest).Span(),
				Literal: emoji,
			}}, true
		},

		// Platform mention.
		func(ip *inlineParser, in grammar.Input) (grammar.Input, []*Node, bool) {
			if grammar.IsWordChar(ip.prev(in)) {
				return in, nil, false
			}
			rest, m, ok := grammar.ParseMention(in)
			if !ok {
				return in, nil, false
			}
			return rest, []*Node{{
				Kind:     KindMention,
				Span:     in.Until(rest).Span(),
				Username: m.Username,
				Platform: m.Platform,
				Literal:  m.Display,
			}}, true
		},
	}
}

// wrapperRule returns a rule for an emphasis-class construct
// whose content is parsed recursively.
func wrapperRule(kind NodeKind, delims ...string) inlineStart {
	return func(ip *inlineParser, in grammar.Input) (grammar.Input, []*Node, bool) {
		rest, d, ok := ip.delims.Parse(in, delims...)
		if !ok {
			return in, nil, false
		}
		return rest, []*Node{{
			Kind:     kind,
			Span:     in.Until(rest).Span(),
			Marker:   d.Delimiter,
			Children: ip.p.parseInlines(d.Content, ip.depth+1),
		}}, true
	}
}

// isInlineTrigger reports whether c may start a construct other than text.
func isInlineTrigger(c byte) bool {
	switch c {
	case '`', '\\', '~', '-', '=', '_', '*', '^', '<', '[', '!', '&',
		' ', '\t', '\r', '\n', ':', '@', 'h', 'H', 'w', 'W':
		return true
	default:
		// Lead byte of "˅".
		return c == grammar.DelimSubscriptArrow[0]
	}
}

// parseInlines parses the text of a leaf block.
// depth is the nesting level of in, bounded by the parser's maximum depth.
func (p *parser) parseInlines(in grammar.Input, depth int) []*Node {
	if in.IsEmpty() {
		return nil
	}
	if depth > p.maxDepth {
		p.log.Warn("inline nesting too deep, keeping content as text",
			"pos", in.Pos(), "max_depth", p.maxDepth)
		return []*Node{{Kind: KindText, Span: in.Span(), Literal: in.String()}}
	}
	ip := &inlineParser{
		p:     p,
		depth: depth,
		leaf:  in.String(),
	}
	cur := in
	for !cur.IsEmpty() {
		rest, nodes, ok := ip.next(cur)
		switch {
		case !ok:
			_, size := utf8.DecodeRuneInString(cur.String())
			ip.extendText(cur, size)
			cur = cur.Advance(size)
		case nodes == nil:
			ip.extendText(cur, cur.Len()-rest.Len())
			cur = rest
		default:
			ip.flush()
			ip.nodes = append(ip.nodes, nodes...)
			cur = rest
		}
	}
	ip.flush()
	return ip.nodes
}

// next tries each inline rule at the start of in.
func (ip *inlineParser) next(in grammar.Input) (grammar.Input, []*Node, bool) {
	if !isInlineTrigger(in.String()[0]) {
		return in, nil, false
	}
	for _, start := range inlineStarts {
		if rest, nodes, ok := start(ip, in); ok && rest.Len() < in.Len() {
			return rest, nodes, true
		}
	}
	return in, nil, false
}

func (ip *inlineParser) extendText(at grammar.Input, n int) {
	if ip.pendingLen == 0 {
		ip.pendingStart = at
	}
	ip.pendingLen += n
}

// flush emits the pending text as a single Text node.
func (ip *inlineParser) flush() {
	if ip.pendingLen == 0 {
		return
	}
	text := ip.pendingStart.Truncate(ip.pendingLen)
	ip.nodes = append(ip.nodes, &Node{
		Kind:    KindText,
		Span:    text.Span(),
		Literal: text.String(),
	})
	ip.pendingLen = 0
}

// before returns the leaf text that precedes in.
func (ip *inlineParser) before(in grammar.Input) string {
	return ip.leaf[:len(ip.leaf)-in.Len()]
}

// prev returns the character before in, or a space at the start of the leaf.
func (ip *inlineParser) prev(in grammar.Input) rune {
	b := ip.before(in)
	if b == "" {
		return ' '
	}
	c, _ := utf8.DecodeLastRuneInString(b)
	return c
}

// atLineStart reports whether only spaces or tabs separate in
// from the start of its line.
func (ip *inlineParser) atLineStart(in grammar.Input) bool {
	b := strings.TrimRight(ip.before(in), " \t")
	return b == "" || strings.HasSuffix(b, "\n")
}

func (ip *inlineParser) link(kind NodeKind, source grammar.Input, link grammar.InlineLink) *Node {
	return &Node{
		Kind:        kind,
		Span:        source.Span(),
		Destination: link.Destination,
		Title:       link.Title,
		HasTitle:    link.HasTitle,
		Children:    ip.p.parseInlines(link.Text, ip.depth+1),
	}
}
