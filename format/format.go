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

// Package format provides a function to format a Markdown document
// that is equivalent to the original Markdown.
package format

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	marco "github.com/Ranrar/Marco-sub007"
)

// Format writes the given document as normalized Markdown to the given writer.
// Headings are written in ATX form, bullets use "-",
// and code blocks are fenced.
func Format(w io.Writer, doc *marco.Document) error {
	f := &formatter{inlineNotes: make(map[string]*marco.Node)}
	for _, n := range doc.Footnotes {
		f.inlineNotes[n.Label] = n
	}
	ww := &errWriter{w: w}
	for i, n := range doc.Children {
		if i > 0 {
			ww.WriteString("\n")
		}
		ww.WriteString(f.block(n, i == 0))
		ww.WriteString("\n")
	}
	if len(doc.References) > 0 {
		if ww.hasWritten {
			ww.WriteString("\n")
		}
		labels := make([]string, 0, len(doc.References))
		for label := range doc.References {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			def := doc.References[label]
			ww.WriteString("[" + label + "]: " + destination(def.Destination))
			if def.TitlePresent {
				ww.WriteString(" " + title(def.Title))
			}
			ww.WriteString("\n")
		}
	}
	if ww.err != nil {
		return fmt.Errorf("format markdown: %w", ww.err)
	}
	return nil
}

type formatter struct {
	// inlineNotes maps the labels of inline footnotes to their definitions.
	inlineNotes map[string]*marco.Node
}

func (f *formatter) blocks(nodes []*marco.Node, sep string) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, f.block(n, false))
	}
	return strings.Join(parts, sep)
}

func (f *formatter) block(n *marco.Node, first bool) string {
	switch n.Kind {
	case marco.KindParagraph:
		return f.inlines(n.Children)
	case marco.KindHeading:
		return strings.Repeat("#", n.Level) + " " + f.inlines(n.Children)
	case marco.KindThematicBreak:
		if first {
			// Disambiguate from front matter.
			return "***"
		}
		return "---"
	case marco.KindCodeBlock:
		fence := codeFence(n.Literal)
		code := n.Literal
		if code != "" && !strings.HasSuffix(code, "\n") {
			code += "\n"
		}
		return fence + n.Info + "\n" + code + fence
	case marco.KindHTMLBlock:
		return strings.TrimRight(n.Literal, "\n")
	case marco.KindBlockquote:
		return prefixLines(f.blocks(n.Children, "\n\n"), "> ", "> ")
	case marco.KindAdmonition:
		marker := "[!" + strings.ToUpper(n.Admonition.String()) + "]"
		if n.Icon != "" {
			marker = "[" + n.Icon + " " + n.Title + "]"
		}
		body := marker
		if len(n.Children) > 0 {
			body += "\n" + f.blocks(n.Children, "\n\n")
		}
		return prefixLines(body, "> ", "> ")
	case marco.KindList:
		sep := "\n"
		if !n.Tight {
			sep = "\n\n"
		}
		items := make([]string, 0, len(n.Children))
		for i, item := range n.Children {
			marker := "- "
			if n.Ordered {
				marker = strconv.Itoa(n.Start+i) + n.Marker + " "
			}
			body := f.blocks(item.Children, sep)
			items = append(items, prefixLines(body, marker, strings.Repeat(" ", len(marker))))
		}
		return strings.Join(items, sep)
	case marco.KindTable:
		return f.table(n)
	case marco.KindDefinitionList:
		lines := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			if c.Kind == marco.KindDefinitionTerm {
				lines = append(lines, f.inlines(c.Children))
				continue
			}
			lines = append(lines, prefixLines(f.blocks(c.Children, "\n\n"), ": ", "  "))
		}
		return strings.Join(lines, "\n")
	case marco.KindTabGroup:
		sb := new(strings.Builder)
		sb.WriteString(":::tab\n")
		for _, item := range n.Children {
			sb.WriteString("@tab " + item.Title + "\n")
			if len(item.Children) > 0 {
				sb.WriteString(f.blocks(item.Children, "\n\n") + "\n")
			}
		}
		sb.WriteString(":::")
		return sb.String()
	case marco.KindSlideDeck:
		sb := new(strings.Builder)
		sb.WriteString("@slidestart")
		if n.Timer > 0 {
			sb.WriteString(":t" + strconv.Itoa(n.Timer))
		}
		sb.WriteString("\n")
		for i, slide := range n.Children {
			if i > 0 {
				if slide.Vertical {
					sb.WriteString("--\n")
				} else {
					sb.WriteString("---\n")
				}
			}
			if len(slide.Children) > 0 {
				sb.WriteString(f.blocks(slide.Children, "\n\n") + "\n")
			}
		}
		sb.WriteString("@slideend")
		return sb.String()
	case marco.KindFootnoteDefinition:
		return prefixLines(f.blocks(n.Children, "\n\n"), "[^"+n.Label+"]: ", "    ")
	default:
		return f.blocks(n.Children, "\n\n")
	}
}

func (f *formatter) table(n *marco.Node) string {
	sb := new(strings.Builder)
	writeRow := func(row *marco.Node) {
		sb.WriteString("|")
		for _, cell := range row.Children {
			sb.WriteString(" " + strings.ReplaceAll(f.inlines(cell.Children), "|", `\|`) + " |")
		}
		sb.WriteString("\n")
	}
	rows := n.Children
	if len(rows) > 0 && rows[0].Header {
		writeRow(rows[0])
		rows = rows[1:]
	}
	if len(n.Children) > 0 {
		sb.WriteString("|")
		for _, cell := range n.Children[0].Children {
			switch cell.Align {
			case marco.AlignLeft:
				sb.WriteString(" :--- |")
			case marco.AlignCenter:
				sb.WriteString(" :---: |")
			case marco.AlignRight:
				sb.WriteString(" ---: |")
			default:
				sb.WriteString(" --- |")
			}
		}
		sb.WriteString("\n")
	}
	for _, row := range rows {
		writeRow(row)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// inlines serializes a sequence of inline nodes.
func (f *formatter) inlines(nodes []*marco.Node) string {
	sb := new(strings.Builder)
	for _, n := range nodes {
		marco.Walk(n, &marco.WalkOptions{
			Pre: func(c *marco.Cursor) bool {
				return f.preInline(sb, c.Node())
			},
			Post: func(c *marco.Cursor) bool {
				f.postInline(sb, c.Node())
				return true
			},
		})
	}
	return sb.String()
}

func (f *formatter) preInline(sb *strings.Builder, n *marco.Node) (descend bool) {
	switch n.Kind {
	case marco.KindText:
		sb.WriteString(escapeText(n.Literal))
	case marco.KindEmphasis, marco.KindStrong, marco.KindStrikethrough,
		marco.KindHighlight, marco.KindSuperscript, marco.KindSubscript:
		sb.WriteString(n.Marker)
		return true
	case marco.KindLink:
		if isAutolink(n) {
			sb.WriteString("<" + n.Children[0].Literal + ">")
			return false
		}
		sb.WriteString("[")
		return true
	case marco.KindImage:
		sb.WriteString("![")
		return true
	case marco.KindLinkReference:
		sb.WriteString(n.Marker + "[")
		return true
	case marco.KindCodeSpan:
		fence := strings.Repeat("`", longestRun(n.Literal, '`')+1)
		sb.WriteString(fence + n.Literal + fence)
	case marco.KindInlineHTML:
		sb.WriteString(n.Literal)
	case marco.KindSoftBreak:
		sb.WriteString("\n")
	case marco.KindHardBreak:
		sb.WriteString("\\\n")
	case marco.KindFootnoteReference:
		if def := f.inlineNotes[n.Label]; def != nil {
			sb.WriteString("^[")
			for _, c := range def.Children {
				sb.WriteString(f.inlines(c.Children))
			}
			sb.WriteString("]")
			return false
		}
		sb.WriteString("[^" + n.Label + "]")
	case marco.KindTaskCheckbox:
		if n.Checked {
			sb.WriteString("[x]")
		} else {
			sb.WriteString("[ ]")
		}
	case marco.KindMention:
		sb.WriteString("@" + n.Username + "[" + n.Platform + "]")
		if n.Literal != "" {
			sb.WriteString("(" + n.Literal + ")")
		}
	}
	return false
}

func (f *formatter) postInline(sb *strings.Builder, n *marco.Node) {
	switch n.Kind {
	case marco.KindEmphasis, marco.KindStrong, marco.KindStrikethrough,
		marco.KindHighlight, marco.KindSuperscript, marco.KindSubscript:
		sb.WriteString(n.Marker)
	case marco.KindLink, marco.KindImage:
		sb.WriteString("](" + destination(n.Destination))
		if n.HasTitle {
			sb.WriteString(" " + title(n.Title))
		}
		sb.WriteString(")")
	case marco.KindLinkReference:
		sb.WriteString("]" + n.Suffix)
	}
}

// isAutolink reports whether a link can be written as "<destination>".
func isAutolink(n *marco.Node) bool {
	if n.HasTitle || len(n.Children) != 1 || n.Children[0].Kind != marco.KindText {
		return false
	}
	text := n.Children[0].Literal
	if strings.ContainsAny(text, " <>") {
		return false
	}
	return n.Destination == text || n.Destination == "mailto:"+text
}

func destination(dest string) string {
	if dest == "" || strings.ContainsAny(dest, " ()<>") {
		return "<" + strings.NewReplacer("<", `\<`, ">", `\>`).Replace(dest) + ">"
	}
	return dest
}

func title(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

// escapeText backslash-escapes the characters of s
// that could otherwise start an inline construct.
func escapeText(s string) string {
	sb := new(strings.Builder)
	for i := 0; i < len(s); i++ {
		c := s[i]
		next := byte(0)
		if i+1 < len(s) {
			next = s[i+1]
		}
		switch {
		case strings.IndexByte("\\`*_[]<~^", c) >= 0,
			c == '=' && next == '=',
			c == '-' && next == '-',
			c == '&' && (next == '#' || 'a' <= next && next <= 'z' || 'A' <= next && next <= 'Z'):
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// codeFence returns a backtick fence longer than any fence-like run in code.
func codeFence(code string) string {
	return strings.Repeat("`", max(3, longestRun(code, '`')+1))
}

func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}

// prefixLines prefixes the first line of s with first
// and every following non-blank line with rest.
func prefixLines(s, first, rest string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		p := rest
		if i == 0 {
			p = first
		}
		if line == "" {
			p = strings.TrimRight(p, " ")
			if i > 0 && strings.TrimSpace(p) == "" {
				p = ""
			}
		}
		lines[i] = p + line
	}
	return strings.Join(lines, "\n")
}

type errWriter struct {
	w          io.Writer
	hasWritten bool
	err        error
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	w.hasWritten = w.hasWritten || n > 0
	return n, w.err
}
