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

// Package marco provides a [CommonMark]-compatible Markdown parser
// with the Marco extensions:
// GFM tables, strikethrough, autolinks, footnotes and alerts,
// highlight, superscript and subscript,
// definition lists, tab groups, slide decks,
// emoji shortcodes and platform mentions.
//
// Parsing is total: every input produces a [Document],
// and malformed constructs fall back to literal text.
// Every node that covers source text carries a [Span]
// whose columns are byte offsets.
//
// [CommonMark]: https://commonmark.org/
package marco

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/Ranrar/Marco-sub007/grammar"
)

// DefaultMaxDepth is the default bound on container and inline nesting.
const DefaultMaxDepth = 100

// ParseOptions is the set of parameters to [ParseWithOptions].
// The zero value uses the defaults.
type ParseOptions struct {
	// Logger receives diagnostics about fallbacks.
	// If nil, diagnostics are discarded.
	Logger *log.Logger
	// MaxDepth bounds the nesting of containers and inline wrappers.
	// Content nested more deeply is kept as literal text.
	// If zero, DefaultMaxDepth is used.
	MaxDepth int
}

// Parse parses a Markdown document with the default options.
func Parse(text string) *Document {
	return ParseWithOptions(text, nil)
}

// ParseWithOptions parses a Markdown document.
// It never fails: constructs that cannot be parsed become literal text.
func ParseWithOptions(text string, opts *ParseOptions) *Document {
	if opts == nil {
		opts = new(ParseOptions)
	}
	p := &parser{
		log:      opts.Logger,
		maxDepth: opts.MaxDepth,
		refs:     make(ReferenceMap),
	}
	if p.log == nil {
		p.log = log.New(io.Discard)
	}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}
	if strings.IndexByte(text, 0) >= 0 {
		// Insecure character.
		text = strings.ReplaceAll(text, "\x00", "�")
	}

	doc := &Document{References: p.refs}
	doc.Children = p.parseBlocks(grammar.NewInput(text), 0)
	doc.Footnotes = p.footnotes
	doc.Children = resolveReferences(doc.Children, p.refs)
	doc.Footnotes = resolveReferences(doc.Footnotes, p.refs)
	applyAdmonitions(doc)
	return doc
}

// parser holds the state of a single parse.
type parser struct {
	log       *log.Logger
	maxDepth  int
	refs      ReferenceMap
	footnotes []*Node
}

// failClosed returns in as a single paragraph of literal text.
// It is used when nesting exceeds the configured depth.
func (p *parser) failClosed(in grammar.Input) []*Node {
	content := in.TrimSpace()
	if content.IsEmpty() {
		return nil
	}
	p.log.Warn("nesting too deep, keeping content as text",
		"pos", content.Pos(), "max_depth", p.maxDepth)
	span := content.Span()
	return []*Node{{
		Kind:     KindParagraph,
		Span:     span,
		Children: []*Node{{Kind: KindText, Span: span, Literal: content.String()}},
	}}
}

// skipOne consumes one character that no block recognizer accepted.
func (p *parser) skipOne(in grammar.Input) (grammar.Input, *Node) {
	_, size := utf8.DecodeRuneInString(in.String())
	if size == 0 {
		size = 1
	}
	rest, skipped := in.Take(size)
	p.log.Warn("no block matched, skipping one character",
		"pos", skipped.Pos(), "char", skipped.String())
	if grammar.IsBlank(skipped.String()) {
		return rest, nil
	}
	span := skipped.Span()
	return rest, &Node{
		Kind:     KindParagraph,
		Span:     span,
		Children: []*Node{{Kind: KindText, Span: span, Literal: skipped.String()}},
	}
}
