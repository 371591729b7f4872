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

//go:generate stringer -type=NodeKind -trimprefix=Kind -output=nodekind_string.go

package marco

import (
	"fmt"
	"strings"

	"github.com/Ranrar/Marco-sub007/grammar"
)

// Position is a location in a source document.
//
// Column is a byte offset within the line, not a character count.
// Editors that address text by code point must convert it first.
type Position = grammar.Position

// Span is a half-open range of positions in a source document.
// The zero Span marks a node with no source text.
type Span = grammar.Span

// Alignment is the horizontal alignment of a table column.
type Alignment = grammar.Alignment

// Table column alignments.
const (
	AlignNone   = grammar.AlignNone
	AlignLeft   = grammar.AlignLeft
	AlignCenter = grammar.AlignCenter
	AlignRight  = grammar.AlignRight
)

// Document is the root of a parsed Markdown document.
type Document struct {
	Children []*Node
	// References holds the link reference definitions found in the document.
	References ReferenceMap
	// Footnotes holds the definitions generated for inline footnotes ("^[...]").
	// They are not part of the main flow and have no span.
	Footnotes []*Node
}

// Node is an element of a parsed document.
// Which of the payload fields are meaningful depends on Kind.
type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node

	// Literal is the text of Text, CodeSpan, InlineHTML, CodeBlock, and HTMLBlock nodes,
	// the raw text of a Heading, and the display name of a Mention.
	Literal string
	// Level is the heading level, 1 through 6.
	Level int
	// Info is the info string of a fenced CodeBlock.
	Info string

	// Destination, Title and HasTitle describe Link and Image nodes.
	Destination string
	Title       string
	HasTitle    bool

	// Label is the reference label of LinkReference, FootnoteReference,
	// and FootnoteDefinition nodes.
	Label string
	// Suffix is the source text after the brackets of a LinkReference:
	// "" for shortcut, "[]" for collapsed, "[label]" for full references.
	Suffix string

	// Ordered, Start and Tight describe List nodes.
	Ordered bool
	Start   int
	Tight   bool
	// Marker is the bullet or delimiter of a List or ListItem,
	// the fence of a CodeBlock, the character of a ThematicBreak,
	// the delimiter of an emphasis-class node,
	// or "!" for a LinkReference to an image.
	Marker string

	// Header reports whether a TableRow or TableCell is in the header.
	Header bool
	Align  Alignment

	// Checked is the state of a TaskCheckbox.
	Checked bool

	// Vertical reports whether a Slide was introduced by a "--" separator.
	Vertical bool
	// Timer is the auto-advance interval of a SlideDeck in seconds, or 0.
	Timer int

	// Admonition, Icon and Title (shared with links) describe Admonition nodes.
	Admonition AdmonitionKind
	Icon       string

	// Username and Platform describe Mention nodes.
	Username string
	Platform string
}

// Language returns the first word of a code block's info string.
func (n *Node) Language() string {
	if n == nil {
		return ""
	}
	lang, _, _ := strings.Cut(n.Info, " ")
	return lang
}

// IsLeaf reports whether n never has children.
func (n *Node) IsLeaf() bool {
	switch n.Kind {
	case KindText, KindCodeSpan, KindInlineHTML, KindHardBreak, KindSoftBreak,
		KindFootnoteReference, KindTaskCheckbox, KindMention,
		KindCodeBlock, KindHTMLBlock, KindThematicBreak:
		return true
	default:
		return false
	}
}

// Text returns the concatenated literal text of n and its descendants.
// Breaks become newlines.
func (n *Node) Text() string {
	sb := new(strings.Builder)
	Walk(n, &WalkOptions{
		Pre: func(c *Cursor) bool {
			switch c.Node().Kind {
			case KindText, KindCodeSpan, KindCodeBlock:
				sb.WriteString(c.Node().Literal)
			case KindSoftBreak, KindHardBreak:
				sb.WriteString("\n")
			}
			return true
		},
	})
	return sb.String()
}

// NodeKind is an enumeration of the kinds of [Node].
type NodeKind uint8

// Block kinds.
const (
	KindHeading NodeKind = 1 + iota
	KindParagraph
	KindCodeBlock
	KindThematicBreak
	KindList
	KindListItem
	KindBlockquote
	KindTable
	KindTableRow
	KindTableCell
	KindHTMLBlock
	KindSlideDeck
	KindSlide
	KindTabGroup
	KindTabItem
	KindAdmonition
	KindDefinitionList
	KindDefinitionTerm
	KindDefinitionDescription
	KindFootnoteDefinition

	// Inline kinds.

	KindText
	KindEmphasis
	KindStrong
	KindStrikethrough
	KindHighlight
	KindSuperscript
	KindSubscript
	KindLink
	KindImage
	KindLinkReference
	KindCodeSpan
	KindInlineHTML
	KindHardBreak
	KindSoftBreak
	KindFootnoteReference
	KindTaskCheckbox
	KindMention
)

// IsBlock reports whether k is a block-level kind.
func (k NodeKind) IsBlock() bool {
	return KindHeading <= k && k <= KindFootnoteDefinition
}

// IsInline reports whether k is an inline kind.
func (k NodeKind) IsInline() bool {
	return KindText <= k && k <= KindMention
}

// ParseNodeKind returns the kind with the given name, as returned by [NodeKind.String].
func ParseNodeKind(name string) (NodeKind, error) {
	for k := KindHeading; k <= KindMention; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown node kind %q", name)
}

// MarshalYAML encodes the kind by name.
func (k NodeKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// UnmarshalYAML decodes a kind name.
func (k *NodeKind) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	kind, err := ParseNodeKind(name)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// AdmonitionKind is the kind of an admonition callout.
type AdmonitionKind uint8

// Admonition kinds.
const (
	AdmonitionNote AdmonitionKind = iota
	AdmonitionTip
	AdmonitionImportant
	AdmonitionWarning
	AdmonitionCaution
)

var admonitionNames = [...]string{
	AdmonitionNote:      "note",
	AdmonitionTip:       "tip",
	AdmonitionImportant: "important",
	AdmonitionWarning:   "warning",
	AdmonitionCaution:   "caution",
}

// String returns the lower-case name of the kind.
func (k AdmonitionKind) String() string {
	if int(k) >= len(admonitionNames) {
		return fmt.Sprintf("AdmonitionKind(%d)", k)
	}
	return admonitionNames[k]
}

// AdmonitionStyle returns "alert" for the GitHub alert markers
// and "quote" for custom "[icon Title]" callouts.
func (n *Node) AdmonitionStyle() string {
	if n.Icon != "" {
		return "quote"
	}
	return "alert"
}
