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

import "fmt"

// HighlightTag classifies a [Highlight] for editor decoration.
type HighlightTag uint8

// Highlight tags.
const (
	TagH1 HighlightTag = 1 + iota
	TagH2
	TagH3
	TagH4
	TagH5
	TagH6
	TagEmphasis
	TagStrong
	TagStrikethrough
	TagMark
	TagSuperscript
	TagSubscript
	TagLink
	TagImage
	TagCodeSpan
	TagCodeBlock
	TagInlineHTML
	TagHTMLBlock
	TagBlockquote
	TagAdmonition
	TagThematicBreak
	TagListMarker
	TagTaskCheckbox
	TagFootnoteReference
	TagFootnoteDefinition
	TagTable
	TagMention
)

var highlightTagNames = [...]string{
	TagH1:                 "h1",
	TagH2:                 "h2",
	TagH3:                 "h3",
	TagH4:                 "h4",
	TagH5:                 "h5",
	TagH6:                 "h6",
	TagEmphasis:           "emphasis",
	TagStrong:             "strong",
	TagStrikethrough:      "strikethrough",
	TagMark:               "mark",
	TagSuperscript:        "superscript",
	TagSubscript:          "subscript",
	TagLink:               "link",
	TagImage:              "image",
	TagCodeSpan:           "code-span",
	TagCodeBlock:          "code-block",
	TagInlineHTML:         "inline-html",
	TagHTMLBlock:          "html-block",
	TagBlockquote:         "blockquote",
	TagAdmonition:         "admonition",
	TagThematicBreak:      "thematic-break",
	TagListMarker:         "list-marker",
	TagTaskCheckbox:       "task-checkbox",
	TagFootnoteReference:  "footnote-reference",
	TagFootnoteDefinition: "footnote-definition",
	TagTable:              "table",
	TagMention:            "mention",
}

func (tag HighlightTag) String() string {
	if tag == 0 || int(tag) >= len(highlightTagNames) {
		return fmt.Sprintf("HighlightTag(%d)", tag)
	}
	return highlightTagNames[tag]
}

// Highlight is a tagged region of source text.
type Highlight struct {
	Tag  HighlightTag
	Span Span
}

var highlightTags = map[NodeKind]HighlightTag{
	KindEmphasis:           TagEmphasis,
	KindStrong:             TagStrong,
	KindStrikethrough:      TagStrikethrough,
	KindHighlight:          TagMark,
	KindSuperscript:        TagSuperscript,
	KindSubscript:          TagSubscript,
	KindLink:               TagLink,
	KindImage:              TagImage,
	KindCodeSpan:           TagCodeSpan,
	KindCodeBlock:          TagCodeBlock,
	KindInlineHTML:         TagInlineHTML,
	KindHTMLBlock:          TagHTMLBlock,
	KindBlockquote:         TagBlockquote,
	KindAdmonition:         TagAdmonition,
	KindThematicBreak:      TagThematicBreak,
	KindTaskCheckbox:       TagTaskCheckbox,
	KindFootnoteReference:  TagFootnoteReference,
	KindFootnoteDefinition: TagFootnoteDefinition,
	KindTable:              TagTable,
	KindMention:            TagMention,
}

// ComputeHighlights returns the highlights of a document in source order.
// Block highlights start at the first column of their first line
// so that editors can decorate whole lines.
// Nodes without a span (such as inline footnote definitions) are skipped.
func ComputeHighlights(doc *Document) []Highlight {
	var result []Highlight
	WalkDocument(doc, &WalkOptions{
		Pre: func(c *Cursor) bool {
			n := c.Node()
			if !n.Span.IsValid() {
				return true
			}
			var tag HighlightTag
			span := n.Span
			switch n.Kind {
			case KindHeading:
				tag = TagH1 + HighlightTag(min(max(n.Level, 1), 6)-1)
			case KindListItem:
				tag = TagListMarker
				span = Span{Start: span.Start, End: span.Start.Advance(n.Marker)}
			default:
				var ok bool
				tag, ok = highlightTags[n.Kind]
				if !ok {
					return true
				}
			}
			if n.Kind.IsBlock() {
				span.Start = lineStart(span.Start)
			}
			result = append(result, Highlight{Tag: tag, Span: span})
			return true
		},
	})
	return result
}

// lineStart returns the position of the first column of pos's line.
func lineStart(pos Position) Position {
	return Position{
		Line:   pos.Line,
		Column: 1,
		Offset: pos.Offset - (pos.Column - 1),
	}
}
