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

import "strings"

var alertMarkers = map[string]AdmonitionKind{
	"[!NOTE]":      AdmonitionNote,
	"[!TIP]":       AdmonitionTip,
	"[!IMPORTANT]": AdmonitionImportant,
	"[!WARNING]":   AdmonitionWarning,
	"[!CAUTION]":   AdmonitionCaution,
}

// applyAdmonitions converts top-level block quotes
// that open with an alert marker into Admonition nodes.
func applyAdmonitions(doc *Document) {
	for _, n := range doc.Children {
		if n.Kind != KindBlockquote || len(n.Children) == 0 {
			continue
		}
		para := n.Children[0]
		if para.Kind != KindParagraph {
			continue
		}
		marker, end := admonitionMarker(para.Children)
		if end < 0 {
			continue
		}
		if kind, ok := alertMarkers[strings.ToUpper(marker)]; ok {
			n.Admonition = kind
		} else if icon, title, ok := parseCustomMarker(marker); ok {
			n.Admonition = AdmonitionNote
			n.Icon = icon
			n.Title = title
		} else {
			continue
		}
		n.Kind = KindAdmonition
		if end < len(para.Children) {
			para.Children = para.Children[end+1:]
			if len(para.Children) > 0 {
				para.Span.Start = para.Children[0].Span.Start
			}
		} else {
			n.Children = n.Children[1:]
		}
	}
}

// admonitionMarker returns the concatenated text of the leading Text nodes
// and the index of the line break that ends them.
// end is len(children) if the paragraph has no break
// and -1 if a non-text node comes first.
func admonitionMarker(children []*Node) (marker string, end int) {
	sb := new(strings.Builder)
	for i, c := range children {
		switch c.Kind {
		case KindText:
			sb.WriteString(c.Literal)
		case KindSoftBreak, KindHardBreak:
			return strings.TrimSpace(sb.String()), i
		default:
			return "", -1
		}
	}
	return strings.TrimSpace(sb.String()), len(children)
}

// parseCustomMarker parses the "[icon Title]" form.
func parseCustomMarker(marker string) (icon, title string, ok bool) {
	if !strings.HasPrefix(marker, "[") || !strings.HasSuffix(marker, "]") {
		return "", "", false
	}
	inner := marker[1 : len(marker)-1]
	if strings.HasPrefix(inner, "!") {
		return "", "", false
	}
	icon, title, ok = strings.Cut(inner, " ")
	title = strings.TrimSpace(title)
	if !ok || icon == "" || title == "" {
		return "", "", false
	}
	return icon, title, true
}
