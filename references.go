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
	"strings"

	"golang.org/x/text/cases"
)

// A type that implements ReferenceMatcher
// can be checked for the presence of link reference definitions.
type ReferenceMatcher interface {
	MatchReference(normalizedLabel string) bool
}

// LinkDefinition is the data of a [link reference definition].
//
// [link reference definition]: https://spec.commonmark.org/0.30/#link-reference-definition
type LinkDefinition struct {
	Destination  string `yaml:"destination"`
	Title        string `yaml:"title,omitempty"`
	TitlePresent bool   `yaml:"title_present,omitempty"`
}

// ReferenceMap is a mapping of [normalized labels] to link definitions.
//
// [normalized labels]: https://spec.commonmark.org/0.30/#matches
type ReferenceMap map[string]LinkDefinition

// MatchReference reports whether the normalized label appears in the map.
func (m ReferenceMap) MatchReference(normalizedLabel string) bool {
	_, ok := m[normalizedLabel]
	return ok
}

// Define records a definition for label.
// A later definition of the same normalized label replaces an earlier one.
// Define reports false if the label normalizes to the empty string.
func (m ReferenceMap) Define(label string, def LinkDefinition) bool {
	key := NormalizeLabel(label)
	if key == "" {
		return false
	}
	m[key] = def
	return true
}

// Lookup returns the definition for label, normalizing it first.
func (m ReferenceMap) Lookup(label string) (LinkDefinition, bool) {
	def, ok := m[NormalizeLabel(label)]
	return def, ok
}

// NormalizeLabel returns the [normalized form] of a link label:
// Unicode case-folded, with internal whitespace collapsed to single spaces
// and surrounding whitespace removed.
//
// [normalized form]: https://spec.commonmark.org/0.30/#matches
func NormalizeLabel(label string) string {
	label = strings.Join(strings.Fields(label), " ")
	return cases.Fold().String(label)
}

// resolveReferences rewrites the LinkReference placeholders in nodes
// into Link and Image nodes using refs.
// Placeholders without a definition become literal text
// that reproduces the original brackets.
func resolveReferences(nodes []*Node, refs ReferenceMap) []*Node {
	changed := false
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]
		if len(n.Children) > 0 {
			n.Children = resolveReferences(n.Children, refs)
		}
		if n.Kind != KindLinkReference {
			continue
		}
		if def, ok := refs.Lookup(n.Label); ok {
			n.Kind = KindLink
			if n.Marker == "!" {
				n.Kind = KindImage
			}
			n.Destination = def.Destination
			n.Title = def.Title
			n.HasTitle = def.TitlePresent
			n.Marker = ""
			continue
		}
		expanded := unresolvedReference(n)
		nodes = append(nodes[:i], append(expanded, nodes[i+1:]...)...)
		i += len(expanded) - 1
		changed = true
	}
	if changed {
		nodes = mergeText(nodes)
	}
	return nodes
}

// unresolvedReference returns the literal form of an unresolved reference:
// the opening bracket, the parsed link text, and the closing bracket with its suffix.
func unresolvedReference(n *Node) []*Node {
	opener := n.Marker + "["
	closer := "]" + n.Suffix
	openNode := &Node{Kind: KindText, Literal: opener}
	closeNode := &Node{Kind: KindText, Literal: closer}
	if n.Span.IsValid() {
		openNode.Span = Span{Start: n.Span.Start, End: n.Span.Start.Advance(opener)}
		if !strings.Contains(closer, "\n") && n.Span.End.Column > len(closer) {
			end := n.Span.End
			start := Position{Line: end.Line, Column: end.Column - len(closer), Offset: end.Offset - len(closer)}
			closeNode.Span = Span{Start: start, End: end}
		}
	}
	out := make([]*Node, 0, len(n.Children)+2)
	out = append(out, openNode)
	out = append(out, n.Children...)
	return append(out, closeNode)
}

// mergeText joins adjacent Text nodes.
func mergeText(nodes []*Node) []*Node {
	out := nodes[:0]
	for _, n := range nodes {
		if len(out) > 0 {
			prev := out[len(out)-1]
			if prev.Kind == KindText && n.Kind == KindText {
				prev.Literal += n.Literal
				prev.Span = prev.Span.Union(n.Span)
				continue
			}
		}
		out = append(out, n)
	}
	return out
}
