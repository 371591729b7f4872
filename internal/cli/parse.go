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

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	marco "github.com/Ranrar/Marco-sub007"
)

// treeNode is the YAML form of a [marco.Node].
type treeNode struct {
	Kind        marco.NodeKind `yaml:"kind"`
	Span        string         `yaml:"span,omitempty"`
	Literal     string         `yaml:"literal,omitempty"`
	Level       int            `yaml:"level,omitempty"`
	Info        string         `yaml:"info,omitempty"`
	Destination string         `yaml:"destination,omitempty"`
	Title       string         `yaml:"title,omitempty"`
	Label       string         `yaml:"label,omitempty"`
	Marker      string         `yaml:"marker,omitempty"`
	Ordered     bool           `yaml:"ordered,omitempty"`
	Start       int            `yaml:"start,omitempty"`
	Tight       bool           `yaml:"tight,omitempty"`
	Align       string         `yaml:"align,omitempty"`
	Checked     bool           `yaml:"checked,omitempty"`
	Admonition  string         `yaml:"admonition,omitempty"`
	Icon        string         `yaml:"icon,omitempty"`
	Username    string         `yaml:"username,omitempty"`
	Platform    string         `yaml:"platform,omitempty"`
	Children    []*treeNode    `yaml:"children,omitempty"`
}

type treeDocument struct {
	Children   []*treeNode        `yaml:"children"`
	References marco.ReferenceMap `yaml:"references,omitempty"`
	Footnotes  []*treeNode        `yaml:"footnotes,omitempty"`
}

func newTreeNodes(nodes []*marco.Node) []*treeNode {
	if len(nodes) == 0 {
		return nil
	}
	result := make([]*treeNode, 0, len(nodes))
	for _, n := range nodes {
		result = append(result, newTreeNode(n))
	}
	return result
}

func newTreeNode(n *marco.Node) *treeNode {
	t := &treeNode{
		Kind:        n.Kind,
		Literal:     n.Literal,
		Level:       n.Level,
		Info:        n.Info,
		Destination: n.Destination,
		Title:       n.Title,
		Label:       n.Label,
		Marker:      n.Marker,
		Ordered:     n.Ordered,
		Tight:       n.Tight,
		Align:       n.Align.String(),
		Checked:     n.Checked,
		Icon:        n.Icon,
		Username:    n.Username,
		Platform:    n.Platform,
		Children:    newTreeNodes(n.Children),
	}
	if n.Span.IsValid() {
		t.Span = n.Span.String()
	}
	switch n.Kind {
	case marco.KindList:
		if n.Ordered {
			t.Start = n.Start
		}
	case marco.KindAdmonition:
		t.Admonition = n.Admonition.String()
	}
	return t
}

func newParseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the document tree as YAML",
		Long: `Parse a Markdown file (or standard input) and print its tree as YAML.
Spans are printed as line:column ranges; columns count bytes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, doc, err := a.parse(cmd, args)
			if err != nil {
				return err
			}
			tree := &treeDocument{
				Children:   newTreeNodes(doc.Children),
				References: doc.References,
				Footnotes:  newTreeNodes(doc.Footnotes),
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(tree); err != nil {
				return fmt.Errorf("print tree: %w", err)
			}
			if err := enc.Close(); err != nil {
				return fmt.Errorf("print tree: %w", err)
			}
			return nil
		},
	}
}
