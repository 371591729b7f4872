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

package format

import (
	"bytes"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	marco "github.com/Ranrar/Marco-sub007"
	"github.com/Ranrar/Marco-sub007/internal/normhtml"
)

var formatTests = []struct {
	name     string
	markdown string
	want     string
}{
	{
		name:     "ATXHeading",
		markdown: "# Hello\n",
		want:     "# Hello\n",
	},
	{
		name:     "SetextHeading",
		markdown: "Hello\n=====\n",
		want:     "# Hello\n",
	},
	{
		name:     "Bullets",
		markdown: "* a\n* b\n",
		want:     "- a\n- b\n",
	},
	{
		name:     "OrderedList",
		markdown: "1. a\n2. b\n",
		want:     "1. a\n2. b\n",
	},
	{
		name:     "IndentedCode",
		markdown: "    code\n",
		want:     "```\ncode\n```\n",
	},
	{
		name:     "BlockQuote",
		markdown: "> quote\n",
		want:     "> quote\n",
	},
	{
		name:     "Emphasis",
		markdown: "*a* and **b**\n",
		want:     "*a* and **b**\n",
	},
	{
		name:     "InlineLink",
		markdown: "[x](http://a.com \"T\")\n",
		want:     "[x](http://a.com \"T\")\n",
	},
	{
		name:     "Autolink",
		markdown: "<http://a.com>\n",
		want:     "<http://a.com>\n",
	},
	{
		name:     "Escape",
		markdown: "a\\*b\n",
		want:     "a\\*b\n",
	},
	{
		name:     "ThematicBreak",
		markdown: "a\n\n***\n",
		want:     "a\n\n---\n",
	},
}

func TestFormat(t *testing.T) {
	for _, test := range formatTests {
		t.Run(test.name, func(t *testing.T) {
			got := new(bytes.Buffer)
			if err := Format(got, marco.Parse(test.markdown)); err != nil {
				t.Fatal("Format:", err)
			}
			if diff := cmp.Diff(test.want, got.String()); diff != "" {
				t.Errorf("Format(Parse(%q)) (-want +got):\n%s", test.markdown, diff)
			}
		})
	}
}

func FuzzFormat(f *testing.F) {
	for _, test := range formatTests {
		f.Add(test.markdown)
	}

	f.Fuzz(func(t *testing.T, markdown string) {
		if !utf8.ValidString(markdown) {
			t.Skip("Invalid UTF-8")
		}
		doc := marco.Parse(markdown)
		originalHTML := new(bytes.Buffer)
		if err := marco.RenderHTML(originalHTML, doc); err != nil {
			t.Fatal("Render original HTML:", err)
		}

		got := new(bytes.Buffer)
		if err := Format(got, doc); err != nil {
			t.Error("Format #1:", err)
		}

		formattedDoc := marco.Parse(got.String())
		formattedHTML := new(bytes.Buffer)
		if err := marco.RenderHTML(formattedHTML, formattedDoc); err != nil {
			t.Error("Render formatted HTML:", err)
		} else {
			diff := cmp.Diff(string(normhtml.NormalizeHTML(originalHTML.Bytes())), string(normhtml.NormalizeHTML(formattedHTML.Bytes())))
			if diff != "" {
				t.Skipf("Reformatting changed semantics. Original:\n%s\nReformatting:\n%s\nHTML diff (-want +got):\n%s", markdown, got, diff)
			}
		}

		reformatted := new(bytes.Buffer)
		if err := Format(reformatted, formattedDoc); err != nil {
			t.Error("Format #2:", err)
		}
		if diff := cmp.Diff(got.String(), reformatted.String()); diff != "" {
			t.Errorf("Format not idempotent (-first +second):\n%s", diff)
		}
	})
}

func TestPrefixLines(t *testing.T) {
	tests := []struct {
		s           string
		first, rest string
		want        string
	}{
		{"a", "> ", "> ", "> a"},
		{"a\nb", "- ", "  ", "- a\n  b"},
		{"a\n\nb", "> ", "> ", "> a\n>\n> b"},
		{"a\n\nb", "- ", "  ", "- a\n\n  b"},
		{"", "- ", "  ", "-"},
	}
	for _, test := range tests {
		if got := prefixLines(test.s, test.first, test.rest); got != test.want {
			t.Errorf("prefixLines(%q, %q, %q) = %q; want %q", test.s, test.first, test.rest, got, test.want)
		}
	}
}
