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
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/Ranrar/Marco-sub007/internal/normhtml"
)

// coreDocuments use only CommonMark syntax,
// so any CommonMark renderer should agree on their output.
var coreDocuments = []struct {
	name  string
	input string
}{
	{"Emphasis", "Hello *world* and **strong** and _em_\n"},
	{"Headings", "# A\n\n## B\n\nSetext\n======\n"},
	{"Blockquote", "> quote\n> more\n\n> second\n"},
	{"TightLists", "- a\n- b\n\n1. x\n2. y\n"},
	{"LooseList", "- a\n\n- b\n"},
	{"NestedList", "- a\n  - b\n  - c\n- d\n"},
	{"FencedCode", "```go\ncode <here>\n```\n"},
	{"IndentedCode", "    indented\n    code\n"},
	{"ThematicBreak", "a\n\n***\n\nb\n"},
	{"HardBreaks", "a  \nb\\\nc\n"},
	{"Links", "[link](/u \"t\") ![img](/i.png)\n"},
	{"Reference", "[ref] and [text][ref]\n\n[ref]: /r 'Title'\n"},
	{"HTMLBlock", "<div>\nraw\n</div>\n"},
	{"InlineHTML", "a <span class=\"x\">b</span> c\n"},
	{"Entities", "&amp; &copy; &#35; &#x41;\n"},
	{"Escapes", "\\*not emphasis\\* \\[nor a link\\]\n"},
	{"CodeSpan", "`code` and `` a`b ``\n"},
	{"Autolink", "<https://example.com/> <a@example.com>\n"},
}

func TestGoldmarkAgreement(t *testing.T) {
	md := goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe()))
	for _, test := range coreDocuments {
		t.Run(test.name, func(t *testing.T) {
			want := new(bytes.Buffer)
			if err := md.Convert([]byte(test.input), want); err != nil {
				t.Fatal("goldmark:", err)
			}
			got := new(bytes.Buffer)
			if err := RenderHTML(got, Parse(test.input)); err != nil {
				t.Fatal("RenderHTML:", err)
			}
			if !normhtml.Equal(want.Bytes(), got.Bytes()) {
				diff := cmp.Diff(normhtml.NormalizeString(want.String()), normhtml.NormalizeString(got.String()))
				t.Errorf("Input:\n%s\nOutput (-goldmark +marco):\n%s", test.input, diff)
			}
		})
	}
}

func BenchmarkGoldmark(b *testing.B) {
	input := new(bytes.Buffer)
	for i, test := range coreDocuments {
		if i > 0 {
			input.WriteString("\n\n")
		}
		input.WriteString(test.input)
	}
	b.Run("Marco", func(b *testing.B) {
		b.SetBytes(int64(input.Len()))
		for i := 0; i < b.N; i++ {
			RenderHTML(new(bytes.Buffer), Parse(input.String()))
		}
	})
	b.Run("Goldmark", func(b *testing.B) {
		md := goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe()))
		b.SetBytes(int64(input.Len()))
		for i := 0; i < b.N; i++ {
			md.Convert(input.Bytes(), new(bytes.Buffer))
		}
	})
}
