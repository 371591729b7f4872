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
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTextRenderer(t *testing.T) {
	tests := []struct {
		name  string
		width int
		input string
		want  string
	}{
		{
			name:  "Empty",
			input: "",
			want:  "",
		},
		{
			name:  "Wrap",
			width: 10,
			input: "aaa bbb ccc ddd",
			want:  "aaa bbb\nccc ddd\n",
		},
		{
			name:  "NoWrap",
			input: "aaa bbb ccc ddd",
			want:  "aaa bbb ccc ddd\n",
		},
		{
			name:  "Headings",
			input: "# Top\n\n### Deep\n",
			want:  "Top\n===\n\n### Deep\n",
		},
		{
			name:  "Blockquote",
			input: "> quoted\n",
			want:  "> quoted\n",
		},
		{
			name:  "Admonition",
			input: "> [!WARNING]\n> Careful\n",
			want:  "| WARNING\n| Careful\n",
		},
		{
			name:  "CustomAdmonition",
			input: "> [🔥 Hot take]\n> Careful\n",
			want:  "| 🔥 Hot take\n| Careful\n",
		},
		{
			name:  "CodeBlock",
			input: "```\ncode\n```\n",
			want:  "    code\n",
		},
		{
			name:  "Table",
			input: "| a | bb |\n|---|----|\n| ccc | d |\n",
			want:  "a   | bb\n----+---\nccc | d\n",
		},
		{
			name:  "Links",
			input: "[Go](https://go.dev/) <https://go.dev/>",
			want:  "Go (https://go.dev/) https://go.dev/\n",
		},
		{
			name:  "OrderedList",
			input: "1. one\n2. two\n",
			want:  "1. one\n2. two\n",
		},
		{
			name:  "TaskList",
			input: "- [x] done\n- [ ] todo\n",
			want:  "- [x] done\n- [ ] todo\n",
		},
		{
			name:  "Footnote",
			input: "x[^1]\n\n[^1]: note\n",
			want:  "x[^1]\n\n[^1]: note\n",
		},
		{
			name:  "Mention",
			input: "hi @ada[github](Ada)",
			want:  "hi @ada\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := &TextRenderer{Width: test.width}
			sb := new(strings.Builder)
			if err := r.Render(sb, Parse(test.input)); err != nil {
				t.Error("Render:", err)
			}
			if diff := cmp.Diff(test.want, sb.String()); diff != "" {
				t.Errorf("Render(Parse(%q)) (-want +got):\n%s", test.input, diff)
			}
		})
	}
}

func TestTextRendererWriteError(t *testing.T) {
	want := errors.New("bork")
	err := new(TextRenderer).Render(errWriter{want}, Parse("x"))
	if !errors.Is(err, want) {
		t.Errorf("Render(...) = %v; want %v", err, want)
	}
}
