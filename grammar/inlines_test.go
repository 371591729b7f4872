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
package grammar

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseCodeSpan(t *testing.T) {
	tests := []struct {
		input    string
		want     string
		wantRest string
		wantOK   bool
	}{
		{input: "`foo` bar", want: "foo", wantRest: " bar", wantOK: true},
		{input: "``a`b`` c", want: "a`b", wantRest: " c", wantOK: true},
		{input: "` `` `", want: " `` ", wantOK: true},
		{input: "`a\nb`", want: "a\nb", wantOK: true},
		{input: "`abc", wantOK: false},
		{input: "```a``", wantOK: false},
		{input: "abc", wantOK: false},
	}
	for _, test := range tests {
		rest, cs, ok := ParseCodeSpan(NewInput(test.input))
		if ok != test.wantOK {
			t.Errorf("ParseCodeSpan(%q) ok = %t; want %t", test.input, ok, test.wantOK)
			continue
		}
		if ok && (cs.Content.String() != test.want || rest.String() != test.wantRest) {
			t.Errorf("ParseCodeSpan(%q) = %q, %q; want %q, %q", test.input, rest, cs.Content, test.wantRest, test.want)
		}
	}
}

func TestNormalizeCodeSpan(t *testing.T) {
	tests := []struct {
		s    string
		want string
	}{
		{"foo", "foo"},
		{" foo ", "foo"},
		{"  foo  ", " foo "},
		{" ", " "},
		{"  ", "  "},
		{"a\nb", "a b"},
		{"a\r\nb", "a b"},
		{" a", " a"},
	}
	for _, test := range tests {
		if got := NormalizeCodeSpan(test.s); got != test.want {
			t.Errorf("NormalizeCodeSpan(%q) = %q; want %q", test.s, got, test.want)
		}
	}
}

func TestParseBackslashEscape(t *testing.T) {
	rest, escaped, ok := ParseBackslashEscape(NewInput(`\*x`))
	if !ok || escaped.String() != "*" || rest.String() != "x" {
		t.Errorf(`ParseBackslashEscape("\\*x") = %q, %q, %t; want "x", "*", true`, rest, escaped, ok)
	}
	for _, input := range []string{`\a`, `\`, "a"} {
		if _, _, ok := ParseBackslashEscape(NewInput(input)); ok {
			t.Errorf("ParseBackslashEscape(%q) succeeded", input)
		}
	}
}

func TestParseEntity(t *testing.T) {
	tests := []struct {
		input    string
		want     string
		wantRest string
		wantOK   bool
	}{
		{input: "&amp;x", want: "&", wantRest: "x", wantOK: true},
		{input: "&copy;", want: "©", wantOK: true},
		{input: "&#35;", want: "#", wantOK: true},
		{input: "&#X41;", want: "A", wantOK: true},
		{input: "&#0;", want: "�", wantOK: true},
		{input: "&bogus;", wantOK: false},
		{input: "&amp", wantOK: false},
		{input: "&#;", wantOK: false},
		{input: "&#12345678;", wantOK: false},
	}
	for _, test := range tests {
		rest, decoded, ok := ParseEntity(NewInput(test.input))
		if ok != test.wantOK {
			t.Errorf("ParseEntity(%q) ok = %t; want %t", test.input, ok, test.wantOK)
			continue
		}
		if ok && (decoded != test.want || rest.String() != test.wantRest) {
			t.Errorf("ParseEntity(%q) = %q, %q; want %q, %q", test.input, rest, decoded, test.wantRest, test.want)
		}
	}
}

func TestParseDelimited(t *testing.T) {
	type result struct {
		Delimiter string
		Content   string
		Rest      string
	}
	tests := []struct {
		name   string
		parse  func(Input) (Input, Delimited, bool)
		input  string
		want   result
		wantOK bool
	}{
		{
			name:   "Strong",
			parse:  ParseStrong,
			input:  "**a** b",
			want:   result{Delimiter: "**", Content: "a", Rest: " b"},
			wantOK: true,
		},
		{
			name:   "StrongClosesNestedEmphasis",
			parse:  ParseStrong,
			input:  "**a *b***",
			want:   result{Delimiter: "**", Content: "a *b*"},
			wantOK: true,
		},
		{
			name:   "StrongEmphasis",
			parse:  ParseStrongEmphasis,
			input:  "***x***",
			want:   result{Delimiter: "***", Content: "x"},
			wantOK: true,
		},
		{
			name:   "EmphasisRejectsLongerRun",
			parse:  ParseEmphasis,
			input:  "**a**",
			wantOK: false,
		},
		{
			name:   "EmphasisStopsAtBlankLine",
			parse:  ParseEmphasis,
			input:  "*a\n\nb*",
			wantOK: false,
		},
		{
			name:   "EmphasisSkipsCodeSpan",
			parse:  ParseEmphasis,
			input:  "*a `*` b*",
			want:   result{Delimiter: "*", Content: "a `*` b"},
			wantOK: true,
		},
		{
			name:   "EmphasisSkipsEscape",
			parse:  ParseEmphasis,
			input:  `*a \* b*`,
			want:   result{Delimiter: "*", Content: `a \* b`},
			wantOK: true,
		},
		{
			name:   "EmphasisNotLeftFlanking",
			parse:  ParseEmphasis,
			input:  "* a*",
			wantOK: false,
		},
		{
			name:   "UnderscoreIntraword",
			parse:  ParseEmphasis,
			input:  "_a_b",
			wantOK: false,
		},
		{
			name:   "Underscore",
			parse:  ParseEmphasis,
			input:  "_a_ b",
			want:   result{Delimiter: "_", Content: "a", Rest: " b"},
			wantOK: true,
		},
		{
			name:   "Strikethrough",
			parse:  ParseStrikethrough,
			input:  "~~x~~",
			want:   result{Delimiter: "~~", Content: "x"},
			wantOK: true,
		},
		{
			name:   "StrikethroughRejectsLongCloser",
			parse:  ParseStrikethrough,
			input:  "~~x~~~",
			wantOK: false,
		},
		{
			name:   "DashStrikethrough",
			parse:  ParseDashStrikethrough,
			input:  "--x--",
			want:   result{Delimiter: "--", Content: "x"},
			wantOK: true,
		},
		{
			name:   "Mark",
			parse:  ParseMark,
			input:  "==x==",
			want:   result{Delimiter: "==", Content: "x"},
			wantOK: true,
		},
		{
			name:   "Superscript",
			parse:  ParseSuperscript,
			input:  "^2^ x",
			want:   result{Delimiter: "^", Content: "2", Rest: " x"},
			wantOK: true,
		},
		{
			name:   "Subscript",
			parse:  ParseSubscript,
			input:  "~2~O",
			want:   result{Delimiter: "~", Content: "2", Rest: "O"},
			wantOK: true,
		},
		{
			name:   "SubscriptRejectsStrikethrough",
			parse:  ParseSubscript,
			input:  "~~x~~",
			wantOK: false,
		},
		{
			name:   "SubscriptArrow",
			parse:  ParseSubscriptArrow,
			input:  "˅2˅O",
			want:   result{Delimiter: "˅", Content: "2", Rest: "O"},
			wantOK: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rest, d, ok := test.parse(NewInput(test.input))
			if ok != test.wantOK {
				t.Fatalf("parse(%q) ok = %t; want %t", test.input, ok, test.wantOK)
			}
			if !ok {
				if rest.String() != test.input {
					t.Errorf("parse(%q) consumed input on failure", test.input)
				}
				return
			}
			got := result{
				Delimiter: d.Delimiter,
				Content:   d.Content.String(),
				Rest:      rest.String(),
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("parse(%q) (-want +got):\n%s", test.input, diff)
			}
		})
	}
}

func TestDelimiterCache(t *testing.T) {
	in := NewInput("~~a ~~b~~ ~~c")
	cache := new(DelimiterCache)

	// The closer at offset 7 pairs with the inner opener at offset 4.
	if _, _, ok := cache.Parse(in, DelimStrikethrough); ok {
		t.Error("Parse at offset 0 succeeded")
	}
	rest, d, ok := cache.Parse(in.Advance(4), DelimStrikethrough)
	if !ok || d.Content.String() != "b" || rest.String() != " ~~c" {
		t.Errorf("Parse at offset 4 = %q, {Content: %q}, %t; want \" ~~c\", {Content: \"b\"}, true", rest, d.Content, ok)
	}
	if _, _, ok := cache.Parse(in.Advance(10), DelimStrikethrough); ok {
		t.Error("Parse at offset 10 succeeded")
	}

	t.Run("Unmatched", func(t *testing.T) {
		const unit = "~~a "
		in := NewInput(strings.Repeat(unit, 20000))
		cache := new(DelimiterCache)
		for cur := in; !cur.IsEmpty(); cur = cur.Advance(len(unit)) {
			if rest, _, ok := cache.Parse(cur, DelimStrikethrough, DelimSubscript); ok || rest != cur {
				t.Fatalf("Parse at offset %d succeeded", cur.Pos().Offset)
			}
		}
	})

	t.Run("Nil", func(t *testing.T) {
		var cache *DelimiterCache
		rest, d, ok := cache.Parse(NewInput("__x__ y"), DelimStrong, DelimUnderlineStrong)
		if !ok || d.Delimiter != "__" || d.Content.String() != "x" || rest.String() != " y" {
			t.Errorf("Parse = %q, {Delimiter: %q, Content: %q}, %t", rest, d.Delimiter, d.Content, ok)
		}
	})
}

func TestParseTaskCheckbox(t *testing.T) {
	tests := []struct {
		input       string
		wantOK      bool
		wantChecked bool
	}{
		{input: "[ ] todo", wantOK: true},
		{input: "[x] done", wantOK: true, wantChecked: true},
		{input: "[X]", wantOK: true, wantChecked: true},
		{input: "[x].", wantOK: true, wantChecked: true},
		{input: "[x](url)", wantOK: false},
		{input: "[x][ref]", wantOK: false},
		{input: "[x]y", wantOK: false},
		{input: "[-] no", wantOK: false},
	}
	for _, test := range tests {
		_, tc, ok := ParseTaskCheckbox(NewInput(test.input))
		if ok != test.wantOK || tc.Checked != test.wantChecked {
			t.Errorf("ParseTaskCheckbox(%q) = {Checked: %t}, %t; want {Checked: %t}, %t",
				test.input, tc.Checked, ok, test.wantChecked, test.wantOK)
		}
	}
}

func TestParseBreaks(t *testing.T) {
	tests := []struct {
		name     string
		parse    func(Input) (Input, Input, bool)
		input    string
		wantBrk  string
		wantRest string
		wantOK   bool
	}{
		{name: "HardSpaces", parse: ParseHardBreak, input: "  \n  next", wantBrk: "  \n", wantRest: "next", wantOK: true},
		{name: "HardBackslash", parse: ParseHardBreak, input: "\\\nnext", wantBrk: "\\\n", wantRest: "next", wantOK: true},
		{name: "HardCRLF", parse: ParseHardBreak, input: "   \r\nnext", wantBrk: "   \r\n", wantRest: "next", wantOK: true},
		{name: "HardOneSpace", parse: ParseHardBreak, input: " \nnext", wantOK: false},
		{name: "HardAtEnd", parse: ParseHardBreak, input: "  ", wantOK: false},
		{name: "Soft", parse: ParseSoftBreak, input: " \t\n  x", wantBrk: " \t\n", wantRest: "x", wantOK: true},
		{name: "SoftNoNewline", parse: ParseSoftBreak, input: "  x", wantOK: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rest, brk, ok := test.parse(NewInput(test.input))
			if ok != test.wantOK {
				t.Fatalf("parse(%q) ok = %t; want %t", test.input, ok, test.wantOK)
			}
			if ok && (brk.String() != test.wantBrk || rest.String() != test.wantRest) {
				t.Errorf("parse(%q) = %q, %q; want %q, %q", test.input, rest, brk, test.wantRest, test.wantBrk)
			}
		})
	}
}

func TestParseEmojiShortcode(t *testing.T) {
	tests := []struct {
		input    string
		want     string
		wantRest string
	}{
		{input: ":smile: hi", want: "\U0001F604", wantRest: " hi"},
		{input: ":+1:", want: "\U0001F44D"},
		{input: ":rocket:", want: "\U0001F680"},
		{input: ":not_an_emoji:"},
		{input: ":smile"},
		{input: "::"},
		{input: ":a b:"},
	}
	for _, test := range tests {
		rest, emoji, ok := ParseEmojiShortcode(NewInput(test.input))
		if ok != (test.want != "") || emoji != test.want {
			t.Errorf("ParseEmojiShortcode(%q) = %q, %t; want %q, %t", test.input, emoji, ok, test.want, test.want != "")
			continue
		}
		if ok && rest.String() != test.wantRest {
			t.Errorf("ParseEmojiShortcode(%q) rest = %q; want %q", test.input, rest, test.wantRest)
		}
	}
}

func TestParseMention(t *testing.T) {
	tests := []struct {
		input    string
		want     Mention
		wantRest string
		wantOK   bool
	}{
		{
			input:    "@ada[github](Ada Lovelace)!",
			want:     Mention{Username: "ada", Platform: "github", Display: "Ada Lovelace"},
			wantRest: "!",
			wantOK:   true,
		},
		{
			input:  "@bob.smith[GitLab]",
			want:   Mention{Username: "bob.smith", Platform: "gitlab"},
			wantOK: true,
		},
		{
			input:  "@bob[x]( spaced )",
			want:   Mention{Username: "bob", Platform: "x", Display: "spaced"},
			wantOK: true,
		},
		{input: "@bob", wantOK: false},
		{input: "@[github]", wantOK: false},
		{input: "@bob[]", wantOK: false},
		{input: "@bob[git hub]", wantOK: false},
		{input: "@bob[x](unclosed", wantOK: false},
		{input: "@bob[x](a\nb)", wantOK: false},
	}
	for _, test := range tests {
		rest, m, ok := ParseMention(NewInput(test.input))
		if ok != test.wantOK {
			t.Errorf("ParseMention(%q) ok = %t; want %t", test.input, ok, test.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if diff := cmp.Diff(test.want, m); diff != "" {
			t.Errorf("ParseMention(%q) (-want +got):\n%s", test.input, diff)
		}
		if rest.String() != test.wantRest {
			t.Errorf("ParseMention(%q) rest = %q; want %q", test.input, rest, test.wantRest)
		}
	}
}
