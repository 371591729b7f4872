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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseLinkReferenceDefinition(t *testing.T) {
	type result struct {
		Label       string
		Destination string
		Title       string
		HasTitle    bool
		Rest        string
	}
	tests := []struct {
		name   string
		input  string
		want   result
		wantOK bool
	}{
		{
			name:   "Title",
			input:  "[foo]: /url \"title\"\nrest",
			want:   result{Label: "foo", Destination: "/url", Title: "title", HasTitle: true, Rest: "rest"},
			wantOK: true,
		},
		{
			name:   "MultiLine",
			input:  "[Foo bar]:\n<my url>\n'the title'\n",
			want:   result{Label: "Foo bar", Destination: "my url", Title: "the title", HasTitle: true},
			wantOK: true,
		},
		{
			name:   "EmptyPointy",
			input:  "[foo]: <>",
			want:   result{Label: "foo"},
			wantOK: true,
		},
		{
			name:   "Escapes",
			input:  `[foo]: /u\*rl (t\)x)`,
			want:   result{Label: "foo", Destination: "/u*rl", Title: "t)x", HasTitle: true},
			wantOK: true,
		},
		{
			name:   "TitleOnNextLineWithTrailingText",
			input:  "[foo]: /url\n'title' trailing",
			want:   result{Label: "foo", Destination: "/url", Rest: "'title' trailing"},
			wantOK: true,
		},
		{
			name:   "TrailingTextAfterTitle",
			input:  "[foo]: /url 'title' trailing",
			wantOK: false,
		},
		{
			name:   "MissingDestination",
			input:  "[foo]:",
			wantOK: false,
		},
		{
			name:   "Footnote",
			input:  "[^foo]: x",
			wantOK: false,
		},
		{
			name:   "EmptyLabel",
			input:  "[ ]: /url",
			wantOK: false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rest, def, ok := ParseLinkReferenceDefinition(NewInput(test.input))
			if ok != test.wantOK {
				t.Fatalf("ParseLinkReferenceDefinition(%q) ok = %t; want %t", test.input, ok, test.wantOK)
			}
			if !ok {
				return
			}
			got := result{
				Label:       def.Label.String(),
				Destination: def.Destination,
				Title:       def.Title,
				HasTitle:    def.HasTitle,
				Rest:        rest.String(),
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("ParseLinkReferenceDefinition(%q) (-want +got):\n%s", test.input, diff)
			}
		})
	}
}

func TestParseLink(t *testing.T) {
	type result struct {
		Text        string
		Destination string
		Title       string
		HasTitle    bool
		Rest        string
	}
	tests := []struct {
		input  string
		want   result
		wantOK bool
	}{
		{input: "[a](/b) x", want: result{Text: "a", Destination: "/b", Rest: " x"}, wantOK: true},
		{input: `[a](/b "t")`, want: result{Text: "a", Destination: "/b", Title: "t", HasTitle: true}, wantOK: true},
		{input: `[a]( /b  "t" )`, want: result{Text: "a", Destination: "/b", Title: "t", HasTitle: true}, wantOK: true},
		{input: "[a](<b c>)", want: result{Text: "a", Destination: "b c"}, wantOK: true},
		{input: "[a](/b(c))", want: result{Text: "a", Destination: "/b(c)"}, wantOK: true},
		{input: "[a [b]](/c)", want: result{Text: "a [b]", Destination: "/c"}, wantOK: true},
		{input: "[`]`](/c)", want: result{Text: "`]`", Destination: "/c"}, wantOK: true},
		{input: "[a]()", want: result{Text: "a"}, wantOK: true},
		{input: "[a](b c)", want: result{Text: "a", Destination: "b c"}, wantOK: true},
		{input: `[a](http://x.com "ti"tle")`, want: result{Text: "a", Destination: "http://x.com", Title: "ti", HasTitle: true}, wantOK: true},
		{input: `[a](/u "x)`, want: result{Text: "a", Destination: `/u "x`}, wantOK: true},
		{input: `[a](/u "x") "y")`, want: result{Text: "a", Destination: "/u", Title: "x", HasTitle: true, Rest: ` "y")`}, wantOK: true},
		{input: "[a] (/b)", wantOK: false},
		{input: "[a](/b", wantOK: false},
	}
	for _, test := range tests {
		rest, link, ok := ParseLink(NewInput(test.input))
		if ok != test.wantOK {
			t.Errorf("ParseLink(%q) ok = %t; want %t", test.input, ok, test.wantOK)
			continue
		}
		if !ok {
			continue
		}
		got := result{
			Text:        link.Text.String(),
			Destination: link.Destination,
			Title:       link.Title,
			HasTitle:    link.HasTitle,
			Rest:        rest.String(),
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("ParseLink(%q) (-want +got):\n%s", test.input, diff)
		}
	}
}

func TestParseImage(t *testing.T) {
	rest, img, ok := ParseImage(NewInput("![alt](/i.png) x"))
	if !ok || img.Text.String() != "alt" || img.Destination != "/i.png" || rest.String() != " x" {
		t.Errorf("ParseImage(...) = %q, {Text: %q, Destination: %q}, %t", rest, img.Text, img.Destination, ok)
	}
	if _, _, ok := ParseImage(NewInput("[alt](/i.png)")); ok {
		t.Error("ParseImage without '!' succeeded")
	}
}

func TestParseReferenceLink(t *testing.T) {
	tests := []struct {
		input      string
		wantText   string
		wantLabel  string
		wantSuffix string
		wantRest   string
		wantOK     bool
	}{
		{input: "[foo][bar] x", wantText: "foo", wantLabel: "bar", wantSuffix: "[bar]", wantRest: " x", wantOK: true},
		{input: "[foo][]", wantText: "foo", wantLabel: "foo", wantSuffix: "[]", wantOK: true},
		{input: "[foo]", wantText: "foo", wantLabel: "foo", wantOK: true},
		{input: "[foo][bar", wantText: "foo", wantLabel: "foo", wantRest: "[bar", wantOK: true},
		{input: "[foo](x", wantOK: false},
		{input: "[^foo]", wantOK: false},
		{input: "[]", wantOK: false},
		{input: "[ ]", wantOK: false},
		{input: "[a`b]", wantOK: false},
	}
	for _, test := range tests {
		rest, ref, ok := ParseReferenceLink(NewInput(test.input))
		if ok != test.wantOK {
			t.Errorf("ParseReferenceLink(%q) ok = %t; want %t", test.input, ok, test.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if ref.Text.String() != test.wantText || ref.Label != test.wantLabel || ref.Suffix != test.wantSuffix || rest.String() != test.wantRest {
			t.Errorf("ParseReferenceLink(%q) = %q, {Text: %q, Label: %q, Suffix: %q}; want %q, {Text: %q, Label: %q, Suffix: %q}",
				test.input, rest, ref.Text, ref.Label, ref.Suffix, test.wantRest, test.wantText, test.wantLabel, test.wantSuffix)
		}
	}
}

func TestParseAutolink(t *testing.T) {
	tests := []struct {
		input     string
		want      string
		wantEmail bool
		wantOK    bool
	}{
		{input: "<https://a.b/c> x", want: "https://a.b/c", wantOK: true},
		{input: "<made-up-scheme://foo,bar>", want: "made-up-scheme://foo,bar", wantOK: true},
		{input: "<foo@bar.example.com>", want: "foo@bar.example.com", wantEmail: true, wantOK: true},
		{input: "<a b>", wantOK: false},
		{input: "<m:x>", wantOK: false},
		{input: "<foo.bar>", wantOK: false},
		{input: "<https://unclosed", wantOK: false},
	}
	for _, test := range tests {
		_, al, ok := ParseAutolink(NewInput(test.input))
		if ok != test.wantOK || al.Destination.String() != test.want || al.Email != test.wantEmail {
			t.Errorf("ParseAutolink(%q) = {Destination: %q, Email: %t}, %t; want {Destination: %q, Email: %t}, %t",
				test.input, al.Destination, al.Email, ok, test.want, test.wantEmail, test.wantOK)
		}
	}
}

func TestIsEmailAddress(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"foo@bar.example.com", true},
		{"foo+special@Bar.baz-bar0.com", true},
		{"@example.com", false},
		{"foo@", false},
		{"foo@-bar.com", false},
		{"foo@bar..com", false},
		{"fo o@bar.com", false},
	}
	for _, test := range tests {
		if got := IsEmailAddress(test.s); got != test.want {
			t.Errorf("IsEmailAddress(%q) = %t; want %t", test.s, got, test.want)
		}
	}
}

func TestParseAutolinkLiteral(t *testing.T) {
	tests := []struct {
		input    string
		wantText string
		wantDest string
		wantRest string
		wantOK   bool
	}{
		{
			input:    "www.commonmark.org/help?x=1.",
			wantText: "www.commonmark.org/help?x=1",
			wantDest: "http://www.commonmark.org/help?x=1",
			wantRest: ".",
			wantOK:   true,
		},
		{
			input:    "https://example.com/(a)b)",
			wantText: "https://example.com/(a)b",
			wantDest: "https://example.com/(a)b",
			wantRest: ")",
			wantOK:   true,
		},
		{
			input:    "http://a.b/&amp; x",
			wantText: "http://a.b/",
			wantDest: "http://a.b/",
			wantRest: "&amp; x",
			wantOK:   true,
		},
		{
			input:    "HTTPS://EXAMPLE.COM<b>",
			wantText: "HTTPS://EXAMPLE.COM",
			wantDest: "HTTPS://EXAMPLE.COM",
			wantRest: "<b>",
			wantOK:   true,
		},
		{input: "www.x", wantOK: false},
		{input: "https://", wantOK: false},
		{input: "ftp://example.com", wantOK: false},
	}
	for _, test := range tests {
		rest, al, ok := ParseAutolinkLiteral(NewInput(test.input))
		if ok != test.wantOK {
			t.Errorf("ParseAutolinkLiteral(%q) ok = %t; want %t", test.input, ok, test.wantOK)
			continue
		}
		if ok && (al.Text.String() != test.wantText || al.Destination != test.wantDest || rest.String() != test.wantRest) {
			t.Errorf("ParseAutolinkLiteral(%q) = %q, {Text: %q, Destination: %q}; want %q, {Text: %q, Destination: %q}",
				test.input, rest, al.Text, al.Destination, test.wantRest, test.wantText, test.wantDest)
		}
	}
}

func TestParseFootnoteReference(t *testing.T) {
	rest, fr, ok := ParseFootnoteReference(NewInput("[^1] x"))
	if !ok || fr.Label.String() != "1" || rest.String() != " x" {
		t.Errorf("ParseFootnoteReference(\"[^1] x\") = %q, {Label: %q}, %t", rest, fr.Label, ok)
	}
	for _, input := range []string{"[^1]: def", "[^a b]", "[^]", "[^open", "[1]"} {
		if _, _, ok := ParseFootnoteReference(NewInput(input)); ok {
			t.Errorf("ParseFootnoteReference(%q) succeeded", input)
		}
	}
}

func TestParseInlineFootnote(t *testing.T) {
	rest, content, ok := ParseInlineFootnote(NewInput("^[note [nested]] x"))
	if !ok || content.String() != "note [nested]" || rest.String() != " x" {
		t.Errorf("ParseInlineFootnote(...) = %q, %q, %t; want \" x\", \"note [nested]\", true", rest, content, ok)
	}
	for _, input := range []string{"^[]", "^[open", "^x"} {
		if _, _, ok := ParseInlineFootnote(NewInput(input)); ok {
			t.Errorf("ParseInlineFootnote(%q) succeeded", input)
		}
	}
}

func TestUnescapeString(t *testing.T) {
	tests := []struct {
		s    string
		want string
	}{
		{"plain", "plain"},
		{`\*a\b`, `*a\b`},
		{"&amp; &ouml;", "& ö"},
		{`\&amp;`, "&amp;"},
	}
	for _, test := range tests {
		if got := UnescapeString(test.s); got != test.want {
			t.Errorf("UnescapeString(%q) = %q; want %q", test.s, got, test.want)
		}
	}
}
