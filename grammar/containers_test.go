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

func fragmentText(lines []FragmentLine) string {
	return NewFragment(lines).String()
}

func TestParseBlockQuote(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		wantLazy int
		wantRest string
		wantOK   bool
	}{
		{
			name:   "Simple",
			input:  "> a\n> b\n",
			want:   "a\nb\n",
			wantOK: true,
		},
		{
			name:     "Lazy",
			input:    "> a\nb\n\nc",
			want:     "a\nb\n",
			wantLazy: 1,
			wantRest: "\nc",
			wantOK:   true,
		},
		{
			name:     "ThematicBreakEnds",
			input:    "> foo\n---",
			want:     "foo\n",
			wantRest: "---",
			wantOK:   true,
		},
		{
			name:     "LazyUnderlineEscaped",
			input:    "> foo\n===",
			want:     "foo\n\\===",
			wantLazy: 1,
			wantOK:   true,
		},
		{
			name:   "OneSpaceStripped",
			input:  ">  x",
			want:   " x",
			wantOK: true,
		},
		{
			name:   "EmptyMarker",
			input:  ">\n> x",
			want:   "\nx",
			wantOK: true,
		},
		{
			name:   "NotAQuote",
			input:  "    > code",
			wantOK: false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rest, bq, ok := ParseBlockQuote(NewInput(test.input))
			if ok != test.wantOK {
				t.Fatalf("ParseBlockQuote(%q) ok = %t; want %t", test.input, ok, test.wantOK)
			}
			if !ok {
				return
			}
			if got := fragmentText(bq.Lines); got != test.want {
				t.Errorf("body = %q; want %q", got, test.want)
			}
			if bq.Lazy != test.wantLazy {
				t.Errorf("Lazy = %d; want %d", bq.Lazy, test.wantLazy)
			}
			if rest.String() != test.wantRest {
				t.Errorf("rest = %q; want %q", rest, test.wantRest)
			}
		})
	}
}

func TestParseList(t *testing.T) {
	type item struct {
		Marker string
		Number int
		Body   string
	}
	type result struct {
		Ordered   bool
		Start     int
		Delimiter byte
		Items     []item
		Blank     bool
		Rest      string
	}
	tests := []struct {
		name   string
		input  string
		want   result
		wantOK bool
	}{
		{
			name:  "Bullets",
			input: "- a\n- b\n",
			want: result{
				Delimiter: '-',
				Items:     []item{{Marker: "-", Body: "a\n"}, {Marker: "-", Body: "b\n"}},
			},
			wantOK: true,
		},
		{
			name:  "Loose",
			input: "- a\n- b\n\n- c\n\nafter",
			want: result{
				Delimiter: '-',
				Items: []item{
					{Marker: "-", Body: "a\n"},
					{Marker: "-", Body: "b\n"},
					{Marker: "-", Body: "c\n"},
				},
				Blank: true,
				Rest:  "\nafter",
			},
			wantOK: true,
		},
		{
			name:  "Continuation",
			input: "- a\n  b\n- c",
			want: result{
				Delimiter: '-',
				Items:     []item{{Marker: "-", Body: "a\nb\n"}, {Marker: "-", Body: "c"}},
			},
			wantOK: true,
		},
		{
			name:  "DelimiterChangeEndsList",
			input: "1. one\n2) two",
			want: result{
				Ordered:   true,
				Start:     1,
				Delimiter: '.',
				Items:     []item{{Marker: "1.", Number: 1, Body: "one\n"}},
				Rest:      "2) two",
			},
			wantOK: true,
		},
		{
			name:  "StartNumber",
			input: "10) ten",
			want: result{
				Ordered:   true,
				Start:     10,
				Delimiter: ')',
				Items:     []item{{Marker: "10)", Number: 10, Body: "ten"}},
			},
			wantOK: true,
		},
		{
			name:   "NoSpace",
			input:  "-foo",
			wantOK: false,
		},
		{
			name:   "ThematicBreak",
			input:  "- - -",
			wantOK: false,
		},
		{
			name:   "TooManyDigits",
			input:  "1234567890. x",
			wantOK: false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rest, list, ok := ParseList(NewInput(test.input))
			if ok != test.wantOK {
				t.Fatalf("ParseList(%q) ok = %t; want %t", test.input, ok, test.wantOK)
			}
			if !ok {
				return
			}
			got := result{
				Ordered:   list.Ordered,
				Start:     list.Start,
				Delimiter: list.Delimiter,
				Blank:     list.BlankBetweenItems,
				Rest:      rest.String(),
			}
			for _, it := range list.Items {
				got.Items = append(got.Items, item{
					Marker: it.Marker.String(),
					Number: it.Number,
					Body:   fragmentText(it.Lines),
				})
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("ParseList(%q) (-want +got):\n%s", test.input, diff)
			}
		})
	}
}

func TestParseFootnoteDefinition(t *testing.T) {
	rest, fd, ok := ParseFootnoteDefinition(NewInput("[^1]: First\n    second\nlazy\n\nafter"))
	if !ok {
		t.Fatal("ParseFootnoteDefinition failed")
	}
	if got, want := fd.Label.String(), "1"; got != want {
		t.Errorf("Label = %q; want %q", got, want)
	}
	if got, want := fragmentText(fd.Lines), "First\nsecond\nlazy\n"; got != want {
		t.Errorf("body = %q; want %q", got, want)
	}
	if got, want := rest.String(), "\nafter"; got != want {
		t.Errorf("rest = %q; want %q", got, want)
	}

	for _, input := range []string{"[^]: x", "[^a b]: x", "[^a] x", "[a]: x"} {
		if _, _, ok := ParseFootnoteDefinition(NewInput(input)); ok {
			t.Errorf("ParseFootnoteDefinition(%q) succeeded", input)
		}
	}
}

func TestParseDefinitionList(t *testing.T) {
	type item struct {
		Term         string
		Descriptions []string
	}
	rest, dl, ok := ParseDefinitionList(NewInput("Term\n: One\n: Two\n\nTerm2\n: Three\n"))
	if !ok {
		t.Fatal("ParseDefinitionList failed")
	}
	var got []item
	for _, it := range dl.Items {
		gi := item{Term: it.Term.String()}
		for _, d := range it.Descriptions {
			gi.Descriptions = append(gi.Descriptions, fragmentText(d.Lines))
		}
		got = append(got, gi)
	}
	want := []item{
		{Term: "Term", Descriptions: []string{"One\n", "Two\n"}},
		{Term: "Term2", Descriptions: []string{"Three\n"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
	if !rest.IsEmpty() {
		t.Errorf("rest = %q; want \"\"", rest)
	}

	for _, input := range []string{"Term\nno marker", ": orphan", "Term\n:no space"} {
		if _, _, ok := ParseDefinitionList(NewInput(input)); ok {
			t.Errorf("ParseDefinitionList(%q) succeeded", input)
		}
	}
}

func TestParseTabBlock(t *testing.T) {
	type tab struct {
		Header  string
		Title   string
		Content string
	}
	tests := []struct {
		name     string
		input    string
		want     []tab
		wantRest string
	}{
		{
			name:  "TwoTabs",
			input: ":::tab\n@tab One\nFirst\n@tab Two\nSecond\n:::\nafter",
			want: []tab{
				{Header: "@tab One", Title: "One", Content: "First\n"},
				{Header: "@tab Two", Title: "Two", Content: "Second\n"},
			},
			wantRest: "after",
		},
		{
			name:  "MarkersInFence",
			input: ":::tab\n@tab A\n```\n@tab fake\n:::\n```\n:::\n",
			want: []tab{
				{Header: "@tab A", Title: "A", Content: "```\n@tab fake\n:::\n```\n"},
			},
		},
		{
			name:  "Unclosed",
			input: ":::tab\n@tab A\nx\n",
		},
		{
			name:  "NoTabs",
			input: ":::tab\n:::\n",
		},
		{
			name:  "EmptyTitle",
			input: ":::tab\n@tab  \nx\n:::\n",
		},
		{
			name:  "WrongKeyword",
			input: ":::tabs\n@tab A\nx\n:::\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rest, tb, ok := ParseTabBlock(NewInput(test.input))
			if ok != (test.want != nil) {
				t.Fatalf("ParseTabBlock(%q) ok = %t; want %t", test.input, ok, test.want != nil)
			}
			if !ok {
				return
			}
			var got []tab
			for _, item := range tb.Items {
				got = append(got, tab{
					Header:  item.Header.String(),
					Title:   item.Title.String(),
					Content: item.Content.String(),
				})
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("items (-want +got):\n%s", diff)
			}
			if rest.String() != test.wantRest {
				t.Errorf("rest = %q; want %q", rest, test.wantRest)
			}
		})
	}
}

func TestParseSlideDeck(t *testing.T) {
	type slide struct {
		Content  string
		Vertical bool
	}
	rest, deck, ok := ParseSlideDeck(NewInput("@slidestart:t5\nOne\n---\nTwo\n--\nDown\n@slideend\nafter"))
	if !ok {
		t.Fatal("ParseSlideDeck failed")
	}
	if deck.Timer != 5 {
		t.Errorf("Timer = %d; want 5", deck.Timer)
	}
	var got []slide
	for _, s := range deck.Slides {
		got = append(got, slide{Content: s.Content.String(), Vertical: s.Vertical})
	}
	want := []slide{
		{Content: "One\n"},
		{Content: "Two\n"},
		{Content: "Down\n", Vertical: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("slides (-want +got):\n%s", diff)
	}
	if rest.String() != "after" {
		t.Errorf("rest = %q; want \"after\"", rest)
	}

	for _, input := range []string{
		"@slidestart:t0\nx\n@slideend",
		"@slidestart x\nx\n@slideend",
		"@slidestart\nno end\n",
		"@slidestart\n```\n@slideend\n```\n",
	} {
		if _, _, ok := ParseSlideDeck(NewInput(input)); ok {
			t.Errorf("ParseSlideDeck(%q) succeeded", input)
		}
	}
}
