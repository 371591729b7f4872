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

package marco_test

import (
	"fmt"
	"os"

	marco "github.com/Ranrar/Marco-sub007"
)

func Example() {
	// Convert Markdown to a document tree.
	doc := marco.Parse("Hello, **World**!\n")
	// Render the document to HTML.
	marco.RenderHTML(os.Stdout, doc)
	// Output:
	// <p>Hello, <strong>World</strong>!</p>
}

func ExampleParse_references() {
	// Link reference definitions may appear after their use.
	doc := marco.Parse(
		"Hello, [World][]!\n" +
			"\n" +
			"[World]: https://www.example.com/\n",
	)
	marco.RenderHTML(os.Stdout, doc)
	// Output:
	// <p>Hello, <a href="https://www.example.com/">World</a>!</p>
}

func ExampleComputeHighlights() {
	doc := marco.Parse("# Title\n\nSome *text*.\n")
	for _, h := range marco.ComputeHighlights(doc) {
		fmt.Println(h.Tag, h.Span)
	}
	// Output:
	// h1 1:1-1:8
	// emphasis 3:6-3:12
}

func ExampleWalk() {
	doc := marco.Parse("A [link](https://example.com/) and [another](/b).\n")
	marco.WalkDocument(doc, &marco.WalkOptions{
		Pre: func(c *marco.Cursor) bool {
			if n := c.Node(); n.Kind == marco.KindLink {
				fmt.Println(n.Destination)
			}
			return true
		},
	})
	// Output:
	// https://example.com/
	// /b
}

func ExampleTextRenderer() {
	doc := marco.Parse("Heading\n=======\n\n- one\n- two\n")
	r := &marco.TextRenderer{Width: 40}
	r.Render(os.Stdout, doc)
	// Output:
	// Heading
	// =======
	//
	// - one
	// - two
}
