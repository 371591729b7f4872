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
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	marco "github.com/Ranrar/Marco-sub007"
	"github.com/Ranrar/Marco-sub007/internal/logging"
)

// maxExcerpt is the number of bytes of source shown per highlight.
const maxExcerpt = 40

func newHighlightCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "highlight [file]",
		Short: "List the editor highlight spans",
		Long: `Parse a Markdown file (or standard input) and list its highlight spans
in source order, one per line: the span, the tag and an excerpt of the text.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, text, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			logger := logging.FromContext(cmd.Context())
			doc := marco.ParseWithOptions(text, a.cfg.ParseOptions(logger))
			highlights := marco.ComputeHighlights(doc)
			logger.Debug("computed highlights", logging.FieldPath, name, logging.FieldHighlights, len(highlights))

			out := cmd.OutOrStdout()
			st := newStyles(isColorEnabled(a.color, out))
			if _, err := fmt.Fprint(out, formatHighlights(st, text, highlights)); err != nil {
				return fmt.Errorf("print highlights: %w", err)
			}
			return nil
		},
	}
}

// formatHighlights lists highlights with aligned columns.
func formatHighlights(st *styles, text string, highlights []marco.Highlight) string {
	spanWidth := 0
	tagWidth := 0
	for _, h := range highlights {
		spanWidth = max(spanWidth, len(h.Span.String()))
		tagWidth = max(tagWidth, len(h.Tag.String()))
	}
	sb := new(strings.Builder)
	for _, h := range highlights {
		span := h.Span.String()
		tag := h.Tag.String()
		sb.WriteString(st.Location.Render(span))
		sb.WriteString(strings.Repeat(" ", spanWidth-len(span)+2))
		sb.WriteString(st.tag(h.Tag).Render(tag))
		sb.WriteString(strings.Repeat(" ", tagWidth-len(tag)+2))
		sb.WriteString(st.Dim.Render(excerpt(text, h.Span)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// excerpt returns the quoted source text of span, shortened to maxExcerpt bytes.
func excerpt(text string, span marco.Span) string {
	start, end := span.Start.Offset, span.End.Offset
	if start < 0 || end > len(text) || start > end {
		return ""
	}
	s := text[start:end]
	if len(s) > maxExcerpt {
		cut := maxExcerpt
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return strconv.Quote(s)
}
