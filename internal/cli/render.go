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

	"github.com/Ranrar/Marco-sub007/internal/logging"
)

// Output formats of the render command.
const (
	formatHTML = "html"
	formatText = "text"
)

func newRenderCommand(a *app) *cobra.Command {
	var format string
	var width int

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render Markdown as HTML or plain text",
		Long: `Parse a Markdown file (or standard input) and render it.

HTML output honors the render settings of the config file.
Text output wraps paragraphs at --width, the configured width,
or the terminal width, in that order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, doc, err := a.parse(cmd, args)
			if err != nil {
				return err
			}
			logger := logging.FromContext(cmd.Context())
			logger.Debug("rendering", logging.FieldPath, name, logging.FieldFormat, format)

			out := cmd.OutOrStdout()
			switch format {
			case formatHTML:
				r, err := a.cfg.HTMLRenderer()
				if err != nil {
					return err
				}
				return r.Render(out, doc)
			case formatText:
				r := a.cfg.TextRenderer(terminalWidth(out))
				if cmd.Flags().Changed("width") {
					r.Width = width
				}
				logger.Debug("text width", logging.FieldWidth, r.Width)
				return r.Render(out, doc)
			default:
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatHTML, formatText)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatHTML, "output format: html, text")
	cmd.Flags().IntVar(&width, "width", 0, "wrap column for text output (0 disables wrapping)")

	return cmd
}
