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
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	marco "github.com/Ranrar/Marco-sub007"
	"github.com/Ranrar/Marco-sub007/internal/config"
)

// defaultWidth is the text width used when the output is not a terminal.
const defaultWidth = 80

// styles holds the lipgloss styles of the highlight listing.
type styles struct {
	Location lipgloss.Style
	Heading  lipgloss.Style
	Inline   lipgloss.Style
	Code     lipgloss.Style
	Link     lipgloss.Style
	HTML     lipgloss.Style
	Block    lipgloss.Style
	Marker   lipgloss.Style
	Dim      lipgloss.Style
}

func newStyles(colorEnabled bool) *styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &styles{
			Location: plain,
			Heading:  plain,
			Inline:   plain,
			Code:     plain,
			Link:     plain,
			HTML:     plain,
			Block:    plain,
			Marker:   plain,
			Dim:      plain,
		}
	}
	return &styles{
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Heading:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Inline:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Code:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Link:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Underline(true),
		HTML:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Block:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Bold(true),
		Marker:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// tag returns the style for a highlight tag.
func (s *styles) tag(tag marco.HighlightTag) lipgloss.Style {
	switch tag {
	case marco.TagH1, marco.TagH2, marco.TagH3, marco.TagH4, marco.TagH5, marco.TagH6:
		return s.Heading
	case marco.TagEmphasis, marco.TagStrong, marco.TagStrikethrough,
		marco.TagMark, marco.TagSuperscript, marco.TagSubscript:
		return s.Inline
	case marco.TagCodeSpan, marco.TagCodeBlock:
		return s.Code
	case marco.TagLink, marco.TagImage, marco.TagFootnoteReference, marco.TagMention:
		return s.Link
	case marco.TagInlineHTML, marco.TagHTMLBlock:
		return s.HTML
	case marco.TagListMarker, marco.TagTaskCheckbox, marco.TagThematicBreak:
		return s.Marker
	default:
		return s.Block
	}
}

// isColorEnabled reports whether output to w should be colorized.
// In auto mode, color requires a terminal and an unset NO_COLOR.
func isColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := w.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// terminalWidth returns the width of the terminal behind w,
// or defaultWidth.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}
