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

// Package config loads the .marco.yml settings file
// and converts it into parser and renderer options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	marco "github.com/Ranrar/Marco-sub007"
)

// FileName is the name of the settings file looked up in the working directory.
const FileName = ".marco.yml"

// Color modes for highlight listings.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the contents of a settings file.
type Config struct {
	// MaxDepth bounds parser recursion. Zero selects marco.DefaultMaxDepth.
	MaxDepth int `yaml:"max_depth,omitempty"`
	// LogLevel is one of "debug", "info", "warn" or "error".
	LogLevel  string          `yaml:"log_level,omitempty"`
	Render    RenderConfig    `yaml:"render"`
	Highlight HighlightConfig `yaml:"highlight"`
}

// RenderConfig holds the renderer settings.
type RenderConfig struct {
	// SoftBreaks is "preserve", "space" or "harden".
	SoftBreaks string `yaml:"soft_breaks,omitempty"`
	IgnoreRaw  bool   `yaml:"ignore_raw,omitempty"`
	// FilterTags escapes the tags disallowed by GitHub Flavored Markdown.
	FilterTags bool `yaml:"filter_tags,omitempty"`
	HeadingIDs bool `yaml:"heading_ids,omitempty"`
	// Width is the wrap column of the text renderer.
	// Zero means the terminal width, negative disables wrapping.
	Width int `yaml:"width,omitempty"`
}

// HighlightConfig holds the settings of the highlight listing.
type HighlightConfig struct {
	// Color is "auto", "always" or "never".
	Color string `yaml:"color,omitempty"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		MaxDepth: marco.DefaultMaxDepth,
		LogLevel: "info",
		Render: RenderConfig{
			SoftBreaks: "preserve",
		},
		Highlight: HighlightConfig{
			Color: ColorAuto,
		},
	}
}

// Load reads the settings file at path.
// Keys missing from the file keep their default values.
// The returned error wraps [io/fs.ErrNotExist] if the file does not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err := FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// FromYAML parses settings from YAML on top of [Default].
// Unknown keys are an error.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ToYAML serializes the settings.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth: must not be negative (got %d)", c.MaxDepth)
	}
	if c.Render.SoftBreaks != "" {
		if _, err := marco.ParseSoftBreakBehavior(c.Render.SoftBreaks); err != nil {
			return fmt.Errorf("render.soft_breaks: %w", err)
		}
	}
	switch c.Highlight.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("highlight.color: unknown mode %q", c.Highlight.Color)
	}
	return nil
}

// ParseOptions returns the parser options for the settings.
func (c *Config) ParseOptions(logger *log.Logger) *marco.ParseOptions {
	return &marco.ParseOptions{
		Logger:   logger,
		MaxDepth: c.MaxDepth,
	}
}

// HTMLRenderer returns an HTML renderer configured by the settings.
func (c *Config) HTMLRenderer() (*marco.HTMLRenderer, error) {
	r := &marco.HTMLRenderer{
		IgnoreRaw:  c.Render.IgnoreRaw,
		HeadingIDs: c.Render.HeadingIDs,
	}
	if c.Render.SoftBreaks != "" {
		b, err := marco.ParseSoftBreakBehavior(c.Render.SoftBreaks)
		if err != nil {
			return nil, fmt.Errorf("render.soft_breaks: %w", err)
		}
		r.SoftBreakBehavior = b
	}
	if c.Render.FilterTags {
		r.FilterTag = marco.FilterTagGFM
	}
	return r, nil
}

// TextRenderer returns a text renderer configured by the settings.
// termWidth is used when the configured width is zero.
func (c *Config) TextRenderer(termWidth int) *marco.TextRenderer {
	width := c.Render.Width
	if width == 0 {
		width = termWidth
	}
	return &marco.TextRenderer{Width: width}
}
