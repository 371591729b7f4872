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

// Package cli provides the cobra commands of the marco tool.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	marco "github.com/Ranrar/Marco-sub007"
	"github.com/Ranrar/Marco-sub007/internal/config"
	"github.com/Ranrar/Marco-sub007/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// app is the state shared by the subcommands of one invocation.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	color  string
}

// NewRootCommand creates the marco command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	a := new(app)
	var debug bool
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "marco",
		Short: "Parse, inspect and render Markdown",
		Long: `marco parses CommonMark with extensions (tables, footnotes, admonitions,
tab blocks, slide decks, mentions and more) into a position-annotated tree.

The subcommands print the tree, the editor highlight spans, rendered HTML
or text, and normalized Markdown. Settings are read from .marco.yml in the
working directory unless --config names another file.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logging.SetLevel(cfg.LogLevel)
			if debug {
				logging.SetLevel("debug")
			}
			a.logger = logging.Default()
			if a.color == "" {
				a.color = cfg.Highlight.Color
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&a.color, "color", "",
		"colorize output: auto, always, never (default from config)")

	rootCmd.AddCommand(newParseCommand(a))
	rootCmd.AddCommand(newHighlightCommand(a))
	rootCmd.AddCommand(newRenderCommand(a))
	rootCmd.AddCommand(newFmtCommand(a))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// loadConfig reads the settings file at path.
// With an empty path, a missing .marco.yml yields the defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.Load(config.FileName)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

// readSource reads the Markdown named by args:
// a file path, or standard input for "-" or no argument.
func readSource(cmd *cobra.Command, args []string) (name string, text string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "-", string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read markdown: %w", err)
	}
	return args[0], string(data), nil
}

// parse reads and parses the input named by args.
func (a *app) parse(cmd *cobra.Command, args []string) (string, *marco.Document, error) {
	name, text, err := readSource(cmd, args)
	if err != nil {
		return "", nil, err
	}
	logger := logging.FromContext(cmd.Context())
	doc := marco.ParseWithOptions(text, a.cfg.ParseOptions(logger.With(logging.FieldPath, name)))
	logger.Debug("parsed",
		logging.FieldPath, name,
		logging.FieldBlocks, len(doc.Children),
		logging.FieldReferences, len(doc.References),
		logging.FieldFootnotes, len(doc.Footnotes),
	)
	return name, doc, nil
}
