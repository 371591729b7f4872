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
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ranrar/Marco-sub007/format"
	"github.com/Ranrar/Marco-sub007/internal/logging"
)

func newFmtCommand(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Reformat Markdown",
		Long: `Parse a Markdown file (or standard input) and print it as normalized
Markdown: ATX headings, "-" bullets, fenced code blocks and sorted
link reference definitions.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, doc, err := a.parse(cmd, args)
			if err != nil {
				return err
			}
			buf := new(bytes.Buffer)
			if err := format.Format(buf, doc); err != nil {
				return err
			}
			if !write || name == "-" {
				if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
					return fmt.Errorf("print markdown: %w", err)
				}
				return nil
			}
			info, err := os.Stat(name)
			if err != nil {
				return fmt.Errorf("write markdown: %w", err)
			}
			if err := os.WriteFile(name, buf.Bytes(), info.Mode().Perm()); err != nil {
				return fmt.Errorf("write markdown: %w", err)
			}
			logging.FromContext(cmd.Context()).Info("formatted", logging.FieldOutput, name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")

	return cmd
}
