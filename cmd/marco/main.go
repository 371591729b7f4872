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

// The marco command parses, inspects and renders Markdown.
package main

import (
	"os"

	"github.com/Ranrar/Marco-sub007/internal/cli"
	"github.com/Ranrar/Marco-sub007/internal/logging"
)

// Set with -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	if err := rootCmd.Execute(); err != nil {
		logging.Default().Error("command failed", logging.FieldError, err)
		return 1
	}
	return 0
}
