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

// Package logging wraps charmbracelet/log with the levels
// and field names used across the marco command.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	defaultMu     sync.Mutex
	defaultLogger *log.Logger
)

// New returns a logger that writes to standard error at the given level.
// Valid levels are "debug", "info", "warn" and "error";
// anything else selects "info".
func New(level string) *log.Logger {
	return NewWriter(os.Stderr, level)
}

// NewWriter is like [New] but writes to w.
func NewWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// Discard returns a logger that drops every message.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel converts a level name to a [log.Level],
// defaulting to [log.InfoLevel].
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Default returns the package-level logger.
func Default() *log.Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New("info")
	}
	return defaultLogger
}

// SetDefault replaces the package-level logger.
func SetDefault(logger *log.Logger) {
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}

// SetLevel changes the level of the package-level logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
