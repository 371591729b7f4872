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

package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ranrar/Marco-sub007/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level string
		want  log.Level
	}{
		{"debug", "debug", log.DebugLevel},
		{"info", "info", log.InfoLevel},
		{"warn", "warn", log.WarnLevel},
		{"warning", "warning", log.WarnLevel},
		{"error", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"case insensitive", "DEBUG", log.DebugLevel},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			logger := logging.New(test.level)
			require.NotNil(t, logger)
			assert.Equal(t, test.want, logger.GetLevel())
		})
	}
}

func TestNewWriter(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	logger := logging.NewWriter(buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown", logging.FieldPath, "doc.md")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "path=doc.md")
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	logger := logging.Discard()
	require.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.Error("dropped", logging.FieldError, "boom")
	})
}

func TestSetLevel(t *testing.T) {
	// Modifies the package-level logger.
	original := logging.Default()
	defer logging.SetDefault(original)

	logging.SetDefault(logging.New("info"))

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, logging.Default().GetLevel())

	logging.SetLevel("error")
	assert.Equal(t, log.ErrorLevel, logging.Default().GetLevel())
}

func TestSetDefault(t *testing.T) {
	// Modifies the package-level logger.
	original := logging.Default()
	defer logging.SetDefault(original)

	custom := logging.New("error")
	logging.SetDefault(custom)
	assert.Same(t, custom, logging.Default())
}

func TestContext(t *testing.T) {
	t.Parallel()

	logger := logging.New("debug")
	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))

	assert.NotNil(t, logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is part of the contract
	assert.NotNil(t, logging.FromContext(nil))
}
