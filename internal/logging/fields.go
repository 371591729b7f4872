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

package logging

// Field names for structured logging.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldFormat = "format"

	FieldConfig   = "config"
	FieldMaxDepth = "max_depth"
	FieldWidth    = "width"

	FieldBlocks     = "blocks"
	FieldHighlights = "highlights"
	FieldReferences = "references"
	FieldFootnotes  = "footnotes"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
