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

package grammar

import "unicode/utf8"

const (
	openerFlag = 1 << iota
	closerFlag
)

// delimiterFlags determines whether the [delimiter run] s[start:end]
// [can open emphasis] and/or [can close emphasis].
// Every delimiter other than '_' follows the rules for '*'.
//
// [delimiter run]: https://spec.commonmark.org/0.30/#delimiter-run
// [can open emphasis]: https://spec.commonmark.org/0.30/#can-open-emphasis
// [can close emphasis]: https://spec.commonmark.org/0.30/#can-close-emphasis
func delimiterFlags(s string, start, end int) uint8 {
	var flags uint8
	prevChar := ' '
	if start > 0 {
		prevChar, _ = utf8.DecodeLastRuneInString(s[:start])
	}
	nextChar := ' '
	if end < len(s) {
		nextChar, _ = utf8.DecodeRuneInString(s[end:])
	}
	leftFlanking := !IsUnicodeWhitespace(nextChar) &&
		(!IsUnicodePunctuation(nextChar) || IsUnicodeWhitespace(prevChar) || IsUnicodePunctuation(prevChar))
	rightFlanking := !IsUnicodeWhitespace(prevChar) &&
		(!IsUnicodePunctuation(prevChar) || IsUnicodeWhitespace(nextChar) || IsUnicodePunctuation(nextChar))
	underscore := s[start] == '_'
	if leftFlanking && (!underscore || !rightFlanking || IsUnicodePunctuation(prevChar)) {
		flags |= openerFlag
	}
	if rightFlanking && (!underscore || !leftFlanking || IsUnicodePunctuation(nextChar)) {
		flags |= closerFlag
	}
	return flags
}
