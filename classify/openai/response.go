// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package openai

import (
	"regexp"
	"strings"
)

// unquotedKey matches an object key that lost its opening quote, as in
// `{category": "x"}`.
var unquotedKey = regexp.MustCompile(`([{,]\s*)([A-Za-z_]+)":`)

// cleanResponse strips markdown fences and repairs common key quoting
// mistakes in model output.
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	return unquotedKey.ReplaceAllString(s, `$1"$2":`)
}

// scrubString collapses whitespace and trims the message before it is sent
// to the model.
func scrubString(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
