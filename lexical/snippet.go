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

package lexical

import (
	"slices"
	"strings"
	"unicode"
)

const ellipsis = "..."

// Snippet returns an excerpt of text of at most length runes centred on the
// first case-insensitive occurrence of the highest-ranked keyword found in
// the text. Truncated sides are marked with an ellipsis. When no keyword
// occurs the leading length runes are returned. Text no longer than length
// is returned unchanged.
func Snippet(text string, keywords []string, length int) string {
	if length <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}

	lower := make([]rune, len(runes))
	for i, r := range runes {
		lower[i] = unicode.ToLower(r)
	}

	for _, kw := range keywords {
		needle := []rune(strings.ToLower(kw))
		if len(needle) == 0 {
			continue
		}
		pos := indexRunes(lower, needle)
		if pos < 0 {
			continue
		}
		start := pos - (length-len(needle))/2
		start = max(start, 0)
		end := start + length
		if end > len(runes) {
			end = len(runes)
			start = max(end-length, 0)
		}
		return decorate(runes, start, end)
	}

	return string(runes[:length]) + ellipsis
}

func decorate(runes []rune, start, end int) string {
	var b strings.Builder
	if start > 0 {
		b.WriteString(ellipsis)
	}
	b.WriteString(string(runes[start:end]))
	if end < len(runes) {
		b.WriteString(ellipsis)
	}
	return b.String()
}

func indexRunes(haystack, needle []rune) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if slices.Equal(haystack[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}
