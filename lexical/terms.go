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
	"strings"

	"github.com/poiesic/radiolex/core"
)

const dayLayout = "2006-01-02"

// TermStats counts the messages whose body contains term as a case-sensitive
// substring and breaks the count down by UTC day, area, and call-sign.
func TermStats(messages []*core.Message, term string) core.TermDimensionStats {
	stats := core.TermDimensionStats{
		Term:       term,
		ByDay:      map[string]int{},
		ByArea:     map[string]int{},
		ByCallSign: map[string]int{},
	}
	if term == "" {
		return stats
	}

	for _, msg := range messages {
		if msg == nil || !strings.Contains(msg.Body, term) {
			continue
		}
		stats.Total++
		stats.ByDay[msg.Timestamp.UTC().Format(dayLayout)]++
		if msg.Area != "" {
			stats.ByArea[msg.Area]++
		}
		seen := make(map[string]struct{}, len(msg.CallSigns))
		for _, cs := range msg.CallSigns {
			if _, dup := seen[cs]; dup || cs == "" {
				continue
			}
			seen[cs] = struct{}{}
			stats.ByCallSign[cs]++
		}
	}

	stats.Days = len(stats.ByDay)
	if stats.Days > 0 {
		stats.AvgPerDay = float64(stats.Total) / float64(stats.Days)
	}
	stats.PeakArea, stats.PeakAreaCount = peak(stats.ByArea)
	stats.PeakCallSign, stats.PeakCallSignCount = peak(stats.ByCallSign)
	return stats
}

// peak returns the key with the highest count; ties go to the smaller key.
func peak(counts map[string]int) (string, int) {
	var best string
	bestCount := 0
	for k, n := range counts {
		if n > bestCount || (n == bestCount && n > 0 && k < best) {
			best, bestCount = k, n
		}
	}
	return best, bestCount
}
