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

import "math/rand/v2"

// Sample returns at most n items chosen uniformly from items using reservoir
// sampling. When items fits within n it is returned as is. Relative order of
// the chosen items is not preserved.
func Sample[T any](items []T, n int, rng *rand.Rand) []T {
	if n <= 0 {
		return nil
	}
	if len(items) <= n {
		return items
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	reservoir := make([]T, n)
	copy(reservoir, items[:n])
	for i := n; i < len(items); i++ {
		if j := rng.IntN(i + 1); j < n {
			reservoir[j] = items[i]
		}
	}
	return reservoir
}
