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

	"github.com/poiesic/radiolex/core"
)

// ClusterOptions controls greedy keyword-overlap clustering.
type ClusterOptions struct {
	Target    int // Stop after this many clusters
	Keywords  int // Keywords taken from each message
	MinShared int // Keywords a candidate must share with the cluster
	MinSize   int // Smallest cluster kept
}

// DefaultClusterOptions returns the standard clustering parameters for target clusters.
func DefaultClusterOptions(target int) ClusterOptions {
	return ClusterOptions{Target: target, Keywords: 5, MinShared: 2, MinSize: 3}
}

// clusterBuilder is a cluster under construction. Members index into the
// message arena; the keyword set only grows.
type clusterBuilder struct {
	members  []int
	keywords []string
	set      map[string]struct{}
}

func (b *clusterBuilder) add(i int, kws []string) {
	b.members = append(b.members, i)
	for _, kw := range kws {
		if _, ok := b.set[kw]; !ok {
			b.set[kw] = struct{}{}
			b.keywords = append(b.keywords, kw)
		}
	}
}

func (b *clusterBuilder) shared(kws []string) int {
	n := 0
	for _, kw := range kws {
		if _, ok := b.set[kw]; ok {
			n++
		}
	}
	return n
}

// Cluster groups messages greedily by shared keywords. Messages are visited in
// input order; each unclustered message seeds a cluster that absorbs every
// later unclustered message sharing at least MinShared keywords with the
// cluster's accumulated keyword set. Clusters smaller than MinSize are
// discarded and their members stay available. The result is ordered by member
// count, largest first.
func (a *Analyzer) Cluster(messages []*core.Message, opts ClusterOptions) []core.MessageCluster {
	if opts.Target <= 0 || len(messages) == 0 {
		return []core.MessageCluster{}
	}

	keywords := make([][]string, len(messages))
	for i, msg := range messages {
		if msg != nil {
			keywords[i] = Terms(a.ExtractKeywords(msg.Body, opts.Keywords))
		}
	}

	clustered := make([]bool, len(messages))
	clusters := make([]core.MessageCluster, 0, opts.Target)

	for i := range messages {
		if len(clusters) >= opts.Target {
			break
		}
		if clustered[i] || messages[i] == nil {
			continue
		}

		b := &clusterBuilder{set: make(map[string]struct{})}
		b.add(i, keywords[i])
		for j := i + 1; j < len(messages); j++ {
			if clustered[j] || messages[j] == nil {
				continue
			}
			if b.shared(keywords[j]) >= opts.MinShared {
				b.add(j, keywords[j])
			}
		}

		if len(b.members) < opts.MinSize {
			continue
		}

		members := make([]*core.Message, len(b.members))
		sets := make([][]string, len(b.members))
		for k, idx := range b.members {
			clustered[idx] = true
			members[k] = messages[idx]
			sets[k] = keywords[idx]
		}
		clusters = append(clusters, core.MessageCluster{
			Id:          len(clusters),
			Keywords:    b.keywords,
			Messages:    members,
			MemberCount: len(members),
			Cohesion:    cohesion(sets),
		})
	}

	slices.SortStableFunc(clusters, func(x, y core.MessageCluster) int {
		return y.MemberCount - x.MemberCount
	})
	return clusters
}

// cohesion is the mean pairwise Jaccard similarity of the given sets.
func cohesion(sets [][]string) float64 {
	var sum float64
	pairs := 0
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			sum += Jaccard(sets[i], sets[j])
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}
	return sum / float64(pairs)
}

// Jaccard returns |a ∩ b| / |a ∪ b| treating both slices as sets. Two empty
// sets have similarity 0.
func Jaccard(a, b []string) float64 {
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	union := len(set)
	inter := 0
	seen := make(map[string]struct{}, len(b))
	for _, s := range b {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := set[s]; ok {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
