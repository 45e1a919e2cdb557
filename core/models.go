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

package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strconv"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Message is a single transcribed radio intercept.
// The lexical engine treats messages as read-only snapshots.
type Message struct {
	Id         ID
	Timestamp  time.Time // When the transmission was intercepted
	Body       string    // Transcribed text, may be empty
	Area       string    // Geographic area name
	Frequency  float64   // Channel frequency value
	CallSigns  []string  // Participant call-signs, may be empty
	Category   string    // Pre-computed category label, empty until classified
	InsertedAt time.Time // When the message was stored
}

// Fingerprint returns a content-derived ID used to detect duplicate imports.
// Two messages with the same timestamp, area, frequency, and body share a fingerprint.
func (m *Message) Fingerprint() ID {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(m.Timestamp.UnixMicro(), 10))
	b.WriteByte('|')
	b.WriteString(m.Area)
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(m.Frequency, 'f', -1, 64))
	b.WriteByte('|')
	b.WriteString(m.Body)
	return IDFromContent(b.String())
}

// HasCallSign reports whether name is one of the message participants.
func (m *Message) HasCallSign(name string) bool {
	for _, cs := range m.CallSigns {
		if cs == name {
			return true
		}
	}
	return false
}

// Checkpoint records how far a batch processor got through the corpus.
type Checkpoint struct {
	ProcessorType string
	LastID        ID
	UpdatedAt     time.Time
}

// Keyword is a token selected as representative of a document.
type Keyword struct {
	Term      string
	Frequency int     // Occurrences within the document
	Weight    float64 // Domain weight, 1.0 for ordinary terms
}

// Score is the ranking value used to order keywords within a document.
func (k Keyword) Score() float64 {
	return k.Weight * float64(k.Frequency)
}

// SearchResult is a ranked message with its relevance evidence.
type SearchResult struct {
	Message         *Message
	Score           float64            // Cosine similarity in [0,1]
	MatchedKeywords []string           // Query keywords present in the message
	Contributions   map[string]float64 // Per-keyword share of Score
	Snippet         string
	Opposite        bool // Found through antonym expansion
}

// KeywordAnalysis summarizes one term across a message set.
type KeywordAnalysis struct {
	Term             string
	Frequency        int
	DocumentCount    int
	TFIDF            float64
	RelatedCallSigns []string
	RelatedAreas     []string
	FirstSeen        time.Time
	LastSeen         time.Time
}

// MessageCluster is a group of messages sharing keywords.
type MessageCluster struct {
	Id          int
	Keywords    []string
	Messages    []*Message
	MemberCount int
	Cohesion    float64 // Mean pairwise Jaccard similarity of member keyword sets
}

// TermDimensionStats breaks down occurrences of a literal term.
type TermDimensionStats struct {
	Term              string
	Total             int
	Days              int
	AvgPerDay         float64
	PeakArea          string
	PeakAreaCount     int
	PeakCallSign      string
	PeakCallSignCount int
	ByDay             map[string]int // Keyed by YYYY-MM-DD
	ByArea            map[string]int
	ByCallSign        map[string]int
}

// CategorySummary describes one message category found in the corpus.
type CategorySummary struct {
	Category string
	Count    int
	Keywords []string
	Phrases  []string
}

// Phrase is a frequent contiguous token n-gram.
type Phrase struct {
	Text  string // Space-joined tokens
	Count int
}
