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

package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDefinition []byte

var loadDefault = sync.OnceValues(func() (*Vocabulary, error) {
	return Parse(defaultDefinition)
})

// Default returns the built-in vocabulary. The same instance is shared by
// all callers.
func Default() *Vocabulary {
	v, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("lexicon: embedded default vocabulary is invalid: %v", err))
	}
	return v
}

// Parse decodes a YAML vocabulary definition.
func Parse(data []byte) (*Vocabulary, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary: %w", err)
	}
	return New(def)
}

// LoadFile reads and parses a YAML vocabulary file.
func LoadFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary %s: %w", path, err)
	}
	v, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
