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

// Package openai provides a message classifier backed by an OpenAI-compatible
// chat completion API.
//
// The classifier sends each message body to the configured model in JSON
// mode together with the list of allowed category names, and parses a
// response of the form {"category": "<name>"}. Malformed responses are
// repaired where possible and retried up to Config.MaxAttempts times. A
// category outside the allowed list is mapped to the vocabulary's default
// category.
//
// Any server speaking the OpenAI chat API works, including Ollama, LocalAI,
// and vLLM:
//
//	cfg := classify.NewConfig(
//	    classify.WithBackend(classify.BackendOpenAI),
//	    classify.WithHost("http://localhost:11434"),
//	    classify.WithModel("qwen2.5:3b"),
//	)
//	c, err := openai.NewClassifier(cfg, lexicon.Default())
package openai
