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

// Package storage provides the storage abstraction layer for radiolex.
//
// This package defines repository interfaces that decouple the message store
// from the lexical engine and the command line tools. The engine only ever
// reads snapshots through MessageRepository; ingestion and reclassification
// are the only writers.
//
// # Architecture
//
//   - MessageRepository: intercepted messages with date, fingerprint, and
//     arrival-order access paths
//   - CheckpointRepository: progress markers for resumable batch jobs
//   - MessageFilter: the date/area/frequency/call-sign predicate shared by
//     the store and the search engine
//
// # Usage
//
//	msgRepo, ckptRepo, backend, err := badger.NewMemoryRepositories()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	defer msgRepo.Close()
//
//	msgs, err := msgRepo.QueryMessages(ctx, storage.MessageFilter{Area: "Север"})
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
