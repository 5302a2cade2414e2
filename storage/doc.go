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

// Package storage provides the storage abstraction layer for wayfarer catalogs.
//
// This package defines repository interfaces that decouple the catalog store
// from the recommender. The recommender never reads storage directly; the
// catalog package loads stored locations into it.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return interfaces:
//
//	repo, err := badger.NewLocationRepository(backend)  // returns storage.LocationRepository
//
// Internal helpers may return concrete types since they're only used within
// the implementation package.
//
// # Encoding
//
// Values are encoded with mus-go. A location record holds the location ID,
// name, total endorsements and its (passion, amount) pairs sorted by passion
// name. Decoding replays the endorsements onto a fresh core.Location and
// rejects records whose ID or total disagree with their contents.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	repo, err := badger.NewLocationRepository(backend)
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryRepository()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
