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

// Package catalog loads location catalogs into a recommender.
//
// A catalog is a YAML document listing locations with their passion
// endorsements and, optionally, an explicit passion index:
//
//	locations:
//	  - name: Hong Kong
//	    endorsements:
//	      Walking: 1
//	      Food: 1
//	index:
//	  Walking: [Hong Kong, Toronto]
//
// When the index section is absent the index is derived from the
// endorsements, so every location with a positive count for a passion is
// indexed under it.
//
// # Loading
//
// Parse and ParseFile read a single document. A Loader parses several files
// on an ants worker pool and merges them in argument order:
//
//	loader, err := catalog.NewLoader(catalog.WithPoolSize(4))
//	if err != nil {
//	    return err
//	}
//	defer loader.Release()
//	file, err := loader.LoadFiles(ctx, "europe.yaml", "asia.yaml")
//
// # Persistence
//
// Import writes a catalog to a storage.LocationRepository in batches, each
// batch in one transaction retried with exponential backoff. Export reads
// every stored location back into a File. Stored catalogs keep endorsements
// only; their index is always derived.
package catalog
