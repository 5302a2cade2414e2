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

// Package search ranks locations against a query of passions.
//
// The Recommender type owns the catalog of known locations and an inverted
// index from each passion to the locations endorsing it. A search runs in
// three stages:
//   - Candidate selection: the index entries of every query passion are
//     intersected, so only locations endorsed for all of them survive
//   - Scoring: each candidate scores the sum over query passions of
//     tf * idf, where tf is the share of the location's endorsements that
//     went to the passion and idf is ln(N / nt) over the catalog
//   - Ranking: candidates are sorted by descending score, with exact ties
//     ordered by location name
//
// Query passions with no index entry fail the search with ErrUnknownPassion
// rather than matching nothing.
package search
