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

package catalog

import "errors"

var (
	// ErrInvalidCatalog indicates a catalog file that fails validation.
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrInvalidMaxAttempts indicates that maxAttempts must be greater than 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrNoFiles indicates that a load was requested without any files.
	ErrNoFiles = errors.New("no catalog files given")

	// ErrRepositoryRequired indicates that a location repository is required.
	ErrRepositoryRequired = errors.New("location repository is required")

	// ErrRecommenderRequired indicates that a recommender is required.
	ErrRecommenderRequired = errors.New("recommender is required")
)
