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

import "errors"

// Domain validation errors
var (
	// ErrInvalidLocation indicates a Location failed validation.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrEmptyLocationName indicates the location Name is empty.
	ErrEmptyLocationName = errors.New("location name cannot be empty")

	// ErrEmptyPassionName indicates the passion Name is empty.
	ErrEmptyPassionName = errors.New("passion name cannot be empty")

	// ErrInvalidEndorsement indicates an endorsement amount was negative.
	ErrInvalidEndorsement = errors.New("endorsement amount cannot be negative")
)
