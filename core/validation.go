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

import "fmt"

// ValidateLocation validates a Location according to domain rules.
//
// Validation rules:
//   - Location must not be nil
//   - Name must not be empty
//   - Every recorded passion must have a non-empty name
//
// NOT validated:
//   - Endorsement counts (Endorse already rejects negative amounts)
//   - Locations without endorsements (valid, they simply never match a query)
func ValidateLocation(location *Location) error {
	if location == nil {
		return fmt.Errorf("%w: location is nil", ErrInvalidLocation)
	}

	if location.Name() == "" {
		return fmt.Errorf("%w: %w", ErrInvalidLocation, ErrEmptyLocationName)
	}

	for _, p := range location.Passions() {
		if err := ValidatePassion(p); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidLocation, location.Name(), err)
		}
	}

	return nil
}

// ValidatePassion checks that a passion has a name.
func ValidatePassion(p Passion) error {
	if p.Name() == "" {
		return ErrEmptyPassionName
	}
	return nil
}

// ValidateEndorsement checks that an endorsement amount is not negative.
func ValidateEndorsement(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidEndorsement, amount)
	}
	return nil
}
