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

package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/wayfarer/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %v", ErrSerializationFailed, err)
	}
	if n != len(data) {
		return 0, fmt.Errorf("%w: id has %d trailing bytes", ErrTruncatedData, len(data)-n)
	}
	return core.ID(v), nil
}

// MarshalPassion serializes a passion name with a length prefix. Encoded
// passions are prefix-free, so they can lead a composite key.
func MarshalPassion(p core.Passion) []byte {
	buf := make([]byte, ord.String.Size(p.Name()))
	ord.String.Marshal(p.Name(), buf)
	return buf
}

// MarshalLocation serializes a location record: id, name, total
// endorsements, pair count, then (passion, amount) pairs in passion order.
func MarshalLocation(loc *core.Location) []byte {
	endorsements := loc.Endorsements()
	passions := loc.Passions()
	var total int64
	for _, amount := range endorsements {
		total += amount
	}

	size := varint.Uint64.Size(uint64(loc.ID())) +
		ord.String.Size(loc.Name()) +
		varint.Int64.Size(total) +
		varint.Int.Size(len(passions))
	for _, p := range passions {
		size += ord.String.Size(p.Name()) + varint.Int64.Size(endorsements[p])
	}

	buf := make([]byte, size)
	n := varint.Uint64.Marshal(uint64(loc.ID()), buf)
	n += ord.String.Marshal(loc.Name(), buf[n:])
	n += varint.Int64.Marshal(total, buf[n:])
	n += varint.Int.Marshal(len(passions), buf[n:])
	for _, p := range passions {
		n += ord.String.Marshal(p.Name(), buf[n:])
		n += varint.Int64.Marshal(endorsements[p], buf[n:])
	}
	return buf
}

// UnmarshalLocation deserializes a location record and rebuilds the
// location by replaying its endorsements. A record whose stored ID or total
// disagrees with its contents is rejected.
func UnmarshalLocation(data []byte) (*core.Location, error) {
	id, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: location id: %v", ErrSerializationFailed, err)
	}
	offset := n

	name, n, err := ord.String.Unmarshal(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: location name: %v", ErrSerializationFailed, err)
	}
	offset += n

	total, n, err := varint.Int64.Unmarshal(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: location total: %v", ErrSerializationFailed, err)
	}
	offset += n

	count, n, err := varint.Int.Unmarshal(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: endorsement count: %v", ErrSerializationFailed, err)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative endorsement count %d", ErrSerializationFailed, count)
	}
	offset += n

	loc := core.NewLocation(name)
	if uint64(loc.ID()) != id {
		return nil, fmt.Errorf("%w: id %d does not match name %q", ErrSerializationFailed, id, name)
	}

	for i := 0; i < count; i++ {
		passion, n, err := ord.String.Unmarshal(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("%w: passion %d of %q: %v", ErrSerializationFailed, i, name, err)
		}
		offset += n

		amount, n, err := varint.Int64.Unmarshal(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("%w: amount %d of %q: %v", ErrSerializationFailed, i, name, err)
		}
		offset += n

		if err := loc.Endorse(core.NewPassion(passion), amount); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
		}
	}

	if offset != len(data) {
		return nil, fmt.Errorf("%w: location %q has %d trailing bytes", ErrTruncatedData, name, len(data)-offset)
	}
	if loc.TotalEndorsements() != total {
		return nil, fmt.Errorf("%w: %q total %d, endorsements sum to %d", ErrSerializationFailed, name, total, loc.TotalEndorsements())
	}
	return loc, nil
}
