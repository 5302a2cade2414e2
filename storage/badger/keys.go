package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/wayfarer/core"
	"github.com/poiesic/wayfarer/storage"
)

// Key prefixes for different data types
const (
	locationRecordPrefix  = "locrec"
	locationNamePrefix    = "locnam"
	locationPassionPrefix = "locpas"
)

// makeLocationKey generates a key for a location record by ID.
func makeLocationKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", locationRecordPrefix, id))
}

// makeLocationNameKey generates a key for the name index.
// Format: prefix:name
func makeLocationNameKey(name string) []byte {
	return []byte(locationNamePrefix + ":" + name)
}

// makePassionKey generates a composite key for the passion postings.
// Format: prefix:encodedPassion:id
func makePassionKey(passion core.Passion, id core.ID) []byte {
	partial := makePartialPassionKey(passion)
	buf := make([]byte, len(partial)+8)
	offset := copy(buf, partial)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialPassionKey generates a partial key for passion queries.
// The passion is length-prefixed so "Food" never matches "Food:Street".
func makePartialPassionKey(passion core.Passion) []byte {
	prefix := []byte(locationPassionPrefix + ":")
	encoded := storage.MarshalPassion(passion)
	buf := make([]byte, len(prefix)+len(encoded))
	offset := copy(buf, prefix)
	copy(buf[offset:], encoded)
	return buf
}

// idFromPassionKey extracts the location ID from a passion posting key.
func idFromPassionKey(key []byte) (core.ID, error) {
	if len(key) < 8 {
		return 0, fmt.Errorf("%w: passion key too short", storage.ErrTruncatedData)
	}
	return core.ID(binary.BigEndian.Uint64(key[len(key)-8:])), nil
}
