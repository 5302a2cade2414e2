package storage

import (
	"errors"
	"testing"

	"github.com/poiesic/wayfarer/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("Hong Kong")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)

	_, err = UnmarshalID(append(MarshalID(7), 0x01))
	assert.ErrorIs(t, err, ErrTruncatedData)
}

func TestMarshalPassion_PrefixFree(t *testing.T) {
	short := MarshalPassion(core.NewPassion("Food"))
	long := MarshalPassion(core.NewPassion("Food:Street"))

	assert.NotEqual(t, short, long[:len(short)])
}

func TestMarshalUnmarshalLocation(t *testing.T) {
	tests := []struct {
		name         string
		location     string
		endorsements map[string]int64
	}{
		{"no endorsements", "Reykjavik", nil},
		{"single passion", "Amsterdam", map[string]int64{"Museum": 1000}},
		{"several passions", "Toronto", map[string]int64{"Walking": 50, "Food": 50, "Museum": 1}},
		{"zero amount recorded", "Lisbon", map[string]int64{"Surfing": 0, "Food": 3}},
		{"unicode names", "Zürich", map[string]int64{"Käse": 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := core.NewLocation(tt.location)
			for p, amount := range tt.endorsements {
				require.NoError(t, loc.Endorse(core.NewPassion(p), amount))
			}

			decoded, err := UnmarshalLocation(MarshalLocation(loc))
			require.NoError(t, err)

			assert.Equal(t, loc.ID(), decoded.ID())
			assert.Equal(t, loc.Name(), decoded.Name())
			assert.Equal(t, loc.TotalEndorsements(), decoded.TotalEndorsements())
			assert.Equal(t, loc.Endorsements(), decoded.Endorsements())
		})
	}
}

func TestMarshalLocation_Deterministic(t *testing.T) {
	a := core.NewLocation("Hong Kong")
	require.NoError(t, a.Endorse(core.NewPassion("Walking"), 1))
	require.NoError(t, a.Endorse(core.NewPassion("Food"), 1))

	b := core.NewLocation("Hong Kong")
	require.NoError(t, b.Endorse(core.NewPassion("Food"), 1))
	require.NoError(t, b.Endorse(core.NewPassion("Walking"), 1))

	assert.Equal(t, MarshalLocation(a), MarshalLocation(b))
}

func TestUnmarshalLocation_Invalid(t *testing.T) {
	loc := core.NewLocation("Toronto")
	require.NoError(t, loc.Endorse(core.NewPassion("Walking"), 50))
	data := MarshalLocation(loc)

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"empty", []byte{}, ErrSerializationFailed},
		{"truncated", data[:len(data)-1], ErrSerializationFailed},
		{"trailing bytes", append(append([]byte{}, data...), 0x00), ErrTruncatedData},
		{"wrong id", append(MarshalID(1), data[len(MarshalID(loc.ID())):]...), ErrSerializationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalLocation(tt.data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
