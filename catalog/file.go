package catalog

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/poiesic/wayfarer/core"
	"github.com/poiesic/wayfarer/search"
	"gopkg.in/yaml.v3"
)

// Entry is one location of a catalog file.
type Entry struct {
	Name         string           `yaml:"name"`
	Endorsements map[string]int64 `yaml:"endorsements,omitempty"`
}

// File is a parsed catalog document.
type File struct {
	Locations []Entry `yaml:"locations"`

	// Index maps a passion to the names of the locations indexed under it.
	// Nil means the index is derived from the endorsements.
	Index map[string][]string `yaml:"index,omitempty"`
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*File, error) {
	f := &File{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("%w: parse yaml: %w", ErrInvalidCatalog, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// ParseFile reads and parses the catalog at path.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Validate checks names, amounts and index references.
func (f *File) Validate() error {
	seen := make(map[string]struct{}, len(f.Locations))
	for i, entry := range f.Locations {
		if entry.Name == "" {
			return fmt.Errorf("%w: location %d: %w", ErrInvalidCatalog, i, core.ErrEmptyLocationName)
		}
		if _, dup := seen[entry.Name]; dup {
			return fmt.Errorf("%w: location %q listed twice", ErrInvalidCatalog, entry.Name)
		}
		seen[entry.Name] = struct{}{}

		for passion, amount := range entry.Endorsements {
			if passion == "" {
				return fmt.Errorf("%w: location %q: %w", ErrInvalidCatalog, entry.Name, core.ErrEmptyPassionName)
			}
			if err := core.ValidateEndorsement(amount); err != nil {
				return fmt.Errorf("%w: location %q, passion %q: %w", ErrInvalidCatalog, entry.Name, passion, err)
			}
		}
	}

	for passion, names := range f.Index {
		if passion == "" {
			return fmt.Errorf("%w: index: %w", ErrInvalidCatalog, core.ErrEmptyPassionName)
		}
		for _, name := range names {
			if _, ok := seen[name]; !ok {
				return fmt.Errorf("%w: index %q names unknown location %q", ErrInvalidCatalog, passion, name)
			}
		}
	}
	return nil
}

// Merge folds other into f. Endorsements of a location present in both
// accumulate; index entries are unioned. An explicit index on either side
// makes the merged index explicit, and the side without one contributes the
// index derived from its endorsements.
func (f *File) Merge(other *File) {
	var derived map[string][]string
	switch {
	case f.Index == nil && other.Index != nil:
		derived = deriveIndex(f.Locations)
	case f.Index != nil && other.Index == nil:
		derived = deriveIndex(other.Locations)
	}

	positions := make(map[string]int, len(f.Locations))
	for i, entry := range f.Locations {
		positions[entry.Name] = i
	}

	for _, entry := range other.Locations {
		i, ok := positions[entry.Name]
		if !ok {
			positions[entry.Name] = len(f.Locations)
			f.Locations = append(f.Locations, Entry{
				Name:         entry.Name,
				Endorsements: maps.Clone(entry.Endorsements),
			})
			continue
		}
		if f.Locations[i].Endorsements == nil {
			f.Locations[i].Endorsements = make(map[string]int64, len(entry.Endorsements))
		}
		for passion, amount := range entry.Endorsements {
			f.Locations[i].Endorsements[passion] += amount
		}
	}

	if f.Index == nil && other.Index == nil {
		return
	}
	if f.Index == nil {
		f.Index = make(map[string][]string, len(other.Index)+len(derived))
	}
	f.addIndex(other.Index)
	f.addIndex(derived)
}

func (f *File) addIndex(index map[string][]string) {
	for passion, names := range index {
		for _, name := range names {
			if !slices.Contains(f.Index[passion], name) {
				f.Index[passion] = append(f.Index[passion], name)
			}
		}
	}
}

// deriveIndex lists each entry under every passion it endorses positively.
func deriveIndex(entries []Entry) map[string][]string {
	index := make(map[string][]string)
	for _, entry := range entries {
		for passion, amount := range entry.Endorsements {
			if amount > 0 {
				index[passion] = append(index[passion], entry.Name)
			}
		}
	}
	return index
}

// Build creates one core.Location per entry, endorsed as listed.
func (f *File) Build() ([]*core.Location, error) {
	locations := make([]*core.Location, 0, len(f.Locations))
	for _, entry := range f.Locations {
		loc := core.NewLocation(entry.Name)
		for _, passion := range slices.Sorted(maps.Keys(entry.Endorsements)) {
			if err := loc.Endorse(core.NewPassion(passion), entry.Endorsements[passion]); err != nil {
				return nil, fmt.Errorf("%w: location %q: %w", ErrInvalidCatalog, entry.Name, err)
			}
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

// Apply adds the catalog's locations to rec and builds the index, from the
// explicit index section when present and from the endorsements otherwise.
// It returns the locations it added.
func (f *File) Apply(rec *search.Recommender) ([]*core.Location, error) {
	if rec == nil {
		return nil, ErrRecommenderRequired
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	locations, err := f.Build()
	if err != nil {
		return nil, err
	}
	if err := rec.AddLocation(locations...); err != nil {
		return nil, err
	}

	if f.Index == nil {
		rec.Reindex()
		return locations, nil
	}

	byName := make(map[string]*core.Location, len(locations))
	for _, loc := range locations {
		byName[loc.Name()] = loc
	}
	for _, passion := range slices.Sorted(maps.Keys(f.Index)) {
		indexed := make([]*core.Location, 0, len(f.Index[passion]))
		for _, name := range f.Index[passion] {
			indexed = append(indexed, byName[name])
		}
		if err := rec.IndexPassion(core.NewPassion(passion), indexed...); err != nil {
			return nil, err
		}
	}
	return locations, nil
}

// FromLocations builds a catalog file holding the endorsements of
// locations. The index is left derived.
func FromLocations(locations []*core.Location) *File {
	f := &File{Locations: make([]Entry, 0, len(locations))}
	for _, loc := range locations {
		entry := Entry{Name: loc.Name()}
		if endorsements := loc.Endorsements(); len(endorsements) > 0 {
			entry.Endorsements = make(map[string]int64, len(endorsements))
			for p, amount := range endorsements {
				entry.Endorsements[p.Name()] = amount
			}
		}
		f.Locations = append(f.Locations, entry)
	}
	return f
}

// Marshal encodes f as YAML.
func (f *File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}
