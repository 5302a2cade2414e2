package core

// Passion is a named interest category that locations can be endorsed for.
// Passions are plain values: two passions with the same name are the same
// passion and may be used interchangeably as map keys.
type Passion struct {
	name string
}

// NewPassion returns the passion with the given name.
func NewPassion(name string) Passion {
	return Passion{name: name}
}

// NewPassions converts a list of names into passions, preserving order.
func NewPassions(names ...string) []Passion {
	passions := make([]Passion, len(names))
	for i, name := range names {
		passions[i] = NewPassion(name)
	}
	return passions
}

// Name returns the passion's name.
func (p Passion) Name() string {
	return p.name
}

func (p Passion) String() string {
	return p.name
}
