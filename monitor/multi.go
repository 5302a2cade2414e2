package monitor

import (
	"github.com/poiesic/wayfarer/core"
	"github.com/poiesic/wayfarer/search"
)

type multi []search.SearchMonitor

// Multi returns a monitor that forwards every hook to each of monitors in
// order. Nil monitors are skipped.
func Multi(monitors ...search.SearchMonitor) search.SearchMonitor {
	m := make(multi, 0, len(monitors))
	for _, mon := range monitors {
		if mon != nil {
			m = append(m, mon)
		}
	}
	return m
}

func (m multi) Start(query []core.Passion) {
	for _, mon := range m {
		mon.Start(query)
	}
}

func (m multi) AfterCandidateSelection(passion core.Passion, remaining int) {
	for _, mon := range m {
		mon.AfterCandidateSelection(passion, remaining)
	}
}

func (m multi) DegenerateLocation(location *core.Location) {
	for _, mon := range m {
		mon.DegenerateLocation(location)
	}
}

func (m multi) Scored(result *core.ScoredLocation) {
	for _, mon := range m {
		mon.Scored(result)
	}
}

func (m multi) Failed(err error) {
	for _, mon := range m {
		mon.Failed(err)
	}
}

func (m multi) Finish(results []*core.ScoredLocation) {
	for _, mon := range m {
		mon.Finish(results)
	}
}
