package search

import (
	"github.com/poiesic/wayfarer/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
// Hooks run while the recommender holds its read lock and must not call back
// into the recommender's mutating methods.
type SearchMonitor interface {
	Start(query []core.Passion)
	AfterCandidateSelection(passion core.Passion, remaining int)
	DegenerateLocation(location *core.Location)
	Scored(result *core.ScoredLocation)
	Failed(err error)
	Finish(results []*core.ScoredLocation)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ []core.Passion)                        {}
func (n *noopMonitor) AfterCandidateSelection(_ core.Passion, _ int) {}
func (n *noopMonitor) DegenerateLocation(_ *core.Location)           {}
func (n *noopMonitor) Scored(_ *core.ScoredLocation)                 {}
func (n *noopMonitor) Failed(_ error)                                {}
func (n *noopMonitor) Finish(_ []*core.ScoredLocation)               {}
