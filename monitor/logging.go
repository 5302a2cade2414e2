package monitor

import (
	"log/slog"

	"github.com/poiesic/wayfarer/core"
	"github.com/poiesic/wayfarer/search"
)

// Logging is a SearchMonitor that logs every stage at debug level and
// degenerate locations and failures at warn level.
type Logging struct {
	logger *slog.Logger
}

var _ search.SearchMonitor = (*Logging)(nil)

// NewLogging creates a logging monitor. A nil logger uses slog.Default().
func NewLogging(logger *slog.Logger) *Logging {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logging{logger: logger}
}

func (l *Logging) Start(query []core.Passion) {
	l.logger.Debug("search started", "query", query)
}

func (l *Logging) AfterCandidateSelection(passion core.Passion, remaining int) {
	l.logger.Debug("intersected candidates", "passion", passion.Name(), "remaining", remaining)
}

func (l *Logging) DegenerateLocation(location *core.Location) {
	l.logger.Warn("candidate has no endorsements", "location", location.Name())
}

func (l *Logging) Scored(result *core.ScoredLocation) {
	l.logger.Debug("scored candidate", "location", result.Location.Name(), "score", result.Score)
}

func (l *Logging) Failed(err error) {
	l.logger.Warn("search failed", "err", err)
}

func (l *Logging) Finish(results []*core.ScoredLocation) {
	l.logger.Debug("search finished", "results", len(results))
}
