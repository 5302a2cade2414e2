package catalog

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports how many locations an import or export has
// handled. A nil writer discards all output. Safe for concurrent use.
type ProgressTracker struct {
	mu       sync.Mutex
	writer   io.Writer
	label    string
	total    int
	interval int
	done     int
	reported int
	started  time.Time
	running  bool
}

// NewProgressTracker creates a tracker that prints "label: done/total"
// every interval locations.
func NewProgressTracker(writer io.Writer, label string, total, interval int) *ProgressTracker {
	if writer == nil {
		writer = io.Discard
	}
	if interval < 1 {
		interval = 1
	}
	return &ProgressTracker{
		writer:   writer,
		label:    label,
		total:    total,
		interval: interval,
	}
}

// Start resets the counters and starts the clock.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.started = time.Now()
	p.running = true
	p.done = 0
	p.reported = 0
}

// Add records n more handled locations. Calls before Start are ignored.
func (p *ProgressTracker) Add(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	p.done = min(p.done+n, p.total)
	if p.done-p.reported >= p.interval {
		p.print()
		p.reported = p.done
	}
}

// Done returns the number of handled locations.
func (p *ProgressTracker) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Finish prints the final line.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.running = false
	p.print()
	fmt.Fprintln(p.writer)
}

// Elapsed returns the time since Start.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started.IsZero() {
		return 0
	}
	return time.Since(p.started)
}

// print writes the progress line. Must be called with lock held.
func (p *ProgressTracker) print() {
	percent := 100.0
	if p.total > 0 {
		percent = float64(p.done) / float64(p.total) * 100.0
	}
	fmt.Fprintf(p.writer, "\r%s: %d/%d locations (%.0f%%)", p.label, p.done, p.total, percent)
}
