package monitor

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/poiesic/wayfarer/core"
	"github.com/poiesic/wayfarer/search"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecommender(t *testing.T) *search.Recommender {
	t.Helper()

	rec, err := search.NewRecommender()
	require.NoError(t, err)

	toronto := core.NewLocation("Toronto")
	amsterdam := core.NewLocation("Amsterdam")
	require.NoError(t, rec.AddLocation(toronto, amsterdam))
	require.NoError(t, rec.Endorse(toronto, core.NewPassion("Food"), 50))
	require.NoError(t, rec.Endorse(toronto, core.NewPassion("Museum"), 1))
	require.NoError(t, rec.Endorse(amsterdam, core.NewPassion("Museum"), 1000))
	return rec
}

func TestMetrics(t *testing.T) {
	rec := newRecommender(t)

	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = rec.SearchWithMonitor(core.NewPassions("Museum"), metrics.Monitor())
	require.NoError(t, err)
	_, err = rec.SearchWithMonitor(core.NewPassions("Food", "Museum"), metrics.Monitor())
	require.NoError(t, err)
	_, err = rec.SearchWithMonitor(core.NewPassions("Skiing"), metrics.Monitor())
	require.Error(t, err)
	_, err = rec.SearchWithMonitor(nil, metrics.Monitor())
	require.Error(t, err)

	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.Searches))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Failures.WithLabelValues(ReasonUnknownPassion)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Failures.WithLabelValues(ReasonEmptyQuery)))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.Degenerate))
	assert.Equal(t, 2, testutil.CollectAndCount(reg, "wayfarer_search_failures_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(reg, "wayfarer_search_results"))
	assert.Equal(t, 6, testutil.CollectAndCount(reg))
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

func TestFailureReason(t *testing.T) {
	assert.Equal(t, ReasonEmptyQuery, failureReason(search.ErrEmptyQuery))
	assert.Equal(t, ReasonUnknownPassion, failureReason(&search.UnknownPassionError{Passion: core.NewPassion("x")}))
	assert.Equal(t, ReasonOther, failureReason(search.ErrLocationNotInCatalog))
}

func TestLogging(t *testing.T) {
	rec := newRecommender(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := rec.SearchWithMonitor(core.NewPassions("Museum"), NewLogging(logger))
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "search started")
	assert.Contains(t, output, "location=Amsterdam")
	assert.Contains(t, output, "search finished")

	buf.Reset()
	_, err = rec.SearchWithMonitor(core.NewPassions("Skiing"), NewLogging(logger))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "search failed")
}

func TestLogging_OneWarningPerEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rec, err := search.NewRecommender(search.WithLogger(logger))
	require.NoError(t, err)
	nowhere := core.NewLocation("Nowhere")
	require.NoError(t, rec.AddLocation(nowhere))
	require.NoError(t, rec.IndexPassion(core.NewPassion("Food"), nowhere))

	results, err := rec.SearchWithMonitor(core.NewPassions("Food"), NewLogging(logger))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, strings.Count(buf.String(), "level=WARN"))
	assert.Equal(t, 1, strings.Count(buf.String(), "candidate has no endorsements"))

	buf.Reset()
	_, err = rec.SearchWithMonitor(core.NewPassions("Skiing"), NewLogging(logger))
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), "search failed"))
}

func TestMulti(t *testing.T) {
	rec := newRecommender(t)

	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	mon := Multi(metrics.Monitor(), nil, NewLogging(logger))
	results, err := rec.SearchWithMonitor(core.NewPassions("Museum"), mon)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Searches))
	assert.Contains(t, buf.String(), "search finished")
}
