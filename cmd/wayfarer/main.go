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

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/wayfarer"
	"github.com/poiesic/wayfarer/catalog"
	"github.com/poiesic/wayfarer/core"
	"github.com/poiesic/wayfarer/monitor"
	"github.com/poiesic/wayfarer/search"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "wayfarer",
		Usage: "Recommend locations for a set of passions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "import",
				Usage:  "Import YAML catalog files into a database",
				Action: importCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringSliceFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Catalog file to import (repeatable)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of files parsed concurrently (0 picks from CPU count)",
						Value: 0,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of locations written per transaction",
						Value: catalog.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N locations",
						Value: catalog.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "max-attempts",
						Usage: "Maximum attempts per batch",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 100 * time.Millisecond,
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List stored locations and their endorsements",
				Action: listCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.BoolFlag{
						Name:  "yaml",
						Usage: "Print the stored catalog as YAML",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Rank stored locations for the given passions",
				ArgsUsage: "PASSION...",
				Action:    searchCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results (0 for all)",
						Value: 0,
					},
					&cli.BoolFlag{
						Name:  "stats",
						Usage: "Print search metrics after the results",
					},
				},
			},
			{
				Name:      "demo",
				Usage:     "Search the built-in four-city catalog",
				ArgsUsage: "[PASSION...]",
				Action:    demoCommand,
			},
		},
	}
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg := catalog.DefaultConfig()
	cfg.BatchSize = c.Int("batch-size")
	cfg.ReportInterval = c.Int("report-interval")
	cfg.MaxAttempts = c.Int("max-attempts")
	cfg.RetryDelay = c.Duration("retry-delay")
	if cfg.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}

	db, err := wayfarer.NewDatabase(c.String("db"), wayfarer.WithCatalogConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var opts []catalog.Option
	if workers := c.Int("workers"); workers > 0 {
		opts = append(opts, catalog.WithPoolSize(workers))
	}

	result, err := db.ImportFiles(ctx, c.StringSlice("file"), c.App.ErrWriter, opts...)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Imported %d new and %d updated locations\n", result.Added, result.Updated)
	return nil
}

func listCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := wayfarer.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if c.Bool("yaml") {
		f, err := db.ExportCatalog(ctx, nil)
		if err != nil {
			return err
		}
		data, err := f.Marshal()
		if err != nil {
			return err
		}
		_, err = c.App.Writer.Write(data)
		return err
	}

	// A recommender sorts locations by name for us
	rec, err := db.NewRecommender(ctx)
	if err != nil {
		return err
	}
	for _, loc := range rec.Locations() {
		fmt.Fprintf(c.App.Writer, "%s (%d endorsements)\n", loc.Name(), loc.TotalEndorsements())
		for _, p := range loc.Passions() {
			fmt.Fprintf(c.App.Writer, "  %s: %d\n", p.Name(), loc.EndorsementFor(p))
		}
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() == 0 {
		return fmt.Errorf("at least one passion is required")
	}
	limit := c.Int("limit")
	if limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}

	db, err := wayfarer.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rec, err := db.NewRecommender(ctx, search.WithMaxResults(limit))
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics, err := monitor.NewMetrics(registry)
	if err != nil {
		return err
	}

	mon := monitor.Multi(metrics.Monitor(), monitor.NewLogging(slog.Default()))
	results, err := rec.SearchWithMonitor(core.NewPassions(c.Args().Slice()...), mon)
	if err != nil {
		return err
	}
	printResults(c.App.Writer, results)

	if c.Bool("stats") {
		return printStats(c.App.Writer, registry)
	}
	return nil
}

func demoCommand(c *cli.Context) error {
	query := catalog.DemoQuery
	if c.NArg() > 0 {
		query = c.Args().Slice()
	}

	rec, err := search.NewRecommender()
	if err != nil {
		return err
	}
	if _, err := catalog.Demo().Apply(rec); err != nil {
		return err
	}

	results, err := rec.SearchWithMonitor(core.NewPassions(query...), monitor.NewLogging(slog.Default()))
	if err != nil {
		return err
	}
	printResults(c.App.Writer, results)
	return nil
}

func printResults(w io.Writer, results []*core.ScoredLocation) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No locations match every passion")
		return
	}
	for _, r := range results {
		fmt.Fprintf(w, "%s: %.6f\n", r.Location.Name(), r.Score)
	}
}

// printStats writes every gathered counter and histogram summary.
func printStats(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Stats:")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			if labels := m.GetLabel(); len(labels) > 0 {
				pairs := make([]string, len(labels))
				for i, l := range labels {
					pairs[i] = fmt.Sprintf("%s=%q", l.GetName(), l.GetValue())
				}
				name += "{" + strings.Join(pairs, ",") + "}"
			}

			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(w, "  %s %g\n", name, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Fprintf(w, "  %s count=%d sum=%g\n", name, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
