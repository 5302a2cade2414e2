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
	"log/slog"
	"os"

	"github.com/poiesic/wayfarer"
	"github.com/poiesic/wayfarer/catalog"
	"github.com/poiesic/wayfarer/core"
	"github.com/poiesic/wayfarer/monitor"
	"github.com/poiesic/wayfarer/search"
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	rec, err := openRecommender(os.Getenv("WAYFARER_DB"))
	if err != nil {
		panic(err)
	}

	query := catalog.DemoQuery
	if len(os.Args) > 1 {
		query = os.Args[1:]
	}

	results, err := rec.SearchWithMonitor(core.NewPassions(query...), monitor.NewLogging(slog.Default()))
	if err != nil {
		panic(err)
	}

	fmt.Printf("Found %d locations\n", len(results))
	for _, hit := range results {
		fmt.Printf("%s: %f\n", hit.Location.Name(), hit.Score)
	}
}

// openRecommender restores a recommender from the database at dbPath, or
// builds the demo catalog when dbPath is empty.
func openRecommender(dbPath string) (*search.Recommender, error) {
	if dbPath == "" {
		rec, err := search.NewRecommender()
		if err != nil {
			return nil, err
		}
		if _, err := catalog.Demo().Apply(rec); err != nil {
			return nil, err
		}
		return rec, nil
	}

	db, err := wayfarer.NewDatabase(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.NewRecommender(context.Background())
}
