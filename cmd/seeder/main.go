package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/poiesic/wayfarer"
	"github.com/poiesic/wayfarer/catalog"
)

var (
	dbPath  = flag.String("db", "./wayfarer_db", "database directory")
	srcPath = flag.String("src", "", "YAML catalog to seed from (default: built-in demo catalog)")
)

func main() {
	flag.Parse()

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	source := catalog.Demo()
	if *srcPath != "" {
		f, err := catalog.ParseFile(*srcPath)
		if err != nil {
			slog.Error("failed to read catalog", "path", *srcPath, "err", err)
			os.Exit(1)
		}
		source = f
	}
	if source.Index != nil {
		slog.Warn("explicit index is not stored; it will be derived from endorsements")
	}

	db, err := wayfarer.NewDatabase(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "path", *dbPath, "err", err)
		os.Exit(1)
	}
	defer db.Close()

	result, err := db.ImportCatalog(context.Background(), source, os.Stderr)
	if err != nil {
		db.Close()
		slog.Error("seeding failed", "err", err)
		os.Exit(1)
	}
	slog.Info("seeded database", "path", *dbPath, "added", result.Added, "updated", result.Updated)
}
