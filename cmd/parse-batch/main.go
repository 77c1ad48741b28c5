// parse-batch processes a directory of Document AI output JSON files
// through the normalization pipeline into a local SQLite store and writes
// the collection out as an XLSX workbook.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Cpaul777/docai-parse-codes/constants"
	"github.com/Cpaul777/docai-parse-codes/internal/export"
	"github.com/Cpaul777/docai-parse-codes/internal/extract"
	"github.com/Cpaul777/docai-parse-codes/internal/pipeline"
	"github.com/Cpaul777/docai-parse-codes/internal/repository"
)

// printError prints to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir        = flag.String("dir", "", "directory containing Document AI output JSON files (required)")
		out        = flag.String("out", "", "output XLSX path (defaults to <dir>/../records.xlsx)")
		dbPath     = flag.String("db", "", "SQLite database path (defaults to in-memory)")
		docType    = flag.String("doc-type", "", "document type tag (form_2307, service_invoice, expense)")
		collection = flag.String("collection", "user", "collection to store records under")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "records.xlsx")
	}

	_ = godotenv.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	sqlitePath := *dbPath
	if sqlitePath == "" {
		sqlitePath = ":memory:"
	}
	store, err := repository.OpenSQLite(ctx, sqlitePath, logger)
	if err != nil {
		logger.Error("opening store", "path", sqlitePath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	pipe := pipeline.New(logger, nil)

	entries, err := os.ReadDir(*dir)
	if err != nil {
		logger.Error("reading directory", "dir", *dir, "error", err)
		os.Exit(1)
	}

	var stored, filtered, failed int
	for _, entry := range entries {
		if entry.IsDir() || constants.NormalizeExt(filepath.Ext(entry.Name())) != "json" {
			continue
		}
		path := filepath.Join(*dir, entry.Name())
		ok, err := processFile(ctx, pipe, store, path, *docType, *collection)
		switch {
		case err != nil:
			logger.Error("processing file", "file", entry.Name(), "error", err)
			failed++
		case ok:
			stored++
		default:
			filtered++
		}
	}

	logger.Info("batch complete", "stored", stored, "filtered", filtered, "failed", failed)

	exporter := export.NewService(store, logger)
	data, err := exporter.ExportCollectionXLSX(ctx, *collection)
	if err != nil {
		logger.Error("building workbook", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logger.Error("writing workbook", "path", *out, "error", err)
		os.Exit(1)
	}
	logger.Info("workbook written", "path", *out)
}

// processFile runs one shard through the pipeline. The bool reports whether
// a record was stored (false means the page was filtered as irrelevant).
func processFile(ctx context.Context, pipe *pipeline.Pipeline, store repository.Store, path, docType, collection string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	entities, err := extract.ParseDocument(data)
	if err != nil {
		return false, err
	}
	res, err := pipe.Run(entities, docType)
	if err != nil {
		return false, err
	}
	if !res.Relevant {
		slog.Info("page filtered", "file", filepath.Base(path))
		return false, nil
	}
	payload, err := json.Marshal(res.Record)
	if err != nil {
		return false, err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name, err := store.Put(ctx, collection, base, payload, base+".pdf")
	if err != nil {
		return false, err
	}
	slog.Info("record stored", "file", filepath.Base(path), "name", name)
	return true, nil
}
