package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avencia/tika-batch/constants"
	"github.com/avencia/tika-batch/internal/export"
	"github.com/avencia/tika-batch/internal/ingest"
	"github.com/avencia/tika-batch/internal/store"
	"github.com/avencia/tika-batch/internal/tika"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	if err := run(context.Background()); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
}

// run does the whole pass and returns instead of exiting, so deferred
// cleanup (the job store in particular) runs on failure paths too.
func run(ctx context.Context) error {
	var (
		jar          = flag.String("jar", "", "path to the tika-app jar (required)")
		java         = flag.String("java", "", "java binary (defaults to java on PATH)")
		format       = flag.String("format", "xml", "output format: xml | html | text")
		metadataOnly = flag.Bool("metadata-only", false, "extract only the JSON metadata object")
		record       = flag.String("record", "generic", "metadata record type: generic | joined")
		encoding     = flag.String("encoding", "UTF-8", "output encoding")
		timeout      = flag.Duration("timeout", 2*time.Minute, "per-document invocation timeout")
		strictJSON   = flag.Bool("strict-json", false, "validate metadata JSON against the flat-object schema")
		password     = flag.String("password", "", "password applied to explicitly listed files")
		out          = flag.String("out", "", "write an XLSX report to this path")
		dsn          = flag.String("dsn", "", "job history DSN (sqlite:<path> or postgres://)")
		exts         = flag.String("ext", "", "comma-separated extension filter for directories")
		skipHidden   = flag.Bool("skip-hidden", true, "skip hidden files and directories")
		verbose      = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *jar == "" {
		return fmt.Errorf("-jar is required")
	}
	if flag.NArg() == 0 {
		return fmt.Errorf("at least one file or directory argument is required")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	outputFormat, err := constants.ParseOutputFormat(*format)
	if err != nil {
		return err
	}
	cfg := tika.Config{
		JavaPath:     *java,
		JarPath:      *jar,
		OutputFormat: outputFormat,
		Encoding:     *encoding,
		MetadataOnly: *metadataOnly,
		RecordType:   tika.RecordType(*record),
		Timeout:      *timeout,
		StrictJSON:   *strictJSON,
	}

	// Assemble the batch from file and directory arguments.
	batch := tika.NewBatch("cli")
	var includeExts []string
	if *exts != "" {
		includeExts = strings.Split(*exts, ",")
	}
	for _, arg := range flag.Args() {
		info, err := os.Stat(arg)
		if err != nil {
			return err
		}
		if info.IsDir() {
			stats, err := ingest.CollectDirectory(ctx, batch, arg, includeExts, *skipHidden)
			if err != nil {
				return fmt.Errorf("walking %s: %w", arg, err)
			}
			logger.Info("directory collected", "root", arg, "matched", stats.Matched, "skipped", stats.Skipped)
			continue
		}
		doc := tika.NewDocument(filepath.Base(arg), arg)
		if *password != "" {
			doc.SetPassword(*password)
		}
		batch.Add(doc)
	}
	if batch.Len() == 0 {
		return fmt.Errorf("no documents matched")
	}

	// Optional job history.
	var jobs store.JobRepository
	if *dsn != "" {
		db, err := store.Open(ctx, *dsn)
		if err != nil {
			return fmt.Errorf("opening job store: %w", err)
		}
		defer db.Close()
		jobs = store.NewJobRepository(db, logger)
	}
	var job *store.Job
	if jobs != nil {
		if j, err := jobs.Start(ctx, batch.Name(), batch.Len()); err == nil {
			job = j
		}
	}

	extractor := tika.NewExtractor(cfg, logger)
	runErr := extractor.ProcessBatch(ctx, batch)

	processed := tika.ProcessedCount(batch, runErr)

	if job != nil {
		if runErr != nil {
			_ = jobs.FinishFailure(ctx, job.ID, processed, runErr.Error())
		} else {
			_ = jobs.FinishSuccess(ctx, job.ID, processed)
		}
	}

	if runErr != nil {
		logger.Error("batch failed", "processed", processed, "total", batch.Len(), "error", runErr)
		return runErr
	}

	if *out != "" {
		data, err := export.NewService(logger).ExportBatchXLSX(batch)
		if err != nil {
			return fmt.Errorf("exporting report: %w", err)
		}
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", *out, err)
		}
		fmt.Printf("report written to %s\n", *out)
	}

	fmt.Printf("processed %d document(s)\n", processed)
	for _, doc := range batch.Documents() {
		fields := 0
		if m := doc.Metadata(); m != nil {
			fields = len(m.Names())
		}
		fmt.Printf("  %s: %d bytes content, %d metadata fields\n", doc.Name(), len(doc.Content()), fields)
	}
	return nil
}
