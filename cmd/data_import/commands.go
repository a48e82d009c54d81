package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/DjordjeVuckovic/exam-portal/internal/domain"
	"github.com/DjordjeVuckovic/exam-portal/internal/ingest"
	"github.com/DjordjeVuckovic/exam-portal/internal/ingest/batch"
	"github.com/DjordjeVuckovic/exam-portal/internal/reader"
	"github.com/DjordjeVuckovic/exam-portal/internal/storage"
	"github.com/DjordjeVuckovic/exam-portal/internal/storage/factory"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func NewImportCommand() *cobra.Command {
	var collection, file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a csv, tsv, xlsx or backup file into a collection",
		Long: `Import rows into a collection. The file type is taken from the extension.

Examples:
  data_import import --collection applications --file rows.xlsx
  data_import import --collection colleges --file colleges.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImport(cmd.Context(), collection, file)
		},
	}

	cmd.Flags().StringVarP(&collection, "collection", "c", "", "target collection (applications, colleges, payments)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "input file")
	_ = cmd.MarkFlagRequired("collection")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func NewExportCommand() *cobra.Command {
	var collection, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a collection as a JSON backup",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd.Context(), collection, out)
		},
	}

	cmd.Flags().StringVarP(&collection, "collection", "c", "", "collection to export")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <collection>.json)")
	_ = cmd.MarkFlagRequired("collection")

	return cmd
}

func NewClearCommand() *cobra.Command {
	var collection string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every document of a collection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClear(cmd.Context(), collection)
		},
	}

	cmd.Flags().StringVarP(&collection, "collection", "c", "", "collection to clear")
	_ = cmd.MarkFlagRequired("collection")

	return cmd
}

type session struct {
	cfg   *DataImportConfig
	store storage.DocumentStore
}

func setup(ctx context.Context, collection string) (*session, context.Context, context.CancelFunc, error) {
	if !domain.IsCollection(collection) {
		return nil, nil, nil, fmt.Errorf("unknown collection %q, expected one of %v", collection, domain.Collections)
	}

	cfg, err := NewAppConfig().Load()
	if err != nil {
		return nil, nil, nil, err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)

	store, _, err := factory.NewDocumentStore(ctx, cfg.StorageConfig)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}
	return &session{cfg: cfg, store: store}, ctx, cancel, nil
}

// progress logs every snapshot with humanized counts.
func progress(verb string) batch.Sink {
	return func(s batch.Snapshot) {
		slog.Info(verb,
			"processed", humanize.Comma(int64(s.Processed)),
			"total", humanize.Comma(int64(s.Total)),
			"percent", s.Percent,
			"eta", s.String(),
		)
	}
}

func runImport(ctx context.Context, collection, file string) error {
	e, ctx, cancel, err := setup(ctx, collection)
	if err != nil {
		return err
	}
	defer cancel()
	defer e.store.Close()

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	opts := append(e.cfg.Pipeline.BatchOptions(), batch.WithSink(progress("Importing")))

	var job ingest.Job
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".json":
		backup, err := reader.NewBackupLoader(f).Load(true)
		if err != nil {
			return err
		}
		if backup.Collection != collection {
			return fmt.Errorf("backup holds %s, not %s", backup.Collection, collection)
		}
		job = ingest.NewRestore(backup, e.store, opts...)
	default:
		src, err := sourceFor(ext, f)
		if err != nil {
			return err
		}
		aliases, err := e.cfg.Pipeline.Aliases()
		if err != nil {
			return err
		}
		job, err = ingest.NewCollectionImporter(collection, src, aliases, e.store, opts...)
		if err != nil {
			return err
		}
	}

	if err := job.Run(ctx); err != nil {
		return err
	}

	s := job.Summary()
	slog.Info("Import finished",
		"collection", collection,
		"read", humanize.Comma(int64(s.Read)),
		"rejected", humanize.Comma(int64(s.Rejected)),
		"dropped", humanize.Comma(int64(s.Dropped)),
		"written", humanize.Comma(int64(s.Written)),
	)
	return nil
}

func sourceFor(ext string, f *os.File) (reader.Reader, error) {
	switch ext {
	case ".csv":
		return reader.NewCSVReader(f), nil
	case ".tsv", ".txt":
		return reader.NewTSVReader(f), nil
	case ".xlsx":
		return reader.NewXLSXReader(f), nil
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
}

func runExport(ctx context.Context, collection, out string) error {
	e, ctx, cancel, err := setup(ctx, collection)
	if err != nil {
		return err
	}
	defer cancel()
	defer e.store.Close()

	if out == "" {
		out = collection + ".json"
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer f.Close()

	n, err := ingest.NewExporter(e.store).Export(ctx, collection, f)
	if err != nil {
		return err
	}

	info, err := f.Stat()
	if err != nil {
		return err
	}
	slog.Info("Export finished",
		"collection", collection,
		"documents", humanize.Comma(int64(n)),
		"file", out,
		"size", humanize.Bytes(uint64(info.Size())),
	)
	return nil
}

func runClear(ctx context.Context, collection string) error {
	e, ctx, cancel, err := setup(ctx, collection)
	if err != nil {
		return err
	}
	defer cancel()
	defer e.store.Close()

	opts := append(e.cfg.Pipeline.BatchOptions(), batch.WithSink(progress("Deleting")))
	d := ingest.NewDeleter(collection, e.store, opts...)
	if err := d.Run(ctx); err != nil {
		return err
	}
	slog.Info("Collection cleared", "collection", collection, "documents", humanize.Comma(int64(d.Summary().Written)))
	return nil
}
