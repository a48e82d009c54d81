package router

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/DjordjeVuckovic/exam-portal/internal/apperr"
	"github.com/DjordjeVuckovic/exam-portal/internal/ingest"
	"github.com/DjordjeVuckovic/exam-portal/internal/ingest/batch"
	"github.com/DjordjeVuckovic/exam-portal/internal/reader"
	"github.com/DjordjeVuckovic/exam-portal/internal/storage"
	"github.com/labstack/echo/v4"
)

type ImportRouter struct {
	e       *echo.Echo
	ctx     context.Context
	store   storage.DocumentStore
	aliases *reader.AliasTable
	runs    *ingest.Runs
	opts    []batch.Option
	jobs    sync.WaitGroup
}

type ImportRouterOption func(*ImportRouter)

// WithBatchOptions applies writer options such as limits or an observer to every job.
func WithBatchOptions(opts ...batch.Option) ImportRouterOption {
	return func(r *ImportRouter) {
		r.opts = append(r.opts, opts...)
	}
}

func WithAliases(aliases *reader.AliasTable) ImportRouterOption {
	return func(r *ImportRouter) {
		r.aliases = aliases
	}
}

// NewImportRouter creates the import routes. Jobs run in the background until ctx is done.
func NewImportRouter(ctx context.Context, e *echo.Echo, store storage.DocumentStore, runs *ingest.Runs, opts ...ImportRouterOption) *ImportRouter {
	r := &ImportRouter{
		e:       e,
		ctx:     ctx,
		store:   store,
		aliases: reader.DefaultAliasTable(),
		runs:    runs,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ImportRouter) Bind() {
	r.e.POST("/imports/:collection", r.importHandler)
	r.e.GET("/imports/:id", r.runHandler)
	r.e.DELETE("/collections/:collection", r.clearHandler)
	r.e.GET("/exports/:collection", r.exportHandler)
}

type RunAccepted struct {
	ID    string       `json:"id"`
	State ingest.State `json:"state"`
}

// importHandler godoc
// @Summary Import a spreadsheet or backup into a collection
// @Description Accepts csv, tsv, xlsx or a JSON backup in the multipart field "file". The import runs in the background.
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param collection path string true "Collection" Enums(applications, colleges, payments)
// @Param file formData file true "Data file"
// @Success 202 {object} RunAccepted
// @Failure 400 {object} ErrorResponse
// @Router /imports/{collection} [post]
func (r *ImportRouter) importHandler(c echo.Context) error {
	collection, err := collectionParam(c.Param("collection"))
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return apperr.NewValidationWrap("multipart field file is required", err)
	}
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	// the job outlives the request, so the upload is buffered
	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}

	return r.launch(c, collection, func(opts []batch.Option) (ingest.Job, error) {
		return r.newJob(collection, fh.Filename, data, opts)
	})
}

func (r *ImportRouter) newJob(collection, filename string, data []byte, opts []batch.Option) (ingest.Job, error) {
	var src reader.Reader
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		src = reader.NewCSVReader(bytes.NewReader(data))
	case ".tsv", ".txt":
		src = reader.NewTSVReader(bytes.NewReader(data))
	case ".xlsx":
		src = reader.NewXLSXReader(bytes.NewReader(data))
	case ".json":
		backup, err := reader.NewBackupLoader(bytes.NewReader(data)).Load(true)
		if err != nil {
			return nil, apperr.NewValidationWrap("invalid backup", err)
		}
		if backup.Collection != collection {
			return nil, apperr.NewValidation(fmt.Sprintf("backup holds %s, not %s", backup.Collection, collection))
		}
		return ingest.NewRestore(backup, r.store, opts...), nil
	default:
		return nil, apperr.NewValidation(fmt.Sprintf("unsupported file type %q", ext))
	}

	return ingest.NewCollectionImporter(collection, src, r.aliases, r.store, opts...)
}

// launch registers a run, builds its job with the run's progress sink and starts it.
func (r *ImportRouter) launch(c echo.Context, collection string, build func([]batch.Option) (ingest.Job, error)) error {
	run := r.runs.Create(collection)

	opts := append(append([]batch.Option{}, r.opts...), batch.WithSink(r.runs.Sink(run.ID)))
	job, err := build(opts)
	if err != nil {
		if ferr := r.runs.Fail(run.ID, ingest.Summary{Collection: collection}, err); ferr != nil {
			slog.Error("Failed to record run failure", "run_id", run.ID, "error", ferr)
		}
		return err
	}

	r.jobs.Add(1)
	go func() {
		defer r.jobs.Done()
		if err := r.runs.Execute(r.ctx, run.ID, job); err != nil {
			slog.Warn("Background job ended with error", "run_id", run.ID, "collection", collection, "error", err)
		}
	}()

	return c.JSON(http.StatusAccepted, RunAccepted{ID: run.ID, State: run.State})
}

// Wait blocks until every background job started by the router has returned.
// Jobs stop early once the router's context is cancelled.
func (r *ImportRouter) Wait() {
	r.jobs.Wait()
}

// runHandler godoc
// @Summary Get the state and progress of an import or delete run
// @Tags imports
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} ingest.Run
// @Failure 404 {object} ErrorResponse
// @Router /imports/{id} [get]
func (r *ImportRouter) runHandler(c echo.Context) error {
	id := c.Param("id")
	run, err := r.runs.Get(id)
	if err != nil {
		if errors.Is(err, ingest.ErrRunNotFound) {
			return apperr.NewNotFound("run", id)
		}
		return err
	}
	return c.JSON(http.StatusOK, run)
}

// clearHandler godoc
// @Summary Delete every document of a collection
// @Description Deletes in chunks in the background. Progress is reported under /imports/{id}.
// @Tags imports
// @Produce json
// @Param collection path string true "Collection" Enums(applications, colleges, payments)
// @Success 202 {object} RunAccepted
// @Failure 400 {object} ErrorResponse
// @Router /collections/{collection} [delete]
func (r *ImportRouter) clearHandler(c echo.Context) error {
	collection, err := collectionParam(c.Param("collection"))
	if err != nil {
		return err
	}
	return r.launch(c, collection, func(opts []batch.Option) (ingest.Job, error) {
		return ingest.NewDeleter(collection, r.store, opts...), nil
	})
}

// exportHandler godoc
// @Summary Export a collection as a JSON backup
// @Tags imports
// @Produce json
// @Param collection path string true "Collection" Enums(applications, colleges, payments)
// @Success 200 {object} reader.Backup
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /exports/{collection} [get]
func (r *ImportRouter) exportHandler(c echo.Context) error {
	collection, err := collectionParam(c.Param("collection"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if _, err := ingest.NewExporter(r.store).Export(c.Request().Context(), collection, &buf); err != nil {
		return apperr.NewUpstream("export "+collection, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", collection+".json"))
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, buf.Bytes())
}
