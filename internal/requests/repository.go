package requests

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/triage/internal/actions"
	"github.com/JaimeStill/triage/internal/agents"
	"github.com/JaimeStill/triage/internal/classifier"
	"github.com/JaimeStill/triage/internal/extract"
	"github.com/JaimeStill/triage/internal/inference"
	"github.com/JaimeStill/triage/internal/pipeline"
	"github.com/JaimeStill/triage/pkg/pagination"
	"github.com/JaimeStill/triage/pkg/repository"
	"github.com/JaimeStill/triage/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	rt         *pipeline.Runtime
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a request repository implementing the System interface.
// It internally constructs the pipeline runtime from the provided
// dependencies, wiring itself in as the stage store and audit sink.
func New(
	db *sql.DB,
	client inference.Client,
	extractor extract.TextExtractor,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	r := &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "requests"),
		pagination: pagination,
	}

	pipelineLogger := logger.With("pipeline", "intake")
	r.rt = &pipeline.Runtime{
		Classifier: classifier.New(client, r, pipelineLogger),
		Email:      agents.NewEmail(client, pipelineLogger),
		Record:     agents.NewRecord(client, pipelineLogger),
		Document:   agents.NewDocument(client, extractor, pipelineLogger),
		Executor:   actions.NewExecutor(r, pipelineLogger),
		Store:      r,
		Logger:     pipelineLogger,
	}

	return r
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
) (*pagination.PageResult[Summary], error) {
	page.Normalize(r.pagination)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM requests").Scan(&total); err != nil {
		return nil, fmt.Errorf("count requests: %w", err)
	}

	q := `
		SELECT id, input_kind, status, created_at
		FROM requests
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	items, err := repository.QueryMany(ctx, r.db, q, []any{page.PageSize, page.Offset()}, scanSummary)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Request, error) {
	q := `
		SELECT id, input_kind, raw_content, storage_key, status,
		       classification, extraction, actions, action_results,
		       created_at, updated_at
		FROM requests
		WHERE id = $1`

	req, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanRequest)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &req, nil
}

// Process registers the submission and drives it through the pipeline. Stage
// outputs are persisted by the pipeline as they complete, so a pipeline error
// returned here still leaves every finished stage durable on the record.
func (r *repo) Process(ctx context.Context, cmd ProcessCommand) (*Request, error) {
	if _, err := classifier.ParseKind(string(cmd.InputKind)); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKind, cmd.InputKind)
	}

	if len(bytes.TrimSpace(cmd.Content)) == 0 {
		return nil, ErrEmptyContent
	}

	id := uuid.New()

	storageKey, err := r.archiveContent(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	rawContent := ""
	if storageKey == nil {
		rawContent = string(cmd.Content)
	}

	q := `
		INSERT INTO requests(id, input_kind, raw_content, storage_key, status)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		_, err := tx.ExecContext(ctx, q, id, cmd.InputKind, rawContent, storageKey, StatusReceived)
		return struct{}{}, err
	})

	if err != nil {
		r.compensateArchive(ctx, storageKey)
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if _, err := pipeline.Execute(ctx, r.rt, id, cmd.Content, cmd.InputKind); err != nil {
		return nil, fmt.Errorf("process request %s: %w", id, err)
	}

	req, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("request processed",
		"id", req.ID,
		"input_kind", req.InputKind,
		"status", req.Status,
		"actions", req.Actions,
	)
	return req, nil
}

// ProcessBatch runs each command through the pipeline with bounded
// concurrency. Items fail independently; one item's error never aborts the
// others, and the result slice preserves submission order.
func (r *repo) ProcessBatch(ctx context.Context, cmds []ProcessCommand) []BatchResult {
	results := make([]BatchResult, len(cmds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWorkerCount(len(cmds)))

	for i, cmd := range cmds {
		g.Go(func() error {
			result := BatchResult{Filename: cmd.Filename}

			req, err := r.Process(gctx, cmd)
			if err != nil {
				result.Error = err.Error()
			} else {
				result.Request = req
			}

			results[i] = result
			return nil
		})
	}

	g.Wait()
	return results
}

func (r *repo) archiveContent(ctx context.Context, id uuid.UUID, cmd ProcessCommand) (*string, error) {
	if cmd.Filename == "" {
		return nil, nil
	}

	key := buildStorageKey(id, sanitizeFilename(cmd.Filename))
	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Content), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("archive intake blob: %w", err)
	}
	return &key, nil
}

func (r *repo) compensateArchive(ctx context.Context, key *string) {
	if key == nil {
		return
	}
	if err := r.storage.Delete(ctx, *key); err != nil {
		r.logger.Warn("compensating blob delete failed", "key", *key, "error", err)
	}
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("requests/%s/%s", id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "content"
	}
	return url.PathEscape(name)
}

func batchWorkerCount(itemCount int) int {
	return max(min(runtime.NumCPU(), itemCount), 1)
}
