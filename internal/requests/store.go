package requests

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/triage/internal/actions"
	"github.com/JaimeStill/triage/internal/agents"
	"github.com/JaimeStill/triage/internal/classifier"
	"github.com/JaimeStill/triage/pkg/repository"
)

// The repository doubles as the pipeline's stage store and audit sink. Each
// stage save advances the request status alongside its payload in a single
// statement, so status and payload can never disagree.

func (r *repo) SaveClassification(ctx context.Context, id uuid.UUID, c classifier.Classification) error {
	return r.saveStage(ctx, id, "classification", c, StatusClassified)
}

func (r *repo) SaveExtraction(ctx context.Context, id uuid.UUID, features agents.Result) error {
	return r.saveStage(ctx, id, "extraction", features, StatusExtracted)
}

func (r *repo) SaveActions(ctx context.Context, id uuid.UUID, actionIDs []string) error {
	if actionIDs == nil {
		actionIDs = []string{}
	}
	return r.saveStage(ctx, id, "actions", actionIDs, StatusActionsDetermined)
}

func (r *repo) SaveActionResults(ctx context.Context, id uuid.UUID, results []actions.ExecutionResult) error {
	if results == nil {
		results = []actions.ExecutionResult{}
	}
	return r.saveStage(ctx, id, "action_results", results, StatusComplete)
}

func (r *repo) saveStage(ctx context.Context, id uuid.UUID, column string, payload any, status string) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", column, err)
	}

	q := fmt.Sprintf(
		"UPDATE requests SET %s = $1, status = $2, updated_at = NOW() WHERE id = $3",
		column,
	)

	if err := repository.ExecExpectOne(ctx, r.db, q, data, status, id); err != nil {
		return repository.MapError(
			fmt.Errorf("save %s for request %s: %w", column, id, err),
			ErrNotFound, ErrDuplicate,
		)
	}
	return nil
}

func (r *repo) LogClassification(ctx context.Context, sample string, result classifier.Classification) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal classification audit: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO classification_log(content_sample, result) VALUES ($1, $2)",
		sample, data,
	)
	if err != nil {
		return fmt.Errorf("insert classification audit: %w", err)
	}
	return nil
}

func (r *repo) LogActionDetermination(ctx context.Context, intent classifier.Intent, actionIDs []string) error {
	if actionIDs == nil {
		actionIDs = []string{}
	}

	data, err := json.Marshal(actionIDs)
	if err != nil {
		return fmt.Errorf("marshal determination audit: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO action_determination_log(intent, actions) VALUES ($1, $2)",
		intent, data,
	)
	if err != nil {
		return fmt.Errorf("insert determination audit: %w", err)
	}
	return nil
}

func (r *repo) LogActionExecution(ctx context.Context, action string, result actions.ExecutionResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal execution audit: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO action_execution_log(action_name, result) VALUES ($1, $2)",
		action, data,
	)
	if err != nil {
		return fmt.Errorf("insert execution audit: %w", err)
	}
	return nil
}
