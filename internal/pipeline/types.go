// Package pipeline orchestrates the intake stages for a single request as a
// state graph: classify, extract, determine, execute. Each stage persists its
// output through the Store before advancing, so a request interrupted
// mid-pipeline retains every completed stage.
package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/triage/internal/actions"
	"github.com/JaimeStill/triage/internal/agents"
	"github.com/JaimeStill/triage/internal/classifier"
)

// State bag keys.
const (
	KeyRequestID      = "request_id"
	KeyContent        = "content"
	KeyKind           = "kind"
	KeyClassification = "classification"
	KeyFeatures       = "features"
	KeyActions        = "actions"
	KeyResults        = "results"
)

// Store persists stage outputs as they are produced. Implementations must
// make each save durable before returning.
type Store interface {
	SaveClassification(ctx context.Context, id uuid.UUID, c classifier.Classification) error
	SaveExtraction(ctx context.Context, id uuid.UUID, features agents.Result) error
	SaveActions(ctx context.Context, id uuid.UUID, actionIDs []string) error
	SaveActionResults(ctx context.Context, id uuid.UUID, results []actions.ExecutionResult) error
	LogActionDetermination(ctx context.Context, intent classifier.Intent, actionIDs []string) error
}

// Result carries the stage outputs of one completed pipeline run.
type Result struct {
	Classification classifier.Classification
	Features       agents.Result
	Actions        []string
	ActionResults  []actions.ExecutionResult
}
