// Package requests implements the intake request domain. It provides types,
// data access, and the processing entry points that drive a submitted piece
// of content through the classification pipeline, persisting each stage as it
// completes.
package requests

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/triage/internal/actions"
	"github.com/JaimeStill/triage/internal/agents"
	"github.com/JaimeStill/triage/internal/classifier"
)

// Request statuses, advanced as pipeline stages complete.
const (
	StatusReceived          = "received"
	StatusClassified        = "classified"
	StatusExtracted         = "extracted"
	StatusActionsDetermined = "actions_determined"
	StatusComplete          = "complete"
)

// Request represents an intake submission and the accumulated outputs of its
// pipeline run. Stage fields are nil until the corresponding stage completes,
// so a request read mid-pipeline shows exactly the stages that finished.
type Request struct {
	ID             uuid.UUID                  `json:"id"`
	InputKind      classifier.Kind            `json:"input_kind"`
	RawContent     string                     `json:"raw_content,omitempty"`
	StorageKey     *string                    `json:"storage_key,omitempty"`
	Status         string                     `json:"status"`
	Classification *classifier.Classification `json:"classification,omitempty"`
	Extraction     agents.Result              `json:"extraction,omitempty"`
	Actions        []string                   `json:"actions,omitempty"`
	ActionResults  []actions.ExecutionResult  `json:"action_results,omitempty"`
	CreatedAt      time.Time                  `json:"created_at"`
	UpdatedAt      time.Time                  `json:"updated_at"`
}

// Summary is the listing projection of a request.
type Summary struct {
	ID        uuid.UUID       `json:"id"`
	InputKind classifier.Kind `json:"input_kind"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// ProcessCommand carries one piece of content to run through the pipeline.
// Filename and ContentType are set for file submissions; when Filename is
// present the raw bytes are archived to blob storage instead of the database.
type ProcessCommand struct {
	InputKind   classifier.Kind
	Content     []byte
	Filename    string
	ContentType string
}

// BatchResult reports the outcome of a single item within a batch submission.
// On success, Request is populated and Error is empty.
type BatchResult struct {
	Request  *Request `json:"request,omitempty"`
	Filename string   `json:"filename,omitempty"`
	Error    string   `json:"error,omitempty"`
}
