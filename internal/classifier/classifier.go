package classifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/triage/internal/inference"
	"github.com/JaimeStill/triage/pkg/formatting"
)

// sampleCap bounds the content sample recorded in the audit log.
const sampleCap = 500

// AuditLog records one row per classification attempt. Entries are
// observability-only and never read back by the pipeline.
type AuditLog interface {
	LogClassification(ctx context.Context, sample string, result Classification) error
}

// Classifier invokes the inference collaborator to detect content format and
// business intent.
type Classifier struct {
	client inference.Client
	audit  AuditLog
	logger *slog.Logger
}

// New creates a Classifier with the given collaborator client and audit sink.
func New(client inference.Client, audit AuditLog, logger *slog.Logger) *Classifier {
	return &Classifier{
		client: client,
		audit:  audit,
		logger: logger.With("system", "classifier"),
	}
}

// Classify invokes the collaborator exactly once (no retry) and recovers a
// Classification from its response. Inference and parse failures never
// surface as errors: they produce a fallback classification carrying the
// declared kind as format, unknown intent, and the diagnostic. Every call
// writes one audit row, fallback path included, so garbled collaborator
// output stays inspectable. The only returned error is an audit store
// failure, which the orchestrator treats as a hard failure.
func (c *Classifier) Classify(ctx context.Context, content []byte, declared Kind) (Classification, error) {
	result := c.classify(ctx, string(content), declared)

	if err := c.audit.LogClassification(ctx, formatting.Sample(string(content), sampleCap), result); err != nil {
		return Classification{}, fmt.Errorf("%w: %w", ErrAuditWrite, err)
	}

	c.logger.InfoContext(
		ctx, "content classified",
		"format", result.Format,
		"intent", result.Intent,
		"fallback", result.Fallback(),
	)
	return result, nil
}

func (c *Classifier) classify(ctx context.Context, content string, declared Kind) Classification {
	raw, err := c.client.Generate(ctx, BuildPrompt(content))
	if err != nil {
		return fallback(declared, fmt.Errorf("inference call: %w", err))
	}

	parsed, err := formatting.Parse[Classification](raw)
	if err != nil {
		return fallback(declared, err)
	}

	if parsed.Format == "" || parsed.Intent == "" {
		return fallback(declared, fmt.Errorf("response missing format or intent"))
	}

	return parsed
}

func fallback(declared Kind, err error) Classification {
	return Classification{
		Format:     FallbackFormat(declared),
		Intent:     IntentUnknown,
		Confidence: 0.5,
		Error:      err.Error(),
	}
}
