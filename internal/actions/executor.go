package actions

import (
	"context"
	"fmt"
	"log/slog"
)

// Execution statuses.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// ExecutionResult records the outcome of one action execution.
type ExecutionResult struct {
	Action  string `json:"action"`
	Status  string `json:"status"`
	Details string `json:"details"`
}

// AuditLog receives one durable entry per executed action.
type AuditLog interface {
	LogActionExecution(ctx context.Context, action string, result ExecutionResult) error
}

// Executor runs determined actions against their target systems. External
// side effects are simulated; the audit trail is real and every execution
// must land in it before the result is reported.
type Executor struct {
	audit  AuditLog
	logger *slog.Logger
}

func NewExecutor(audit AuditLog, logger *slog.Logger) *Executor {
	return &Executor{
		audit:  audit,
		logger: logger.With("system", "actions"),
	}
}

// Execute runs each action in order, duplicates included, producing one
// result per action. A failed audit write aborts execution immediately.
func (e *Executor) Execute(ctx context.Context, ids []string) ([]ExecutionResult, error) {
	results := make([]ExecutionResult, 0, len(ids))

	for _, id := range ids {
		result := ExecutionResult{
			Action:  id,
			Status:  StatusSuccess,
			Details: "simulated execution",
		}

		if err := e.audit.LogActionExecution(ctx, id, result); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrAuditWrite, id, err)
		}

		e.logger.InfoContext(ctx, "action executed", "action", id, "status", result.Status)
		results = append(results, result)
	}

	return results, nil
}
