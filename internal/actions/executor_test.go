package actions_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/JaimeStill/triage/internal/actions"
)

type fakeAudit struct {
	logged []string
	err    error
}

func (f *fakeAudit) LogActionExecution(_ context.Context, action string, _ actions.ExecutionResult) error {
	f.logged = append(f.logged, action)
	return f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExecute(t *testing.T) {
	audit := &fakeAudit{}
	e := actions.NewExecutor(audit, testLogger())

	ids := []string{
		actions.ActionNotifyComplianceGDPR,
		actions.ActionLogRegulation,
		actions.ActionLogRegulation,
	}

	results, err := e.Execute(context.Background(), ids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != len(ids) {
		t.Fatalf("got %d results, want %d", len(results), len(ids))
	}
	for i, result := range results {
		if result.Action != ids[i] {
			t.Errorf("result %d: got action %q, want %q", i, result.Action, ids[i])
		}
		if result.Status != actions.StatusSuccess {
			t.Errorf("result %d: got status %q, want %q", i, result.Status, actions.StatusSuccess)
		}
	}

	if len(audit.logged) != len(ids) {
		t.Fatalf("got %d audit entries, want %d", len(audit.logged), len(ids))
	}
	for i, action := range audit.logged {
		if action != ids[i] {
			t.Errorf("audit %d: got %q, want %q", i, action, ids[i])
		}
	}
}

func TestExecuteEmpty(t *testing.T) {
	audit := &fakeAudit{}
	e := actions.NewExecutor(audit, testLogger())

	results, err := e.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
	if len(audit.logged) != 0 {
		t.Errorf("got %d audit entries, want 0", len(audit.logged))
	}
}

func TestExecuteAuditFailure(t *testing.T) {
	audit := &fakeAudit{err: errors.New("disk full")}
	e := actions.NewExecutor(audit, testLogger())

	_, err := e.Execute(context.Background(), []string{actions.ActionLogAndClose})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, actions.ErrAuditWrite) {
		t.Errorf("expected ErrAuditWrite, got %v", err)
	}
}
