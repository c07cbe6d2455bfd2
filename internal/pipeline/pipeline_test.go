package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/triage/internal/actions"
	"github.com/JaimeStill/triage/internal/agents"
	"github.com/JaimeStill/triage/internal/classifier"
	"github.com/JaimeStill/triage/internal/pipeline"
)

type fakeClient struct {
	response string
	err      error
}

func (f *fakeClient) Generate(context.Context, string) (string, error) {
	return f.response, f.err
}

// fakeStore records every persisted stage and doubles as both audit sinks.
type fakeStore struct {
	stages          []string
	classifications []classifier.Classification
	extractions     []agents.Result
	actionLists     [][]string
	resultLists     [][]actions.ExecutionResult
	failOn          string
}

func (f *fakeStore) fail(stage string) error {
	if f.failOn == stage {
		return errors.New("store unavailable")
	}
	return nil
}

func (f *fakeStore) SaveClassification(_ context.Context, _ uuid.UUID, c classifier.Classification) error {
	if err := f.fail("classification"); err != nil {
		return err
	}
	f.stages = append(f.stages, "classification")
	f.classifications = append(f.classifications, c)
	return nil
}

func (f *fakeStore) SaveExtraction(_ context.Context, _ uuid.UUID, features agents.Result) error {
	if err := f.fail("extraction"); err != nil {
		return err
	}
	f.stages = append(f.stages, "extraction")
	f.extractions = append(f.extractions, features)
	return nil
}

func (f *fakeStore) SaveActions(_ context.Context, _ uuid.UUID, actionIDs []string) error {
	if err := f.fail("actions"); err != nil {
		return err
	}
	f.stages = append(f.stages, "actions")
	f.actionLists = append(f.actionLists, actionIDs)
	return nil
}

func (f *fakeStore) SaveActionResults(_ context.Context, _ uuid.UUID, results []actions.ExecutionResult) error {
	if err := f.fail("action_results"); err != nil {
		return err
	}
	f.stages = append(f.stages, "action_results")
	f.resultLists = append(f.resultLists, results)
	return nil
}

func (f *fakeStore) LogActionDetermination(context.Context, classifier.Intent, []string) error {
	return nil
}

func (f *fakeStore) LogClassification(context.Context, string, classifier.Classification) error {
	return nil
}

func (f *fakeStore) LogActionExecution(context.Context, string, actions.ExecutionResult) error {
	return nil
}

// fixedAgent ignores its input and returns a prepared result.
type fixedAgent struct {
	result agents.Result
}

func (f *fixedAgent) Process(context.Context, []byte, classifier.Classification) agents.Result {
	return f.result
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRuntime(client *fakeClient, store *fakeStore, email, record, document agents.Agent) *pipeline.Runtime {
	logger := testLogger()
	return &pipeline.Runtime{
		Classifier: classifier.New(client, store, logger),
		Email:      email,
		Record:     record,
		Document:   document,
		Executor:   actions.NewExecutor(store, logger),
		Store:      store,
		Logger:     logger,
	}
}

func TestExecuteStagesInOrder(t *testing.T) {
	client := &fakeClient{
		response: `{"format":"email","intent":"complaint","confidence":0.9}`,
	}
	store := &fakeStore{}
	email := &fixedAgent{result: agents.Result{"tone": "angry", "urgency": "low"}}

	rt := newRuntime(client, store, email, nil, nil)

	result, err := pipeline.Execute(context.Background(), rt, uuid.New(), []byte("Dear Support"), classifier.KindEmail)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStages := []string{"classification", "extraction", "actions", "action_results"}
	if !slices.Equal(store.stages, wantStages) {
		t.Errorf("stage order: got %v, want %v", store.stages, wantStages)
	}

	if result.Classification.Intent != classifier.IntentComplaint {
		t.Errorf("intent: got %q, want complaint", result.Classification.Intent)
	}
	if !slices.Equal(result.Actions, []string{actions.ActionEscalateToCRM}) {
		t.Errorf("actions: got %v, want [escalate_to_crm]", result.Actions)
	}
	if len(result.ActionResults) != 1 {
		t.Fatalf("got %d action results, want 1", len(result.ActionResults))
	}
	if result.ActionResults[0].Status != actions.StatusSuccess {
		t.Errorf("status: got %q, want success", result.ActionResults[0].Status)
	}
}

func TestExecuteFailedExtractionStillCompletes(t *testing.T) {
	client := &fakeClient{
		response: `{"format":"record","intent":"invoice","confidence":0.8}`,
	}
	store := &fakeStore{}
	record := &fixedAgent{result: agents.Result{
		agents.KeyError: "Invalid JSON",
	}}

	rt := newRuntime(client, store, nil, record, nil)

	result, err := pipeline.Execute(context.Background(), rt, uuid.New(), []byte("broken"), classifier.KindRecord)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Features.Failed() {
		t.Error("expected failed features to persist through the pipeline")
	}
	if !slices.Equal(result.Actions, []string{actions.ActionProcessPayment}) {
		t.Errorf("actions: got %v, want [process_payment]", result.Actions)
	}
}

func TestExecuteUnknownKind(t *testing.T) {
	client := &fakeClient{
		response: `{"format":"email","intent":"rfq","confidence":1}`,
	}
	store := &fakeStore{}
	rt := newRuntime(client, store, nil, nil, nil)

	_, err := pipeline.Execute(context.Background(), rt, uuid.New(), []byte("content"), classifier.Kind("telegram"))
	if !errors.Is(err, pipeline.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestExecuteStoreFailureKeepsPriorStages(t *testing.T) {
	client := &fakeClient{
		response: `{"format":"email","intent":"complaint","confidence":0.9}`,
	}
	store := &fakeStore{failOn: "actions"}
	email := &fixedAgent{result: agents.Result{"tone": "polite", "urgency": "low"}}

	rt := newRuntime(client, store, email, nil, nil)

	_, err := pipeline.Execute(context.Background(), rt, uuid.New(), []byte("content"), classifier.KindEmail)
	if !errors.Is(err, pipeline.ErrDetermineFailed) {
		t.Fatalf("expected ErrDetermineFailed, got %v", err)
	}

	wantStages := []string{"classification", "extraction"}
	if !slices.Equal(store.stages, wantStages) {
		t.Errorf("completed stages: got %v, want %v", store.stages, wantStages)
	}
	if len(store.resultLists) != 0 {
		t.Error("action results must not persist after a determination failure")
	}
}
