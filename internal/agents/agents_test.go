package agents_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/JaimeStill/triage/internal/agents"
	"github.com/JaimeStill/triage/internal/classifier"
)

type fakeClient struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeClient) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(context.Context, []byte) (string, error) {
	return f.text, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var emailClassification = classifier.Classification{
	Format:     classifier.FormatEmail,
	Intent:     classifier.IntentComplaint,
	Confidence: 0.9,
}

func TestEmailAgent(t *testing.T) {
	client := &fakeClient{
		response: `{"sender":"jo@example.com","urgency":"high","issue":"late order","tone":"angry","is_escalation":true}`,
	}
	agent := agents.NewEmail(client, testLogger())

	result := agent.Process(context.Background(), []byte("Dear Support, this is unacceptable."), emailClassification)

	if result.Failed() {
		t.Fatalf("unexpected failure: %s", result.ErrorMessage())
	}
	if result["urgency"] != "high" {
		t.Errorf("urgency: got %v, want high", result["urgency"])
	}
	if result["tone"] != "angry" {
		t.Errorf("tone: got %v, want angry", result["tone"])
	}

	merged, ok := result[agents.KeyClassification].(classifier.Classification)
	if !ok {
		t.Fatal("classification not merged into result")
	}
	if merged != emailClassification {
		t.Errorf("classification: got %+v, want %+v", merged, emailClassification)
	}
}

func TestEmailAgentFailures(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
	}{
		{"inference failure", "", errors.New("connection refused")},
		{"garbled response", "I refuse to answer in JSON.", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{response: tt.response, err: tt.err}
			agent := agents.NewEmail(client, testLogger())

			result := agent.Process(context.Background(), []byte("content"), emailClassification)

			if !result.Failed() {
				t.Fatal("expected failed result")
			}
			if result.ErrorMessage() == "" {
				t.Error("expected error message")
			}
			if _, ok := result[agents.KeyClassification]; !ok {
				t.Error("failed result should preserve classification")
			}
			if _, ok := result[agents.KeyContent]; !ok {
				t.Error("failed result should carry a content sample")
			}
		})
	}
}

func TestRecordAgent(t *testing.T) {
	client := &fakeClient{
		response: `{"valid":true,"anomalies":[],"field_types":{"total":"number"},"required_fields_missing":[]}`,
	}
	agent := agents.NewRecord(client, testLogger())

	content := []byte(`{"invoice_id":"INV-1","total":1200.50}`)
	result := agent.Process(context.Background(), content, emailClassification)

	if result.Failed() {
		t.Fatalf("unexpected failure: %s", result.ErrorMessage())
	}

	data, ok := result[agents.KeyOriginalData].(map[string]any)
	if !ok {
		t.Fatal("original data not merged into result")
	}
	if data["invoice_id"] != "INV-1" {
		t.Errorf("invoice_id: got %v, want INV-1", data["invoice_id"])
	}
	if data["total"] != 1200.50 {
		t.Errorf("total: got %v, want 1200.50", data["total"])
	}
}

func TestRecordAgentInvalidJSON(t *testing.T) {
	client := &fakeClient{}
	agent := agents.NewRecord(client, testLogger())

	result := agent.Process(context.Background(), []byte("not json at all"), emailClassification)

	if !result.Failed() {
		t.Fatal("expected failed result")
	}
	if result.ErrorMessage() != "Invalid JSON" {
		t.Errorf("error: got %q, want %q", result.ErrorMessage(), "Invalid JSON")
	}
	if client.calls != 0 {
		t.Errorf("invalid input must not reach the collaborator, got %d calls", client.calls)
	}
	if _, ok := result[agents.KeyDetails]; !ok {
		t.Error("expected decode details in result")
	}
}

func TestDocumentAgent(t *testing.T) {
	client := &fakeClient{
		response: `{"document_type":"invoice","fields":{"total":15000},"amount_exceeds_10k":true,"regulations_mentioned":["GDPR"]}`,
	}
	extractor := &fakeExtractor{text: "Invoice total: 15000. Subject to GDPR."}
	agent := agents.NewDocument(client, extractor, testLogger())

	result := agent.Process(context.Background(), []byte("%PDF-..."), emailClassification)

	if result.Failed() {
		t.Fatalf("unexpected failure: %s", result.ErrorMessage())
	}
	if result["document_type"] != "invoice" {
		t.Errorf("document_type: got %v, want invoice", result["document_type"])
	}

	sample, ok := result[agents.KeyTextSample].(string)
	if !ok {
		t.Fatal("text sample not merged into result")
	}
	if sample != extractor.text {
		t.Errorf("text sample: got %q, want %q", sample, extractor.text)
	}
}

func TestDocumentAgentExtractionFailure(t *testing.T) {
	client := &fakeClient{}
	extractor := &fakeExtractor{err: errors.New("no readable text in document")}
	agent := agents.NewDocument(client, extractor, testLogger())

	result := agent.Process(context.Background(), []byte{0x00, 0x01}, emailClassification)

	if !result.Failed() {
		t.Fatal("expected failed result")
	}
	if client.calls != 0 {
		t.Errorf("extraction failure must not reach the collaborator, got %d calls", client.calls)
	}
}

func TestDocumentAgentTextSampleCapped(t *testing.T) {
	client := &fakeClient{
		response: `{"document_type":"policy","fields":{},"amount_exceeds_10k":false,"regulations_mentioned":[]}`,
	}
	extractor := &fakeExtractor{text: strings.Repeat("a", 2000)}
	agent := agents.NewDocument(client, extractor, testLogger())

	result := agent.Process(context.Background(), []byte("doc"), emailClassification)

	sample, _ := result[agents.KeyTextSample].(string)
	if len(sample) != 500 {
		t.Errorf("text sample length: got %d, want 500", len(sample))
	}
}
