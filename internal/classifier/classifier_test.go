package classifier_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/JaimeStill/triage/internal/classifier"
)

type fakeClient struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeClient) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

type fakeAudit struct {
	samples []string
	results []classifier.Classification
	err     error
}

func (f *fakeAudit) LogClassification(_ context.Context, sample string, result classifier.Classification) error {
	f.samples = append(f.samples, sample)
	f.results = append(f.results, result)
	return f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		response     string
		clientErr    error
		declared     classifier.Kind
		wantFormat   string
		wantIntent   classifier.Intent
		wantFallback bool
	}{
		{
			name:       "clean response",
			response:   `{"format":"email","intent":"complaint","confidence":0.95}`,
			declared:   classifier.KindEmail,
			wantFormat: classifier.FormatEmail,
			wantIntent: classifier.IntentComplaint,
		},
		{
			name:       "response wrapped in prose",
			response:   "Based on the content:\n{\"format\":\"record\",\"intent\":\"invoice\",\"confidence\":\"0.8\"}\nHope that helps.",
			declared:   classifier.KindRecord,
			wantFormat: classifier.FormatRecord,
			wantIntent: classifier.IntentInvoice,
		},
		{
			name:         "unparseable response falls back to declared kind",
			response:     "I am unable to comply with this request.",
			declared:     classifier.KindDocument,
			wantFormat:   classifier.FormatDocument,
			wantIntent:   classifier.IntentUnknown,
			wantFallback: true,
		},
		{
			name:         "missing intent falls back",
			response:     `{"format":"email","confidence":0.9}`,
			declared:     classifier.KindEmail,
			wantFormat:   classifier.FormatEmail,
			wantIntent:   classifier.IntentUnknown,
			wantFallback: true,
		},
		{
			name:         "inference failure falls back",
			clientErr:    errors.New("connection refused"),
			declared:     classifier.KindEmail,
			wantFormat:   classifier.FormatEmail,
			wantIntent:   classifier.IntentUnknown,
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{response: tt.response, err: tt.clientErr}
			audit := &fakeAudit{}
			c := classifier.New(client, audit, testLogger())

			result, err := c.Classify(context.Background(), []byte("some content"), tt.declared)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.Format != tt.wantFormat {
				t.Errorf("format: got %q, want %q", result.Format, tt.wantFormat)
			}
			if result.Intent != tt.wantIntent {
				t.Errorf("intent: got %q, want %q", result.Intent, tt.wantIntent)
			}
			if result.Fallback() != tt.wantFallback {
				t.Errorf("fallback: got %v, want %v", result.Fallback(), tt.wantFallback)
			}

			if len(audit.results) != 1 {
				t.Fatalf("expected 1 audit entry, got %d", len(audit.results))
			}
			if audit.results[0] != result {
				t.Errorf("audit entry does not match returned classification")
			}
		})
	}
}

func TestClassifyAuditFailure(t *testing.T) {
	client := &fakeClient{response: `{"format":"email","intent":"complaint","confidence":0.9}`}
	audit := &fakeAudit{err: errors.New("disk full")}
	c := classifier.New(client, audit, testLogger())

	_, err := c.Classify(context.Background(), []byte("content"), classifier.KindEmail)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, classifier.ErrAuditWrite) {
		t.Errorf("expected ErrAuditWrite, got %v", err)
	}
}

func TestClassifyTruncatesPromptContent(t *testing.T) {
	client := &fakeClient{response: `{"format":"email","intent":"rfq","confidence":1}`}
	audit := &fakeAudit{}
	c := classifier.New(client, audit, testLogger())

	long := strings.Repeat("x", 8000)
	if _, err := c.Classify(context.Background(), []byte(long), classifier.KindEmail); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(client.prompts) != 1 {
		t.Fatalf("expected 1 inference call, got %d", len(client.prompts))
	}
	if strings.Contains(client.prompts[0], strings.Repeat("x", 5001)) {
		t.Error("prompt contains more than 5000 content characters")
	}
	if !strings.Contains(client.prompts[0], strings.Repeat("x", 5000)) {
		t.Error("prompt does not contain the capped content")
	}

	if len(audit.samples) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(audit.samples))
	}
	if len(audit.samples[0]) != 500 {
		t.Errorf("audit sample length: got %d, want 500", len(audit.samples[0]))
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    classifier.Kind
		wantErr bool
	}{
		{"email", "email", classifier.KindEmail, false},
		{"record", "record", classifier.KindRecord, false},
		{"document", "document", classifier.KindDocument, false},
		{"unknown value", "spreadsheet", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := classifier.ParseKind(tt.in)
			if tt.wantErr {
				if !errors.Is(err, classifier.ErrInvalidKind) {
					t.Errorf("expected ErrInvalidKind, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
