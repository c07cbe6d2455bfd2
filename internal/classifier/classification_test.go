package classifier_test

import (
	"encoding/json"
	"testing"

	"github.com/JaimeStill/triage/internal/classifier"
)

func TestConfidenceUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want classifier.Confidence
	}{
		{"number", `{"confidence":0.85}`, 0.85},
		{"integer", `{"confidence":1}`, 1},
		{"numeric string", `{"confidence":"0.7"}`, 0.7},
		{"padded numeric string", `{"confidence":" 0.5 "}`, 0.5},
		{"non-numeric string", `{"confidence":"high"}`, 0},
		{"null", `{"confidence":null}`, 0},
		{"object", `{"confidence":{"value":0.9}}`, 0},
		{"absent", `{}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c classifier.Classification
			if err := json.Unmarshal([]byte(tt.in), &c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Confidence != tt.want {
				t.Errorf("got %v, want %v", c.Confidence, tt.want)
			}
		})
	}
}

func TestFallbackFormat(t *testing.T) {
	tests := []struct {
		name string
		kind classifier.Kind
		want string
	}{
		{"email", classifier.KindEmail, classifier.FormatEmail},
		{"record", classifier.KindRecord, classifier.FormatRecord},
		{"document", classifier.KindDocument, classifier.FormatDocument},
		{"unrecognized", classifier.Kind("other"), classifier.FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.FallbackFormat(tt.kind); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
