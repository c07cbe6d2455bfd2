package formatting_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/triage/pkg/formatting"
)

type payload struct {
	Format string  `json:"format"`
	Score  float64 `json:"score"`
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    payload
		wantErr bool
	}{
		{
			name:    "direct json",
			content: `{"format":"email","score":0.9}`,
			want:    payload{Format: "email", Score: 0.9},
		},
		{
			name:    "leading prose",
			content: "Here is the result you asked for:\n{\"format\":\"record\",\"score\":0.8}",
			want:    payload{Format: "record", Score: 0.8},
		},
		{
			name:    "trailing prose",
			content: `{"format":"document","score":0.7} Let me know if you need anything else.`,
			want:    payload{Format: "document", Score: 0.7},
		},
		{
			name:    "prose both sides",
			content: "Sure!\n```json\n{\"format\":\"email\",\"score\":1}\n```\nDone.",
			want:    payload{Format: "email", Score: 1},
		},
		{
			name:    "no json at all",
			content: "I could not determine the format.",
			wantErr: true,
		},
		{
			name:    "braces but invalid json",
			content: "{format: email}",
			wantErr: true,
		},
		{
			name:    "empty content",
			content: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.Parse[payload](tt.content)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, formatting.ErrParseFailed) {
					t.Errorf("expected ErrParseFailed, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSample(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than cap", "abc", 10, "abc"},
		{"exactly cap", "abcde", 5, "abcde"},
		{"longer than cap", "abcdef", 3, "abc"},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.Sample(tt.in, tt.max); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
