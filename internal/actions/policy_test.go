package actions_test

import (
	"slices"
	"testing"

	"github.com/JaimeStill/triage/internal/actions"
	"github.com/JaimeStill/triage/internal/agents"
	"github.com/JaimeStill/triage/internal/classifier"
)

func classification(intent classifier.Intent) classifier.Classification {
	return classifier.Classification{
		Format:     classifier.FormatEmail,
		Intent:     intent,
		Confidence: 0.9,
	}
}

func TestDetermineComplaint(t *testing.T) {
	tests := []struct {
		name     string
		features agents.Result
		want     []string
	}{
		{
			name:     "angry tone escalates",
			features: agents.Result{"tone": "angry", "urgency": "low"},
			want:     []string{actions.ActionEscalateToCRM},
		},
		{
			name:     "threatening tone escalates",
			features: agents.Result{"tone": "threatening", "urgency": "low"},
			want:     []string{actions.ActionEscalateToCRM},
		},
		{
			name:     "high urgency escalates regardless of tone",
			features: agents.Result{"tone": "polite", "urgency": "high"},
			want:     []string{actions.ActionEscalateToCRM},
		},
		{
			name:     "medium urgency creates ticket",
			features: agents.Result{"tone": "neutral", "urgency": "medium"},
			want:     []string{actions.ActionCreateTicket},
		},
		{
			name:     "low urgency logs and closes",
			features: agents.Result{"tone": "polite", "urgency": "low"},
			want:     []string{actions.ActionLogAndClose},
		},
		{
			name:     "missing urgency logs and closes",
			features: agents.Result{"tone": "neutral"},
			want:     []string{actions.ActionLogAndClose},
		},
		{
			name:     "no features logs and closes",
			features: agents.Result{},
			want:     []string{actions.ActionLogAndClose},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := actions.Determine(tt.features, classification(classifier.IntentComplaint))
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetermineInvoice(t *testing.T) {
	tests := []struct {
		name     string
		features agents.Result
		want     []string
	}{
		{
			name:     "total at threshold processes payment",
			features: agents.Result{"fields": map[string]any{"total": 10000.0}},
			want:     []string{actions.ActionProcessPayment},
		},
		{
			name:     "total just above threshold flags",
			features: agents.Result{"fields": map[string]any{"total": 10000.01}},
			want:     []string{actions.ActionFlagForReview},
		},
		{
			name:     "small total processes payment",
			features: agents.Result{"fields": map[string]any{"total": 499.99}},
			want:     []string{actions.ActionProcessPayment},
		},
		{
			name:     "string total parsed",
			features: agents.Result{"fields": map[string]any{"total": "12500"}},
			want:     []string{actions.ActionFlagForReview},
		},
		{
			name:     "unparseable total reads as zero and processes payment",
			features: agents.Result{"fields": map[string]any{"total": "a lot"}},
			want:     []string{actions.ActionProcessPayment},
		},
		{
			name:     "missing total reads as zero and processes payment",
			features: agents.Result{"fields": map[string]any{}},
			want:     []string{actions.ActionProcessPayment},
		},
		{
			name:     "missing fields processes payment",
			features: agents.Result{},
			want:     []string{actions.ActionProcessPayment},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := actions.Determine(tt.features, classification(classifier.IntentInvoice))
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetermineRegulation(t *testing.T) {
	tests := []struct {
		name     string
		features agents.Result
		want     []string
	}{
		{
			name: "known regulations mapped in order",
			features: agents.Result{
				"regulations_mentioned": []any{"GDPR", "FDA", "HIPAA"},
			},
			want: []string{
				actions.ActionNotifyComplianceGDPR,
				actions.ActionNotifyComplianceFDA,
				actions.ActionLogRegulation,
			},
		},
		{
			name: "unrecognized casing logs",
			features: agents.Result{
				"regulations_mentioned": []any{"gdpr"},
			},
			want: []string{actions.ActionLogRegulation},
		},
		{
			name: "duplicates preserved",
			features: agents.Result{
				"regulations_mentioned": []any{"GDPR", "GDPR"},
			},
			want: []string{
				actions.ActionNotifyComplianceGDPR,
				actions.ActionNotifyComplianceGDPR,
			},
		},
		{
			name:     "empty list logs once",
			features: agents.Result{"regulations_mentioned": []any{}},
			want:     []string{actions.ActionLogRegulation},
		},
		{
			name:     "absent list logs once",
			features: agents.Result{},
			want:     []string{actions.ActionLogRegulation},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := actions.Determine(tt.features, classification(classifier.IntentRegulation))
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetermineOther(t *testing.T) {
	tests := []struct {
		name   string
		intent classifier.Intent
		want   []string
	}{
		{"fraud risk alerts security", classifier.IntentFraudRisk, []string{actions.ActionAlertSecurityTeam}},
		{"rfq has no actions", classifier.IntentRFQ, nil},
		{"unknown intent has no actions", classifier.IntentUnknown, nil},
		{"unrecognized intent has no actions", classifier.Intent("spam"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := actions.Determine(agents.Result{}, classification(tt.intent))
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetermineFailedExtraction(t *testing.T) {
	failed := agents.Result{
		agents.KeyError: "inference call: connection refused",
		"tone":          "angry",
	}

	got := actions.Determine(failed, classification(classifier.IntentComplaint))
	if !slices.Equal(got, []string{actions.ActionLogAndClose}) {
		t.Errorf("failed extraction must use conservative defaults, got %v", got)
	}

	got = actions.Determine(failed, classification(classifier.IntentInvoice))
	if !slices.Equal(got, []string{actions.ActionProcessPayment}) {
		t.Errorf("failed extraction must take the invoice default branch, got %v", got)
	}
}
