// Package actions determines and executes the downstream actions a
// classified, extracted request warrants. Determination is a pure function of
// the extracted features and the classification; execution is simulated
// against named external systems with a durable audit trail per action.
package actions

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/JaimeStill/triage/internal/agents"
	"github.com/JaimeStill/triage/internal/classifier"
)

// Action identifiers emitted by Determine.
const (
	ActionEscalateToCRM        = "escalate_to_crm"
	ActionCreateTicket         = "create_ticket"
	ActionLogAndClose          = "log_and_close"
	ActionFlagForReview        = "flag_for_review"
	ActionProcessPayment       = "process_payment"
	ActionAlertSecurityTeam    = "alert_security_team"
	ActionNotifyComplianceGDPR = "notify_compliance_gdpr"
	ActionNotifyComplianceFDA  = "notify_compliance_fda"
	ActionLogRegulation        = "log_regulation"
)

// paymentThreshold is the invoice total above which payment is withheld for
// manual review.
const paymentThreshold = 10000

type rule func(features agents.Result) []string

var intentRules = map[classifier.Intent]rule{
	classifier.IntentComplaint:  complaintActions,
	classifier.IntentInvoice:    invoiceActions,
	classifier.IntentFraudRisk:  fraudRiskActions,
	classifier.IntentRegulation: regulationRule,
}

var regulationActions = map[string]string{
	"GDPR": ActionNotifyComplianceGDPR,
	"FDA":  ActionNotifyComplianceFDA,
}

// Determine maps an intent and its extracted features to an ordered action
// list. A failed extraction contributes no features, so each intent falls
// through to its default branch. Intents with no rule produce no actions.
func Determine(features agents.Result, c classifier.Classification) []string {
	if features.Failed() {
		features = agents.Result{}
	}

	r, ok := intentRules[c.Intent]
	if !ok {
		return nil
	}
	return r(features)
}

func complaintActions(features agents.Result) []string {
	tone, _ := features["tone"].(string)
	urgency, _ := features["urgency"].(string)

	switch {
	case tone == "angry" || tone == "threatening" || urgency == "high":
		return []string{ActionEscalateToCRM}
	case urgency == "medium":
		return []string{ActionCreateTicket}
	default:
		return []string{ActionLogAndClose}
	}
}

func invoiceActions(features agents.Result) []string {
	fields, _ := features["fields"].(map[string]any)

	// An absent or unreadable total reads as zero and takes the else branch.
	total, _ := numericField(fields, "total")

	if total > paymentThreshold {
		return []string{ActionFlagForReview}
	}
	return []string{ActionProcessPayment}
}

func fraudRiskActions(agents.Result) []string {
	return []string{ActionAlertSecurityTeam}
}

func regulationRule(features agents.Result) []string {
	mentioned, _ := features["regulations_mentioned"].([]any)
	if len(mentioned) == 0 {
		return []string{ActionLogRegulation}
	}

	out := make([]string, 0, len(mentioned))
	for _, m := range mentioned {
		name, _ := m.(string)
		if action, ok := regulationActions[name]; ok {
			out = append(out, action)
		} else {
			out = append(out, ActionLogRegulation)
		}
	}
	return out
}

// numericField reads a numeric value out of a decoded feature map, accepting
// the shapes JSON decoding can produce for a number.
func numericField(fields map[string]any, key string) (float64, bool) {
	raw, ok := fields[key]
	if !ok {
		return 0, false
	}

	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
