package classifier

import (
	"strings"

	"github.com/JaimeStill/triage/pkg/formatting"
)

// contentCap bounds how much content is embedded in the classification
// prompt. Longer content is silently truncated for classification only;
// extraction agents see the full input.
const contentCap = 5000

const fewShotExamples = `Examples of format and intent classification:

1. Input: "Dear Support, I'm unhappy with your service. My order #12345 was delayed by 2 weeks."
   Format: email
   Intent: complaint

2. Input: {"invoice_id": "INV-2023-456", "total": 12500.00, "due_date": "2023-12-31"}
   Format: record
   Intent: invoice

3. Input: "This document outlines the new GDPR compliance requirements..."
   Format: document
   Intent: regulation

4. Input: "We would like to request a quote for 100 units of product X."
   Format: email
   Intent: rfq

5. Input: {"transaction_id": "TX-987", "amount": 15000, "flagged": true}
   Format: record
   Intent: fraud_risk`

const classifyInstructions = `Analyze the following input and determine:
1. The format (email, record, document)
2. The business intent (rfq, complaint, invoice, regulation, fraud_risk)

Provide your response in JSON format with keys: format, intent, confidence`

// BuildPrompt composes the classification prompt: fixed few-shot examples,
// the capped content prefix, and the response contract.
func BuildPrompt(content string) string {
	var sb strings.Builder
	sb.WriteString(fewShotExamples)
	sb.WriteString("\n\n")
	sb.WriteString(classifyInstructions)
	sb.WriteString("\n\nInput:\n")
	sb.WriteString(formatting.Sample(content, contentCap))
	return sb.String()
}
