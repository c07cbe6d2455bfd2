package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/triage/internal/classifier"
	"github.com/JaimeStill/triage/internal/inference"
	"github.com/JaimeStill/triage/pkg/formatting"
)

// promptContentCap bounds how much content an extraction prompt embeds.
const promptContentCap = 5000

const recordInstructions = `Analyze the following JSON data and:
1. Validate required fields are present
2. Check for data type consistency
3. Identify any anomalies or potential issues

Return your response in JSON format with these keys:
valid (boolean), anomalies (list), field_types (dict), required_fields_missing (list)`

type recordAgent struct {
	client inference.Client
	logger *slog.Logger
}

// NewRecord creates the extraction agent for structured-record input.
// The record is decoded locally before the collaborator is involved: input
// that is not valid JSON short-circuits without an inference call. Successful
// results always merge the original decoded data back in so downstream
// consumers keep raw access to the record.
func NewRecord(client inference.Client, logger *slog.Logger) Agent {
	return &recordAgent{
		client: client,
		logger: logger.With("agent", "record"),
	}
}

func (a *recordAgent) Process(ctx context.Context, content []byte, c classifier.Classification) Result {
	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		return failure(c, "Invalid JSON", Result{
			KeyDetails: err.Error(),
		})
	}

	pretty, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return failure(c, fmt.Sprintf("re-encode record: %v", err), nil)
	}

	var sb strings.Builder
	sb.WriteString(recordInstructions)
	sb.WriteString("\n\nJSON Content:\n")
	sb.WriteString(formatting.Sample(string(pretty), promptContentCap))

	raw, err := a.client.Generate(ctx, sb.String())
	if err != nil {
		return failure(c, fmt.Sprintf("inference call: %v", err), Result{
			KeyContent: data,
		})
	}

	parsed, err := formatting.Parse[Result](raw)
	if err != nil || parsed == nil {
		return failure(c, parseDiagnostic(err), Result{
			KeyContent: data,
		})
	}

	parsed[KeyOriginalData] = data
	parsed[KeyClassification] = c

	a.logger.InfoContext(
		ctx, "record features extracted",
		"valid", parsed["valid"],
	)
	return parsed
}
