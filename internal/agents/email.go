package agents

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/triage/internal/classifier"
	"github.com/JaimeStill/triage/internal/inference"
	"github.com/JaimeStill/triage/pkg/formatting"
)

const emailInstructions = `Analyze the following email and extract:
1. Sender information (name, email)
2. Urgency level (low, medium, high)
3. Main issue or request
4. Tone (polite, angry, neutral, threatening)

Also identify if this is an escalation.

Return your response in JSON format with these keys:
sender, urgency, issue, tone, is_escalation`

type emailAgent struct {
	client inference.Client
	logger *slog.Logger
}

// NewEmail creates the extraction agent for email-kind input. Email content
// needs no pre-validation; it goes straight to the collaborator.
func NewEmail(client inference.Client, logger *slog.Logger) Agent {
	return &emailAgent{
		client: client,
		logger: logger.With("agent", "email"),
	}
}

func (a *emailAgent) Process(ctx context.Context, content []byte, c classifier.Classification) Result {
	text := string(content)

	var sb strings.Builder
	sb.WriteString(emailInstructions)
	sb.WriteString("\n\nEmail Content:\n")
	sb.WriteString(formatting.Sample(text, promptContentCap))

	raw, err := a.client.Generate(ctx, sb.String())
	if err != nil {
		return failure(c, fmt.Sprintf("inference call: %v", err), Result{
			KeyContent: formatting.Sample(text, sampleCap),
		})
	}

	parsed, err := formatting.Parse[Result](raw)
	if err != nil || parsed == nil {
		return failure(c, parseDiagnostic(err), Result{
			KeyContent: formatting.Sample(text, sampleCap),
		})
	}

	parsed[KeyClassification] = c

	a.logger.InfoContext(
		ctx, "email features extracted",
		"urgency", parsed["urgency"],
		"tone", parsed["tone"],
	)
	return parsed
}
