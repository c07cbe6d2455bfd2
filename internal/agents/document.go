package agents

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/triage/internal/classifier"
	"github.com/JaimeStill/triage/internal/extract"
	"github.com/JaimeStill/triage/internal/inference"
	"github.com/JaimeStill/triage/pkg/formatting"
)

const documentInstructions = `Analyze the following document text and:
1. Extract key fields (like invoice number, total amount, dates for invoices)
2. Flag if total amount > 10,000
3. Identify if document mentions any regulations (GDPR, FDA, etc.)
4. Determine document type (invoice, policy, contract, etc.)

Return your response in JSON format with these keys:
document_type, fields (dict), amount_exceeds_10k (boolean), regulations_mentioned (list)`

type documentAgent struct {
	client    inference.Client
	extractor extract.TextExtractor
	logger    *slog.Logger
}

// NewDocument creates the extraction agent for document-kind input. Text is
// recovered through the text-extraction collaborator first; an extraction
// failure short-circuits without an inference call.
func NewDocument(client inference.Client, extractor extract.TextExtractor, logger *slog.Logger) Agent {
	return &documentAgent{
		client:    client,
		extractor: extractor,
		logger:    logger.With("agent", "document"),
	}
}

func (a *documentAgent) Process(ctx context.Context, content []byte, c classifier.Classification) Result {
	text, err := a.extractor.ExtractText(ctx, content)
	if err != nil {
		return failure(c, fmt.Sprintf("extract text: %v", err), nil)
	}

	var sb strings.Builder
	sb.WriteString(documentInstructions)
	sb.WriteString("\n\nDocument Text:\n")
	sb.WriteString(formatting.Sample(text, promptContentCap))

	raw, err := a.client.Generate(ctx, sb.String())
	if err != nil {
		return failure(c, fmt.Sprintf("inference call: %v", err), Result{
			KeyTextSample: formatting.Sample(text, sampleCap),
		})
	}

	parsed, err := formatting.Parse[Result](raw)
	if err != nil || parsed == nil {
		return failure(c, parseDiagnostic(err), Result{
			KeyTextSample: formatting.Sample(text, sampleCap),
		})
	}

	parsed[KeyClassification] = c
	parsed[KeyTextSample] = formatting.Sample(text, sampleCap)

	a.logger.InfoContext(
		ctx, "document features extracted",
		"document_type", parsed["document_type"],
	)
	return parsed
}
