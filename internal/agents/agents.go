// Package agents implements the per-kind extraction agents. Each agent
// prompts the inference collaborator for the fields its input kind carries
// and recovers a structured result from the unstructured response.
//
// Agents never return Go errors: every failure, collaborator transport
// included, is encoded in the returned Result under the "error" key with the
// classification context preserved. The orchestrator and policy engine treat
// that marker as "no usable features."
package agents

import (
	"context"

	"github.com/JaimeStill/triage/internal/classifier"
)

// Keys shared across agent results.
const (
	KeyError          = "error"
	KeyClassification = "classification"
	KeyContent        = "content"
	KeyDetails        = "details"
	KeyTextSample     = "text_sample"
	KeyOriginalData   = "original_data"
)

// sampleCap bounds content samples embedded in results.
const sampleCap = 500

// Agent extracts kind-specific features from raw content.
type Agent interface {
	Process(ctx context.Context, content []byte, c classifier.Classification) Result
}

// Result is the kind-polymorphic extraction output: string keys mapping to
// heterogeneous values plus the echoed classification. Consumers must check
// Failed before reading feature keys.
type Result map[string]any

// Failed reports whether the result carries the error marker.
func (r Result) Failed() bool {
	_, ok := r[KeyError]
	return ok
}

// ErrorMessage returns the error marker value, or "" when the result succeeded.
func (r Result) ErrorMessage() string {
	if msg, ok := r[KeyError].(string); ok {
		return msg
	}
	return ""
}

// parseDiagnostic normalizes the two shapes a bad collaborator response can
// take: a parse error, or a JSON value that decodes to nothing at all.
func parseDiagnostic(err error) string {
	if err != nil {
		return err.Error()
	}
	return "response contained no object"
}

func failure(c classifier.Classification, msg string, extra Result) Result {
	r := Result{
		KeyError:          msg,
		KeyClassification: c,
	}
	for k, v := range extra {
		r[k] = v
	}
	return r
}
