// Package classifier implements content classification for intake requests.
// It invokes the inference collaborator once per request, recovers format and
// intent from the unstructured response, and normalizes every failure into a
// fallback classification rather than an error.
package classifier

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"
)

// Kind is the caller-declared input kind. It selects the extraction agent
// and is independent of the format the classifier itself detects.
type Kind string

// Supported input kinds.
const (
	KindEmail    Kind = "email"
	KindRecord   Kind = "record"
	KindDocument Kind = "document"
)

var kinds = []Kind{
	KindEmail,
	KindRecord,
	KindDocument,
}

// ParseKind validates a string as a known input kind.
// Returns ErrInvalidKind if the value is not recognized.
func ParseKind(s string) (Kind, error) {
	v := Kind(s)
	if !slices.Contains(kinds, v) {
		return "", ErrInvalidKind
	}
	return v, nil
}

// Detected content formats.
const (
	FormatEmail    = "email"
	FormatRecord   = "record"
	FormatDocument = "document"
	FormatUnknown  = "unknown"
)

// Intent is the business intent recovered from content.
type Intent string

// Business intents recovered from content.
const (
	IntentComplaint  Intent = "complaint"
	IntentInvoice    Intent = "invoice"
	IntentRegulation Intent = "regulation"
	IntentFraudRisk  Intent = "fraud_risk"
	IntentRFQ        Intent = "rfq"
	IntentUnknown    Intent = "unknown"
)

// Confidence is a best-effort certainty score in [0,1]. The collaborator
// frequently returns it as a quoted number or an arbitrary string; decoding
// tolerates all of these, mapping non-numeric values to zero.
type Confidence float64

// UnmarshalJSON accepts a JSON number, a numeric string, or any other value.
// Unusable values decode to zero without error.
func (c *Confidence) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*c = Confidence(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*c = Confidence(f)
			return nil
		}
	}

	*c = 0
	return nil
}

// Classification is the result of the classify stage. Produced once per
// request and immutable thereafter. Error carries the diagnostic when the
// fallback path was taken.
type Classification struct {
	Format     string     `json:"format"`
	Intent     Intent     `json:"intent"`
	Confidence Confidence `json:"confidence"`
	Error      string     `json:"error,omitempty"`
}

// Fallback reports whether this classification came from the fallback path.
func (c Classification) Fallback() bool {
	return c.Error != ""
}

// FallbackFormat maps a declared kind to the detected-format value used when
// classification cannot recover one from the response.
func FallbackFormat(k Kind) string {
	switch k {
	case KindEmail:
		return FormatEmail
	case KindRecord:
		return FormatRecord
	case KindDocument:
		return FormatDocument
	default:
		return FormatUnknown
	}
}
