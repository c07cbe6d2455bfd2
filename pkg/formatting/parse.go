package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrParseFailed is returned when content cannot be parsed as JSON,
// either directly or from an embedded object substring.
var ErrParseFailed = errors.New("failed to parse response")

// Parse attempts to unmarshal content as JSON into T. If direct parsing
// fails, it extracts the substring between the first '{' and the last '}'
// and retries. Inference responses carry no enforced schema, so the object
// is routinely wrapped in prose or markdown fencing; the brace scan recovers
// it without caring what surrounds it. Returns ErrParseFailed if both
// attempts fail or no object is present.
func Parse[T any](content string) (T, error) {
	var result T
	content = strings.TrimSpace(content)

	if err := json.Unmarshal([]byte(content), &result); err == nil {
		return result, nil
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		candidate := content[start : end+1]
		if err := json.Unmarshal([]byte(candidate), &result); err == nil {
			return result, nil
		}
	}

	return result, fmt.Errorf("%w: %s", ErrParseFailed, content)
}

// Sample returns the first max bytes of s, used for audit log content samples.
func Sample(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
