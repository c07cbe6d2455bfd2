package pipeline

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/triage/internal/classifier"
)

// ClassifyNode returns a state node that classifies the raw content against
// its declared kind and persists the result before advancing. The classifier
// absorbs collaborator failures internally; only an audit-write failure
// surfaces here.
func ClassifyNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		id, content, kind, err := extractInputState(s)
		if err != nil {
			return s, fmt.Errorf("classify: %w", err)
		}

		c, err := rt.Classifier.Classify(ctx, content, kind)
		if err != nil {
			return s, fmt.Errorf("classify: %w: %w", ErrClassifyFailed, err)
		}

		if err := rt.Store.SaveClassification(ctx, id, c); err != nil {
			return s, fmt.Errorf("classify: %w: save: %w", ErrClassifyFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "classify node complete",
			"request_id", id,
			"format", c.Format,
			"intent", c.Intent,
			"confidence", c.Confidence,
		)

		s = s.Set(KeyClassification, c)
		return s, nil
	})
}

func extractClassification(s state.State) (classifier.Classification, error) {
	val, ok := s.Get(KeyClassification)
	if !ok {
		return classifier.Classification{}, fmt.Errorf("missing %s in state", KeyClassification)
	}

	c, ok := val.(classifier.Classification)
	if !ok {
		return classifier.Classification{}, fmt.Errorf("%s is not Classification", KeyClassification)
	}

	return c, nil
}
