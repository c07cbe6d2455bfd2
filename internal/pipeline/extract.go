package pipeline

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/triage/internal/agents"
	"github.com/JaimeStill/triage/internal/classifier"
)

// ExtractNode returns a state node that routes the content to the agent for
// its declared kind. Agent failures are encoded in the returned feature map,
// not as node errors, so a failed extraction still persists and the pipeline
// still reaches action determination.
func ExtractNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		id, content, kind, err := extractInputState(s)
		if err != nil {
			return s, fmt.Errorf("extract: %w", err)
		}

		c, err := extractClassification(s)
		if err != nil {
			return s, fmt.Errorf("extract: %w: %w", ErrExtractFailed, err)
		}

		agent, err := rt.agentFor(kind)
		if err != nil {
			return s, fmt.Errorf("extract: %w", err)
		}

		features := agent.Process(ctx, content, c)

		if err := rt.Store.SaveExtraction(ctx, id, features); err != nil {
			return s, fmt.Errorf("extract: %w: save: %w", ErrExtractFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "extract node complete",
			"request_id", id,
			"kind", kind,
			"failed", features.Failed(),
		)

		s = s.Set(KeyFeatures, features)
		return s, nil
	})
}

func (rt *Runtime) agentFor(kind classifier.Kind) (agents.Agent, error) {
	switch kind {
	case classifier.KindEmail:
		return rt.Email, nil
	case classifier.KindRecord:
		return rt.Record, nil
	case classifier.KindDocument:
		return rt.Document, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}

func extractFeatures(s state.State) (agents.Result, error) {
	val, ok := s.Get(KeyFeatures)
	if !ok {
		return nil, fmt.Errorf("missing %s in state", KeyFeatures)
	}

	features, ok := val.(agents.Result)
	if !ok {
		return nil, fmt.Errorf("%s is not Result", KeyFeatures)
	}

	return features, nil
}
