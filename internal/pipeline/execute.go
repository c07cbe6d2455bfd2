package pipeline

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// ExecuteNode returns a state node that runs the determined actions in order
// and persists their results. An empty action list executes nothing but still
// records an empty result set so the request completes.
func ExecuteNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		id, _, _, err := extractInputState(s)
		if err != nil {
			return s, fmt.Errorf("execute: %w", err)
		}

		val, ok := s.Get(KeyActions)
		if !ok {
			return s, fmt.Errorf("execute: %w: missing %s in state", ErrExecuteFailed, KeyActions)
		}

		actionIDs, ok := val.([]string)
		if !ok {
			return s, fmt.Errorf("execute: %w: %s is not []string", ErrExecuteFailed, KeyActions)
		}

		results, err := rt.Executor.Execute(ctx, actionIDs)
		if err != nil {
			return s, fmt.Errorf("execute: %w: %w", ErrExecuteFailed, err)
		}

		if err := rt.Store.SaveActionResults(ctx, id, results); err != nil {
			return s, fmt.Errorf("execute: %w: save: %w", ErrExecuteFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "execute node complete",
			"request_id", id,
			"executed", len(results),
		)

		s = s.Set(KeyResults, results)
		return s, nil
	})
}
