package pipeline

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/triage/internal/actions"
)

// DetermineNode returns a state node that maps the extracted features and
// classification to an ordered action list, persisting both the list and the
// determination audit entry before advancing.
func DetermineNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		id, _, _, err := extractInputState(s)
		if err != nil {
			return s, fmt.Errorf("determine: %w", err)
		}

		c, err := extractClassification(s)
		if err != nil {
			return s, fmt.Errorf("determine: %w: %w", ErrDetermineFailed, err)
		}

		features, err := extractFeatures(s)
		if err != nil {
			return s, fmt.Errorf("determine: %w: %w", ErrDetermineFailed, err)
		}

		actionIDs := actions.Determine(features, c)

		if err := rt.Store.SaveActions(ctx, id, actionIDs); err != nil {
			return s, fmt.Errorf("determine: %w: save: %w", ErrDetermineFailed, err)
		}

		if err := rt.Store.LogActionDetermination(ctx, c.Intent, actionIDs); err != nil {
			return s, fmt.Errorf("determine: %w: audit: %w", ErrDetermineFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "determine node complete",
			"request_id", id,
			"intent", c.Intent,
			"actions", actionIDs,
		)

		s = s.Set(KeyActions, actionIDs)
		return s, nil
	})
}
