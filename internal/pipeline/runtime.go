package pipeline

import (
	"log/slog"

	"github.com/JaimeStill/triage/internal/actions"
	"github.com/JaimeStill/triage/internal/agents"
	"github.com/JaimeStill/triage/internal/classifier"
)

// Runtime bundles the dependencies that pipeline nodes require.
// It is constructed by higher-level composition code from Infrastructure and Domain systems.
type Runtime struct {
	Classifier *classifier.Classifier
	Email      agents.Agent
	Record     agents.Agent
	Document   agents.Agent
	Executor   *actions.Executor
	Store      Store
	Logger     *slog.Logger
}
