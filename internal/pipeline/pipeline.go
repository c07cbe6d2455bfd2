package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/triage/internal/actions"
	"github.com/JaimeStill/triage/internal/classifier"
)

// Execute runs the intake pipeline for a single request. It builds the state
// graph (classify → extract → determine → execute), seeds it with the request
// identity and raw content, executes it, and extracts the stage outputs from
// the final state. Persistence happens inside the nodes, so a mid-pipeline
// failure leaves every completed stage durable.
func Execute(
	ctx context.Context,
	rt *Runtime,
	id uuid.UUID,
	content []byte,
	kind classifier.Kind,
) (*Result, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyRequestID, id)
	initialState = initialState.Set(KeyContent, content)
	initialState = initialState.Set(KeyKind, kind)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("triage-intake")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("classify", ClassifyNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("extract", ExtractNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("determine", DetermineNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("execute", ExecuteNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("classify", "extract", nil); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("extract", "determine", nil); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("determine", "execute", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("classify"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("execute"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractInputState(s state.State) (uuid.UUID, []byte, classifier.Kind, error) {
	idVal, ok := s.Get(KeyRequestID)
	if !ok {
		return uuid.Nil, nil, "", fmt.Errorf("missing %s in state", KeyRequestID)
	}

	id, ok := idVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, nil, "", fmt.Errorf("%s is not uuid.UUID", KeyRequestID)
	}

	contentVal, ok := s.Get(KeyContent)
	if !ok {
		return uuid.Nil, nil, "", fmt.Errorf("missing %s in state", KeyContent)
	}

	content, ok := contentVal.([]byte)
	if !ok {
		return uuid.Nil, nil, "", fmt.Errorf("%s is not []byte", KeyContent)
	}

	kindVal, ok := s.Get(KeyKind)
	if !ok {
		return uuid.Nil, nil, "", fmt.Errorf("missing %s in state", KeyKind)
	}

	kind, ok := kindVal.(classifier.Kind)
	if !ok {
		return uuid.Nil, nil, "", fmt.Errorf("%s is not Kind", KeyKind)
	}

	return id, content, kind, nil
}

func extractResult(s state.State) (*Result, error) {
	c, err := extractClassification(s)
	if err != nil {
		return nil, err
	}

	features, err := extractFeatures(s)
	if err != nil {
		return nil, err
	}

	actionsVal, ok := s.Get(KeyActions)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyActions)
	}

	actionIDs, ok := actionsVal.([]string)
	if !ok {
		return nil, fmt.Errorf("%s is not []string", KeyActions)
	}

	resultsVal, ok := s.Get(KeyResults)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyResults)
	}

	results, ok := resultsVal.([]actions.ExecutionResult)
	if !ok {
		return nil, fmt.Errorf("%s is not []ExecutionResult", KeyResults)
	}

	return &Result{
		Classification: c,
		Features:       features,
		Actions:        actionIDs,
		ActionResults:  results,
	}, nil
}
