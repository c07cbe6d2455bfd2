// Package inference provides the client boundary for the external inference
// collaborator. Components receive a Client at construction so tests can
// substitute a deterministic fake.
package inference

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Client issues a single bounded prompt to the inference collaborator and
// returns its raw text response. The response carries no enforced schema;
// callers recover structure with formatting.Parse.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type client struct {
	agent agent.Agent
}

// New creates a Client backed by a go-agents chat agent.
func New(cfg *gaconfig.AgentConfig) (Client, error) {
	a, err := agent.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}
	return &client{agent: a}, nil
}

func (c *client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.agent.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat call: %w", err)
	}
	return resp.Content(), nil
}
