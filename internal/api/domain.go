package api

import (
	"fmt"

	"github.com/JaimeStill/triage/internal/extract"
	"github.com/JaimeStill/triage/internal/inference"
	"github.com/JaimeStill/triage/internal/requests"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Requests requests.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) (*Domain, error) {
	client, err := inference.New(&runtime.Agent)
	if err != nil {
		return nil, fmt.Errorf("inference client init failed: %w", err)
	}

	requestsSystem := requests.New(
		runtime.Database.Connection(),
		client,
		extract.NewPDF(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Requests: requestsSystem,
	}, nil
}
