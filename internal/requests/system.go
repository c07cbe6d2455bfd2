package requests

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/triage/pkg/pagination"
)

// System defines the public contract for request domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Summary], error)
	Find(ctx context.Context, id uuid.UUID) (*Request, error)
	Process(ctx context.Context, cmd ProcessCommand) (*Request, error)
	ProcessBatch(ctx context.Context, cmds []ProcessCommand) []BatchResult
}
