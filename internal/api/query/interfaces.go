package query

import (
	"context"

	"github.com/sakhi-dev/sakhi-backend/internal/entity"
)

// QueryUsecase answers questions against the document corpus. Both methods
// always return a response; failures are carried in the response status, not
// as errors.
type QueryUsecase interface {
	ProcessQuery(ctx context.Context, q entity.Query) *entity.QueryResponse
	ProcessChat(ctx context.Context, q entity.Query) *entity.QueryResponse
}
