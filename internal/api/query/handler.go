package query

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/sakhi-dev/sakhi-backend/internal/entity"
	"github.com/sakhi-dev/sakhi-backend/internal/pkg/logger"
	"github.com/sakhi-dev/sakhi-backend/internal/pkg/response"
)

type Handler struct {
	usecase QueryUsecase
}

func NewHandler(usecase QueryUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Query handles POST /v1/query - answer a one-shot question
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "Query", h.usecase.ProcessQuery)
}

// Chat handles POST /v1/chat - answer a conversational turn
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "Chat", h.usecase.ProcessChat)
}

func (h *Handler) handle(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	process func(context.Context, entity.Query) *entity.QueryResponse,
) {
	ctx := logger.WithAction(r.Context(), action)

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q := toQuery(&req, r.Header.Get("x-source"), r.Header.Get("x-consumer-id"))

	if err := validateQuery(q); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx = logger.AddFields(ctx,
		zap.String("language", string(q.Language)),
		zap.String("audience", string(q.Audience)),
		zap.String("source", q.Source),
	)

	resp := process(ctx, q)
	if resp.Status != entity.StatusSuccess {
		ctxzap.Error(ctx, "query failed",
			zap.String("status", string(resp.Status)),
			zap.String("error", resp.ErrMessage),
		)
		response.Error(w, resp.Status.HTTPStatus(), resp.ErrMessage)
		return
	}

	ctxzap.Info(ctx, "query answered",
		zap.Int("answer_length", len(resp.Text)),
		zap.String("format", string(resp.Format)),
	)
	response.Success(w, toResponseDTO(resp))
}

func validateQuery(q entity.Query) error {
	if err := q.Language.Validate(); err != nil {
		return err
	}
	if err := q.Audience.Validate(); err != nil {
		return err
	}
	return q.Format.Validate()
}
