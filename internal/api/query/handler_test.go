package query

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakhi-dev/sakhi-backend/internal/entity"
)

type usecaseStub struct {
	lastQuery entity.Query
	lastChat  bool
	response  *entity.QueryResponse
}

func (s *usecaseStub) ProcessQuery(_ context.Context, q entity.Query) *entity.QueryResponse {
	s.lastQuery = q
	s.lastChat = false
	return s.response
}

func (s *usecaseStub) ProcessChat(_ context.Context, q entity.Query) *entity.QueryResponse {
	s.lastQuery = q
	s.lastChat = true
	return s.response
}

func setupRouter(uc *usecaseStub) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(uc))
	return r
}

func successResponse(text string) *entity.QueryResponse {
	return &entity.QueryResponse{
		Text:     text,
		Language: entity.LanguageEN,
		Format:   entity.FormatText,
		Status:   entity.StatusSuccess,
	}
}

func TestQueryHandler_Success(t *testing.T) {
	uc := &usecaseStub{response: successResponse("an answer")}
	router := setupRouter(uc)

	body := `{"input":{"language":"en","text":"how do children learn","audienceType":"teacher"},"output":{"format":"text"}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/query", strings.NewReader(body))
	req.Header.Set("x-source", "app")
	req.Header.Set("x-consumer-id", "u123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, uc.lastChat)
	assert.Equal(t, "how do children learn", uc.lastQuery.Text)
	assert.Equal(t, "app", uc.lastQuery.Source)
	assert.Equal(t, "u123", uc.lastQuery.ConsumerID)

	var resp QueryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "an answer", resp.Output.Text)
	assert.Equal(t, "en", resp.Output.Language)
	assert.Equal(t, "text", resp.Output.Format)
}

func TestChatHandler_RoutesToChat(t *testing.T) {
	uc := &usecaseStub{response: successResponse("an answer")}
	router := setupRouter(uc)

	body := `{"input":{"text":"and indoors?"}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, uc.lastChat)
	// body defaults applied
	assert.Equal(t, entity.LanguageEN, uc.lastQuery.Language)
	assert.Equal(t, entity.AudienceTeacher, uc.lastQuery.Audience)
	assert.Equal(t, entity.FormatText, uc.lastQuery.Format)
}

func TestQueryHandler_InvalidBody(t *testing.T) {
	uc := &usecaseStub{response: successResponse("x")}
	router := setupRouter(uc)

	req := httptest.NewRequest(http.MethodPost, "/v1/query", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryHandler_UnsupportedLanguage(t *testing.T) {
	uc := &usecaseStub{response: successResponse("x")}
	router := setupRouter(uc)

	body := `{"input":{"language":"fr","text":"bonjour"}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/query", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown input language")
}

func TestQueryHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		status entity.AnswerStatus
		code   int
	}{
		{entity.StatusValidationError, http.StatusUnprocessableEntity},
		{entity.StatusRateLimited, http.StatusTooManyRequests},
		{entity.StatusUpstreamUnavailable, http.StatusServiceUnavailable},
		{entity.StatusInternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			uc := &usecaseStub{response: &entity.QueryResponse{
				Status:     tt.status,
				ErrMessage: "something failed",
				Language:   entity.LanguageEN,
				Format:     entity.FormatText,
			}}
			router := setupRouter(uc)

			body := `{"input":{"text":"anything"}}`
			req := httptest.NewRequest(http.MethodPost, "/v1/query", strings.NewReader(body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), "something failed")
		})
	}
}
