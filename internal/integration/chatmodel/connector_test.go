package chatmodel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sakhi-dev/sakhi-backend/internal/config"
	"github.com/sakhi-dev/sakhi-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(url string) config.ChatConnectorConfig {
	return config.ChatConnectorConfig{
		HTTPClientConfig:    config.HTTPClientConfig{Url: url},
		Model:               "gpt-4",
		CompletionsEndpoint: "/v1/chat/completions",
	}
}

func TestInvoke_ReturnsAssistantText(t *testing.T) {
	t.Parallel()

	var gotReq entity.ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(entity.ChatCompletionResponse{
			Choices: []entity.ChatCompletionChoice{
				{Message: entity.AssistantMessage("the answer")},
			},
		})
	}))
	defer server.Close()

	conn := NewOpenAIConnector(testConfig(server.URL), 0, zap.NewNop())

	text, err := conn.Invoke(context.Background(), []entity.Message{
		entity.SystemMessage("rules"),
		entity.UserMessage("question"),
	})
	require.NoError(t, err)
	assert.Equal(t, "the answer", text)
	assert.Equal(t, "gpt-4", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, entity.RoleSystem, gotReq.Messages[0].Role)
}

func TestInvoke_RateLimitIsNormalized(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	conn := NewOpenAIConnector(testConfig(server.URL), 0, zap.NewNop())

	_, err := conn.Invoke(context.Background(), []entity.Message{entity.UserMessage("q")})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrRateLimited)
}

func TestInvoke_ServerErrorIsUpstreamUnavailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	conn := NewOpenAIConnector(testConfig(server.URL), 0, zap.NewNop())

	_, err := conn.Invoke(context.Background(), []entity.Message{entity.UserMessage("q")})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrUpstreamUnavailable)
}

func TestInvoke_AzureUsesAPIKeyAndDeploymentPath(t *testing.T) {
	t.Parallel()

	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("api-key")
		json.NewEncoder(w).Encode(entity.ChatCompletionResponse{
			Choices: []entity.ChatCompletionChoice{
				{Message: entity.AssistantMessage("azure answer")},
			},
		})
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Token = "secret"
	cfg.APIVersion = "2024-02-01"
	conn := NewAzureConnector(cfg, 0, zap.NewNop())

	text, err := conn.Invoke(context.Background(), []entity.Message{entity.UserMessage("q")})
	require.NoError(t, err)
	assert.Equal(t, "azure answer", text)
	assert.Equal(t, "/openai/deployments/gpt-4/chat/completions", gotPath)
	assert.Equal(t, "secret", gotKey)
}
