// Package chatmodel talks to an OpenAI-compatible chat-completion service.
// Three wire flavors are supported: plain OpenAI (bearer token), Azure
// OpenAI (api-key header, api-version query, deployment path) and Ollama's
// native chat API. All flavors expose the same Invoke contract and the same
// normalized error taxonomy; no retry happens at this layer.
package chatmodel

import (
	"context"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sakhi-dev/sakhi-backend/internal/config"
	"github.com/sakhi-dev/sakhi-backend/internal/entity"
	"github.com/sakhi-dev/sakhi-backend/internal/integration/common"
	pkghttp "github.com/sakhi-dev/sakhi-backend/pkg/http"
	"go.uber.org/zap"
)

type flavor string

const (
	flavorOpenAI flavor = "openai"
	flavorAzure  flavor = "azure"
	flavorOllama flavor = "ollama"
)

type Connector struct {
	config      config.ChatConnectorConfig
	connector   *pkghttp.Connector
	logger      *zap.Logger
	flavor      flavor
	temperature float64
}

// NewOpenAIConnector talks to api.openai.com or any service speaking the
// same protocol; the token travels as a bearer header.
func NewOpenAIConnector(cfg config.ChatConnectorConfig, temperature float64, logger *zap.Logger) *Connector {
	return &Connector{
		connector:   common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:      cfg,
		logger:      logger,
		flavor:      flavorOpenAI,
		temperature: temperature,
	}
}

// NewAzureConnector targets an Azure OpenAI deployment. Azure authenticates
// with an api-key header instead of a bearer token.
func NewAzureConnector(cfg config.ChatConnectorConfig, temperature float64, logger *zap.Logger) *Connector {
	httpCfg := cfg.HTTPClientConfig
	httpCfg.Token = ""

	return &Connector{
		connector:   common.NewBaseConnector(httpCfg, logger),
		config:      cfg,
		logger:      logger,
		flavor:      flavorAzure,
		temperature: temperature,
	}
}

// NewOllamaConnector targets a local Ollama server; no auth.
func NewOllamaConnector(cfg config.ChatConnectorConfig, temperature float64, logger *zap.Logger) *Connector {
	return &Connector{
		connector:   common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:      cfg,
		logger:      logger,
		flavor:      flavorOllama,
		temperature: temperature,
	}
}

// Invoke sends the message sequence to the chat model and returns the
// assistant's reply text.
func (c *Connector) Invoke(ctx context.Context, messages []entity.Message) (string, error) {
	ctxzap.Debug(ctx, "invoking chat model",
		zap.String("flavor", string(c.flavor)),
		zap.Int("message_count", len(messages)),
	)

	req := &entity.ChatCompletionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: c.temperature,
	}

	var (
		text string
		err  error
	)
	switch c.flavor {
	case flavorOllama:
		text, err = c.invokeOllama(ctx, req)
	case flavorAzure:
		text, err = c.invokeAzure(ctx, req)
	default:
		text, err = c.invokeOpenAI(ctx, req)
	}
	if err != nil {
		ctxzap.Error(ctx, "chat model invocation failed", zap.Error(err))
		return "", common.ClassifyError(err)
	}

	ctxzap.Debug(ctx, "chat model responded", zap.Int("response_length", len(text)))
	return text, nil
}

func (c *Connector) invokeOpenAI(ctx context.Context, req *entity.ChatCompletionRequest) (string, error) {
	var resp entity.ChatCompletionResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.CompletionsEndpoint, req, &resp); err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Connector) invokeAzure(ctx context.Context, req *entity.ChatCompletionRequest) (string, error) {
	endpoint := fmt.Sprintf("/openai/deployments/%s/chat/completions?api-version=%s",
		c.config.Model, c.config.APIVersion)

	// The deployment is addressed in the path; Azure rejects a model field.
	azureReq := *req
	azureReq.Model = ""

	var resp entity.ChatCompletionResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, endpoint, &azureReq, &resp,
		pkghttp.WithHeader("api-key", c.config.Token))
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Connector) invokeOllama(ctx context.Context, req *entity.ChatCompletionRequest) (string, error) {
	var resp entity.OllamaChatResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, "/api/chat", req, &resp); err != nil {
		return "", err
	}
	return resp.Message.Content, nil
}
