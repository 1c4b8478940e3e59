// Package translate wraps the translation/speech pipeline service: text
// translation between English and the supported regional languages, speech
// to text, and text to speech. Audio is base64 on the wire. These are I/O
// plumbing calls, so transient failures are retried here, unlike the chat
// invoker.
package translate

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sakhi-dev/sakhi-backend/internal/config"
	"github.com/sakhi-dev/sakhi-backend/internal/entity"
	"github.com/sakhi-dev/sakhi-backend/internal/integration/common"
	"github.com/sakhi-dev/sakhi-backend/internal/pkg/media"
	pkghttp "github.com/sakhi-dev/sakhi-backend/pkg/http"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.TranslateConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.TranslateConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// TranslateText translates between two language codes.
func (c *Connector) TranslateText(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	ctxzap.Debug(ctx, "translating text",
		zap.String("source", sourceLang),
		zap.String("target", targetLang),
	)

	req := &entity.TranslateTextRequest{
		Input:          text,
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
	}

	var resp entity.TranslateTextResponse
	err := retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.TranslateEndpoint, req, &resp)
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		return "", common.ClassifyError(fmt.Errorf("translate text: %w", err))
	}

	return resp.Output, nil
}

// SpeechToText transcribes an audio input, given either as a URL or as
// inline base64 content, in the given language.
func (c *Connector) SpeechToText(ctx context.Context, audio, language string) (string, error) {
	ctxzap.Debug(ctx, "transcribing audio", zap.String("language", language))

	req := &entity.SpeechToTextRequest{Language: language}
	if media.IsURL(audio) {
		req.AudioURL = audio
	} else {
		req.AudioContent = audio
	}

	var resp entity.SpeechToTextResponse
	err := retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.ASREndpoint, req, &resp)
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		return "", common.ClassifyError(fmt.Errorf("speech to text: %w", err))
	}

	return resp.Transcript, nil
}

// TextToSpeech synthesizes speech for the text and returns the decoded audio
// bytes.
func (c *Connector) TextToSpeech(ctx context.Context, text, language string) ([]byte, error) {
	ctxzap.Debug(ctx, "synthesizing speech",
		zap.String("language", language),
		zap.Int("text_length", len(text)),
	)

	req := &entity.TextToSpeechRequest{Text: text, Language: language}

	var resp entity.TextToSpeechResponse
	err := retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.TTSEndpoint, req, &resp)
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		return nil, common.ClassifyError(fmt.Errorf("text to speech: %w", err))
	}

	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio content: %w", err)
	}

	return audio, nil
}
