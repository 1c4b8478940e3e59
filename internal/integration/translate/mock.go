package translate

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector passes text through unchanged and returns canned audio.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) TranslateText(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] translating text",
		zap.String("source", sourceLang),
		zap.String("target", targetLang),
	)
	return text, nil
}

func (m *MockConnector) SpeechToText(ctx context.Context, audio, language string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] transcribing audio", zap.String("language", language))
	return "mock transcript", nil
}

func (m *MockConnector) TextToSpeech(ctx context.Context, text, language string) ([]byte, error) {
	ctxzap.Info(ctx, "[MOCK] synthesizing speech", zap.String("language", language))
	return []byte("mock-audio-bytes"), nil
}
