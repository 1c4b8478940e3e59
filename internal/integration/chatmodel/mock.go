package chatmodel

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sakhi-dev/sakhi-backend/internal/entity"
	"go.uber.org/zap"
)

// MockConnector is the development stand-in selected with
// CHAT_PROVIDER=mock. Classifier prompts get a literal "No" so the mock
// never short-circuits into the persona path.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Invoke(ctx context.Context, messages []entity.Message) (string, error) {
	ctxzap.Info(ctx, "[MOCK] invoking chat model", zap.Int("message_count", len(messages)))

	if len(messages) > 0 && messages[0].Role == entity.RoleSystem &&
		strings.Contains(messages[0].Content, "Yes or No") {
		return "No", nil
	}

	return "This is a mock answer generated without calling any language model.", nil
}
