package storage

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector accepts every upload and serves objects from a fake host.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Upload(ctx context.Context, name string, data []byte) error {
	ctxzap.Info(ctx, "[MOCK] uploading object",
		zap.String("name", name),
		zap.Int("size", len(data)),
	)
	return nil
}

func (m *MockConnector) PublicURL(name string) (string, error) {
	return "https://storage.mock.local/" + name, nil
}
