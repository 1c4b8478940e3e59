package vectorstore

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sakhi-dev/sakhi-backend/internal/entity"
	"go.uber.org/zap"
)

// MockConnector returns a fixed pair of high-scoring chunks for any query.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) SimilaritySearchWithScore(ctx context.Context, query, indexID string, k int) ([]entity.RetrievedChunk, error) {
	ctxzap.Info(ctx, "[MOCK] vector store search",
		zap.String("index_id", indexID),
		zap.Int("k", k),
	)

	return []entity.RetrievedChunk{
		{
			Content:    "Young children learn colors best through repeated play with everyday objects.",
			Score:      0.92,
			SourceFile: "early_learning_handbook.pdf",
			PageLabel:  "12",
		},
		{
			Content:    "Naming colors during daily routines builds vocabulary without formal lessons.",
			Score:      0.85,
			SourceFile: "early_learning_handbook.pdf",
			PageLabel:  "13",
		},
	}, nil
}
