package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sakhi-dev/sakhi-backend/internal/entity"
	"go.uber.org/zap"
)

// retrieveContext fetches FetchK raw candidates, drops everything at or
// below the score threshold, truncates to TopDocsToFetch and renders the
// survivors into a single context block. An empty block is a valid terminal
// outcome, not an error.
func (uc *QueryUsecase) retrieveContext(ctx context.Context, query, indexID string) (string, error) {
	chunks, err := uc.vectorStore.SimilaritySearchWithScore(ctx, query, indexID, uc.cfg.FetchK)
	if err != nil {
		return "", err
	}

	filtered := filterByScore(chunks, uc.cfg.MinScore)
	if len(filtered) > uc.cfg.TopDocsToFetch {
		filtered = filtered[:uc.cfg.TopDocsToFetch]
	}

	ctxzap.Info(ctx, "score filtered documents",
		zap.Int("raw_count", len(chunks)),
		zap.Int("filtered_count", len(filtered)),
	)

	return renderChunks(filtered), nil
}

// filterByScore keeps chunks scoring strictly greater than minScore,
// preserving provider order. Score orientation is higher-is-better; the
// connector documents and owns the scale.
func filterByScore(chunks []entity.RetrievedChunk, minScore float64) []entity.RetrievedChunk {
	filtered := make([]entity.RetrievedChunk, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk.Score > minScore {
			filtered = append(filtered, chunk)
		}
	}
	return filtered
}

// renderChunks formats chunks as quoted content with a source citation
// trailer, entries separated by blank lines.
func renderChunks(chunks []entity.RetrievedChunk) string {
	var b strings.Builder
	for i, chunk := range chunks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "> %s\nSource: %s, page# %s;", chunk.Content, chunk.SourceFile, chunk.PageLabel)
	}
	return b.String()
}
