// Package vectorstore queries a Marqo server for semantically similar
// document chunks.
//
// Score scale (Marqo): normalized relevance in [0, 1], higher is better; a
// typical usable threshold is 0.7. Any future provider with distance-like
// scores must convert them to this orientation before returning chunks;
// the engine filters with a single "strictly greater than" comparison.
package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sakhi-dev/sakhi-backend/internal/config"
	"github.com/sakhi-dev/sakhi-backend/internal/entity"
	"github.com/sakhi-dev/sakhi-backend/internal/integration/common"
	pkghttp "github.com/sakhi-dev/sakhi-backend/pkg/http"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.VectorStoreConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.VectorStoreConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// SimilaritySearchWithScore returns the k nearest chunks to the query within
// the given index, in provider relevance order. Errors are normalized into
// the same taxonomy the chat connector uses.
func (c *Connector) SimilaritySearchWithScore(ctx context.Context, query, indexID string, k int) ([]entity.RetrievedChunk, error) {
	ctxzap.Debug(ctx, "searching vector store",
		zap.String("index_id", indexID),
		zap.Int("k", k),
	)

	req := &entity.MarqoSearchRequest{Q: query, Limit: k}
	endpoint := fmt.Sprintf("/indexes/%s/search", indexID)

	var resp entity.MarqoSearchResponse
	err := retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp)
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		ctxzap.Error(ctx, "vector store search failed", zap.Error(err))
		return nil, common.ClassifyError(err)
	}

	chunks := make([]entity.RetrievedChunk, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		meta := metadataOf(hit)
		chunks = append(chunks, entity.RetrievedChunk{
			Content:    hit.Text,
			Score:      hit.Score,
			SourceFile: meta.FileName,
			PageLabel:  meta.PageLabel,
		})
	}

	ctxzap.Debug(ctx, "vector store search completed", zap.Int("hit_count", len(chunks)))
	return chunks, nil
}

// metadataOf decodes the JSON-string metadata a hit was indexed with. A chunk
// with unparseable metadata is still usable, it just loses its citation.
func metadataOf(hit entity.MarqoHit) entity.ChunkMetadata {
	var meta entity.ChunkMetadata
	if hit.Metadata == "" {
		return meta
	}
	if err := json.Unmarshal([]byte(hit.Metadata), &meta); err != nil {
		return entity.ChunkMetadata{}
	}
	return meta
}
