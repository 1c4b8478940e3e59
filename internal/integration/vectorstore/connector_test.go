package vectorstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sakhi-dev/sakhi-backend/internal/config"
	"github.com/sakhi-dev/sakhi-backend/internal/entity"
	pkgRetry "github.com/sakhi-dev/sakhi-backend/internal/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(url string) config.VectorStoreConnectorConfig {
	return config.VectorStoreConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{Url: url},
		Retry:            pkgRetry.RetryConfig{Attempts: 1},
	}
}

func TestSimilaritySearch_ParsesHitsAndMetadata(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/indexes/parent-index/search", r.URL.Path)

		var req entity.MarqoSearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "colors", req.Q)
		assert.Equal(t, 20, req.Limit)

		json.NewEncoder(w).Encode(entity.MarqoSearchResponse{
			Hits: []entity.MarqoHit{
				{Text: "first chunk", Score: 0.91, Metadata: `{"file_name":"handbook.pdf","page_label":"4"}`},
				{Text: "second chunk", Score: 0.42, Metadata: "not-json"},
			},
		})
	}))
	defer server.Close()

	conn := NewConnector(testConfig(server.URL), zap.NewNop())

	chunks, err := conn.SimilaritySearchWithScore(context.Background(), "colors", "parent-index", 20)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, "first chunk", chunks[0].Content)
	assert.Equal(t, 0.91, chunks[0].Score)
	assert.Equal(t, "handbook.pdf", chunks[0].SourceFile)
	assert.Equal(t, "4", chunks[0].PageLabel)

	// Unparseable metadata loses the citation but keeps the chunk.
	assert.Equal(t, "second chunk", chunks[1].Content)
	assert.Empty(t, chunks[1].SourceFile)
}

func TestSimilaritySearch_ErrorsAreNormalized(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "index rebuilding", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	conn := NewConnector(testConfig(server.URL), zap.NewNop())

	_, err := conn.SimilaritySearchWithScore(context.Background(), "q", "idx", 20)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrUpstreamUnavailable)
}

func TestSimilaritySearch_EmptyResultIsNotAnError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(entity.MarqoSearchResponse{Hits: []entity.MarqoHit{}})
	}))
	defer server.Close()

	conn := NewConnector(testConfig(server.URL), zap.NewNop())

	chunks, err := conn.SimilaritySearchWithScore(context.Background(), "q", "idx", 20)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}
