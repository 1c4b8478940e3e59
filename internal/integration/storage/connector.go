// Package storage uploads synthesized audio files to an object bucket over a
// pre-authenticated HTTPS endpoint and builds their public URLs.
package storage

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sakhi-dev/sakhi-backend/internal/config"
	"github.com/sakhi-dev/sakhi-backend/internal/integration/common"
	pkghttp "github.com/sakhi-dev/sakhi-backend/pkg/http"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.StorageConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.StorageConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Upload PUTs the object under the configured upload endpoint.
func (c *Connector) Upload(ctx context.Context, name string, data []byte) error {
	ctxzap.Info(ctx, "uploading object",
		zap.String("name", name),
		zap.Int("size", len(data)),
	)

	endpoint := fmt.Sprintf("%s/%s", strings.TrimRight(c.config.UploadEndpoint, "/"), name)

	err := retry.Do(func() error {
		return c.connector.DoRawRequest(ctx, http.MethodPut, endpoint, "audio/mpeg", data, nil)
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		ctxzap.Error(ctx, "object upload failed", zap.Error(err))
		return common.ClassifyError(fmt.Errorf("upload object: %w", err))
	}

	ctxzap.Info(ctx, "object uploaded")
	return nil
}

// PublicURL returns the public URL the uploaded object is served from.
func (c *Connector) PublicURL(name string) (string, error) {
	if c.config.PublicBaseURL == "" {
		return "", fmt.Errorf("storage public base URL is not configured")
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(c.config.PublicBaseURL, "/"), name), nil
}
