package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sakhi-dev/sakhi-backend/internal/entity"
	pkghttp "github.com/sakhi-dev/sakhi-backend/pkg/http"
)

// ClassifyError maps transport-level failures onto the uniform provider
// error taxonomy: 429 becomes ErrRateLimited, 5xx and network failures
// become ErrUpstreamUnavailable, everything else passes through unchanged.
// Every connector normalizes through this single function so the engine
// never sees provider-specific error shapes.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", entity.ErrRateLimited, httpErr.Message)
		case httpErr.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%w: HTTP %d", entity.ErrUpstreamUnavailable, httpErr.StatusCode)
		}
		return err
	}

	var netErr *pkghttp.NetworkError
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", entity.ErrUpstreamUnavailable, netErr.Err)
	}

	return err
}
