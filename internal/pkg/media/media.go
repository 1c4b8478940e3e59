// Package media has small helpers for audio payload handling: input
// classification (URL vs inline base64) and temp file naming.
package media

import (
	"encoding/base64"
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// IsURL reports whether s parses as an absolute URL.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// IsBase64 reports whether s decodes as standard base64.
func IsBase64(s string) bool {
	if s == "" {
		return false
	}
	_, err := base64.StdEncoding.DecodeString(s)
	return err == nil
}

// TempFilename returns a collision-free file name with the given extension.
func TempFilename(ext, prefix string) string {
	if prefix == "" {
		prefix = "temp"
	}
	return fmt.Sprintf("%s_%s.%s", prefix, uuid.New().String(), ext)
}
