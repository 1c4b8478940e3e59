// Package repository owns conversation transcript storage. A transcript is
// the full, unwindowed sequence of user/assistant turns for one session key;
// history windowing is a prompt-composition concern and never happens here.
package repository

import (
	"context"
	"strings"
	"time"

	"github.com/sakhi-dev/sakhi-backend/internal/entity"
)

// HistoryStore reads and writes conversation transcripts.
//
// Read returns an empty transcript for an unknown key, never an error.
// Write replaces the stored transcript and refreshes the TTL (sliding
// expiry). Concurrent read-modify-write cycles on one key are last-write-
// wins; the store does no fencing.
type HistoryStore interface {
	Read(ctx context.Context, key string) ([]entity.Message, error)
	Write(ctx context.Context, key string, messages []entity.Message, ttl time.Duration) error
}

const historyKeyPrefix = "history"

// HistoryKey derives the session key from the calling channel, the end user
// id and the audience context. Absent components are omitted, not replaced
// by placeholders: ("app", "u123", "parent") -> "history_app_u123_parent",
// ("", "", "parent") -> "history_parent".
func HistoryKey(source, consumerID, context string) string {
	var b strings.Builder
	b.WriteString(historyKeyPrefix)

	for _, part := range []string{source, consumerID, context} {
		if part != "" {
			b.WriteString("_")
			b.WriteString(part)
		}
	}

	return b.String()
}
