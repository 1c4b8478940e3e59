package query

import (
	"context"

	"github.com/sakhi-dev/sakhi-backend/internal/entity"
)

// ChatModelConnector invokes the chat-completion provider. Implementations
// must wrap rate-limit and transient failures with the entity error
// sentinels; the engine performs no retry on top.
type ChatModelConnector interface {
	Invoke(ctx context.Context, messages []entity.Message) (string, error)
}

// VectorStoreConnector performs similarity search over a document index.
// Returned chunks preserve provider relevance order, scores oriented
// higher-is-better.
type VectorStoreConnector interface {
	SimilaritySearchWithScore(ctx context.Context, query, indexID string, k int) ([]entity.RetrievedChunk, error)
}

// TranslateConnector is the translation/speech pipeline. A nil connector
// means the capability is disabled for this deployment; text then passes
// through untranslated and audio input/output is unavailable.
type TranslateConnector interface {
	TranslateText(ctx context.Context, text, sourceLang, targetLang string) (string, error)
	SpeechToText(ctx context.Context, audio, language string) (string, error)
	TextToSpeech(ctx context.Context, text, language string) ([]byte, error)
}

// StorageConnector uploads synthesized audio and exposes its public URL. May
// be nil when the capability is disabled.
type StorageConnector interface {
	Upload(ctx context.Context, name string, data []byte) error
	PublicURL(name string) (string, error)
}
