package repository

import (
	"bytes"
	"compress/zlib"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sakhi-dev/sakhi-backend/internal/entity"
)

// Transcripts are stored JSON-serialized and zlib-compressed. Long
// conversations are dominated by repeated prose, so the compression pays for
// itself well before the transcript gets windowed at composition time.

func encodeTranscript(messages []entity.Message) ([]byte, error) {
	serialized, err := json.Marshal(messages)
	if err != nil {
		return nil, fmt.Errorf("marshal transcript: %w", err)
	}

	var buf bytes.Buffer
	writer := zlib.NewWriter(&buf)
	if _, err := writer.Write(serialized); err != nil {
		return nil, fmt.Errorf("compress transcript: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("flush transcript: %w", err)
	}

	return buf.Bytes(), nil
}

func decodeTranscript(data []byte) ([]entity.Message, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decompress transcript: %w", err)
	}
	defer reader.Close()

	serialized, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	var messages []entity.Message
	if err := json.Unmarshal(serialized, &messages); err != nil {
		return nil, fmt.Errorf("unmarshal transcript: %w", err)
	}

	return messages, nil
}
