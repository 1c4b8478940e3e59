package query

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sakhi-dev/sakhi-backend/internal/entity"
)

type translateStub struct {
	transcript string
	toEnglish  map[string]string
	toRegional map[string]string
	ttsCalls   []string
}

func (s *translateStub) TranslateText(_ context.Context, text, sourceLang, _ string) (string, error) {
	if sourceLang == string(entity.LanguageEN) {
		if out, ok := s.toRegional[text]; ok {
			return out, nil
		}
		return text, nil
	}
	if out, ok := s.toEnglish[text]; ok {
		return out, nil
	}
	return text, nil
}

func (s *translateStub) SpeechToText(_ context.Context, _, _ string) (string, error) {
	return s.transcript, nil
}

func (s *translateStub) TextToSpeech(_ context.Context, text, _ string) ([]byte, error) {
	s.ttsCalls = append(s.ttsCalls, text)
	return []byte("mp3-bytes"), nil
}

type storageStub struct {
	uploads map[string][]byte
}

func (s *storageStub) Upload(_ context.Context, name string, data []byte) error {
	if s.uploads == nil {
		s.uploads = make(map[string][]byte)
	}
	s.uploads[name] = data
	return nil
}

func (s *storageStub) PublicURL(name string) (string, error) {
	return "https://storage.test.local/" + name, nil
}

func newPipelineUsecase(chat *chatModelStub, vs *vectorStoreStub, translate *translateStub, storage *storageStub) *QueryUsecase {
	return NewUsecase(
		chat, vs, translate, storage, newHistoryStub(),
		map[string]string{"teacher": "idx-teacher", "parent": "idx-parent"},
		testPrompts(), testEngineConfig(), 12*time.Hour, zap.NewNop(),
	)
}

func TestProcessQuery_TranslatesRoundTrip(t *testing.T) {
	chat := &chatModelStub{respond: func(_ int, messages []entity.Message) (string, error) {
		// retrieval and generation run on the English rendition
		assert.Equal(t, "how do children learn", messages[len(messages)-1].Content)
		return "through play", nil
	}}
	vs := &vectorStoreStub{chunks: []entity.RetrievedChunk{
		chunk("excerpt", "a.pdf", "1", 0.9),
	}}
	translate := &translateStub{
		toEnglish:  map[string]string{"बच्चे कैसे सीखते हैं": "how do children learn"},
		toRegional: map[string]string{"through play": "खेल के माध्यम से"},
	}

	uc := newPipelineUsecase(chat, vs, translate, &storageStub{})

	resp := uc.ProcessQuery(context.Background(), entity.Query{
		Text:     "बच्चे कैसे सीखते हैं",
		Language: entity.LanguageHI,
		Audience: entity.AudienceTeacher,
		Format:   entity.FormatText,
	})

	require.Equal(t, entity.StatusSuccess, resp.Status)
	assert.Equal(t, "खेल के माध्यम से", resp.Text)
	assert.Equal(t, entity.LanguageHI, resp.Language)
	assert.Equal(t, entity.FormatText, resp.Format)
	assert.Empty(t, resp.AudioURL)
}

func TestProcessQuery_VoiceInForcesVoiceOut(t *testing.T) {
	chat := &chatModelStub{respond: func(int, []entity.Message) (string, error) {
		return "spoken answer", nil
	}}
	vs := &vectorStoreStub{chunks: []entity.RetrievedChunk{
		chunk("excerpt", "a.pdf", "1", 0.9),
	}}
	translate := &translateStub{transcript: "what is phonics"}
	storage := &storageStub{}

	uc := newPipelineUsecase(chat, vs, translate, storage)

	resp := uc.ProcessQuery(context.Background(), entity.Query{
		AudioURL: "https://example.com/question.mp3",
		Language: entity.LanguageEN,
		Audience: entity.AudienceTeacher,
		Format:   entity.FormatText, // overridden for spoken input
	})

	require.Equal(t, entity.StatusSuccess, resp.Status)
	assert.Equal(t, entity.FormatAudio, resp.Format)
	assert.True(t, strings.HasPrefix(resp.AudioURL, "https://storage.test.local/audio-output_"), resp.AudioURL)
	assert.Equal(t, []string{"spoken answer"}, translate.ttsCalls)
	require.Len(t, storage.uploads, 1)
	for _, data := range storage.uploads {
		assert.Equal(t, []byte("mp3-bytes"), data)
	}
}

func TestProcessQuery_AudioRequestedWithText(t *testing.T) {
	chat := &chatModelStub{respond: func(int, []entity.Message) (string, error) {
		return "an answer", nil
	}}
	vs := &vectorStoreStub{chunks: []entity.RetrievedChunk{
		chunk("excerpt", "a.pdf", "1", 0.9),
	}}
	translate := &translateStub{}
	storage := &storageStub{}

	uc := newPipelineUsecase(chat, vs, translate, storage)

	resp := uc.ProcessQuery(context.Background(), entity.Query{
		Text:     "what is phonics",
		Language: entity.LanguageEN,
		Audience: entity.AudienceTeacher,
		Format:   entity.FormatAudio,
	})

	require.Equal(t, entity.StatusSuccess, resp.Status)
	assert.Equal(t, "an answer", resp.Text)
	assert.Equal(t, entity.FormatAudio, resp.Format)
	assert.NotEmpty(t, resp.AudioURL)
}

func TestProcessQuery_AudioWithoutProviders(t *testing.T) {
	chat := &chatModelStub{respond: func(int, []entity.Message) (string, error) {
		return "an answer", nil
	}}
	vs := &vectorStoreStub{chunks: []entity.RetrievedChunk{
		chunk("excerpt", "a.pdf", "1", 0.9),
	}}

	// translation and storage disabled
	uc := newTestUsecase(chat, vs, newHistoryStub(), testEngineConfig())

	resp := uc.ProcessQuery(context.Background(), entity.Query{
		Text:     "what is phonics",
		Language: entity.LanguageEN,
		Audience: entity.AudienceTeacher,
		Format:   entity.FormatAudio,
	})

	assert.Equal(t, entity.StatusUpstreamUnavailable, resp.Status)
	assert.NotEmpty(t, resp.ErrMessage)
}
