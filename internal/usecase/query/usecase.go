package query

import (
	"context"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sakhi-dev/sakhi-backend/internal/config"
	"github.com/sakhi-dev/sakhi-backend/internal/entity"
	"github.com/sakhi-dev/sakhi-backend/internal/pkg/media"
	"github.com/sakhi-dev/sakhi-backend/internal/repository"
	"go.uber.org/zap"
)

// QueryUsecase is the retrieval-augmented query engine: it routes intent,
// retrieves and filters context, composes prompts, invokes the chat model
// and maintains conversation history. Each call is an independent unit of
// work; the only shared state is the history store.
type QueryUsecase struct {
	chatModel   ChatModelConnector
	vectorStore VectorStoreConnector
	translate   TranslateConnector
	storage     StorageConnector
	history     repository.HistoryStore
	indices     map[string]string
	prompts     config.PromptConfig
	cfg         config.EngineConfig
	historyTTL  time.Duration
	logger      *zap.Logger
}

// NewUsecase creates the query engine. translate and storage may be nil when
// those capabilities are disabled; chatModel, vectorStore and history are
// required.
func NewUsecase(
	chatModel ChatModelConnector,
	vectorStore VectorStoreConnector,
	translate TranslateConnector,
	storage StorageConnector,
	history repository.HistoryStore,
	indices map[string]string,
	prompts config.PromptConfig,
	cfg config.EngineConfig,
	historyTTL time.Duration,
	logger *zap.Logger,
) *QueryUsecase {
	return &QueryUsecase{
		chatModel:   chatModel,
		vectorStore: vectorStore,
		translate:   translate,
		storage:     storage,
		history:     history,
		indices:     indices,
		prompts:     prompts,
		cfg:         cfg,
		historyTTL:  historyTTL,
		logger:      logger,
	}
}

// ProcessQuery answers a one-shot query: language/audio preprocessing, then
// the retrieval-augmented answer, then postprocessing back into the
// requested language and format.
func (uc *QueryUsecase) ProcessQuery(ctx context.Context, q entity.Query) *entity.QueryResponse {
	return uc.process(ctx, q, func(ctx context.Context, english string) entity.AnswerResult {
		return uc.answerOneShot(ctx, english, q.Audience)
	})
}

// ProcessChat answers a conversational turn: same pipeline as ProcessQuery,
// but retrieval is driven by a condensed search intent over the session
// history and the successful turn is appended to the transcript.
func (uc *QueryUsecase) ProcessChat(ctx context.Context, q entity.Query) *entity.QueryResponse {
	return uc.process(ctx, q, func(ctx context.Context, english string) entity.AnswerResult {
		return uc.answerConversational(ctx, english, q)
	})
}

func (uc *QueryUsecase) process(ctx context.Context, q entity.Query, answer func(context.Context, string) entity.AnswerResult) *entity.QueryResponse {
	if q.Text == "" && q.AudioURL == "" {
		return failedResponse(q, entity.StatusValidationError,
			"Either 'Query Text' or 'Audio URL' should be present")
	}

	isAudioOut := q.Format == entity.FormatAudio

	var english string
	var err error
	if q.Text != "" {
		english, err = uc.inboundText(ctx, q.Text, q.Language)
		if err != nil {
			return failedResponse(q, entity.StatusFromError(err), entity.ChainedErrorMessage(err))
		}
	} else {
		if !media.IsURL(q.AudioURL) && !media.IsBase64(q.AudioURL) {
			return failedResponse(q, entity.StatusValidationError, "Invalid audio input!")
		}
		english, err = uc.inboundVoice(ctx, q.AudioURL, q.Language)
		if err != nil {
			return failedResponse(q, entity.StatusFromError(err), entity.ChainedErrorMessage(err))
		}
		// Spoken questions always get a spoken answer.
		isAudioOut = true
	}

	result := answer(ctx, english)
	if result.Status != entity.StatusSuccess {
		return failedResponse(q, result.Status, result.ErrMessage)
	}

	regional, err := uc.outboundText(ctx, result.Text, q.Language)
	if err != nil {
		return failedResponse(q, entity.StatusUpstreamUnavailable, entity.ChainedErrorMessage(err))
	}

	resp := &entity.QueryResponse{
		Text:     regional,
		Language: q.Language,
		Format:   entity.FormatText,
		Status:   entity.StatusSuccess,
	}

	if isAudioOut {
		audioURL, err := uc.synthesizeAudio(ctx, regional, q.Language)
		if err != nil {
			ctxzap.Error(ctx, "audio synthesis failed", zap.Error(err))
			return failedResponse(q, entity.StatusUpstreamUnavailable, entity.ChainedErrorMessage(err))
		}
		resp.AudioURL = audioURL
		resp.Format = entity.FormatAudio
	}

	return resp
}

// inboundText brings the user's text into English for retrieval and
// generation. Without a translation provider (or for English input) the text
// passes through unchanged.
func (uc *QueryUsecase) inboundText(ctx context.Context, text string, lang entity.Language) (string, error) {
	if uc.translate == nil || lang == entity.LanguageEN {
		return text, nil
	}
	return uc.translate.TranslateText(ctx, text, string(lang), string(entity.LanguageEN))
}

// inboundVoice transcribes spoken input and brings it into English.
func (uc *QueryUsecase) inboundVoice(ctx context.Context, audio string, lang entity.Language) (string, error) {
	if uc.translate == nil {
		return "", entity.ErrUpstreamUnavailable
	}

	transcript, err := uc.translate.SpeechToText(ctx, audio, string(lang))
	if err != nil {
		return "", err
	}

	return uc.inboundText(ctx, transcript, lang)
}

func (uc *QueryUsecase) outboundText(ctx context.Context, english string, lang entity.Language) (string, error) {
	if uc.translate == nil || lang == entity.LanguageEN {
		return english, nil
	}
	return uc.translate.TranslateText(ctx, english, string(entity.LanguageEN), string(lang))
}

// synthesizeAudio vocalizes the answer, uploads the MP3 and returns its
// public URL.
func (uc *QueryUsecase) synthesizeAudio(ctx context.Context, text string, lang entity.Language) (string, error) {
	if uc.translate == nil || uc.storage == nil {
		return "", entity.ErrUpstreamUnavailable
	}

	audio, err := uc.translate.TextToSpeech(ctx, text, string(lang))
	if err != nil {
		return "", err
	}

	name := media.TempFilename("mp3", "audio-output")
	if err := uc.storage.Upload(ctx, name, audio); err != nil {
		return "", err
	}

	url, err := uc.storage.PublicURL(name)
	if err != nil {
		return "", err
	}

	ctxzap.Debug(ctx, "audio answer uploaded", zap.String("url", url))
	return url, nil
}

func failedResponse(q entity.Query, status entity.AnswerStatus, message string) *entity.QueryResponse {
	return &entity.QueryResponse{
		Language:   q.Language,
		Format:     q.Format,
		Status:     status,
		ErrMessage: message,
	}
}
