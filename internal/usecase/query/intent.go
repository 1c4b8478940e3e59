package query

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sakhi-dev/sakhi-backend/internal/entity"
	"go.uber.org/zap"
)

// checkBotIntent decides whether the query is about the assistant itself
// rather than the document corpus. It returns a non-empty shortcut answer
// when the persona path applies, empty when the caller should proceed to
// retrieval. Provider failures propagate; they never silently fall through
// to retrieval.
func (uc *QueryUsecase) checkBotIntent(ctx context.Context, query string, audience entity.Audience) (string, error) {
	if !uc.cfg.EnableBotIntent {
		return "", nil
	}

	verdict, err := uc.chatModel.Invoke(ctx, []entity.Message{
		entity.SystemMessage(uc.prompts.IntentPrompt),
		entity.UserMessage(query),
	})
	if err != nil {
		return "", err
	}

	ctxzap.Info(ctx, "intent response", zap.String("intent_response", verdict))

	if !strings.EqualFold(strings.TrimSpace(verdict), "yes") {
		return "", nil
	}

	// Persona question: answer from the audience's bot prompt alone, no
	// retrieval.
	answer, err := uc.chatModel.Invoke(ctx, []entity.Message{
		entity.SystemMessage(uc.prompts.BotPrompt(string(audience))),
		entity.UserMessage(query),
	})
	if err != nil {
		return "", err
	}

	ctxzap.Info(ctx, "bot persona answer generated", zap.Int("response_length", len(answer)))
	return answer, nil
}

// condenseSearchIntent synthesizes a focused English search query from the
// conversation so far. With no prompt configured the raw query is used.
func (uc *QueryUsecase) condenseSearchIntent(ctx context.Context, query string, history []entity.Message) (string, error) {
	if uc.prompts.ChatIntentPrompt == "" {
		return query, nil
	}

	payload := composeMessages(
		entity.SystemMessage(uc.prompts.ChatIntentPrompt),
		historyWindow(history, uc.cfg.MaxMessages),
		entity.UserMessage(query),
	)

	searchIntent, err := uc.chatModel.Invoke(ctx, payload)
	if err != nil {
		return "", err
	}

	searchIntent = strings.TrimSpace(searchIntent)
	if searchIntent == "" {
		return query, nil
	}

	return searchIntent, nil
}
