package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sakhi-dev/sakhi-backend/internal/entity"
	"github.com/sakhi-dev/sakhi-backend/internal/pkg/logger"
	"github.com/sakhi-dev/sakhi-backend/internal/repository"
	"go.uber.org/zap"
)

// noKnowledgeAnswer is the fixed terminal response for an empty filtered
// context. It is a successful outcome, not an error, and the chat model is
// never invoked for it.
const noKnowledgeAnswer = "I'm sorry, but I am not currently trained with relevant documents to provide a specific answer for your question."

// answerOneShot is the stateless retrieval path: intent check, retrieve,
// compose, invoke. No history is read or written.
func (uc *QueryUsecase) answerOneShot(ctx context.Context, query string, audience entity.Audience) entity.AnswerResult {
	shortcut, err := uc.checkBotIntent(ctx, query, audience)
	if err != nil {
		return resultFromError(err)
	}
	if shortcut != "" {
		return entity.SuccessAnswer(shortcut)
	}

	indexID, err := uc.indexFor(audience)
	if err != nil {
		return resultFromError(err)
	}

	contextBlock, err := uc.retrieveContext(ctx, query, indexID)
	if err != nil {
		return resultFromError(err)
	}
	if contextBlock == "" {
		ctxzap.Info(ctx, "no usable context, returning fixed answer")
		return entity.SuccessAnswer(noKnowledgeAnswer)
	}

	messages := []entity.Message{
		uc.systemPromptFor(audience, contextBlock),
		entity.UserMessage(query),
	}

	answer, err := uc.invokeChatModel(ctx, messages)
	if err != nil {
		return resultFromError(err)
	}

	return entity.SuccessAnswer(answer)
}

// answerConversational adds session history: prior turns are windowed into
// the prompt, retrieval runs on a condensed search intent, and a successful
// turn is appended to the transcript asynchronously.
func (uc *QueryUsecase) answerConversational(ctx context.Context, query string, q entity.Query) entity.AnswerResult {
	shortcut, err := uc.checkBotIntent(ctx, query, q.Audience)
	if err != nil {
		return resultFromError(err)
	}
	if shortcut != "" {
		return entity.SuccessAnswer(shortcut)
	}

	indexID, err := uc.indexFor(q.Audience)
	if err != nil {
		return resultFromError(err)
	}

	sessionKey := repository.HistoryKey(q.Source, q.ConsumerID, string(q.Audience))
	ctx = logger.AddFields(ctx, zap.String("session_key", sessionKey))

	prior, err := uc.history.Read(ctx, sessionKey)
	if err != nil {
		return resultFromError(err)
	}

	formatted := formatPreviousMessages(prior)

	searchQuery, err := uc.condenseSearchIntent(ctx, query, formatted)
	if err != nil {
		return resultFromError(err)
	}
	ctxzap.Info(ctx, "search intent condensed", zap.String("search_intent", searchQuery))

	contextBlock, err := uc.retrieveContext(ctx, searchQuery, indexID)
	if err != nil {
		return resultFromError(err)
	}
	if contextBlock == "" {
		ctxzap.Info(ctx, "no usable context, returning fixed answer")
		return entity.SuccessAnswer(noKnowledgeAnswer)
	}

	messages := composeMessages(
		uc.systemPromptFor(q.Audience, contextBlock),
		historyWindow(formatted, uc.cfg.MaxMessages),
		entity.UserMessage(query),
	)

	answer, err := uc.invokeChatModel(ctx, messages)
	if err != nil {
		return resultFromError(err)
	}

	// Persist the turn without blocking the response. Concurrent turns on
	// one session key race read-modify-write and the last writer wins; see
	// the HistoryStore contract.
	persistCtx := ctxzap.ToContext(context.Background(), ctxzap.Extract(ctx))
	go uc.appendTurn(persistCtx, sessionKey, query, answer)

	return entity.SuccessAnswer(answer)
}

// invokeChatModel calls the chat provider with the composed sequence. No
// retry: failures surface to the caller with their normalized status. The
// model's trailing semicolons are an artifact of the prompt format and are
// stripped.
func (uc *QueryUsecase) invokeChatModel(ctx context.Context, messages []entity.Message) (string, error) {
	response, err := uc.chatModel.Invoke(ctx, messages)
	if err != nil {
		return "", err
	}

	ctxzap.Info(ctx, "llm response", zap.Int("response_length", len(response)))
	return strings.Trim(response, ";"), nil
}

// appendTurn re-reads the full transcript, appends the new user/assistant
// pair and writes it back with a refreshed TTL. Windowing never happens
// here; the transcript is stored whole.
func (uc *QueryUsecase) appendTurn(ctx context.Context, sessionKey, userText, assistantText string) {
	transcript, err := uc.history.Read(ctx, sessionKey)
	if err != nil {
		ctxzap.Error(ctx, "read transcript for update", zap.Error(err))
		return
	}

	transcript = append(transcript,
		entity.UserMessage(userText),
		entity.AssistantMessage(strings.TrimSpace(assistantText)),
	)

	if err := uc.history.Write(ctx, sessionKey, transcript, uc.historyTTL); err != nil {
		ctxzap.Error(ctx, "write transcript", zap.Error(err))
		return
	}

	ctxzap.Debug(ctx, "transcript updated", zap.Int("message_count", len(transcript)))
}

func (uc *QueryUsecase) indexFor(audience entity.Audience) (string, error) {
	indexID, ok := uc.indices[string(audience)]
	if !ok || indexID == "" {
		return "", fmt.Errorf("no vector index configured for audience %q", audience)
	}
	return indexID, nil
}

func resultFromError(err error) entity.AnswerResult {
	return entity.FailedAnswer(entity.StatusFromError(err), entity.ChainedErrorMessage(err))
}
