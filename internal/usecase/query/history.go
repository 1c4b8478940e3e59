package query

import (
	"unicode/utf8"

	"github.com/sakhi-dev/sakhi-backend/internal/entity"
)

// Two history windowing policies exist and they are NOT interchangeable:
// they pick different truncation points on the same transcript.
// historyWindow (message count) is the canonical policy used by the engine;
// historyWindowByTokens is the alternative bound kept for deployments that
// need a hard token budget. Switching policies is a config-surface decision,
// not a drop-in swap.

// historyWindow returns at most maxTurns*2 of the most recent prior
// messages (user+assistant pairs), in original chronological order. Older
// messages are silently dropped; there is no summarization.
func historyWindow(messages []entity.Message, maxTurns int) []entity.Message {
	limit := maxTurns * 2
	if limit <= 0 {
		return []entity.Message{}
	}
	if len(messages) <= limit {
		return messages
	}
	return messages[len(messages)-limit:]
}

// historyWindowByTokens walks the transcript newest-first, accumulating
// estimated token cost, and stops before exceeding maxTokens minus the
// system prompt's cost. The kept suffix is returned in chronological order.
func historyWindowByTokens(messages []entity.Message, system entity.Message, maxTokens int) []entity.Message {
	budget := maxTokens - estimateTokens(system)

	total := 0
	start := len(messages)
	for i := len(messages) - 1; i >= 0; i-- {
		cost := estimateTokens(messages[i])
		if total+cost > budget {
			break
		}
		total += cost
		start = i
	}

	return messages[start:]
}

// estimateTokens approximates a message's token cost: one token per four
// runes of content plus the fixed per-message framing overhead of the chat
// format. An estimate is sufficient here, the bound only has to be
// conservative and stable.
func estimateTokens(m entity.Message) int {
	const perMessageOverhead = 4
	return utf8.RuneCountInString(m.Content)/4 + perMessageOverhead
}

// formatPreviousMessages prepares stored history for prompt injection:
// prior user turns are prefixed "Question: " so the model can tell them
// apart from the current question; assistant turns pass through unchanged.
// System messages never occur in stored transcripts.
func formatPreviousMessages(messages []entity.Message) []entity.Message {
	formatted := make([]entity.Message, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case entity.RoleUser:
			formatted = append(formatted, entity.UserMessage("Question: "+m.Content))
		case entity.RoleAssistant:
			formatted = append(formatted, m)
		}
	}
	return formatted
}
