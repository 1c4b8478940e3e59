package query

import (
	"strings"

	"github.com/sakhi-dev/sakhi-backend/internal/entity"
)

// contextPlaceholder is the slot in activity prompt templates the rendered
// context block is substituted into.
const contextPlaceholder = "{contexts}"

// systemPromptFor builds the audience's system message with the context
// block substituted in.
func (uc *QueryUsecase) systemPromptFor(audience entity.Audience, contextBlock string) entity.Message {
	template := uc.prompts.ActivityPrompt(string(audience))
	return entity.SystemMessage(strings.ReplaceAll(template, contextPlaceholder, contextBlock))
}

// composeMessages assembles the final provider payload: system message
// first, then the (already windowed) history in chronological order, then
// the new user message. Composition is deterministic; identical inputs
// produce identical sequences.
func composeMessages(system entity.Message, history []entity.Message, user entity.Message) []entity.Message {
	messages := make([]entity.Message, 0, len(history)+2)
	messages = append(messages, system)
	messages = append(messages, history...)
	messages = append(messages, user)
	return messages
}
