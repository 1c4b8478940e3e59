package entity

// Wire types for OpenAI-compatible chat-completion providers.

type ChatCompletionRequest struct {
	Model       string    `json:"model,omitempty"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

type ChatCompletionChoice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type ChatCompletionResponse struct {
	Choices []ChatCompletionChoice `json:"choices"`
}

// Ollama's native /api/chat response carries a single message.
type OllamaChatResponse struct {
	Message Message `json:"message"`
	Done    bool    `json:"done"`
}
