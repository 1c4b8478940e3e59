package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PromptConfig holds the system-prompt templates of the engine. Activity and
// bot prompts are keyed by audience; the "default" key is the fallback
// persona. Activity templates must contain the {contexts} placeholder.
type PromptConfig struct {
	// IntentPrompt asks the model whether a query is about the assistant
	// itself; the model is expected to answer a literal Yes or No.
	IntentPrompt string `json:"intent_prompt"`
	// ChatIntentPrompt condenses a conversation into a focused search query.
	ChatIntentPrompt string            `json:"chat_intent_prompt"`
	ActivityPrompts  map[string]string `json:"activity_prompts"`
	BotPrompts       map[string]string `json:"bot_prompts"`
}

// ActivityPrompt returns the audience's system-prompt template, falling back
// to the generic persona.
func (p PromptConfig) ActivityPrompt(audience string) string {
	if tpl, ok := p.ActivityPrompts[audience]; ok && tpl != "" {
		return tpl
	}
	return p.ActivityPrompts["default"]
}

// BotPrompt returns the audience's persona prompt for bot-intent answers,
// falling back to the generic persona.
func (p PromptConfig) BotPrompt(audience string) string {
	if tpl, ok := p.BotPrompts[audience]; ok && tpl != "" {
		return tpl
	}
	return p.BotPrompts["default"]
}

var defaultPrompts = PromptConfig{
	IntentPrompt: "You are a classifier. Answer with a single word, Yes or No: " +
		"is the user's message about you, the assistant, your identity or your abilities, " +
		"rather than a question about the document corpus?",
	ChatIntentPrompt: "Given the user's previous interactions, synthesize a precise English " +
		"search query (typically 5-10 words) that can be used to find the most relevant documents. " +
		"Respond with the query only.",
	ActivityPrompts: map[string]string{
		"default": "You are a helpful assistant. Answer the question using only the sources below. " +
			"If the sources do not contain the answer, say that you do not know.\n\nSources:\n{contexts}",
		"teacher": "You are Sakhi, an assistant for teachers. Ground every answer in the excerpts " +
			"below and cite the source file and page. Keep answers practical for classroom use.\n\nSources:\n{contexts}",
		"parent": "You are Sakhi, an assistant for parents of young children. Answer simply and " +
			"warmly using only the excerpts below.\n\nSources:\n{contexts}",
	},
	BotPrompts: map[string]string{
		"default": "You are Sakhi, a friendly assistant that answers questions about early childhood " +
			"education. Briefly introduce yourself and what you can help with.",
	},
}

func loadPrompts(cfg *Config) error {
	promptsPath := filepath.Join("internal", "config", "prompts.json")

	if _, err := os.Stat(promptsPath); os.IsNotExist(err) {
		fmt.Printf("Warning: prompts file not found at %s, using default prompts\n", promptsPath)
		cfg.Prompts = defaultPrompts
		return nil
	}

	data, err := os.ReadFile(promptsPath)
	if err != nil {
		return fmt.Errorf("read prompts file: %w", err)
	}

	var prompts PromptConfig
	if err := json.Unmarshal(data, &prompts); err != nil {
		return fmt.Errorf("parse prompts JSON: %w", err)
	}

	if len(prompts.ActivityPrompts) == 0 || prompts.ActivityPrompts["default"] == "" {
		return fmt.Errorf("prompts file must define a default activity prompt: %s", promptsPath)
	}

	if prompts.IntentPrompt == "" {
		prompts.IntentPrompt = defaultPrompts.IntentPrompt
	}
	if prompts.ChatIntentPrompt == "" {
		prompts.ChatIntentPrompt = defaultPrompts.ChatIntentPrompt
	}
	if len(prompts.BotPrompts) == 0 {
		prompts.BotPrompts = defaultPrompts.BotPrompts
	}

	cfg.Prompts = prompts

	fmt.Printf("Loaded %d activity prompts from %s\n", len(prompts.ActivityPrompts), promptsPath)
	return nil
}
