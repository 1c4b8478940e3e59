package entity

import "fmt"

// Audience selects the persona (system prompt) and document index a query is
// answered against.
type Audience string

const (
	AudienceTeacher Audience = "teacher"
	AudienceParent  Audience = "parent"
)

func (a Audience) Validate() error {
	switch a {
	case AudienceTeacher, AudienceParent:
		return nil
	default:
		return fmt.Errorf("unknown audience type: %s", a)
	}
}

// Language is an ISO 639-1 code of a supported input/output language.
type Language string

const (
	LanguageEN  Language = "en"
	LanguageBN  Language = "bn"
	LanguageGU  Language = "gu"
	LanguageHI  Language = "hi"
	LanguageKN  Language = "kn"
	LanguageML  Language = "ml"
	LanguageMR  Language = "mr"
	LanguageOR  Language = "or"
	LanguagePA  Language = "pa"
	LanguageTA  Language = "ta"
	LanguageTE  Language = "te"
)

func (l Language) Validate() error {
	switch l {
	case LanguageEN, LanguageBN, LanguageGU, LanguageHI, LanguageKN,
		LanguageML, LanguageMR, LanguageOR, LanguagePA, LanguageTA, LanguageTE:
		return nil
	default:
		return fmt.Errorf("unknown input language: %s", l)
	}
}

// OutputFormat selects whether the answer is returned as text only or is
// additionally vocalized and uploaded as an audio file.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatAudio OutputFormat = "audio"
)

func (f OutputFormat) Validate() error {
	switch f {
	case FormatText, FormatAudio:
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", f)
	}
}

// Query is a single incoming question. Exactly one of Text or AudioURL is
// expected. Source and ConsumerID identify the calling channel and end user
// and, together with the audience, derive the conversation session key.
type Query struct {
	Text       string
	AudioURL   string
	Language   Language
	Audience   Audience
	Format     OutputFormat
	Source     string
	ConsumerID string
}
