package entity

// Wire types for the translation/speech pipeline service. Audio payloads are
// base64 encoded on the wire.

type TranslateTextRequest struct {
	Input          string `json:"input"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

type TranslateTextResponse struct {
	Output string `json:"output"`
}

type SpeechToTextRequest struct {
	AudioContent string `json:"audio_content,omitempty"`
	AudioURL     string `json:"audio_url,omitempty"`
	Language     string `json:"language"`
}

type SpeechToTextResponse struct {
	Transcript string `json:"transcript"`
}

type TextToSpeechRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type TextToSpeechResponse struct {
	AudioContent string `json:"audio_content"`
}
