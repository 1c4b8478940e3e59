package entity

// Wire types for the Marqo search API.

type MarqoSearchRequest struct {
	Q     string `json:"q"`
	Limit int    `json:"limit"`
}

// MarqoHit is a single search hit. Metadata is a JSON-encoded string holding
// the source file name and page label, mirroring how documents are indexed.
type MarqoHit struct {
	Text     string  `json:"text"`
	Score    float64 `json:"_score"`
	Metadata string  `json:"metadata"`
}

type MarqoSearchResponse struct {
	Hits []MarqoHit `json:"hits"`
}

// ChunkMetadata is the decoded form of MarqoHit.Metadata.
type ChunkMetadata struct {
	FileName  string `json:"file_name"`
	PageLabel string `json:"page_label"`
}
