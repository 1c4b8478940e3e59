package query

import "github.com/sakhi-dev/sakhi-backend/internal/entity"

// QueryRequest is the request body of POST /v1/query and POST /v1/chat.
type QueryRequest struct {
	Input  QueryInput      `json:"input"`
	Output QueryOutputSpec `json:"output"`
}

type QueryInput struct {
	Language     string `json:"language"`
	Text         string `json:"text"`
	Audio        string `json:"audio"`
	AudienceType string `json:"audienceType"`
}

type QueryOutputSpec struct {
	Format string `json:"format"`
}

// QueryResponse is the success body; errors are plain error responses with
// the mapped HTTP status.
type QueryResponse struct {
	Output ResponseOutput `json:"output"`
}

type ResponseOutput struct {
	Text     string `json:"text"`
	Audio    string `json:"audio"`
	Language string `json:"language"`
	Format   string `json:"format"`
}

// toQuery applies the request defaults: English, teacher audience, text
// output. Source and consumer id come from headers, not the body.
func toQuery(req *QueryRequest, source, consumerID string) entity.Query {
	q := entity.Query{
		Text:       req.Input.Text,
		AudioURL:   req.Input.Audio,
		Language:   entity.Language(req.Input.Language),
		Audience:   entity.Audience(req.Input.AudienceType),
		Format:     entity.OutputFormat(req.Output.Format),
		Source:     source,
		ConsumerID: consumerID,
	}

	if q.Language == "" {
		q.Language = entity.LanguageEN
	}
	if q.Audience == "" {
		q.Audience = entity.AudienceTeacher
	}
	if q.Format == "" {
		q.Format = entity.FormatText
	}

	return q
}

func toResponseDTO(resp *entity.QueryResponse) *QueryResponse {
	return &QueryResponse{
		Output: ResponseOutput{
			Text:     resp.Text,
			Audio:    resp.AudioURL,
			Language: string(resp.Language),
			Format:   string(resp.Format),
		},
	}
}
