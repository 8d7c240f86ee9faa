package model

import "time"

// InputMode discriminates how the caller identifies the business.
type InputMode string

const (
	ModePlaceURL  InputMode = "place_url"
	ModeBizSearch InputMode = "biz_search"
)

// Depth selects how aggressively the cascade works per signal.
type Depth string

const (
	DepthStandard Depth = "standard"
	DepthDeep     Depth = "deep"
)

// AnalyzeInput is the discriminated input union of an analysis request.
type AnalyzeInput struct {
	Mode     InputMode `json:"mode"`
	PlaceURL string    `json:"place_url,omitempty"`
	Name     string    `json:"name,omitempty"`
	Address  string    `json:"address,omitempty"`
	Phone    string    `json:"phone,omitempty"`
}

// AnalyzeOptions tunes a single analysis request.
type AnalyzeOptions struct {
	Plan     Plan   `json:"plan"`
	Language string `json:"language"`
	Depth    Depth  `json:"depth"`
	Debug    bool   `json:"debug,omitempty"`
}

// AnalyzeRequest is the POST /v1/analyze body.
type AnalyzeRequest struct {
	Input   AnalyzeInput   `json:"input"`
	Options AnalyzeOptions `json:"options"`
}

// Meta describes the request context echoed back in the response.
type Meta struct {
	RequestID  string    `json:"request_id"`
	Mode       InputMode `json:"mode"`
	Plan       Plan      `json:"plan"`
	PlaceURL   string    `json:"place_url"`
	Confidence float64   `json:"confidence"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// AnalyzeResponse is the successful analysis envelope.
type AnalyzeResponse struct {
	OK        bool                   `json:"ok"`
	Meta      Meta                   `json:"meta"`
	Industry  IndustryClassification `json:"industry"`
	Place     PlaceProfile           `json:"place"`
	Scores    ScoreResult            `json:"scores"`
	Recommend RecommendResult        `json:"recommend"`

	// Trail is populated only when options.debug is set.
	Trail []TrailEntry `json:"trail,omitempty"`
}

// BlockedResponse reports detected access restriction. Returned with
// HTTP 200; blocking is an observation, never an error.
type BlockedResponse struct {
	OK      bool   `json:"ok"`
	Blocked bool   `json:"blocked"`
	Message string `json:"message"`
	Snippet string `json:"snippet"`
}
