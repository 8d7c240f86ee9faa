package model

// Grade is a fixed letter grade derived from the total score.
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
)

// ScoreBreakdown holds the independently-capped category scores.
// Discovery is capped at 35, Conversion at 30, Trust at 20, Risk at 15.
// Risk starts at its cap and is deducted from per detected risk.
type ScoreBreakdown struct {
	Discovery  int `json:"discovery"`
	Conversion int `json:"conversion"`
	Trust      int `json:"trust"`
	Risk       int `json:"risk"`
}

// ScoreSignals carries structural findings that accompany the score.
type ScoreSignals struct {
	MissingFields       []string `json:"missing_fields"`
	KeywordStuffingRisk bool     `json:"keyword_stuffing_risk"`
	StalenessRisk       bool     `json:"staleness_risk"`
}

// ScoreResult is the deterministic scoring outcome for one profile.
type ScoreResult struct {
	Total     int            `json:"total"`
	Grade     Grade          `json:"grade"`
	Breakdown ScoreBreakdown `json:"breakdown"`
	Signals   ScoreSignals   `json:"signals"`
}
