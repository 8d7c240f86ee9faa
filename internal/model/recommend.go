package model

// Plan is the subscription tier gating recommendation visibility.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// Valid reports whether the plan is a known tier.
func (p Plan) Valid() bool {
	return p == PlanFree || p == PlanPro
}

// KeywordRole tags a keyword plan slot with its strategic function.
type KeywordRole string

const (
	RoleCore       KeywordRole = "core"
	RoleSignature  KeywordRole = "signature"
	RoleConversion KeywordRole = "conversion"
)

// KeywordPick is one entry of the fixed 5-slot keyword plan.
type KeywordPick struct {
	Keyword string      `json:"keyword"`
	Role    KeywordRole `json:"role"`
	Reason  string      `json:"reason"`
	Volume  string      `json:"volume,omitempty"`
}

// Impact classifies how much a todo action is expected to move the score.
type Impact string

const (
	ImpactHigh Impact = "high"
	ImpactMid  Impact = "mid"
	ImpactLow  Impact = "low"
)

// TodoItem is one prioritized remediation action.
type TodoItem struct {
	Action string `json:"action"`
	Impact Impact `json:"impact"`
	How    string `json:"how"`
}

// Rewrite carries the templated replacement copy.
type Rewrite struct {
	Description string `json:"description"`
	Directions  string `json:"directions"`
}

// RecommendResult is the full recommendation payload before plan gating.
type RecommendResult struct {
	Keywords5       []KeywordPick `json:"keywords5"`
	Rewrite         Rewrite       `json:"rewrite"`
	TodoTop5        []TodoItem    `json:"todo_top5"`
	ComplianceNotes []string      `json:"compliance_notes"`
}
