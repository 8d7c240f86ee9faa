package model

// Vertical is the top level of the two-level industry taxonomy.
type Vertical string

const (
	VerticalFood      Vertical = "외식"
	VerticalBeauty    Vertical = "뷰티"
	VerticalHealth    Vertical = "의료건강"
	VerticalEducation Vertical = "교육"
	VerticalService   Vertical = "생활서비스"
)

// IndustryClassification is the outcome of rule-based industry voting.
type IndustryClassification struct {
	Subcategory string   `json:"subcategory"`
	Vertical    Vertical `json:"vertical"`
	Confidence  float64  `json:"confidence"`
	Reasons     []string `json:"reasons"`
}
