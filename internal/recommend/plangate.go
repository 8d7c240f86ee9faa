package recommend

import "github.com/placelift/place-audit/internal/model"

// Locked placeholders substituted for gated rewrite fields on the free
// plan. Fixed strings; clients key upgrade prompts off them.
const (
	LockedDescription = "잠긴 항목입니다. 프로 플랜에서 맞춤 소개글을 확인할 수 있습니다."
	LockedDirections  = "잠긴 항목입니다. 프로 플랜에서 맞춤 길안내 문구를 확인할 수 있습니다."
)

// Free-plan visibility limits.
const (
	freeKeywords = 3
	freeTodos    = 2
	freeNotes    = 1
)

// ApplyPlanGate redacts a recommendation according to the subscription
// tier. The input is never mutated: pro returns an equal copy, free
// returns a new truncated structure. Scores are never gated.
func ApplyPlanGate(plan model.Plan, r model.RecommendResult) model.RecommendResult {
	out := model.RecommendResult{
		Keywords5:       append([]model.KeywordPick(nil), r.Keywords5...),
		Rewrite:         r.Rewrite,
		TodoTop5:        append([]model.TodoItem(nil), r.TodoTop5...),
		ComplianceNotes: append([]string(nil), r.ComplianceNotes...),
	}
	if plan == model.PlanPro {
		return out
	}

	if len(out.Keywords5) > freeKeywords {
		out.Keywords5 = out.Keywords5[:freeKeywords]
	}
	if len(out.TodoTop5) > freeTodos {
		out.TodoTop5 = out.TodoTop5[:freeTodos]
	}
	if len(out.ComplianceNotes) > freeNotes {
		out.ComplianceNotes = out.ComplianceNotes[:freeNotes]
	}
	out.Rewrite = model.Rewrite{
		Description: LockedDescription,
		Directions:  LockedDirections,
	}
	return out
}
