// Package recommend generates the rewritten copy, the fixed 5-slot
// keyword plan, and the prioritized action list, then applies the plan
// gate. Generation is template-driven and deterministic; it completes
// with generic fallbacks even from a near-empty profile.
package recommend

import (
	"fmt"
	"strings"

	"github.com/placelift/place-audit/internal/industry"
	"github.com/placelift/place-audit/internal/model"
)

// Fixed thresholds for trust points and todo triggers.
const (
	reviewTrustFloor = 30
	photoTrustFloor  = 10
	menuFloor        = 3
)

// Build assembles the full recommendation for a profile. Keyword
// volumes are annotated separately; Build itself performs no I/O.
func Build(p *model.PlaceProfile, scores model.ScoreResult, ind *industry.Profile) model.RecommendResult {
	region := RegionToken(firstNonEmpty(p.RoadAddress, p.Address))
	services := topServices(p, ind)
	trust := trustPoints(p, ind)

	tmplIn := industry.TemplateInput{
		Name:        p.Name,
		Region:      region,
		TopServices: services,
		TrustPoints: trust,
	}

	return model.RecommendResult{
		Keywords5: keywordPlan(region, services, ind),
		Rewrite: model.Rewrite{
			Description: ind.Description(tmplIn),
			Directions:  ind.Directions(tmplIn),
		},
		TodoTop5:        todoList(p),
		ComplianceNotes: complianceNotes(ind),
	}
}

// topServices intersects the profile's combined text with the industry
// service vocabulary, preserving vocabulary order, up to 3 entries.
func topServices(p *model.PlaceProfile, ind *industry.Profile) []string {
	text := p.CombinedText()
	var out []string
	for _, svc := range ind.ServiceVocab {
		if strings.Contains(text, svc) {
			out = append(out, svc)
			if len(out) == 3 {
				break
			}
		}
	}
	return out
}

// trustPoints derives up to 3 trust statements: quantitative thresholds
// first, industry fillers when quantitative signals are absent.
func trustPoints(p *model.PlaceProfile, ind *industry.Profile) []string {
	var out []string
	if p.Reviews.VisitorCount >= reviewTrustFloor {
		out = append(out, fmt.Sprintf("방문자 리뷰 %d건이 증명하는 만족도", p.Reviews.VisitorCount))
	}
	if p.Photos.Count >= photoTrustFloor {
		out = append(out, fmt.Sprintf("실제 사진 %d장으로 미리 확인", p.Photos.Count))
	}
	// Quantitative signals absent: fall back to industry fillers so the
	// list is never empty.
	if len(out) == 0 {
		for _, filler := range ind.TrustFillers {
			out = append(out, filler)
			if len(out) == 3 {
				break
			}
		}
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

// keywordPlan builds the fixed 5-slot plan: 2 core, 2 signature,
// 1 conversion.
func keywordPlan(region string, services []string, ind *industry.Profile) []model.KeywordPick {
	used := make(map[string]bool)
	intents := ind.IntentPhrases
	picks := make([]model.KeywordPick, 0, 5)

	nextIntent := func() string {
		for _, phrase := range intents {
			if !used[phrase] {
				used[phrase] = true
				return phrase
			}
		}
		return ind.ConversionDefault
	}

	// 2 core: region + category intent phrases.
	for i := 0; i < 2; i++ {
		phrase := nextIntent()
		picks = append(picks, model.KeywordPick{
			Keyword: joinRegion(region, phrase),
			Role:    model.RoleCore,
			Reason:  "지역과 업종 검색 의도를 결합한 기본 노출 키워드",
		})
	}

	// 2 signature: region + top service, intent fallback.
	for i := 0; i < 2; i++ {
		var kw, reason string
		if i < len(services) {
			kw = joinRegion(region, services[i])
			reason = "우리 업체만의 대표 서비스를 내세우는 키워드"
		} else {
			kw = joinRegion(region, nextIntent())
			reason = "대표 서비스 신호가 없어 차순위 검색 의도로 대체"
		}
		picks = append(picks, model.KeywordPick{Keyword: kw, Role: model.RoleSignature, Reason: reason})
	}

	// 1 conversion: first urgency/utility intent, fixed default fallback.
	conv := ""
	for _, phrase := range intents {
		if used[phrase] {
			continue
		}
		for _, marker := range industry.ConversionMarkers {
			if strings.Contains(phrase, marker) {
				conv = phrase
				break
			}
		}
		if conv != "" {
			break
		}
	}
	if conv == "" {
		conv = ind.ConversionDefault
	}
	picks = append(picks, model.KeywordPick{
		Keyword: joinRegion(region, conv),
		Role:    model.RoleConversion,
		Reason:  "바로 방문·예약으로 이어지는 전환형 키워드",
	})

	return picks
}

// Fixed remediation actions, evaluated in priority order.
var todoFillers = []model.TodoItem{
	{Action: "소식 게시글 주 1회 올리기", Impact: model.ImpactLow, How: "신메뉴, 이벤트, 휴무 안내 등 짧은 소식을 꾸준히 올려 활성 업체임을 보여주세요."},
	{Action: "리뷰 답글 달기", Impact: model.ImpactLow, How: "최근 리뷰부터 순서대로, 구체적인 내용을 언급하며 답글을 남겨주세요."},
	{Action: "영업시간·휴무일 최신화", Impact: model.ImpactLow, How: "명절·임시 휴무를 포함해 영업시간 정보를 다시 확인해 주세요."},
	{Action: "가격 정보 공개하기", Impact: model.ImpactLow, How: "대표 메뉴·서비스의 가격을 공개하면 방문 결정이 빨라집니다."},
	{Action: "예약 기능 연결하기", Impact: model.ImpactLow, How: "네이버 예약을 연결해 검색에서 바로 예약으로 이어지게 해주세요."},
}

// todoList evaluates missing or weak signals in fixed priority order
// and pads with low-impact fillers to exactly 5 entries.
func todoList(p *model.PlaceProfile) []model.TodoItem {
	var todos []model.TodoItem

	if p.Directions == "" {
		todos = append(todos, model.TodoItem{
			Action: "찾아오는 길 작성하기",
			Impact: model.ImpactHigh,
			How:    "가까운 역·정류장 기준 도보 시간, 주차 가능 여부, 건물 입구 설명을 포함해 작성하세요.",
		})
	}
	if p.Description == "" {
		todos = append(todos, model.TodoItem{
			Action: "업체 소개글 작성하기",
			Impact: model.ImpactHigh,
			How:    "대표 서비스 2~3개와 차별점을 2문단 이상으로 소개하고, 문단을 나눠 읽기 쉽게 쓰세요.",
		})
	}
	if p.Photos.Count < photoTrustFloor {
		todos = append(todos, model.TodoItem{
			Action: "사진 10장 이상 올리기",
			Impact: model.ImpactMid,
			How:    "외관, 내부, 대표 메뉴·서비스 사진을 고르게 올려주세요. 최신 사진일수록 좋습니다.",
		})
	}
	if len(p.Menus) < menuFloor {
		todos = append(todos, model.TodoItem{
			Action: "메뉴·가격 3개 이상 등록하기",
			Impact: model.ImpactMid,
			How:    "대표 메뉴부터 이름과 가격을 등록하세요. 사진을 함께 올리면 효과가 큽니다.",
		})
	}
	if p.Reviews.VisitorCount < reviewTrustFloor {
		todos = append(todos, model.TodoItem{
			Action: "방문자 리뷰 모으기",
			Impact: model.ImpactMid,
			How:    "영수증 리뷰 안내문을 비치하고, 방문 고객에게 리뷰 참여를 요청하세요.",
		})
	}

	for _, filler := range todoFillers {
		if len(todos) >= 5 {
			break
		}
		todos = append(todos, filler)
	}
	return todos[:5]
}

func complianceNotes(ind *industry.Profile) []string {
	notes := []string{
		fmt.Sprintf("다음 표현은 표시광고법·심의 기준 위반 소지가 있어 제외했습니다: %s",
			strings.Join(ind.BannedPhrases, ", ")),
	}
	if ind.Vertical == model.VerticalHealth {
		notes = append(notes, "의료·건강 업종의 광고 문구는 게시 전 사전심의 대상인지 확인이 필요합니다.")
	}
	notes = append(notes, "대가를 받고 작성된 리뷰에는 경제적 이해관계 표시가 필요합니다.")
	return notes
}

func joinRegion(region, phrase string) string {
	if region == "" {
		return phrase
	}
	return region + " " + phrase
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
