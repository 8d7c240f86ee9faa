package industry

import (
	"fmt"
	"strings"

	"github.com/placelift/place-audit/internal/model"
)

// TemplateInput feeds the industry copy templates. Every field may be
// thin or empty; templates always render a complete section.
type TemplateInput struct {
	Name         string
	Region       string
	TopServices  []string
	TrustPoints  []string
	CallToAction string
}

// Profile bundles the content assets for one classified industry:
// template functions, the service-keyword vocabulary, intent phrases
// for the keyword plan, and the banned-phrase denylist.
type Profile struct {
	Subcategory string
	Vertical    model.Vertical

	// ServiceVocab is scanned in order against profile text to pick
	// top services; order encodes preference.
	ServiceVocab []string
	// IntentPhrases pair with a region token to form search intents.
	IntentPhrases []string
	// ConversionDefault is the fixed fallback conversion phrase.
	ConversionDefault string
	BannedPhrases     []string
	// TrustFillers back the trust-point list when quantitative signals
	// are absent.
	TrustFillers []string

	Description func(TemplateInput) string
	Directions  func(TemplateInput) string
}

// ConversionMarkers flag an intent phrase as urgency/utility oriented.
var ConversionMarkers = []string{"당일", "주차", "예약", "야간", "연중무휴", "24시"}

// commonBanned applies to every industry; vertical lists extend it.
var commonBanned = []string{"최고", "최상", "유일", "1위", "100%", "완벽"}

// ProfileFor returns the content profile for a classification. Every
// subcategory resolves to a profile; unknown ones get the generic one.
func ProfileFor(c model.IndustryClassification) *Profile {
	if p, ok := profiles[c.Subcategory]; ok {
		return p
	}
	return profiles["일반업소"]
}

var profiles = map[string]*Profile{
	"카페": {
		Subcategory:       "카페",
		Vertical:          model.VerticalFood,
		ServiceVocab:      []string{"핸드드립", "디저트", "브런치", "베이커리", "원두판매", "테이크아웃"},
		IntentPhrases:     []string{"카페 추천", "분위기좋은 카페", "디저트 맛집", "주차되는 카페", "당일 케이크 주문"},
		ConversionDefault: "당일 케이크 주문",
		BannedPhrases:     append([]string{"국내 최초"}, commonBanned...),
		TrustFillers:      []string{"직접 내리는 핸드드립 커피", "매일 굽는 디저트"},
		Description:       foodDescription,
		Directions:        genericDirections,
	},
	"음식점": {
		Subcategory:       "음식점",
		Vertical:          model.VerticalFood,
		ServiceVocab:      []string{"점심특선", "코스요리", "단체석", "포장", "배달", "룸"},
		IntentPhrases:     []string{"맛집", "점심 맛집", "회식 장소", "주차되는 식당", "당일 예약 식당"},
		ConversionDefault: "당일 예약 식당",
		BannedPhrases:     append([]string{"원조"}, commonBanned...),
		TrustFillers:      []string{"매일 들여오는 신선한 재료", "정성껏 준비하는 한 상"},
		Description:       foodDescription,
		Directions:        genericDirections,
	},
	"미용실": {
		Subcategory:       "미용실",
		Vertical:          model.VerticalBeauty,
		ServiceVocab:      []string{"커트", "펌", "염색", "클리닉", "두피케어", "드라이"},
		IntentPhrases:     []string{"미용실 추천", "펌 잘하는 곳", "염색 잘하는 곳", "당일 예약 미용실", "주차되는 미용실"},
		ConversionDefault: "당일 예약 미용실",
		BannedPhrases:     append([]string{"연예인 단골"}, commonBanned...),
		TrustFillers:      []string{"1:1 맞춤 상담 후 시술", "시술 전 모발 진단"},
		Description:       beautyDescription,
		Directions:        genericDirections,
	},
	"네일샵": {
		Subcategory:       "네일샵",
		Vertical:          model.VerticalBeauty,
		ServiceVocab:      []string{"젤네일", "패디큐어", "속눈썹", "왁싱", "케어"},
		IntentPhrases:     []string{"네일샵 추천", "젤네일 잘하는 곳", "이달의 아트", "당일 예약 네일", "주차되는 네일샵"},
		ConversionDefault: "당일 예약 네일",
		BannedPhrases:     commonBanned,
		TrustFillers:      []string{"소독 기구 1인 1세트 사용", "시술 전 디자인 상담"},
		Description:       beautyDescription,
		Directions:        genericDirections,
	},
	"피트니스": {
		Subcategory:       "피트니스",
		Vertical:          model.VerticalHealth,
		ServiceVocab:      []string{"PT", "필라테스", "요가", "그룹수업", "체성분검사", "샤워실"},
		IntentPhrases:     []string{"헬스장 추천", "PT 가격", "필라테스 체험", "주차되는 헬스장", "24시 헬스장"},
		ConversionDefault: "무료 체험 수업 예약",
		BannedPhrases:     append([]string{"무조건 감량", "확실한 효과"}, commonBanned...),
		TrustFillers:      []string{"전문 자격을 갖춘 트레이너", "체계적인 커리큘럼"},
		Description:       serviceDescription,
		Directions:        genericDirections,
	},
	"병의원": {
		Subcategory:       "병의원",
		Vertical:          model.VerticalHealth,
		ServiceVocab:      []string{"야간진료", "주말진료", "비급여 안내", "검진", "상담"},
		IntentPhrases:     []string{"병원 추천", "야간진료 병원", "주말진료", "주차되는 병원", "당일 진료 예약"},
		ConversionDefault: "당일 진료 예약",
		BannedPhrases:     append([]string{"완치", "부작용 없음", "보장", "전국 최고"}, commonBanned...),
		TrustFillers:      []string{"충분한 설명 후 진행하는 진료", "정기적인 감염 관리"},
		Description:       serviceDescription,
		Directions:        genericDirections,
	},
	"학원": {
		Subcategory:       "학원",
		Vertical:          model.VerticalEducation,
		ServiceVocab:      []string{"개인별 맞춤수업", "소수정예", "레벨테스트", "자습관리", "설명회"},
		IntentPhrases:     []string{"학원 추천", "레벨테스트", "소수정예 학원", "주차되는 학원", "당일 상담 예약"},
		ConversionDefault: "당일 상담 예약",
		BannedPhrases:     append([]string{"성적 보장", "합격 보장"}, commonBanned...),
		TrustFillers:      []string{"정기적인 학습 리포트 제공", "담임제 관리 시스템"},
		Description:       serviceDescription,
		Directions:        genericDirections,
	},
	"부동산": {
		Subcategory:       "부동산",
		Vertical:          model.VerticalService,
		ServiceVocab:      []string{"매매", "전세", "월세", "상가", "분양상담"},
		IntentPhrases:     []string{"부동산 추천", "아파트 매매", "전세 매물", "주차되는 부동산", "당일 방문 상담"},
		ConversionDefault: "당일 방문 상담",
		BannedPhrases:     append([]string{"확정 수익"}, commonBanned...),
		TrustFillers:      []string{"지역 매물 정보를 가장 빠르게", "계약까지 책임 중개"},
		Description:       serviceDescription,
		Directions:        genericDirections,
	},
	"숙박": {
		Subcategory:       "숙박",
		Vertical:          model.VerticalService,
		ServiceVocab:      []string{"오션뷰", "바베큐", "수영장", "조식", "무료주차"},
		IntentPhrases:     []string{"숙소 추천", "가족 펜션", "오션뷰 숙소", "주차 가능 숙소", "당일 예약 숙소"},
		ConversionDefault: "당일 예약 숙소",
		BannedPhrases:     commonBanned,
		TrustFillers:      []string{"매일 관리하는 청결한 객실", "친절한 체크인 안내"},
		Description:       serviceDescription,
		Directions:        genericDirections,
	},
	"일반업소": {
		Subcategory:       "일반업소",
		Vertical:          model.VerticalService,
		ServiceVocab:      []string{"상담", "예약", "방문", "견적"},
		IntentPhrases:     []string{"추천", "후기 좋은 곳", "가까운 곳", "주차 가능", "당일 예약"},
		ConversionDefault: "당일 예약",
		BannedPhrases:     commonBanned,
		TrustFillers:      []string{"방문 전 전화 상담 가능", "성실한 응대를 약속합니다"},
		Description:       serviceDescription,
		Directions:        genericDirections,
	},
}

func regionOr(region string) string {
	if region == "" {
		return "우리 동네"
	}
	return region
}

func servicesOr(services []string, fallback string) string {
	if len(services) == 0 {
		return fallback
	}
	return strings.Join(services, ", ")
}

func trustLines(points []string) string {
	if len(points) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range points {
		b.WriteString("· ")
		b.WriteString(p)
		b.WriteString("\n")
	}
	return b.String()
}

func callToAction(cta string) string {
	if cta == "" {
		return "네이버 예약 또는 전화로 문의해 주세요."
	}
	return cta
}

func foodDescription(in TemplateInput) string {
	return fmt.Sprintf(
		"%s은(는) %s에서 %s을(를) 선보이는 공간입니다.\n\n%s\n%s",
		in.Name, regionOr(in.Region),
		servicesOr(in.TopServices, "정성껏 준비한 메뉴"),
		trustLines(in.TrustPoints),
		callToAction(in.CallToAction),
	)
}

func beautyDescription(in TemplateInput) string {
	return fmt.Sprintf(
		"%s | %s 프리미엄 케어.\n%s 전문입니다.\n\n%s\n%s",
		in.Name, regionOr(in.Region),
		servicesOr(in.TopServices, "맞춤 시술"),
		trustLines(in.TrustPoints),
		callToAction(in.CallToAction),
	)
}

func serviceDescription(in TemplateInput) string {
	return fmt.Sprintf(
		"%s | %s에서 만나는 %s.\n\n%s\n%s",
		in.Name, regionOr(in.Region),
		servicesOr(in.TopServices, "믿을 수 있는 서비스"),
		trustLines(in.TrustPoints),
		callToAction(in.CallToAction),
	)
}

func genericDirections(in TemplateInput) string {
	region := in.Region
	if region == "" {
		region = "가까운 역"
	}
	return fmt.Sprintf(
		"%s에서 도보로 찾아오실 수 있습니다.\n"+
			"· 대중교통: %s 출구에서 도보 5분 이내 (정확한 출구 번호를 확인해 주세요)\n"+
			"· 주차: 건물 주차장 이용 안내는 전화로 문의해 주세요\n"+
			"· 건물 1층 입구에서 %s 간판을 찾아주세요",
		region, region, in.Name,
	)
}
