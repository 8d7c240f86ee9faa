package industry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/placelift/place-audit/internal/model"
)

func TestClassify_Cafe(t *testing.T) {
	got := Classify("망원동 카페 핸드드립 커피와 수제 디저트, 아메리카노")
	assert.Equal(t, "카페", got.Subcategory)
	assert.Equal(t, model.VerticalFood, got.Vertical)
	assert.GreaterOrEqual(t, got.Confidence, 0.3)
	assert.LessOrEqual(t, got.Confidence, 0.95)
	assert.Contains(t, got.Reasons, "카페·디저트 키워드")
}

func TestClassify_NoEvidenceDefault(t *testing.T) {
	got := Classify("알 수 없는 텍스트")
	assert.Equal(t, "일반업소", got.Subcategory)
	assert.Equal(t, model.VerticalService, got.Vertical)
	assert.Equal(t, 0.3, got.Confidence)
	assert.Equal(t, []string{"업종 단서 부족"}, got.Reasons)
}

func TestClassify_OnePatternPerRule(t *testing.T) {
	// Three patterns of the same rule must count once, not three times.
	single := Classify("미용실")
	multi := Classify("미용실 펌 염색")
	assert.Equal(t, single.Confidence, multi.Confidence)
	assert.Equal(t, "미용실", multi.Subcategory)
}

func TestClassify_SecondaryRuleTipsTie(t *testing.T) {
	// Primary cafe and restaurant evidence tie at 3; the secondary
	// drink-menu rule adds 1 for cafe.
	got := Classify("커피 식당 아메리카노")
	assert.Equal(t, "카페", got.Subcategory)
}

func TestClassify_TieFollowsDeclarationOrder(t *testing.T) {
	// On an exact tie the earlier-declared rule wins, deterministically.
	for i := 0; i < 20; i++ {
		got := Classify("커피 식당")
		assert.Equal(t, "카페", got.Subcategory)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.3, clamp(0.1, 0.3, 0.95))
	assert.Equal(t, 0.95, clamp(1.2, 0.3, 0.95))
	assert.Equal(t, 0.5, clamp(0.5, 0.3, 0.95))
}

func TestProfileFor_KnownAndFallback(t *testing.T) {
	cafe := ProfileFor(model.IndustryClassification{Subcategory: "카페"})
	assert.Equal(t, "카페", cafe.Subcategory)

	generic := ProfileFor(model.IndustryClassification{Subcategory: "없는업종"})
	assert.Equal(t, "일반업소", generic.Subcategory)
}

func TestProfiles_AllHaveTemplatesAndVocab(t *testing.T) {
	for name, p := range profiles {
		assert.NotEmpty(t, p.ServiceVocab, name)
		assert.NotEmpty(t, p.IntentPhrases, name)
		assert.NotEmpty(t, p.ConversionDefault, name)
		assert.NotNil(t, p.Description, name)
		assert.NotNil(t, p.Directions, name)

		desc := p.Description(TemplateInput{Name: "테스트업소", Region: "망원동"})
		assert.NotEmpty(t, desc, name)
	}
}

func TestLoadRules_Valid(t *testing.T) {
	rs, err := loadRules(rulesYAML)
	assert.NoError(t, err)
	assert.NotEmpty(t, rs.Rules)
	assert.Equal(t, "일반업소", rs.Default.Subcategory)
}
