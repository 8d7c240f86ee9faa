package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"whitespace collapsed", "  망원동   카페 \n 디저트 ", "망원동 카페 디저트"},
		{"fullwidth folded", "ＡＢＣ카페", "ABC카페"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestNormalizeItems_Dedupe(t *testing.T) {
	got := NormalizeItems([]string{"망원동카페", "망원동 카페", "#망원동카페", "수제디저트"}, MaxKeywords)
	assert.Equal(t, []string{"망원동카페", "수제디저트"}, got)
}

func TestNormalizeItems_DropsChromeAndBounds(t *testing.T) {
	long := strings.Repeat("가", 25)
	got := NormalizeItems([]string{"홈", "메뉴", "가", long, "브런치맛집"}, MaxKeywords)
	assert.Equal(t, []string{"브런치맛집"}, got)
}

func TestNormalizeItems_Cap(t *testing.T) {
	items := []string{
		"키워드일", "키워드이", "키워드삼", "키워드사", "키워드오",
		"키워드육", "키워드칠",
	}
	got := NormalizeItems(items, 5)
	assert.Len(t, got, 5)
	assert.Equal(t, "키워드일", got[0])
}

func TestNormalizeItems_AllItemsSurviveBounds(t *testing.T) {
	got := NormalizeItems([]string{"  #망원동브런치  ", "테라스", "주차가능"}, MaxKeywords)
	for _, s := range got {
		n := len([]rune(s))
		assert.GreaterOrEqual(t, n, 2, s)
		assert.LessOrEqual(t, n, 24, s)
		assert.False(t, strings.HasPrefix(s, "#"), s)
	}
}

func TestNormalizeItems_EmptyIn(t *testing.T) {
	assert.Nil(t, NormalizeItems(nil, MaxKeywords))
	assert.Nil(t, NormalizeItems([]string{"홈"}, MaxKeywords))
}
