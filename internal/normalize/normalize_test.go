package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/placelift/place-audit/internal/model"
)

func TestProfile_NameFallback(t *testing.T) {
	got := Profile(model.PlaceProfile{Name: "   "})
	assert.Equal(t, model.NameFallback, got.Name)
}

func TestProfile_CleansFields(t *testing.T) {
	in := model.PlaceProfile{
		Name:        " 연남  살롱 ",
		Category:    " 미용실 ",
		Description: "  소개글입니다.\n둘째 줄.  ",
		Tags:        []string{" 주차 ", "", "무선인터넷"},
	}
	got := Profile(in)
	assert.Equal(t, "연남 살롱", got.Name)
	assert.Equal(t, "미용실", got.Category)
	assert.Equal(t, "소개글입니다.\n둘째 줄.", got.Description)
	assert.Equal(t, []string{"주차", "무선인터넷"}, got.Tags)
}

func TestProfile_CapsKeywords5(t *testing.T) {
	in := model.PlaceProfile{
		Keywords5: []string{"일", "이", "삼", "사", "오", "육"},
	}
	got := Profile(in)
	assert.Len(t, got.Keywords5, 5)
}

func TestProfile_DoesNotMutateInput(t *testing.T) {
	in := model.PlaceProfile{Name: " 공백이름 "}
	_ = Profile(in)
	assert.Equal(t, " 공백이름 ", in.Name)
}

func TestProfile_AbsentFieldsStayAbsent(t *testing.T) {
	got := Profile(model.PlaceProfile{Name: "업소"})
	assert.Empty(t, got.Description)
	assert.Nil(t, got.Keywords)
	assert.Nil(t, got.Menus)
}
