package extract

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placelift/place-audit/internal/cascade"
	"github.com/placelift/place-audit/internal/model"
	"github.com/placelift/place-audit/pkg/browser"
)

func TestLinkCompetitors_ExcludesSelf(t *testing.T) {
	doc := &browser.Document{
		HTML: `<a href="/restaurant/111222333/home">옆집분식</a>
<a href="/place/999000111/home">자기자신</a>
<a href="/cafe/444555666">건너카페</a>`,
	}
	in := &cascade.Input{Doc: doc, PlaceURL: "https://m.place.naver.com/place/999000111/home"}
	got, err := LinkCompetitors{}.Attempt(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "111222333", got[0].PlaceID)
	assert.Equal(t, "https://m.place.naver.com/place/111222333/home", got[0].PlaceURL)
}

func TestNetworkCompetitors(t *testing.T) {
	doc := &browser.Document{
		ObservedPayloads: []browser.Payload{
			{Body: []byte(`{"similarPlaces":[{"url":"https://m.place.naver.com/place/777888999/home"}]}`)},
		},
	}
	got, err := NetworkCompetitors{}.Attempt(context.Background(), docInput(doc))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "777888999", got[0].PlaceID)
}

func TestNormalizeCompetitors_DedupeAndCap(t *testing.T) {
	var in []model.Competitor
	in = append(in, model.Competitor{PlaceID: "111000"}, model.Competitor{PlaceID: "111000"})
	for i := 0; i < 10; i++ {
		in = append(in, model.Competitor{PlaceID: fmt.Sprintf("%06d", 200000+i)})
	}
	got := NormalizeCompetitors(in)
	assert.Len(t, got, MaxCompetitors)
	assert.Equal(t, "111000", got[0].PlaceID)
}

func TestNormalizeCompetitors_Empty(t *testing.T) {
	assert.Nil(t, NormalizeCompetitors(nil))
	assert.Nil(t, NormalizeCompetitors([]model.Competitor{{PlaceID: ""}}))
}
