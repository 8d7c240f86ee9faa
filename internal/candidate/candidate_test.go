package candidate

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringCandidate(items ...string) RawCandidate {
	return RawCandidate{Shape: ShapeStringList, Strings: items}
}

func TestScoreCandidate_SweetSpotBeatsOutlier(t *testing.T) {
	sweet := stringCandidate("아메리카노", "카페라떼", "바닐라라떼", "콜드브루", "딸기케이크")
	huge := stringCandidate(make([]string, 50)...)

	assert.Greater(t, ScoreCandidate(&sweet), ScoreCandidate(&huge))
}

func TestScoreCandidate_ChromePenalty(t *testing.T) {
	clean := stringCandidate("아메리카노", "카페라떼", "콜드브루", "에이드", "티라미수")
	nav := stringCandidate("홈", "메뉴", "리뷰", "사진", "지도")

	assert.Greater(t, ScoreCandidate(&clean), ScoreCandidate(&nav))
	assert.Less(t, ScoreCandidate(&nav), 2.5)
}

func TestSelectBest_SmallGoodListBeatsLargeNoisyList(t *testing.T) {
	good := stringCandidate("수제버거", "감자튀김", "치즈버거", "콜라", "밀크쉐이크")

	noisy := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		noisy = append(noisy, fmt.Sprintf("item-%d-%032d", i, i))
	}
	noisyCandidate := stringCandidate(noisy...)

	best := SelectBest([]RawCandidate{noisyCandidate, good})
	require.NotNil(t, best)
	assert.Equal(t, good.Strings, best.Strings)
}

func TestSelectBest_ReturnsBestEvenBelowThreshold(t *testing.T) {
	weak := stringCandidate("a", "b")
	best := SelectBest([]RawCandidate{weak})
	require.NotNil(t, best)
	assert.Equal(t, weak.Strings, best.Strings)
}

func TestSelectBest_EmptySet(t *testing.T) {
	assert.Nil(t, SelectBest(nil))
}

func TestCollect_StringLists(t *testing.T) {
	root := map[string]any{
		"data": map[string]any{
			"keywordList": []any{"망원동카페", "수제디저트", "브런치맛집"},
			"numbers":     []any{1.0, 2.0},
		},
	}
	got := Collect(root, ShapeStringList, "test")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"망원동카페", "수제디저트", "브런치맛집"}, got[0].Strings)
	assert.Equal(t, "test", got[0].Provenance)
}

func TestCollect_RecordLists(t *testing.T) {
	root := map[string]any{
		"menus": []any{
			map[string]any{"name": "아메리카노", "price": 4500.0},
			map[string]any{"name": "카페라떼", "priceString": "5,000원"},
		},
		"notRecords": []any{
			map[string]any{"foo": "bar"},
		},
	}
	got := Collect(root, ShapeRecordList, "test")
	require.Len(t, got, 1)
	assert.Equal(t, "아메리카노", RecordName(got[0].Records[0]))
}

func TestCollect_DepthBound(t *testing.T) {
	var root any = []any{"깊은곳", "키워드", "하나더"}
	for i := 0; i < maxWalkDepth+2; i++ {
		root = map[string]any{"nested": root}
	}
	assert.Empty(t, Collect(root, ShapeStringList, "test"))
}

func TestIsChromeToken(t *testing.T) {
	assert.True(t, IsChromeToken("홈"))
	assert.True(t, IsChromeToken("더보기"))
	assert.True(t, IsChromeToken("Menu"))
	assert.False(t, IsChromeToken("수제버거"))
}

func TestExtendChromeTokens(t *testing.T) {
	assert.False(t, IsChromeToken("쿠폰존"))
	ExtendChromeTokens([]string{" 쿠폰존 "})
	assert.True(t, IsChromeToken("쿠폰존"))
}

func TestExtendChromeTokens_ConcurrentWithReads(t *testing.T) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					IsChromeToken("메뉴")
					IsChromeToken("수제버거")
				}
			}
		}()
	}
	for i := 0; i < 50; i++ {
		ExtendChromeTokens([]string{fmt.Sprintf("위젯%d", i)})
	}
	close(done)
	wg.Wait()

	assert.True(t, IsChromeToken("위젯0"))
	assert.True(t, IsChromeToken("위젯49"))
	assert.True(t, IsChromeToken("메뉴"))
}
