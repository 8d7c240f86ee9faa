package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadRoots_StateAssignment(t *testing.T) {
	html := `<html><script>
window.__APOLLO_STATE__ = {"Place:123":{"name":"연남살롱","keywordList":["연남동미용실","염색맛집"]}};
</script></html>`
	roots := PayloadRoots(html)
	require.Len(t, roots, 1)
	m, ok := roots[0].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, m, "Place:123")
}

func TestPayloadRoots_BalancedAgainstTrailingScript(t *testing.T) {
	// The assignment is followed by more script code; the brace matcher
	// must stop at the balanced object.
	html := `<script>window.__PLACE_STATE__={"a":{"b":"값 } 포함"}};doSomething();</script>`
	roots := PayloadRoots(html)
	require.Len(t, roots, 1)
}

func TestPayloadRoots_JSONScripts(t *testing.T) {
	html := `<script type="application/ld+json">{"@type":"Restaurant","name":"강남식당"}</script>
<script type="application/json">{"props":{"menus":[{"name":"갈비탕","price":12000}]}}</script>`
	roots := PayloadRoots(html)
	assert.Len(t, roots, 2)
}

func TestPayloadRoots_InvalidBlobsSkipped(t *testing.T) {
	html := `<script>window.__NEXT_DATA__ = {broken</script>
<script type="application/json">not json</script>`
	assert.Empty(t, PayloadRoots(html))
}

func TestDecodePayload(t *testing.T) {
	root := DecodePayload([]byte(`{"items":[{"name":"파스타"}]}`))
	require.NotNil(t, root)
	assert.Nil(t, DecodePayload([]byte("<html>")))
}

func TestQueryString(t *testing.T) {
	blob := `{"place":{"name":"","displayName":"한강카페"}}`
	assert.Equal(t, "한강카페", QueryString(blob, "place.name", "place.displayName"))
	assert.Equal(t, "", QueryString(blob, "place.missing"))
}

func TestBalancedJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"object", `{"a":1} rest`, `{"a":1}`},
		{"array", `[1,2,[3]] tail`, `[1,2,[3]]`},
		{"brace in string", `{"a":"}"}x`, `{"a":"}"}`},
		{"escaped quote", `{"a":"\"}"} y`, `{"a":"\"}"}`},
		{"never balances", `{"a":1`, ""},
		{"not a container", `"just a string"`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, balancedJSON(tt.in))
		})
	}
}

func TestFrameURLs(t *testing.T) {
	html := `<iframe src="https://m.place.naver.com/place/123/home?from=map&amp;x=1"></iframe>
<iframe src="https://ads.example.com/frame"></iframe>
<iframe src="https://m.place.naver.com/place/123/home?from=map&amp;x=1"></iframe>`
	got := FrameURLs(html)
	assert.Equal(t, []string{"https://m.place.naver.com/place/123/home?from=map&x=1"}, got)
}
