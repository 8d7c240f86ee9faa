package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalPlaceURL_Rewrites(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "mobile home stays canonical",
			in:   "https://m.place.naver.com/place/1234567/home",
			want: "https://m.place.naver.com/place/1234567/home",
		},
		{
			name: "pc map host rewritten",
			in:   "https://pcmap.place.naver.com/restaurant/1234567/menu?entry=pll",
			want: "https://m.place.naver.com/place/1234567/home",
		},
		{
			name: "vertical path collapsed",
			in:   "https://m.place.naver.com/hairshop/7654321/review",
			want: "https://m.place.naver.com/place/7654321/home",
		},
		{
			name: "map entry path",
			in:   "https://map.naver.com/p/entry/place/1048812491?c=15.00,0,0,0,dh",
			want: "https://m.place.naver.com/place/1048812491/home",
		},
		{
			name: "query stripped without listing id",
			in:   "https://m.place.naver.com/my/profile?tab=review",
			want: "https://m.place.naver.com/my/profile",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalPlaceURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalPlaceURL_AlwaysMobileHostNoQuery(t *testing.T) {
	inputs := []string{
		"https://place.naver.com/restaurant/111222333/home?from=map",
		"https://map.naver.com/p/entry/place/444555666",
		"http://m.place.naver.com/cafe/777888999/photo?foo=bar&baz=1",
	}
	for _, in := range inputs {
		got, err := CanonicalPlaceURL(in)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "https://"+MobilePlaceHost+"/"), got)
		assert.NotContains(t, got, "?")
	}
}

func TestCanonicalPlaceURL_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown host", "https://example.com/place/1234567"},
		{"missing scheme", "m.place.naver.com/place/1234567"},
		{"ftp scheme", "ftp://m.place.naver.com/place/1234567"},
		{"lookalike host", "https://m.place.naver.com.evil.io/place/1234567"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CanonicalPlaceURL(tt.in)
			assert.Error(t, err)
		})
	}
}

func TestPlaceIDFromURL(t *testing.T) {
	assert.Equal(t, "1234567", PlaceIDFromURL("https://m.place.naver.com/place/1234567/home"))
	assert.Equal(t, "99", PlaceIDFromURL("https://pcmap.place.naver.com/hospital/99"))
	assert.Equal(t, "", PlaceIDFromURL("https://m.place.naver.com/my/profile"))
}
