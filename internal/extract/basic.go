package extract

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"

	"github.com/placelift/place-audit/internal/cascade"
)

// Canonical basic-field keys. The cascade for this signal yields a flat
// key/value list which the pipeline folds into the profile.
const (
	FieldName        = "name"
	FieldCategory    = "category"
	FieldAddress     = "address"
	FieldRoadAddress = "road_address"
	FieldPhone       = "phone"
	FieldDescription = "description"
	FieldDirections  = "directions"

	FieldVisitorReviews = "visitor_review_count"
	FieldBlogReviews    = "blog_review_count"
	FieldRating         = "rating"
	FieldPhotoCount     = "photo_count"
)

// FieldKV is one extracted basic field.
type FieldKV struct {
	Key   string
	Value string
}

// payloadKeyOrder lists payload member names in harvest priority,
// across the spellings seen in embedded and network payloads. Synonyms
// for the same canonical field are adjacent, preferred spelling first;
// the harvest walks this slice so duplicate keys in one payload object
// always resolve the same way.
var payloadKeyOrder = []string{
	"name", "displayName",
	"category", "categoryName",
	"address", "fullAddress",
	"roadAddress", "roadAddr",
	"tel", "phone", "virtualPhone",
	"description", "introduction", "microReview",
	"wayToCome", "directions",
	"visitorReviewCount", "visitorReviewTotal",
	"blogCafeReviewCount", "blogReviewCount",
	"visitorReviewScore", "avgRating",
	"imageCount", "photoCount",
}

// payloadFieldKeys maps each payload member name to its canonical key.
var payloadFieldKeys = map[string]string{
	"name":                FieldName,
	"displayName":         FieldName,
	"category":            FieldCategory,
	"categoryName":        FieldCategory,
	"address":             FieldAddress,
	"fullAddress":         FieldAddress,
	"roadAddress":         FieldRoadAddress,
	"roadAddr":            FieldRoadAddress,
	"tel":                 FieldPhone,
	"phone":               FieldPhone,
	"virtualPhone":        FieldPhone,
	"description":         FieldDescription,
	"introduction":        FieldDescription,
	"microReview":         FieldDescription,
	"wayToCome":           FieldDirections,
	"directions":          FieldDirections,
	"visitorReviewCount":  FieldVisitorReviews,
	"visitorReviewTotal":  FieldVisitorReviews,
	"blogCafeReviewCount": FieldBlogReviews,
	"blogReviewCount":     FieldBlogReviews,
	"visitorReviewScore":  FieldRating,
	"avgRating":           FieldRating,
	"imageCount":          FieldPhotoCount,
	"photoCount":          FieldPhotoCount,
}

var phonePattern = regexp.MustCompile(`0\d{1,2}-\d{3,4}-\d{4}`)

var metaTagPattern = regexp.MustCompile(`<meta[^>]+(?:property|name)="([^"]+)"[^>]+content="([^"]*)"`)

// EmbeddedBasic pulls basic fields out of payloads embedded in the
// document.
type EmbeddedBasic struct{}

func (EmbeddedBasic) Name() string { return "embedded_payload" }

func (EmbeddedBasic) Attempt(_ context.Context, in *cascade.Input) ([]FieldKV, error) {
	if in.Doc == nil {
		return nil, eris.New("extract: no document")
	}
	var fields []FieldKV
	for _, root := range PayloadRoots(in.Doc.HTML) {
		fields = append(fields, harvestFields(root, 0)...)
	}
	return fields, nil
}

// NetworkBasic queries observed network payloads for basic fields.
type NetworkBasic struct{}

func (NetworkBasic) Name() string { return "network_payload" }

func (NetworkBasic) Attempt(_ context.Context, in *cascade.Input) ([]FieldKV, error) {
	if in.Doc == nil {
		return nil, eris.New("extract: no document")
	}
	var fields []FieldKV
	for _, p := range in.Doc.ObservedPayloads {
		if !gjson.ValidBytes(p.Body) {
			continue
		}
		gjson.ParseBytes(p.Body).ForEach(func(_, v gjson.Result) bool {
			fields = append(fields, harvestResult(v, 0)...)
			return true
		})
	}
	return fields, nil
}

// MetaBasic reads the document's meta tags and title. Listing pages
// carry the business name and a one-line summary in OpenGraph tags even
// when every structured payload moved.
type MetaBasic struct{}

func (MetaBasic) Name() string { return "meta_tags" }

func (MetaBasic) Attempt(_ context.Context, in *cascade.Input) ([]FieldKV, error) {
	if in.Doc == nil {
		return nil, eris.New("extract: no document")
	}
	var fields []FieldKV
	for _, m := range metaTagPattern.FindAllStringSubmatch(in.Doc.HTML, -1) {
		key, content := m[1], strings.TrimSpace(m[2])
		if content == "" {
			continue
		}
		switch key {
		case "og:title":
			// "상호명 : 네이버" or "상호명 - 업종"
			title := content
			for _, sep := range []string{" : ", " - ", " | "} {
				if idx := strings.Index(title, sep); idx > 0 {
					title = title[:idx]
					break
				}
			}
			fields = append(fields, FieldKV{Key: FieldName, Value: title})
		case "og:description", "description":
			fields = append(fields, FieldKV{Key: FieldDescription, Value: content})
		}
	}
	return fields, nil
}

// TextBasic is the free-text label heuristic for basic fields.
type TextBasic struct{}

func (TextBasic) Name() string { return "text_heuristic" }

func (TextBasic) Attempt(_ context.Context, in *cascade.Input) ([]FieldKV, error) {
	if in.Doc == nil {
		return nil, eris.New("extract: no document")
	}
	text := in.Doc.Text
	var fields []FieldKV

	if w := LabelWindow(text, []string{"도로명주소", "도로명"}, 80); w != "" {
		fields = append(fields, FieldKV{Key: FieldRoadAddress, Value: firstLine(w)})
	}
	if w := LabelWindow(text, []string{"지번주소", "주소"}, 80); w != "" {
		fields = append(fields, FieldKV{Key: FieldAddress, Value: firstLine(w)})
	}
	if phone := phonePattern.FindString(text); phone != "" {
		fields = append(fields, FieldKV{Key: FieldPhone, Value: phone})
	}
	if w := LabelWindow(text, []string{"찾아오시는길", "오시는길", "찾아가는길"}, 400); w != "" {
		fields = append(fields, FieldKV{Key: FieldDirections, Value: strings.TrimSpace(w)})
	}
	if w := LabelWindow(text, []string{"매장소개", "소개", "업체소개"}, 400); w != "" {
		fields = append(fields, FieldKV{Key: FieldDescription, Value: strings.TrimSpace(w)})
	}
	return fields, nil
}

// NormalizeFields cleans values, drops empties, keeps the first value
// per key.
func NormalizeFields(fields []FieldKV) []FieldKV {
	seen := make(map[string]bool, len(fields))
	out := make([]FieldKV, 0, len(fields))
	for _, f := range fields {
		v := f.Value
		if f.Key != FieldDescription && f.Key != FieldDirections {
			v = CleanText(v)
		} else {
			v = strings.TrimSpace(v)
		}
		if v == "" || seen[f.Key] {
			continue
		}
		seen[f.Key] = true
		out = append(out, FieldKV{Key: f.Key, Value: v})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func harvestFields(node any, depth int) []FieldKV {
	if depth > 10 || node == nil {
		return nil
	}
	var fields []FieldKV
	switch v := node.(type) {
	case map[string]any:
		// Fixed iteration order: map range order would let synonym
		// keys (name vs displayName) win nondeterministically.
		for _, k := range payloadKeyOrder {
			val, ok := v[k]
			if !ok {
				continue
			}
			if s := scalarString(val); s != "" {
				fields = append(fields, FieldKV{Key: payloadFieldKeys[k], Value: s})
			}
		}
		childKeys := make([]string, 0, len(v))
		for k := range v {
			childKeys = append(childKeys, k)
		}
		sort.Strings(childKeys)
		for _, k := range childKeys {
			fields = append(fields, harvestFields(v[k], depth+1)...)
		}
	case []any:
		for _, item := range v {
			fields = append(fields, harvestFields(item, depth+1)...)
		}
	}
	return fields
}

func harvestResult(r gjson.Result, depth int) []FieldKV {
	if depth > 10 {
		return nil
	}
	var fields []FieldKV
	if r.IsObject() {
		r.ForEach(func(k, v gjson.Result) bool {
			if canon, ok := payloadFieldKeys[k.String()]; ok && !v.IsObject() && !v.IsArray() {
				if s := strings.TrimSpace(v.String()); s != "" && s != "0" && s != "null" {
					fields = append(fields, FieldKV{Key: canon, Value: s})
				}
			}
			if v.IsObject() || v.IsArray() {
				fields = append(fields, harvestResult(v, depth+1)...)
			}
			return true
		})
	} else if r.IsArray() {
		r.ForEach(func(_, v gjson.Result) bool {
			fields = append(fields, harvestResult(v, depth+1)...)
			return true
		})
	}
	return fields
}

func scalarString(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		if x == 0 {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return ""
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
