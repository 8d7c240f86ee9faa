package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/placelift/place-audit/internal/candidate"
	"github.com/placelift/place-audit/internal/cascade"
)

// keywordLabels are the free-text section headings that precede the
// representative keyword block in the rendered page.
var keywordLabels = []string{"대표키워드", "인기토픽", "해시태그", "키워드"}

var keywordSeparators = regexp.MustCompile(`[,·|/\n]+`)

// EmbeddedKeywords reads the structured payloads embedded directly in
// the already-retrieved document.
type EmbeddedKeywords struct{}

func (EmbeddedKeywords) Name() string { return "embedded_payload" }

func (EmbeddedKeywords) Attempt(_ context.Context, in *cascade.Input) ([]string, error) {
	if in.Doc == nil {
		return nil, eris.New("extract: no document")
	}
	var pool []candidate.RawCandidate
	for _, root := range PayloadRoots(in.Doc.HTML) {
		pool = append(pool, candidate.Collect(root, candidate.ShapeStringList, "embedded_payload")...)
	}
	return stringsOf(candidate.SelectBest(pool)), nil
}

// FrameKeywords re-fetches the document's frame URLs and repeats the
// embedded-payload read on each. Listing pages render most of their
// content inside a same-host frame, so this recovers payloads the
// outer document only references.
type FrameKeywords struct{}

func (FrameKeywords) Name() string { return "frame_payload" }

func (FrameKeywords) Attempt(ctx context.Context, in *cascade.Input) ([]string, error) {
	if in.Doc == nil || in.Client == nil {
		return nil, eris.New("extract: no document or client")
	}
	urls := FrameURLs(in.Doc.HTML)
	if len(urls) == 0 {
		return nil, nil
	}
	var pool []candidate.RawCandidate
	for _, u := range urls {
		frameDoc, err := in.Client.Fetch(ctx, u)
		if err != nil {
			// A dead frame is not fatal; the remaining frames may carry
			// the payload.
			continue
		}
		for _, root := range PayloadRoots(frameDoc.HTML) {
			pool = append(pool, candidate.Collect(root, candidate.ShapeStringList, "frame_payload")...)
		}
	}
	return stringsOf(candidate.SelectBest(pool)), nil
}

// NetworkKeywords inspects the JSON payloads observed on the transport
// while the page rendered.
type NetworkKeywords struct{}

func (NetworkKeywords) Name() string { return "network_payload" }

func (NetworkKeywords) Attempt(_ context.Context, in *cascade.Input) ([]string, error) {
	if in.Doc == nil {
		return nil, eris.New("extract: no document")
	}
	var pool []candidate.RawCandidate
	for _, p := range in.Doc.ObservedPayloads {
		root := DecodePayload(p.Body)
		if root == nil {
			continue
		}
		pool = append(pool, candidate.Collect(root, candidate.ShapeStringList, "network_payload")...)
	}
	return stringsOf(candidate.SelectBest(pool)), nil
}

// TextKeywords is the last-resort heuristic: locate a known label in
// the rendered text and tokenize the text that follows it.
type TextKeywords struct{}

func (TextKeywords) Name() string { return "text_heuristic" }

func (TextKeywords) Attempt(_ context.Context, in *cascade.Input) ([]string, error) {
	if in.Doc == nil {
		return nil, eris.New("extract: no document")
	}
	window := LabelWindow(in.Doc.Text, keywordLabels, 240)
	if window == "" {
		return nil, nil
	}
	return TokenizeKeywords(window), nil
}

// LabelWindow returns up to maxRunes of text following the first label
// found in text, or "" when no label occurs.
func LabelWindow(text string, labels []string, maxRunes int) string {
	for _, label := range labels {
		idx := strings.Index(text, label)
		if idx < 0 {
			continue
		}
		rest := text[idx+len(label):]
		runes := []rune(rest)
		if len(runes) > maxRunes {
			runes = runes[:maxRunes]
		}
		return string(runes)
	}
	return ""
}

// TokenizeKeywords splits a label window on keyword separators, then on
// hashtag markers.
func TokenizeKeywords(window string) []string {
	var tokens []string
	for _, part := range keywordSeparators.Split(window, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "#") {
			for _, h := range strings.Split(part, "#") {
				if h = strings.TrimSpace(h); h != "" {
					tokens = append(tokens, h)
				}
			}
			continue
		}
		tokens = append(tokens, part)
	}
	return tokens
}

// TextTags reads the amenity/tag block from the rendered text. Tags
// have no dedicated payload container so the label heuristic is the
// only strategy in their cascade.
type TextTags struct{}

func (TextTags) Name() string { return "text_heuristic" }

func (TextTags) Attempt(_ context.Context, in *cascade.Input) ([]string, error) {
	if in.Doc == nil {
		return nil, eris.New("extract: no document")
	}
	window := LabelWindow(in.Doc.Text, []string{"편의시설", "편의", "태그"}, 200)
	if window == "" {
		return nil, nil
	}
	return TokenizeKeywords(window), nil
}

func stringsOf(c *candidate.RawCandidate) []string {
	if c == nil {
		return nil
	}
	if c.Shape == candidate.ShapeStringList {
		return c.Strings
	}
	out := make([]string, 0, len(c.Records))
	for _, r := range c.Records {
		out = append(out, candidate.RecordName(r))
	}
	return out
}
