// Package keywordvol provides a client for the keyword search-volume
// service. Lookups are batched into fixed-size chunks with per-chunk
// timeouts; a failed chunk degrades its own members to "unknown" and
// never fails the request, and an unconfigured client degrades every
// lookup the same way.
package keywordvol

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/placelift/place-audit/internal/cache"
)

// VolumeUnknown is the value reported for keywords the service could
// not resolve, for whatever reason.
const VolumeUnknown = "unknown"

const (
	chunkSize    = 5
	chunkTimeout = 4 * time.Second
)

// Client resolves monthly search volumes for keywords. The returned
// map always contains every requested keyword.
type Client interface {
	Volumes(ctx context.Context, keywords []string) map[string]string
}

// Null is the no-credentials client: every volume is unknown.
type Null struct{}

// Volumes implements Client.
func (Null) Volumes(_ context.Context, keywords []string) map[string]string {
	out := make(map[string]string, len(keywords))
	for _, k := range keywords {
		out[k] = VolumeUnknown
	}
	return out
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the API base URL.
func WithBaseURL(base string) Option {
	return func(c *httpClient) { c.baseURL = base }
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	store   *cache.Store[string]
}

// NewClient creates a volume client backed by the given cache store.
func NewClient(apiKey, baseURL string, store *cache.Store[string], opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		store:   store,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Volumes resolves volumes for all keywords. Cached values are served
// without a lookup; misses are chunked and fetched concurrently, each
// chunk isolated from its siblings.
func (c *httpClient) Volumes(ctx context.Context, keywords []string) map[string]string {
	out := make(map[string]string, len(keywords))
	var misses []string
	for _, k := range keywords {
		if v, ok := c.store.Get(k); ok {
			out[k] = v
		} else {
			out[k] = VolumeUnknown
			misses = append(misses, k)
		}
	}
	if len(misses) == 0 {
		return out
	}

	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	for start := 0; start < len(misses); start += chunkSize {
		chunk := misses[start:min(start+chunkSize, len(misses))]
		g.Go(func() error {
			chunkCtx, cancel := context.WithTimeout(gCtx, chunkTimeout)
			defer cancel()

			volumes, err := c.lookup(chunkCtx, chunk)
			if err != nil {
				// Chunk failure is isolated: its members stay unknown.
				zap.L().Warn("keywordvol: chunk lookup failed",
					zap.Int("chunk_size", len(chunk)),
					zap.Error(err),
				)
				return nil
			}
			mu.Lock()
			for k, v := range volumes {
				out[k] = v
				c.store.Set(k, v)
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

type lookupRequest struct {
	Keywords []string `json:"keywords"`
}

type lookupResponse struct {
	Volumes map[string]int `json:"volumes"`
}

func (c *httpClient) lookup(ctx context.Context, keywords []string) (map[string]string, error) {
	payload, err := json.Marshal(lookupRequest{Keywords: keywords})
	if err != nil {
		return nil, eris.Wrap(err, "keywordvol: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/volumes", bytes.NewReader(payload))
	if err != nil {
		return nil, eris.Wrap(err, "keywordvol: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "keywordvol: volume request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, eris.Wrap(err, "keywordvol: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("keywordvol: lookup returned %d", resp.StatusCode)
	}

	var parsed lookupResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "keywordvol: parse response")
	}

	out := make(map[string]string, len(parsed.Volumes))
	for k, v := range parsed.Volumes {
		out[k] = strconv.Itoa(v)
	}
	return out, nil
}
