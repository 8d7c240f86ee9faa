// Package bizsearch provides a client for the local-business search
// API used to resolve a business name/address into a listing URL.
package bizsearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://openapi.naver.com/v1/search"

// Client performs local-business search operations.
type Client interface {
	Search(ctx context.Context, query string) (*SearchResponse, error)
}

// SearchResponse is the parsed local search response.
type SearchResponse struct {
	Total int    `json:"total"`
	Items []Item `json:"items"`
}

// Item is a single local search result.
type Item struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Category    string `json:"category"`
	Telephone   string `json:"telephone"`
	Address     string `json:"address"`
	RoadAddress string `json:"roadAddress"`
}

// PlainTitle strips the highlight markup the API injects into titles.
func (i Item) PlainTitle() string {
	r := strings.NewReplacer("<b>", "", "</b>", "", "&amp;", "&")
	return strings.TrimSpace(r.Replace(i.Title))
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(base string) Option {
	return func(c *httpClient) { c.baseURL = base }
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

type httpClient struct {
	clientID     string
	clientSecret string
	baseURL      string
	http         *http.Client
}

// NewClient creates a local search client. Credentials are required;
// their absence is a configuration error the caller surfaces before
// any request is made.
func NewClient(clientID, clientSecret string, opts ...Option) (Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, eris.New("bizsearch: client id and secret are required")
	}
	c := &httpClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *httpClient) Search(ctx context.Context, query string) (*SearchResponse, error) {
	endpoint := c.baseURL + "/local.json?query=" + url.QueryEscape(query) + "&display=" + strconv.Itoa(5)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, eris.Wrap(err, "bizsearch: create request")
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "bizsearch: search request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, eris.Wrap(err, "bizsearch: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("bizsearch: search returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed SearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "bizsearch: parse response")
	}
	return &parsed, nil
}
