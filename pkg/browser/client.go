// Package browser provides the rendered-document client. It drives a
// headless Chromium session, returns the rendered text and HTML, and
// records the JSON payloads observed on the network during rendering.
package browser

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Payload is one JSON response body observed during rendering.
type Payload struct {
	URL  string `json:"url"`
	Body []byte `json:"-"`
}

// Document is a rendered page plus its observed network traffic.
type Document struct {
	Text             string
	HTML             string
	ObservedPayloads []Payload
	FinalURL         string
	Status           int
}

// Client fetches rendered documents.
type Client interface {
	Fetch(ctx context.Context, targetURL string) (*Document, error)
}

// Option configures the chromedp client.
type Option func(*chromeClient)

// WithTimeout sets the per-fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *chromeClient) { c.timeout = d }
}

// WithChromePath overrides Chromium binary discovery.
func WithChromePath(path string) Option {
	return func(c *chromeClient) { c.chromePath = path }
}

// WithUserAgent sets the navigator user agent.
func WithUserAgent(ua string) Option {
	return func(c *chromeClient) { c.userAgent = ua }
}

// WithLimiter sets the per-host request rate.
func WithLimiter(r rate.Limit, burst int) Option {
	return func(c *chromeClient) {
		c.limit = r
		c.burst = burst
	}
}

type chromeClient struct {
	timeout    time.Duration
	chromePath string
	userAgent  string

	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewClient creates a chromedp-backed Client.
func NewClient(opts ...Option) Client {
	c := &chromeClient{
		timeout:   25 * time.Second,
		userAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
		limit:     rate.Limit(1),
		burst:     2,
		limiters:  make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *chromeClient) limiterFor(host string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l, ok := c.limiters[host]; ok {
		return l
	}
	l := rate.NewLimiter(c.limit, c.burst)
	c.limiters[host] = l
	return l
}

// Fetch renders the target URL and returns the document. The page is
// returned exactly as served; access restrictions are detected
// downstream, never worked around here.
func (c *chromeClient) Fetch(ctx context.Context, targetURL string) (*Document, error) {
	parsed, err := url.Parse(targetURL)
	if err != nil {
		return nil, eris.Wrap(err, "browser: parse url")
	}
	if err := c.limiterFor(parsed.Hostname()).Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "browser: rate limit wait")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(c.userAgent),
	)
	if c.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(c.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, opts...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	obs := newObserver(targetURL)
	chromedp.ListenTarget(taskCtx, obs.handle)

	doc := &Document{FinalURL: targetURL}
	err = chromedp.Run(taskCtx,
		network.Enable(),
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond), // let late XHRs land
		chromedp.Location(&doc.FinalURL),
		chromedp.OuterHTML("html", &doc.HTML, chromedp.ByQuery),
		chromedp.Text("body", &doc.Text, chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			doc.Status = obs.mainStatus()
			doc.ObservedPayloads = obs.collectBodies(ctx)
			return nil
		}),
	)
	if err != nil {
		return nil, eris.Wrapf(err, "browser: fetch %s", targetURL)
	}

	zap.L().Debug("browser: fetched document",
		zap.String("url", targetURL),
		zap.String("final_url", doc.FinalURL),
		zap.Int("status", doc.Status),
		zap.Int("observed_payloads", len(doc.ObservedPayloads)),
	)
	return doc, nil
}

// observer accumulates network responses seen while the page renders.
type observer struct {
	mu        sync.Mutex
	targetURL string
	status    int
	jsonResps []jsonResp
}

type jsonResp struct {
	requestID network.RequestID
	url       string
}

func newObserver(targetURL string) *observer {
	return &observer{targetURL: targetURL}
}

func (o *observer) handle(ev any) {
	resp, ok := ev.(*network.EventResponseReceived)
	if !ok {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if resp.Type == network.ResourceTypeDocument && o.status == 0 {
		o.status = int(resp.Response.Status)
	}
	mime := strings.ToLower(resp.Response.MimeType)
	if strings.Contains(mime, "json") {
		o.jsonResps = append(o.jsonResps, jsonResp{requestID: resp.RequestID, url: resp.Response.URL})
	}
}

func (o *observer) mainStatus() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// collectBodies fetches the observed JSON response bodies. Bodies that
// can no longer be read (evicted from the browser buffer) are skipped.
func (o *observer) collectBodies(ctx context.Context) []Payload {
	o.mu.Lock()
	resps := make([]jsonResp, len(o.jsonResps))
	copy(resps, o.jsonResps)
	o.mu.Unlock()

	var payloads []Payload
	for _, r := range resps {
		body, err := network.GetResponseBody(r.requestID).Do(ctx)
		if err != nil || len(body) == 0 {
			continue
		}
		payloads = append(payloads, Payload{URL: r.url, Body: body})
	}
	return payloads
}
