package feed

import (
	"compress/gzip"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://1xbet.com"
	DefaultPath    = "/LiveFeed/Get1x2_VZip"
	DefaultQuery   = "count=100&lng=fr&gr=70&mode=4&country=96&top=true"

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"
)

// ClientOptions configures a live feed client.
type ClientOptions struct {
	BaseURL   string
	MirrorURL string // resolved at runtime when BaseURL is empty
	Path      string
	Query     string
	Timeout   time.Duration
	// RateLimit is the maximum number of upstream requests per second. Zero disables limiting.
	RateLimit   float64
	Burst       int
	InsecureTLS bool
}

// Client fetches the 1xBet live feed.
type Client struct {
	opts       ClientOptions
	httpClient *http.Client
	limiter    *rate.Limiter

	resolvedMu      sync.RWMutex
	resolvedURL     string
	lastResolveTime time.Time
	resolveInterval time.Duration
	resolveMu       sync.Mutex
}

func NewClient(opts ClientOptions) *Client {
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	if opts.Query == "" {
		opts.Query = DefaultQuery
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.BaseURL == "" && opts.MirrorURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableCompression = true // Accept-Encoding is sent explicitly, bodies are decoded in readBodyDecode
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	}
	transport.TLSClientConfig.InsecureSkipVerify = opts.InsecureTLS
	transport.Proxy = http.ProxyFromEnvironment

	c := &Client{
		opts:            opts,
		httpClient:      &http.Client{Timeout: opts.Timeout, Transport: transport},
		resolveInterval: 2 * time.Hour,
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return c
}

// Matches implements Source.
func (c *Client) Matches(ctx context.Context) ([]RawMatch, error) {
	resp, err := c.FetchFeed(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// FetchFeed downloads and decodes one feed response.
func (c *Client) FetchFeed(ctx context.Context) (*Response, error) {
	baseURL, err := c.baseURL(ctx)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	u.Path = c.opts.Path
	u.RawQuery = c.opts.Query

	body, err := c.doRequest(ctx, u.String(), baseURL)
	if err != nil {
		if shouldReResolve(err, 0) {
			c.clearResolvedURL()
		}
		return nil, err
	}
	return Decode(body)
}

// baseURL returns the fixed base URL, or the mirror-resolved one.
func (c *Client) baseURL(ctx context.Context) (string, error) {
	if c.opts.BaseURL != "" {
		return c.opts.BaseURL, nil
	}
	if err := c.ensureResolved(ctx); err != nil {
		return "", err
	}
	c.resolvedMu.RLock()
	defer c.resolvedMu.RUnlock()
	if c.resolvedURL == "" {
		return "", fmt.Errorf("base URL not resolved")
	}
	return c.resolvedURL, nil
}

func (c *Client) ensureResolved(ctx context.Context) error {
	c.resolveMu.Lock()
	defer c.resolveMu.Unlock()

	c.resolvedMu.RLock()
	cached := c.resolvedURL
	fresh := cached != "" && time.Since(c.lastResolveTime) < c.resolveInterval
	c.resolvedMu.RUnlock()
	if fresh {
		return nil
	}

	base, err := ResolveMirrorToBaseURL(ctx, c.opts.MirrorURL, c.opts.Timeout)
	if err != nil {
		if cached != "" {
			slog.Warn("livefeed: mirror re-resolve failed, keeping cached URL", "mirror_url", c.opts.MirrorURL, "cached_url", cached, "error", err)
			return nil
		}
		return fmt.Errorf("resolve mirror %s: %w", c.opts.MirrorURL, err)
	}

	c.resolvedMu.Lock()
	c.resolvedURL = base
	c.lastResolveTime = time.Now()
	c.resolvedMu.Unlock()
	slog.Info("livefeed: mirror resolved", "mirror_url", c.opts.MirrorURL, "resolved_base", base)
	return nil
}

func (c *Client) clearResolvedURL() {
	if c.opts.MirrorURL == "" {
		return
	}
	c.resolvedMu.Lock()
	defer c.resolvedMu.Unlock()
	if c.resolvedURL != "" {
		slog.Debug("livefeed: clearing cached mirror URL", "url", c.resolvedURL)
		c.resolvedURL = ""
	}
}

// shouldReResolve reports network failures and gateway errors that usually mean the mirror moved.
func shouldReResolve(err error, statusCode int) bool {
	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "connection refused") ||
			strings.Contains(msg, "no such host") ||
			strings.Contains(msg, "timeout") ||
			strings.Contains(msg, "network is unreachable") {
			return true
		}
	}
	return statusCode == http.StatusBadGateway || statusCode == http.StatusServiceUnavailable
}

func (c *Client) doRequest(ctx context.Context, urlStr, baseURL string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "fr,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br, zstd")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", baseURL+"/fr/live")
	req.Header.Set("Origin", baseURL)
	req.Header.Set("x-requested-with", "XMLHttpRequest")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		preview := string(b)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		slog.Warn("livefeed: API request failed", "url", urlStr, "status", resp.StatusCode, "body_preview", preview)
		if shouldReResolve(nil, resp.StatusCode) {
			c.clearResolvedURL()
		}
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}

	return readBodyDecode(resp)
}

// readBodyDecode decompresses the body according to Content-Encoding (br, zstd, gzip).
func readBodyDecode(resp *http.Response) ([]byte, error) {
	enc := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	switch {
	case strings.Contains(enc, "br"):
		return io.ReadAll(brotli.NewReader(resp.Body))
	case strings.Contains(enc, "zstd"):
		r, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer r.Close()
		return io.ReadAll(r)
	case strings.Contains(enc, "gzip"):
		r, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer r.Close()
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read gzip body: %w", err)
		}
		return b, nil
	default:
		return io.ReadAll(resp.Body)
	}
}
