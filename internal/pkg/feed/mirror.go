package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// chromeMu keeps at most one headless Chrome alive per process.
var chromeMu sync.Mutex

// ResolveMirrorToBaseURL follows a mirror link and returns scheme://host of the final page.
func ResolveMirrorToBaseURL(ctx context.Context, mirrorURL string, timeout time.Duration) (string, error) {
	resolved, err := resolveMirror(ctx, mirrorURL, timeout)
	if err != nil {
		return "", err
	}
	return normalizeResolvedBaseURL(resolved), nil
}

// resolveMirror tries plain HTTP redirects first and falls back to a headless browser
// when the landing page redirects through JavaScript.
func resolveMirror(ctx context.Context, mirrorURL string, timeout time.Duration) (string, error) {
	if mirrorURL == "" {
		return "", fmt.Errorf("mirror URL is empty")
	}
	if timeout < 30*time.Second {
		timeout = 30 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	for _, method := range []string{http.MethodHead, http.MethodGet} {
		req, err := http.NewRequestWithContext(ctx, method, mirrorURL, nil)
		if err != nil {
			return "", fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := client.Do(req)
		if err != nil {
			slog.Info("livefeed: mirror request failed", "method", method, "error", err)
			continue
		}
		finalURL := resp.Request.URL.String()
		if method == http.MethodGet && looksScripted(resp) {
			slog.Debug("livefeed: mirror page redirects through JavaScript", "mirror_url", mirrorURL)
		}
		resp.Body.Close()

		if finalURL != mirrorURL {
			slog.Info("livefeed: resolved mirror", "from", mirrorURL, "to", finalURL, "method", "HTTP redirect")
			return finalURL, nil
		}
	}

	return resolveMirrorWithJS(ctx, mirrorURL, timeout)
}

func looksScripted(resp *http.Response) bool {
	if !strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return false
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 256<<10))
	if err != nil {
		return false
	}
	page := string(body)
	return strings.Contains(page, "window.location") ||
		strings.Contains(page, "location.href") ||
		strings.Contains(page, "document.location")
}

func resolveMirrorWithJS(ctx context.Context, mirrorURL string, timeout time.Duration) (string, error) {
	chromeMu.Lock()
	defer chromeMu.Unlock()

	chromeDir, err := os.MkdirTemp("", "livefeed_chrome_")
	if err != nil {
		return "", fmt.Errorf("create chrome temp dir: %w", err)
	}
	defer os.RemoveAll(chromeDir)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserDataDir(chromeDir),
		chromedp.UserAgent(userAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var finalURL string
	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(mirrorURL),
		chromedp.Sleep(3*time.Second),
		chromedp.Location(&finalURL),
	); err != nil {
		return "", fmt.Errorf("chromedp navigation: %w", err)
	}

	if finalURL == "" || finalURL == mirrorURL {
		if err := chromedp.Run(browserCtx,
			chromedp.Sleep(5*time.Second),
			chromedp.Location(&finalURL),
		); err != nil {
			return "", fmt.Errorf("chromedp wait: %w", err)
		}
	}
	if finalURL == "" {
		return "", fmt.Errorf("mirror %s did not load", mirrorURL)
	}

	slog.Info("livefeed: resolved mirror", "from", mirrorURL, "to", finalURL, "method", "JavaScript redirect")
	return finalURL, nil
}

// normalizeResolvedBaseURL strips path, query and default ports:
// https://host.bar:443/fr/registration?tag=x -> https://host.bar
func normalizeResolvedBaseURL(resolved string) string {
	u, err := url.Parse(resolved)
	if err != nil || u.Host == "" {
		return resolved
	}
	host := u.Hostname()
	if port := u.Port(); port != "" && port != "80" && port != "443" {
		host = net.JoinHostPort(host, port)
	}
	return u.Scheme + "://" + host
}
