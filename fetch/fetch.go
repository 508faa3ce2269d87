// Package fetch discovers notice documents linked from a council register
// page.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// DefaultTimeout bounds a single register-page request.
const DefaultTimeout = 30 * time.Second

// Client discovers document links on register pages.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// New creates a Client with the default HTTP timeout.
func New() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// WithHTTPClient substitutes the underlying HTTP client, primarily for
// tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	copied := *c
	copied.httpClient = hc
	return &copied
}

// WithUserAgent sets the User-Agent header sent with each request.
func (c *Client) WithUserAgent(ua string) *Client {
	copied := *c
	copied.userAgent = ua
	return &copied
}

// DocumentLinks fetches the register page at pageURL and returns the
// absolute URLs of the PDF documents it links to, de-duplicated, in
// document order.
func (c *Client) DocumentLinks(ctx context.Context, pageURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching register page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching register page: unexpected status %s", resp.Status)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing page URL: %w", err)
	}
	if loc := resp.Request.URL; loc != nil {
		base = loc
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing register page: %w", err)
	}

	return documentLinks(doc, base), nil
}

// documentLinks walks the parsed page and collects absolute PDF links.
func documentLinks(doc *html.Node, base *url.URL) []string {
	seen := make(map[string]bool)
	var links []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href, ok := attrValue(n, "href"); ok {
				if abs, ok := resolveDocumentLink(base, href); ok && !seen[abs] {
					seen[abs] = true
					links = append(links, abs)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links
}

// resolveDocumentLink resolves href against base and reports whether the
// result points at a PDF document.
func resolveDocumentLink(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}
	if !strings.HasSuffix(strings.ToLower(abs.Path), ".pdf") {
		return "", false
	}
	abs.Fragment = ""
	return abs.String(), true
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}
