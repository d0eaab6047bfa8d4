package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	errorBodyBytes     = 512
	userAgent          = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// maxBodyBytes caps upstream payloads; larger bodies fail instead of being truncated.
var maxBodyBytes int64 = 8 << 20

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClient performs upstream GETs and maps failures onto the provider error taxonomy.
type HTTPClient struct {
	doer httpDoer
}

// NewHTTPClient wraps client. A nil client gets a fresh http.Client with timeout
// (or the default timeout when timeout <= 0).
func NewHTTPClient(client *http.Client, timeout time.Duration) *HTTPClient {
	return &HTTPClient{doer: resolveHTTPClient(client, timeout)}
}

func resolveHTTPClient(client *http.Client, timeout time.Duration) httpDoer {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

// BrowserHeaders returns the header set some endpoints require before they answer
// with data instead of a bot-wall page.
func BrowserHeaders(origin string) http.Header {
	origin = strings.TrimSuffix(origin, "/")
	h := make(http.Header)
	h.Set("Accept", "application/json, text/plain, */*")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("Referer", origin+"/")
	h.Set("Origin", origin)
	h.Set("x-requested-with", "XMLHttpRequest")
	h.Set("x-language", "en")
	return h
}

// GetJSON fetches url and decodes a JSON body into a generic tree.
func (c *HTTPClient) GetJSON(ctx context.Context, provider, url string, headers http.Header) (any, error) {
	body, err := c.get(ctx, provider, url, headers, isJSONContentType)
	if err != nil {
		return nil, err
	}
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ParseError{Provider: provider, Err: fmt.Errorf("decode %s: %w", url, err)}
	}
	return payload, nil
}

// GetHTML fetches url and returns the raw document.
func (c *HTTPClient) GetHTML(ctx context.Context, provider, url string, headers http.Header) ([]byte, error) {
	return c.get(ctx, provider, url, headers, isHTMLContentType)
}

func (c *HTTPClient) get(ctx context.Context, provider, url string, headers http.Header, accept func(string) bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{Provider: provider, URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	for k, vals := range headers {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, &NetworkError{Provider: provider, URL: url, Err: err}
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyBytes))
		return nil, &ProtocolError{
			Provider:    provider,
			URL:         url,
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
			Body:        strings.TrimSpace(string(snippet)),
		}
	}
	if !accept(contentType) {
		return nil, &ProtocolError{Provider: provider, URL: url, StatusCode: resp.StatusCode, ContentType: contentType}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &NetworkError{Provider: provider, URL: url, Err: err}
	}
	if int64(len(body)) > maxBodyBytes {
		return nil, &ParseError{Provider: provider, Err: fmt.Errorf("response body from %s exceeds %d bytes", url, maxBodyBytes)}
	}
	return body, nil
}

// An absent content type is tolerated; several feeds omit it on cached responses.
func isJSONContentType(raw string) bool {
	mediaType := mediaTypeOf(raw)
	return mediaType == "" || strings.Contains(mediaType, "json") || strings.Contains(mediaType, "javascript")
}

func isHTMLContentType(raw string) bool {
	mediaType := mediaTypeOf(raw)
	return mediaType == "" || mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

func mediaTypeOf(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	return mediaType
}
