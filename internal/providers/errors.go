package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies provider failures for logs and metrics.
type Kind string

const (
	KindNetwork  Kind = "network"
	KindProtocol Kind = "protocol"
	KindParse    Kind = "parse"
	KindCanceled Kind = "canceled"
	KindUnknown  Kind = "unknown"
)

// NetworkError is a connection, DNS or timeout failure.
type NetworkError struct {
	Provider string
	URL      string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: request %s: %v", e.Provider, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ProtocolError is a non-2xx status or an unexpected content type.
type ProtocolError struct {
	Provider    string
	URL         string
	StatusCode  int
	ContentType string
	Body        string
}

func (e *ProtocolError) Error() string {
	if e.StatusCode >= 200 && e.StatusCode < 300 {
		return fmt.Sprintf("%s: %s: unexpected content type %q", e.Provider, e.URL, e.ContentType)
	}
	if e.Body != "" {
		return fmt.Sprintf("%s: %s: unexpected status %d: %s", e.Provider, e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: %s: unexpected status %d", e.Provider, e.URL, e.StatusCode)
}

// ParseError is a malformed body or a body whose shape cannot be normalized.
type ParseError struct {
	Provider string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse: %v", e.Provider, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Classify maps err onto the failure taxonomy.
func Classify(err error) Kind {
	var (
		netErr   *NetworkError
		protoErr *ProtocolError
		parseErr *ParseError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.As(err, &protoErr):
		return KindProtocol
	case errors.As(err, &parseErr):
		return KindParse
	case errors.As(err, &netErr), errors.Is(err, context.DeadlineExceeded):
		return KindNetwork
	default:
		return KindUnknown
	}
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var protoErr *ProtocolError
	return errors.As(err, &protoErr) && protoErr.StatusCode == http.StatusNotFound
}

// Retryable reports whether repeating the call could plausibly succeed. Parse failures and
// 4xx responses other than 429 are permanent for the current payload.
func Retryable(err error) bool {
	var protoErr *ProtocolError
	switch Classify(err) {
	case KindNetwork, KindUnknown:
		return true
	case KindProtocol:
		errors.As(err, &protoErr)
		return protoErr.StatusCode == http.StatusTooManyRequests || protoErr.StatusCode >= 500
	default:
		return false
	}
}
