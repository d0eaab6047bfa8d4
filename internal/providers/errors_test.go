package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"network", &NetworkError{Provider: "p", URL: "u", Err: errors.New("dial tcp")}, KindNetwork},
		{"wrapped protocol", fmt.Errorf("stage: %w", &ProtocolError{StatusCode: 503}), KindProtocol},
		{"parse", &ParseError{Provider: "p", Err: errors.New("eof")}, KindParse},
		{"deadline", context.DeadlineExceeded, KindNetwork},
		{"canceled", &NetworkError{Err: context.Canceled}, KindCanceled},
		{"other", errors.New("boom"), KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.err); got != tc.want {
				t.Fatalf("Classify(%v) = %q, want %q", tc.err, got, tc.want)
			}
		})
	}
}

func TestIsNotFoundAndRetryable(t *testing.T) {
	notFound := fmt.Errorf("wrap: %w", &ProtocolError{StatusCode: http.StatusNotFound})
	if !IsNotFound(notFound) {
		t.Fatalf("expected 404 to be detected through wrapping")
	}
	if Retryable(notFound) {
		t.Fatalf("expected 404 to be permanent")
	}
	if !Retryable(&ProtocolError{StatusCode: http.StatusBadGateway}) {
		t.Fatalf("expected 5xx to be retryable")
	}
	if !Retryable(&ProtocolError{StatusCode: http.StatusTooManyRequests}) {
		t.Fatalf("expected 429 to be retryable")
	}
	if Retryable(&ProtocolError{StatusCode: http.StatusOK, ContentType: "text/html"}) {
		t.Fatalf("expected content type mismatch to be permanent")
	}
	if Retryable(&ParseError{Err: errors.New("bad")}) {
		t.Fatalf("expected parse errors to be permanent")
	}
	if !Retryable(&NetworkError{Err: errors.New("reset")}) {
		t.Fatalf("expected network errors to be retryable")
	}
}

func TestProtocolErrorMessages(t *testing.T) {
	status := &ProtocolError{Provider: "espn", URL: "u", StatusCode: 500, Body: "oops"}
	if got := status.Error(); got != "espn: u: unexpected status 500: oops" {
		t.Fatalf("unexpected message %q", got)
	}
	ct := &ProtocolError{Provider: "espn", URL: "u", StatusCode: 200, ContentType: "text/html"}
	if got := ct.Error(); got != `espn: u: unexpected content type "text/html"` {
		t.Fatalf("unexpected message %q", got)
	}
}
