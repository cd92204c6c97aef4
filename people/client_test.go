package people

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestClient_Do_ContextCancellation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Blocks until the client gives up.
		<-r.Context().Done()
	}))
	defer ts.Close()

	client := NewClient(ts.URL+"/", testToken)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/delay", nil)

	// Context with immediate 1 millisecond execution cancellation
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Do(ctx, req)
	duration := time.Since(start)

	if err == nil {
		t.Fatal("expected context deadline exceeded error, got nil")
	}

	// Make sure the request correctly aborted and returned quickly
	if duration > 100*time.Millisecond {
		t.Errorf("request took too long to abort on cancelled context: %v", duration)
	}
}

func TestClient_Do_DoesNotMapStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient(ts.URL+"/", testToken)

	req, _ := http.NewRequest(http.MethodGet, ts.URL, nil)
	resp, err := client.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("expected raw response, got error: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", resp.StatusCode)
	}
}

func TestClient_Do_LogsRequests(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	client := NewClient(ts.URL+"/", testToken, WithLogger(logger))

	req, _ := http.NewRequest(http.MethodGet, ts.URL, nil)
	resp, err := client.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = resp.Body.Close()

	out := buf.String()
	for _, want := range []string{`"client":"people"`, `"method":"GET"`, `"status":204`, `"request_id":`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log output to contain %s, got: %s", want, out)
		}
	}
	if strings.Contains(out, testToken) {
		t.Errorf("token leaked into log output: %s", out)
	}
}

func TestClientStringRedaction(t *testing.T) {
	token := "my-secret-token"
	client := &Client{
		token:   token,
		baseURL: "https://example.com",
	}

	formats := []string{"%+v", "%#v", "%v", "%s"}

	for _, format := range formats {
		t.Run(format, func(t *testing.T) {
			output := fmt.Sprintf(format, client)

			if strings.Contains(output, token) {
				t.Errorf("Security check failed: Token leaked in %s output: %s", format, output)
			}

			if !strings.Contains(output, "token:<REDACTED>") {
				t.Errorf("Expected output to contain redacted token placeholder for %s, got: %s", format, output)
			}

			if !strings.Contains(output, "baseURL:https://example.com") {
				t.Errorf("Expected output to contain baseURL for %s, got: %s", format, output)
			}
		})
	}
}
