package completions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func collectChunks(t *testing.T, stream *Stream) ([]string, error) {
	t.Helper()

	chunks := []string{}
	var streamErr error
	stream.Chunks(context.Background())(func(chunk string, err error) bool {
		if err != nil {
			streamErr = err
			return false
		}
		chunks = append(chunks, chunk)
		return true
	})
	return chunks, streamErr
}

func TestStreamYieldsDeltasInOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"Hi\"}}]}\n"))
		w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\" there\"}}]}\n"))
		w.Write([]byte("data: [DONE]\n"))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Credential: "test-key"})
	chunks, err := collectChunks(t, client.PromptWithStream([]Message{{Role: "user", Content: "Hello"}}))
	if err != nil {
		t.Fatalf("expected stream to succeed, got %v", err)
	}

	if len(chunks) != 2 || chunks[0] != "Hi" || chunks[1] != " there" {
		t.Fatalf("expected chunks [\"Hi\" \" there\"], got %v", chunks)
	}
}

func TestStreamReassemblesRecordSplitAcrossChunks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		w.Header().Set("Content-Type", "text/event-stream")
		// One record, flushed in two transport chunks mid-envelope.
		w.Write([]byte("data: {\"choices\":[{\"delta\":"))
		flusher.Flush()
		w.Write([]byte("{\"content\":\"split\"}}]}\n"))
		flusher.Flush()
		w.Write([]byte("data: [DONE]\n"))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Credential: "test-key"})
	chunks, err := collectChunks(t, client.PromptWithStream([]Message{{Role: "user", Content: "Hello"}}))
	if err != nil {
		t.Fatalf("expected stream to succeed, got %v", err)
	}

	if len(chunks) != 1 || chunks[0] != "split" {
		t.Fatalf("expected reassembled chunk [\"split\"], got %v", chunks)
	}
}

func TestStreamSkipsUndecodableRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: {not json\n"))
		w.Write([]byte("\n"))
		w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"ok\"}}]}\n"))
		w.Write([]byte("data: [DONE]\n"))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Credential: "test-key"})
	chunks, err := collectChunks(t, client.PromptWithStream([]Message{{Role: "user", Content: "Hello"}}))
	if err != nil {
		t.Fatalf("expected malformed records to be skipped, got %v", err)
	}

	if len(chunks) != 1 || chunks[0] != "ok" {
		t.Fatalf("expected chunks [\"ok\"], got %v", chunks)
	}
}

func TestStreamEndSentinelWithoutDataYieldsNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: [DONE]\n"))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Credential: "test-key"})
	chunks, err := collectChunks(t, client.PromptWithStream([]Message{{Role: "user", Content: "Hello"}}))
	if err != nil {
		t.Fatalf("expected stream to succeed, got %v", err)
	}

	if len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %v", chunks)
	}
}

func TestStreamDistinguishesRateLimitAndQuotaStatuses(t *testing.T) {
	testCases := []struct {
		name        string
		status      int
		expectedErr error
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, expectedErr: ErrRateLimited},
		{name: "quota exceeded", status: http.StatusPaymentRequired, expectedErr: ErrQuotaExceeded},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(testCase.status)
				w.Write([]byte(`{"error":"upstream says no"}`))
			}))
			defer server.Close()

			client := NewClient(Config{BaseURL: server.URL, Credential: "test-key"})
			chunks, err := collectChunks(t, client.PromptWithStream([]Message{{Role: "user", Content: "Hello"}}))
			if !errors.Is(err, testCase.expectedErr) {
				t.Fatalf("expected %v, got %v", testCase.expectedErr, err)
			}
			if len(chunks) != 0 {
				t.Fatalf("expected no chunks on error status, got %v", chunks)
			}
		})
	}
}

func TestStreamSurfacesErrorBodyMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"gateway exploded"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Credential: "test-key"})
	_, err := collectChunks(t, client.PromptWithStream([]Message{{Role: "user", Content: "Hello"}}))
	if err == nil {
		t.Fatalf("expected a transport error")
	}
	if got := err.Error(); !strings.Contains(got, "gateway exploded") {
		t.Fatalf("expected error to carry the collaborator message, got %q", got)
	}
}

func TestStreamTimeoutFailsSession(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.(http.Flusher).Flush()
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(Config{BaseURL: server.URL, Credential: "test-key", Timeout: 50 * time.Millisecond})
	_, err := collectChunks(t, client.PromptWithStream([]Message{{Role: "user", Content: "Hello"}}))
	if err == nil {
		t.Fatalf("expected a stalled stream to fail with a transport error")
	}
}
