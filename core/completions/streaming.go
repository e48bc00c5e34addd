package completions

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// StreamOption adjusts one streaming prompt.
type StreamOption func(*streamOptions)

type streamOptions struct {
	instructions string
}

// WithInstructions prepends a system message to the outbound conversation.
func WithInstructions(instructions string) StreamOption {
	return func(o *streamOptions) {
		o.instructions = instructions
	}
}

// PromptWithStream prepares a streaming completion for the given
// conversation. The request is not dispatched until Chunks is iterated, so a
// stream can be restarted per session by iterating again.
func (c *Client) PromptWithStream(conversation []Message, opts ...StreamOption) *Stream {
	options := streamOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	return &Stream{
		client:   c,
		messages: toMessages(options.instructions, conversation),
	}
}

// Stream is one outstanding request/response exchange. Chunks yields content
// deltas in arrival order; a terminal error ends the iteration without
// retracting deltas already yielded.
type Stream struct {
	client   *Client
	messages []message
}

type requestBody struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type streamingResponseBody struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

type errorResponseBody struct {
	Error string `json:"error"`
}

// Chunks returns a push iterator over the content deltas of the response
// stream. Reads are sequential; each yielded delta was fully received before
// the next read is issued.
func (s *Stream) Chunks(ctx context.Context) func(func(string, error) bool) {
	requestToFirstTokenTime := time.Time{}

	return func(yield func(string, error) bool) {
		ctx, span := tracer.Start(ctx, "prompt completion stream")
		defer span.End()
		span.SetAttributes(attribute.String("request.model", s.client.config.Model))

		if timeout := s.client.config.Timeout; timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		reqBody := requestBody{
			Model:    s.client.config.Model,
			Messages: s.messages,
			Stream:   true,
		}

		requestBodyBytes, err := json.Marshal(reqBody)
		if err != nil {
			err = fmt.Errorf("error marshalling JSON: %w", err)
			span.RecordError(err)
			yield("", err)
			return
		}

		req, err := http.NewRequestWithContext(ctx, "POST", s.client.url(), bytes.NewBuffer(requestBodyBytes))
		if err != nil {
			err = fmt.Errorf("error creating HTTP request: %w", err)
			span.RecordError(err)
			yield("", err)
			return
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+s.client.config.Credential)

		span.SetAttributes(attribute.String("request.url", req.URL.String()))
		requestToFirstTokenTime = time.Now()
		span.AddEvent("request started")
		resp, err := s.client.httpClient.Do(req)
		if err != nil {
			err = fmt.Errorf("error sending request: %w", err)
			span.RecordError(err)
			yield("", err)
			return
		}
		defer resp.Body.Close()

		span.SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
		if resp.StatusCode != http.StatusOK {
			err := statusError(resp)
			span.RecordError(err)
			yield("", err)
			return
		}

		firstChunk := true
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, chunkPrefix) {
				continue
			}
			chunk := strings.TrimSpace(strings.TrimPrefix(line, chunkPrefix))

			if firstChunk {
				span.SetAttributes(attribute.Float64("response.request_to_first_token_time", time.Since(requestToFirstTokenTime).Seconds()))
				span.AddEvent("received first chunk")
				firstChunk = false
			}

			if len(chunk) == 0 {
				continue
			}

			if chunk == endMessage {
				return
			}

			var responseBody streamingResponseBody
			if err := json.Unmarshal([]byte(chunk), &responseBody); err != nil {
				// A record that does not parse is a chunk-boundary artifact;
				// skip it without failing the stream.
				logger.WarnContext(ctx, "skipping undecodable stream record", "error", err)
				continue
			}

			if len(responseBody.Choices) == 0 {
				continue
			}

			if content := responseBody.Choices[0].Delta.Content; content != "" {
				if !yield(content, nil) {
					return
				}
			}
		}

		if err := scanner.Err(); err != nil {
			err = fmt.Errorf("error reading streamed response: %w", err)
			span.RecordError(err)
			yield("", err)
			return
		}
	}
}

func statusError(resp *http.Response) error {
	var message string
	if errorBodyBytes, err := io.ReadAll(resp.Body); err == nil {
		var errorBody errorResponseBody
		if err := json.Unmarshal(errorBodyBytes, &errorBody); err == nil {
			message = errorBody.Error
		}
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusPaymentRequired:
		return ErrQuotaExceeded
	}

	if message != "" {
		return fmt.Errorf("non-OK HTTP status %s: %s", resp.Status, message)
	}
	return fmt.Errorf("non-OK HTTP status: %s", resp.Status)
}
