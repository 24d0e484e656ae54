// Package openai is a chat-completions client for OpenAI-compatible APIs,
// with client-side rate limiting and retries on transient failures.
package openai

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_qa/internal/adapters/observability"
	"hotel_qa/internal/domain"
)

var (
	ErrUnauthorized = errors.New("openai: unauthorized")
	ErrForbidden    = errors.New("openai: forbidden")
	ErrNotFound     = errors.New("openai: not found")
)

type Client struct {
	base        string
	key         string
	model       string
	temperature float64
	hc          *http.Client
	rl          *rate.Limiter
}

func New(base, key, model string, temperature float64, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:        strings.TrimRight(base, "/"),
		key:         key,
		model:       model,
		temperature: temperature,
		hc:          &http.Client{Timeout: 60 * time.Second},
		rl:          rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

type chatRequest struct {
	Model       string           `json:"model"`
	Messages    []domain.Message `json:"messages"`
	Temperature float64          `json:"temperature"`
	Tools       []map[string]any `json:"tools,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string            `json:"content"`
			ToolCalls []domain.ToolCall `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

// Chat sends one completion request and returns the assistant content plus
// any tool calls the model decided on.
func (c *Client) Chat(ctx context.Context, messages []domain.Message, tools []map[string]any) (domain.ChatResult, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		Tools:       tools,
	})
	if err != nil {
		return domain.ChatResult{}, err
	}

	start := time.Now()
	var out chatResponse
	status, err := c.post(ctx, c.base+"/chat/completions", body, &out)
	observability.ObserveModel(c.model, status, time.Since(start))
	if err != nil {
		return domain.ChatResult{}, err
	}
	if len(out.Choices) == 0 {
		return domain.ChatResult{}, errors.New("openai: empty choices in response")
	}
	msg := out.Choices[0].Message
	return domain.ChatResult{Content: msg.Content, ToolCalls: msg.ToolCalls}, nil
}

// post performs a POST with client-side rate limiting and retries on 429 and
// transient 5xx, honoring Retry-After when provided. Returns the last HTTP
// status seen (0 on transport failure).
func (c *Client) post(ctx context.Context, url string, body []byte, out any) (int, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return 0, err
	}

	var lastErr error
	lastStatus := 0
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return lastStatus, err
		}
		req.Header.Set("Authorization", "Bearer "+c.key)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return lastStatus, ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return lastStatus, ctx.Err()
			}
			return lastStatus, lastErr
		}
		lastStatus = resp.StatusCode

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return lastStatus, err

		case http.StatusUnauthorized:
			resp.Body.Close()
			return lastStatus, ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return lastStatus, ErrForbidden

		case http.StatusNotFound:
			resp.Body.Close()
			return lastStatus, ErrNotFound

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return lastStatus, ctx.Err()
			}
			return lastStatus, lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return lastStatus, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastStatus, lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles per attempt (200ms, 400ms, 800ms...) with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
