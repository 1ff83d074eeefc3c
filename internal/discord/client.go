// Package discord is a small REST client for the Discord endpoints the bot
// needs: channel history, guild members and message creation.
package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

const (
	// MaxMessagesPerPage is the API cap on a channel history page.
	MaxMessagesPerPage = 100
	// MaxMembersPerPage is the API cap on a guild member page.
	MaxMembersPerPage = 1000
)

var (
	// ErrRateLimited is returned when Discord keeps answering 429 after all
	// retries.
	ErrRateLimited = errors.New("discord: rate limited")
	ErrNotFound    = errors.New("discord: not found")
)

// APIError is a non-2xx response.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord api error: status=%d body=%s", e.Status, e.Body)
}

// Client talks to the Discord REST API with a bot token.
type Client struct {
	baseURL string
	token   string
	http    *fasthttp.Client

	defaultTimeout time.Duration
	retryMax       int
	maxRetryAfter  time.Duration
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.defaultTimeout = d }
}

func WithRetry(max int) Option {
	return func(c *Client) { c.retryMax = max }
}

// WithDial replaces the network dialer, used to serve requests in memory.
func WithDial(dial fasthttp.DialFunc) Option {
	return func(c *Client) { c.http.Dial = dial }
}

// WithMaxRetryAfter caps how long a single 429 backoff may sleep.
func WithMaxRetryAfter(d time.Duration) Option {
	return func(c *Client) { c.maxRetryAfter = d }
}

func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		token:          token,
		http:           &fasthttp.Client{ReadTimeout: 15 * time.Second, WriteTimeout: 15 * time.Second, MaxConnsPerHost: 16},
		defaultTimeout: 15 * time.Second,
		retryMax:       3,
		maxRetryAfter:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListChannelMessages returns up to limit messages older than before
// (newest first). An empty before starts at the latest message.
func (c *Client) ListChannelMessages(ctx context.Context, channelID, before string, limit int) ([]Message, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(clampLimit(limit, MaxMessagesPerPage)))
	if before != "" {
		q.Set("before", before)
	}

	var out []Message
	path := "/channels/" + url.PathEscape(channelID) + "/messages?" + q.Encode()
	if err := c.doJSON(ctx, fasthttp.MethodGet, path, nil, &out, true); err != nil {
		return nil, fmt.Errorf("list channel messages: %w", err)
	}
	return out, nil
}

// ListGuildMembers returns up to limit members whose id sorts after after.
func (c *Client) ListGuildMembers(ctx context.Context, guildID, after string, limit int) ([]Member, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(clampLimit(limit, MaxMembersPerPage)))
	if after != "" {
		q.Set("after", after)
	}

	var out []Member
	path := "/guilds/" + url.PathEscape(guildID) + "/members?" + q.Encode()
	if err := c.doJSON(ctx, fasthttp.MethodGet, path, nil, &out, true); err != nil {
		return nil, fmt.Errorf("list guild members: %w", err)
	}
	return out, nil
}

// CreateMessage posts msg to a channel. It is not retried on 5xx since the
// message may already have been delivered.
func (c *Client) CreateMessage(ctx context.Context, channelID string, msg OutgoingMessage) (*Message, error) {
	var out Message
	path := "/channels/" + url.PathEscape(channelID) + "/messages"
	if err := c.doJSON(ctx, fasthttp.MethodPost, path, msg, &out, false); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return &out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any, retry bool) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", "Bot "+c.token)
	req.Header.Set("User-Agent", "DiscordBot (wordle-bot, 1.0)")

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		req.SetBody(payload)
	}

	attempts := max(c.retryMax, 1)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := c.http.DoDeadline(req, resp, c.computeDeadline(ctx))
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			if attempt == attempts || !retry {
				return lastErr
			}
			if sleepErr := sleepWithContext(ctx, backoffDuration(attempt)); sleepErr != nil {
				return lastErr
			}
			continue
		}

		status := resp.StatusCode()
		switch {
		case status == fasthttp.StatusTooManyRequests:
			// 429 is always safe to retry: the request was not processed.
			lastErr = ErrRateLimited
			if attempt == attempts {
				return lastErr
			}
			if sleepErr := sleepWithContext(ctx, c.retryAfter(resp.Body(), attempt)); sleepErr != nil {
				return sleepErr
			}
			continue

		case status == fasthttp.StatusNotFound:
			return ErrNotFound

		case status < 200 || status >= 300:
			lastErr = &APIError{Status: status, Body: truncate(string(resp.Body()), 512)}
			if attempt == attempts || !retry || !shouldRetryStatus(status) {
				return lastErr
			}
			if sleepErr := sleepWithContext(ctx, backoffDuration(attempt)); sleepErr != nil {
				return lastErr
			}
			continue
		}

		if out != nil && len(resp.Body()) > 0 {
			if err := json.Unmarshal(resp.Body(), out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
		}
		return nil
	}

	if lastErr == nil {
		lastErr = errors.New("unknown error")
	}
	return lastErr
}

func (c *Client) retryAfter(body []byte, attempt int) time.Duration {
	var rl rateLimitBody
	if err := json.Unmarshal(body, &rl); err != nil || rl.RetryAfter <= 0 {
		return backoffDuration(attempt)
	}
	d := time.Duration(rl.RetryAfter * float64(time.Second))
	return min(d, c.maxRetryAfter)
}

func (c *Client) computeDeadline(ctx context.Context) time.Time {
	clientDL := time.Now().Add(c.defaultTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(clientDL) {
		return dl
	}
	return clientDL
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func backoffDuration(attempt int) time.Duration {
	attempt = min(max(attempt, 1), 6)
	return time.Duration(1<<uint(attempt-1)) * 100 * time.Millisecond
}

func shouldRetryStatus(code int) bool {
	switch code {
	case 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

func clampLimit(limit, ceiling int) int {
	if limit <= 0 || limit > ceiling {
		return ceiling
	}
	return limit
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
