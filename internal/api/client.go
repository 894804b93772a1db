package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"abinexis-storefront/internal/logger"
	"abinexis-storefront/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Outbound throttle. Matches the backend's frontend-tier rate limit so the
// client never trips it under normal use.
const (
	limitOutbound = rate.Limit(20)
	burstOutbound = 40
)

// validated is implemented by every response DTO.
type validated interface {
	Validate() error
}

// Client talks to the storefront backend. All durable state lives behind it;
// the client holds only the session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	limiter    *rate.Limiter
}

func NewClient(baseURL string, timeout time.Duration, sess *session.Session) (*Client, error) {
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		session: sess,
		limiter: rate.NewLimiter(limitOutbound, burstOutbound),
	}, nil
}

// do builds, sends, and decodes one API call. Every call gets a fresh
// request id, carries the bearer token when one is held, and invalidates
// the session on a 401 so nothing keeps trusting a dead token.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out validated) error {
	reqID := uuid.New().String()
	ctx = logger.WithRequestID(ctx, reqID)

	log := logger.FromCtx(ctx).With(
		zap.String("method", method),
		zap.String("path", path),
	)

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			log.Error("Failed to marshal request body", zap.Error(err))
			return err
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if token, err := c.session.Token(); err == nil {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("Backend request failed", zap.Error(err))
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return fmt.Errorf("failed to read backend response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		log.Warn("Token rejected, invalidating session")
		c.session.Invalidate()
		return fmt.Errorf("%w: %s", ErrUnauthorized, serverMessage(bodyBytes))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error("Backend returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return &APIError{StatusCode: resp.StatusCode, Message: serverMessage(bodyBytes)}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		log.Error("Failed decoding backend response", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if err := out.Validate(); err != nil {
		log.Error("Backend response failed validation", zap.Error(err))
		return err
	}

	return nil
}

// serverMessage pulls the free-text message out of an error payload, falling
// back to the raw body.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}
