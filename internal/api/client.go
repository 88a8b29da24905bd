package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

const maxResponseBody = 4 << 20

// Authenticator отдаёт bearer-токен пользователя, от имени которого идёт запрос
type Authenticator interface {
	Bearer(ctx context.Context) (string, bool)
}

// Config настройки клиента REST API маркетплейса
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	Retries   uint64        // повторы идемпотентных GET
	RetryBase time.Duration // первая пауза экспоненциального backoff
}

// Client клиент REST API маркетплейса
type Client struct {
	baseURL   string
	http      *http.Client
	auth      Authenticator
	retries   uint64
	retryBase time.Duration
	logger    *zap.Logger
}

// NewClient создаёт клиент API
func NewClient(cfg Config, auth Authenticator, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retryBase := cfg.RetryBase
	if retryBase <= 0 {
		retryBase = 200 * time.Millisecond
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		http:      &http.Client{Timeout: timeout},
		auth:      auth,
		retries:   cfg.Retries,
		retryBase: retryBase,
		logger:    logger,
	}
}

// request описание одного обращения к API
type request struct {
	method      string
	path        string
	body        interface{} // сериализуется в JSON
	raw         []byte      // готовое тело (multipart)
	contentType string
	public      bool // запрос без токена
}

// do выполняет запрос и раскладывает ответ в out
func (c *Client) do(ctx context.Context, r request, out interface{}) error {
	var token string
	if !r.public {
		t, ok := c.auth.Bearer(ctx)
		if !ok {
			return ErrUnauthorized
		}
		token = t
	}

	payload := r.raw
	contentType := r.contentType
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = data
		contentType = "application/json"
	}

	attempt := func(ctx context.Context) error {
		return c.send(ctx, r, token, payload, contentType, out)
	}

	if r.method != http.MethodGet || c.retries == 0 {
		return attempt(ctx)
	}

	backoff := retry.WithMaxRetries(c.retries, retry.NewExponential(c.retryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := attempt(ctx)
		if isTemporary(err) {
			c.logger.Debug("Retrying API request",
				zap.String("method", r.method),
				zap.String("path", r.path),
				zap.Error(err))
			return retry.RetryableError(err)
		}
		return err
	})
}

// send один HTTP-запрос без повторов
func (c *Client) send(ctx context.Context, r request, token string, payload []byte, contentType string, out interface{}) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("API request failed",
			zap.String("method", r.method),
			zap.String("path", r.path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	c.logger.Debug("API request",
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("took", time.Since(started)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := decodeData(data, out); err != nil {
		return fmt.Errorf("decode response %s %s: %w", r.method, r.path, err)
	}
	return nil
}

// decodeData снимает обёртку {"data": ...}, если бэкенд её прислал
func decodeData(data []byte, out interface{}) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err == nil {
			if inner, ok := envelope["data"]; ok {
				return json.Unmarshal(inner, out)
			}
		}
	}
	return json.Unmarshal(trimmed, out)
}

// isTemporary ошибки, после которых GET можно повторить
func isTemporary(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnavailable) {
		return true
	}
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Temporary()
}
