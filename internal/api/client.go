package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client HTTP-клиент к REST API бэкенда Solara.
// Все вызовы идут с фиксированным таймаутом и bearer-токеном
type Client struct {
	baseURL string
	http    *http.Client
	token   func() string
	logger  *zap.Logger
}

// Pagination постраничный конверт коллекций бэкенда
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type listEnvelope[T any] struct {
	Content    []T        `json:"content"`
	Pagination Pagination `json:"pagination"`
}

// Error ошибка уровня API с сообщением сервера, если оно было
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: unexpected status %d", e.Status)
}

// IsNotFound проверяет, является ли ошибка ответом 404
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// NewClient создаёт клиент API. tokenFn может быть nil для анонимных вызовов
func NewClient(baseURL string, timeout time.Duration, tokenFn func() string, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		token:   tokenFn,
		logger:  logger,
	}
}

// do выполняет запрос и декодирует ответ в out (если out != nil).
// Не-2xx статус превращается в *Error с сообщением из тела, когда оно есть
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.readError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) readError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	var payload struct {
		Message string `json:"message"`
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && json.Unmarshal(data, &payload) == nil {
		apiErr.Message = payload.Message
	}

	c.logger.Warn("API request failed",
		zap.Int("status", resp.StatusCode),
		zap.String("url", resp.Request.URL.Path),
		zap.String("message", apiErr.Message))

	return apiErr
}

// getList запрашивает постраничную коллекцию и возвращает её содержимое
func getList[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, *Pagination, error) {
	var envelope listEnvelope[T]
	if err := c.do(ctx, http.MethodGet, path, query, nil, &envelope); err != nil {
		return nil, nil, err
	}
	return envelope.Content, &envelope.Pagination, nil
}

func limitQuery(limit int) url.Values {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", fmt.Sprint(limit))
	}
	return query
}
