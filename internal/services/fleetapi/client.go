package fleetapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fleet-console/internal/middleware"

	log "github.com/sirupsen/logrus"
)

// Client клиент REST API автопарка
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Response статус и тело ответа API
type Response struct {
	Status int
	Body   []byte
}

// NewClient создает новый клиент для работы с API автопарка
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL возвращает адрес API, к которому обращается клиент
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do выполняет запрос к API и возвращает статус и тело ответа.
// Ошибка возвращается только если ответ не был получен; статус ответа не проверяется.
func (c *Client) Do(ctx context.Context, operation, method, path string, query url.Values, body interface{}) (*Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка при маршалинге данных: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании запроса: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := log.WithFields(log.Fields{"operation": operation, "method": method, "url": target})
	logger.Debug("Отправляем запрос к API автопарка")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		middleware.TrackFleetAPIRequest(operation, "error", time.Since(start))
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Debug("Запрос к API автопарка отменен")
			return nil, fmt.Errorf("%s: %w", operation, ctxErr)
		}
		logger.WithError(err).Warn("Ошибка при выполнении запроса к API автопарка")
		return nil, fmt.Errorf("%s: %w: %v", operation, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	middleware.TrackFleetAPIRequest(operation, strconv.Itoa(resp.StatusCode), time.Since(start))
	if err != nil {
		logger.WithError(err).Warn("Ошибка при чтении тела ответа")
		return nil, fmt.Errorf("%s: ошибка при чтении ответа: %w", operation, err)
	}

	logger.WithField("status", resp.StatusCode).Debug("Получен ответ от API автопарка")

	return &Response{Status: resp.StatusCode, Body: data}, nil
}

// Decode разбирает JSON тело ответа
func (r *Response) Decode(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("ошибка при декодировании ответа: %w", err)
	}
	return nil
}

// call выполняет запрос и проверяет, что статус совпадает с ожидаемым
func (c *Client) call(ctx context.Context, operation, method, path string, query url.Values, body interface{}, want int, out interface{}) error {
	resp, err := c.Do(ctx, operation, method, path, query, body)
	if err != nil {
		return err
	}

	if resp.Status != want {
		apiErr := newAPIError(resp)
		log.WithFields(log.Fields{
			"operation": operation,
			"status":    resp.Status,
		}).Warn("API автопарка вернул неожиданный статус")
		return fmt.Errorf("%s: %w", operation, apiErr)
	}

	if out == nil {
		return nil
	}
	if err := resp.Decode(out); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return nil
}

func pageQuery(page, pageSize int, search string) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))
	if search != "" {
		params.Set("search", search)
	}
	return params
}

// IsCanceled сообщает, что запрос был прерван отменой контекста
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
