package fleetapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnavailable ответ от API автопарка не получен (соединение, таймаут транспорта)
var ErrUnavailable = errors.New("API автопарка недоступен")

// UnavailableMessage текст уведомления для пользователя при недоступном API
const UnavailableMessage = "Não foi possível conectar à API da frota"

// APIError ответ API со статусом, отличным от ожидаемого
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("неверный статус ответа: %d", e.Status)
	}
	return fmt.Sprintf("неверный статус ответа: %d: %s", e.Status, e.Message)
}

func newAPIError(resp *Response) *APIError {
	apiErr := &APIError{Status: resp.Status}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err == nil {
		apiErr.Message = payload.Error
		if apiErr.Message == "" {
			apiErr.Message = payload.Message
		}
	}

	return apiErr
}

// StatusOf возвращает HTTP статус ответа API или 0, если ответа не было
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsNotFound сообщает, что API ответил 404
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// Message подбирает текст для уведомления: сообщение сервера, если оно есть,
// иначе fallback. Для недоступного API возвращается UnavailableMessage.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnavailable) {
		return UnavailableMessage
	}
	return fallback
}
