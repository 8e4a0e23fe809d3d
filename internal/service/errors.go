package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/mmeshcher/award-search/internal/seatsaero"
)

// ProviderError описывает неуспешный ответ провайдера поиска.
type ProviderError struct {
	Code       int
	Message    string
	RetryAfter time.Duration
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("award search provider: status %d", e.Code)
}

const (
	msgNetwork    = "Network connection error. Please check your internet connection and try again."
	msgTimeout    = "The request timed out. Please try again."
	msgUnexpected = "An unexpected error occurred. Please try again."
)

// UserMessage возвращает понятное пользователю сообщение для ошибки поиска.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		return statusMessage(pe.Code, pe.Message)
	}

	var se *seatsaero.StatusError
	if errors.As(err, &se) {
		return statusMessage(se.Code, se.Message)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return msgTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return msgTimeout
		}
		return msgNetwork
	}

	if errors.Is(err, seatsaero.ErrNotConfigured) {
		return statusMessage(http.StatusServiceUnavailable, "")
	}

	return msgUnexpected
}

func statusMessage(code int, detail string) string {
	switch code {
	case http.StatusBadRequest:
		if detail != "" {
			return detail
		}
		return "Invalid request. Please check your input and try again."
	case http.StatusUnauthorized:
		return "Authentication required. Please log in."
	case http.StatusForbidden:
		return "You don't have permission to perform this action."
	case http.StatusNotFound:
		return "The requested resource was not found."
	case http.StatusRequestTimeout:
		return "Request timeout. Please try again."
	case http.StatusConflict:
		if detail == "" {
			detail = "This action conflicts with existing data."
		}
		return "Conflict: " + detail
	case http.StatusUnprocessableEntity:
		if detail == "" {
			detail = "Please check your input."
		}
		return "Validation error: " + detail
	case http.StatusTooManyRequests:
		return "Too many requests. Please wait a moment and try again."
	case http.StatusInternalServerError:
		return "Server error. We're working to fix this issue."
	case http.StatusBadGateway:
		return "Service temporarily unavailable. Please try again."
	case http.StatusServiceUnavailable:
		return "Service maintenance in progress. Please try again later."
	default:
		if detail != "" {
			return detail
		}
		return "An error occurred while processing your request."
	}
}
