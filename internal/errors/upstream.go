package errors

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// FallbackMessage is shown to the operator when the shop API gives no usable message.
const FallbackMessage = "عملیات ناموفق بود. دوباره تلاش کنید."

// StatusError is implemented by transport errors that carry an HTTP status and
// a server-provided message.
type StatusError interface {
	error
	StatusCode() int
	ServerMessage() string
}

// MapUpstreamError maps shop API and transport errors to AppError instances:
// - context timeouts/cancellations → Timeout/Canceled
// - 400/422 → Validation
// - 401/403 → Unauthorized
// - 404 → NotFound
// - 409 → Conflict
// - anything else carrying a status → Upstream
//
// Errors that are already AppErrors are returned unchanged. Unrecognized errors
// become Upstream errors with the fallback message.
func MapUpstreamError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{Code: ErrCodeTimeout, Message: "زمان پاسخ‌گویی سرور به پایان رسید.", Cause: err}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{Code: ErrCodeCanceled, Message: "درخواست لغو شد.", Cause: err}
	}

	var se StatusError
	if !errors.As(err, &se) {
		return Upstream(FallbackMessage, err)
	}

	return &AppError{
		Code:    codeForStatus(se.StatusCode()),
		Message: messageOrFallback(se.ServerMessage()),
		Status:  se.StatusCode(),
		Cause:   err,
	}
}

// UserMessage returns the operator-facing message for err, preferring the
// server-provided text and falling back to FallbackMessage.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(MapUpstreamError(err), &appErr) {
		return messageOrFallback(appErr.Message)
	}
	return FallbackMessage
}

func codeForStatus(status int) ErrorCode {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrCodeValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrCodeUnauthorized
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	default:
		return ErrCodeUpstream
	}
}

func messageOrFallback(msg string) string {
	if strings.TrimSpace(msg) == "" {
		return FallbackMessage
	}
	return msg
}
