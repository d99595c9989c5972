package errors

import (
	"context"
	goerrors "errors"
	"reflect"
	"strings"

	apperrors "github.com/target/shop-admin/internal/errors"
)

// Classify returns a normalized error class suitable for tagging metrics/logs.
// Shop API failures classify by their application code (validation, unauthorized, ...);
// anything else falls back to the innermost concrete type name.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	if classifiable(err) {
		return string(apperrors.GetCode(apperrors.MapUpstreamError(err)))
	}

	// Unwrap to the innermost error for better signal.
	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			break
		}
		err = unwrapped
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}

	name := strings.ToLower(strings.ReplaceAll(t.String(), "*", ""))
	name = strings.ReplaceAll(name, ".", "_")
	if name == "" {
		return "unknown"
	}
	return name
}

func classifiable(err error) bool {
	var appErr *apperrors.AppError
	var statusErr apperrors.StatusError
	return goerrors.As(err, &appErr) ||
		goerrors.As(err, &statusErr) ||
		goerrors.Is(err, context.DeadlineExceeded) ||
		goerrors.Is(err, context.Canceled)
}
