package errx

import (
	"context"
	"errors"
	"net/http"
)

// WrapGateway maps language-model transport errors to the unified Error type.
// Deadline expiry keeps its own status so callers can tell a hung upstream
// apart from a hard failure.
func WrapGateway(err error) *Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return New(err, http.StatusGatewayTimeout, GatewayErrorMessage)
	}

	return New(err, http.StatusBadGateway, GatewayErrorMessage)
}
