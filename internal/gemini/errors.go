package gemini

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"google.golang.org/genai"
)

// Transport failures of a single exchange. Callers match them with errors.Is.
var (
	ErrNetwork = errors.New("network error")
	ErrAuth    = errors.New("authentication error")
	ErrRemote  = errors.New("remote error")
)

// IsTransport reports whether err is a failed exchange rather than a local problem.
func IsTransport(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrAuth) || errors.Is(err, ErrRemote)
}

// classify wraps err with the transport failure it represents.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if code, msg, ok := apiError(err); ok {
		switch {
		case code == http.StatusUnauthorized, code == http.StatusForbidden:
			return fmt.Errorf("%w: %w", ErrAuth, err)
		// Gemini answers a bad key with 400 INVALID_ARGUMENT "API key not valid".
		case code == http.StatusBadRequest && strings.Contains(strings.ToLower(msg), "api key"):
			return fmt.Errorf("%w: %w", ErrAuth, err)
		default:
			return fmt.Errorf("%w: %w", ErrRemote, err)
		}
	}

	var netErr net.Error
	var urlErr *url.Error
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	case errors.As(err, &netErr), errors.As(err, &urlErr):
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	return fmt.Errorf("%w: %w", ErrRemote, err)
}

func apiError(err error) (int, string, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.Message, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, apiErrPtr.Message, true
	}
	return 0, "", false
}
