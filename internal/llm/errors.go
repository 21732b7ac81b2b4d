package llm

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNoContent means the service answered successfully but returned no usable candidate text.
var ErrNoContent = errors.New("no usable candidate in response")

// APIError is a non-2xx answer from the generation endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("API call failed with status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("API call failed with status %d", e.StatusCode)
}

// StatusCode extracts an HTTP status from err, or 0 when err carries none.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code
	}
	if s, ok := status.FromError(err); ok && s.Code() == codes.ResourceExhausted {
		return http.StatusTooManyRequests
	}
	return 0
}

// IsRateLimited reports whether err is a throttling (HTTP 429) answer from either transport.
func IsRateLimited(err error) bool {
	return err != nil && StatusCode(err) == http.StatusTooManyRequests
}
