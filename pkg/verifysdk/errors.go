package verifysdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes returned by the verification service.
const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeUnauthorized      = "unauthorized"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeAlreadyCompleted  = "already_completed"
	ErrorCodeExpired           = "expired"
	ErrorCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrorCodeServerError       = "server_error"
)

// APIError is a typed error parsed from a service error response.
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int

	// Code is the machine-readable error code
	Code string

	// Description is the human-readable error description
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Description)
	}
	return e.Code
}

// IsNotFound reports whether the error is a not_found rejection.
func (e *APIError) IsNotFound() bool { return e.Code == ErrorCodeNotFound }

// IsAlreadyCompleted reports whether the token was already redeemed.
func (e *APIError) IsAlreadyCompleted() bool { return e.Code == ErrorCodeAlreadyCompleted }

// IsExpired reports whether the token's deadline had passed.
func (e *APIError) IsExpired() bool { return e.Code == ErrorCodeExpired }

// parseErrorResponse converts an error response body into an *APIError.
// Unparseable bodies still yield a usable error with the HTTP status.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        ErrorCodeServerError,
			Description: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        errResp.Error,
		Description: errResp.ErrorDescription,
	}
}
