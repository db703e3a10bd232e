package verifysdk

// ============================================================================
// Internal Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse represents an error response from the verification service.
// This is used internally for parsing HTTP error responses. Client code
// should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g., "invalid_request")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Verification Types
// ============================================================================

// IssueVerificationRequest asks the service to mint a verification token
// for a chat-platform principal.
type IssueVerificationRequest struct {
	// PlatformID is the immutable chat-platform identifier of the principal
	PlatformID string `json:"platform_id"`

	// DisplayName is the principal's current display name (optional)
	DisplayName string `json:"display_name,omitempty"`

	// Handle is the principal's current handle without the @ prefix (optional)
	Handle string `json:"handle,omitempty"`
}

// IssueVerificationResponse is returned from POST /v1/verifications.
type IssueVerificationResponse struct {
	// Token is the raw single-use verification token. The service only
	// stores its fingerprint, so this is the only copy.
	Token string `json:"token"`

	// VerificationURL is the link the principal should open to verify
	VerificationURL string `json:"verification_url"`

	// ExpiresAt is the RFC3339 deadline after which the token is void
	ExpiresAt string `json:"expires_at"`
}

// CompleteVerificationRequest carries the collected attribute bundle back
// to the service. Bundle is intentionally loose: the collection page sends
// whatever it managed to gather.
type CompleteVerificationRequest struct {
	// Token is the raw verification token from the issued link
	Token string `json:"token"`

	// Bundle is the collected attribute payload
	Bundle map[string]any `json:"bundle"`
}

// CompleteVerificationResponse is returned from POST /v1/verifications/complete.
type CompleteVerificationResponse struct {
	// PlatformID identifies the principal the token belonged to
	PlatformID string `json:"platform_id"`

	// DisplayName is the principal's display name at issuance time
	DisplayName string `json:"display_name,omitempty"`

	// CompletedAt is the RFC3339 completion timestamp
	CompletedAt string `json:"completed_at"`

	// Report is the rendered operator notification text
	Report string `json:"report"`
}

// StatusResponse is returned from GET /v1/verifications/status.
type StatusResponse struct {
	// Active is false when the principal has no verification tokens
	Active bool `json:"active"`

	// Status is the lazily-resolved token status (pending, completed,
	// expired, failed); empty when Active is false
	Status string `json:"status,omitempty"`

	// StatusText is the human-readable form shown to principals
	StatusText string `json:"status_text"`

	// ExpiresAt is the RFC3339 deadline of the most recent token
	ExpiresAt string `json:"expires_at,omitempty"`

	// CompletedAt is the RFC3339 completion time, when completed
	CompletedAt string `json:"completed_at,omitempty"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`
}
