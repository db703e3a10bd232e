package domain

import "time"

// TokenStatus is the persisted lifecycle state of a verification token.
type TokenStatus string

const (
	StatusPending   TokenStatus = "pending"
	StatusCompleted TokenStatus = "completed"
	StatusExpired   TokenStatus = "expired"
	StatusFailed    TokenStatus = "failed"
)

// VerificationToken tracks a single verification attempt. The raw token is
// never persisted; TokenHash is its SHA-256 fingerprint and carries the
// uniqueness constraint. Only the status/completion transition mutates a
// token after creation, and it happens at most once.
type VerificationToken struct {
	ID          string // internal ULID
	PrincipalID string
	TokenHash   string
	Status      TokenStatus
	CreatedAt   time.Time
	ExpiresAt   time.Time
	CompletedAt *time.Time // set once on completion, nil until then
}

// StatusAt resolves the effective status at the given instant. A token
// still persisted as pending whose expiry has passed reads as expired;
// a writer may persist that later, but readers never depend on it.
func (t VerificationToken) StatusAt(now time.Time) TokenStatus {
	if t.Status == StatusPending && now.After(t.ExpiresAt) {
		return StatusExpired
	}
	return t.Status
}
