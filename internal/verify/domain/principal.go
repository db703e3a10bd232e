package domain

import "time"

// Principal is the chat-platform end-user a verification is issued for.
// PlatformID is the immutable identifier assigned by the chat platform;
// display fields may change between issuances and are upserted each time.
type Principal struct {
	ID          string // internal ULID
	PlatformID  string
	DisplayName string
	Handle      string // optional, may be empty
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
