package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/verify/internal/verify/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrAlreadyCompleted reports that a token has already left the pending
	// state; the conditional completion found nothing to transition.
	ErrAlreadyCompleted = errors.New("store: token already completed")

	// ErrExpired reports that a token's expiry passed before completion,
	// regardless of whether the persisted status still says pending.
	ErrExpired = errors.New("store: token expired")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. It exposes sub-repositories to keep concerns tidy
// and testable.
type Store interface {
	Principals() Principals
	Tokens() Tokens
	Bundles() Bundles

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction. If fn returns an
	// error, the transaction is rolled back; otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Principals interface {
	// Upsert inserts a principal keyed by its immutable platform identifier,
	// or refreshes the display fields if one already exists. Idempotent;
	// returns the stored principal either way.
	Upsert(ctx context.Context, p domain.Principal) (domain.Principal, error)

	// GetByPlatformID returns a principal by its platform identifier.
	GetByPlatformID(ctx context.Context, platformID string) (domain.Principal, error)

	// GetByID returns a principal by its internal id.
	GetByID(ctx context.Context, id string) (domain.Principal, error)
}

type Tokens interface {
	// Create persists a new pending token. Returns ErrAlreadyExists if the
	// fingerprint collides with an existing token; the caller regenerates.
	Create(ctx context.Context, t domain.VerificationToken) error

	// GetByFingerprint returns the token with the given fingerprint. The
	// returned view applies lazy expiry: a pending token past its expiry
	// reads as expired regardless of what is persisted.
	GetByFingerprint(ctx context.Context, fingerprint string, now time.Time) (domain.VerificationToken, error)

	// GetLatestByPrincipal returns the most recently created token for a
	// principal, lazily expired like GetByFingerprint.
	GetLatestByPrincipal(ctx context.Context, principalID string, now time.Time) (domain.VerificationToken, error)

	// Complete atomically transitions a pending, unexpired token to
	// completed and stamps the completion time. Exactly one concurrent
	// caller succeeds; the rest observe ErrAlreadyCompleted. Returns
	// ErrExpired when the expiry passed first and ErrNotFound when no such
	// token exists. The returned token reflects the post-transition row.
	Complete(ctx context.Context, fingerprint string, completedAt time.Time) (domain.VerificationToken, error)

	// MarkExpired persists the expired status for any pending tokens whose
	// expiry has passed. Housekeeping only; readers never depend on it.
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
}

type Bundles interface {
	// Create attaches a bundle to a token. At most one bundle may exist
	// per token (enforced by a uniqueness constraint on the token ref).
	Create(ctx context.Context, b domain.AttributeBundle) error

	// GetByTokenID returns the bundle attached to a token.
	GetByTokenID(ctx context.Context, tokenID string) (domain.AttributeBundle, error)
}
