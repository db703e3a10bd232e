package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/verify/internal/verify/domain"
	"github.com/aussiebroadwan/verify/internal/verify/store"
	"github.com/aussiebroadwan/verify/internal/verify/store/drivers/sqlite"
	"github.com/aussiebroadwan/verify/pkg/idx"
)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedPrincipal(t *testing.T, st store.Store, platformID string) domain.Principal {
	t.Helper()

	now := time.Now().UTC()
	principal, err := st.Principals().Upsert(context.Background(), domain.Principal{
		ID:          idx.New().String(),
		PlatformID:  platformID,
		DisplayName: "Ana",
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	return principal
}

func pendingToken(principalID, hash string, ttl time.Duration) domain.VerificationToken {
	now := time.Now().UTC()
	return domain.VerificationToken{
		ID:          idx.New().String(),
		PrincipalID: principalID,
		TokenHash:   hash,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

func TestPrincipalsUpsertIsIdempotentOnPlatformID(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	first := seedPrincipal(t, st, "platform-1")

	now := time.Now().UTC()
	second, err := st.Principals().Upsert(ctx, domain.Principal{
		ID:          idx.New().String(),
		PlatformID:  "platform-1",
		DisplayName: "Ana B",
		Handle:      "ana",
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "Ana B", second.DisplayName)
	require.Equal(t, first.CreatedAt, second.CreatedAt, "created_at must survive the upsert")
}

func TestPrincipalsGetByIDNotFound(t *testing.T) {
	st := openStore(t)

	_, err := st.Principals().GetByID(context.Background(), idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestTokensCreateRejectsDuplicateFingerprint(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	principal := seedPrincipal(t, st, "platform-2")

	require.NoError(t, st.Tokens().Create(ctx, pendingToken(principal.ID, "same-fp", time.Hour)))

	err := st.Tokens().Create(ctx, pendingToken(principal.ID, "same-fp", time.Hour))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestTokensGetByFingerprintResolvesExpiryLazily(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	principal := seedPrincipal(t, st, "platform-3")

	tok := pendingToken(principal.ID, "lazy-fp", time.Hour)
	require.NoError(t, st.Tokens().Create(ctx, tok))

	fresh, err := st.Tokens().GetByFingerprint(ctx, "lazy-fp", tok.ExpiresAt.Add(-time.Minute))
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, fresh.Status)

	// Same row reads as expired once the clock passes the deadline, with
	// no write in between.
	stale, err := st.Tokens().GetByFingerprint(ctx, "lazy-fp", tok.ExpiresAt.Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, domain.StatusExpired, stale.Status)
}

func TestTokensCompleteTransitions(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	principal := seedPrincipal(t, st, "platform-4")

	tok := pendingToken(principal.ID, "cas-fp", time.Hour)
	require.NoError(t, st.Tokens().Create(ctx, tok))

	completedAt := time.Now().UTC()
	done, err := st.Tokens().Complete(ctx, "cas-fp", completedAt)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	require.Equal(t, completedAt.Unix(), done.CompletedAt.Unix())

	_, err = st.Tokens().Complete(ctx, "cas-fp", completedAt)
	require.ErrorIs(t, err, store.ErrAlreadyCompleted)

	_, err = st.Tokens().Complete(ctx, "missing-fp", completedAt)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestTokensCompleteAfterDeadlinePersistsExpiry(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	principal := seedPrincipal(t, st, "platform-5")

	tok := pendingToken(principal.ID, "late-fp", time.Hour)
	require.NoError(t, st.Tokens().Create(ctx, tok))

	_, err := st.Tokens().Complete(ctx, "late-fp", tok.ExpiresAt.Add(time.Minute))
	require.ErrorIs(t, err, store.ErrExpired)

	// The rejection reconciles the row; a read before the deadline now
	// sees the persisted expired status.
	after, err := st.Tokens().GetByFingerprint(ctx, "late-fp", tok.ExpiresAt.Add(-time.Minute))
	require.NoError(t, err)
	require.Equal(t, domain.StatusExpired, after.Status)
}

func TestTokensGetLatestByPrincipalPicksNewest(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	principal := seedPrincipal(t, st, "platform-6")

	older := pendingToken(principal.ID, "old-fp", time.Hour)
	older.CreatedAt = older.CreatedAt.Add(-time.Minute)
	require.NoError(t, st.Tokens().Create(ctx, older))

	newer := pendingToken(principal.ID, "new-fp", time.Hour)
	require.NoError(t, st.Tokens().Create(ctx, newer))

	latest, err := st.Tokens().GetLatestByPrincipal(ctx, principal.ID, time.Now().UTC())
	require.NoError(t, err)
	require.Equal(t, newer.ID, latest.ID)
}

func TestTokensMarkExpired(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	principal := seedPrincipal(t, st, "platform-7")

	overdue := pendingToken(principal.ID, "overdue-fp", -time.Hour)
	require.NoError(t, st.Tokens().Create(ctx, overdue))
	require.NoError(t, st.Tokens().Create(ctx, pendingToken(principal.ID, "live-fp", time.Hour)))

	swept, err := st.Tokens().MarkExpired(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.Equal(t, int64(1), swept)

	again, err := st.Tokens().MarkExpired(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.Zero(t, again)
}

func TestBundlesOnePerToken(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	principal := seedPrincipal(t, st, "platform-8")

	tok := pendingToken(principal.ID, "bundle-fp", time.Hour)
	require.NoError(t, st.Tokens().Create(ctx, tok))

	bundle := domain.AttributeBundle{
		ID:      idx.New().String(),
		TokenID: tok.ID,
		IP:      "203.0.113.9",
		Country: "Australia",
		Extras: []domain.ExtraAttribute{
			{Key: "connection_type", Value: "wifi"},
		},
	}
	require.NoError(t, st.Bundles().Create(ctx, bundle))

	dup := bundle
	dup.ID = idx.New().String()
	require.ErrorIs(t, st.Bundles().Create(ctx, dup), store.ErrAlreadyExists)

	got, err := st.Bundles().GetByTokenID(ctx, tok.ID)
	require.NoError(t, err)
	require.Equal(t, bundle.IP, got.IP)
	require.Equal(t, bundle.Extras, got.Extras)

	_, err = st.Bundles().GetByTokenID(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	principal := seedPrincipal(t, st, "platform-9")

	boom := errors.New("boom")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Tokens().Create(ctx, pendingToken(principal.ID, "tx-fp", time.Hour)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.Tokens().GetByFingerprint(ctx, "tx-fp", time.Now().UTC())
	require.ErrorIs(t, err, store.ErrNotFound)
}
