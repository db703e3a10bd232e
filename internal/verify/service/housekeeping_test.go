package service_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/verify/internal/verify/domain"
	"github.com/aussiebroadwan/verify/internal/verify/service"
	"github.com/aussiebroadwan/verify/pkg/idx"
)

func TestHousekeepingSweepsOverdueTokens(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	principal, err := st.Principals().Upsert(ctx, domain.Principal{
		ID:         idx.New().String(),
		PlatformID: "555100",
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)

	overdue := domain.VerificationToken{
		ID:          idx.New().String(),
		PrincipalID: principal.ID,
		TokenHash:   "fingerprint-overdue",
		Status:      domain.StatusPending,
		CreatedAt:   time.Now().UTC().Add(-2 * time.Hour),
		ExpiresAt:   time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, st.Tokens().Create(ctx, overdue))

	hk := service.NewHousekeepingService(st, slog.New(slog.DiscardHandler), 10*time.Millisecond)
	hk.Start()
	defer hk.Stop()

	// Read with a clock before the deadline so lazy resolution cannot mask
	// whether the sweep actually persisted the transition.
	before := overdue.ExpiresAt.Add(-time.Minute)
	require.Eventually(t, func() bool {
		tok, err := st.Tokens().GetByFingerprint(ctx, overdue.TokenHash, before)
		return err == nil && tok.Status == domain.StatusExpired
	}, time.Second, 10*time.Millisecond)
}
