package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/verify/internal/verify/domain"
	"github.com/aussiebroadwan/verify/internal/verify/metrics"
	"github.com/aussiebroadwan/verify/internal/verify/service"
	"github.com/aussiebroadwan/verify/internal/verify/store"
	"github.com/aussiebroadwan/verify/internal/verify/store/drivers/sqlite"
	"github.com/prometheus/client_golang/prometheus"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "verify.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestService(t *testing.T) *service.VerificationService {
	t.Helper()

	return &service.VerificationService{
		Store:       newTestStore(t),
		Metrics:     metrics.New(prometheus.NewRegistry()),
		URLTemplate: "https://verify.example.com/v?token={token}&uid={principal}",
	}
}

func TestIssueTokenProducesURLSafeTokens(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	seen := make(map[string]struct{})
	for range 5 {
		issued, err := svc.IssueToken(ctx, service.PrincipalInfo{
			PlatformID:  "555001",
			DisplayName: "Ana",
			Handle:      "ana",
		})
		require.NoError(t, err)

		// 256 bits of entropy, base64url without padding
		require.GreaterOrEqual(t, len(issued.Token), 43)
		require.NotContains(t, issued.Token, "+")
		require.NotContains(t, issued.Token, "/")
		require.NotContains(t, issued.Token, "=")

		require.Contains(t, issued.VerificationURL, "token="+issued.Token)
		require.Contains(t, issued.VerificationURL, "uid=555001")

		_, dup := seen[issued.Token]
		require.False(t, dup, "tokens must be unique")
		seen[issued.Token] = struct{}{}
	}
}

func TestIssueTokenRejectsBlankPlatformID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.IssueToken(context.Background(), service.PrincipalInfo{PlatformID: "   "})
	require.ErrorIs(t, err, service.ErrInvalidPrincipal)
}

func TestIssueTokenRefreshesPrincipal(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.IssueToken(ctx, service.PrincipalInfo{PlatformID: "555002", DisplayName: "Ana"})
	require.NoError(t, err)

	first, err := svc.Store.Principals().GetByPlatformID(ctx, "555002")
	require.NoError(t, err)

	_, err = svc.IssueToken(ctx, service.PrincipalInfo{PlatformID: "555002", DisplayName: "Ana B", Handle: "ana"})
	require.NoError(t, err)

	second, err := svc.Store.Principals().GetByPlatformID(ctx, "555002")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID, "upsert must keep the internal id stable")
	require.Equal(t, "Ana B", second.DisplayName)
	require.Equal(t, "ana", second.Handle)
}

func TestCompleteHappyPath(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	issued, err := svc.IssueToken(ctx, service.PrincipalInfo{
		PlatformID:  "555003",
		DisplayName: "Ana",
		Handle:      "ana",
	})
	require.NoError(t, err)

	payload, err := svc.Complete(ctx, issued.Token, map[string]any{})
	require.NoError(t, err)
	require.Equal(t, "Ana", payload.Principal.DisplayName)
	require.Equal(t, domain.Unknown, payload.Bundle.IP)
	require.Equal(t, domain.Unknown, payload.Bundle.Country)

	report := service.FormatNotification(payload)
	require.Contains(t, report, "Ana")
	require.Contains(t, report, domain.Unknown)

	status, err := svc.QueryStatus(ctx, "555003")
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, status.Status)
	require.NotNil(t, status.CompletedAt)
}

func TestCompleteIsAtMostOnce(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	issued, err := svc.IssueToken(ctx, service.PrincipalInfo{PlatformID: "555004", DisplayName: "Ana"})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, issued.Token, map[string]any{"ip": "203.0.113.9"})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, issued.Token, map[string]any{"ip": "203.0.113.9"})
	require.ErrorIs(t, err, service.ErrAlreadyCompleted)
}

func TestCompleteConcurrentExactlyOneWins(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	issued, err := svc.IssueToken(ctx, service.PrincipalInfo{PlatformID: "555005", DisplayName: "Ana"})
	require.NoError(t, err)

	const workers = 8
	results := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = svc.Complete(ctx, issued.Token, map[string]any{})
		}()
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, service.ErrAlreadyCompleted):
			rejected++
		default:
			t.Fatalf("unexpected completion error: %v", err)
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, workers-1, rejected)
}

func TestCompleteUnknownToken(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Complete(context.Background(), "not-a-real-token", map[string]any{})
	require.ErrorIs(t, err, service.ErrTokenNotFound)
}

func TestCompleteMalformedBundle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	issued, err := svc.IssueToken(ctx, service.PrincipalInfo{PlatformID: "555006", DisplayName: "Ana"})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, issued.Token, nil)
	require.ErrorIs(t, err, service.ErrMalformedBundle)

	// The token survives the rejection and is still completable.
	_, err = svc.Complete(ctx, issued.Token, map[string]any{})
	require.NoError(t, err)
}

func TestCompleteAfterExpiry(t *testing.T) {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	clock := base

	svc := newTestService(t)
	svc.TokenTTL = time.Second
	svc.Now = func() time.Time { return clock }

	ctx := context.Background()
	issued, err := svc.IssueToken(ctx, service.PrincipalInfo{PlatformID: "555007", DisplayName: "Ana"})
	require.NoError(t, err)
	require.Equal(t, base.Add(time.Second), issued.ExpiresAt)

	clock = base.Add(2 * time.Second)

	_, err = svc.Complete(ctx, issued.Token, map[string]any{})
	require.ErrorIs(t, err, service.ErrTokenExpired)

	// Expiry is observable on reads without any sweeper involvement.
	status, err := svc.QueryStatus(ctx, "555007")
	require.NoError(t, err)
	require.Equal(t, domain.StatusExpired, status.Status)
	require.Equal(t, "EXPIRED", status.Human())
}

func TestQueryStatusWithoutTokens(t *testing.T) {
	svc := newTestService(t)

	status, err := svc.QueryStatus(context.Background(), "never-seen")
	require.NoError(t, err)
	require.False(t, status.Active)
	require.Equal(t, "no active verification", status.Human())
}

func TestQueryStatusTracksMostRecentToken(t *testing.T) {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	clock := base

	svc := newTestService(t)
	svc.Now = func() time.Time { return clock }
	ctx := context.Background()

	issued, err := svc.IssueToken(ctx, service.PrincipalInfo{PlatformID: "555008", DisplayName: "Ana"})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, issued.Token, map[string]any{})
	require.NoError(t, err)

	// A fresh issuance supersedes the completed token in the status view.
	clock = base.Add(time.Minute)
	_, err = svc.IssueToken(ctx, service.PrincipalInfo{PlatformID: "555008", DisplayName: "Ana"})
	require.NoError(t, err)

	status, err := svc.QueryStatus(ctx, "555008")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, status.Status)
	require.Equal(t, "PENDING", status.Human())
}

func TestCompleteCarriesBundleExtras(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	issued, err := svc.IssueToken(ctx, service.PrincipalInfo{PlatformID: "555009", DisplayName: "Ana"})
	require.NoError(t, err)

	payload, err := svc.Complete(ctx, issued.Token, map[string]any{
		"ip":         "203.0.113.9",
		"user_agent": "Mozilla/5.0",
		"geo": map[string]any{
			"country": "Australia",
			"city":    "Brisbane",
		},
		"connection_type": "wifi",
	})
	require.NoError(t, err)
	require.Equal(t, "203.0.113.9", payload.Bundle.IP)
	require.Equal(t, "Australia", payload.Bundle.Country)
	require.Equal(t, "Brisbane", payload.Bundle.City)

	keys := make([]string, 0, len(payload.Bundle.Extras))
	for _, extra := range payload.Bundle.Extras {
		keys = append(keys, extra.Key)
	}
	require.Contains(t, keys, "connection_type")

	// The persisted copy matches what the notification was built from.
	stored, err := svc.Store.Tokens().GetLatestByPrincipal(ctx, payload.Principal.ID, time.Now().UTC())
	require.NoError(t, err)
	bundleRow, err := svc.Store.Bundles().GetByTokenID(ctx, stored.ID)
	require.NoError(t, err)
	require.Equal(t, payload.Bundle.Extras, bundleRow.Extras)
}
