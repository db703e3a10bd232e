package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/verify/internal/verify/bundle"
	"github.com/aussiebroadwan/verify/internal/verify/domain"
	"github.com/aussiebroadwan/verify/internal/verify/metrics"
	"github.com/aussiebroadwan/verify/internal/verify/store"
	"github.com/aussiebroadwan/verify/pkg/cryptox"
	"github.com/aussiebroadwan/verify/pkg/idx"
	"github.com/aussiebroadwan/verify/pkg/slogx"
)

var (
	ErrInvalidPrincipal = errors.New("invalid principal info")
	ErrMalformedBundle  = errors.New("collected bundle is not a mapping")
	ErrTokenNotFound    = errors.New("verification token not found")
	ErrTokenExpired     = errors.New("verification token expired")
	ErrAlreadyCompleted = errors.New("verification already completed")
	ErrStoreUnavailable = errors.New("verification store unavailable")
)

// DefaultTokenTTL is how long an issued token stays completable.
const DefaultTokenTTL = 3600 * time.Second

// tokenCreateAttempts bounds regeneration on fingerprint collision. A
// collision on 256-bit tokens is astronomically unlikely, but the store
// surfaces it and we must not hand out a token that was never persisted.
const tokenCreateAttempts = 3

// PrincipalInfo identifies the end-user requesting verification.
// PlatformID is the immutable chat-platform identifier; the display fields
// are refreshed on every issuance.
type PrincipalInfo struct {
	PlatformID  string
	DisplayName string
	Handle      string
}

// IssuedToken is the outcome of a successful issuance. Token is the raw
// single-use credential; only its fingerprint is persisted.
type IssuedToken struct {
	Token           string
	VerificationURL string
	ExpiresAt       time.Time
}

// StatusView is the lazily-resolved state of a principal's most recent
// verification token.
type StatusView struct {
	Active      bool
	Status      domain.TokenStatus
	ExpiresAt   time.Time
	CompletedAt *time.Time
}

// Human renders the view as the non-technical string shown to principals.
func (v StatusView) Human() string {
	if !v.Active {
		return "no active verification"
	}
	return strings.ToUpper(string(v.Status))
}

// VerificationService owns the token state machine: issuance, status
// queries, and the at-most-once completion transition.
type VerificationService struct {
	Store   store.Store
	Metrics *metrics.Metrics

	// TokenTTL defaults to DefaultTokenTTL when zero.
	TokenTTL time.Duration

	// URLTemplate composes the verification link. {token} and {principal}
	// are replaced with the URL-escaped raw token and platform identifier.
	URLTemplate string

	// Now is the clock; defaults to time.Now. Injected for expiry tests.
	Now func() time.Time
}

func (s *VerificationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *VerificationService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return DefaultTokenTTL
}

// IssueToken upserts the principal, creates a pending token, and composes
// the verification URL. The returned raw token exists nowhere else; the
// store only ever sees its fingerprint.
func (s *VerificationService) IssueToken(ctx context.Context, info PrincipalInfo) (IssuedToken, error) {
	log := slogx.FromContext(ctx)

	if strings.TrimSpace(info.PlatformID) == "" {
		return IssuedToken{}, ErrInvalidPrincipal
	}

	now := s.now()
	principal, err := s.Store.Principals().Upsert(ctx, domain.Principal{
		ID:          idx.New().String(),
		PlatformID:  info.PlatformID,
		DisplayName: info.DisplayName,
		Handle:      info.Handle,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		log.Error("failed to upsert principal", slog.Any("error", err))
		return IssuedToken{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var issued IssuedToken
	for attempt := 0; ; attempt++ {
		token, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			log.Error("failed to generate verification token", slog.Any("error", err))
			return IssuedToken{}, err
		}

		record := domain.VerificationToken{
			ID:          idx.New().String(),
			PrincipalID: principal.ID,
			TokenHash:   cryptox.FingerprintToken(token),
			Status:      domain.StatusPending,
			CreatedAt:   now,
			ExpiresAt:   now.Add(s.ttl()),
		}

		err = s.Store.Tokens().Create(ctx, record)
		if errors.Is(err, store.ErrAlreadyExists) {
			if attempt+1 >= tokenCreateAttempts {
				return IssuedToken{}, fmt.Errorf("%w: token fingerprint collisions persisted", ErrStoreUnavailable)
			}
			log.Warn("token fingerprint collision, regenerating")
			continue
		}
		if err != nil {
			log.Error("failed to persist verification token", slog.Any("error", err))
			return IssuedToken{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		issued = IssuedToken{
			Token:           token,
			VerificationURL: s.composeURL(token, info.PlatformID),
			ExpiresAt:       record.ExpiresAt,
		}
		break
	}

	if s.Metrics != nil {
		s.Metrics.TokensIssued.Inc()
	}

	log.Info("verification token issued",
		slog.String("principal_id", principal.ID),
		slog.String("platform_id", principal.PlatformID),
		slog.Time("expires_at", issued.ExpiresAt),
	)

	return issued, nil
}

// composeURL is pure string construction; no side effects.
func (s *VerificationService) composeURL(token, platformID string) string {
	link := strings.ReplaceAll(s.URLTemplate, "{token}", url.QueryEscape(token))
	return strings.ReplaceAll(link, "{principal}", url.QueryEscape(platformID))
}

// QueryStatus reports the lazily-resolved status of the most recently
// issued token for the principal, or an inactive view when none exists.
func (s *VerificationService) QueryStatus(ctx context.Context, platformID string) (StatusView, error) {
	log := slogx.FromContext(ctx)

	principal, err := s.Store.Principals().GetByPlatformID(ctx, platformID)
	if errors.Is(err, store.ErrNotFound) {
		return StatusView{}, nil
	}
	if err != nil {
		log.Error("failed to fetch principal", slog.Any("error", err))
		return StatusView{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	tok, err := s.Store.Tokens().GetLatestByPrincipal(ctx, principal.ID, s.now())
	if errors.Is(err, store.ErrNotFound) {
		return StatusView{}, nil
	}
	if err != nil {
		log.Error("failed to fetch latest token", slog.Any("error", err))
		return StatusView{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return StatusView{
		Active:      true,
		Status:      tok.Status,
		ExpiresAt:   tok.ExpiresAt,
		CompletedAt: tok.CompletedAt,
	}, nil
}

// Complete normalizes the collected bundle and attempts the at-most-once
// completion transition. On success it returns the payload the operator
// notification is rendered from; every rejection maps to one of the
// service sentinels.
func (s *VerificationService) Complete(
	ctx context.Context,
	token string,
	raw map[string]any,
) (domain.NotificationPayload, error) {
	log := slogx.FromContext(ctx)

	normalized, err := bundle.Normalize(raw)
	if err != nil {
		log.Warn("rejected malformed attribute bundle")
		return domain.NotificationPayload{}, ErrMalformedBundle
	}

	fingerprint := cryptox.FingerprintToken(token)
	now := s.now()

	var payload domain.NotificationPayload
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		tok, err := tx.Tokens().Complete(ctx, fingerprint, now)
		if err != nil {
			return err
		}

		normalized.ID = idx.New().String()
		normalized.TokenID = tok.ID
		if err := tx.Bundles().Create(ctx, normalized); err != nil {
			return err
		}

		principal, err := tx.Principals().GetByID(ctx, tok.PrincipalID)
		if err != nil {
			return err
		}

		payload = domain.NotificationPayload{
			Principal:   principal,
			Bundle:      normalized,
			CompletedAt: now,
		}
		return nil
	})
	if err != nil {
		return domain.NotificationPayload{}, s.mapCompletionError(ctx, err)
	}

	if s.Metrics != nil {
		s.Metrics.TokensCompleted.Inc()
	}

	log.Info("verification completed",
		slog.String("principal_id", payload.Principal.ID),
		slog.String("platform_id", payload.Principal.PlatformID),
	)

	return payload, nil
}

func (s *VerificationService) mapCompletionError(ctx context.Context, err error) error {
	log := slogx.FromContext(ctx)

	switch {
	case errors.Is(err, store.ErrNotFound):
		s.countRejection("not_found")
		log.Warn("completion attempted with unknown token")
		return ErrTokenNotFound
	case errors.Is(err, store.ErrExpired):
		s.countRejection("expired")
		if s.Metrics != nil {
			s.Metrics.TokensExpired.Inc()
		}
		log.Warn("completion attempted after expiry")
		return ErrTokenExpired
	case errors.Is(err, store.ErrAlreadyCompleted):
		s.countRejection("already_completed")
		log.Warn("completion attempted on already-transitioned token")
		return ErrAlreadyCompleted
	default:
		s.countRejection("store")
		log.Error("completion failed", slog.Any("error", err))
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}

func (s *VerificationService) countRejection(reason string) {
	if s.Metrics != nil {
		s.Metrics.CompletionErrors.WithLabelValues(reason).Inc()
	}
}
