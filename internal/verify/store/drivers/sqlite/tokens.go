package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/verify/internal/verify/domain"
	"github.com/aussiebroadwan/verify/internal/verify/store"
)

type tokensRepo struct {
	db dbtx
}

const tokenColumns = `id, principal_id, token_hash, status, created_at, expires_at, completed_at`

func (r *tokensRepo) Create(ctx context.Context, t domain.VerificationToken) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO verification_tokens (id, principal_id, token_hash, status, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.PrincipalID,
		t.TokenHash,
		string(t.Status),
		t.CreatedAt.Unix(),
		t.ExpiresAt.Unix(),
	)
	return mapConstraint(err)
}

func (r *tokensRepo) GetByFingerprint(
	ctx context.Context,
	fingerprint string,
	now time.Time,
) (domain.VerificationToken, error) {
	tok, err := r.getByHash(ctx, fingerprint)
	if err != nil {
		return domain.VerificationToken{}, err
	}

	tok.Status = tok.StatusAt(now)
	return tok, nil
}

func (r *tokensRepo) GetLatestByPrincipal(
	ctx context.Context,
	principalID string,
	now time.Time,
) (domain.VerificationToken, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+tokenColumns+`
		FROM verification_tokens
		WHERE principal_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`,
		principalID,
	)

	tok, err := scanToken(row)
	if err != nil {
		return domain.VerificationToken{}, err
	}

	tok.Status = tok.StatusAt(now)
	return tok, nil
}

// Complete is the sole mutation point of the token state machine: a
// conditional update that only fires while the row is still pending and
// unexpired, so concurrent attempts serialize on the database and exactly
// one wins.
func (r *tokensRepo) Complete(
	ctx context.Context,
	fingerprint string,
	completedAt time.Time,
) (domain.VerificationToken, error) {
	now := completedAt.Unix()
	res, err := r.db.ExecContext(ctx, `
		UPDATE verification_tokens
		SET status = ?, completed_at = ?
		WHERE token_hash = ? AND status = ? AND expires_at >= ?`,
		string(domain.StatusCompleted),
		now,
		fingerprint,
		string(domain.StatusPending),
		now,
	)
	if err != nil {
		return domain.VerificationToken{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.VerificationToken{}, err
	}
	if affected == 1 {
		return r.getByHash(ctx, fingerprint)
	}

	// Nothing transitioned; read the row to classify the rejection.
	tok, err := r.getByHash(ctx, fingerprint)
	if err != nil {
		return domain.VerificationToken{}, err
	}

	switch tok.Status {
	case domain.StatusPending:
		// Still pending in storage, so the expiry guard fired. Persist the
		// lazy expiry while we are here; correctness never depends on it.
		_, _ = r.db.ExecContext(ctx, `
			UPDATE verification_tokens
			SET status = ?
			WHERE token_hash = ? AND status = ?`,
			string(domain.StatusExpired),
			fingerprint,
			string(domain.StatusPending),
		)
		return domain.VerificationToken{}, store.ErrExpired
	case domain.StatusExpired:
		return domain.VerificationToken{}, store.ErrExpired
	default:
		return domain.VerificationToken{}, store.ErrAlreadyCompleted
	}
}

func (r *tokensRepo) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE verification_tokens
		SET status = ?
		WHERE status = ? AND expires_at < ?`,
		string(domain.StatusExpired),
		string(domain.StatusPending),
		now.Unix(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *tokensRepo) getByHash(ctx context.Context, fingerprint string) (domain.VerificationToken, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+tokenColumns+`
		FROM verification_tokens
		WHERE token_hash = ?`,
		fingerprint,
	)
	return scanToken(row)
}

func scanToken(row *sql.Row) (domain.VerificationToken, error) {
	var (
		t                    domain.VerificationToken
		status               string
		createdAt, expiresAt int64
		completedAt          sql.NullInt64
	)
	err := row.Scan(&t.ID, &t.PrincipalID, &t.TokenHash, &status, &createdAt, &expiresAt, &completedAt)
	if err != nil {
		return domain.VerificationToken{}, mapNotFound(err)
	}

	t.Status = domain.TokenStatus(status)
	t.CreatedAt = mapUnix(createdAt)
	t.ExpiresAt = mapUnix(expiresAt)
	t.CompletedAt = mapNullUnixPtr(completedAt)
	return t, nil
}
