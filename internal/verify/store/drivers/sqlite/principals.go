package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/verify/internal/verify/domain"
)

type principalsRepo struct {
	db dbtx
}

func (r *principalsRepo) Upsert(ctx context.Context, p domain.Principal) (domain.Principal, error) {
	// platform_id is immutable and carries the conflict target; display
	// fields refresh on every issuance.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO principals (id, platform_id, display_name, handle, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(platform_id) DO UPDATE SET
			display_name = excluded.display_name,
			handle       = excluded.handle,
			updated_at   = excluded.updated_at`,
		p.ID,
		p.PlatformID,
		p.DisplayName,
		mapStringNull(p.Handle),
		p.CreatedAt.Unix(),
		p.UpdatedAt.Unix(),
	)
	if err != nil {
		return domain.Principal{}, err
	}

	// Re-read so the caller gets the stored row (the original id when the
	// principal already existed).
	return r.GetByPlatformID(ctx, p.PlatformID)
}

func (r *principalsRepo) GetByPlatformID(ctx context.Context, platformID string) (domain.Principal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, platform_id, display_name, handle, created_at, updated_at
		FROM principals
		WHERE platform_id = ?`,
		platformID,
	)
	return scanPrincipal(row)
}

func (r *principalsRepo) GetByID(ctx context.Context, id string) (domain.Principal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, platform_id, display_name, handle, created_at, updated_at
		FROM principals
		WHERE id = ?`,
		id,
	)
	return scanPrincipal(row)
}

func scanPrincipal(row *sql.Row) (domain.Principal, error) {
	var (
		p                  domain.Principal
		handle             sql.NullString
		createdAt, updated int64
	)
	if err := row.Scan(&p.ID, &p.PlatformID, &p.DisplayName, &handle, &createdAt, &updated); err != nil {
		return domain.Principal{}, mapNotFound(err)
	}

	p.Handle = mapNullString(handle)
	p.CreatedAt = mapUnix(createdAt)
	p.UpdatedAt = mapUnix(updated)
	return p, nil
}
