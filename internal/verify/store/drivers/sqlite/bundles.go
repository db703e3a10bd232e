package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/verify/internal/verify/domain"
)

type bundlesRepo struct {
	db dbtx
}

func (r *bundlesRepo) Create(ctx context.Context, b domain.AttributeBundle) error {
	extras, err := json.Marshal(b.Extras)
	if err != nil {
		return fmt.Errorf("encode bundle extras: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO attribute_bundles (
			id, token_id,
			ip, country, city, region, geo_timezone,
			user_agent, browser_name, browser_version,
			os, platform, is_mobile, screen_width, screen_height,
			language, timezone_offset, extras
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.TokenID,
		b.IP, b.Country, b.City, b.Region, b.GeoTimezone,
		b.UserAgent, b.BrowserName, b.BrowserVersion,
		b.OS, b.Platform, b.IsMobile, b.ScreenWidth, b.ScreenHeight,
		b.Language, b.TimezoneOffset, string(extras),
	)
	return mapConstraint(err)
}

func (r *bundlesRepo) GetByTokenID(ctx context.Context, tokenID string) (domain.AttributeBundle, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, token_id,
			ip, country, city, region, geo_timezone,
			user_agent, browser_name, browser_version,
			os, platform, is_mobile, screen_width, screen_height,
			language, timezone_offset, extras
		FROM attribute_bundles
		WHERE token_id = ?`,
		tokenID,
	)
	return scanBundle(row)
}

func scanBundle(row *sql.Row) (domain.AttributeBundle, error) {
	var (
		b      domain.AttributeBundle
		extras string
	)
	err := row.Scan(
		&b.ID, &b.TokenID,
		&b.IP, &b.Country, &b.City, &b.Region, &b.GeoTimezone,
		&b.UserAgent, &b.BrowserName, &b.BrowserVersion,
		&b.OS, &b.Platform, &b.IsMobile, &b.ScreenWidth, &b.ScreenHeight,
		&b.Language, &b.TimezoneOffset, &extras,
	)
	if err != nil {
		return domain.AttributeBundle{}, mapNotFound(err)
	}

	if extras != "" && extras != "null" {
		if err := json.Unmarshal([]byte(extras), &b.Extras); err != nil {
			return domain.AttributeBundle{}, fmt.Errorf("decode bundle extras: %w", err)
		}
	}
	return b, nil
}
