package pgsql

import (
	"context"
	"fmt"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	"github.com/assacalos/easyconnect/internal/models"
	"github.com/assacalos/easyconnect/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const deviceTokenColumns = `
	token_id, user_id, token, platform, metadata, last_seen_at,
	created_at, created_by, last_updated_at, last_updated_by, version`

type PgxDeviceTokenRepository struct {
	BaseRepository
}

func newPgxDeviceTokenRepository(pool *pgxpool.Pool) portsrepo.DeviceTokenRepositoryFacade {
	return &PgxDeviceTokenRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DeviceTokenRepositoryFacade = (*PgxDeviceTokenRepository)(nil)

func scanDeviceToken(row pgx.Row) (models.DeviceToken, error) {
	var m models.DeviceToken
	err := row.Scan(
		&m.TokenID, &m.UserID, &m.Token, &m.Platform, &m.Metadata, &m.LastSeenAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	return m, err
}

// UpsertDeviceToken keeps one row per token; a token seen from another account moves to it.
func (r *PgxDeviceTokenRepository) UpsertDeviceToken(ctx context.Context, token domain.DeviceToken) (*domain.DeviceToken, error) {
	m, err := mapping.ToModelDeviceToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid device metadata: %v", apperrors.ErrValidation, err)
	}
	stored, err := scanDeviceToken(r.Pool.QueryRow(ctx, `
		INSERT INTO device_tokens (`+deviceTokenColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (token) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			platform = EXCLUDED.platform,
			metadata = EXCLUDED.metadata,
			last_seen_at = EXCLUDED.last_seen_at,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by,
			version = device_tokens.version + 1
		RETURNING `+deviceTokenColumns,
		m.TokenID, m.UserID, m.Token, m.Platform, m.Metadata, m.LastSeenAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	))
	if err != nil {
		return nil, mapWriteError(err, "device token")
	}
	d := mapping.ToDomainDeviceToken(stored)
	return &d, nil
}

func (r *PgxDeviceTokenRepository) DeleteDeviceToken(ctx context.Context, userID, token string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM device_tokens WHERE user_id = $1 AND token = $2`, userID, token)
	if err != nil {
		return mapWriteError(err, "device token")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("device token", token)
	}
	return nil
}

func (r *PgxDeviceTokenRepository) ListDeviceTokensByUser(ctx context.Context, userID string) ([]domain.DeviceToken, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+deviceTokenColumns+` FROM device_tokens WHERE user_id = $1 ORDER BY last_seen_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query device tokens: %w", err)
	}
	defer rows.Close()

	out := []domain.DeviceToken{}
	for rows.Next() {
		m, err := scanDeviceToken(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan device token row: %w", err)
		}
		out = append(out, mapping.ToDomainDeviceToken(m))
	}
	return out, rows.Err()
}
