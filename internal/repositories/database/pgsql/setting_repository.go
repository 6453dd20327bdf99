package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	"github.com/sarrafhq/sarraf-backend/internal/models"
	"github.com/sarrafhq/sarraf-backend/internal/utils/mapping"
)

// PgxSettingRepository implements the setting ports using pgxpool.
type PgxSettingRepository struct {
	BaseRepository
}

// NewPgxSettingRepository creates a new PgxSettingRepository.
func NewPgxSettingRepository(db *pgxpool.Pool) *PgxSettingRepository {
	return &PgxSettingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// FindSettingByKey retrieves one setting.
func (r *PgxSettingRepository) FindSettingByKey(ctx context.Context, key string) (*domain.Setting, error) {
	query := `
		SELECT key, value, value_type, description, updated_by, updated_at
		FROM settings
		WHERE key = $1;
	`

	var m models.Setting
	err := r.Pool.QueryRow(ctx, query, key).Scan(
		&m.Key, &m.Value, &m.ValueType, &m.Description, &m.UpdatedBy, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("setting " + key + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to get setting", err)
	}

	d, err := mapping.ToDomainSetting(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode setting "+key, err)
	}
	return &d, nil
}

// ListSettings retrieves all settings ordered by key. Rows whose raw value
// no longer parses under their kind tag are skipped rather than failing the
// listing.
func (r *PgxSettingRepository) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	query := `
		SELECT key, value, value_type, description, updated_by, updated_at
		FROM settings
		ORDER BY key;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list settings", err)
	}
	defer rows.Close()

	var ds []domain.Setting
	for rows.Next() {
		var m models.Setting
		if err := rows.Scan(&m.Key, &m.Value, &m.ValueType, &m.Description, &m.UpdatedBy, &m.UpdatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan setting", err)
		}
		d, err := mapping.ToDomainSetting(m)
		if err != nil {
			continue
		}
		ds = append(ds, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating settings", err)
	}

	return ds, nil
}

// UpsertSetting inserts or replaces a setting by key.
func (r *PgxSettingRepository) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	m, err := mapping.ToModelSetting(setting)
	if err != nil {
		return apperrors.NewValidationError("failed to encode setting value: " + err.Error())
	}

	_, err = r.Pool.Exec(ctx, `
		INSERT INTO settings (key, value, value_type, description, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, value_type = EXCLUDED.value_type,
		    description = EXCLUDED.description, updated_by = EXCLUDED.updated_by,
		    updated_at = EXCLUDED.updated_at`,
		m.Key, m.Value, m.ValueType, m.Description, m.UpdatedBy, m.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert setting", err)
	}
	return nil
}

// DeleteSetting removes a setting by key.
func (r *PgxSettingRepository) DeleteSetting(ctx context.Context, key string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM settings WHERE key = $1`, key)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete setting", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("setting " + key + " not found")
	}
	return nil
}
