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

const goldTypeColumns = `
	gold_type_id, name, karat, purity, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxGoldTypeRepository implements the gold type ports using pgxpool.
type PgxGoldTypeRepository struct {
	BaseRepository
}

// NewPgxGoldTypeRepository creates a new PgxGoldTypeRepository.
func NewPgxGoldTypeRepository(db *pgxpool.Pool) *PgxGoldTypeRepository {
	return &PgxGoldTypeRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanGoldType(row pgx.Row) (models.GoldType, error) {
	var m models.GoldType
	err := row.Scan(
		&m.GoldTypeID, &m.Name, &m.Karat, &m.Purity, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindGoldTypeByID retrieves a gold grade by id.
func (r *PgxGoldTypeRepository) FindGoldTypeByID(ctx context.Context, goldTypeID string) (*domain.GoldType, error) {
	query := `SELECT` + goldTypeColumns + ` FROM gold_types WHERE gold_type_id = $1;`

	m, err := scanGoldType(r.Pool.QueryRow(ctx, query, goldTypeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("gold type " + goldTypeID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to get gold type by ID", err)
	}

	d := mapping.ToDomainGoldType(m)
	return &d, nil
}

// ListGoldTypes retrieves gold grades ordered by karat, highest first.
func (r *PgxGoldTypeRepository) ListGoldTypes(ctx context.Context, activeOnly bool) ([]domain.GoldType, error) {
	query := `SELECT` + goldTypeColumns + ` FROM gold_types`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY karat DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list gold types", err)
	}
	defer rows.Close()

	var ms []models.GoldType
	for rows.Next() {
		m, err := scanGoldType(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan gold type", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating gold types", err)
	}

	return mapping.ToDomainGoldTypeSlice(ms), nil
}

// SaveGoldType persists a new gold grade.
func (r *PgxGoldTypeRepository) SaveGoldType(ctx context.Context, goldType domain.GoldType) error {
	m := mapping.ToModelGoldType(goldType)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO gold_types (
			gold_type_id, name, karat, purity, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.GoldTypeID, m.Name, m.Karat, m.Purity, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save gold type", err)
	}
	return nil
}

// UpdateGoldType persists changes to an existing gold grade.
func (r *PgxGoldTypeRepository) UpdateGoldType(ctx context.Context, goldType domain.GoldType) error {
	m := mapping.ToModelGoldType(goldType)

	tag, err := r.Pool.Exec(ctx, `
		UPDATE gold_types
		SET name = $1, purity = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE gold_type_id = $6`,
		m.Name, m.Purity, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy, m.GoldTypeID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update gold type", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("gold type " + goldType.GoldTypeID + " not found")
	}
	return nil
}
