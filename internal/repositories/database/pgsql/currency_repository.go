package pgsql

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	"github.com/sarrafhq/sarraf-backend/internal/models"
	"github.com/sarrafhq/sarraf-backend/internal/utils/mapping"
)

const currencyColumns = `
	currency_id, code, symbol, name, flag, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxCurrencyRepository implements the currency ports using pgxpool.
type PgxCurrencyRepository struct {
	BaseRepository
}

// NewPgxCurrencyRepository creates a new PgxCurrencyRepository.
func NewPgxCurrencyRepository(db *pgxpool.Pool) *PgxCurrencyRepository {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanCurrency(row pgx.Row) (models.Currency, error) {
	var m models.Currency
	err := row.Scan(
		&m.CurrencyID, &m.Code, &m.Symbol, &m.Name, &m.Flag, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindCurrencyByID retrieves a currency by id.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	query := `SELECT` + currencyColumns + ` FROM currencies WHERE currency_id = $1;`

	m, err := scanCurrency(r.Pool.QueryRow(ctx, query, currencyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("currency " + currencyID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to get currency by ID", err)
	}

	d := mapping.ToDomainCurrency(m)
	return &d, nil
}

// FindCurrencyByCode retrieves a currency by its ISO code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	query := `SELECT` + currencyColumns + ` FROM currencies WHERE code = $1;`

	m, err := scanCurrency(r.Pool.QueryRow(ctx, query, strings.ToUpper(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("currency with code " + code + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to get currency by code", err)
	}

	d := mapping.ToDomainCurrency(m)
	return &d, nil
}

// ListCurrencies retrieves currencies ordered by code.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	query := `SELECT` + currencyColumns + ` FROM currencies`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list currencies", err)
	}
	defer rows.Close()

	var ms []models.Currency
	for rows.Next() {
		m, err := scanCurrency(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan currency", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating currencies", err)
	}

	return mapping.ToDomainCurrencySlice(ms), nil
}

// SaveCurrency persists a new currency. Codes are normalized to uppercase.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)
	m.Code = strings.ToUpper(m.Code)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO currencies (
			currency_id, code, symbol, name, flag, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.CurrencyID, m.Code, m.Symbol, m.Name, m.Flag, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save currency", err)
	}
	return nil
}

// UpdateCurrency persists changes to an existing currency.
func (r *PgxCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)

	tag, err := r.Pool.Exec(ctx, `
		UPDATE currencies
		SET symbol = $1, name = $2, flag = $3, is_active = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE currency_id = $7`,
		m.Symbol, m.Name, m.Flag, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy, m.CurrencyID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update currency", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("currency " + currency.CurrencyID + " not found")
	}
	return nil
}
