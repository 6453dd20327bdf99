package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	"github.com/sarrafhq/sarraf-backend/internal/models"
	"github.com/sarrafhq/sarraf-backend/internal/utils/mapping"
)

const priceRecordColumns = `
	price_record_id, instrument_kind, instrument_id, buy_raw, sell_raw, spread,
	margin_buy, margin_sell, is_manual, effective_from, effective_until,
	created_at, updated_by`

// PgxPriceRecordRepository implements the price record ports using pgxpool.
type PgxPriceRecordRepository struct {
	BaseRepository
}

// NewPgxPriceRecordRepository creates a new PgxPriceRecordRepository.
func NewPgxPriceRecordRepository(db *pgxpool.Pool) *PgxPriceRecordRepository {
	return &PgxPriceRecordRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanPriceRecord(row pgx.Row) (models.PriceRecord, error) {
	var m models.PriceRecord
	err := row.Scan(
		&m.PriceRecordID, &m.InstrumentKind, &m.InstrumentID, &m.BuyRaw, &m.SellRaw,
		&m.Spread, &m.MarginBuy, &m.MarginSell, &m.IsManual, &m.EffectiveFrom,
		&m.EffectiveUntil, &m.CreatedAt, &m.UpdatedBy,
	)
	return m, err
}

// FindCurrentPrice returns the record in force now for the instrument.
// Latest effective_from wins; the id breaks ties between records sharing an
// effective_from (the higher id is the later insert).
func (r *PgxPriceRecordRepository) FindCurrentPrice(ctx context.Context, kind domain.InstrumentKind, instrumentID string) (*domain.PriceRecord, error) {
	query := `
		SELECT` + priceRecordColumns + `
		FROM price_records
		WHERE instrument_kind = $1 AND instrument_id = $2
		  AND effective_from <= now()
		  AND (effective_until IS NULL OR effective_until > now())
		ORDER BY effective_from DESC, price_record_id DESC
		LIMIT 1;
	`

	m, err := scanPriceRecord(r.Pool.QueryRow(ctx, query, string(kind), instrumentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no current price for instrument " + instrumentID)
		}
		return nil, apperrors.NewAppError(500, "failed to find current price", err)
	}

	d := mapping.ToDomainPriceRecord(m)
	return &d, nil
}

// ListCurrentPrices returns the record in force now for each instrument of
// the kind that has one. Deactivated instruments keep showing their last
// open record until it is closed or deleted.
func (r *PgxPriceRecordRepository) ListCurrentPrices(ctx context.Context, kind domain.InstrumentKind) ([]domain.PriceRecord, error) {
	query := `
		SELECT DISTINCT ON (instrument_id)` + priceRecordColumns + `
		FROM price_records
		WHERE instrument_kind = $1
		  AND effective_from <= now()
		  AND (effective_until IS NULL OR effective_until > now())
		ORDER BY instrument_id, effective_from DESC, price_record_id DESC;
	`

	rows, err := r.Pool.Query(ctx, query, string(kind))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list current prices", err)
	}
	defer rows.Close()

	var ms []models.PriceRecord
	for rows.Next() {
		m, err := scanPriceRecord(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan price record", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating price records", err)
	}

	return mapping.ToDomainPriceRecordSlice(ms), nil
}

// FindPriceRecordByID retrieves one version by id.
func (r *PgxPriceRecordRepository) FindPriceRecordByID(ctx context.Context, priceRecordID string) (*domain.PriceRecord, error) {
	query := `
		SELECT` + priceRecordColumns + `
		FROM price_records
		WHERE price_record_id = $1;
	`

	m, err := scanPriceRecord(r.Pool.QueryRow(ctx, query, priceRecordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("price record " + priceRecordID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to get price record by ID", err)
	}

	d := mapping.ToDomainPriceRecord(m)
	return &d, nil
}

// CreatePriceVersion closes the instrument's open record at the new record's
// effective_from and inserts the new open record, in one transaction. The
// partial unique index on (instrument_kind, instrument_id) WHERE
// effective_until IS NULL rejects a concurrent second open record.
func (r *PgxPriceRecordRepository) CreatePriceVersion(ctx context.Context, record domain.PriceRecord) error {
	m := mapping.ToModelPriceRecord(record)

	return r.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			UPDATE price_records
			SET effective_until = $1
			WHERE instrument_kind = $2 AND instrument_id = $3 AND effective_until IS NULL`,
			m.EffectiveFrom, m.InstrumentKind, m.InstrumentID,
		)
		if err == nil {
			_, err = tx.Exec(ctx, `
				INSERT INTO price_records (
					price_record_id, instrument_kind, instrument_id, buy_raw, sell_raw,
					spread, margin_buy, margin_sell, is_manual, effective_from,
					effective_until, created_at, updated_by
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULL, $11, $12)`,
				m.PriceRecordID, m.InstrumentKind, m.InstrumentID, m.BuyRaw, m.SellRaw,
				m.Spread, m.MarginBuy, m.MarginSell, m.IsManual, m.EffectiveFrom,
				m.CreatedAt, m.UpdatedBy,
			)
		}
		if err != nil {
			return apperrors.NewAppError(500, "failed to create price version", err)
		}
		return nil
	})
}

// AmendPriceRecord updates a record's fields in place. Used only for closed
// records; versioning of open records goes through CreatePriceVersion.
func (r *PgxPriceRecordRepository) AmendPriceRecord(ctx context.Context, record domain.PriceRecord) error {
	m := mapping.ToModelPriceRecord(record)

	tag, err := r.Pool.Exec(ctx, `
		UPDATE price_records
		SET buy_raw = $1, sell_raw = $2, spread = $3, margin_buy = $4,
		    margin_sell = $5, is_manual = $6, updated_by = $7
		WHERE price_record_id = $8`,
		m.BuyRaw, m.SellRaw, m.Spread, m.MarginBuy, m.MarginSell, m.IsManual,
		m.UpdatedBy, m.PriceRecordID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to amend price record", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("price record " + record.PriceRecordID + " not found")
	}
	return nil
}

// DeletePriceRecord removes a version outright.
func (r *PgxPriceRecordRepository) DeletePriceRecord(ctx context.Context, priceRecordID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM price_records WHERE price_record_id = $1`, priceRecordID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete price record", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("price record " + priceRecordID + " not found")
	}
	return nil
}

// ListPriceHistory returns versions descending by effective_from, bounded by
// the optional date range and paginated by limit/offset.
func (r *PgxPriceRecordRepository) ListPriceHistory(ctx context.Context, kind domain.InstrumentKind, instrumentID string, filter domain.HistoryFilter) ([]domain.PriceRecord, error) {
	baseQuery := `FROM price_records WHERE instrument_kind = $1 AND instrument_id = $2`
	args := []interface{}{string(kind), instrumentID}
	argNum := 3

	if filter.StartDate != nil {
		baseQuery += fmt.Sprintf(" AND effective_from >= $%d", argNum)
		args = append(args, *filter.StartDate)
		argNum++
	}
	if filter.EndDate != nil {
		baseQuery += fmt.Sprintf(" AND effective_from <= $%d", argNum)
		args = append(args, *filter.EndDate)
		argNum++
	}

	baseQuery += " ORDER BY effective_from DESC, price_record_id DESC"
	baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, "SELECT "+priceRecordColumns+" "+baseQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list price history", err)
	}
	defer rows.Close()

	var ms []models.PriceRecord
	for rows.Next() {
		m, err := scanPriceRecord(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan price record", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating price history", err)
	}

	return mapping.ToDomainPriceRecordSlice(ms), nil
}

// GetPriceStatistics aggregates buy/sell extremes over records effective
// since the given time.
func (r *PgxPriceRecordRepository) GetPriceStatistics(ctx context.Context, kind domain.InstrumentKind, instrumentID string, since time.Time) (*domain.PriceStatistics, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(MIN(buy_raw), 0), COALESCE(MAX(buy_raw), 0), COALESCE(AVG(buy_raw), 0),
		       COALESCE(MIN(sell_raw), 0), COALESCE(MAX(sell_raw), 0), COALESCE(AVG(sell_raw), 0)
		FROM price_records
		WHERE instrument_kind = $1 AND instrument_id = $2 AND effective_from >= $3;
	`

	var stats domain.PriceStatistics
	err := r.Pool.QueryRow(ctx, query, string(kind), instrumentID, since).Scan(
		&stats.Count,
		&stats.MinBuy, &stats.MaxBuy, &stats.AvgBuy,
		&stats.MinSell, &stats.MaxSell, &stats.AvgSell,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate price statistics", err)
	}

	return &stats, nil
}
