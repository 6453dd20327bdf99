package mapping

import (
	"database/sql"

	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	"github.com/sarrafhq/sarraf-backend/internal/models"
)

// ToModelPriceRecord converts a domain PriceRecord to a model PriceRecord
func ToModelPriceRecord(d domain.PriceRecord) models.PriceRecord {
	m := models.PriceRecord{
		PriceRecordID:  d.PriceRecordID,
		InstrumentKind: string(d.InstrumentKind),
		InstrumentID:   d.InstrumentID,
		BuyRaw:         d.BuyRaw,
		SellRaw:        d.SellRaw,
		Spread:         d.Spread,
		MarginBuy:      d.MarginBuy,
		MarginSell:     d.MarginSell,
		IsManual:       d.IsManual,
		EffectiveFrom:  d.EffectiveFrom,
		CreatedAt:      d.CreatedAt,
		UpdatedBy:      d.UpdatedBy,
	}
	if d.EffectiveUntil != nil {
		m.EffectiveUntil = sql.NullTime{Time: *d.EffectiveUntil, Valid: true}
	}
	return m
}

// ToDomainPriceRecord converts a model PriceRecord to a domain PriceRecord
func ToDomainPriceRecord(m models.PriceRecord) domain.PriceRecord {
	d := domain.PriceRecord{
		PriceRecordID:  m.PriceRecordID,
		InstrumentKind: domain.InstrumentKind(m.InstrumentKind),
		InstrumentID:   m.InstrumentID,
		BuyRaw:         m.BuyRaw,
		SellRaw:        m.SellRaw,
		Spread:         m.Spread,
		MarginBuy:      m.MarginBuy,
		MarginSell:     m.MarginSell,
		IsManual:       m.IsManual,
		EffectiveFrom:  m.EffectiveFrom,
		CreatedAt:      m.CreatedAt,
		UpdatedBy:      m.UpdatedBy,
	}
	if m.EffectiveUntil.Valid {
		t := m.EffectiveUntil.Time
		d.EffectiveUntil = &t
	}
	return d
}

// ToDomainPriceRecordSlice converts a slice of model PriceRecords to domain PriceRecords
func ToDomainPriceRecordSlice(ms []models.PriceRecord) []domain.PriceRecord {
	ds := make([]domain.PriceRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPriceRecord(m)
	}
	return ds
}
