package mapping

import (
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	"github.com/sarrafhq/sarraf-backend/internal/models"
)

// ToModelGoldType converts a domain GoldType to a model GoldType
func ToModelGoldType(d domain.GoldType) models.GoldType {
	return models.GoldType{
		GoldTypeID:  d.GoldTypeID,
		Name:        d.Name,
		Karat:       d.Karat,
		Purity:      d.Purity,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGoldType converts a model GoldType to a domain GoldType
func ToDomainGoldType(m models.GoldType) domain.GoldType {
	return domain.GoldType{
		GoldTypeID:  m.GoldTypeID,
		Name:        m.Name,
		Karat:       m.Karat,
		Purity:      m.Purity,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainGoldTypeSlice converts a slice of model GoldTypes to domain GoldTypes
func ToDomainGoldTypeSlice(ms []models.GoldType) []domain.GoldType {
	ds := make([]domain.GoldType, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainGoldType(m)
	}
	return ds
}

// ToModelCurrency converts a domain Currency to a model Currency
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyID:  d.CurrencyID,
		Code:        d.Code,
		Symbol:      d.Symbol,
		Name:        d.Name,
		Flag:        d.Flag,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyID:  m.CurrencyID,
		Code:        m.Code,
		Symbol:      m.Symbol,
		Name:        m.Name,
		Flag:        m.Flag,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCurrencySlice converts a slice of model Currencies to domain Currencies
func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	ds := make([]domain.Currency, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrency(m)
	}
	return ds
}
