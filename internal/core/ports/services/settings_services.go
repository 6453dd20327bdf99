package services

import (
	"context"

	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	"github.com/sarrafhq/sarraf-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// SettingsReaderSvc defines typed setting reads. The typed getters never
// return an error: on any failure they log and return the default.
type SettingsReaderSvc interface {
	GetString(ctx context.Context, key, def string) string
	GetInt(ctx context.Context, key string, def int64) int64
	GetDecimal(ctx context.Context, key string, def decimal.Decimal) decimal.Decimal
	GetBool(ctx context.Context, key string, def bool) bool
	GetJSON(ctx context.Context, key string) map[string]interface{}

	// GetSetting retrieves one setting with its metadata.
	GetSetting(ctx context.Context, key string) (*domain.Setting, error)

	// ListSettings retrieves all settings.
	ListSettings(ctx context.Context) ([]domain.Setting, error)

	// IsMarketOpen derives the market state from the configured timezone,
	// open days and open/close times.
	IsMarketOpen(ctx context.Context) bool

	// Grouped accessors used by the storefront admin panel.
	StoreInfo(ctx context.Context) dto.StoreInfoResponse
	MarketHours(ctx context.Context) dto.MarketHoursResponse
	Margins(ctx context.Context) dto.MarginsResponse
	SecurityThresholds(ctx context.Context) dto.SecurityThresholdsResponse
}

// SettingsWriterSvc defines setting mutations.
type SettingsWriterSvc interface {
	// Set upserts a typed setting and audits the change.
	Set(ctx context.Context, key string, value domain.SettingValue, description, actorUserID string) (*domain.Setting, error)

	// Reset restores every seeded default.
	Reset(ctx context.Context, actorUserID string) error
}

// SettingsSvcFacade combines the settings service interfaces.
type SettingsSvcFacade interface {
	SettingsReaderSvc
	SettingsWriterSvc
}
