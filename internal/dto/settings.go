package dto

import (
	"time"

	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateSettingRequest upserts one typed setting.
type UpdateSettingRequest struct {
	Value       interface{} `json:"value" binding:"required"`
	Type        string      `json:"type" binding:"required,oneof=string integer decimal boolean json"`
	Description string      `json:"description"`
}

// SettingResponse is the API shape of one setting.
type SettingResponse struct {
	Key         string      `json:"key"`
	Value       interface{} `json:"value"`
	Type        string      `json:"type"`
	Description string      `json:"description,omitempty"`
	UpdatedBy   string      `json:"updatedBy,omitempty"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ToSettingResponse maps a domain Setting.
func ToSettingResponse(s *domain.Setting) SettingResponse {
	return SettingResponse{
		Key:         s.Key,
		Value:       s.Value.Interface(),
		Type:        string(s.Value.Kind),
		Description: s.Description,
		UpdatedBy:   s.UpdatedBy,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToSettingResponseSlice maps a settings listing.
func ToSettingResponseSlice(ss []domain.Setting) []SettingResponse {
	out := make([]SettingResponse, len(ss))
	for i := range ss {
		out[i] = ToSettingResponse(&ss[i])
	}
	return out
}

// StoreInfoResponse groups the storefront identity settings.
type StoreInfoResponse struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// MarketHoursResponse groups the trading-hours settings.
type MarketHoursResponse struct {
	Timezone  string   `json:"timezone"`
	OpenDays  []string `json:"openDays"`
	OpenTime  string   `json:"openTime"`
	CloseTime string   `json:"closeTime"`
	IsOpen    bool     `json:"isOpen"`
}

// MarginsResponse groups the default margin settings.
type MarginsResponse struct {
	DefaultMarginBuy  decimal.Decimal `json:"defaultMarginBuy"`
	DefaultMarginSell decimal.Decimal `json:"defaultMarginSell"`
}

// SecurityThresholdsResponse groups the security knobs.
type SecurityThresholdsResponse struct {
	MaxLoginAttempts      int64 `json:"maxLoginAttempts"`
	LockoutMinutes        int64 `json:"lockoutMinutes"`
	SessionTimeoutMinutes int64 `json:"sessionTimeoutMinutes"`
}

// MarketStatusResponse is the public market-open indicator.
type MarketStatusResponse struct {
	IsOpen    bool   `json:"isOpen"`
	Timezone  string `json:"timezone"`
	LocalTime string `json:"localTime"`
}
