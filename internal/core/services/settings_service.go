package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	portsrepo "github.com/sarrafhq/sarraf-backend/internal/core/ports/repositories"
	portssvc "github.com/sarrafhq/sarraf-backend/internal/core/ports/services"
	"github.com/sarrafhq/sarraf-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// Well-known setting keys.
const (
	SettingStoreName         = "store_name"
	SettingStorePhone        = "store_phone"
	SettingStoreAddress      = "store_address"
	SettingStoreEmail        = "store_email"
	SettingMarketTimezone    = "market_timezone"
	SettingMarketOpenDays    = "market_open_days"
	SettingMarketOpenTime    = "market_open_time"
	SettingMarketCloseTime   = "market_close_time"
	SettingDefaultMarginBuy  = "default_margin_buy"
	SettingDefaultMarginSell = "default_margin_sell"
	SettingMaxLoginAttempts  = "max_login_attempts"
	SettingLockoutMinutes    = "lockout_minutes"
	SettingSessionTimeout    = "session_timeout_minutes"
)

// SettingsService provides typed access to the key/value configuration and
// the market-hours logic derived from it.
type SettingsService struct {
	settingRepo     portsrepo.SettingRepositoryFacade
	audit           portssvc.AuditSvc
	logger          *slog.Logger
	defaultTimezone string
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settingRepo portsrepo.SettingRepositoryFacade, audit portssvc.AuditSvc, logger *slog.Logger, defaultTimezone string) *SettingsService {
	return &SettingsService{
		settingRepo:     settingRepo,
		audit:           audit,
		logger:          logger,
		defaultTimezone: defaultTimezone,
	}
}

// GetSetting retrieves one setting with its metadata.
func (s *SettingsService) GetSetting(ctx context.Context, key string) (*domain.Setting, error) {
	return s.settingRepo.FindSettingByKey(ctx, key)
}

// ListSettings retrieves all settings.
func (s *SettingsService) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	return s.settingRepo.ListSettings(ctx)
}

// get fetches a setting of the expected kind, returning nil on any failure.
// The typed getters built on it never surface errors.
func (s *SettingsService) get(ctx context.Context, key string, kind domain.SettingKind) *domain.SettingValue {
	setting, err := s.settingRepo.FindSettingByKey(ctx, key)
	if err != nil {
		return nil
	}
	if setting.Value.Kind != kind {
		s.logger.Warn("setting kind mismatch",
			slog.String("key", key),
			slog.String("want", string(kind)),
			slog.String("got", string(setting.Value.Kind)),
		)
		return nil
	}
	return &setting.Value
}

// GetString returns the string setting or the default.
func (s *SettingsService) GetString(ctx context.Context, key, def string) string {
	if v := s.get(ctx, key, domain.SettingString); v != nil {
		return v.Str
	}
	return def
}

// GetInt returns the integer setting or the default.
func (s *SettingsService) GetInt(ctx context.Context, key string, def int64) int64 {
	if v := s.get(ctx, key, domain.SettingInteger); v != nil {
		return v.Int
	}
	return def
}

// GetDecimal returns the decimal setting or the default.
func (s *SettingsService) GetDecimal(ctx context.Context, key string, def decimal.Decimal) decimal.Decimal {
	if v := s.get(ctx, key, domain.SettingDecimal); v != nil {
		return v.Dec
	}
	return def
}

// GetBool returns the boolean setting or the default.
func (s *SettingsService) GetBool(ctx context.Context, key string, def bool) bool {
	if v := s.get(ctx, key, domain.SettingBoolean); v != nil {
		return v.Bool
	}
	return def
}

// GetJSON returns the json setting or an empty object.
func (s *SettingsService) GetJSON(ctx context.Context, key string) map[string]interface{} {
	if v := s.get(ctx, key, domain.SettingJSON); v != nil {
		return v.JSON
	}
	return map[string]interface{}{}
}

// Set upserts a typed setting and audits the change.
func (s *SettingsService) Set(ctx context.Context, key string, value domain.SettingValue, description, actorUserID string) (*domain.Setting, error) {
	if key == "" {
		return nil, apperrors.NewValidationError("setting key is required")
	}

	setting := domain.Setting{
		Key:         key,
		Value:       value,
		Description: description,
		UpdatedBy:   actorUserID,
		UpdatedAt:   time.Now(),
	}
	if err := s.settingRepo.UpsertSetting(ctx, setting); err != nil {
		return nil, fmt.Errorf("failed to set setting %s: %w", key, err)
	}

	s.audit.Record(ctx, domain.AuditLogEntry{
		UserID:     actorUserID,
		Action:     domain.AuditActionCreate,
		EntityType: "setting",
		EntityID:   key,
		NewValues:  map[string]interface{}{"value": value.Interface(), "type": string(value.Kind)},
	})

	return &setting, nil
}

// Reset restores every seeded default setting.
func (s *SettingsService) Reset(ctx context.Context, actorUserID string) error {
	for _, setting := range DefaultSettings(s.defaultTimezone) {
		setting.UpdatedBy = actorUserID
		setting.UpdatedAt = time.Now()
		if err := s.settingRepo.UpsertSetting(ctx, setting); err != nil {
			return fmt.Errorf("failed to reset setting %s: %w", setting.Key, err)
		}
	}

	s.audit.Record(ctx, domain.AuditLogEntry{
		UserID:     actorUserID,
		Action:     domain.AuditActionSettingsReset,
		EntityType: "setting",
		EntityID:   "*",
	})

	return nil
}

// IsMarketOpen derives the market state from the configured timezone, open
// days and open/close times. Times compare lexicographically as "HH:MM";
// overnight windows (close before open) are not supported and read as a
// market that never opens.
func (s *SettingsService) IsMarketOpen(ctx context.Context) bool {
	now := s.marketNow(ctx)

	day := now.Weekday().String()[:3]
	openDays := strings.Split(s.GetString(ctx, SettingMarketOpenDays, "Sun,Mon,Tue,Wed,Thu"), ",")
	dayOpen := false
	for _, d := range openDays {
		if strings.EqualFold(strings.TrimSpace(d), day) {
			dayOpen = true
			break
		}
	}
	if !dayOpen {
		return false
	}

	hhmm := now.Format("15:04")
	openTime := s.GetString(ctx, SettingMarketOpenTime, "09:00")
	closeTime := s.GetString(ctx, SettingMarketCloseTime, "22:00")
	return openTime <= hhmm && hhmm < closeTime
}

// StoreInfo groups the storefront identity settings.
func (s *SettingsService) StoreInfo(ctx context.Context) dto.StoreInfoResponse {
	return dto.StoreInfoResponse{
		Name:    s.GetString(ctx, SettingStoreName, "Sarraf Exchange"),
		Phone:   s.GetString(ctx, SettingStorePhone, ""),
		Address: s.GetString(ctx, SettingStoreAddress, ""),
		Email:   s.GetString(ctx, SettingStoreEmail, ""),
	}
}

// MarketHours groups the trading-hours settings with the derived open state.
func (s *SettingsService) MarketHours(ctx context.Context) dto.MarketHoursResponse {
	days := strings.Split(s.GetString(ctx, SettingMarketOpenDays, "Sun,Mon,Tue,Wed,Thu"), ",")
	for i := range days {
		days[i] = strings.TrimSpace(days[i])
	}
	return dto.MarketHoursResponse{
		Timezone:  s.GetString(ctx, SettingMarketTimezone, s.defaultTimezone),
		OpenDays:  days,
		OpenTime:  s.GetString(ctx, SettingMarketOpenTime, "09:00"),
		CloseTime: s.GetString(ctx, SettingMarketCloseTime, "22:00"),
		IsOpen:    s.IsMarketOpen(ctx),
	}
}

// Margins groups the default margin settings.
func (s *SettingsService) Margins(ctx context.Context) dto.MarginsResponse {
	return dto.MarginsResponse{
		DefaultMarginBuy:  s.GetDecimal(ctx, SettingDefaultMarginBuy, decimal.NewFromFloat(0.02)),
		DefaultMarginSell: s.GetDecimal(ctx, SettingDefaultMarginSell, decimal.NewFromFloat(0.02)),
	}
}

// SecurityThresholds groups the security knobs.
func (s *SettingsService) SecurityThresholds(ctx context.Context) dto.SecurityThresholdsResponse {
	return dto.SecurityThresholdsResponse{
		MaxLoginAttempts:      s.GetInt(ctx, SettingMaxLoginAttempts, 5),
		LockoutMinutes:        s.GetInt(ctx, SettingLockoutMinutes, 15),
		SessionTimeoutMinutes: s.GetInt(ctx, SettingSessionTimeout, 720),
	}
}

// MarketLocalTime reports the current wall-clock time in the market's zone.
func (s *SettingsService) MarketLocalTime(ctx context.Context) (string, string) {
	now := s.marketNow(ctx)
	return now.Location().String(), now.Format("15:04")
}

func (s *SettingsService) marketNow(ctx context.Context) time.Time {
	tz := s.GetString(ctx, SettingMarketTimezone, s.defaultTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		s.logger.Warn("invalid market timezone, falling back to UTC", slog.String("timezone", tz))
		loc = time.UTC
	}
	return time.Now().In(loc)
}

// DefaultSettings returns the seeded configuration for a fresh install (and
// the reset target).
func DefaultSettings(defaultTimezone string) []domain.Setting {
	return []domain.Setting{
		{Key: SettingStoreName, Value: domain.StringValue("Sarraf Exchange"), Description: "Storefront display name"},
		{Key: SettingStorePhone, Value: domain.StringValue(""), Description: "Storefront contact phone"},
		{Key: SettingStoreAddress, Value: domain.StringValue(""), Description: "Storefront address"},
		{Key: SettingStoreEmail, Value: domain.StringValue(""), Description: "Storefront contact email"},
		{Key: SettingMarketTimezone, Value: domain.StringValue(defaultTimezone), Description: "IANA timezone for market hours"},
		{Key: SettingMarketOpenDays, Value: domain.StringValue("Sun,Mon,Tue,Wed,Thu"), Description: "Comma separated trading days"},
		{Key: SettingMarketOpenTime, Value: domain.StringValue("09:00"), Description: "Market open time (HH:MM)"},
		{Key: SettingMarketCloseTime, Value: domain.StringValue("22:00"), Description: "Market close time (HH:MM)"},
		{Key: SettingDefaultMarginBuy, Value: domain.DecimalValue(decimal.NewFromFloat(0.02)), Description: "Default buy margin fraction"},
		{Key: SettingDefaultMarginSell, Value: domain.DecimalValue(decimal.NewFromFloat(0.02)), Description: "Default sell margin fraction"},
		{Key: SettingMaxLoginAttempts, Value: domain.IntegerValue(5), Description: "Failed logins before lockout"},
		{Key: SettingLockoutMinutes, Value: domain.IntegerValue(15), Description: "Lockout duration in minutes"},
		{Key: SettingSessionTimeout, Value: domain.IntegerValue(720), Description: "Session timeout in minutes"},
	}
}
