package repositories

import (
	"context"

	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
)

// SettingReader defines read operations for settings.
type SettingReader interface {
	// FindSettingByKey retrieves one setting.
	FindSettingByKey(ctx context.Context, key string) (*domain.Setting, error)

	// ListSettings retrieves all settings ordered by key.
	ListSettings(ctx context.Context) ([]domain.Setting, error)
}

// SettingWriter defines write operations for settings.
type SettingWriter interface {
	// UpsertSetting inserts or replaces a setting by key.
	UpsertSetting(ctx context.Context, setting domain.Setting) error

	// DeleteSetting removes a setting by key.
	DeleteSetting(ctx context.Context, key string) error
}

// SettingRepositoryFacade combines setting repository interfaces.
type SettingRepositoryFacade interface {
	SettingReader
	SettingWriter
}
