package mapping

import (
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	"github.com/sarrafhq/sarraf-backend/internal/models"
)

// ToModelSetting converts a domain Setting to a model Setting. The typed
// value is encoded to its stored string form.
func ToModelSetting(d domain.Setting) (models.Setting, error) {
	raw, err := d.Value.Encode()
	if err != nil {
		return models.Setting{}, err
	}
	return models.Setting{
		Key:         d.Key,
		Value:       raw,
		ValueType:   string(d.Value.Kind),
		Description: d.Description,
		UpdatedBy:   d.UpdatedBy,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

// ToDomainSetting converts a model Setting to a domain Setting, decoding the
// raw value according to its kind tag.
func ToDomainSetting(m models.Setting) (domain.Setting, error) {
	value, err := domain.DecodeSetting(m.Value, domain.SettingKind(m.ValueType))
	if err != nil {
		return domain.Setting{}, err
	}
	return domain.Setting{
		Key:         m.Key,
		Value:       value,
		Description: m.Description,
		UpdatedBy:   m.UpdatedBy,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}
