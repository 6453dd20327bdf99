package models

import "time"

// Setting is the settings row: raw string value plus the kind tag that
// governs how it decodes.
type Setting struct {
	Key         string    `db:"key"`
	Value       string    `db:"value"`
	ValueType   string    `db:"value_type"`
	Description string    `db:"description"`
	UpdatedBy   string    `db:"updated_by"`
	UpdatedAt   time.Time `db:"updated_at"`
}
