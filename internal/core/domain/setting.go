package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// SettingKind tags how a setting's raw string value is encoded.
type SettingKind string

const (
	SettingString  SettingKind = "string"
	SettingInteger SettingKind = "integer"
	SettingDecimal SettingKind = "decimal"
	SettingBoolean SettingKind = "boolean"
	SettingJSON    SettingKind = "json"
)

// SettingValue is a tagged union over the supported setting kinds. Exactly
// the field matching Kind is meaningful.
type SettingValue struct {
	Kind SettingKind
	Str  string
	Int  int64
	Dec  decimal.Decimal
	Bool bool
	JSON map[string]interface{}
}

// StringValue builds a string-kinded value.
func StringValue(s string) SettingValue { return SettingValue{Kind: SettingString, Str: s} }

// IntegerValue builds an integer-kinded value.
func IntegerValue(i int64) SettingValue { return SettingValue{Kind: SettingInteger, Int: i} }

// DecimalValue builds a decimal-kinded value.
func DecimalValue(d decimal.Decimal) SettingValue { return SettingValue{Kind: SettingDecimal, Dec: d} }

// BooleanValue builds a boolean-kinded value.
func BooleanValue(b bool) SettingValue { return SettingValue{Kind: SettingBoolean, Bool: b} }

// JSONValue builds a json-kinded value.
func JSONValue(m map[string]interface{}) SettingValue { return SettingValue{Kind: SettingJSON, JSON: m} }

// Encode serializes the value to its stored string form. Booleans encode as
// "1"/"0"; json as its serialized text.
func (v SettingValue) Encode() (string, error) {
	switch v.Kind {
	case SettingString:
		return v.Str, nil
	case SettingInteger:
		return strconv.FormatInt(v.Int, 10), nil
	case SettingDecimal:
		return v.Dec.String(), nil
	case SettingBoolean:
		if v.Bool {
			return "1", nil
		}
		return "0", nil
	case SettingJSON:
		m := v.JSON
		if m == nil {
			m = map[string]interface{}{}
		}
		b, err := json.Marshal(m)
		if err != nil {
			return "", fmt.Errorf("failed to encode json setting: %w", err)
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unknown setting kind %q", v.Kind)
	}
}

// DecodeSetting parses a stored raw string according to its kind tag.
// A json value that fails to parse decodes to an empty object rather than
// returning an error.
func DecodeSetting(raw string, kind SettingKind) (SettingValue, error) {
	switch kind {
	case SettingString:
		return StringValue(raw), nil
	case SettingInteger:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return SettingValue{}, fmt.Errorf("setting is not an integer: %w", err)
		}
		return IntegerValue(i), nil
	case SettingDecimal:
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return SettingValue{}, fmt.Errorf("setting is not a decimal: %w", err)
		}
		return DecimalValue(d), nil
	case SettingBoolean:
		switch raw {
		case "1", "true":
			return BooleanValue(true), nil
		case "0", "false", "":
			return BooleanValue(false), nil
		default:
			return SettingValue{}, fmt.Errorf("setting is not a boolean: %q", raw)
		}
	case SettingJSON:
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &m); err != nil || m == nil {
			return JSONValue(map[string]interface{}{}), nil
		}
		return JSONValue(m), nil
	default:
		return SettingValue{}, fmt.Errorf("unknown setting kind %q", kind)
	}
}

// Interface returns the value as a plain interface{} for the API response.
func (v SettingValue) Interface() interface{} {
	switch v.Kind {
	case SettingString:
		return v.Str
	case SettingInteger:
		return v.Int
	case SettingDecimal:
		return v.Dec
	case SettingBoolean:
		return v.Bool
	case SettingJSON:
		return v.JSON
	default:
		return nil
	}
}

// CoerceSetting converts a decoded JSON value (as delivered by the API) into
// a SettingValue of the requested kind. JSON numbers arrive as float64.
func CoerceSetting(kind SettingKind, v interface{}) (SettingValue, error) {
	switch kind {
	case SettingString:
		s, ok := v.(string)
		if !ok {
			return SettingValue{}, fmt.Errorf("value is not a string")
		}
		return StringValue(s), nil
	case SettingInteger:
		switch n := v.(type) {
		case float64:
			return IntegerValue(int64(n)), nil
		case int64:
			return IntegerValue(n), nil
		case int:
			return IntegerValue(int64(n)), nil
		case string:
			i, err := strconv.ParseInt(n, 10, 64)
			if err != nil {
				return SettingValue{}, fmt.Errorf("value is not an integer: %w", err)
			}
			return IntegerValue(i), nil
		default:
			return SettingValue{}, fmt.Errorf("value is not an integer")
		}
	case SettingDecimal:
		switch n := v.(type) {
		case float64:
			return DecimalValue(decimal.NewFromFloat(n)), nil
		case string:
			d, err := decimal.NewFromString(n)
			if err != nil {
				return SettingValue{}, fmt.Errorf("value is not a decimal: %w", err)
			}
			return DecimalValue(d), nil
		default:
			return SettingValue{}, fmt.Errorf("value is not a decimal")
		}
	case SettingBoolean:
		b, ok := v.(bool)
		if !ok {
			return SettingValue{}, fmt.Errorf("value is not a boolean")
		}
		return BooleanValue(b), nil
	case SettingJSON:
		m, ok := v.(map[string]interface{})
		if !ok {
			return SettingValue{}, fmt.Errorf("value is not a json object")
		}
		return JSONValue(m), nil
	default:
		return SettingValue{}, fmt.Errorf("unknown setting kind %q", kind)
	}
}

// Setting is a typed key/value configuration entry.
type Setting struct {
	Key         string       `json:"key"`
	Value       SettingValue `json:"value"`
	Description string       `json:"description"`
	UpdatedBy   string       `json:"updatedBy"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
