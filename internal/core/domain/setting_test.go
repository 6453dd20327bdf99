package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
)

func TestSettingValueRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		value domain.SettingValue
		raw   string
	}{
		{"string", domain.StringValue("Sarraf Exchange"), "Sarraf Exchange"},
		{"integer", domain.IntegerValue(7), "7"},
		{"decimal", domain.DecimalValue(decimal.RequireFromString("0.025")), "0.025"},
		{"boolean true", domain.BooleanValue(true), "1"},
		{"boolean false", domain.BooleanValue(false), "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := tc.value.Encode()
			require.NoError(t, err)
			assert.Equal(t, tc.raw, encoded)

			decoded, err := domain.DecodeSetting(encoded, tc.value.Kind)
			require.NoError(t, err)
			assert.Equal(t, tc.value, decoded)
		})
	}
}

func TestSettingIntegerStaysTyped(t *testing.T) {
	v, err := domain.DecodeSetting("7", domain.SettingInteger)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v.Interface())
	assert.NotEqual(t, "7", v.Interface())
}

func TestSettingJSONRoundTrip(t *testing.T) {
	v := domain.JSONValue(map[string]interface{}{"days": "Mon,Tue", "limit": float64(3)})

	encoded, err := v.Encode()
	require.NoError(t, err)

	decoded, err := domain.DecodeSetting(encoded, domain.SettingJSON)
	require.NoError(t, err)
	assert.Equal(t, v.JSON, decoded.JSON)
}

func TestDecodeSettingBadJSONYieldsEmptyObject(t *testing.T) {
	v, err := domain.DecodeSetting("{not json", domain.SettingJSON)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{}, v.JSON)

	v, err = domain.DecodeSetting("null", domain.SettingJSON)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{}, v.JSON)
}

func TestDecodeSettingRejectsMalformedValues(t *testing.T) {
	_, err := domain.DecodeSetting("abc", domain.SettingInteger)
	assert.Error(t, err)

	_, err = domain.DecodeSetting("1.2.3", domain.SettingDecimal)
	assert.Error(t, err)

	_, err = domain.DecodeSetting("yes", domain.SettingBoolean)
	assert.Error(t, err)

	_, err = domain.DecodeSetting("x", domain.SettingKind("unknown"))
	assert.Error(t, err)
}

func TestDecodeSettingBooleanForms(t *testing.T) {
	for _, raw := range []string{"1", "true"} {
		v, err := domain.DecodeSetting(raw, domain.SettingBoolean)
		require.NoError(t, err)
		assert.True(t, v.Bool, raw)
	}
	for _, raw := range []string{"0", "false", ""} {
		v, err := domain.DecodeSetting(raw, domain.SettingBoolean)
		require.NoError(t, err)
		assert.False(t, v.Bool, raw)
	}
}

func TestCoerceSetting(t *testing.T) {
	// JSON numbers arrive as float64 from the request decoder.
	v, err := domain.CoerceSetting(domain.SettingInteger, float64(15))
	require.NoError(t, err)
	assert.Equal(t, int64(15), v.Int)

	v, err = domain.CoerceSetting(domain.SettingInteger, "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v.Int)

	v, err = domain.CoerceSetting(domain.SettingDecimal, "0.02")
	require.NoError(t, err)
	assert.True(t, v.Dec.Equal(decimal.RequireFromString("0.02")))

	v, err = domain.CoerceSetting(domain.SettingBoolean, true)
	require.NoError(t, err)
	assert.True(t, v.Bool)

	v, err = domain.CoerceSetting(domain.SettingJSON, map[string]interface{}{"a": "b"})
	require.NoError(t, err)
	assert.Equal(t, "b", v.JSON["a"])

	_, err = domain.CoerceSetting(domain.SettingInteger, true)
	assert.Error(t, err)

	_, err = domain.CoerceSetting(domain.SettingString, 3)
	assert.Error(t, err)
}
