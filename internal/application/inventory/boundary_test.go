package inventory

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dominv "github.com/Zhima-Mochi/stockledger/internal/domain/inventory"
)

func TestParseAddition_Accepts(t *testing.T) {
	cases := []struct {
		name     string
		item     any
		quantity any
		want     int
	}{
		{"int", "apple", 10, 10},
		{"negative", "banana", -2, -2},
		{"int64", "apple", int64(3), 3},
		{"uint8", "apple", uint8(7), 7},
		{"json number", "apple", json.Number("42"), 42},
		{"empty item", "", 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item, n, err := ParseAddition(tc.item, tc.quantity)
			require.NoError(t, err)
			assert.Equal(t, tc.item, item)
			assert.Equal(t, tc.want, n)
		})
	}
}

func TestParseAddition_Rejects(t *testing.T) {
	cases := []struct {
		name     string
		item     any
		quantity any
	}{
		{"numeric item", 123, 1},
		{"nil item", nil, 1},
		{"string quantity", "apple", "ten"},
		{"float quantity", "apple", 10.0},
		{"bool quantity", "apple", true},
		{"fractional json number", "apple", json.Number("2.5")},
		{"exponent json number", "apple", json.Number("1e3")},
		{"overflowing uint64", "apple", uint64(math.MaxUint64)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseAddition(tc.item, tc.quantity)
			assert.ErrorIs(t, err, dominv.ErrInvalidInput)
		})
	}
}
