package inventory

import (
	"encoding/json"
	"fmt"
	"math"

	dominv "github.com/Zhima-Mochi/stockledger/internal/domain/inventory"
)

// Addition is an untyped add request as it arrives from outside the process,
// for example one element of a JSON batch file.
type Addition struct {
	Item     any `json:"item"`
	Quantity any `json:"quantity"`
}

// ParseAddition checks that item is a string and quantity an integer.
// Floats, booleans and numeric strings are rejected. json.Number values are
// accepted only when they hold an integer literal.
func ParseAddition(item, quantity any) (string, int, error) {
	name, ok := item.(string)
	if !ok {
		return "", 0, invalidInput(item, quantity)
	}
	n, ok := asInt(quantity)
	if !ok {
		return "", 0, invalidInput(item, quantity)
	}
	return name, n, nil
}

func invalidInput(item, quantity any) error {
	return fmt.Errorf("%w: item %T, quantity %T", dominv.ErrInvalidInput, item, quantity)
}

func asInt(v any) (int, bool) {
	switch q := v.(type) {
	case int:
		return q, true
	case int8:
		return int(q), true
	case int16:
		return int(q), true
	case int32:
		return int(q), true
	case int64:
		return fitInt64(q)
	case uint:
		return fitUint64(uint64(q))
	case uint8:
		return int(q), true
	case uint16:
		return int(q), true
	case uint32:
		return fitUint64(uint64(q))
	case uint64:
		return fitUint64(q)
	case json.Number:
		i, err := q.Int64()
		if err != nil {
			return 0, false
		}
		return fitInt64(i)
	default:
		return 0, false
	}
}

func fitInt64(v int64) (int, bool) {
	if v < math.MinInt || v > math.MaxInt {
		return 0, false
	}
	return int(v), true
}

func fitUint64(v uint64) (int, bool) {
	if v > math.MaxInt {
		return 0, false
	}
	return int(v), true
}
