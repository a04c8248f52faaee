package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// MarshalJSON encodes the inventory as a single JSON object whose keys keep
// insertion order.
func (inv *Inventory) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, item := range inv.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(inv.qty[item]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the inventory with the decoded object. Every value
// must be a JSON integer.
func (inv *Inventory) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("inventory: decode: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("inventory: decode: expected JSON object, got %v", tok)
	}

	next := New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("inventory: decode: %w", err)
		}
		item, ok := tok.(string)
		if !ok {
			return fmt.Errorf("inventory: decode: unexpected key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("inventory: decode %q: %w", item, err)
		}
		if bytes.Equal(raw, []byte("null")) {
			return fmt.Errorf("inventory: decode %q: quantity is null", item)
		}
		var quantity int
		if err := json.Unmarshal(raw, &quantity); err != nil {
			return fmt.Errorf("inventory: decode %q: %w", item, err)
		}
		next.set(item, quantity)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("inventory: decode: %w", err)
	}

	*inv = *next
	return nil
}
