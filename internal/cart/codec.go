package cart

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrCorruptSnapshot = errors.New("corrupt cart snapshot")

// Encode serialises the full snapshot. An empty cart encodes as [].
func Encode(c Cart) ([]byte, error) {
	if c == nil {
		c = Cart{}
	}
	return json.Marshal(c)
}

// Decode parses a snapshot. Anything that is not a JSON array of line items
// with positive amounts and unique ids is reported as ErrCorruptSnapshot.
func Decode(raw []byte) (Cart, error) {
	var c Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: not an array", ErrCorruptSnapshot)
	}

	seen := make(map[int]struct{}, len(c))
	for _, it := range c {
		if it.Amount < 1 {
			return nil, fmt.Errorf("%w: id %d has amount %d", ErrCorruptSnapshot, it.ID, it.Amount)
		}
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrCorruptSnapshot, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return c, nil
}
