// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"bytes"
	"fmt"
	"strconv"
)

// Number accepts either a JSON number or a numeric string, so that form
// submissions serialized as strings ("2", "1500.50") still coerce to a
// numeric value before storage.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}

	value, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", string(data))
	}

	*n = Number(value)
	return nil
}

// Float64 returns the underlying value.
func (n Number) Float64() float64 {
	return float64(n)
}

// Int returns the value truncated to an integer.
func (n Number) Int() int {
	return int(n)
}
