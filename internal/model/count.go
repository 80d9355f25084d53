package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Count is a non-negative metric that upstream sends either as a JSON number
// or as a string of digits. Valid is false when the field was missing, null
// or an empty string; such a count must be displayed as absent, never as 0.
type Count struct {
	Value int64
	Valid bool
}

// NewCount returns a valid Count.
func NewCount(v int64) Count {
	return Count{Value: v, Valid: true}
}

// Int64 returns the value and whether it is present.
func (c Count) Int64() (int64, bool) {
	return c.Value, c.Valid
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Count) UnmarshalJSON(b []byte) error {
	*c = Count{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("count %q is not an integer", s)
		}
		return c.set(v)
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("count must be a number or numeric string: %w", err)
	}
	if v, err := n.Int64(); err == nil {
		return c.set(v)
	}
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return fmt.Errorf("count %s is not an integer", n)
	}
	if f > math.MaxInt64 {
		return errors.New("count overflows int64")
	}
	return c.set(int64(f))
}

func (c *Count) set(v int64) error {
	if v < 0 {
		return fmt.Errorf("count %d is negative", v)
	}
	*c = Count{Value: v, Valid: true}
	return nil
}

// MarshalJSON implements json.Marshaler; absent counts encode as null.
func (c Count) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, c.Value, 10), nil
}
