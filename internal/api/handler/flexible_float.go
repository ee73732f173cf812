package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// flexibleFloat decodes a JSON number or a numeric string such as "5000",
// which is what HTML number inputs post. An empty string or null leaves it
// unset.
type flexibleFloat struct {
	Value float64
	Valid bool
}

func (f *flexibleFloat) UnmarshalJSON(data []byte) error {
	*f = flexibleFloat{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("expected a number, got %s", data)
	}
	f.Value, f.Valid = v, true
	return nil
}

// Ptr returns nil when unset.
func (f flexibleFloat) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// flexibleFloatValue lets validator tags such as gte apply to the number.
func flexibleFloatValue(field reflect.Value) any {
	if f, ok := field.Interface().(flexibleFloat); ok && f.Valid {
		return f.Value
	}
	return nil
}
