package client

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is a JSON scalar kept exactly as the API sent it. The client never
// interprets field values; it only renders them as text.
type Value struct {
	raw json.RawMessage
}

// V builds a Value from a Go value, mostly for tests and fixtures.
func V(v any) Value {
	raw, err := json.Marshal(v)
	if err != nil {
		return Value{}
	}
	return Value{raw: raw}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	v.raw = append(v.raw[:0], bytes.TrimSpace(data)...)
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.raw == nil {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// String renders the value the way it reads inside a list item template:
// strings unquoted, numbers in shortest form, a JSON null as "null" and a
// missing field as "undefined".
func (v Value) String() string {
	if v.raw == nil {
		return "undefined"
	}

	switch v.raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(v.raw, &s); err == nil {
			return s
		}
	case 'n':
		return "null"
	case 't', 'f':
		return string(v.raw)
	case '{':
		return "[object Object]"
	case '[':
		return string(v.raw)
	default:
		if f, err := strconv.ParseFloat(string(v.raw), 64); err == nil {
			return formatNumber(f)
		}
	}
	return string(v.raw)
}

// Text renders the value for direct assignment to a text field, where a
// null or missing value shows as empty.
func (v Value) Text() string {
	if v.IsNull() {
		return ""
	}
	return v.String()
}

func (v Value) IsNull() bool {
	return v.raw == nil || string(v.raw) == "null"
}

// Truthy reports whether the value would count as set: not missing, null,
// false, zero or the empty string.
func (v Value) Truthy() bool {
	if v.IsNull() {
		return false
	}
	switch s := string(v.raw); s {
	case "false", `""`:
		return false
	default:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f != 0 && !math.IsNaN(f)
		}
	}
	return true
}

func formatNumber(f float64) string {
	if math.Abs(f) >= 1e21 || (f != 0 && math.Abs(f) < 1e-6) {
		s := strconv.FormatFloat(f, 'g', -1, 64)
		// Go pads the exponent to two digits.
		s = strings.Replace(s, "e-0", "e-", 1)
		return strings.Replace(s, "e+0", "e+", 1)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
