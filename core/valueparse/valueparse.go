// Package valueparse converts loosely typed scalars decoded from the fantasy API
// into Go values.
//
// Every function reports success with a boolean instead of an error: absent or
// malformed input is "no value", never a failure. The decoders used by this
// project may hand over int64 (ojg), float64 (encoding/json), json.Number or
// plain strings for the same field, so each helper accepts all of them.
package valueparse

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// epochDigits is the number of leading digits kept from an epoch value. The API
// reports milliseconds; the first ten digits are the epoch seconds.
const epochDigits = 10

// Int coerces v into an int64. Floats are accepted only when they carry an
// integral value.
func Int(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	}
	return 0, false
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// Float coerces v into a float64.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case bool, nil:
		return 0, false
	}
	if i, ok := Int(v); ok {
		return float64(i), true
	}
	return 0, false
}

// Bool coerces v into a bool. Strings such as "true" and "0" are accepted.
func Bool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return parsed, err == nil
	}
	return false, false
}

// String coerces v into a string. Integral numbers are formatted in base 10.
func String(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case bool, nil:
		return "", false
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	}
	if i, ok := Int(v); ok {
		return strconv.FormatInt(i, 10), true
	}
	return "", false
}

// EpochToTime converts an epoch timestamp into a local time.
//
// The value may be a number or a numeric string in seconds or milliseconds; only
// the first ten digits of the integer part are used. Absent, boolean, or
// non-numeric input yields false, and so does a string with trailing garbage.
func EpochToTime(v any) (time.Time, bool) {
	var digits string
	switch n := v.(type) {
	case nil, bool:
		return time.Time{}, false
	case string:
		digits = strings.TrimSpace(n)
	case json.Number:
		digits = n.String()
	default:
		i, ok := Int(v)
		if !ok {
			f, fok := Float(v)
			if !fok || math.IsNaN(f) || math.IsInf(f, 0) {
				return time.Time{}, false
			}
			i = int64(f)
		}
		digits = strconv.FormatInt(i, 10)
	}
	sign, whole, ok := splitDecimal(digits)
	if !ok {
		return time.Time{}, false
	}
	if len(whole) > epochDigits {
		whole = whole[:epochDigits]
	}
	seconds, err := strconv.ParseInt(sign+whole, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(seconds, 0).In(time.Local), true
}

// splitDecimal checks that s is an optionally signed decimal number with an
// optional fraction, and returns its sign and integer digits.
func splitDecimal(s string) (sign, whole string, ok bool) {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		sign, s = s[:1], s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" || !allDigits(whole) || !allDigits(frac) {
		return "", "", false
	}
	return sign, whole, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MemberID strips the braces ESPN wraps around member GUIDs.
func MemberID(id string) string {
	return strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(id), "{"), "}")
}
