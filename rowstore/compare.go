package rowstore

import (
	"time"

	"github.com/stokaro/leaguesync/core/valueparse"
)

// ValuesEqual compares two column values the way a database would: numbers
// compare by value regardless of Go type, times by instant, nil only equals nil.
func ValuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case []byte:
		bv, ok := b.([]byte)
		return ok && string(av) == string(bv)
	}
	if !isNumber(a) || !isNumber(b) {
		return a == b
	}
	if ai, ok := valueparse.Int(a); ok {
		if bi, ok := valueparse.Int(b); ok {
			return ai == bi
		}
	}
	af, aok := valueparse.Float(a)
	bf, bok := valueparse.Float(b)
	return aok && bok && af == bf
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	}
	return false
}
