package builder

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/ohler55/ojg/jp"
	"golang.org/x/text/unicode/norm"

	"github.com/stokaro/leaguesync/core/valueparse"
)

// parser carries the state of one build. It keeps the first structural error;
// later reads on a failed path see empty containers, and Build discards the
// partial graph.
type parser struct {
	view   View
	logger *slog.Logger
	err    *MalformedPayloadError
}

func (p *parser) fail(path, reason string) {
	if p.err != nil {
		return
	}
	p.err = &MalformedPayloadError{View: p.view, Path: path, Reason: reason}
}

// object is a read-only view over one JSON object.
type object struct {
	p    *parser
	path string
	data map[string]any
}

func (o object) at(key string) string {
	return o.path + "." + key
}

func (o object) get(key string) any {
	return o.data[key]
}

// child returns the object stored at key. Absent or null yields an empty object.
func (o object) child(key string) object {
	path := o.at(key)
	v, ok := o.data[key]
	if !ok || v == nil {
		return object{p: o.p, path: path}
	}
	m, ok := v.(map[string]any)
	if !ok {
		o.p.fail(path, fmt.Sprintf("expected object, got %T", v))
		return object{p: o.p, path: path}
	}
	return object{p: o.p, path: path, data: m}
}

// list returns the list stored at key. Absent or null yields nil.
func (o object) list(key string) []any {
	path := o.at(key)
	v, ok := o.data[key]
	if !ok || v == nil {
		return nil
	}
	l, ok := v.([]any)
	if !ok {
		o.p.fail(path, fmt.Sprintf("expected list, got %T", v))
		return nil
	}
	return l
}

// objects returns the list at key, requiring every element to be an object.
func (o object) objects(key string) []object {
	items := o.list(key)
	out := make([]object, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("%s[%d]", o.at(key), i)
		m, ok := item.(map[string]any)
		if !ok {
			o.p.fail(path, fmt.Sprintf("expected object, got %T", item))
			return nil
		}
		out = append(out, object{p: o.p, path: path, data: m})
	}
	return out
}

// entry is one key/value pair of an enum-keyed mapping.
type entry struct {
	key   string
	value any
}

// entries returns the mapping at key with its keys in numeric order. Keys that
// are not integers sort after the numeric ones, lexically.
func (o object) entries(key string) []entry {
	m := o.child(key).data
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aErr := strconv.ParseInt(keys[i], 10, 64)
		b, bErr := strconv.ParseInt(keys[j], 10, 64)
		switch {
		case aErr == nil && bErr == nil:
			return a < b
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		}
		return keys[i] < keys[j]
	})
	out := make([]entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, entry{key: k, value: m[k]})
	}
	return out
}

func (o object) int(key string) *int64 {
	return intPtr(o.data[key])
}

func (o object) intOr(key string, def int64) int64 {
	if v, ok := valueparse.Int(o.data[key]); ok {
		return v
	}
	return def
}

func (o object) float(key string) *float64 {
	return floatPtr(o.data[key])
}

func (o object) floatOr(key string, def float64) float64 {
	if v, ok := valueparse.Float(o.data[key]); ok {
		return v
	}
	return def
}

func (o object) str(key string) *string {
	return strPtr(o.data[key])
}

// text reads a display string and normalises it to NFC.
func (o object) text(key string) *string {
	s := o.str(key)
	if s == nil {
		return nil
	}
	n := norm.NFC.String(*s)
	return &n
}

func (o object) boolean(key string) bool {
	v, _ := valueparse.Bool(o.data[key])
	return v
}

func (o object) epoch(key string) *time.Time {
	t, ok := valueparse.EpochToTime(o.data[key])
	if !ok {
		return nil
	}
	return &t
}

// lookup evaluates a JSONPath expression relative to the object.
func (o object) lookup(x jp.Expr) any {
	if o.data == nil {
		return nil
	}
	return x.First(o.data)
}

func intPtr(v any) *int64 {
	i, ok := valueparse.Int(v)
	if !ok {
		return nil
	}
	return &i
}

func floatPtr(v any) *float64 {
	f, ok := valueparse.Float(v)
	if !ok {
		return nil
	}
	return &f
}

func strPtr(v any) *string {
	s, ok := valueparse.String(v)
	if !ok {
		return nil
	}
	return &s
}
