// Package enums holds the fixed Position and Stat lookup tables used while
// parsing league payloads.
//
// Each table is keyed by the small integer code ESPN uses on the wire. A
// well-formed code that is not registered resolves to the table's DEFAULT
// member and is reported through slog; lookups never fail. DEFAULT is a
// sentinel, so helpers that produce column values return nil for it.
package enums

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/stokaro/leaguesync/core/valueparse"
)

// DefaultID is the id shared by the DEFAULT member of every table.
const DefaultID = -1

// UnknownEnumCode describes a code that is not part of a table. It is logged,
// never returned to callers.
type UnknownEnumCode struct {
	Enum string
	Code int64
}

func (e UnknownEnumCode) Error() string {
	return fmt.Sprintf("%d is not a valid %s", e.Code, e.Enum)
}

type member interface {
	code() int
}

type registry[T member] struct {
	name     string
	fallback T
	byID     map[int]T
	ordered  []T
}

func newRegistry[T member](name string, fallback T, members ...T) (*registry[T], error) {
	if fallback.code() != DefaultID {
		return nil, fmt.Errorf("%s: default member must use id %d, got %d", name, DefaultID, fallback.code())
	}
	r := &registry[T]{
		name:     name,
		fallback: fallback,
		byID:     make(map[int]T, len(members)),
		ordered:  make([]T, 0, len(members)),
	}
	for _, m := range members {
		if m.code() == DefaultID {
			return nil, fmt.Errorf("%s: id %d is reserved for the default member", name, DefaultID)
		}
		if _, exists := r.byID[m.code()]; exists {
			return nil, fmt.Errorf("%s: duplicate id %d", name, m.code())
		}
		r.byID[m.code()] = m
		r.ordered = append(r.ordered, m)
	}
	sort.SliceStable(r.ordered, func(i, j int) bool {
		return r.ordered[i].code() < r.ordered[j].code()
	})
	return r, nil
}

// lookup resolves code. Absent or non-integer input reports false; an unknown
// integer yields the fallback member.
func (r *registry[T]) lookup(code any) (T, bool) {
	var zero T
	if code == nil {
		return zero, false
	}
	id, ok := valueparse.Int(code)
	if !ok {
		return zero, false
	}
	if id == DefaultID {
		return r.fallback, true
	}
	if m, found := r.byID[int(id)]; found {
		return m, true
	}
	slog.Warn("Unknown enum code, using default member",
		"enum", r.name,
		"code", id,
		"error", UnknownEnumCode{Enum: r.name, Code: id})
	return r.fallback, true
}

func (r *registry[T]) members() []T {
	out := make([]T, len(r.ordered))
	copy(out, r.ordered)
	return out
}

func columnID(id int, isDefault bool) *int64 {
	if isDefault {
		return nil
	}
	v := int64(id)
	return &v
}
