package entity

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/stokaro/leaguesync/core/valueparse"
)

var (
	// ErrUnknownColumn is returned by Backfill when no field carries the column.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrNotAssignable is returned by Backfill when the value does not fit the field.
	ErrNotAssignable = errors.New("value not assignable")
)

var (
	refType  = reflect.TypeOf(Ref{})
	timeType = reflect.TypeOf(time.Time{})
)

type column struct {
	index     int
	name      string
	omitEmpty bool
}

var columnCache sync.Map // reflect.Type -> []column

// columnsOf returns the tagged columns of struct type t. Untagged fields, "-"
// and names starting with "_" are skipped.
func columnsOf(t reflect.Type) []column {
	if cached, ok := columnCache.Load(t); ok {
		return cached.([]column)
	}
	var cols []column
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, ok := f.Tag.Lookup("db")
		if !ok {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" || strings.HasPrefix(name, "_") {
			continue
		}
		cols = append(cols, column{
			index:     i,
			name:      name,
			omitEmpty: opts == "omitempty",
		})
	}
	columnCache.Store(t, cols)
	return cols
}

func structValue(e Entity) (reflect.Value, bool) {
	if e == nil {
		return reflect.Value{}, false
	}
	v := reflect.ValueOf(e)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	return v, true
}

// Serialize flattens e into a row of writable scalars.
//
// Only tagged fields holding scalars are emitted: nested entities, structs,
// slices, maps and arrays are dropped whether empty or not. Nil pointers and
// unset refs become NULL unless the column is omitempty, in which case zero
// values are left out entirely. Serialize never modifies e.
func Serialize(e Entity) Row {
	row := Row{}
	v, ok := structValue(e)
	if !ok {
		return row
	}
	for _, col := range columnsOf(v.Type()) {
		fv := v.Field(col.index)
		val, scalar := scalarValue(fv)
		if !scalar {
			continue
		}
		if col.omitEmpty && (val == nil || fv.IsZero()) {
			continue
		}
		row[col.name] = val
	}
	return row
}

func scalarValue(fv reflect.Value) (any, bool) {
	switch fv.Type() {
	case refType:
		r := fv.Interface().(Ref)
		if !r.Valid {
			return nil, true
		}
		return scalarValue(reflect.ValueOf(r.Value))
	case timeType:
		return fv.Interface(), true
	}

	switch fv.Kind() {
	case reflect.Pointer:
		if !isScalarType(fv.Type().Elem()) {
			return nil, false
		}
		if fv.IsNil() {
			return nil, true
		}
		return scalarValue(fv.Elem())
	case reflect.Interface:
		if fv.IsNil() {
			return nil, true
		}
		return scalarValue(fv.Elem())
	case reflect.Bool:
		return fv.Bool(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fv.Uint(), true
	case reflect.Float32, reflect.Float64:
		return fv.Float(), true
	case reflect.String:
		return fv.String(), true
	case reflect.Invalid:
		return nil, true
	}
	return nil, false
}

func isScalarType(t reflect.Type) bool {
	if t == timeType || t == refType {
		return true
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Interface:
		return true
	}
	return false
}

// Backfill stores id in the field of e tagged with column. It is used to set
// foreign keys once the referenced row is written, and to record e's own id.
// e must be a non-nil pointer.
func Backfill(e Entity, column string, id any) error {
	v, ok := structValue(e)
	if !ok || !v.CanSet() {
		return fmt.Errorf("%w: cannot backfill %T", ErrNotAssignable, e)
	}
	for _, col := range columnsOf(v.Type()) {
		if col.name != column {
			continue
		}
		if err := assign(v.Field(col.index), id); err != nil {
			return fmt.Errorf("failed to backfill %s.%s: %w", e.Kind(), column, err)
		}
		return nil
	}
	return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, e.Kind(), column)
}

func assign(fv reflect.Value, id any) error {
	if fv.Type() == refType {
		fv.Set(reflect.ValueOf(RefTo(id)))
		return nil
	}
	if id == nil {
		fv.Set(reflect.Zero(fv.Type()))
		return nil
	}

	switch fv.Kind() {
	case reflect.Pointer:
		elem := reflect.New(fv.Type().Elem())
		if err := assign(elem.Elem(), id); err != nil {
			return err
		}
		fv.Set(elem)
		return nil
	case reflect.Interface:
		fv.Set(reflect.ValueOf(id))
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := valueparse.Int(id)
		if !ok || fv.OverflowInt(i) {
			return fmt.Errorf("%w: %v (%T) into %s", ErrNotAssignable, id, id, fv.Type())
		}
		fv.SetInt(i)
		return nil
	case reflect.Float32, reflect.Float64:
		f, ok := valueparse.Float(id)
		if !ok {
			return fmt.Errorf("%w: %v (%T) into %s", ErrNotAssignable, id, id, fv.Type())
		}
		fv.SetFloat(f)
		return nil
	case reflect.String:
		s, ok := valueparse.String(id)
		if !ok {
			return fmt.Errorf("%w: %v (%T) into %s", ErrNotAssignable, id, id, fv.Type())
		}
		fv.SetString(s)
		return nil
	}
	return fmt.Errorf("%w: %v (%T) into %s", ErrNotAssignable, id, id, fv.Type())
}
