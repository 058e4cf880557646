package toon

import (
	"math"
	"reflect"
	"strings"
)

// ============================================================
// Reflective Binder
// ============================================================
//
// Maps a decoded Value onto native Go types, in the spirit of
// encoding/json but over the ordered value tree. Struct fields are
// selected with `toon:"name"` tags; tag flags:
//
//   omitempty  the field is optional; a missing key leaves it as-is
//   default    a missing key keeps the pre-populated field value
//   union      on a blank marker field, declares the struct a tagged
//              union: a single-entry object whose key picks the field
//
// Pointer fields are optional by construction: null and missing both
// leave them nil. Named string types may implement EnumVariants()
// []string to restrict the accepted values.

// Enum restricts a named string type to a fixed variant list when
// bound through Bind.
type Enum interface {
	EnumVariants() []string
}

var (
	enumType  = reflect.TypeOf((*Enum)(nil)).Elem()
	valueType = reflect.TypeOf((*Value)(nil))
)

// UnmarshalInto decodes TOON text and binds the result onto out, which
// must be a non-nil pointer.
func UnmarshalInto(src string, out any) error {
	return UnmarshalIntoWithOptions(src, out, DefaultDecodeOptions())
}

// UnmarshalIntoWithOptions decodes with custom options and binds the
// result onto out.
func UnmarshalIntoWithOptions(src string, out any, opts DecodeOptions) error {
	v, err := UnmarshalWithOptions(src, opts)
	if err != nil {
		return err
	}
	return Bind(v, out)
}

// Bind maps a Value onto a native Go value through out, a non-nil
// pointer.
func Bind(v *Value, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return bindErr(ErrUnsupportedType, "bind target must be a non-nil pointer, got %T", out)
	}
	return bindValue(v, rv.Elem())
}

func bindValue(v *Value, rv reflect.Value) error {
	// A *Value target takes the tree as-is.
	if rv.Type() == valueType {
		rv.Set(reflect.ValueOf(v))
		return nil
	}

	if rv.Kind() == reflect.Pointer {
		if v.IsNull() {
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return bindValue(v, rv.Elem())
	}

	if isEnum(rv.Type()) {
		return bindEnum(v, rv)
	}

	if rv.Kind() == reflect.Interface && rv.NumMethod() == 0 {
		if nat := naturalValue(v); nat != nil {
			rv.Set(reflect.ValueOf(nat))
		} else {
			rv.Set(reflect.Zero(rv.Type()))
		}
		return nil
	}

	if v.IsNull() {
		return bindErr(ErrTypeMismatch, "cannot bind null to %s", rv.Type())
	}

	switch v.typ {
	case TypeBool:
		if rv.Kind() != reflect.Bool {
			return bindErr(ErrTypeMismatch, "cannot bind bool to %s", rv.Type())
		}
		rv.SetBool(v.boolVal)
		return nil

	case TypeNumber:
		return bindNumber(v.numVal, rv)

	case TypeString:
		if rv.Kind() != reflect.String {
			return bindErr(ErrTypeMismatch, "cannot bind string to %s", rv.Type())
		}
		rv.SetString(v.strVal)
		return nil

	case TypeArray:
		return bindArray(v.arrVal, rv)

	case TypeObject:
		switch rv.Kind() {
		case reflect.Struct:
			if unionField, ok := unionMarker(rv.Type()); ok {
				return bindUnion(v, rv, unionField)
			}
			return bindStruct(v, rv)
		case reflect.Map:
			return bindMap(v, rv)
		default:
			return bindErr(ErrTypeMismatch, "cannot bind object to %s", rv.Type())
		}
	}
	return bindErr(ErrUnsupportedType, "cannot bind %s to %s", v.typ, rv.Type())
}

func bindNumber(f float64, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// Integer conversion truncates toward zero.
		n := int64(math.Trunc(f))
		if rv.OverflowInt(n) {
			return bindErr(ErrTypeMismatch, "number %v overflows %s", f, rv.Type())
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		t := math.Trunc(f)
		if t < 0 {
			return bindErr(ErrTypeMismatch, "number %v is negative, target %s", f, rv.Type())
		}
		n := uint64(t)
		if rv.OverflowUint(n) {
			return bindErr(ErrTypeMismatch, "number %v overflows %s", f, rv.Type())
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		rv.SetFloat(f)
	default:
		return bindErr(ErrTypeMismatch, "cannot bind number to %s", rv.Type())
	}
	return nil
}

func bindArray(items []*Value, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Slice:
		out := reflect.MakeSlice(rv.Type(), len(items), len(items))
		for i, it := range items {
			if err := bindValue(it, out.Index(i)); err != nil {
				return err
			}
		}
		rv.Set(out)
		return nil
	case reflect.Array:
		if rv.Len() != len(items) {
			return bindErr(ErrArraySizeMismatch, "array has %d items, target %s", len(items), rv.Type())
		}
		for i, it := range items {
			if err := bindValue(it, rv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return bindErr(ErrTypeMismatch, "cannot bind array to %s", rv.Type())
	}
}

// fieldSpec describes one bindable struct field.
type fieldSpec struct {
	index    int
	name     string
	optional bool // omitempty flag or pointer kind
	keepZero bool // default flag: missing key keeps the current value
}

func structFields(t reflect.Type) []fieldSpec {
	specs := make([]fieldSpec, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		var optional, keepZero bool
		if tag, ok := sf.Tag.Lookup("toon"); ok {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" && len(parts) == 1 {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
			}
			for _, flag := range parts[1:] {
				switch flag {
				case "omitempty":
					optional = true
				case "default":
					keepZero = true
				}
			}
		}
		if sf.Type.Kind() == reflect.Pointer {
			optional = true
		}
		specs = append(specs, fieldSpec{index: i, name: name, optional: optional, keepZero: keepZero})
	}
	return specs
}

// unionMarker reports whether t declares itself a tagged union via a
// blank field carrying the union flag.
func unionMarker(t reflect.Type) (struct{}, bool) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Name != "_" {
			continue
		}
		tag := sf.Tag.Get("toon")
		for _, part := range strings.Split(tag, ",") {
			if part == "union" {
				return struct{}{}, true
			}
		}
	}
	return struct{}{}, false
}

func bindStruct(v *Value, rv reflect.Value) error {
	specs := structFields(rv.Type())
	byName := make(map[string]int, len(specs))
	for i, s := range specs {
		byName[s.name] = i
	}
	seen := make([]bool, len(specs))
	for _, f := range v.objVal {
		i, ok := byName[f.Key]
		if !ok {
			continue
		}
		if err := bindValue(f.Value, rv.Field(specs[i].index)); err != nil {
			return err
		}
		seen[i] = true
	}
	for i, s := range specs {
		if seen[i] || s.optional || s.keepZero {
			continue
		}
		return bindErr(ErrMissingField, "missing field %q for %s", s.name, rv.Type())
	}
	return nil
}

func bindUnion(v *Value, rv reflect.Value, _ struct{}) error {
	if len(v.objVal) != 1 {
		return bindErr(ErrTypeMismatch, "union %s requires a single-entry object, got %d entries", rv.Type(), len(v.objVal))
	}
	entry := v.objVal[0]
	for _, s := range structFields(rv.Type()) {
		if s.name == entry.Key {
			return bindValue(entry.Value, rv.Field(s.index))
		}
	}
	return bindErr(ErrInvalidUnionTag, "unknown union tag %q for %s", entry.Key, rv.Type())
}

func bindMap(v *Value, rv reflect.Value) error {
	t := rv.Type()
	if t.Key().Kind() != reflect.String {
		return bindErr(ErrTypeMismatch, "map key type %s is not a string", t.Key())
	}
	out := reflect.MakeMapWithSize(t, len(v.objVal))
	for _, f := range v.objVal {
		elem := reflect.New(t.Elem()).Elem()
		if err := bindValue(f.Value, elem); err != nil {
			return err
		}
		out.SetMapIndex(reflect.ValueOf(f.Key).Convert(t.Key()), elem)
	}
	rv.Set(out)
	return nil
}

func isEnum(t reflect.Type) bool {
	if t.Kind() != reflect.String {
		return false
	}
	return t.Implements(enumType) || reflect.PointerTo(t).Implements(enumType)
}

func bindEnum(v *Value, rv reflect.Value) error {
	if v == nil || v.typ != TypeString {
		return bindErr(ErrTypeMismatch, "enum %s requires a string, got %s", rv.Type(), v.Type())
	}
	var variants []string
	if rv.Type().Implements(enumType) {
		variants = rv.Interface().(Enum).EnumVariants()
	} else {
		variants = rv.Addr().Interface().(Enum).EnumVariants()
	}
	for _, name := range variants {
		if name == v.strVal {
			rv.SetString(v.strVal)
			return nil
		}
	}
	return bindErr(ErrInvalidEnumValue, "unknown %s variant %q", rv.Type(), v.strVal)
}

// naturalValue converts a Value to untyped Go data for interface{}
// targets. Object key order is lost in the Go map.
func naturalValue(v *Value) any {
	if v == nil {
		return nil
	}
	switch v.typ {
	case TypeNull:
		return nil
	case TypeBool:
		return v.boolVal
	case TypeNumber:
		return v.numVal
	case TypeString:
		return v.strVal
	case TypeArray:
		out := make([]any, len(v.arrVal))
		for i, it := range v.arrVal {
			out[i] = naturalValue(it)
		}
		return out
	case TypeObject:
		out := make(map[string]any, len(v.objVal))
		for _, f := range v.objVal {
			out[f.Key] = naturalValue(f.Value)
		}
		return out
	default:
		return nil
	}
}
