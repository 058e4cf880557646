package toon

import (
	"math"
	"strconv"
	"strings"
)

// ============================================================
// Encoder
// ============================================================
//
// The encoder picks one of three layouts for every array:
//
//   primitive-inline  [3]: a,b,c
//   tabular           [2]{id,name}: with one delimited row per item
//   list              [2]: with one "- item" line per item
//
// Tabular wins when every item is a non-empty object over the same key
// set with primitive leaves; the first item's key order fixes the
// column order. The list layout is the general fallback.

// Marshal encodes v as TOON text with default options.
func Marshal(v *Value) string {
	return MarshalWithOptions(v, DefaultEncodeOptions())
}

// MarshalWithOptions encodes v with custom options.
func MarshalWithOptions(v *Value, opts EncodeOptions) string {
	if opts.Indent <= 0 {
		opts.Indent = 2
	}
	e := &encoder{opts: opts, first: true}
	e.encodeRoot(v)
	return e.sb.String()
}

type encoder struct {
	sb    strings.Builder
	opts  EncodeOptions
	first bool
}

func (e *encoder) encodeRoot(v *Value) {
	switch {
	case v == nil || v.IsPrimitive():
		e.sb.WriteString(e.primitive(v))
	case v.typ == TypeArray:
		e.line(0)
		e.encodeArrayTail(v.arrVal, 1)
	case v.typ == TypeObject:
		// Empty root object encodes to the empty string.
		for _, f := range v.objVal {
			e.line(0)
			e.encodePair(f, 0)
		}
	}
}

// line starts a new output line at the given depth.
func (e *encoder) line(depth int) {
	if !e.first {
		e.sb.WriteByte('\n')
	}
	e.first = false
	for i := 0; i < depth*e.opts.Indent; i++ {
		e.sb.WriteByte(' ')
	}
}

// encodePair writes one object entry onto the current line. Child
// lines, if any, are emitted at depth+1.
func (e *encoder) encodePair(f Field, depth int) {
	v := f.Value
	switch {
	case v == nil || v.IsPrimitive():
		e.sb.WriteString(quoteKey(f.Key))
		e.sb.WriteString(": ")
		e.sb.WriteString(e.primitive(v))
	case v.typ == TypeArray:
		// The array header supplies the colon.
		e.sb.WriteString(quoteKey(f.Key))
		e.encodeArrayTail(v.arrVal, depth+1)
	case v.typ == TypeObject:
		e.sb.WriteString(quoteKey(f.Key))
		e.sb.WriteString(":")
		for _, child := range v.objVal {
			e.line(depth + 1)
			e.encodePair(child, depth+1)
		}
	}
}

// encodeArrayTail writes an array header onto the current line and its
// body lines, if any, at bodyDepth.
func (e *encoder) encodeArrayTail(items []*Value, bodyDepth int) {
	delim := e.opts.Delimiter.Byte()

	if isPrimitiveArray(items) {
		e.sb.WriteByte('[')
		e.sb.WriteString(strconv.Itoa(len(items)))
		e.sb.WriteString(e.opts.Delimiter.headerSuffix())
		e.sb.WriteString("]:")
		if len(items) > 0 {
			e.sb.WriteByte(' ')
			for i, it := range items {
				if i > 0 {
					e.sb.WriteByte(delim)
				}
				e.sb.WriteString(e.primitive(it))
			}
		}
		return
	}

	if cols, ok := tabularColumns(items); ok {
		e.sb.WriteByte('[')
		e.sb.WriteString(strconv.Itoa(len(items)))
		e.sb.WriteString(e.opts.Delimiter.headerSuffix())
		e.sb.WriteString("]{")
		for i, col := range cols {
			if i > 0 {
				e.sb.WriteByte(delim)
			}
			e.sb.WriteString(quoteKey(col))
		}
		e.sb.WriteString("}:")
		for _, it := range items {
			e.line(bodyDepth)
			for i, col := range cols {
				if i > 0 {
					e.sb.WriteByte(delim)
				}
				e.sb.WriteString(e.primitive(it.Get(col)))
			}
		}
		return
	}

	e.sb.WriteByte('[')
	e.sb.WriteString(strconv.Itoa(len(items)))
	e.sb.WriteString("]:")
	for _, it := range items {
		e.line(bodyDepth)
		e.encodeListItem(it, bodyDepth)
	}
}

// encodeListItem writes one "- item" line at the marker depth.
func (e *encoder) encodeListItem(it *Value, depth int) {
	switch {
	case it == nil || it.IsPrimitive():
		e.sb.WriteString("- ")
		e.sb.WriteString(e.primitive(it))
	case it.typ == TypeObject && len(it.objVal) == 0:
		// Bare marker, no trailing space.
		e.sb.WriteString("-")
	case it.typ == TypeObject:
		// The marker introduces the first key; the rest of the object
		// continues one indent past the marker column.
		e.sb.WriteString("- ")
		for j, f := range it.objVal {
			if j > 0 {
				e.line(depth + 1)
			}
			e.encodePair(f, depth+1)
		}
	case it.typ == TypeArray:
		e.sb.WriteString("- ")
		e.encodeArrayTail(it.arrVal, depth+2)
	}
}

// primitive serializes a primitive value, quoting strings against the
// active delimiter.
func (e *encoder) primitive(v *Value) string {
	if v == nil {
		return "null"
	}
	switch v.typ {
	case TypeNull:
		return "null"
	case TypeBool:
		if v.boolVal {
			return "true"
		}
		return "false"
	case TypeNumber:
		return formatNumber(v.numVal)
	case TypeString:
		return quoteValue(v.strVal, e.opts.Delimiter.Byte())
	default:
		return "null"
	}
}

// formatNumber renders a float the way the decoder reads it back:
// integers below 1e15 without a decimal point, everything else as the
// shortest round-tripping decimal. Non-finite values collapse to null.
func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	if f == 0 {
		return "0"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// isPrimitiveArray reports whether every item is a primitive, making
// the array eligible for the inline layout.
func isPrimitiveArray(items []*Value) bool {
	for _, it := range items {
		if !it.IsPrimitive() {
			return false
		}
	}
	return true
}

// tabularColumns returns the column order for a tabular-eligible
// array: non-empty, every item a non-empty object over the same key
// set with only primitive leaves. The first item's key order is the
// column order.
func tabularColumns(items []*Value) ([]string, bool) {
	if len(items) == 0 {
		return nil, false
	}
	first := items[0]
	if first == nil || first.typ != TypeObject || len(first.objVal) == 0 {
		return nil, false
	}
	cols := make([]string, 0, len(first.objVal))
	keySet := make(map[string]bool, len(first.objVal))
	for _, f := range first.objVal {
		if keySet[f.Key] {
			return nil, false
		}
		keySet[f.Key] = true
		cols = append(cols, f.Key)
	}
	for _, it := range items {
		if it == nil || it.typ != TypeObject || len(it.objVal) != len(cols) {
			return nil, false
		}
		used := make(map[string]bool, len(cols))
		for _, f := range it.objVal {
			if !keySet[f.Key] || used[f.Key] {
				return nil, false
			}
			used[f.Key] = true
			if !f.Value.IsPrimitive() {
				return nil, false
			}
		}
	}
	return cols, true
}
