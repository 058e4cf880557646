package toon

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ============================================================
// JSON Bridge
// ============================================================
//
// Converts between JSON and Value. Object key order must survive the
// trip (it drives encode output and tabular column order), so decoding
// walks the token stream instead of unmarshaling into Go maps.

// FromJSON converts JSON bytes to a Value, preserving object key
// order.
func FromJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := readJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("toon: json: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("toon: json: trailing data after value")
	}
	return v, nil
}

func readJSONValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := Object()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				val, err := readJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.AppendField(key, val)
			}
			if _, err := dec.Token(); err != nil { // closing }
				return nil, err
			}
			return obj, nil
		case '[':
			arr := Array()
			for dec.More() {
				item, err := readJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Append(item)
			}
			if _, err := dec.Token(); err != nil { // closing ]
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	case bool:
		return Bool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return Number(f), nil
	case string:
		return Str(t), nil
	case nil:
		return Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// ToJSON converts a Value to compact JSON bytes, preserving object key
// order. Non-finite numbers become null, mirroring the TOON encoder.
func ToJSON(v *Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v *Value) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}
	switch v.typ {
	case TypeNull:
		buf.WriteString("null")
	case TypeBool:
		if v.boolVal {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case TypeNumber:
		// formatNumber emits valid JSON numbers and collapses
		// non-finite values to null.
		buf.WriteString(formatNumber(v.numVal))
	case TypeString:
		b, err := json.Marshal(v.strVal)
		if err != nil {
			return err
		}
		buf.Write(b)
	case TypeArray:
		buf.WriteByte('[')
		for i, it := range v.arrVal {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, it); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case TypeObject:
		buf.WriteByte('{')
		for i, f := range v.objVal {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := json.Marshal(f.Key)
			if err != nil {
				return err
			}
			buf.Write(b)
			buf.WriteByte(':')
			if err := writeJSON(buf, f.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("toon: unknown value type %d", v.typ)
	}
	return nil
}
