package toon

import (
	"strconv"
	"strings"
)

// ============================================================
// Decoder
// ============================================================
//
// Recursive descent over the tokenized line sequence. All parsers
// share one forward cursor; each advances past the lines it consumed
// and yields when the depth drops below its own frame. Strict mode
// turns shape anomalies (count, width, indentation, missing colons,
// blank lines between array items) into errors.

// Unmarshal decodes TOON text with default (strict) options.
func Unmarshal(src string) (*Value, error) {
	return UnmarshalWithOptions(src, DefaultDecodeOptions())
}

// UnmarshalWithOptions decodes TOON text with custom options.
func UnmarshalWithOptions(src string, opts DecodeOptions) (*Value, error) {
	if opts.Indent <= 0 {
		opts.Indent = 2
	}
	lines, err := scanSource(src, opts)
	if err != nil {
		return nil, err
	}
	d := &decoder{lines: lines, opts: opts}
	return d.parseRoot()
}

type decoder struct {
	lines []scanLine
	pos   int
	opts  DecodeOptions
}

// parseRoot dispatches on the form of the first line.
func (d *decoder) parseRoot() (*Value, error) {
	if len(d.lines) == 0 {
		return Object(), nil
	}
	first := d.lines[0]

	if lb := headerStart(first.content); lb >= 0 {
		hdr, keyRaw, err := parseArrayHeader(first.content, lb, first.num)
		if err != nil {
			return nil, err
		}
		if keyRaw == "" {
			d.pos = 1
			arr, err := d.parseArrayBody(hdr, first.depth+1, first.num)
			if err != nil {
				return nil, err
			}
			if err := d.checkTrailing(); err != nil {
				return nil, err
			}
			return arr, nil
		}
		// A keyed header is the first entry of a root object.
	} else if len(d.lines) == 1 && findUnquoted(first.content, ':') < 0 {
		d.pos = 1
		return parsePrimitive(first.content, first.num)
	}

	obj, err := d.parseObject(first.depth)
	if err != nil {
		return nil, err
	}
	if err := d.checkTrailing(); err != nil {
		return nil, err
	}
	return obj, nil
}

// checkTrailing rejects unconsumed lines after the root value in
// strict mode.
func (d *decoder) checkTrailing() error {
	if d.opts.Strict && d.pos < len(d.lines) {
		l := d.lines[d.pos]
		return decodeErr(ErrInvalidSyntax, l.num, "unexpected content after document root")
	}
	return nil
}

// parseObject consumes consecutive lines at exactly depth, building an
// ordered object. Deeper lines not claimed by a child are an
// indentation error in strict mode and skipped otherwise.
func (d *decoder) parseObject(depth int) (*Value, error) {
	obj := Object()
	for d.pos < len(d.lines) {
		l := d.lines[d.pos]
		if l.depth < depth {
			break
		}
		if l.depth > depth {
			if d.opts.Strict {
				return nil, decodeErr(ErrInvalidIndentation, l.num, "unexpected indentation")
			}
			d.pos++
			continue
		}
		f, ok, err := d.parseObjectLine(l)
		if err != nil {
			return nil, err
		}
		if ok {
			obj.objVal = append(obj.objVal, f)
		}
	}
	return obj, nil
}

// parseObjectLine parses one key line, including array-valued keys
// whose header carries the colon. ok is false when the line was
// skipped in lenient mode.
func (d *decoder) parseObjectLine(l scanLine) (Field, bool, error) {
	content := l.content

	if lb := headerStart(content); lb >= 0 {
		hdr, keyRaw, err := parseArrayHeader(content, lb, l.num)
		if err != nil {
			return Field{}, false, err
		}
		key, err := parseKeyToken(keyRaw, l.num)
		if err != nil {
			return Field{}, false, err
		}
		d.pos++
		arr, err := d.parseArrayBody(hdr, l.depth+1, l.num)
		if err != nil {
			return Field{}, false, err
		}
		return Field{Key: key, Value: arr}, true, nil
	}

	col := findUnquoted(content, ':')
	if col < 0 {
		if d.opts.Strict {
			return Field{}, false, decodeErr(ErrMissingColon, l.num, "expected key: value")
		}
		d.pos++
		return Field{}, false, nil
	}

	key, err := parseKeyToken(trimSpaces(content[:col]), l.num)
	if err != nil {
		return Field{}, false, err
	}
	tail := content[col+1:]
	if strings.HasPrefix(tail, " ") {
		tail = tail[1:]
	}
	d.pos++
	val, err := d.parseTailValue(tail, l.depth, l.num)
	if err != nil {
		return Field{}, false, err
	}
	return Field{Key: key, Value: val}, true, nil
}

// parseKeyToken resolves a raw key: quoted keys are unescaped, bare
// keys are taken verbatim.
func parseKeyToken(raw string, num int) (string, error) {
	if strings.HasPrefix(raw, `"`) {
		return unescapeString(raw, num)
	}
	return raw, nil
}

// parseTailValue parses the value side of a key line. An empty tail
// introduces either a nested object on the following deeper lines or
// an empty object.
func (d *decoder) parseTailValue(tail string, lineDepth, num int) (*Value, error) {
	if trimSpaces(tail) != "" {
		if lb := headerStart(tail); lb >= 0 {
			hdr, keyRaw, err := parseArrayHeader(tail, lb, num)
			if err != nil {
				return nil, err
			}
			if keyRaw == "" {
				return d.parseArrayBody(hdr, lineDepth+1, num)
			}
		}
		return parsePrimitive(tail, num)
	}
	if d.pos < len(d.lines) && d.lines[d.pos].depth > lineDepth {
		childDepth := d.lines[d.pos].depth
		if d.opts.Strict && childDepth != lineDepth+1 {
			return nil, decodeErr(ErrInvalidIndentation, d.lines[d.pos].num, "child indented %d levels past parent", childDepth-lineDepth)
		}
		return d.parseObject(childDepth)
	}
	return Object(), nil
}

// parseArrayBody builds an array after its header has been consumed.
// bodyDepth is the depth of row or item lines.
func (d *decoder) parseArrayBody(hdr arrayHeader, bodyDepth, headerNum int) (*Value, error) {
	if trimSpaces(hdr.inline) != "" {
		return d.parseInlineValues(hdr, headerNum)
	}
	if hdr.hasFields {
		return d.parseTabularRows(hdr, bodyDepth, headerNum)
	}
	return d.parseListItems(hdr, bodyDepth, headerNum)
}

// parseInlineValues splits the header tail into delimited primitives.
func (d *decoder) parseInlineValues(hdr arrayHeader, headerNum int) (*Value, error) {
	tokens := splitDelimited(hdr.inline, hdr.delim)
	if d.opts.Strict && len(tokens) != hdr.length {
		return nil, decodeErr(ErrCountMismatch, headerNum, "header declares %d values, found %d", hdr.length, len(tokens))
	}
	arr := Array()
	for _, tok := range tokens {
		v, err := parsePrimitive(tok, headerNum)
		if err != nil {
			return nil, err
		}
		arr.Append(v)
	}
	return arr, nil
}

// parseTabularRows consumes delimited rows at bodyDepth, zipping each
// against the header's field list.
func (d *decoder) parseTabularRows(hdr arrayHeader, bodyDepth, headerNum int) (*Value, error) {
	arr := Array()
	for d.pos < len(d.lines) {
		l := d.lines[d.pos]
		if l.depth != bodyDepth || !isTabularRow(l.content, hdr.delim) {
			break
		}
		if l.blank && d.opts.Strict {
			return nil, decodeErr(ErrBlankLineInArray, l.num, "blank line between table rows")
		}
		cells := splitDelimited(l.content, hdr.delim)
		if d.opts.Strict && len(cells) != len(hdr.fields) {
			return nil, decodeErr(ErrWidthMismatch, l.num, "row has %d cells, header declares %d fields", len(cells), len(hdr.fields))
		}
		row := Object()
		n := min(len(cells), len(hdr.fields))
		for i := 0; i < n; i++ {
			v, err := parsePrimitive(cells[i], l.num)
			if err != nil {
				return nil, err
			}
			row.AppendField(hdr.fields[i], v)
		}
		arr.Append(row)
		d.pos++
	}
	if d.opts.Strict && len(arr.arrVal) != hdr.length {
		return nil, decodeErr(ErrCountMismatch, headerNum, "header declares %d rows, found %d", hdr.length, len(arr.arrVal))
	}
	return arr, nil
}

// isTabularRow reports whether a line reads as a table row: its first
// unquoted delimiter precedes any unquoted colon, or it carries
// neither (the single-column case).
func isTabularRow(content string, delim byte) bool {
	dp := findUnquoted(content, delim)
	cp := findUnquoted(content, ':')
	if dp >= 0 {
		return cp < 0 || dp < cp
	}
	return cp < 0
}

// parseListItems consumes "- item" lines at bodyDepth.
func (d *decoder) parseListItems(hdr arrayHeader, bodyDepth, headerNum int) (*Value, error) {
	arr := Array()
	for d.pos < len(d.lines) {
		l := d.lines[d.pos]
		if l.depth != bodyDepth || !isListItem(l.content) {
			break
		}
		if l.blank && d.opts.Strict {
			return nil, decodeErr(ErrBlankLineInArray, l.num, "blank line between list items")
		}
		d.pos++
		item, err := d.parseListResidue(stripListMarker(l.content), bodyDepth, l.num)
		if err != nil {
			return nil, err
		}
		arr.Append(item)
	}
	if d.opts.Strict && len(arr.arrVal) != hdr.length {
		return nil, decodeErr(ErrCountMismatch, headerNum, "header declares %d items, found %d", hdr.length, len(arr.arrVal))
	}
	return arr, nil
}

// parseListResidue parses whatever follows a list marker: a nested
// object, a nested array, an inline object whose first pair sits on
// the marker line, or a primitive.
func (d *decoder) parseListResidue(residue string, bodyDepth, num int) (*Value, error) {
	if trimSpaces(residue) == "" {
		if d.pos < len(d.lines) && d.lines[d.pos].depth > bodyDepth {
			childDepth := d.lines[d.pos].depth
			if d.opts.Strict && childDepth != bodyDepth+1 {
				return nil, decodeErr(ErrInvalidIndentation, d.lines[d.pos].num, "item indented %d levels past marker", childDepth-bodyDepth)
			}
			return d.parseObject(childDepth)
		}
		return Object(), nil
	}

	if lb := headerStart(residue); lb >= 0 {
		hdr, keyRaw, err := parseArrayHeader(residue, lb, num)
		if err != nil {
			return nil, err
		}
		// Content after "- " sits one level past the marker; nested
		// array bodies descend one further.
		arr, err := d.parseArrayBody(hdr, bodyDepth+2, num)
		if err != nil {
			return nil, err
		}
		if keyRaw == "" {
			return arr, nil
		}
		key, err := parseKeyToken(keyRaw, num)
		if err != nil {
			return nil, err
		}
		return d.continueItemObject(Field{Key: key, Value: arr}, bodyDepth)
	}

	if col := findUnquoted(residue, ':'); col >= 0 {
		key, err := parseKeyToken(trimSpaces(residue[:col]), num)
		if err != nil {
			return nil, err
		}
		tail := residue[col+1:]
		if strings.HasPrefix(tail, " ") {
			tail = tail[1:]
		}
		val, err := d.parseTailValue(tail, bodyDepth+1, num)
		if err != nil {
			return nil, err
		}
		return d.continueItemObject(Field{Key: key, Value: val}, bodyDepth)
	}

	return parsePrimitive(residue, num)
}

// continueItemObject collects the remaining pairs of a list-item
// object from the lines one level past the marker.
func (d *decoder) continueItemObject(first Field, bodyDepth int) (*Value, error) {
	obj := Object(first)
	rest, err := d.parseObject(bodyDepth + 1)
	if err != nil {
		return nil, err
	}
	obj.objVal = append(obj.objVal, rest.objVal...)
	return obj, nil
}

// parsePrimitive resolves a trimmed token to a primitive Value. The
// leading-zero rule keeps tokens like 05 as strings.
func parsePrimitive(tok string, num int) (*Value, error) {
	tok = trimSpaces(tok)
	if tok == "" {
		return Str(""), nil
	}
	if tok[0] == '"' {
		s, err := unescapeString(tok, num)
		if err != nil {
			return nil, err
		}
		return Str(s), nil
	}
	switch tok {
	case "null":
		return Null(), nil
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	if isNumericLike(tok) && !hasLeadingZero(tok) {
		if f, err := strconv.ParseFloat(tok, 64); err == nil {
			return Number(f), nil
		}
	}
	return Str(tok), nil
}
