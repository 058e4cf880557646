package toon

// Delimiter selects the byte separating inline values, tabular cells,
// and header fields.
type Delimiter uint8

const (
	DelimComma Delimiter = iota
	DelimTab
	DelimPipe
)

// Byte returns the delimiter byte.
func (d Delimiter) Byte() byte {
	switch d {
	case DelimTab:
		return '\t'
	case DelimPipe:
		return '|'
	default:
		return ','
	}
}

// String returns the delimiter name.
func (d Delimiter) String() string {
	switch d {
	case DelimTab:
		return "tab"
	case DelimPipe:
		return "pipe"
	default:
		return "comma"
	}
}

// headerSuffix returns the byte emitted inside the brackets of an
// array header, empty for the comma default.
func (d Delimiter) headerSuffix() string {
	switch d {
	case DelimTab:
		return "\t"
	case DelimPipe:
		return "|"
	default:
		return ""
	}
}

// EncodeOptions configures the encoder.
type EncodeOptions struct {
	// Indent is the number of spaces per depth level.
	Indent int

	// Delimiter separates inline values and tabular cells.
	Delimiter Delimiter
}

// DefaultEncodeOptions returns the default encoder configuration.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Indent:    2,
		Delimiter: DelimComma,
	}
}

// DecodeOptions configures the decoder.
type DecodeOptions struct {
	// Indent is the number of spaces per depth level.
	Indent int

	// Strict rejects shape, count, width, and indentation anomalies
	// instead of silently recovering.
	Strict bool
}

// DefaultDecodeOptions returns the default (strict) decoder
// configuration.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		Indent: 2,
		Strict: true,
	}
}
