package toon

import "strings"

// ============================================================
// Line Tokenizer
// ============================================================
//
// TOON is line- and indent-structured. The tokenizer turns source text
// into a flat sequence of depth-tagged lines; the decoder walks that
// sequence with a single forward cursor. Blank lines are dropped here,
// but each retained line remembers whether a blank preceded it so that
// array walks can reject blanks between rows in strict mode.

// scanLine is one non-blank physical line with its indentation
// resolved to a depth.
type scanLine struct {
	depth   int
	content string // line with the indent prefix stripped
	num     int    // 1-based physical line number
	blank   bool   // a blank line immediately preceded this one
}

// splitLines splits source text on \n, normalizing a trailing \r on
// each line so CRLF input decodes like LF input.
func splitLines(src string) []string {
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		if strings.HasSuffix(l, "\r") {
			lines[i] = l[:len(l)-1]
		}
	}
	return lines
}

// isBlankLine reports whether every byte of the line is whitespace.
func isBlankLine(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r':
		default:
			return false
		}
	}
	return true
}

// computeDepth maps a line's leading whitespace to a depth. Strict
// mode rejects tabs in the indent prefix and space counts that are not
// an exact multiple of indent; lenient mode counts a tab as one indent
// unit and rounds down.
func computeDepth(line string, indent int, strict bool, num int) (depth int, content string, err error) {
	if indent <= 0 {
		indent = 2
	}
	spaces := 0
	i := 0
	for i < len(line) {
		switch line[i] {
		case ' ':
			spaces++
		case '\t':
			if strict {
				return 0, "", decodeErr(ErrInvalidIndentation, num, "tab in indentation")
			}
			spaces += indent
		default:
			goto done
		}
		i++
	}
done:
	if strict && spaces%indent != 0 {
		return 0, "", decodeErr(ErrInvalidIndentation, num, "indent of %d spaces is not a multiple of %d", spaces, indent)
	}
	return spaces / indent, line[i:], nil
}

// scanSource produces the decoder's line sequence: blank lines
// skipped, depth computed, content stripped of its indent prefix.
func scanSource(src string, opts DecodeOptions) ([]scanLine, error) {
	raw := splitLines(src)
	out := make([]scanLine, 0, len(raw))
	blank := false
	for i, l := range raw {
		if isBlankLine(l) {
			blank = true
			continue
		}
		depth, content, err := computeDepth(l, opts.Indent, opts.Strict, i+1)
		if err != nil {
			return nil, err
		}
		out = append(out, scanLine{depth: depth, content: content, num: i + 1, blank: blank})
		blank = false
	}
	return out, nil
}

// findUnquoted returns the index of the first occurrence of b outside
// double quotes, or -1. Inside quotes a backslash consumes the
// following byte.
func findUnquoted(s string, b byte) int {
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuotes {
			switch c {
			case '\\':
				i++
			case '"':
				inQuotes = false
			}
			continue
		}
		if c == '"' {
			inQuotes = true
			continue
		}
		if c == b {
			return i
		}
	}
	return -1
}

// splitDelimited cuts s at each unquoted delimiter, trimming ASCII
// spaces from every token. Always returns at least one token.
func splitDelimited(s string, delim byte) []string {
	var tokens []string
	start := 0
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuotes {
			switch c {
			case '\\':
				i++
			case '"':
				inQuotes = false
			}
			continue
		}
		if c == '"' {
			inQuotes = true
			continue
		}
		if c == delim {
			tokens = append(tokens, trimSpaces(s[start:i]))
			start = i + 1
		}
	}
	tokens = append(tokens, trimSpaces(s[start:]))
	return tokens
}

// trimSpaces trims ASCII spaces only; tabs may be significant (they
// can be the active delimiter).
func trimSpaces(s string) string {
	start := 0
	for start < len(s) && s[start] == ' ' {
		start++
	}
	end := len(s)
	for end > start && s[end-1] == ' ' {
		end--
	}
	return s[start:end]
}

// isListItem reports whether a content line is a list item: a leading
// dash that is either the whole line or followed by a space.
func isListItem(s string) bool {
	return len(s) > 0 && s[0] == '-' && (len(s) == 1 || s[1] == ' ')
}

// stripListMarker returns the item content after the "- " marker,
// empty for a bare dash.
func stripListMarker(s string) string {
	if len(s) <= 1 {
		return ""
	}
	return s[2:]
}
