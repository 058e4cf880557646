package toon

import (
	"errors"
	"testing"
)

// ============================================================
// Quoting Predicate Tests
// ============================================================

func TestNeedsQuoting(t *testing.T) {
	tests := []struct {
		name  string
		input string
		delim byte
		want  bool
	}{
		{"bare word", "hello", ',', false},
		{"bare with underscore", "hello_world", ',', false},
		{"empty", "", ',', true},
		{"leading space", " x", ',', true},
		{"trailing space", "x ", ',', true},
		{"reserved true", "true", ',', true},
		{"reserved false", "false", ',', true},
		{"reserved null", "null", ',', true},
		{"leading dash", "-x", ',', true},
		{"integer-like", "42", ',', true},
		{"negative integer-like", "-42", ',', true},
		{"float-like", "3.14", ',', true},
		{"exponent-like", "2e10", ',', true},
		{"leading zero", "05", ',', true},
		{"overflowing number", "99999999999999999999999999", ',', true},
		{"contains colon", "a:b", ',', true},
		{"contains quote", `a"b`, ',', true},
		{"contains backslash", `a\b`, ',', true},
		{"contains bracket", "a[b", ',', true},
		{"contains brace", "a{b", ',', true},
		{"contains newline", "a\nb", ',', true},
		{"contains carriage return", "a\rb", ',', true},
		{"contains tab", "a\tb", ',', true},
		{"active delimiter comma", "a,b", ',', true},
		{"comma inactive under pipe", "a,b", '|', false},
		{"active delimiter pipe", "a|b", '|', true},
		{"version string", "1.2.3", ',', false},
		{"almost numeric", "12abc", ',', false},
		{"dot only", "a.b", ',', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := needsQuoting(tt.input, tt.delim); got != tt.want {
				t.Errorf("needsQuoting(%q, %q) = %v, want %v", tt.input, tt.delim, got, tt.want)
			}
		})
	}
}

func TestIsNumericLike(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"0", true},
		{"42", true},
		{"-42", true},
		{"3.14", true},
		{"-0.5", true},
		{"1e10", true},
		{"1E10", true},
		{"1e+10", true},
		{"1e-10", true},
		{"1.5e-07", true},
		{"05", true},
		{"-05", true},
		{"", false},
		{"-", false},
		{"abc", false},
		{"1.", false},
		{".5", false},
		{"1e", false},
		{"1e+", false},
		{"+5", false},
		{"1.2.3", false},
		{"12abc", false},
		{"0x10", false},
		{"1_000", false},
		{"Inf", false},
		{"NaN", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := isNumericLike(tt.input); got != tt.want {
				t.Errorf("isNumericLike(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidBareKey(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"id", true},
		{"_private", true},
		{"camelCase", true},
		{"with.dots", true},
		{"k9", true},
		{"", false},
		{"9lives", false},
		{"with space", false},
		{"with-dash", false},
		{".leading", false},
		{"ünïcode", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidBareKey(tt.input); got != tt.want {
				t.Errorf("IsValidBareKey(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ============================================================
// Escape Tests
// ============================================================

func TestEscapeString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{`back\slash`, `back\\slash`},
		{`quo"te`, `quo\"te`},
		{"new\nline", `new\nline`},
		{"car\rriage", `car\rriage`},
		{"ta\tb", `ta\tb`},
		{"héllo", "héllo"}, // non-ASCII passes through
	}

	for _, tt := range tests {
		if got := escapeString(tt.input); got != tt.want {
			t.Errorf("escapeString(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUnescapeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `"plain"`, "plain"},
		{"empty", `""`, ""},
		{"escaped quote", `"quo\"te"`, `quo"te`},
		{"escaped backslash", `"back\\slash"`, `back\slash`},
		{"newline", `"new\nline"`, "new\nline"},
		{"tab and cr", `"a\tb\rc"`, "a\tb\rc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := unescapeString(tt.input, 1)
			if err != nil {
				t.Fatalf("unescapeString(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("unescapeString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestUnescapeString_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
	}{
		{"unknown escape", `"bad\xescape"`, ErrInvalidEscape},
		{"dangling backslash", `"bad\`, ErrInvalidEscape},
		{"missing close", `"open`, ErrUnterminatedString},
		{"no quotes", `bare`, ErrUnterminatedString},
		{"escaped close", `"still open\"`, ErrUnterminatedString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := unescapeString(tt.input, 1)
			if err == nil {
				t.Fatalf("unescapeString(%q) succeeded, want %s", tt.input, tt.kind)
			}
			var derr *DecodeError
			if !errors.As(err, &derr) || derr.Kind != tt.kind {
				t.Errorf("unescapeString(%q) error = %v, want kind %s", tt.input, err, tt.kind)
			}
		})
	}
}

// Quoting idempotence: a string the predicate leaves bare passes
// through escape and quoteValue byte-for-byte.
func TestQuoting_Idempotence(t *testing.T) {
	inputs := []string{"hello", "hello_world", "a.b.c", "12abc", "a,b"}
	for _, s := range inputs {
		delim := byte('|')
		if needsQuoting(s, delim) {
			t.Fatalf("fixture %q unexpectedly needs quoting", s)
		}
		if got := escapeString(s); got != s {
			t.Errorf("escapeString(%q) = %q, want identity", s, got)
		}
		if got := quoteValue(s, delim); got != s {
			t.Errorf("quoteValue(%q) = %q, want identity", s, got)
		}
	}
}

func TestQuoteKey(t *testing.T) {
	if got := quoteKey("id"); got != "id" {
		t.Errorf("quoteKey(id) = %q", got)
	}
	if got := quoteKey("full name"); got != `"full name"` {
		t.Errorf("quoteKey(full name) = %q", got)
	}
}
