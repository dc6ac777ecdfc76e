package htmlexport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeHTML(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input any
		want  string
	}{
		{name: "nil is empty", input: nil, want: ""},
		{name: "undefined is empty", input: Undefined, want: ""},
		{name: "plain text", input: "hello world", want: "hello world"},
		{name: "angle brackets", input: "<script>alert(1)</script>", want: "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{name: "ampersand first", input: "a&lt;b", want: "a&amp;lt;b"},
		{name: "quotes pass through", input: `say "hi" and 'bye'`, want: `say "hi" and 'bye'`},
		{name: "number", input: 42, want: "42"},
		{name: "float", input: 12.5, want: "12.5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EscapeHTML(tc.input))
		})
	}
}

func TestEscapeHTMLNeverEmitsRawAngles(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"<<<>>>",
		"<img src=x onerror=alert(1)>",
		"a < b > c & d",
		"</div><div onclick='x'>",
	}

	for _, input := range inputs {
		out := EscapeHTML(input)
		assert.NotContains(t, out, "<")
		assert.NotContains(t, out, ">")
	}
}

func TestEscapeJSStringCoercion(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input any
		want  string
	}{
		{name: "nil", input: nil, want: "null"},
		{name: "undefined", input: Undefined, want: "undefined"},
		{name: "int", input: 42, want: "42"},
		{name: "float", input: 12.5, want: "12.5"},
		{name: "bool", input: true, want: "true"},
		{name: "plain string", input: "hello", want: "hello"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EscapeJSString(tc.input))
		})
	}
}

func TestEscapeJSStringReplacements(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "single quote", input: "it's", want: `it\'s`},
		{name: "double quote", input: `say "hi"`, want: `say \"hi\"`},
		{name: "backslash", input: `a\b`, want: `a\\b`},
		{name: "newline", input: "a\nb", want: `a\nb`},
		{name: "carriage return", input: "a\rb", want: `a\rb`},
		{name: "tab", input: "a\tb", want: `a\tb`},
		{name: "unicode passes through", input: "héllo→", want: "héllo→"},
		{name: "nul passes through", input: "a\x00b", want: "a\x00b"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EscapeJSString(tc.input))
		})
	}
}

// Backslash must be escaped before the quote replacements run, or an
// input backslash-quote pair would round-trip wrong.
func TestEscapeJSStringBackslashBeforeQuoteOrdering(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `\\\'`, EscapeJSString(`\'`))
}

func TestEscapeJSStringQuotesAlwaysPrecededByOddBackslashRun(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`'`,
		`\'`,
		`\\'`,
		`it's a 'quoted' \'mess\'`,
		"don't\nstop",
	}

	for _, input := range inputs {
		out := EscapeJSString(input)
		for i, r := range out {
			if r != '\'' {
				continue
			}
			run := 0
			for j := i - 1; j >= 0 && out[j] == '\\'; j-- {
				run++
			}
			require.Equal(t, 1, run%2, "quote at %d in %q preceded by %d backslashes", i, out, run)
		}
	}
}

func TestEscapeJSStringOutputNeverContainsRawNewline(t *testing.T) {
	t.Parallel()

	out := EscapeJSString("line1\nline2\r\nline3")
	assert.False(t, strings.ContainsAny(out, "\n\r"))
}
