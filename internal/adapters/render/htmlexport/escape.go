package htmlexport

import (
	"fmt"
	"strconv"
	"strings"
)

// Undefined is the sentinel for a value that is absent rather than
// empty. EscapeJSString renders it as "undefined"; EscapeHTML renders
// it as "", same as nil.
var Undefined = undefinedValue{}

type undefinedValue struct{}

// EscapeHTML coerces any value to a string safe to insert as text
// content in HTML. nil and Undefined become "". Quotes pass through
// untouched because the target context is text content, not an
// attribute value.
func EscapeHTML(v any) string {
	if v == nil {
		return ""
	}
	if _, ok := v.(undefinedValue); ok {
		return ""
	}

	s := stringify(v)
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// EscapeJSString coerces any value to its JavaScript string form and
// escapes it for splicing into a single-quoted string literal inside a
// generated inline handler attribute. Backslash is escaped first; the
// later quote replacements then produce an odd backslash run before
// every quote, so the literal can never terminate early. Unicode and
// NUL bytes pass through unchanged.
func EscapeJSString(v any) string {
	s := stringify(v)
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}

// stringify matches JavaScript String() coercion for the value kinds
// the dashboard actually splices into markup.
func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return "null"
	case undefinedValue:
		return "undefined"
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(value), 'f', -1, 32)
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprint(value)
	}
}
