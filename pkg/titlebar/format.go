package titlebar

import (
	"fmt"
	"strconv"
)

// formatOptions frame a formatted value. Both default to "".
type formatOptions struct {
	prefix string
	suffix string
}

// FormatOption configures Format.
type FormatOption func(*formatOptions)

// WithPrefix prepends a prefix to the formatted value.
func WithPrefix(prefix string) FormatOption {
	return func(o *formatOptions) {
		o.prefix = prefix
	}
}

// WithSuffix appends a suffix to the formatted value.
func WithSuffix(suffix string) FormatOption {
	return func(o *formatOptions) {
		o.suffix = suffix
	}
}

// Format stringifies value, passes it through the formatter when one
// is set, and frames it with the optional prefix and suffix.
//
// The function is total over strings and numbers: no validation is
// performed, and any other type falls back to its fmt representation
// (a caller contract, not a checked failure).
func (t *TitleBar) Format(value any, opts ...FormatOption) string {
	var o formatOptions
	for _, opt := range opts {
		opt(&o)
	}

	s := stringify(value)
	if f := t.formatter; f != nil {
		s = f(s)
	}
	return o.prefix + s + o.suffix
}

// stringify converts a string-or-number value to its string form.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
