package vdom

import (
	"fmt"
	"strconv"
)

// AttrValue normalizes an attribute value for output.
//
// Bool values carry presence semantics: true is a bare attribute, false
// is absence. nil is absence. Everything else is present with its
// string form; note that an empty string is still present (title="").
func AttrValue(value any) (present bool, str string) {
	switch v := value.(type) {
	case nil:
		return false, ""
	case bool:
		return v, ""
	case string:
		return true, v
	case int:
		return true, strconv.Itoa(v)
	case int64:
		return true, strconv.FormatInt(v, 10)
	case float64:
		return true, strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return true, strconv.FormatFloat(float64(v), 'g', -1, 32)
	default:
		return true, fmt.Sprintf("%v", v)
	}
}
