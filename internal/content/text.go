package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Text is a loosely typed scalar. Strings decode as-is and other numbers
// and booleans keep their JSON spelling. null, false and zero count as
// missing and decode to "", so fallbacks apply to them.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case '{', '[':
		return fmt.Errorf("content: expected text, got %s", kindOf(data[0]))
	default:
		if isFalsy(data) {
			*t = ""
			return nil
		}
		*t = Text(data)
		return nil
	}
}

func isFalsy(data []byte) bool {
	if bytes.Equal(data, []byte("false")) {
		return true
	}
	f, err := strconv.ParseFloat(string(data), 64)
	return err == nil && f == 0
}

func (t Text) String() string { return string(t) }

// Or returns t, or fallback when t is empty.
func (t Text) Or(fallback string) string {
	if t == "" {
		return fallback
	}
	return string(t)
}

func kindOf(b byte) string {
	if b == '{' {
		return "object"
	}
	return "array"
}
