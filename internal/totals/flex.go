package totals

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is a JSON value that accepts a number or a numeric string. Input
// that is neither decodes as zero. The sign is kept; callers that need
// non-negative input pass the value through CoerceDecimal.
type Number struct {
	value decimal.Decimal
}

// Decimal returns the decoded value.
func (n Number) Decimal() decimal.Decimal { return n.value }

func (n *Number) UnmarshalJSON(data []byte) error {
	n.value = decimal.Zero
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	text := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		text = strings.TrimSpace(s)
	}
	if d, err := decimal.NewFromString(text); err == nil {
		n.value = d
	}
	return nil
}

// Text is a JSON value that accepts a string or a bare number. Row IDs
// generated by the forms are millisecond timestamps sent as numbers.
type Text string

func (s *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = Text(v)
		return nil
	}
	*s = Text(strings.TrimSpace(string(data)))
	return nil
}
