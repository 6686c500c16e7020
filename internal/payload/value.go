package payload

import (
	"bytes"
	"encoding/json"
)

// Kind identifies which variant a Value holds
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
)

// Value is a single payload value: a string, a number or null.
// Legacy rows may hold booleans, arrays or objects; those decode into their
// compact JSON text as a string so display code never sees nested data.
type Value struct {
	kind Kind
	str  string
	num  json.Number
}

// String returns a string Value
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a number Value. The literal is kept verbatim.
func Number(n json.Number) Value {
	return Value{kind: KindNumber, num: n}
}

// Null returns the null Value
func Null() Value {
	return Value{}
}

// Kind reports the variant held by v
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// String renders v for display and form pre-filling. Null renders as "".
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num.String()
	default:
		return ""
	}
}

// Float returns the numeric value when v is a number
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := v.num.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		if v.num == "" {
			return []byte("null"), nil
		}
		return []byte(v.num.String()), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Null()
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = Number(n)
	default:
		var compact bytes.Buffer
		if err := json.Compact(&compact, data); err != nil {
			return err
		}
		*v = String(compact.String())
	}
	return nil
}
