package encodium

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"unicode/utf8"

	"github.com/eudemonia-io/encodium/internal/jsonx"
)

// ---- Integer ----

// IntDef validates arbitrary-precision integers carried as *big.Int. The wire
// form is a bare JSON number literal; precision is preserved in both
// directions via json.Number.
type IntDef struct {
	options
	nonNegative bool
}

// Int returns a new Integer field definition.
func Int() *IntDef { return &IntDef{} }

// NonNegative rejects values below zero.
func (d *IntDef) NonNegative() *IntDef { d.nonNegative = true; return d }

// Optional permits a nil value for this field.
func (d *IntDef) Optional() *IntDef { d.opt = true; return d }

// Default sets a literal default value.
func (d *IntDef) Default(v *big.Int) *IntDef { d.def = v; return d }

// DefaultInt64 sets a default built fresh from v on each construction.
func (d *IntDef) DefaultInt64(v int64) *IntDef {
	d.deffn = func() any { return big.NewInt(v) }
	return d
}

// DefaultFunc sets a computed default, invoked once per construction that
// needs it.
func (d *IntDef) DefaultFunc(fn func() any) *IntDef { d.deffn = fn; return d }

func (d *IntDef) kind() string { return "Integer" }

func (d *IntDef) CheckType(v any) error {
	if handled, err := checkPresence(d.opt, v); handled {
		return err
	}
	if !isBigInt(v) {
		return typeMismatch(d, v)
	}
	return nil
}

func (d *IntDef) CheckValue(v any) error {
	if d.nonNegative && v.(*big.Int).Sign() < 0 {
		return &ValidationError{Code: CodeNegative, Message: "must not be negative"}
	}
	return nil
}

func (d *IntDef) Decode(tree any) (any, error) {
	switch n := tree.(type) {
	case json.Number:
		z, ok := new(big.Int).SetString(n.String(), 10)
		if !ok {
			return nil, &ValidationError{Code: CodeInvalidType, Message: "is supposed to be an integer, but was set to the number " + n.String()}
		}
		return z, nil
	case float64:
		z, acc := big.NewFloat(n).Int(nil)
		if acc != big.Exact {
			return nil, &ValidationError{Code: CodeInvalidType, Message: "is supposed to be an integer, but was set to a fractional number"}
		}
		return z, nil
	default:
		return nil, decodeMismatch(d, tree)
	}
}

func (d *IntDef) appendJSON(dst []byte, v any) ([]byte, error) {
	return append(dst, v.(*big.Int).String()...), nil
}

func isBigInt(v any) bool {
	_, ok := v.(*big.Int)
	return ok
}

// ---- String ----

// StringDef validates text fields. MaxLength counts runes and rejects values
// whose length reaches the limit (strict less-than is required to pass).
type StringDef struct {
	options
	maxLength int // negative = unset
}

// String returns a new String field definition.
func String() *StringDef { return &StringDef{maxLength: -1} }

// MaxLength rejects strings of length n or longer.
func (d *StringDef) MaxLength(n int) *StringDef { d.maxLength = n; return d }

// Optional permits a nil value for this field.
func (d *StringDef) Optional() *StringDef { d.opt = true; return d }

// Default sets a literal default value.
func (d *StringDef) Default(v string) *StringDef { d.def = v; return d }

// DefaultFunc sets a computed default, invoked once per construction that
// needs it.
func (d *StringDef) DefaultFunc(fn func() any) *StringDef { d.deffn = fn; return d }

func (d *StringDef) kind() string { return "String" }

func (d *StringDef) CheckType(v any) error {
	if handled, err := checkPresence(d.opt, v); handled {
		return err
	}
	if _, ok := v.(string); !ok {
		return typeMismatch(d, v)
	}
	return nil
}

func (d *StringDef) CheckValue(v any) error {
	if d.maxLength < 0 {
		return nil
	}
	if n := utf8.RuneCountInString(v.(string)); n >= d.maxLength {
		return &ValidationError{
			Code:    CodeTooLong,
			Message: fmt.Sprintf("was set to a string of length %d but cannot be longer than %d", n, d.maxLength),
		}
	}
	return nil
}

func (d *StringDef) Decode(tree any) (any, error) {
	s, ok := tree.(string)
	if !ok {
		return nil, decodeMismatch(d, tree)
	}
	return s, nil
}

func (d *StringDef) appendJSON(dst []byte, v any) ([]byte, error) {
	b, err := jsonx.Marshal(v.(string))
	if err != nil {
		return dst, err
	}
	return append(dst, b...), nil
}

// ---- Boolean ----

// BoolDef validates boolean fields. No constraint parameters exist.
type BoolDef struct {
	options
}

// Bool returns a new Boolean field definition.
func Bool() *BoolDef { return &BoolDef{} }

// Optional permits a nil value for this field.
func (d *BoolDef) Optional() *BoolDef { d.opt = true; return d }

// Default sets a literal default value.
func (d *BoolDef) Default(v bool) *BoolDef { d.def = v; return d }

// DefaultFunc sets a computed default, invoked once per construction that
// needs it.
func (d *BoolDef) DefaultFunc(fn func() any) *BoolDef { d.deffn = fn; return d }

func (d *BoolDef) kind() string { return "Boolean" }

func (d *BoolDef) CheckType(v any) error {
	if handled, err := checkPresence(d.opt, v); handled {
		return err
	}
	if _, ok := v.(bool); !ok {
		return typeMismatch(d, v)
	}
	return nil
}

func (d *BoolDef) CheckValue(v any) error { return nil }

func (d *BoolDef) Decode(tree any) (any, error) {
	b, ok := tree.(bool)
	if !ok {
		return nil, decodeMismatch(d, tree)
	}
	return b, nil
}

func (d *BoolDef) appendJSON(dst []byte, v any) ([]byte, error) {
	return strconv.AppendBool(dst, v.(bool)), nil
}

// ---- Bytes ----

// BytesDef validates byte-sequence fields. The wire form is standard base64
// inside a JSON string; malformed base64 on decode is a validation failure,
// never a panic or a foreign error type.
type BytesDef struct {
	options
}

// Bytes returns a new Bytes field definition.
func Bytes() *BytesDef { return &BytesDef{} }

// Optional permits a nil value for this field.
func (d *BytesDef) Optional() *BytesDef { d.opt = true; return d }

// Default sets a default built fresh from a copy of v on each construction,
// so instances never share the backing array.
func (d *BytesDef) Default(v []byte) *BytesDef {
	d.deffn = func() any {
		c := make([]byte, len(v))
		copy(c, v)
		return c
	}
	return d
}

// DefaultFunc sets a computed default, invoked once per construction that
// needs it.
func (d *BytesDef) DefaultFunc(fn func() any) *BytesDef { d.deffn = fn; return d }

func (d *BytesDef) kind() string { return "Bytes" }

func (d *BytesDef) CheckType(v any) error {
	if handled, err := checkPresence(d.opt, v); handled {
		return err
	}
	if _, ok := v.([]byte); !ok {
		return typeMismatch(d, v)
	}
	return nil
}

func (d *BytesDef) CheckValue(v any) error { return nil }

func (d *BytesDef) Decode(tree any) (any, error) {
	s, ok := tree.(string)
	if !ok {
		return nil, decodeMismatch(d, tree)
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &ValidationError{Code: CodeInvalidFormat, Message: "is not valid base64", Cause: err}
	}
	return b, nil
}

func (d *BytesDef) appendJSON(dst []byte, v any) ([]byte, error) {
	b, err := jsonx.Marshal(base64.StdEncoding.EncodeToString(v.([]byte)))
	if err != nil {
		return dst, err
	}
	return append(dst, b...), nil
}
