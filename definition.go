package encodium

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Definition is the immutable, declarative descriptor of one field slot:
// its kind, constraints, default, and codec behavior. Definitions are created
// at type-declaration time, shared by every instance of the type, and hold no
// per-instance state.
//
// The concrete kinds are Int, String, Bool, Bytes, List, and RecordOf.
type Definition interface {
	// CheckType verifies presence (nil handling per Optional) and that the
	// runtime kind of v matches the declared kind.
	CheckType(v any) error

	// CheckValue runs the kind's constraint parameters against a non-nil
	// value that already passed CheckType.
	CheckValue(v any) error

	// Decode converts a generic JSON tree value into a candidate field value.
	// It never runs constraints; decoded values go through full construction.
	Decode(tree any) (any, error)

	// appendJSON writes the JSON encoding of a non-nil committed value.
	appendJSON(dst []byte, v any) ([]byte, error)

	optional() bool
	defaultValue() any
	kind() string
}

// options carries the configuration common to every Definition kind.
type options struct {
	opt   bool
	def   any
	deffn func() any
}

func (o *options) optional() bool { return o.opt }

// defaultValue resolves the declared default. A computed default is invoked
// fresh on every call so successive constructions may observe distinct values.
func (o *options) defaultValue() any {
	if o.deffn != nil {
		return o.deffn()
	}
	return o.def
}

// checkPresence handles the nil case shared by every kind. handled is true
// when v was nil and no further checking applies.
func checkPresence(opt bool, v any) (handled bool, err error) {
	if v != nil {
		return false, nil
	}
	if opt {
		return true, nil
	}
	return true, &ValidationError{Code: CodeRequired, Message: "cannot be None"}
}

// typeMismatch reports a kind mismatch naming both the expected and the
// actual kind.
func typeMismatch(d Definition, v any) *ValidationError {
	return &ValidationError{
		Code:    CodeInvalidType,
		Message: fmt.Sprintf("is supposed to be type %s, but was set to something of type %s", d.kind(), valueKind(v)),
	}
}

// decodeMismatch reports a generic-tree value of the wrong shape.
func decodeMismatch(d Definition, tree any) *ValidationError {
	return &ValidationError{
		Code:    CodeInvalidType,
		Message: fmt.Sprintf("is supposed to be type %s, but was decoded from %s", d.kind(), treeKind(tree)),
	}
}

// valueKind names the runtime kind of a candidate field value for error
// messages.
func valueKind(v any) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case bool:
		return "Boolean"
	case string:
		return "String"
	case []byte:
		return "Bytes"
	case []any:
		return "List"
	case *Record:
		return t.typ.name
	default:
		if isBigInt(v) {
			return "Integer"
		}
		return fmt.Sprintf("%T", v)
	}
}

// treeKind names the JSON kind of a generic tree value.
func treeKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// isNilValue reports whether v is nil including typed nils such as
// ([]byte)(nil) or (*Record)(nil), which arrive wrapped in a non-nil
// interface.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
