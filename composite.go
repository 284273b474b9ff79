package encodium

import (
	"fmt"
)

// ---- List ----

// ListDef wraps exactly one inner Definition and delegates every check and
// both codecs to it element-wise. Element failures are attributed with their
// index, e.g. "children[2] age must not be negative".
type ListDef struct {
	options
	inner Definition
}

// List returns a new List field definition over the given element definition.
func List(inner Definition) *ListDef {
	if inner == nil {
		panic("encodium: List requires an inner Definition")
	}
	return &ListDef{inner: inner}
}

// Optional permits a nil value for this field.
func (d *ListDef) Optional() *ListDef { d.opt = true; return d }

// DefaultEmpty defaults the field to a fresh empty list per construction, so
// instances never share a backing slice.
func (d *ListDef) DefaultEmpty() *ListDef {
	d.deffn = func() any { return []any{} }
	return d
}

// DefaultFunc sets a computed default, invoked once per construction that
// needs it.
func (d *ListDef) DefaultFunc(fn func() any) *ListDef { d.deffn = fn; return d }

func (d *ListDef) kind() string { return "List of " + d.inner.kind() }

func (d *ListDef) CheckType(v any) error {
	if handled, err := checkPresence(d.opt, v); handled {
		return err
	}
	items, ok := v.([]any)
	if !ok {
		return typeMismatch(d, v)
	}
	for i, it := range items {
		if isNilValue(it) {
			it = nil
		}
		if err := d.inner.CheckType(it); err != nil {
			return prefixError(fmt.Sprintf("[%d]", i), err)
		}
	}
	return nil
}

func (d *ListDef) CheckValue(v any) error {
	for i, it := range v.([]any) {
		if isNilValue(it) {
			continue
		}
		if err := d.inner.CheckValue(it); err != nil {
			return prefixError(fmt.Sprintf("[%d]", i), err)
		}
	}
	return nil
}

func (d *ListDef) Decode(tree any) (any, error) {
	arr, ok := tree.([]any)
	if !ok {
		return nil, decodeMismatch(d, tree)
	}
	out := make([]any, 0, len(arr))
	for i, el := range arr {
		if el == nil {
			out = append(out, nil)
			continue
		}
		dv, err := d.inner.Decode(el)
		if err != nil {
			return nil, prefixError(fmt.Sprintf("[%d]", i), err)
		}
		out = append(out, dv)
	}
	return out, nil
}

func (d *ListDef) appendJSON(dst []byte, v any) ([]byte, error) {
	dst = append(dst, '[')
	for i, it := range v.([]any) {
		if i > 0 {
			dst = append(dst, ',')
		}
		if isNilValue(it) {
			dst = append(dst, "null"...)
			continue
		}
		var err error
		dst, err = d.inner.appendJSON(dst, it)
		if err != nil {
			return dst, err
		}
	}
	return append(dst, ']'), nil
}

// ---- Nested record ----

// RecordDef wraps a record type declared elsewhere and delegates checks and
// both codecs to that type's own engine, recursively. For self-referential
// schemas, pass a *Type obtained from Declare before its Define runs.
type RecordDef struct {
	options
	typ *Type
}

// RecordOf returns a field definition holding an instance of t.
func RecordOf(t *Type) *RecordDef {
	if t == nil {
		panic("encodium: RecordOf requires a declared *Type")
	}
	return &RecordDef{typ: t}
}

// Optional permits a nil value for this field.
func (d *RecordDef) Optional() *RecordDef { d.opt = true; return d }

// DefaultFunc sets a computed default, invoked once per construction that
// needs it.
func (d *RecordDef) DefaultFunc(fn func() any) *RecordDef { d.deffn = fn; return d }

func (d *RecordDef) kind() string { return d.typ.name }

func (d *RecordDef) CheckType(v any) error {
	if handled, err := checkPresence(d.opt, v); handled {
		return err
	}
	r, ok := v.(*Record)
	if !ok {
		return typeMismatch(d, v)
	}
	if r.typ != d.typ {
		return typeMismatch(d, v)
	}
	return nil
}

// CheckValue is a no-op: a nested instance was already validated by its own
// construction, and its whole-record check ran there.
func (d *RecordDef) CheckValue(v any) error { return nil }

func (d *RecordDef) Decode(tree any) (any, error) {
	return d.typ.FromObj(tree)
}

func (d *RecordDef) appendJSON(dst []byte, v any) ([]byte, error) {
	return v.(*Record).appendJSON(dst)
}
