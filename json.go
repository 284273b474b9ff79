package encodium

import (
	"github.com/eudemonia-io/encodium/internal/jsonx"
)

// ToJSON serializes the instance as a JSON object whose keys are exactly the
// declared field names, in declaration order. Absent optional fields are
// emitted as null.
func (r *Record) ToJSON() ([]byte, error) {
	return r.appendJSON(nil)
}

func (r *Record) appendJSON(dst []byte) ([]byte, error) {
	dst = append(dst, '{')
	for i, f := range r.typ.fields {
		if i > 0 {
			dst = append(dst, ',')
		}
		key, err := jsonx.Marshal(f.Name)
		if err != nil {
			return dst, err
		}
		dst = append(dst, key...)
		dst = append(dst, ':')
		v := r.values[f.Name]
		if v == nil {
			dst = append(dst, "null"...)
			continue
		}
		dst, err = f.Def.appendJSON(dst, v)
		if err != nil {
			return dst, err
		}
	}
	return append(dst, '}'), nil
}

// FromObj constructs an instance from an already-parsed generic tree. The
// tree must be a key/value mapping; each declared field present in it is
// decoded through its Definition, then the batch goes through New for full
// validation. Decoded input is never trusted blindly. Explicit null is
// treated the same as an absent key.
func (t *Type) FromObj(tree any) (*Record, error) {
	t.mustBeDefined()
	obj, ok := tree.(map[string]any)
	if !ok {
		return nil, &ValidationError{
			Code:    CodeInvalidType,
			Message: "cannot create " + t.name + " from " + treeKind(tree),
		}
	}
	kw := make(Values, len(t.fields))
	for _, f := range t.fields {
		raw, present := obj[f.Name]
		if !present || raw == nil {
			continue
		}
		v, err := f.Def.Decode(raw)
		if err != nil {
			return nil, prefixError(f.Name, err)
		}
		kw[f.Name] = v
	}
	return t.New(kw)
}

// FromJSON parses JSON text and constructs an instance from it. Malformed
// syntax is reported as a ValidationError to keep the error taxonomy uniform
// at the boundary.
func (t *Type) FromJSON(b []byte) (*Record, error) {
	tree, err := jsonx.Parse(b)
	if err != nil {
		return nil, &ValidationError{Code: CodeParseError, Message: "is not valid JSON", Cause: err}
	}
	return t.FromObj(tree)
}
