package encodium

import (
	"bytes"
	"math/big"
)

// Values is the keyword batch handed to New and Change.
type Values map[string]any

// Record is a concrete, always-valid instance of a Type: every committed
// field value has passed its Definition's checks and the whole-record check
// at the time of the last successful mutation. Records assume single-owner
// mutation; share across goroutines only with external synchronization.
type Record struct {
	typ    *Type
	values map[string]any
}

// Type returns the declared type of the instance.
func (r *Record) Type() *Type { return r.typ }

// Change applies a batch of field assignments atomically. Unknown names are
// warned about and skipped; any per-field or whole-record failure leaves the
// instance exactly as it was before the call.
func (r *Record) Change(kw Values) error {
	accepted := make(map[string]any, len(kw))
	for name, v := range kw {
		i, ok := r.typ.index[name]
		if !ok {
			logger.Warn().
				Str("type", r.typ.name).
				Str("field", name).
				Msg("ignoring value for unknown field")
			continue
		}
		if isNilValue(v) {
			v = nil
		}
		def := r.typ.fields[i].Def
		if err := def.CheckType(v); err != nil {
			return prefixError(name, err)
		}
		if v != nil {
			if err := def.CheckValue(v); err != nil {
				return prefixError(name, err)
			}
		}
		accepted[name] = v
	}

	// All per-field checks passed; snapshot then commit.
	backup := make(map[string]any, len(accepted))
	present := make(map[string]bool, len(accepted))
	changed := make(map[string]bool, len(accepted))
	for name, v := range accepted {
		old, ok := r.values[name]
		backup[name] = old
		present[name] = ok
		r.values[name] = v
		changed[name] = true
	}

	if r.typ.check != nil {
		if err := r.typ.check(r, changed); err != nil {
			for name := range backup {
				if present[name] {
					r.values[name] = backup[name]
				} else {
					delete(r.values, name)
				}
			}
			if _, ok := AsValidationError(err); ok {
				return err
			}
			return &ValidationError{Code: CodeCheckFailed, Message: err.Error(), Cause: err}
		}
	}
	return nil
}

// Set assigns a single field through the same transactional path as Change.
func (r *Record) Set(name string, v any) error {
	return r.Change(Values{name: v})
}

// Get returns the committed value of a declared field, nil when an optional
// field is absent. Undeclared names are a programmer error.
func (r *Record) Get(name string) any {
	if _, ok := r.typ.index[name]; !ok {
		panic("encodium: type " + r.typ.name + " has no field " + name)
	}
	return r.values[name]
}

// GetInt returns an Integer field, nil when absent.
func (r *Record) GetInt(name string) *big.Int {
	v := r.Get(name)
	if v == nil {
		return nil
	}
	return v.(*big.Int)
}

// GetString returns a String field, "" when absent.
func (r *Record) GetString(name string) string {
	v := r.Get(name)
	if v == nil {
		return ""
	}
	return v.(string)
}

// GetBool returns a Boolean field, false when absent.
func (r *Record) GetBool(name string) bool {
	v := r.Get(name)
	if v == nil {
		return false
	}
	return v.(bool)
}

// GetBytes returns a Bytes field, nil when absent.
func (r *Record) GetBytes(name string) []byte {
	v := r.Get(name)
	if v == nil {
		return nil
	}
	return v.([]byte)
}

// GetList returns a List field, nil when absent.
func (r *Record) GetList(name string) []any {
	v := r.Get(name)
	if v == nil {
		return nil
	}
	return v.([]any)
}

// GetRecord returns a nested record field, nil when absent.
func (r *Record) GetRecord(name string) *Record {
	v := r.Get(name)
	if v == nil {
		return nil
	}
	return v.(*Record)
}

// Equal reports whether other is a *Record of the identical declared type
// with every declared field comparing equal. Any other value, including a
// record of a different type, compares not-equal; Equal never fails.
func (r *Record) Equal(other any) bool {
	o, ok := other.(*Record)
	if !ok || o == nil || o.typ != r.typ {
		return false
	}
	for _, f := range r.typ.fields {
		if !valueEqual(r.values[f.Name], o.values[f.Name]) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case *big.Int:
		bv, ok := b.(*big.Int)
		return ok && av.Cmp(bv) == 0
	case []byte:
		bv, ok := b.([]byte)
		return ok && bytes.Equal(av, bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Record:
		return av.Equal(b)
	default:
		return a == b
	}
}
