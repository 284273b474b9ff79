package encodium

// Field pairs a declared name with its Definition. Record types hold their
// fields in declaration order; that order drives JSON output.
type Field struct {
	Name string
	Def  Definition
}

// F is the field-pair helper used inside NewType and Define calls.
func F(name string, def Definition) Field { return Field{Name: name, Def: def} }

// CheckFunc is the whole-record validation hook. The engine invokes it after
// every successful batch commit with the set of field names that changed; a
// returned error vetoes the batch and triggers rollback. User code never
// calls it directly.
type CheckFunc func(r *Record, changed map[string]bool) error

// Type carries the per-type metadata: a fixed, ordered field-name-to-
// Definition mapping computed once at declaration, plus the optional
// whole-record check. Types are immutable after Define and shared by every
// instance.
type Type struct {
	name    string
	fields  []Field
	index   map[string]int
	check   CheckFunc
	defined bool
}

// Declare reserves a named type whose fields are bound later with Define.
// The returned *Type may already be referenced via RecordOf, which is how
// recursive and mutually recursive schemas are declared.
func Declare(name string) *Type {
	if name == "" {
		panic("encodium: type name must not be empty")
	}
	return &Type{name: name}
}

// Define binds the ordered field set. It must run exactly once per declared
// type, before any instance is constructed.
func (t *Type) Define(fields ...Field) *Type {
	if t.defined {
		panic("encodium: type " + t.name + " defined twice")
	}
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Name == "" || f.Def == nil {
			panic("encodium: type " + t.name + " has an incomplete field declaration")
		}
		if _, dup := index[f.Name]; dup {
			panic("encodium: type " + t.name + " declares field " + f.Name + " twice")
		}
		index[f.Name] = i
	}
	t.fields = fields
	t.index = index
	t.defined = true
	return t
}

// NewType declares and defines a record type in one step. Use Declare/Define
// when a field must reference the type being declared.
func NewType(name string, fields ...Field) *Type {
	return Declare(name).Define(fields...)
}

// WithCheck attaches the whole-record check hook. Set at declaration time
// only.
func (t *Type) WithCheck(fn CheckFunc) *Type {
	t.check = fn
	return t
}

// Name returns the declared type name.
func (t *Type) Name() string { return t.name }

// Fields returns the declared fields in declaration order. The slice is a
// copy; Definitions remain shared.
func (t *Type) Fields() []Field {
	out := make([]Field, len(t.fields))
	copy(out, t.fields)
	return out
}

// New constructs an instance. Declared fields missing from kw resolve their
// default (computed defaults are invoked fresh), then the whole batch goes
// through Change: construction and mutation share one validation path, so an
// instance that exists is valid.
func (t *Type) New(kw Values) (*Record, error) {
	t.mustBeDefined()
	merged := make(Values, len(t.fields))
	for name, v := range kw {
		merged[name] = v
	}
	for _, f := range t.fields {
		if _, ok := merged[f.Name]; !ok {
			merged[f.Name] = f.Def.defaultValue()
		}
	}
	r := &Record{typ: t, values: make(map[string]any, len(t.fields))}
	if err := r.Change(merged); err != nil {
		return nil, err
	}
	return r, nil
}

// MustNew is New panicking on validation failure. Intended for statically
// known-good values such as fixtures.
func (t *Type) MustNew(kw Values) *Record {
	r, err := t.New(kw)
	if err != nil {
		panic(err)
	}
	return r
}

func (t *Type) mustBeDefined() {
	if !t.defined {
		panic("encodium: type " + t.name + " used before Define")
	}
}
