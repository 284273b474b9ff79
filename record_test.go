package encodium_test

import (
	"math/big"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	encodium "github.com/eudemonia-io/encodium"
)

func TestMain(m *testing.M) {
	// Keep the unknown-field warning out of test output.
	encodium.SetLogger(zerolog.Nop())
	os.Exit(m.Run())
}

func newPersonType() *encodium.Type {
	return encodium.NewType("Person",
		encodium.F("age", encodium.Int().NonNegative()),
		encodium.F("name", encodium.String().MaxLength(50)),
		encodium.F("diabetic", encodium.Bool().Default(true)),
	)
}

func TestNew_ValidAndDefaults(t *testing.T) {
	person := newPersonType()
	john, err := person.New(encodium.Values{"age": big.NewInt(25), "name": "John"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := john.GetInt("age"); got.Cmp(big.NewInt(25)) != 0 {
		t.Fatalf("age = %v, want 25", got)
	}
	if !john.GetBool("diabetic") {
		t.Fatalf("expected diabetic default true")
	}
}

func TestNew_MissingRequiredField(t *testing.T) {
	person := newPersonType()
	_, err := person.New(encodium.Values{"age": big.NewInt(25)})
	ve, ok := encodium.AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Code != encodium.CodeRequired || ve.Field != "name" {
		t.Fatalf("got code=%q field=%q, want required/name", ve.Code, ve.Field)
	}
	if want := "name cannot be None"; ve.Error() != want {
		t.Fatalf("Error() = %q, want %q", ve.Error(), want)
	}
}

func TestNew_ConstraintViolations(t *testing.T) {
	person := newPersonType()

	_, err := person.New(encodium.Values{"age": big.NewInt(-1), "name": "Impossible"})
	if ve, _ := encodium.AsValidationError(err); ve == nil || ve.Code != encodium.CodeNegative {
		t.Fatalf("expected negative-age failure, got %v", err)
	}

	long := make([]byte, 0, 60)
	for i := 0; i < 60; i++ {
		long = append(long, 'x')
	}
	_, err = person.New(encodium.Values{"age": big.NewInt(1), "name": string(long)})
	if ve, _ := encodium.AsValidationError(err); ve == nil || ve.Code != encodium.CodeTooLong || ve.Field != "name" {
		t.Fatalf("expected too_long failure on name, got %v", err)
	}
}

func TestString_MaxLengthIsStrict(t *testing.T) {
	short := encodium.NewType("Short", encodium.F("s", encodium.String().MaxLength(5)))
	if _, err := short.New(encodium.Values{"s": "1234"}); err != nil {
		t.Fatalf("length 4 under limit 5 should pass: %v", err)
	}
	// Length equal to max_length must be rejected.
	if _, err := short.New(encodium.Values{"s": "12345"}); err == nil {
		t.Fatalf("length 5 at limit 5 should fail")
	}
}

func TestNew_TypeMismatch(t *testing.T) {
	person := newPersonType()
	_, err := person.New(encodium.Values{"age": "this is not an integer", "name": "John"})
	ve, ok := encodium.AsValidationError(err)
	if !ok || ve.Code != encodium.CodeInvalidType || ve.Field != "age" {
		t.Fatalf("expected invalid_type on age, got %v", err)
	}
}

func TestChange_Atomicity(t *testing.T) {
	person := newPersonType()
	john := person.MustNew(encodium.Values{"age": big.NewInt(25), "name": "John"})

	err := john.Change(encodium.Values{
		"age":  big.NewInt(30),           // valid
		"name": string(make([]byte, 60)), // too long
	})
	if err == nil {
		t.Fatalf("expected batch failure")
	}
	if got := john.GetInt("age"); got.Cmp(big.NewInt(25)) != 0 {
		t.Fatalf("age = %v after failed batch, want pre-call 25", got)
	}
	if got := john.GetString("name"); got != "John" {
		t.Fatalf("name = %q after failed batch, want John", got)
	}
}

func TestChange_UnknownFieldIsTolerated(t *testing.T) {
	person := newPersonType()
	john := person.MustNew(encodium.Values{"age": big.NewInt(25), "name": "John"})
	if err := john.Change(encodium.Values{"hat": "Fedora", "age": big.NewInt(26)}); err != nil {
		t.Fatalf("unknown field must not fail the batch: %v", err)
	}
	if got := john.GetInt("age"); got.Cmp(big.NewInt(26)) != 0 {
		t.Fatalf("age = %v, want 26", got)
	}
}

func TestSet_ValidatesSingleField(t *testing.T) {
	person := newPersonType()
	john := person.MustNew(encodium.Values{"age": big.NewInt(25), "name": "John"})
	if err := john.Set("age", big.NewInt(10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := john.Set("diabetic", big.NewInt(12)); err == nil {
		t.Fatalf("expected invalid_type on diabetic")
	}
	if !john.GetBool("diabetic") {
		t.Fatalf("diabetic changed by failed Set")
	}
}

func TestWholeRecordCheck_RollsBackBatch(t *testing.T) {
	span := encodium.NewType("Span",
		encodium.F("lo", encodium.Int()),
		encodium.F("hi", encodium.Int()),
	).WithCheck(func(r *encodium.Record, changed map[string]bool) error {
		if r.GetInt("lo").Cmp(r.GetInt("hi")) > 0 {
			return encodium.NewValidationError(encodium.CodeCheckFailed, "has lo above hi")
		}
		return nil
	})

	s, err := span.New(encodium.Values{"lo": big.NewInt(1), "hi": big.NewInt(9)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = s.Change(encodium.Values{"lo": big.NewInt(7), "hi": big.NewInt(3)})
	if ve, _ := encodium.AsValidationError(err); ve == nil || ve.Code != encodium.CodeCheckFailed {
		t.Fatalf("expected check_failed, got %v", err)
	}
	if s.GetInt("lo").Cmp(big.NewInt(1)) != 0 || s.GetInt("hi").Cmp(big.NewInt(9)) != 0 {
		t.Fatalf("rollback did not restore pre-batch values: lo=%v hi=%v", s.GetInt("lo"), s.GetInt("hi"))
	}

	// The hook also vetoes initial construction.
	if _, err := span.New(encodium.Values{"lo": big.NewInt(5), "hi": big.NewInt(2)}); err == nil {
		t.Fatalf("expected construction veto")
	}
}

func TestWholeRecordCheck_ReceivesChangedNames(t *testing.T) {
	var seen map[string]bool
	pair := encodium.NewType("Pair",
		encodium.F("a", encodium.Int()),
		encodium.F("b", encodium.Int()),
	).WithCheck(func(r *encodium.Record, changed map[string]bool) error {
		seen = changed
		return nil
	})

	p := pair.MustNew(encodium.Values{"a": big.NewInt(1), "b": big.NewInt(2)})
	if !seen["a"] || !seen["b"] {
		t.Fatalf("construction should report both fields changed, got %v", seen)
	}
	if err := p.Set("b", big.NewInt(3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen["a"] || !seen["b"] {
		t.Fatalf("single-field change should report only b, got %v", seen)
	}
}

func TestDefaultFunc_InvokedOncePerConstruction(t *testing.T) {
	calls := 0
	counter := encodium.NewType("Counter",
		encodium.F("n", encodium.Int().DefaultFunc(func() any {
			v := big.NewInt(int64(calls))
			calls++
			return v
		})),
	)
	for want := 0; want < 3; want++ {
		c, err := counter.New(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := c.GetInt("n"); got.Cmp(big.NewInt(int64(want))) != 0 {
			t.Fatalf("n = %v, want %d", got, want)
		}
	}
	if calls != 3 {
		t.Fatalf("default invoked %d times, want 3", calls)
	}

	// Supplying the field explicitly must not invoke the computation.
	if _, err := counter.New(encodium.Values{"n": big.NewInt(99)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("default invoked for an explicitly supplied field")
	}
}

func TestDefaultFunc_FreshValuesPerInstance(t *testing.T) {
	tagged := encodium.NewType("Tagged",
		encodium.F("id", encodium.String().DefaultFunc(func() any { return uuid.NewString() })),
		encodium.F("tags", encodium.List(encodium.String()).DefaultEmpty()),
	)

	a := tagged.MustNew(nil)
	b := tagged.MustNew(nil)
	if a.GetString("id") == b.GetString("id") {
		t.Fatalf("expected distinct ids, both %q", a.GetString("id"))
	}

	// Empty-list defaults must not share a backing slice.
	if err := a.Set("tags", append(a.GetList("tags"), "x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.GetList("tags")) != 0 {
		t.Fatalf("list default shared between instances")
	}
}

func TestOptionalField(t *testing.T) {
	person := encodium.NewType("Person",
		encodium.F("age", encodium.Int()),
		encodium.F("hat", encodium.String().Optional()),
	)
	p, err := person.New(encodium.Values{"age": big.NewInt(25)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.Get("hat"); got != nil {
		t.Fatalf("hat = %v, want nil", got)
	}
	// Explicit nil is accepted for optional fields too.
	if err := p.Set("hat", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEquality(t *testing.T) {
	person := newPersonType()
	kw := encodium.Values{"age": big.NewInt(25), "name": "John"}
	a := person.MustNew(kw)
	b := person.MustNew(encodium.Values{"age": big.NewInt(25), "name": "John"})
	if !a.Equal(b) {
		t.Fatalf("identical instances compare not-equal")
	}
	if err := b.Set("age", big.NewInt(26)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Equal(b) {
		t.Fatalf("instances with differing age compare equal")
	}

	other := encodium.NewType("Person",
		encodium.F("age", encodium.Int().NonNegative()),
		encodium.F("name", encodium.String().MaxLength(50)),
		encodium.F("diabetic", encodium.Bool().Default(true)),
	)
	c := other.MustNew(encodium.Values{"age": big.NewInt(25), "name": "John"})
	if a.Equal(c) {
		t.Fatalf("instances of distinct declared types compare equal")
	}
	if a.Equal(nil) || a.Equal(42) || a.Equal("John") {
		t.Fatalf("comparison against non-records must be not-equal, not an error")
	}
}

func TestRecursiveType(t *testing.T) {
	tree := encodium.Declare("Tree")
	tree.Define(
		encodium.F("left", encodium.RecordOf(tree).Optional()),
		encodium.F("right", encodium.RecordOf(tree).Optional()),
		encodium.F("value", encodium.String()),
	)

	leaf := tree.MustNew(encodium.Values{"value": "leaf"})
	root, err := tree.New(encodium.Values{"value": "root", "left": leaf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := root.GetRecord("left").GetString("value"); got != "leaf" {
		t.Fatalf("left value = %q, want leaf", got)
	}

	// A nested value of a different record type must be rejected.
	person := newPersonType()
	john := person.MustNew(encodium.Values{"age": big.NewInt(25), "name": "John"})
	_, err = tree.New(encodium.Values{"value": "root", "left": john})
	if ve, _ := encodium.AsValidationError(err); ve == nil || ve.Code != encodium.CodeInvalidType || ve.Field != "left" {
		t.Fatalf("expected invalid_type on left, got %v", err)
	}
}

func TestListElementAttribution(t *testing.T) {
	person := newPersonType()
	party := encodium.NewType("Party",
		encodium.F("people", encodium.List(encodium.RecordOf(person))),
	)
	john := person.MustNew(encodium.Values{"age": big.NewInt(25), "name": "John"})

	_, err := party.New(encodium.Values{"people": []any{john, "not a person"}})
	ve, ok := encodium.AsValidationError(err)
	if !ok || ve.Code != encodium.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %v", err)
	}
	if ve.Field != "people[1]" {
		t.Fatalf("field = %q, want people[1]", ve.Field)
	}
}

func TestListConstraintDelegation(t *testing.T) {
	scores := encodium.NewType("Scores",
		encodium.F("values", encodium.List(encodium.Int().NonNegative())),
	)
	_, err := scores.New(encodium.Values{"values": []any{big.NewInt(3), big.NewInt(-4)}})
	ve, ok := encodium.AsValidationError(err)
	if !ok || ve.Code != encodium.CodeNegative || ve.Field != "values[1]" {
		t.Fatalf("expected negative at values[1], got %v", err)
	}
}
