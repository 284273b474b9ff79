package encodium

// Package encodium provides:
//
// - Declarative record types built from ordered (name, Definition) field
//   registrations with per-field type checks, constraints, and defaults
// - An always-valid instance guarantee: construction and mutation are atomic,
//   all-or-nothing batches with rollback on failure
// - A stable error model via *ValidationError (field path, code, message)
// - Bidirectional JSON conversion driven by the same field metadata
//   (ToJSON / FromObj / FromJSON)
// - Newline-delimited framing for records over a byte stream (Send / Recv)
//
// Design policy:
// - Keep only public APIs in the root package; JSON driver primitives live
//   under internal/jsonx.
// - Definitions are immutable after declaration and shared across instances;
//   instances assume single-owner mutation.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  person := encodium.NewType("Person",
//      encodium.F("age", encodium.Int().NonNegative()),
//      encodium.F("name", encodium.String().MaxLength(50)),
//      encodium.F("diabetic", encodium.Bool().Default(true)),
//  )
//
//  john, err := person.New(encodium.Values{"age": big.NewInt(25), "name": "John"})
//
//  wire, err := john.ToJSON()
//  again, err := person.FromJSON(wire)
//
