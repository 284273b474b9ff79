// Package jsonx wraps the JSON driver (goccy/go-json) behind the two
// value-level primitives the record engine needs: parse text into a generic
// tree with number precision preserved, and marshal a leaf value.
package jsonx

import (
	"bytes"
	"errors"

	json "github.com/goccy/go-json"
)

// ErrTrailingData reports input that continues past the first JSON value.
var ErrTrailingData = errors.New("jsonx: trailing data after JSON value")

// Parse decodes b into a generic value tree. Numbers surface as json.Number
// so arbitrary-precision integers survive the trip.
func Parse(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, ErrTrailingData
	}
	return v, nil
}

// Marshal serializes a leaf value (string, number, bool).
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}
