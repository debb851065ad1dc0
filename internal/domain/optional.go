package domain

import "encoding/json"

// Opt is an optional request field that keeps "omitted", "explicit null"
// and "value given" apart. A plain pointer cannot distinguish the first two,
// which matters for partial updates where null clears a rating and an
// omitted field must be left untouched.
type Opt[T any] struct {
	Present bool
	Null    bool
	Value   T
}

func Some[T any](v T) Opt[T] {
	return Opt[T]{Present: true, Value: v}
}

func None[T any]() Opt[T] {
	return Opt[T]{Present: true, Null: true}
}

// Set reports whether the field carries a usable value.
func (o Opt[T]) Set() bool { return o.Present && !o.Null }

func (o *Opt[T]) UnmarshalJSON(b []byte) error {
	o.Present = true
	if string(b) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
