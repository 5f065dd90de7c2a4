package domain

import (
	"bytes"
	"encoding/json"
)

// Optional is a PATCH field that distinguishes "absent" from "explicit null".
// A field missing from the JSON body decodes to the zero Optional (not
// present). A JSON null decodes to Present with a nil Value.
type Optional[T any] struct {
	Present bool
	Value   *T
}

// Set returns a present Optional holding v.
func Set[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Value: &v}
}

// Null returns a present Optional that clears the field.
func Null[T any]() Optional[T] {
	return Optional[T]{Present: true}
}

// IsNull reports whether the field was sent as an explicit null.
func (o Optional[T]) IsNull() bool {
	return o.Present && o.Value == nil
}

// IsZero reports whether the field was absent, so omitzero drops it when
// encoding.
func (o Optional[T]) IsZero() bool {
	return !o.Present
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
