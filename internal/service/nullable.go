// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"encoding/json"
)

// Nullable is a JSON input field with three states: absent (Set false),
// explicit null (Set true, Value nil) and a value.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON implements json.Unmarshaler. It is only called when the
// key is present, which is what marks the field as set.
func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// NullableOf returns a set Nullable holding v.
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// apply overwrites dst when the field was present in the input.
func (n Nullable[T]) apply(dst **T) {
	if n.Set {
		*dst = n.Value
	}
}

// collection converts a decoded JSON array field so that an explicit
// empty array stays distinct from null.
func collection[T any](n Nullable[[]T]) *[]T {
	if n.Value == nil {
		return nil
	}
	v := *n.Value
	if v == nil {
		v = []T{}
	}
	return &v
}
