package models

import "fmt"

// Opt is a value that may be absent. Absence means the field could not be
// extracted and is never the same thing as a zero value.
type Opt[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, ok: true}
}

// None returns an absent value.
func None[T any]() Opt[T] {
	return Opt[T]{}
}

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.value, o.ok
}

func (o Opt[T]) IsSome() bool { return o.ok }

// Or returns the value, or fallback when absent.
func (o Opt[T]) Or(fallback T) T {
	if !o.ok {
		return fallback
	}
	return o.value
}

// Format renders the value with verb, or "" when absent.
func (o Opt[T]) Format(verb string) string {
	if !o.ok {
		return ""
	}
	return fmt.Sprintf(verb, o.value)
}

func (o Opt[T]) String() string {
	return o.Format("%v")
}
