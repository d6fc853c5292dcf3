package model

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tiendc/go-deepcopy"
)

// GenerateID returns an opaque id for invoices, clients and line items.
// UUIDv7 starts with the millisecond timestamp followed by random bits.
// The ids are uniqueness tokens, nothing relies on them being unguessable.
func GenerateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// clone returns a deep copy of v. Callers never share slices with the
// workspace cache.
func clone[T any](v T) T {
	var out T
	if err := deepcopy.Copy(&out, v); err != nil {
		// only happens for types deepcopy cannot handle, none of ours
		panic(fmt.Sprintf("deep copy %T: %v", v, err))
	}
	return out
}
