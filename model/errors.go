package model

import "errors"

// ErrNotFound is returned when an invoice or client id is unknown.
var ErrNotFound = errors.New("not found")
