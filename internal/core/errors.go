package core

import "errors"

// ErrNotFound reports that a requested entity does not exist. Services wrap
// it with context; adapters map it to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrInvalid reports input that fails validation. Adapters map it to
// HTTP 400.
var ErrInvalid = errors.New("invalid input")

// ErrUnknownSupplier reports a write that references a supplier that does
// not exist. Reads tolerate dangling references; writes do not.
var ErrUnknownSupplier = errors.New("unknown supplier")

// ErrUnknownWarehouse reports a stock movement that references a warehouse
// that does not exist.
var ErrUnknownWarehouse = errors.New("unknown warehouse")
