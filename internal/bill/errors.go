package bill

import "errors"

var (
	// ErrNotFound means the targeted bill does not exist, either in the
	// local cache or in the store.
	ErrNotFound = errors.New("bill not found")

	// ErrStoreUnavailable means the store could not be read.
	ErrStoreUnavailable = errors.New("bill store unavailable")

	// ErrStoreWrite means a create, update or delete failed at the store.
	ErrStoreWrite = errors.New("bill store write failed")

	// ErrValidation means the input failed a precondition check before
	// any store call was made.
	ErrValidation = errors.New("invalid bill")
)
