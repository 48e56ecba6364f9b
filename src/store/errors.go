package store

import "errors"

var (
	// ErrNotFound signals that the referenced account or trade id does
	// not exist. Callers report it as a normal result, not a fault.
	ErrNotFound = errors.New("record not found")

	// ErrCorruptStore signals malformed persisted content. The
	// operation is aborted and the file is left untouched.
	ErrCorruptStore = errors.New("corrupt store file")

	// ErrPersistenceInconsistency signals that a post-write
	// verification did not find the record that was just saved.
	ErrPersistenceInconsistency = errors.New("persistence inconsistency")

	// ErrTradeClosed signals a second attempt to close a trade.
	ErrTradeClosed = errors.New("trade already closed")
)
