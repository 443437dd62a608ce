package repository

import "errors"

var (
	// ErrNotFound means the requested document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrOrderExists means an order with the same id was already written.
	ErrOrderExists = errors.New("order already exists")
)
