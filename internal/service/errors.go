// Package service implements Splitq's application operations on top of the
// storage layer and the balance engine.
//
// Errors are classified with sentinel values so the transport layer can map
// them to status codes without string matching: storage.ErrNotFound for
// unresolved ids, ErrInvalidArgument for rejected input, ErrPermissionDenied
// for ownership and membership violations.
package service

import "errors"

var (
	// ErrInvalidArgument marks input rejected at the mutation boundary, such
	// as a self-settlement or splits that do not add up.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPermissionDenied marks an operation the acting user is not allowed
	// to perform, such as deleting someone else's expense.
	ErrPermissionDenied = errors.New("permission denied")
)
