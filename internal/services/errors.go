// Package services defines the business logic for resource states, the stock
// history ledger, and trend statistics. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer. They replace the string sentinels of older designs with explicit
// error values so callers cannot mistake a sentinel for valid data.
package services

import "errors"

var (
	// ErrMissingTypeID is returned when a create request carries no resource
	// type reference.
	ErrMissingTypeID = errors.New("resource type id is required")

	// ErrInvalidQuantity is returned when a quantity is negative or absent.
	ErrInvalidQuantity = errors.New("quantity must be a non-negative number")

	// ErrInvalidCategory is returned when a category string is outside the
	// fixed enumeration.
	ErrInvalidCategory = errors.New("unknown resource category")

	// ErrTypeNotFound indicates that a resource type id does not resolve in
	// the catalog.
	ErrTypeNotFound = errors.New("resource type not found")

	// ErrResourceNotFound indicates that the requested resource state does
	// not exist. This is an expected outcome, distinct from a storage fault.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrResourceExists is returned when a create request targets a resource
	// type that already has a state record (one state per type).
	ErrResourceExists = errors.New("resource already tracked for this type")
)
