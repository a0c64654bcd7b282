// Package repository holds the concurrent in-memory stores backing the
// chat service, plus the sentinel error values shared by all of them.
// The sentinels let handlers distinguish failure scenarios with
// errors.Is and map each one onto a transport status: ErrNotFound to
// 404, ErrForbidden to 403, ErrConflict to 409, ErrUnauthorized to 401
// and ErrEmptyContent to 400.
package repository

import "errors"

// ErrNotFound is returned when a referenced user or message id does
// not exist in the store.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own, such as editing or deleting another
// user's message.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a create or update would collide with
// an existing identity, such as a username or email already taken by
// another user.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned when a session token is missing or
// unknown, or when no user matches a login credential.
var ErrUnauthorized = errors.New("unauthorized")

// ErrEmptyContent is returned when a message body is blank after
// trimming surrounding whitespace.
var ErrEmptyContent = errors.New("empty content")
