// Package repository holds the in-memory room and user registries and
// the Store that owns them.  The sentinel errors below let handlers map
// failures to HTTP responses with errors.Is.
package repository

import "errors"

// ErrRoomNotFound is returned when a room id is not part of the hotel.
var ErrRoomNotFound = errors.New("room not found")

// ErrInvalidStatus is returned for a status outside the three known values.
var ErrInvalidStatus = errors.New("invalid room status")

// ErrInvalidFloor is returned for a floor outside 1-9.
var ErrInvalidFloor = errors.New("invalid floor")

// ErrUserNotFound is returned when no account has the given email.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when registering an email that is taken.
var ErrEmailExists = errors.New("email already exists")

// ErrMissingFields is returned when a required user field is empty.
var ErrMissingFields = errors.New("missing required fields")

// ErrInvalidRole is returned for a role other than admin or user.
var ErrInvalidRole = errors.New("invalid role")

// ErrInvalidCredentials is returned when email and password do not match.
var ErrInvalidCredentials = errors.New("invalid credentials")
