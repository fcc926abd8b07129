package session

import "errors"

var (
	// ErrSessionNotFound indicates no session exists for the given identifier
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrSessionExists indicates an insert collided with an existing identifier
	ErrSessionExists = errors.New("session.exists")

	// ErrInvalidSID indicates an empty session identifier was passed to a store
	ErrInvalidSID = errors.New("session.invalid_sid")

	// ErrPayloadTooLarge indicates the encoded payload exceeds the cookie size limit
	ErrPayloadTooLarge = errors.New("session.payload_too_large")
)
