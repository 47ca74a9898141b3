// Package rendezvous implements a short-lived, capability-URL-addressed
// opaque byte slot shared between two untrusted HTTP clients coordinating
// an out-of-band handshake (MSC3886/MSC4108-style rendezvous).
package rendezvous

import (
	"errors"
	"time"
)

// DefaultContentType is assigned to a session when the creator or updater
// omits a Content-Type.
const DefaultContentType = "application/x-www-form-urlencoded"

// Errors returned by Store methods. The HTTP layer maps each to a status
// code and wire errcode; see writeError in handlers.go.
var (
	ErrNotFound             = errors.New("rendezvous: session not found")
	ErrNotModified          = errors.New("rendezvous: not modified")
	ErrConcurrentWrite      = errors.New("rendezvous: etag mismatch")
	ErrPreconditionRequired = errors.New("rendezvous: if-match required")
	ErrPayloadTooLarge      = errors.New("rendezvous: payload exceeds maximum size")

	// ErrCapacity is reserved: the current eviction design evicts
	// synchronously on create rather than rejecting, so Create never
	// returns it. Kept as a sentinel so callers can errors.Is against it
	// without a breaking change if that policy ever changes.
	ErrCapacity = errors.New("rendezvous: store at capacity")
)

// Session is a single row held by the Store.
type Session struct {
	ID             string
	ContentType    string
	Payload        []byte
	ETag           string
	CreatedAt      time.Time
	LastModifiedAt time.Time
	ExpiresAt      time.Time
}

// clone returns a deep copy safe to hand to a caller outside the store's lock.
func (s *Session) clone() *Session {
	cp := *s
	cp.Payload = append([]byte(nil), s.Payload...)
	return &cp
}
