package rendezvous

import "context"

// Store holds rendezvous sessions by id, enforces capacity, and owns
// eviction. Every method executes atomically with respect to the others;
// implementations must guard state with a single mutex rather than relying
// on caller-side synchronization.
type Store interface {
	// Create allocates a new session holding payload under contentType
	// (DefaultContentType if empty). Returns ErrPayloadTooLarge if payload
	// exceeds the configured max content length.
	Create(ctx context.Context, contentType string, payload []byte) (*Session, error)

	// Get looks up id. If ifNoneMatch is non-empty and equals the current
	// etag, returns the session alongside ErrNotModified (callers can still
	// read Session.ETag off the returned value). Returns ErrNotFound if no
	// live session exists. Does not refresh expiry.
	Get(ctx context.Context, id, ifNoneMatch string) (*Session, error)

	// Update replaces the payload of id, subject to optimistic concurrency:
	// ifMatch is mandatory (ErrPreconditionRequired if empty) and must equal
	// the current etag (ErrConcurrentWrite otherwise). Refreshes
	// last_modified_at and expires_at and issues a new etag on success.
	Update(ctx context.Context, id, ifMatch, contentType string, payload []byte) (*Session, error)

	// Delete removes id if present. Returns ErrNotFound if no live session
	// existed; callers at the HTTP layer treat this as idempotent (204
	// either way — see the Open Question decision in SPEC_FULL.md §12).
	Delete(ctx context.Context, id string) error

	// Len reports the number of live sessions currently held.
	Len() int
}
