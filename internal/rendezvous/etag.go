package rendezvous

import (
	"fmt"
	"sync"

	"github.com/mbd888/rendezvous/internal/idgen"
)

// ETagGenerator produces opaque, strong ETag tokens. Two tags for two
// distinct versions of the same session id never collide over the
// process lifetime: each session gets its own monotonic counter, suffixed
// with a random nonce so tags are not guessable across sessions either.
// The value is never parsed by the server beyond byte equality (§9
// "ETag opacity") — do not derive meaning from its structure.
type ETagGenerator struct {
	mu  sync.Mutex
	seq map[string]uint64
}

// NewETagGenerator returns an empty generator.
func NewETagGenerator() *ETagGenerator {
	return &ETagGenerator{seq: make(map[string]uint64)}
}

// Next returns the next tag for id, rendered as a quoted strong ETag
// (e.g. `"v3-f91c2a"`).
func (g *ETagGenerator) Next(id string) string {
	g.mu.Lock()
	g.seq[id]++
	n := g.seq[id]
	g.mu.Unlock()

	nonce := idgen.Hex(3)
	return fmt.Sprintf("%q", fmt.Sprintf("v%d-%s", n, nonce))
}

// Forget drops the per-session counter once id leaves the store (delete,
// TTL expiry, or eviction), bounding the generator's memory to live sessions.
func (g *ETagGenerator) Forget(id string) {
	g.mu.Lock()
	delete(g.seq, id)
	g.mu.Unlock()
}
