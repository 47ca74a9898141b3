package rendezvous

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestETagGenerator_NextIsQuotedAndDistinct(t *testing.T) {
	g := NewETagGenerator()

	first := g.Next("sess-1")
	second := g.Next("sess-1")

	assert.NotEqual(t, first, second)
	assert.Equal(t, byte('"'), first[0])
	assert.Equal(t, byte('"'), first[len(first)-1])
}

func TestETagGenerator_DistinctSessionsDistinctTags(t *testing.T) {
	g := NewETagGenerator()

	a := g.Next("sess-a")
	b := g.Next("sess-b")
	assert.NotEqual(t, a, b)
}

func TestETagGenerator_ForgetResetsCounter(t *testing.T) {
	g := NewETagGenerator()

	first := g.Next("sess-1")
	g.Forget("sess-1")
	afterForget := g.Next("sess-1")

	// The counter restarts, so the two tags differ only by their random
	// 3-byte nonce.
	assert.NotEqual(t, first, afterForget)
}
