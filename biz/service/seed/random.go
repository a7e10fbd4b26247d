package seed

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

// Rand is the seeded generator threaded through every generation step.
// Two Rands built from the same seed produce the same sequence.
type Rand struct {
	src *rand.ChaCha8
	r   *rand.Rand
}

// NewRand returns a generator seeded with seed.
func NewRand(seed uint64) *Rand {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	src := rand.NewChaCha8(key)
	return &Rand{src: src, r: rand.New(src)}
}

// IntN returns a value in [0, n).
func (g *Rand) IntN(n int) int {
	return g.r.IntN(n)
}

// IntRange returns a value in [lo, hi).
func (g *Rand) IntRange(lo, hi int) int {
	return lo + g.r.IntN(hi-lo)
}

// Float64 returns a value in [0, 1).
func (g *Rand) Float64() float64 {
	return g.r.Float64()
}

// FloatRange returns a value in [lo, hi).
func (g *Rand) FloatRange(lo, hi float64) float64 {
	return lo + g.r.Float64()*(hi-lo)
}

// Chance reports true with probability p.
func (g *Rand) Chance(p float64) bool {
	return g.r.Float64() < p
}

// Hex8 returns eight lowercase hex characters drawn from the generator.
func (g *Rand) Hex8() string {
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		// ChaCha8.Read never fails.
		panic(err)
	}
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](g *Rand, items []T) T {
	return items[g.r.IntN(len(items))]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
