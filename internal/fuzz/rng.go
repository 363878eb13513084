// Package fuzz generates deterministic, labeled transcript variations for
// evaluation. The same seed and count always produce byte-identical output.
package fuzz

// Rand is a mulberry32 generator: 32-bit state, multiplicative mixing.
// It is not safe for concurrent use; fork one per stream.
type Rand struct {
	state uint32
}

// NewRand seeds a generator. Only the low 32 bits of seed are used.
func NewRand(seed int64) *Rand {
	return &Rand{state: uint32(seed)}
}

// Uint32 returns the next value in the stream
func (r *Rand) Uint32() uint32 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns a value in [0, 1)
func (r *Rand) Float64() float64 {
	return float64(r.Uint32()) / 4294967296
}

// Intn returns a value in [0, n). It panics if n <= 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		panic("fuzz: invalid argument to Intn")
	}
	return int(r.Float64() * float64(n))
}

// Chance reports true with probability p
func (r *Rand) Chance(p float64) bool {
	return r.Float64() < p
}

func pick[T any](r *Rand, items []T) T {
	return items[r.Intn(len(items))]
}
