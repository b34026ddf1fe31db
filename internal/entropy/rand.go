// Package entropy provides the deterministic seeded pseudo-random source
// used by every stochastic system in the simulation. For a fixed
// (seed, tag) pair the result is bit-identical across calls, processes,
// and any other implementation of the same algorithm, which is what makes
// whole turns replayable from a seed string.
//
// The algorithm is fixed, not an implementation detail:
//
//	h   = FNV-1a 32-bit over (seed + ":" + tag)
//	      offset basis 2166136261, prime 16777619
//	x   = xorshift32(h): x ^= x<<13; x ^= x>>17; x ^= x<<5
//	out = x / 2^32, a float64 in [0, 1)
package entropy

const (
	fnvOffsetBasis uint32 = 2166136261
	fnvPrime       uint32 = 16777619
)

// Rand returns the generator for a seed string. The generator is pure:
// calling it twice with the same tag yields the identical float, and no
// state is shared between generators or calls.
func Rand(seed string) func(tag string) float64 {
	return func(tag string) float64 {
		x := xorshift32(fnv1a(seed + ":" + tag))
		return float64(x) / (1 << 32)
	}
}

// fnv1a hashes a string with the 32-bit FNV-1a function.
func fnv1a(s string) uint32 {
	h := fnvOffsetBasis
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}

// xorshift32 applies one step of Marsaglia's 13/17/5 xorshift.
func xorshift32(x uint32) uint32 {
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return x
}
