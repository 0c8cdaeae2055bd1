// Package rng provides the deterministic pseudo-random stream used for
// content assignment and event outcomes. The generator is a Park-Miller
// multiplicative congruential generator; state is threaded explicitly as
// (seed) -> (value, nextSeed) so every caller stays a pure function and
// any draw can be replayed from a persisted seed.
package rng

const (
	multiplier = 16807
	modulus    = 2147483647 // 2^31 - 1, prime
)

// Normalize coerces an arbitrary seed into the generator's valid range.
// Callers may pass raw user input, timestamps, or derived sums; zero and
// negative values map onto the positive stream.
func Normalize(seed int64) int64 {
	if seed < 0 {
		seed = -seed
	}
	seed %= modulus
	if seed == 0 {
		seed = 1
	}
	return seed
}

// Next advances the stream one step and returns the successor seed.
func Next(seed int64) int64 {
	return Normalize(seed) * multiplier % modulus
}

// Float draws one value in [0, 1) and returns it with the advanced seed.
func Float(seed int64) (float64, int64) {
	next := Next(seed)
	return float64(next) / modulus, next
}

// Roll draws one percentile value in [0, 100) and returns it with the
// advanced seed. Used for weighted-branch selection.
func Roll(seed int64) (float64, int64) {
	v, next := Float(seed)
	return v * 100, next
}

// IntN draws an integer in [0, n) and returns it with the advanced seed.
// n must be positive.
func IntN(seed int64, n int) (int, int64) {
	v, next := Float(seed)
	return int(v * float64(n)), next
}

// HashKey reduces a string key to a stable numeric value: the sum of its
// byte values times 137. Combined with a run seed it yields a per-node
// stream that is independent of draw order elsewhere in the run.
func HashKey(key string) int64 {
	var sum int64
	for i := 0; i < len(key); i++ {
		sum += int64(key[i])
	}
	return sum * 137
}

// SeedFor derives the deterministic sub-stream seed for a string key,
// such as a map node id. The combined seed is advanced one step so
// adjacent roots and adjacent keys land on unrelated streams.
func SeedFor(root int64, key string) int64 {
	return Next(root + HashKey(key))
}
