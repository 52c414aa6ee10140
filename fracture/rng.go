package fracture

import "math/rand"

// defaultRNGSeed is used when callers pass seed==0, keeping the default
// traversal reproducible.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}
	return rand.New(rand.NewSource(s))
}

// sampleOffset draws uniformly from [lo, hi).
func sampleOffset(s Sampler, lo, hi float64) float64 {
	return lo + (hi-lo)*s.Float64()
}
