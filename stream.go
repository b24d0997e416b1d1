package montecarlo

import (
	"math/rand"

	"gonum.org/v1/gonum/mathext/prng"
)

// Stream is the private generator state of one worker.
// It is advanced by every draw and must not be shared between goroutines.
type Stream struct {
	mt *prng.MT19937
}

// NewStream returns a Mersenne Twister stream initialized from seed.
func NewStream(seed uint32) *Stream {
	mt := prng.NewMT19937()
	mt.Seed(uint64(seed))
	return &Stream{mt: mt}
}

// Uint32 returns the next 32 random bits.
func (s *Stream) Uint32() uint32 {
	return s.mt.Uint32()
}

// Float64 returns a value uniformly distributed on the closed interval [0,1].
func (s *Stream) Float64() float64 {
	return float64(s.mt.Uint32()) * (1.0 / 4294967295.0)
}

// Seeds draws n pairwise distinct stream seeds from a single entropy source.
// It must be called from one goroutine before the workers start: entropy is not touched afterwards.
func Seeds(entropy *rand.Rand, n int) []uint32 {
	seeds := make([]uint32, 0, n)
	seen := make(map[uint32]struct{}, n)

	for len(seeds) < n {
		s := entropy.Uint32()
		if _, ok := seen[s]; ok {
			continue
		}

		seen[s] = struct{}{}
		seeds = append(seeds, s)
	}

	return seeds
}

// Sampler draws one sample of the quantity being estimated from the caller's stream.
// A sampler is called concurrently for different streams, but never for the same one.
type Sampler func(s *Stream) float64

// Uniform draws a sample uniformly from [0,1]. Its expectation is 1/2.
func Uniform(s *Stream) float64 {
	return s.Float64()
}
