package gacha

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"errors"
	"math"
	"math/rand/v2"
)

var ErrInvalidProb = errors.New("invalid probability p; must be 0..1")

// RandomSource yields uniform floats in [0, 1).
type RandomSource interface {
	Float64() float64
}

// crypto random: default source when the caller does not care about replay
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// replayable source for simulations and tests
type seededRNG struct{ r *rand.Rand }

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

// Draw is one Bernoulli trial with success probability p.
// p <= 0 never hits, p >= 1 always hits.
func Draw(p float64, rng RandomSource) (bool, error) {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > 1 {
		return false, ErrInvalidProb
	}
	if p == 0 {
		return false, nil
	}
	if p == 1 {
		return true, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return rng.Float64() < p, nil
}
