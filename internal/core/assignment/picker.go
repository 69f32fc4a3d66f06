package assignment

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"time"
)

// Picker chooses among equally good placements.
// NextIndex must return a value in [0, n) for n > 0.
type Picker interface {
	NextIndex(n int) int
}

// PickerFunc adapts a function to Picker.
type PickerFunc func(n int) int

// NextIndex calls f(n).
func (f PickerFunc) NextIndex(n int) int {
	return f(n)
}

type randomPicker struct {
	rng *rand.Rand
}

// NewPicker returns a uniform picker seeded from the wall clock mixed with an
// independent random source, so rapid successive calls do not share a seed.
func NewPicker() Picker {
	return NewSeededPicker(uint64(time.Now().UnixNano()), entropy())
}

// NewSeededPicker returns a uniform picker with a fixed seed.
func NewSeededPicker(seed1, seed2 uint64) Picker {
	return &randomPicker{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

func (p *randomPicker) NextIndex(n int) int {
	return p.rng.IntN(n)
}

func entropy() uint64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// crypto/rand only fails on a broken platform; the runtime source still decorrelates seeds.
		return rand.Uint64()
	}
	return binary.LittleEndian.Uint64(buf[:])
}
