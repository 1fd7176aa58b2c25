package wav

import (
	"fmt"
	"math"
)

const (
	// SampleRate is the fixed output rate in Hz.
	SampleRate = 44100
	// DefaultCapacity is the number of samples a Buffer holds by default.
	DefaultCapacity = 1_000_000
)

// CapacityError is returned when appending to a full Buffer.
type CapacityError struct {
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("wave buffer capacity exceeded (%d samples)", e.Capacity)
}

// Buffer accumulates 16-bit PCM samples up to a fixed capacity.
type Buffer struct {
	samples  []int16
	capacity int
}

// NewBuffer returns an empty buffer. A non-positive capacity selects
// DefaultCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{capacity: capacity}
}

// Append converts sample to PCM and stores it.
func (b *Buffer) Append(sample float64) error {
	return b.AppendPCM(ToPCM16(sample))
}

func (b *Buffer) AppendPCM(v int16) error {
	if len(b.samples) >= b.capacity {
		return &CapacityError{Capacity: b.capacity}
	}
	b.samples = append(b.samples, v)
	return nil
}

func (b *Buffer) Len() int { return len(b.samples) }

func (b *Buffer) Cap() int { return b.capacity }

// Samples returns the written samples. The slice aliases the buffer.
func (b *Buffer) Samples() []int16 { return b.samples }

func (b *Buffer) Reset() { b.samples = b.samples[:0] }

// ToPCM16 maps a sample in [-1, 1] to a signed 16-bit value, rounding to
// nearest and clamping out-of-range input. NaN maps to silence.
func ToPCM16(sample float64) int16 {
	if math.IsNaN(sample) {
		return 0
	}
	scaled := math.Round(sample * 32768)
	if scaled > math.MaxInt16 {
		return math.MaxInt16
	}
	if scaled < math.MinInt16 {
		return math.MinInt16
	}
	return int16(scaled)
}
