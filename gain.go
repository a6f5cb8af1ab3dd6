package gainknob

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Gain is the committed value of the gain parameter. It is read by the audio
// callback on every buffer and written by both the host and the audio-side
// consumer of GUI updates, so all access goes through a single atomic word;
// there is no lock that could be held across a scheduling point.
type Gain struct {
	bits atomic.Uint64
}

const (
	MinGain = 0.0
	MaxGain = 1.0
)

func NewGain(value float64) *Gain {
	g := &Gain{}
	g.Store(value)
	return g
}

func (g *Gain) Load() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Store clamps value to [MinGain, MaxGain] and stores it. NaN is stored as
// MinGain.
func (g *Gain) Store(value float64) {
	g.bits.Store(math.Float64bits(ClampGain(value)))
}

func ClampGain(value float64) float64 {
	if math.IsNaN(value) {
		return MinGain
	}
	return min(max(value, MinGain), MaxGain)
}

// Decibels converts a linear gain to decibels. Zero gain gives -Inf.
func Decibels(gain float64) float64 {
	return 20 * math.Log10(gain)
}

func FormatDecibels(gain float64) string {
	return fmt.Sprintf("%.1f dB", Decibels(gain))
}
