package gainknob

import (
	"github.com/viterin/vek"
	"github.com/viterin/vek/vek32"
)

// AudioBuffer is a buffer of interleaved stereo frames, as produced and
// consumed by audio outputs.
type AudioBuffer [][2]float32

// ApplyGain32 writes in*gain to out channel by channel. Channels and frames
// beyond the shorter of in and out are left untouched.
func ApplyGain32(in, out [][]float32, gain float32) {
	for c := range min(len(in), len(out)) {
		n := min(len(in[c]), len(out[c]))
		if n == 0 {
			continue
		}
		vek32.MulNumber_Into(out[c][:n], in[c][:n], gain)
	}
}

// ApplyGain64 is the double precision version of ApplyGain32.
func ApplyGain64(in, out [][]float64, gain float64) {
	for c := range min(len(in), len(out)) {
		n := min(len(in[c]), len(out[c]))
		if n == 0 {
			continue
		}
		vek.MulNumber_Into(out[c][:n], in[c][:n], gain)
	}
}
