package gainknob_test

import (
	"testing"

	"github.com/vsariola/gainknob"
)

func TestApplyGain32(t *testing.T) {
	in := [][]float32{{1, -1, 0.5}, {0.25, 0, -0.5}}
	out := [][]float32{make([]float32, 3), make([]float32, 3)}
	gainknob.ApplyGain32(in, out, 0.5)
	want := [][]float32{{0.5, -0.5, 0.25}, {0.125, 0, -0.25}}
	for c := range want {
		for i := range want[c] {
			if out[c][i] != want[c][i] {
				t.Errorf("out[%d][%d] = %v, want %v", c, i, out[c][i], want[c][i])
			}
		}
	}
}

func TestApplyGain64MismatchedSizes(t *testing.T) {
	in := [][]float64{{1, 2, 3, 4}}
	out := [][]float64{make([]float64, 2), make([]float64, 2)}
	gainknob.ApplyGain64(in, out, 2)
	if out[0][0] != 2 || out[0][1] != 4 {
		t.Errorf("out[0] = %v, want [2 4]", out[0])
	}
	if out[1][0] != 0 || out[1][1] != 0 {
		t.Errorf("out[1] = %v, want untouched", out[1])
	}
}
