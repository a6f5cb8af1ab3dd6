package oto

import (
	"encoding/binary"
	"math"

	"github.com/vsariola/gainknob"
)

// FloatBufferToBytes writes buff as interleaved 32-bit little-endian floats
// into dst and returns the number of bytes written. Frames that do not fit
// into dst are skipped.
func FloatBufferToBytes(buff gainknob.AudioBuffer, dst []byte) int {
	frames := min(len(buff), len(dst)/frameBytes)
	for i := range frames {
		o := i * frameBytes
		binary.LittleEndian.PutUint32(dst[o:], math.Float32bits(buff[i][0]))
		binary.LittleEndian.PutUint32(dst[o+bytesPerVal:], math.Float32bits(buff[i][1]))
	}
	return frames * frameBytes
}
