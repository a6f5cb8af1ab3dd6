package oto

import (
	"fmt"
	"io"

	"github.com/ebitengine/oto/v3"
	"github.com/vsariola/gainknob"
)

const (
	SampleRate  = 44100
	channels    = 2
	bytesPerVal = 4
	frameBytes  = channels * bytesPerVal
)

type (
	OtoContext struct {
		context *oto.Context
	}

	// OtoReader pulls audio from a process function whenever the oto player
	// needs more data. Read runs on oto's audio goroutine.
	OtoReader struct {
		process func(buf gainknob.AudioBuffer) error
		buf     gainknob.AudioBuffer
	}

	OtoPlayer struct {
		player *oto.Player
	}
)

// NewContext creates and initializes a new oto context. Only one can exist per
// process.
func NewContext() (*OtoContext, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
	}
	context, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &OtoContext{context: context}, nil
}

// Play starts pulling audio from process. Returning an error from process
// stops playback.
func (c *OtoContext) Play(process func(buf gainknob.AudioBuffer) error) io.Closer {
	p := c.context.NewPlayer(NewReader(process))
	p.Play()
	return &OtoPlayer{player: p}
}

func (p *OtoPlayer) Close() error {
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}

func NewReader(process func(buf gainknob.AudioBuffer) error) *OtoReader {
	return &OtoReader{process: process}
}

func (r *OtoReader) Read(p []byte) (n int, err error) {
	frames := len(p) / frameBytes
	if frames == 0 {
		return 0, io.ErrShortBuffer
	}
	if cap(r.buf) < frames {
		r.buf = make(gainknob.AudioBuffer, frames)
	}
	r.buf = r.buf[:frames]
	if err := r.process(r.buf); err != nil {
		return 0, err
	}
	return FloatBufferToBytes(r.buf, p), nil
}
