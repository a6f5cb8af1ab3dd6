package editor

import (
	"errors"
	"fmt"
	"math"

	"gioui.org/f32"
	"github.com/vsariola/gainknob"
)

type (
	// Knob is the interaction state of the gain knob. It keeps a local copy
	// of the committed gain, which may lag behind the host, and while a drag
	// is in progress a proposed gain that overrides it for display.
	//
	// Every change the user makes is reported to the emit function given to
	// NewKnob. Knob is not safe for concurrent use; it lives on the GUI
	// goroutine.
	Knob struct {
		state       KnobState
		committed   float64
		proposed    float64
		hasProposed bool
		dragStart   f32.Point
		emit        func(value float64)
	}

	KnobState int
)

const (
	Idle KnobState = iota
	Dragging
)

// DefaultFrames is the number of discrete positions the knob is drawn with.
const DefaultFrames = 100

// dragScale is the fraction of the window height a drag has to travel to
// sweep the whole range.
const dragScale = 1.5

var ErrTransitionRejected = errors.New("state transition rejected")

func NewKnob(committed float64, emit func(value float64)) *Knob {
	if emit == nil {
		emit = func(float64) {}
	}
	return &Knob{committed: gainknob.ClampGain(committed), emit: emit}
}

func (s KnobState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Dragging:
		return "Dragging"
	}
	return fmt.Sprintf("KnobState(%d)", int(s))
}

func (k *Knob) State() KnobState { return k.state }

func (k *Knob) Committed() float64 { return k.committed }

func (k *Knob) Proposed() (float64, bool) { return k.proposed, k.hasProposed }

// Displayed is the value the knob should be drawn at.
func (k *Knob) Displayed() float64 {
	if k.hasProposed {
		return k.proposed
	}
	return k.committed
}

// Press starts a drag gesture at pos.
func (k *Knob) Press(pos f32.Point) error {
	if k.state != Idle {
		return fmt.Errorf("press in state %v: %w", k.state, ErrTransitionRejected)
	}
	k.state = Dragging
	k.dragStart = pos
	return nil
}

// Move updates the drag gesture. Dragging upwards by windowHeight/1.5 pixels
// raises the gain by the full range. The new value is always computed from
// the committed gain and the total distance from the drag start, and it is
// emitted on every call so that the host can record the drag as it happens.
func (k *Knob) Move(pos f32.Point, windowHeight float32) error {
	if k.state != Dragging {
		return fmt.Errorf("move in state %v: %w", k.state, ErrTransitionRejected)
	}
	if windowHeight <= 0 {
		return nil
	}
	delta := k.dragStart.Y - pos.Y
	percent := float64(delta) / (float64(windowHeight) / dragScale)
	value := gainknob.ClampGain(k.committed + percent)
	k.proposed, k.hasProposed = value, true
	k.emit(value)
	return nil
}

// Release ends the drag gesture and commits the proposed gain. A release
// without any movement re-emits the committed gain so that the host ends up
// consistent with the knob.
func (k *Knob) Release() error {
	if k.state != Dragging {
		return fmt.Errorf("release in state %v: %w", k.state, ErrTransitionRejected)
	}
	k.state = Idle
	k.dragStart = f32.Point{}
	if k.hasProposed {
		k.committed = k.proposed
	}
	k.proposed, k.hasProposed = 0, false
	k.emit(k.committed)
	return nil
}

// Cancel aborts the drag gesture. The proposed gain is discarded and the
// committed gain is re-emitted, undoing whatever the drag already sent.
func (k *Knob) Cancel() {
	if k.state != Dragging {
		return
	}
	k.state = Idle
	k.dragStart = f32.Point{}
	k.proposed, k.hasProposed = 0, false
	k.emit(k.committed)
}

// HostUpdate replaces the committed gain with a value coming from the host
// and drops any proposed gain. This happens in every state: an automation
// event during a drag resets the drag's visual feedback to the host value.
func (k *Knob) HostUpdate(value float64) {
	k.committed = gainknob.ClampGain(value)
	k.proposed, k.hasProposed = 0, false
}

// FrameIndex maps gain linearly onto frames discrete knob positions.
func FrameIndex(gain float64, frames int) int {
	if frames <= 0 {
		return 0
	}
	i := int(math.Floor(float64(frames) * gainknob.ClampGain(gain)))
	return min(max(i, 0), frames-1)
}
