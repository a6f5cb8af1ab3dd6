package editor

import (
	"errors"
	"log/slog"

	"gioui.org/f32"
	"gioui.org/io/pointer"
	"github.com/vsariola/gainknob"
)

// Session is the GUI side of an open editor: the knob state plus the GUI end
// of the Link. The surface calls Tick once per frame and forwards pointer
// input to Press, Move, Release and Cancel, all from the same goroutine.
type Session struct {
	Knob *Knob

	end     gainknob.GUIEnd
	pending []gainknob.ParamUpdate
	logger  *slog.Logger
}

func NewSession(end gainknob.GUIEnd, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Session{
		end:     end,
		pending: make([]gainknob.ParamUpdate, 0, gainknob.DefaultQueueCapacity),
		logger:  logger,
	}
	s.Knob = NewKnob(0, s.send)
	return s
}

// Tick applies every host update that has arrived since the previous tick.
// It reports whether the knob needs to be redrawn.
func (s *Session) Tick() bool {
	s.pending = s.end.Recv.TryReceiveAll(s.pending[:0])
	for _, u := range s.pending {
		s.logger.Debug("relaying update to gui", "dir", u.Dir, "index", u.Index, "value", u.Value)
		if u.Index != 0 {
			continue
		}
		s.Knob.HostUpdate(u.Value)
	}
	return len(s.pending) > 0
}

// HandlePointer maps a pointer event onto the knob. The drag belongs to the
// primary button: other buttons pressed or released during it are ignored.
func (s *Session) HandlePointer(e pointer.Event, windowHeight float32) {
	dragging := s.Knob.State() == Dragging
	primary := e.Buttons.Contain(pointer.ButtonPrimary)
	switch e.Kind {
	case pointer.Press:
		if !dragging && primary {
			s.Press(e.Position)
		}
	case pointer.Drag:
		if dragging {
			s.Move(e.Position, windowHeight)
		}
	case pointer.Release:
		if dragging && !primary {
			s.Release()
		}
	case pointer.Cancel:
		s.Cancel()
	}
}

func (s *Session) Press(pos f32.Point) {
	if err := s.Knob.Press(pos); err != nil {
		s.logger.Error("unable to start adjusting knob", "err", err)
		return
	}
	s.logger.Debug("knob state", "state", s.Knob.State())
}

func (s *Session) Move(pos f32.Point, windowHeight float32) {
	if err := s.Knob.Move(pos, windowHeight); err != nil {
		s.logger.Error("unable to adjust knob", "err", err)
	}
}

func (s *Session) Release() {
	if err := s.Knob.Release(); err != nil {
		s.logger.Error("unable to stop adjusting knob", "err", err)
		return
	}
	s.logger.Debug("knob state", "state", s.Knob.State())
}

func (s *Session) Cancel() {
	s.Knob.Cancel()
}

func (s *Session) send(value float64) {
	err := s.end.Send.Send(gainknob.GainUpdate(gainknob.GUIToHost, value))
	switch {
	case errors.Is(err, gainknob.ErrQueueFull):
		s.logger.Warn("failed to send update message", "value", value, "err", err)
	case err != nil:
		s.logger.Debug("dropping update message", "value", value, "err", err)
	}
}
