package gioui

import (
	"image"
	"log/slog"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/vsariola/gainknob"
	"github.com/vsariola/gainknob/editor"
)

// Surface is a gio window showing the gain knob. The window runs its own
// goroutine; everything that touches the Session happens there.
//
// gio cannot reparent its windows into a host-provided window, so the
// surface opens a top level window and the parent handle is ignored.
type Surface struct {
	session *editor.Session
	theme   *Theme
	prefs   Preferences
	title   string
	width   int
	height  int
	param   string
	logger  *slog.Logger

	// closeGUI has a capacity of 1, so a close request never blocks. If it
	// is already full, the window is already closing. finished is closed
	// when the window goroutine is done.
	closeGUI chan struct{}
	finished chan struct{}
}

const closeTimeout = 3 * time.Second

// NewFactory returns an editor.SurfaceFactory that opens gio windows.
func NewFactory(prefs Preferences, logger *slog.Logger) editor.SurfaceFactory {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return func(opts editor.SurfaceOptions, end gainknob.GUIEnd) (editor.Surface, error) {
		theme, err := NewTheme(prefs)
		if err != nil {
			logger.Warn("gui: missing icons", "err", err)
		}
		title, err := prefs.WindowTitle(opts.Title, opts.ParamName)
		if err != nil {
			logger.Warn("gui: bad window title", "err", err)
		}
		if opts.Parent != 0 {
			logger.Info("gui: opening a top level window instead of embedding", "parent", opts.Parent)
		}
		s := &Surface{
			session:  editor.NewSession(end, logger),
			theme:    theme,
			prefs:    prefs,
			title:    title,
			width:    opts.Width,
			height:   opts.Height,
			param:    opts.ParamName,
			logger:   logger,
			closeGUI: make(chan struct{}, 1),
			finished: make(chan struct{}),
		}
		go s.main()
		return s, nil
	}
}

// Close asks the window to close and waits for its goroutine to finish, for
// at most a few seconds.
func (s *Surface) Close() {
	gainknob.TrySend(s.closeGUI, struct{}{})
	select {
	case <-s.finished:
	case <-time.After(closeTimeout):
		s.logger.Warn("gui: window did not close in time")
	}
}

func (s *Surface) Done() <-chan struct{} {
	return s.finished
}

func (s *Surface) main() {
	defer close(s.finished)
	defer gainknob.RecoverPanic(s.logger, "gui")
	w := new(app.Window)
	w.Option(app.Title(s.title), app.Size(unit.Dp(s.width), unit.Dp(s.height)))
	acks := make(chan struct{})
	events := make(chan event.Event)
	go func() {
		for {
			ev := w.Event()
			events <- ev
			<-acks
			if _, ok := ev.(app.DestroyEvent); ok {
				return
			}
		}
	}()
	ticker := time.NewTicker(s.prefs.TickInterval())
	defer ticker.Stop()
	var ops op.Ops
	for {
		select {
		case <-s.closeGUI:
			w.Perform(system.ActionClose)
		case <-ticker.C:
			if s.session.Tick() {
				w.Invalidate()
			}
		case e := <-events:
			switch e := e.(type) {
			case app.DestroyEvent:
				if e.Err != nil {
					s.logger.Error("gui: window destroyed", "err", e.Err)
				} else {
					s.logger.Debug("gui: window destroyed")
				}
				acks <- struct{}{}
				return
			case app.FrameEvent:
				s.session.Tick()
				gtx := app.NewContext(&ops, e)
				s.Layout(gtx)
				e.Frame(gtx.Ops)
			}
			acks <- struct{}{}
		}
	}
}

func (s *Surface) Layout(gtx C) D {
	s.update(gtx)
	paint.Fill(gtx.Ops, s.theme.Bg)
	area := clip.Rect(image.Rectangle{Max: gtx.Constraints.Max}).Push(gtx.Ops)
	// the whole window is the drag area
	event.Op(gtx.Ops, s)
	area.Pop()
	k := Knob(s.theme, s.session.Knob, s.param, s.prefs.Frames)
	return layout.Center.Layout(gtx, k.Layout)
}

func (s *Surface) update(gtx C) {
	height := float32(gtx.Constraints.Max.Y)
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: s,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		s.session.HandlePointer(e, height)
	}
}
