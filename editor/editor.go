package editor

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vsariola/gainknob"
)

type (
	// Surface is an open GUI window showing a Session. Close tears the
	// window down and returns once the GUI goroutine has stopped touching
	// the Session. Done is closed when the surface goes away, whether by
	// Close or because the user closed the window.
	Surface interface {
		Close()
		Done() <-chan struct{}
	}

	// SurfaceFactory opens a new surface bound to the GUI end of a Link.
	SurfaceFactory func(opts SurfaceOptions, end gainknob.GUIEnd) (Surface, error)

	SurfaceOptions struct {
		Title     string
		Width     int
		Height    int
		Parent    uintptr
		ParamName string
	}

	Options struct {
		Title         string
		Width, Height int
		ParamName     string
		QueueCapacity int
		// ReportInterval is how often updates dropped on the way to the GUI
		// are logged. Zero means DefaultReportInterval.
		ReportInterval time.Duration
	}

	// Editor manages the open/closed lifecycle of the GUI. While open it owns
	// a fresh Link whose host end is published in the shared Slots; Close
	// removes it from there before returning, so the host never sees a
	// handle that outlives its editor.
	Editor struct {
		mu      sync.Mutex
		surface Surface

		gain       *gainknob.Gain
		slots      *gainknob.Slots
		newSurface SurfaceFactory
		opts       Options
		logger     *slog.Logger
	}
)

const DefaultReportInterval = time.Second

func New(gain *gainknob.Gain, slots *gainknob.Slots, newSurface SurfaceFactory, opts Options, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Editor{
		gain:       gain,
		slots:      slots,
		newSurface: newSurface,
		opts:       opts,
		logger:     logger,
	}
}

func (e *Editor) Size() (width, height int) {
	return e.opts.Width, e.opts.Height
}

// Open creates the GUI as a child of parent. It returns false if the editor
// is already open or the surface could not be created.
func (e *Editor) Open(parent uintptr) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.logger.Info("editor: open")
	if e.surface != nil {
		return false
	}
	if e.newSurface == nil {
		e.logger.Error("editor: no surface factory")
		return false
	}
	link := gainknob.NewLink(e.opts.QueueCapacity)
	// the new GUI starts from the current value instead of waiting for the
	// next automation event; the queue is empty so this cannot fail
	link.ToGUI <- gainknob.GainUpdate(gainknob.HostToGUI, e.gain.Load())
	surface, err := e.newSurface(SurfaceOptions{
		Title:     e.opts.Title,
		Width:     e.opts.Width,
		Height:    e.opts.Height,
		Parent:    parent,
		ParamName: e.opts.ParamName,
	}, link.GUIEnd())
	if err != nil {
		e.logger.Error("editor: cannot open surface", "err", fmt.Errorf("open editor: %w", err))
		return false
	}
	e.slots.Install(link.HostEnd())
	e.surface = surface
	go e.watch(surface)
	return true
}

// watch reports dropped updates while the surface is open and detaches the
// editor when the user closes the window on their own.
func (e *Editor) watch(s Surface) {
	interval := e.opts.ReportInterval
	if interval <= 0 {
		interval = DefaultReportInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	done := s.Done()
	for {
		select {
		case <-ticker.C:
			e.mu.Lock()
			current := e.surface == s
			e.mu.Unlock()
			if !current {
				return
			}
			e.reportDropped()
		case <-done:
			e.mu.Lock()
			defer e.mu.Unlock()
			if e.surface != s {
				return
			}
			e.logger.Info("editor: surface went away")
			e.surface = nil
			e.slots.Clear()
			e.reportDropped()
			return
		}
	}
}

func (e *Editor) reportDropped() {
	if n := e.slots.TakeDropped(); n > 0 {
		e.logger.Warn("unable to send updates to gui", "dropped", n)
	}
}

// Close tears down the GUI and detaches its Link. It is safe to call at any
// time, including in the middle of a drag; whatever the drag proposed but did
// not commit is discarded with the Session.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.logger.Info("editor: close")
	if e.surface == nil {
		return
	}
	e.surface.Close()
	e.surface = nil
	e.slots.Clear()
	e.reportDropped()
}

func (e *Editor) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.surface != nil
}

// Done returns the Done channel of the open surface, or nil if the editor is
// closed.
func (e *Editor) Done() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.surface == nil {
		return nil
	}
	return e.surface.Done()
}
