package editor_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"gioui.org/f32"
	"gioui.org/io/pointer"
	"github.com/vsariola/gainknob"
	"github.com/vsariola/gainknob/editor"
)

type fakeSurface struct {
	opts    editor.SurfaceOptions
	session *editor.Session
	done    chan struct{}
	closes  int
}

func (f *fakeSurface) Close() {
	f.closes++
	close(f.done)
}

func (f *fakeSurface) Done() <-chan struct{} { return f.done }

type fakeFactory struct {
	surfaces []*fakeSurface
	err      error
}

func (f *fakeFactory) New(opts editor.SurfaceOptions, end gainknob.GUIEnd) (editor.Surface, error) {
	if f.err != nil {
		return nil, f.err
	}
	s := &fakeSurface{opts: opts, session: editor.NewSession(end, nil), done: make(chan struct{})}
	f.surfaces = append(f.surfaces, s)
	return s, nil
}

func newEditor(gain float64) (*editor.Editor, *fakeFactory, *gainknob.Gain, *gainknob.Slots) {
	g := gainknob.NewGain(gain)
	slots := &gainknob.Slots{}
	f := &fakeFactory{}
	e := editor.New(g, slots, f.New, editor.Options{Title: "Gain", Width: 500, Height: 300, ParamName: "gain"}, nil)
	return e, f, g, slots
}

func TestOpenTwiceKeepsOneSurface(t *testing.T) {
	e, f, _, _ := newEditor(1)
	if !e.Open(0) {
		t.Fatal("first Open failed")
	}
	if e.Open(0) {
		t.Fatal("second Open succeeded")
	}
	if len(f.surfaces) != 1 {
		t.Fatalf("%d surfaces created, want 1", len(f.surfaces))
	}
	if !e.IsOpen() {
		t.Fatal("IsOpen() = false after Open")
	}
}

func TestOpenPrepopulatesCurrentGain(t *testing.T) {
	e, f, _, _ := newEditor(0.37)
	e.Open(0)
	s := f.surfaces[0].session
	if !s.Tick() {
		t.Fatal("first Tick saw no update")
	}
	if s.Knob.Committed() != 0.37 {
		t.Fatalf("GUI committed gain = %v, want 0.37", s.Knob.Committed())
	}
	if got := editor.FrameIndex(s.Knob.Displayed(), editor.DefaultFrames); got != 37 {
		t.Fatalf("frame = %d, want 37", got)
	}
	if s.Tick() {
		t.Fatal("second Tick reported a change with no new updates")
	}
}

func TestOpenPassesOptions(t *testing.T) {
	e, f, _, _ := newEditor(1)
	e.Open(42)
	got := f.surfaces[0].opts
	if got.Parent != 42 || got.Width != 500 || got.Height != 300 || got.ParamName != "gain" {
		t.Fatalf("surface options = %+v", got)
	}
	if w, h := e.Size(); w != 500 || h != 300 {
		t.Fatalf("Size() = %d, %d, want 500, 300", w, h)
	}
}

func TestOpenInstallsAndCloseClearsSlots(t *testing.T) {
	e, f, _, slots := newEditor(1)
	e.Open(0)
	if _, ok := slots.Sender(); !ok {
		t.Fatal("no sender installed after Open")
	}
	if _, ok := slots.Receiver(); !ok {
		t.Fatal("no receiver installed after Open")
	}
	e.Close()
	if _, ok := slots.Sender(); ok {
		t.Fatal("sender still installed after Close")
	}
	if _, ok := slots.Receiver(); ok {
		t.Fatal("receiver still installed after Close")
	}
	if f.surfaces[0].closes != 1 {
		t.Fatalf("surface closed %d times, want 1", f.surfaces[0].closes)
	}
	if e.IsOpen() {
		t.Fatal("IsOpen() = true after Close")
	}
	e.Close()
	if f.surfaces[0].closes != 1 {
		t.Fatal("second Close touched the old surface")
	}
	if e.Done() != nil {
		t.Fatal("Done() of a closed editor is not nil")
	}
}

func TestWindowClosedByUserDetaches(t *testing.T) {
	e, f, _, slots := newEditor(1)
	e.Open(0)
	close(f.surfaces[0].done)
	deadline := time.Now().Add(time.Second)
	for e.IsOpen() {
		if time.Now().After(deadline) {
			t.Fatal("editor still open after its surface went away")
		}
		time.Sleep(time.Millisecond)
	}
	if _, ok := slots.Sender(); ok {
		t.Fatal("sender still installed after the surface went away")
	}
	e.Close()
	if f.surfaces[0].closes != 0 {
		t.Fatal("Close touched a surface that was already gone")
	}
	if !e.Open(0) {
		t.Fatal("reopen failed")
	}
}

func TestReopenUsesFreshLink(t *testing.T) {
	e, f, g, _ := newEditor(0.1)
	e.Open(0)
	e.Close()
	g.Store(0.8)
	if !e.Open(0) {
		t.Fatal("reopen failed")
	}
	s := f.surfaces[1].session
	s.Tick()
	if s.Knob.Committed() != 0.8 {
		t.Fatalf("reopened GUI shows %v, want 0.8", s.Knob.Committed())
	}
}

func TestOpenFailureLeavesSlotsEmpty(t *testing.T) {
	e, f, _, slots := newEditor(1)
	f.err = errors.New("no display")
	if e.Open(0) {
		t.Fatal("Open succeeded although the surface failed")
	}
	if _, ok := slots.Sender(); ok {
		t.Fatal("sender installed after failed Open")
	}
	if e.IsOpen() {
		t.Fatal("IsOpen() = true after failed Open")
	}
}

func TestSessionSendsDragToHost(t *testing.T) {
	e, f, _, slots := newEditor(0.5)
	e.Open(0)
	s := f.surfaces[0].session
	s.Tick()
	s.Press(f32.Pt(0, 100))
	s.Move(f32.Pt(0, 80), 300)
	s.Release()
	rcv, _ := slots.Receiver()
	got := rcv.TryReceiveAll(nil)
	if len(got) != 2 {
		t.Fatalf("host received %d updates, want 2", len(got))
	}
	for _, u := range got {
		if u.Dir != gainknob.GUIToHost || !near(u.Value, 0.6) {
			t.Errorf("update %+v, want gui-to-host 0.6", u)
		}
	}
}

func TestSessionRejectedTransitionsAreHarmless(t *testing.T) {
	link := gainknob.NewLink(4)
	s := editor.NewSession(link.GUIEnd(), nil)
	s.Release()
	s.Move(f32.Pt(1, 1), 300)
	if s.Knob.State() != editor.Idle {
		t.Fatalf("state = %v, want Idle", s.Knob.State())
	}
	if got := link.HostEnd().Recv.TryReceiveAll(nil); len(got) != 0 {
		t.Fatalf("rejected transitions sent %v", got)
	}
}

func TestSessionDropsWhenHostQueueIsFull(t *testing.T) {
	link := gainknob.NewLink(1)
	s := editor.NewSession(link.GUIEnd(), nil)
	s.Press(f32.Pt(0, 100))
	for y := float32(99); y > 90; y-- {
		s.Move(f32.Pt(0, y), 300)
	}
	s.Release()
	if got := link.HostEnd().Recv.TryReceiveAll(nil); len(got) != 1 {
		t.Fatalf("host received %d updates, want 1", len(got))
	}
	if s.Knob.State() != editor.Idle {
		t.Fatal("full queue disturbed the knob state")
	}
}

// recorder keeps every log record for inspection.
type recorder struct {
	mu      sync.Mutex
	records []slog.Record
}

func (r *recorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *recorder) Handle(_ context.Context, rec slog.Record) error {
	r.mu.Lock()
	r.records = append(r.records, rec)
	r.mu.Unlock()
	return nil
}

func (r *recorder) WithAttrs([]slog.Attr) slog.Handler { return r }

func (r *recorder) WithGroup(string) slog.Handler { return r }

// dropped sums the "dropped" attribute of all warnings logged so far.
func (r *recorder) dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n uint64
	for _, rec := range r.records {
		if rec.Level != slog.LevelWarn {
			continue
		}
		rec.Attrs(func(a slog.Attr) bool {
			if a.Key == "dropped" {
				n += a.Value.Uint64()
			}
			return true
		})
	}
	return n
}

func (r *recorder) count(level slog.Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rec := range r.records {
		if rec.Level == level {
			n++
		}
	}
	return n
}

func TestCloseReportsDroppedUpdates(t *testing.T) {
	rec := &recorder{}
	slots := &gainknob.Slots{}
	f := &fakeFactory{}
	e := editor.New(gainknob.NewGain(1), slots, f.New, editor.Options{ReportInterval: time.Hour}, slog.New(rec))
	e.Open(0)
	for i := 0; i < 3; i++ {
		slots.CountDropped()
	}
	e.Close()
	if got := rec.dropped(); got != 3 {
		t.Fatalf("reported %d dropped updates, want 3", got)
	}
	if slots.TakeDropped() != 0 {
		t.Fatal("drop counter not reset after reporting")
	}
}

func TestOpenEditorReportsDroppedUpdatesPeriodically(t *testing.T) {
	rec := &recorder{}
	slots := &gainknob.Slots{}
	f := &fakeFactory{}
	e := editor.New(gainknob.NewGain(1), slots, f.New, editor.Options{ReportInterval: 5 * time.Millisecond}, slog.New(rec))
	e.Open(0)
	defer e.Close()
	slots.CountDropped()
	slots.CountDropped()
	deadline := time.Now().Add(time.Second)
	for rec.dropped() != 2 {
		if time.Now().After(deadline) {
			t.Fatalf("reported %d dropped updates, want 2", rec.dropped())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSecondButtonDoesNotEndDrag(t *testing.T) {
	rec := &recorder{}
	link := gainknob.NewLink(16)
	s := editor.NewSession(link.GUIEnd(), slog.New(rec))
	s.Knob.HostUpdate(0.5)
	both := pointer.ButtonPrimary | pointer.ButtonSecondary
	events := []pointer.Event{
		{Kind: pointer.Press, Buttons: pointer.ButtonPrimary, Position: f32.Pt(0, 100)},
		{Kind: pointer.Press, Buttons: both, Position: f32.Pt(0, 100)},
		{Kind: pointer.Drag, Buttons: both, Position: f32.Pt(0, 80)},
		{Kind: pointer.Release, Buttons: pointer.ButtonPrimary, Position: f32.Pt(0, 80)},
	}
	for _, e := range events {
		s.HandlePointer(e, 300)
	}
	if s.Knob.State() != editor.Dragging {
		t.Fatalf("state = %v after releasing the second button, want Dragging", s.Knob.State())
	}
	if n := rec.count(slog.LevelError); n != 0 {
		t.Fatalf("%d errors logged for a second button press", n)
	}
	s.HandlePointer(pointer.Event{Kind: pointer.Release, Position: f32.Pt(0, 80)}, 300)
	if s.Knob.State() != editor.Idle {
		t.Fatalf("state = %v after releasing the primary button, want Idle", s.Knob.State())
	}
	if !near(s.Knob.Committed(), 0.6) {
		t.Fatalf("committed = %v, want 0.6", s.Knob.Committed())
	}
}

func TestSecondaryButtonAloneDoesNotDrag(t *testing.T) {
	link := gainknob.NewLink(4)
	s := editor.NewSession(link.GUIEnd(), nil)
	s.HandlePointer(pointer.Event{Kind: pointer.Press, Buttons: pointer.ButtonSecondary}, 300)
	if s.Knob.State() != editor.Idle {
		t.Fatalf("state = %v, want Idle", s.Knob.State())
	}
}

func TestPointerCancelAbortsDrag(t *testing.T) {
	link := gainknob.NewLink(8)
	s := editor.NewSession(link.GUIEnd(), nil)
	s.Knob.HostUpdate(0.5)
	s.HandlePointer(pointer.Event{Kind: pointer.Press, Buttons: pointer.ButtonPrimary, Position: f32.Pt(0, 100)}, 300)
	s.HandlePointer(pointer.Event{Kind: pointer.Drag, Buttons: pointer.ButtonPrimary, Position: f32.Pt(0, 0)}, 300)
	s.HandlePointer(pointer.Event{Kind: pointer.Cancel}, 300)
	if s.Knob.State() != editor.Idle || s.Knob.Committed() != 0.5 {
		t.Fatalf("after cancel: state %v committed %v, want Idle 0.5", s.Knob.State(), s.Knob.Committed())
	}
}
