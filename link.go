package gainknob

import "errors"

type (
	// Link is the pair of bounded queues between the host/audio side and the
	// GUI. One queue carries host-originated updates to the GUI, the other
	// carries GUI-originated updates back to the host. Neither queue is ever
	// closed: an editor that goes away simply drops its references, so a send
	// racing with a close can never panic.
	Link struct {
		ToGUI  chan ParamUpdate
		ToHost chan ParamUpdate
	}

	// ParamUpdate is a single parameter change travelling over a Link. It is
	// passed by value, so sending one does not allocate.
	ParamUpdate struct {
		Dir   Direction
		Index int
		Value float64
	}

	Direction int

	// Sender is the producing end of one queue of a Link. The zero Sender is
	// detached.
	Sender struct {
		c chan<- ParamUpdate
	}

	// Receiver is the consuming end of one queue of a Link. The zero Receiver
	// is detached and always empty.
	Receiver struct {
		c <-chan ParamUpdate
	}

	// HostEnd is what the host side holds while an editor is open: it sends
	// to the GUI and receives from the GUI.
	HostEnd struct {
		Send Sender
		Recv Receiver
	}

	// GUIEnd is the mirror of HostEnd, owned by the GUI goroutine.
	GUIEnd struct {
		Send Sender
		Recv Receiver
	}
)

const (
	HostToGUI Direction = iota
	GUIToHost
)

// DefaultQueueCapacity is large enough to absorb a GUI frame's worth of host
// automation without loss.
const DefaultQueueCapacity = 128

var (
	ErrQueueFull = errors.New("queue full")
	ErrDetached  = errors.New("queue detached")
)

func NewLink(capacity int) Link {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return Link{
		ToGUI:  make(chan ParamUpdate, capacity),
		ToHost: make(chan ParamUpdate, capacity),
	}
}

func (l Link) HostEnd() HostEnd {
	return HostEnd{Send: Sender{c: l.ToGUI}, Recv: Receiver{c: l.ToHost}}
}

func (l Link) GUIEnd() GUIEnd {
	return GUIEnd{Send: Sender{c: l.ToHost}, Recv: Receiver{c: l.ToGUI}}
}

func GainUpdate(dir Direction, value float64) ParamUpdate {
	return ParamUpdate{Dir: dir, Index: 0, Value: value}
}

func (d Direction) String() string {
	switch d {
	case HostToGUI:
		return "host-to-gui"
	case GUIToHost:
		return "gui-to-host"
	}
	return "unknown"
}

func (s Sender) Attached() bool {
	return s.c != nil
}

// Send queues u without blocking. It returns ErrQueueFull if the queue is
// saturated; the caller is expected to log and drop the update.
func (s Sender) Send(u ParamUpdate) error {
	if s.c == nil {
		return ErrDetached
	}
	if !TrySend(s.c, u) {
		return ErrQueueFull
	}
	return nil
}

func (r Receiver) Attached() bool {
	return r.c != nil
}

// TryReceiveAll appends all currently queued updates to dst in FIFO order
// and returns the extended slice. It never blocks, and it takes at most one
// queue's worth of updates per call so that a fast producer cannot keep the
// caller looping.
func (r Receiver) TryReceiveAll(dst []ParamUpdate) []ParamUpdate {
	if r.c == nil {
		return dst
	}
	for n := cap(r.c); n > 0; n-- {
		select {
		case u := <-r.c:
			dst = append(dst, u)
		default:
			return dst
		}
	}
	return dst
}

// TrySend is a helper function to send a value to a channel if it is not full.
// It is guaranteed to be non-blocking. Return true if the value was sent, false
// otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}
