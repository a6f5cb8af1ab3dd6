package gainknob

import (
	"sync"
	"sync/atomic"
)

// Slots holds the host side of the Link of the currently open editor, or
// nothing when no editor is open. The lock only ever guards swapping the
// handles; sends and receives happen on copies taken outside of it.
//
// Readers use TryRLock: the audio thread must not wait for an editor that is
// in the middle of opening or closing, so a held write lock reads as "no
// editor attached".
type Slots struct {
	mu      sync.RWMutex
	end     HostEnd
	dropped atomic.Uint64
}

// Update runs f with the write lock held. Readers see no editor attached
// until f returns.
func (s *Slots) Update(f func(end *HostEnd)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(&s.end)
}

func (s *Slots) Install(end HostEnd) {
	s.Update(func(e *HostEnd) { *e = end })
}

func (s *Slots) Clear() {
	s.Update(func(e *HostEnd) { *e = HostEnd{} })
}

func (s *Slots) Sender() (Sender, bool) {
	if !s.mu.TryRLock() {
		return Sender{}, false
	}
	snd := s.end.Send
	s.mu.RUnlock()
	return snd, snd.Attached()
}

func (s *Slots) Receiver() (Receiver, bool) {
	if !s.mu.TryRLock() {
		return Receiver{}, false
	}
	rcv := s.end.Recv
	s.mu.RUnlock()
	return rcv, rcv.Attached()
}

// CountDropped records a host-to-GUI update lost on a full queue. It is
// called from the audio and parameter threads, where logging is not allowed.
func (s *Slots) CountDropped() {
	s.dropped.Add(1)
}

// TakeDropped returns the number of dropped updates since the previous call.
func (s *Slots) TakeDropped() uint64 {
	return s.dropped.Swap(0)
}
