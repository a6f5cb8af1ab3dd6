package gainknob

import "testing"

func TestHeldWriteLockReadsAsDetached(t *testing.T) {
	var s Slots
	s.Install(NewLink(4).HostEnd())
	s.mu.Lock()
	_, sndOK := s.Sender()
	_, rcvOK := s.Receiver()
	s.mu.Unlock()
	if sndOK || rcvOK {
		t.Fatalf("with the write lock held: sender=%v receiver=%v, want both false", sndOK, rcvOK)
	}
	if _, ok := s.Sender(); !ok {
		t.Fatal("sender not attached once the lock is released")
	}
}
