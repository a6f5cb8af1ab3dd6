package gainknob_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vsariola/gainknob"
)

func TestLinkIsFIFOPerDirection(t *testing.T) {
	link := gainknob.NewLink(8)
	host, gui := link.HostEnd(), link.GUIEnd()
	for _, v := range []float64{0.1, 0.2, 0.3} {
		if err := host.Send.Send(gainknob.GainUpdate(gainknob.HostToGUI, v)); err != nil {
			t.Fatalf("host send: %v", err)
		}
		if err := gui.Send.Send(gainknob.GainUpdate(gainknob.GUIToHost, 1-v)); err != nil {
			t.Fatalf("gui send: %v", err)
		}
	}
	toGUI := gui.Recv.TryReceiveAll(nil)
	toHost := host.Recv.TryReceiveAll(nil)
	if len(toGUI) != 3 || len(toHost) != 3 {
		t.Fatalf("got %d/%d updates, want 3/3", len(toGUI), len(toHost))
	}
	for i, want := range []float64{0.1, 0.2, 0.3} {
		if toGUI[i].Value != want || toGUI[i].Dir != gainknob.HostToGUI {
			t.Errorf("toGUI[%d] = %+v, want host-to-gui %v", i, toGUI[i], want)
		}
		if toHost[i].Value != 1-want || toHost[i].Dir != gainknob.GUIToHost {
			t.Errorf("toHost[%d] = %+v, want gui-to-host %v", i, toHost[i], 1-want)
		}
	}
}

func TestSendOnFullQueueDoesNotBlock(t *testing.T) {
	link := gainknob.NewLink(2)
	snd := link.HostEnd().Send
	for i := 0; i < 2; i++ {
		if err := snd.Send(gainknob.GainUpdate(gainknob.HostToGUI, 0.5)); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}
	done := make(chan error)
	go func() { done <- snd.Send(gainknob.GainUpdate(gainknob.HostToGUI, 0.7)) }()
	select {
	case err := <-done:
		if !errors.Is(err, gainknob.ErrQueueFull) {
			t.Fatalf("Send on full queue = %v, want ErrQueueFull", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Send blocked on a full queue")
	}
	got := link.GUIEnd().Recv.TryReceiveAll(nil)
	if len(got) != 2 {
		t.Fatalf("drained %d updates, want 2 (dropped update must not be queued)", len(got))
	}
}

func TestTryReceiveAllOnEmptyQueue(t *testing.T) {
	link := gainknob.NewLink(4)
	buf := make([]gainknob.ParamUpdate, 0, 4)
	if got := link.GUIEnd().Recv.TryReceiveAll(buf); len(got) != 0 {
		t.Fatalf("TryReceiveAll on empty queue returned %d updates", len(got))
	}
}

func TestDetachedEndpoints(t *testing.T) {
	var snd gainknob.Sender
	var rcv gainknob.Receiver
	if snd.Attached() || rcv.Attached() {
		t.Fatal("zero endpoints report attached")
	}
	if err := snd.Send(gainknob.GainUpdate(gainknob.HostToGUI, 1)); !errors.Is(err, gainknob.ErrDetached) {
		t.Fatalf("Send on zero Sender = %v, want ErrDetached", err)
	}
	if got := rcv.TryReceiveAll(nil); got != nil {
		t.Fatalf("TryReceiveAll on zero Receiver = %v, want nil", got)
	}
}

func TestNewLinkDefaultCapacity(t *testing.T) {
	link := gainknob.NewLink(0)
	if cap(link.ToGUI) != gainknob.DefaultQueueCapacity || cap(link.ToHost) != gainknob.DefaultQueueCapacity {
		t.Fatalf("capacities = %d/%d, want %d", cap(link.ToGUI), cap(link.ToHost), gainknob.DefaultQueueCapacity)
	}
}
