package gainknob_test

import (
	"testing"

	"github.com/vsariola/gainknob"
)

func TestSlotsInstallAndClear(t *testing.T) {
	var slots gainknob.Slots
	if _, ok := slots.Sender(); ok {
		t.Fatal("empty slots report a sender")
	}
	if _, ok := slots.Receiver(); ok {
		t.Fatal("empty slots report a receiver")
	}
	link := gainknob.NewLink(4)
	slots.Install(link.HostEnd())
	snd, ok := slots.Sender()
	if !ok {
		t.Fatal("installed slots report no sender")
	}
	if err := snd.Send(gainknob.GainUpdate(gainknob.HostToGUI, 0.4)); err != nil {
		t.Fatalf("send through slot: %v", err)
	}
	if _, ok := slots.Receiver(); !ok {
		t.Fatal("installed slots report no receiver")
	}
	slots.Clear()
	if _, ok := slots.Sender(); ok {
		t.Fatal("cleared slots still report a sender")
	}
	if _, ok := slots.Receiver(); ok {
		t.Fatal("cleared slots still report a receiver")
	}
}

func TestSlotsHandleSurvivesClear(t *testing.T) {
	var slots gainknob.Slots
	link := gainknob.NewLink(4)
	slots.Install(link.HostEnd())
	snd, _ := slots.Sender()
	slots.Clear()
	// a handle copied before Clear stays usable; the queue is never closed
	if err := snd.Send(gainknob.GainUpdate(gainknob.HostToGUI, 0.4)); err != nil {
		t.Fatalf("send on stale handle: %v", err)
	}
}

func TestSlotsUpdateHidesEndpoints(t *testing.T) {
	var slots gainknob.Slots
	link := gainknob.NewLink(4)
	slots.Install(link.HostEnd())
	slots.Update(func(end *gainknob.HostEnd) {
		if _, ok := slots.Sender(); ok {
			t.Error("sender visible during Update")
		}
		if _, ok := slots.Receiver(); ok {
			t.Error("receiver visible during Update")
		}
		if !end.Send.Attached() {
			t.Error("Update got a detached end")
		}
	})
}

func TestSlotsDropCounter(t *testing.T) {
	var slots gainknob.Slots
	slots.CountDropped()
	slots.CountDropped()
	if got := slots.TakeDropped(); got != 2 {
		t.Fatalf("TakeDropped() = %d, want 2", got)
	}
	if got := slots.TakeDropped(); got != 0 {
		t.Fatalf("second TakeDropped() = %d, want 0", got)
	}
}
