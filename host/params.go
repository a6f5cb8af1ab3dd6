package host

import (
	"errors"

	"github.com/vsariola/gainknob"
)

// GainIndex is the index of the only parameter.
const GainIndex = 0

// Params answers the host's parameter queries. It is called from the host's
// parameter thread, concurrently with the audio thread, and forwards host
// changes to the GUI if one is open.
type Params struct {
	gain  *gainknob.Gain
	slots *gainknob.Slots
}

func NewParams(gain *gainknob.Gain, slots *gainknob.Slots) *Params {
	return &Params{gain: gain, slots: slots}
}

func (p *Params) NumParameters() int { return 1 }

func (p *Params) GetParameter(index int) float32 {
	if index != GainIndex {
		return 0
	}
	return float32(p.gain.Load())
}

// SetParameter stores a value coming from the host, e.g. automation, and
// forwards it to the GUI. With no GUI open the value is only stored. It may
// run on the audio thread, so it never logs: updates dropped on a full queue
// are counted in the slots and reported by the editor.
func (p *Params) SetParameter(index int, value float32) {
	if index != GainIndex {
		return
	}
	p.gain.Store(float64(value))
	snd, ok := p.slots.Sender()
	if !ok {
		return
	}
	if err := snd.Send(gainknob.GainUpdate(gainknob.HostToGUI, p.gain.Load())); errors.Is(err, gainknob.ErrQueueFull) {
		p.slots.CountDropped()
	}
}

func (p *Params) ParameterName(index int) string {
	if index != GainIndex {
		return ""
	}
	return "gain"
}

func (p *Params) ParameterLabel(index int) string {
	if index != GainIndex {
		return ""
	}
	return "%"
}

// ParameterText is the value as the host displays it, in decibels.
func (p *Params) ParameterText(index int) string {
	if index != GainIndex {
		return ""
	}
	return gainknob.FormatDecibels(p.gain.Load())
}
