package host

import (
	"fmt"
	"log/slog"

	"github.com/vsariola/gainknob"
	"github.com/vsariola/gainknob/editor"
)

type (
	// Automator is the part of the host that records parameter changes made
	// by the plugin itself, i.e. by the user turning the knob.
	Automator interface {
		BeginEdit(index int)
		Automate(index int, value float32)
		EndEdit(index int)
	}

	// Plugin is the gain plugin as seen by the host: audio processing,
	// parameters and the editor. Process and ProcessF64 run on the audio
	// thread and never block.
	Plugin struct {
		params    *Params
		gain      *gainknob.Gain
		slots     *gainknob.Slots
		editor    *editor.Editor
		automator Automator
		info      Info
		logger    *slog.Logger

		pending []gainknob.ParamUpdate
	}

	Info struct {
		Name       string
		Vendor     string
		UniqueID   int32
		Parameters int
		Inputs     int
		Outputs    int
	}

	ChannelInfo struct {
		Name      string
		ShortName string
		Active    bool
	}

	Capability int

	CanDoResponse int
)

const (
	ReceiveMIDIEvent Capability = iota
	ReceiveTimeInfo
	ReceiveEvents
	SendEvents
	SendMIDIEvent
	Bypass
	Offline
)

const (
	No CanDoResponse = iota - 1
	Maybe
	Yes
)

const stereo = 2

func New(cfg Config, automator Automator, newSurface editor.SurfaceFactory, logger *slog.Logger) *Plugin {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	gain := gainknob.NewGain(cfg.InitialGain)
	slots := &gainknob.Slots{}
	capacity := cfg.ChannelCapacity
	if capacity <= 0 {
		capacity = gainknob.DefaultQueueCapacity
	}
	return &Plugin{
		params: NewParams(gain, slots),
		gain:   gain,
		slots:  slots,
		editor: editor.New(gain, slots, newSurface, editor.Options{
			Title:         cfg.Editor.Title,
			Width:         cfg.Editor.Width,
			Height:        cfg.Editor.Height,
			ParamName:     "gain",
			QueueCapacity: capacity,
		}, logger),
		automator: automator,
		info: Info{
			Name:       cfg.Name,
			Vendor:     cfg.Vendor,
			UniqueID:   cfg.UniqueID,
			Parameters: 1,
			Inputs:     stereo,
			Outputs:    stereo,
		},
		logger:  logger,
		pending: make([]gainknob.ParamUpdate, 0, capacity),
	}
}

func (p *Plugin) Params() *Params { return p.params }

func (p *Plugin) Editor() *editor.Editor { return p.editor }

func (p *Plugin) Info() Info { return p.info }

// ProcessGUIMessages applies the changes the GUI made since the previous
// buffer. Only the newest value matters: intermediate drag positions that
// arrived within the same buffer are dropped, and the host is notified at
// most once per buffer.
func (p *Plugin) ProcessGUIMessages() {
	rcv, ok := p.slots.Receiver()
	if !ok {
		return
	}
	p.pending = rcv.TryReceiveAll(p.pending[:0])
	var (
		value   float64
		updated bool
	)
	for _, u := range p.pending {
		if u.Index == GainIndex {
			value, updated = u.Value, true
		}
	}
	if !updated {
		return
	}
	p.gain.Store(value)
	if p.automator != nil {
		v := float32(p.gain.Load())
		p.automator.BeginEdit(GainIndex)
		p.automator.Automate(GainIndex, v)
		p.automator.EndEdit(GainIndex)
	}
}

func (p *Plugin) Process(in, out [][]float32) {
	p.ProcessGUIMessages()
	gainknob.ApplyGain32(in, out, float32(p.gain.Load()))
}

func (p *Plugin) ProcessF64(in, out [][]float64) {
	p.ProcessGUIMessages()
	gainknob.ApplyGain64(in, out, p.gain.Load())
}

func (p *Plugin) CanDo(c Capability) CanDoResponse {
	switch c {
	case ReceiveMIDIEvent, ReceiveTimeInfo, SendEvents, ReceiveEvents:
		return Yes
	}
	return Maybe
}

func (p *Plugin) InputInfo(index int) ChannelInfo {
	return ChannelInfo{
		Name:      fmt.Sprintf("Input channel %d", index),
		ShortName: fmt.Sprintf("In %d", index),
		Active:    true,
	}
}

func (p *Plugin) OutputInfo(index int) ChannelInfo {
	return ChannelInfo{
		Name:      fmt.Sprintf("Output channel %d", index),
		ShortName: fmt.Sprintf("Out %d", index),
		Active:    true,
	}
}

// Close shuts the editor down if it is open.
func (p *Plugin) Close() {
	p.editor.Close()
}
