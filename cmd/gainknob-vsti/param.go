//go:build plugin

package main

import (
	"github.com/vsariola/gainknob/host"
	"pipelined.dev/audio/vst2"
)

// hostParam keeps the vst2 parameter table and the plugin's Parameter Store
// in step. vst2 writes host changes straight into param.Value, so they are
// picked up at the start of each buffer. Knob changes are written back into
// param.Value so the host reads the current value, but vst2 offers no
// automate callback, so hosts do not record them as automation.
//
// Both directions run on the audio thread. param.Value is also read by
// vst2's dispatcher on the host's thread without synchronization; vst2
// owns the field, so that read cannot be made atomic from here.
type hostParam struct {
	param    *vst2.Parameter
	mirrored float32
	plugin   *host.Plugin
}

func (h *hostParam) syncFromHost() {
	if v := h.param.Value; v != h.mirrored {
		h.plugin.Params().SetParameter(host.GainIndex, v)
		h.mirrored = h.plugin.Params().GetParameter(host.GainIndex)
		h.param.Value = h.mirrored
	}
}

func (h *hostParam) BeginEdit(index int) {}

func (h *hostParam) Automate(index int, value float32) {
	if index != host.GainIndex {
		return
	}
	h.param.Value = value
	h.mirrored = value
}

func (h *hostParam) EndEdit(index int) {}
