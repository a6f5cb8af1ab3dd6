//go:build plugin

package main

import (
	"encoding/binary"

	"github.com/vsariola/gainknob"
	"github.com/vsariola/gainknob/editor/gioui"
	"github.com/vsariola/gainknob/host"
	"github.com/vsariola/gainknob/version"
	"pipelined.dev/audio/vst2"
)

func init() {
	versionCode := version.Code(version.Version, 100)
	vst2.PluginAllocator = func(h vst2.Host) (vst2.Plugin, vst2.Dispatcher) {
		cfg, cfgErr := host.LoadConfig()
		logger, logCloser := host.SetupLogging(cfg.Log)
		if cfgErr != nil {
			logger.Warn("config error, using defaults", "err", cfgErr)
		}
		prefs, prefsErr := gioui.MakePreferences()
		if prefsErr != nil {
			logger.Warn("preferences error, using defaults", "err", prefsErr)
		}
		logger.Info("started VST", "version", version.VersionOrHash)
		param := &vst2.Parameter{
			Name: "gain",
			Unit: "%",
		}
		mirror := &hostParam{param: param}
		plugin := host.New(cfg, mirror, gioui.NewFactory(prefs, logger), logger)
		mirror.plugin = plugin
		param.Value = plugin.Params().GetParameter(host.GainIndex)
		param.GetValueLabelFunc = func(value float32) string {
			return gainknob.FormatDecibels(float64(value))
		}
		mirror.mirrored = param.Value
		plugin.Editor().Open(0)
		info := plugin.Info()
		var uniqueID [4]byte
		binary.BigEndian.PutUint32(uniqueID[:], uint32(info.UniqueID))
		in32 := make([][]float32, info.Inputs)
		out32 := make([][]float32, info.Outputs)
		in64 := make([][]float64, info.Inputs)
		out64 := make([][]float64, info.Outputs)
		return vst2.Plugin{
				UniqueID:       uniqueID,
				Version:        versionCode,
				InputChannels:  info.Inputs,
				OutputChannels: info.Outputs,
				Name:           info.Name,
				Vendor:         info.Vendor,
				Category:       vst2.PluginCategoryEffect,
				Parameters:     []*vst2.Parameter{param},
				ProcessFloatFunc: func(in, out vst2.FloatBuffer) {
					mirror.syncFromHost()
					for i := range in32 {
						in32[i] = in.Channel(i)
					}
					for i := range out32 {
						out32[i] = out.Channel(i)
					}
					plugin.Process(in32, out32)
				},
				ProcessDoubleFunc: func(in, out vst2.DoubleBuffer) {
					mirror.syncFromHost()
					for i := range in64 {
						in64[i] = in.Channel(i)
					}
					for i := range out64 {
						out64[i] = out.Channel(i)
					}
					plugin.ProcessF64(in64, out64)
				},
			}, vst2.Dispatcher{
				CanDoFunc: func(pcds vst2.PluginCanDoString) vst2.CanDoResponse {
					var c host.Capability
					switch pcds {
					case vst2.PluginCanReceiveEvents:
						c = host.ReceiveEvents
					case vst2.PluginCanReceiveMIDIEvent:
						c = host.ReceiveMIDIEvent
					case vst2.PluginCanReceiveTimeInfo:
						c = host.ReceiveTimeInfo
					case vst2.PluginCanSendEvents:
						c = host.SendEvents
					default:
						return vst2.MaybeCanDo
					}
					switch plugin.CanDo(c) {
					case host.Yes:
						return vst2.YesCanDo
					case host.No:
						return vst2.NoCanDo
					}
					return vst2.MaybeCanDo
				},
				CloseFunc: func() {
					plugin.Close()
					logger.Info("closed VST")
					logCloser.Close()
				},
			}
	}
}

func main() {}
