package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"time"

	"gioui.org/app"
	"github.com/alecthomas/kong"
	"github.com/vsariola/gainknob"
	"github.com/vsariola/gainknob/editor/gioui"
	"github.com/vsariola/gainknob/host"
	"github.com/vsariola/gainknob/oto"
	"github.com/vsariola/gainknob/version"
)

// CLI defines the command-line interface
type CLI struct {
	Tone     float64       `default:"440" help:"Frequency of the test tone in Hz"`
	Automate bool          `short:"a" help:"Sweep the gain like host automation would"`
	Rate     time.Duration `default:"4s" help:"Period of the automation sweep"`
	Verbose  bool          `help:"Log to stderr at debug level"`
	Version  bool          `short:"v" help:"Show version information"`
}

// logAutomator stands in for a host: it only logs what it would record.
type logAutomator struct {
	logger *slog.Logger
}

func (a logAutomator) BeginEdit(index int) {}

func (a logAutomator) Automate(index int, value float32) {
	a.logger.Info("automate", "index", index, "value", value)
}

func (a logAutomator) EndEdit(index int) {}

func main() {
	cliArgs := &CLI{}
	kong.Parse(cliArgs,
		kong.Name("gainknob-demo"),
		kong.Description("Plays a test tone through the gain plugin and opens its editor"),
		kong.UsageOnError(),
	)
	if cliArgs.Version {
		fmt.Println("gainknob-demo", version.VersionOrHash)
		os.Exit(0)
	}
	cfg, err := host.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v, using defaults\n", err)
	}
	var logger *slog.Logger
	if cliArgs.Verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	} else {
		var closer io.Closer
		logger, closer = host.SetupLogging(cfg.Log)
		defer closer.Close()
	}
	prefs, err := gioui.MakePreferences()
	if err != nil {
		logger.Warn("preferences error, using defaults", "err", err)
	}
	plugin := host.New(cfg, logAutomator{logger: logger}, gioui.NewFactory(prefs, logger), logger)
	audioContext, err := oto.NewContext()
	if err != nil {
		log.Fatal(err)
	}
	player := audioContext.Play(toneProcessor(plugin, cliArgs.Tone))
	if !plugin.Editor().Open(0) {
		log.Fatal("could not open the editor")
	}
	if cliArgs.Automate {
		go automate(plugin.Params(), cliArgs.Rate)
	}
	go func() {
		<-plugin.Editor().Done()
		plugin.Close()
		player.Close()
		os.Exit(0)
	}()
	app.Main()
}

// toneProcessor returns an audio callback that feeds a sine wave through the
// plugin. The scratch buffers grow on the first calls only.
func toneProcessor(plugin *host.Plugin, freq float64) func(gainknob.AudioBuffer) error {
	var (
		phase float64
		in    = make([][]float32, 2)
		out   = make([][]float32, 2)
	)
	step := 2 * math.Pi * freq / oto.SampleRate
	return func(buf gainknob.AudioBuffer) error {
		for c := range in {
			if cap(in[c]) < len(buf) {
				in[c] = make([]float32, len(buf))
				out[c] = make([]float32, len(buf))
			}
			in[c], out[c] = in[c][:len(buf)], out[c][:len(buf)]
		}
		for i := range buf {
			v := float32(0.25 * math.Sin(phase))
			in[0][i], in[1][i] = v, v
			phase += step
		}
		phase = math.Mod(phase, 2*math.Pi)
		plugin.Process(in, out)
		for i := range buf {
			buf[i] = [2]float32{out[0][i], out[1][i]}
		}
		return nil
	}
}

// automate moves the gain along a slow sine, the way a host plays back an
// automation lane.
func automate(params *host.Params, period time.Duration) {
	if period <= 0 {
		period = 4 * time.Second
	}
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	start := time.Now()
	for t := range ticker.C {
		x := t.Sub(start).Seconds() / period.Seconds()
		params.SetParameter(host.GainIndex, float32(0.5+0.5*math.Sin(2*math.Pi*x)))
	}
}
