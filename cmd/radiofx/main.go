// Command radiofx runs an effect style over a generated test signal and
// reports the resolved parameters, per-stage levels and the band energy
// split before and after processing.
//
// Usage:
//
//	radiofx [flags]
//
// Examples:
//
//	radiofx -style radio
//	radiofx -style walkie -set bit_depth=4 -set static_level=0.05
//	radiofx -config walkie.yaml -seed 42 -freq 300,1000,2500
//	radiofx -source noise -channels 2 -style radio
//	radiofx -list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-radiofx/dsp/audio"
	"github.com/cwbudde/algo-radiofx/dsp/core"
	dspsignal "github.com/cwbudde/algo-radiofx/dsp/signal"
	"github.com/cwbudde/algo-radiofx/dsp/window"
	"github.com/cwbudde/algo-radiofx/internal/config"
	"github.com/cwbudde/algo-radiofx/internal/logger"
	"github.com/cwbudde/algo-radiofx/measure/band"
	"github.com/cwbudde/algo-radiofx/radiofx"
	"github.com/cwbudde/algo-radiofx/stats/level"
)

// setFlag collects repeated -set key=value pairs.
type setFlag map[string]any

func (s setFlag) String() string {
	parts := make([]string, 0, len(s))
	for k, v := range s {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, ",")
}

func (s setFlag) Set(v string) error {
	key, val, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	s[strings.TrimSpace(key)] = strings.TrimSpace(val)
	return nil
}

type options struct {
	style      string
	configPath string
	seed       uint64
	seedSet    bool
	styleSet   bool
	sets       setFlag
	source     string
	freqs      []float64
	amplitude  float64
	duration   float64
	rate       int
	channels   int
	order      int
	causal     bool
	logLevel   string
	dumpConfig bool
	list       bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Initialize("info", false)

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger.InitializeWriters(opts.logLevel, false, stderr, stderr)

	if opts.list {
		printStyles(stdout)
		return nil
	}

	style, overrides, seed, seeded, err := settings(opts)
	if err != nil {
		return err
	}

	in, err := testSignal(opts)
	if err != nil {
		return err
	}

	pipeOpts := []radiofx.Option{
		radiofx.WithFilterOrder(opts.order),
		radiofx.WithZeroPhase(!opts.causal),
		radiofx.WithObserver(func(s radiofx.State, stage string) {
			logger.Debug("state=%s stage=%s", s, stage)
		}),
	}
	if seeded {
		pipeOpts = append(pipeOpts, radiofx.WithSeed(seed))
	}

	res, err := radiofx.New(pipeOpts...).Process(ctx, style, in, overrides)
	if err != nil {
		return err
	}

	logger.Info("run %s style=%s seed=%d samples=%d channels=%d",
		res.RunID, style, res.Seed, res.Signal.Len(), res.Signal.NumChannels())

	if opts.dumpConfig {
		data, err := config.Marshal(res.Config, &res.Seed)
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	return printReport(stdout, in, res)
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	opts := options{sets: setFlag{}}

	fs := flag.NewFlagSet("radiofx", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.style, "style", "radio", "effect style: radio or walkie")
	fs.StringVar(&opts.configPath, "config", "", "YAML or JSON settings file (effect, seed, style_params)")
	fs.Uint64Var(&opts.seed, "seed", 0, "random seed for reproducible noise (default: random)")
	fs.Var(opts.sets, "set", "parameter override key=value (repeatable)")
	fs.StringVar(&opts.source, "source", "tone", "test signal: tone or noise")
	freqs := fs.String("freq", "1000", "comma-separated test tone frequencies in Hz")
	fs.Float64Var(&opts.amplitude, "amp", 0.5, "peak amplitude of the test signal")
	fs.Float64Var(&opts.duration, "duration", 1, "test signal length in seconds")
	fs.IntVar(&opts.rate, "rate", 44100, "test signal sample rate in Hz")
	fs.IntVar(&opts.channels, "channels", 1, "number of channels (1 or 2)")
	fs.IntVar(&opts.order, "order", 4, "Butterworth order of the band-limiting filters")
	fs.BoolVar(&opts.causal, "causal", false, "single causal filter pass instead of zero-phase filtering")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info or error")
	fs.BoolVar(&opts.dumpConfig, "dump-config", false, "print the resolved configuration as YAML instead of the report")
	fs.BoolVar(&opts.list, "list", false, "list styles, stages and default parameters")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: radiofx [flags]\n\n")
		fmt.Fprintf(stderr, "Applies a radio or walkie-talkie effect to a generated test signal.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  radiofx -style walkie -set bit_depth=4\n")
		fmt.Fprintf(stderr, "  radiofx -config walkie.yaml -seed 42\n")
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			opts.seedSet = true
		case "style":
			opts.styleSet = true
		}
	})

	for _, part := range strings.Split(*freqs, ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || f <= 0 {
			return options{}, fmt.Errorf("invalid frequency %q", part)
		}
		opts.freqs = append(opts.freqs, f)
	}

	if opts.source != "tone" && opts.source != "noise" {
		return options{}, fmt.Errorf("unknown source %q", opts.source)
	}
	if opts.channels < 1 || opts.channels > 2 {
		return options{}, fmt.Errorf("channels must be 1 or 2: %d", opts.channels)
	}
	if opts.duration <= 0 {
		return options{}, fmt.Errorf("duration must be > 0: %g", opts.duration)
	}

	return opts, nil
}

// settings merges the settings file with command-line flags; flags win.
func settings(opts options) (radiofx.Style, radiofx.Overrides, uint64, bool, error) {
	style := radiofx.StyleRadio
	overrides := radiofx.Overrides{}
	var seed uint64
	var seeded bool

	if opts.configPath != "" {
		s, err := config.Load(opts.configPath)
		if err != nil {
			return 0, nil, 0, false, err
		}
		style, seed, seeded = s.Style, s.Seed, s.HasSeed
		for k, v := range s.Overrides {
			overrides[k] = v
		}
		logger.Debug("loaded %s: %s", opts.configPath, s.Config)
	}

	if opts.configPath == "" || opts.styleSet {
		st, err := radiofx.ParseStyle(opts.style)
		if err != nil {
			return 0, nil, 0, false, err
		}
		style = st
	}

	if opts.seedSet {
		seed, seeded = opts.seed, true
	}

	flagOverrides, err := radiofx.ParseOverrides(opts.sets)
	if err != nil {
		return 0, nil, 0, false, err
	}
	for k, v := range flagOverrides {
		overrides[k] = v
	}

	return style, overrides, seed, seeded, nil
}

func testSignal(opts options) (*audio.Signal, error) {
	gen := dspsignal.NewGenerator(core.WithSampleRate(float64(opts.rate)))
	n := int(opts.duration * float64(opts.rate))

	channels := make([][]float64, opts.channels)
	for c := range channels {
		var (
			ch  []float64
			err error
		)
		switch opts.source {
		case "noise":
			gen.SetSeed(uint64(c) + 1)
			ch, err = gen.WhiteNoise(opts.amplitude, n)
		default:
			ch, err = gen.Multitone(opts.freqs, opts.amplitude, n)
		}
		if err != nil {
			return nil, err
		}
		channels[c] = ch
	}

	return audio.New(opts.rate, channels...)
}

func printStyles(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, st := range radiofx.Styles() {
		fmt.Fprintf(tw, "%s\t%s\n", st, strings.Join(radiofx.StageNames(st), " -> "))
		defaults := radiofx.Defaults(st)
		for _, p := range radiofx.Params(st) {
			fmt.Fprintf(tw, "\t%s\t%g\n", p, defaults[string(p)])
		}
	}
	tw.Flush()
}

func printReport(w io.Writer, in *audio.Signal, res *radiofx.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Run\t%s\n", res.RunID)
	fmt.Fprintf(tw, "Style\t%s\n", res.Config.Style())
	fmt.Fprintf(tw, "Seed\t%d\n", res.Seed)
	fmt.Fprintf(tw, "Signal\t%d Hz, %d ch, %s\n", res.Signal.SampleRate, res.Signal.NumChannels(), res.Signal.Duration())
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Parameter\tValue")
	m := res.Config.Map()
	for _, p := range res.Config.Keys() {
		fmt.Fprintf(tw, "%s\t%v\n", p, m[string(p)])
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Stage\tPeak\tRMS (dB)\tClipped\tTime")
	for _, st := range res.Stages {
		if st.Skipped {
			fmt.Fprintf(tw, "%s\t(skipped)\t\t\t\n", st.Name)
			continue
		}
		fmt.Fprintf(tw, "%s\t%.4f\t%.1f\t%d\t%s\n", st.Name, st.Peak, st.RMSdB, st.Clipped, st.Elapsed)
	}
	fmt.Fprintln(tw)

	inLevel := level.Calculate(in.Channels...)
	outLevel := level.Calculate(res.Signal.Channels...)
	fmt.Fprintln(tw, "Level\tRMS (dB)\tPeak (dB)\tCrest (dB)\tDC")
	fmt.Fprintf(tw, "input\t%.1f\t%.1f\t%.1f\t%.4f\n", inLevel.RMSdB, inLevel.PeakDB, inLevel.CrestFactorDB, inLevel.DC)
	fmt.Fprintf(tw, "output\t%.1f\t%.1f\t%.1f\t%.4f\n", outLevel.RMSdB, outLevel.PeakDB, outLevel.CrestFactorDB, outLevel.DC)
	fmt.Fprintln(tw)

	cfg := band.Config{
		SampleRate: float64(in.SampleRate),
		WindowType: window.TypeHann,
		LowHz:      res.Config.Float(radiofx.ParamLowCutoff),
		HighHz:     res.Config.Float(radiofx.ParamHighCutoff),
	}
	before, err := band.AnalyzeSignal(in.Channel(0), cfg)
	if err != nil {
		return err
	}
	after, err := band.AnalyzeSignal(res.Signal.Channel(0), cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(tw, "Band\t%g-%g Hz\n", cfg.LowHz, cfg.HighHz)
	fmt.Fprintln(tw, "\tIn-band ratio\tRejection (dB)\tPeak (Hz)")
	fmt.Fprintf(tw, "input\t%.4f\t%.1f\t%.0f\n", before.InBandRatio, before.RejectionDB, before.PeakFreq)
	fmt.Fprintf(tw, "output\t%.4f\t%.1f\t%.0f\n", after.InBandRatio, after.RejectionDB, after.PeakFreq)

	return tw.Flush()
}
