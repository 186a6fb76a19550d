package radiofx

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/cwbudde/algo-radiofx/dsp/audio"
	"github.com/cwbudde/algo-radiofx/stats/level"
	"github.com/google/uuid"
)

const (
	defaultFilterOrder = 4
	maxFilterOrder     = 16
)

// State is a step of a pipeline run.
type State int

const (
	StateIdle State = iota
	StateParametersResolved
	StateRunning
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateParametersResolved:
		return "parameters_resolved"
	case StateRunning:
		return "running"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Observer is notified of every state transition of a run. stage is set
// for StateRunning, and for StateFailed when a stage failed. An observer
// shared by concurrent runs must be safe for concurrent use.
type Observer func(state State, stage string)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSeed makes every run draw its random numbers from a stream seeded
// with seed, so equal inputs produce bit-identical outputs.
func WithSeed(seed uint64) Option {
	return func(p *Pipeline) {
		p.seed = seed
		p.seeded = true
	}
}

// WithObserver installs a state observer.
func WithObserver(fn Observer) Option {
	return func(p *Pipeline) {
		p.observer = fn
	}
}

// WithFilterOrder sets the Butterworth order of the band-limiting and
// anti-alias filters, in [1, 16]. Other values are ignored.
func WithFilterOrder(order int) Option {
	return func(p *Pipeline) {
		if order >= 1 && order <= maxFilterOrder {
			p.order = order
		}
	}
}

// WithZeroPhase selects forward-backward filtering (the default) or a
// single causal pass.
func WithZeroPhase(enabled bool) Option {
	return func(p *Pipeline) {
		p.zeroPhase = enabled
	}
}

// Pipeline applies an effect style to signals. It is immutable after New
// and safe for concurrent use; every Process call owns its random stream
// and stage state.
type Pipeline struct {
	seed      uint64
	seeded    bool
	observer  Observer
	order     int
	zeroPhase bool
}

// New creates a pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		order:     defaultFilterOrder,
		zeroPhase: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p
}

// StageReport describes one stage of a completed run.
type StageReport struct {
	Name    string
	Skipped bool
	// Peak is the largest absolute sample after the stage and its clamp.
	Peak float64
	// RMSdB is the RMS level over all channels after the stage.
	RMSdB float64
	// Clipped counts the samples the post-stage clamp changed.
	Clipped int
	Elapsed time.Duration
}

// Result is the output of a successful run.
type Result struct {
	Signal *audio.Signal
	Config ResolvedConfig
	RunID  uuid.UUID
	// Seed reproduces the run when passed to WithSeed.
	Seed   uint64
	Stages []StageReport
}

// Process applies style to sig with the given overrides. sig is not
// modified. On error no signal is returned. ctx is checked between stages.
func (p *Pipeline) Process(ctx context.Context, style Style, sig *audio.Signal, overrides Overrides) (*Result, error) {
	p.notify(StateIdle, "")

	res, stage, err := p.run(ctx, style, sig, overrides)
	if err != nil {
		p.notify(StateFailed, stage)
		return nil, err
	}

	p.notify(StateComplete, "")

	return res, nil
}

// ProcessNamed is Process with the style given by name.
func (p *Pipeline) ProcessNamed(ctx context.Context, style string, sig *audio.Signal, overrides Overrides) (*Result, error) {
	st, err := ParseStyle(style)
	if err != nil {
		p.notify(StateIdle, "")
		p.notify(StateFailed, "")
		return nil, err
	}

	return p.Process(ctx, st, sig, overrides)
}

func (p *Pipeline) run(ctx context.Context, style Style, sig *audio.Signal, overrides Overrides) (*Result, string, error) {
	if !style.Valid() {
		return nil, "", fmt.Errorf("%w: %s", ErrInvalidEffectStyle, style)
	}
	if err := sig.Validate(); err != nil {
		if errors.Is(err, audio.ErrEmptySignal) {
			return nil, "", ErrEmptySignal
		}
		return nil, "", fmt.Errorf("radiofx: %w", err)
	}

	cfg, err := Resolve(style, overrides)
	if err != nil {
		return nil, "", err
	}

	seed := p.seed
	if !p.seeded {
		seed = rand.Uint64()
	}

	rc := &runContext{
		cfg:        cfg,
		sampleRate: sig.SampleRate,
		length:     sig.Len(),
		rng:        rand.New(rand.NewPCG(seed, 0)),
		order:      p.order,
		zeroPhase:  p.zeroPhase,
	}

	stages, err := buildStages(stagePlans[style], rc)
	if err != nil {
		return nil, "", err
	}

	p.notify(StateParametersResolved, "")

	work := sig.Clone()
	reports, stage, err := p.runStages(ctx, stages, work)
	if err != nil {
		return nil, stage, err
	}

	return &Result{
		Signal: work,
		Config: cfg,
		RunID:  uuid.New(),
		Seed:   seed,
		Stages: reports,
	}, "", nil
}

type builtStage struct {
	name string
	fn   stageFunc
}

// buildStages prepares every stage before any sample is touched, so a
// configuration error fails the run without partial work.
func buildStages(plan []stageSpec, rc *runContext) ([]builtStage, error) {
	out := make([]builtStage, 0, len(plan))
	for _, spec := range plan {
		fn, err := spec.build(rc)
		if err != nil {
			return nil, fmt.Errorf("%s stage: %w", spec.name, err)
		}
		out = append(out, builtStage{name: spec.name, fn: fn})
	}

	return out, nil
}

func (p *Pipeline) runStages(ctx context.Context, stages []builtStage, work *audio.Signal) ([]StageReport, string, error) {
	reports := make([]StageReport, 0, len(stages))
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return nil, st.name, fmt.Errorf("radiofx: %w", err)
		}

		if st.fn == nil {
			lv := level.Calculate(work.Channels...)
			reports = append(reports, StageReport{Name: st.name, Skipped: true, Peak: lv.Peak, RMSdB: lv.RMSdB})
			continue
		}

		p.notify(StateRunning, st.name)

		start := time.Now()
		if err := st.fn(work); err != nil {
			return nil, st.name, fmt.Errorf("radiofx: %s stage: %w", st.name, err)
		}
		clipped := work.Clamp()
		elapsed := time.Since(start)
		lv := level.Calculate(work.Channels...)

		reports = append(reports, StageReport{
			Name:    st.name,
			Peak:    lv.Peak,
			RMSdB:   lv.RMSdB,
			Clipped: clipped,
			Elapsed: elapsed,
		})
	}

	return reports, "", nil
}

func (p *Pipeline) notify(state State, stage string) {
	if p.observer != nil {
		p.observer(state, stage)
	}
}
