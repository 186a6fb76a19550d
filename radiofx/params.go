package radiofx

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Param names a tunable parameter.
type Param string

const (
	ParamDistortionAmount Param = "distortion_amount"
	ParamNoiseFactor      Param = "noise_factor"
	ParamLowCutoff        Param = "low_cutoff"
	ParamHighCutoff       Param = "high_cutoff"
	ParamSampleRate       Param = "sample_rate"
	ParamDustLevel        Param = "dust_level"
	ParamUseDustEffect    Param = "use_dust_effect"
	ParamCompressionRatio Param = "compression_ratio"
	ParamAttackMs         Param = "attack_ms"
	ParamReleaseMs        Param = "release_ms"
	ParamBitDepth         Param = "bit_depth"
	ParamStaticLevel      Param = "static_level"
)

type paramKind int

const (
	kindFloat paramKind = iota
	kindInt
	kindBool
)

// paramRange bounds a parameter. minOpen excludes min itself.
type paramRange struct {
	kind     paramKind
	min, max float64
	minOpen  bool
}

var paramRanges = map[Param]paramRange{
	ParamDistortionAmount: {kind: kindFloat, min: 1, max: 50},
	ParamNoiseFactor:      {kind: kindFloat, min: 0, max: 1},
	ParamLowCutoff:        {kind: kindFloat, min: 0, max: 96000, minOpen: true},
	ParamHighCutoff:       {kind: kindFloat, min: 0, max: 96000, minOpen: true},
	ParamSampleRate:       {kind: kindInt, min: 1000, max: 192000},
	ParamDustLevel:        {kind: kindFloat, min: 0, max: 1},
	ParamUseDustEffect:    {kind: kindBool, min: 0, max: 1},
	ParamCompressionRatio: {kind: kindFloat, min: 1, max: 100},
	ParamAttackMs:         {kind: kindFloat, min: 0.1, max: 1000},
	ParamReleaseMs:        {kind: kindFloat, min: 1, max: 5000},
	ParamBitDepth:         {kind: kindInt, min: 2, max: 32},
	ParamStaticLevel:      {kind: kindFloat, min: 0, max: 1},
}

var styleDefaults = [numStyles]map[Param]float64{
	StyleRadio: {
		ParamDistortionAmount: 1.2,
		ParamNoiseFactor:      0.008,
		ParamLowCutoff:        300,
		ParamHighCutoff:       3000,
		ParamSampleRate:       8000,
		ParamDustLevel:        0.2,
		ParamUseDustEffect:    1,
	},
	StyleWalkie: {
		ParamDistortionAmount: 1.05,
		ParamNoiseFactor:      0.01,
		ParamLowCutoff:        300,
		ParamHighCutoff:       4000,
		ParamCompressionRatio: 8.0,
		ParamAttackMs:         5,
		ParamReleaseMs:        150,
		ParamBitDepth:         8,
		ParamStaticLevel:      0.03,
	},
}

// Overrides is a sparse caller-supplied parameter map. Boolean parameters
// are encoded as 0 (false) or 1 (true).
type Overrides map[string]float64

// Defaults returns a fresh copy of the default parameters of style, or nil
// for an unknown style.
func Defaults(style Style) Overrides {
	if !style.Valid() {
		return nil
	}

	out := make(Overrides, len(styleDefaults[style]))
	for p, v := range styleDefaults[style] {
		out[string(p)] = v
	}

	return out
}

// Params returns the parameters recognised by style in sorted order.
func Params(style Style) []Param {
	if !style.Valid() {
		return nil
	}

	return slices.Sorted(maps.Keys(styleDefaults[style]))
}

// ParseOverrides converts decoded JSON or YAML values into Overrides.
// Numbers of any Go numeric type, booleans and numeric strings ("8000",
// "true") are accepted. Keys are not checked against a style here.
func ParseOverrides(raw map[string]any) (Overrides, error) {
	out := make(Overrides, len(raw))
	for k, v := range raw {
		f, err := toFloat(v)
		if err != nil {
			return nil, &ParamError{Param: k, Value: v, Reason: err.Error(), Err: ErrInvalidParameterRange}
		}
		out[k] = f
	}

	return out, nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int8:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint8:
		return float64(x), nil
	case uint16:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case string:
		s := strings.TrimSpace(x)
		if b, err := strconv.ParseBool(s); err == nil {
			return toFloat(b)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", x)
		}
		return f, nil
	case nil:
		return 0, fmt.Errorf("missing value")
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

// ResolvedConfig is the immutable set of parameters a run uses: the style
// defaults overlaid with the caller's overrides.
type ResolvedConfig struct {
	style  Style
	values map[Param]float64
}

// Resolve overlays overrides on the defaults of style and validates every
// resulting value. Unknown keys fail with ErrUnknownParameter, values out of
// range with ErrInvalidParameterRange; both as *ParamError.
func Resolve(style Style, overrides Overrides) (ResolvedConfig, error) {
	if !style.Valid() {
		return ResolvedConfig{}, fmt.Errorf("%w: %s", ErrInvalidEffectStyle, style)
	}

	values := maps.Clone(styleDefaults[style])

	// Sorted so the first reported problem does not depend on map order.
	for _, k := range slices.Sorted(maps.Keys(overrides)) {
		p := Param(k)
		if _, ok := values[p]; !ok {
			return ResolvedConfig{}, &ParamError{
				Param:  k,
				Value:  overrides[k],
				Reason: fmt.Sprintf("not recognised by style %s", style),
				Err:    ErrUnknownParameter,
			}
		}
		values[p] = overrides[k]
	}

	for _, p := range slices.Sorted(maps.Keys(values)) {
		if err := checkRange(p, values[p]); err != nil {
			return ResolvedConfig{}, err
		}
	}

	return ResolvedConfig{style: style, values: values}, nil
}

func checkRange(p Param, v float64) error {
	r := paramRanges[p]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return rangeError(p, v, "must be finite")
	}

	switch r.kind {
	case kindBool:
		if v != 0 && v != 1 {
			return rangeError(p, v, "must be 0 (false) or 1 (true)")
		}
		return nil
	case kindInt:
		if v != math.Trunc(v) {
			return rangeError(p, v, "must be an integer")
		}
	}

	if r.minOpen && v <= r.min {
		return rangeError(p, v, "must be > %g", r.min)
	}
	if v < r.min || v > r.max {
		return rangeError(p, v, "must be in [%g, %g]", r.min, r.max)
	}

	return nil
}

// Style returns the style the config was resolved for.
func (c ResolvedConfig) Style() Style { return c.style }

// Float returns the value of p, or 0 if p is not part of the config.
func (c ResolvedConfig) Float(p Param) float64 { return c.values[p] }

// Int returns the value of p as an int.
func (c ResolvedConfig) Int(p Param) int { return int(c.values[p]) }

// Bool returns the value of p as a bool.
func (c ResolvedConfig) Bool(p Param) bool { return c.values[p] != 0 }

// Has reports whether p belongs to the config.
func (c ResolvedConfig) Has(p Param) bool {
	_, ok := c.values[p]
	return ok
}

// Keys returns the parameters in sorted order.
func (c ResolvedConfig) Keys() []Param {
	return slices.Sorted(maps.Keys(c.values))
}

// Map returns a copy of the config for reporting. Integer parameters are
// reported as int and boolean parameters as bool.
func (c ResolvedConfig) Map() map[string]any {
	out := make(map[string]any, len(c.values))
	for p, v := range c.values {
		switch paramRanges[p].kind {
		case kindBool:
			out[string(p)] = v != 0
		case kindInt:
			out[string(p)] = int(v)
		default:
			out[string(p)] = v
		}
	}

	return out
}

// Overrides returns the config as a numeric map that resolves to an equal
// config when passed back to Resolve.
func (c ResolvedConfig) Overrides() Overrides {
	out := make(Overrides, len(c.values))
	for p, v := range c.values {
		out[string(p)] = v
	}

	return out
}

func (c ResolvedConfig) String() string {
	m := c.Map()

	var b strings.Builder
	b.WriteString(c.style.String())
	b.WriteByte('{')
	for i, p := range c.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", p, m[string(p)])
	}
	b.WriteByte('}')

	return b.String()
}
