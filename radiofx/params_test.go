package radiofx

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, Overrides{
		"distortion_amount": 1.2,
		"noise_factor":      0.008,
		"low_cutoff":        300,
		"high_cutoff":       3000,
		"sample_rate":       8000,
		"dust_level":        0.2,
		"use_dust_effect":   1,
	}, Defaults(StyleRadio))

	assert.Equal(t, Overrides{
		"distortion_amount": 1.05,
		"noise_factor":      0.01,
		"low_cutoff":        300,
		"high_cutoff":       4000,
		"compression_ratio": 8.0,
		"attack_ms":         5,
		"release_ms":        150,
		"bit_depth":         8,
		"static_level":      0.03,
	}, Defaults(StyleWalkie))

	assert.Nil(t, Defaults(Style(5)))
}

func TestDefaultsReturnsCopy(t *testing.T) {
	d := Defaults(StyleRadio)
	d["noise_factor"] = 0.9

	assert.Equal(t, 0.008, Defaults(StyleRadio)["noise_factor"])
}

func TestDefaultsResolve(t *testing.T) {
	for _, st := range Styles() {
		cfg, err := Resolve(st, nil)
		require.NoError(t, err, st)
		assert.Equal(t, Defaults(st), cfg.Overrides())
		assert.Equal(t, Params(st), cfg.Keys())
	}
}

func TestResolveOverlaysOverrides(t *testing.T) {
	cfg, err := Resolve(StyleWalkie, Overrides{"bit_depth": 4, "static_level": 0.05})
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Int(ParamBitDepth))
	assert.Equal(t, 0.05, cfg.Float(ParamStaticLevel))
	assert.Equal(t, 8.0, cfg.Float(ParamCompressionRatio))
	assert.Equal(t, StyleWalkie, cfg.Style())
	assert.False(t, cfg.Has(ParamDustLevel))
}

func TestResolveRejectsUnknownKey(t *testing.T) {
	tests := []struct {
		style Style
		key   string
	}{
		{StyleRadio, "bit_depth"},
		{StyleRadio, "volume"},
		{StyleWalkie, "use_dust_effect"},
		{StyleWalkie, "Bit_Depth"},
	}

	for _, tt := range tests {
		_, err := Resolve(tt.style, Overrides{tt.key: 1})
		require.ErrorIs(t, err, ErrUnknownParameter)

		var pe *ParamError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, tt.key, pe.Param)
	}
}

func TestResolveRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		style Style
		key   Param
		value float64
	}{
		{"bit depth one", StyleWalkie, ParamBitDepth, 1},
		{"bit depth zero", StyleWalkie, ParamBitDepth, 0},
		{"bit depth fractional", StyleWalkie, ParamBitDepth, 7.5},
		{"bit depth huge", StyleWalkie, ParamBitDepth, 64},
		{"ratio zero", StyleWalkie, ParamCompressionRatio, 0},
		{"ratio negative", StyleWalkie, ParamCompressionRatio, -8},
		{"attack zero", StyleWalkie, ParamAttackMs, 0},
		{"release negative", StyleWalkie, ParamReleaseMs, -1},
		{"static above one", StyleWalkie, ParamStaticLevel, 1.5},
		{"noise negative", StyleRadio, ParamNoiseFactor, -0.1},
		{"distortion below one", StyleRadio, ParamDistortionAmount, 0.5},
		{"distortion NaN", StyleRadio, ParamDistortionAmount, math.NaN()},
		{"low cutoff zero", StyleRadio, ParamLowCutoff, 0},
		{"high cutoff negative", StyleRadio, ParamHighCutoff, -3000},
		{"sample rate fractional", StyleRadio, ParamSampleRate, 8000.5},
		{"sample rate tiny", StyleRadio, ParamSampleRate, 10},
		{"dust flag half", StyleRadio, ParamUseDustEffect, 0.5},
		{"dust level inf", StyleRadio, ParamDustLevel, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.style, Overrides{string(tt.key): tt.value})
			require.ErrorIs(t, err, ErrInvalidParameterRange)

			var pe *ParamError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, string(tt.key), pe.Param)
			assert.NotEmpty(t, pe.Reason)
			assert.Contains(t, pe.Error(), string(tt.key))
		})
	}
}

func TestResolveRejectsInvalidStyle(t *testing.T) {
	_, err := Resolve(Style(-1), nil)
	require.ErrorIs(t, err, ErrInvalidEffectStyle)
}

func TestParseOverrides(t *testing.T) {
	got, err := ParseOverrides(map[string]any{
		"use_dust_effect": false,
		"bit_depth":       4,
		"noise_factor":    float32(0.5),
		"sample_rate":     "11025",
		"dust_level":      uint8(0),
		"attack_ms":       int64(7),
		"flag":            "true",
	})
	require.NoError(t, err)

	assert.Equal(t, Overrides{
		"use_dust_effect": 0,
		"bit_depth":       4,
		"noise_factor":    0.5,
		"sample_rate":     11025,
		"dust_level":      0,
		"attack_ms":       7,
		"flag":            1,
	}, got)
}

func TestParseOverridesRejects(t *testing.T) {
	for _, v := range []any{"loud", nil, []int{1}, map[string]any{}} {
		_, err := ParseOverrides(map[string]any{"noise_factor": v})
		require.ErrorIs(t, err, ErrInvalidParameterRange)

		var pe *ParamError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "noise_factor", pe.Param)
	}
}

func TestResolvedConfigMap(t *testing.T) {
	cfg, err := Resolve(StyleRadio, Overrides{"use_dust_effect": 0})
	require.NoError(t, err)

	m := cfg.Map()
	assert.Equal(t, false, m["use_dust_effect"])
	assert.Equal(t, 8000, m["sample_rate"])
	assert.Equal(t, 1.2, m["distortion_amount"])
	assert.False(t, cfg.Bool(ParamUseDustEffect))

	m["sample_rate"] = 1
	assert.Equal(t, 8000, cfg.Int(ParamSampleRate), "Map must return a copy")

	assert.Equal(t,
		"radio{distortion_amount=1.2, dust_level=0.2, high_cutoff=3000, low_cutoff=300, noise_factor=0.008, sample_rate=8000, use_dust_effect=false}",
		cfg.String())
}

func TestResolvedConfigOverridesRoundTrip(t *testing.T) {
	cfg, err := Resolve(StyleWalkie, Overrides{"attack_ms": 12})
	require.NoError(t, err)

	again, err := Resolve(StyleWalkie, cfg.Overrides())
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}
