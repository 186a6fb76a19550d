package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-radiofx/radiofx"
)

func TestParseYAML(t *testing.T) {
	s, err := Parse([]byte(`
effect: walkie
seed: 42
style_params:
  bit_depth: 4
  static_level: 0.05
`))
	require.NoError(t, err)

	assert.Equal(t, radiofx.StyleWalkie, s.Style)
	assert.True(t, s.HasSeed)
	assert.Equal(t, uint64(42), s.Seed)
	assert.Equal(t, radiofx.Overrides{"bit_depth": 4, "static_level": 0.05}, s.Overrides)
	assert.Equal(t, 4, s.Config.Int(radiofx.ParamBitDepth))
}

func TestParseJSON(t *testing.T) {
	s, err := Parse([]byte(`{"effect": "radio", "style_params": {"use_dust_effect": false, "sample_rate": 11025}}`))
	require.NoError(t, err)

	assert.Equal(t, radiofx.StyleRadio, s.Style)
	assert.False(t, s.HasSeed)
	assert.False(t, s.Config.Bool(radiofx.ParamUseDustEffect))
	assert.Equal(t, 11025, s.Config.Int(radiofx.ParamSampleRate))
}

func TestParseEmptyDefaultsToRadio(t *testing.T) {
	s, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, radiofx.StyleRadio, s.Style)
	assert.Equal(t, radiofx.Defaults(radiofx.StyleRadio), s.Config.Overrides())
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown style", "effect: shortwave", radiofx.ErrInvalidEffectStyle},
		{"unknown parameter", "effect: radio\nstyle_params:\n  bit_depth: 4", radiofx.ErrUnknownParameter},
		{"out of range", "effect: walkie\nstyle_params:\n  bit_depth: 1", radiofx.ErrInvalidParameterRange},
		{"not a number", "effect: walkie\nstyle_params:\n  bit_depth: loud", radiofx.ErrInvalidParameterRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseRejectsUnknownField(t *testing.T) {
	_, err := Parse([]byte("effect: radio\nvolume: 11\n"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walkie.yaml")
	require.NoError(t, os.WriteFile(path, []byte("effect: walkie\nstyle_params:\n  attack_ms: 2\n"), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, s.Config.Float(radiofx.ParamAttackMs))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg, err := radiofx.Resolve(radiofx.StyleWalkie, radiofx.Overrides{"bit_depth": 6})
	require.NoError(t, err)

	seed := uint64(7)
	data, err := Marshal(cfg, &seed)
	require.NoError(t, err)

	s, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, s.Config)
	assert.Equal(t, seed, s.Seed)
}
