package radiofx

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-radiofx/dsp/audio"
)

var (
	// ErrInvalidEffectStyle is returned for a style selector other than
	// "radio" or "walkie".
	ErrInvalidEffectStyle = errors.New("radiofx: invalid effect style")
	// ErrUnknownParameter is returned for an override key that the active
	// style does not recognise.
	ErrUnknownParameter = errors.New("radiofx: unknown parameter")
	// ErrInvalidParameterRange is returned for a parameter value outside its
	// valid range or inconsistent with another parameter or the signal.
	ErrInvalidParameterRange = errors.New("radiofx: invalid parameter range")
	// ErrUnstableFilterConfig is returned when a designed filter has poles
	// on or outside the unit circle or non-finite coefficients.
	ErrUnstableFilterConfig = errors.New("radiofx: unstable filter configuration")
	// ErrEmptySignal is returned for an input with zero samples per channel.
	ErrEmptySignal = audio.ErrEmptySignal
)

// ParamError describes a rejected parameter. It unwraps to one of the
// sentinel errors above.
type ParamError struct {
	Param  string
	Value  any
	Reason string
	Err    error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%v: %s=%v: %s", e.Err, e.Param, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error { return e.Err }

func rangeError(p Param, v any, format string, args ...any) *ParamError {
	return &ParamError{
		Param:  string(p),
		Value:  v,
		Reason: fmt.Sprintf(format, args...),
		Err:    ErrInvalidParameterRange,
	}
}
