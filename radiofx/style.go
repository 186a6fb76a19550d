package radiofx

import (
	"fmt"
	"strings"
)

// Style selects the stage sequence and default parameters of a run.
type Style int

const (
	// StyleRadio emulates a vintage AM broadcast.
	StyleRadio Style = iota
	// StyleWalkie emulates a handheld two-way radio.
	StyleWalkie

	numStyles
)

var styleNames = [numStyles]string{
	StyleRadio:  "radio",
	StyleWalkie: "walkie",
}

// Styles returns all styles in declaration order.
func Styles() []Style {
	return []Style{StyleRadio, StyleWalkie}
}

// ParseStyle maps "radio" or "walkie" (case-insensitive, surrounding space
// ignored) to a Style.
func ParseStyle(s string) (Style, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for st, n := range styleNames {
		if n == name {
			return Style(st), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidEffectStyle, s)
}

// Valid reports whether s is a known style.
func (s Style) Valid() bool {
	return s >= 0 && s < numStyles
}

func (s Style) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Style(%d)", int(s))
	}

	return styleNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidEffectStyle, int(s))
	}

	return []byte(styleNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Style) UnmarshalText(text []byte) error {
	st, err := ParseStyle(string(text))
	if err != nil {
		return err
	}

	*s = st

	return nil
}
