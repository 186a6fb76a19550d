package audio

import (
	"errors"
	"testing"
	"time"
)

func TestNewValidates(t *testing.T) {
	tests := []struct {
		name     string
		rate     int
		channels [][]float64
		wantErr  error
	}{
		{name: "mono", rate: 8000, channels: [][]float64{{0, 0.5}}},
		{name: "stereo", rate: 8000, channels: [][]float64{{0, 0.5}, {0.1, 0.2}}},
		{name: "zero rate", rate: 0, channels: [][]float64{{0}}, wantErr: ErrInvalidSignal},
		{name: "no channels", rate: 8000, wantErr: ErrInvalidSignal},
		{name: "ragged", rate: 8000, channels: [][]float64{{0, 1}, {0}}, wantErr: ErrInvalidSignal},
		{name: "empty", rate: 8000, channels: [][]float64{{}, {}}, wantErr: ErrEmptySignal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.rate, tt.channels...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if s.NumChannels() != len(tt.channels) {
				t.Fatalf("NumChannels() = %d, want %d", s.NumChannels(), len(tt.channels))
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	s, err := New(100, []float64{0.1, 0.2})
	if err != nil {
		t.Fatal(err)
	}

	c := s.Clone()
	c.Channel(0)[0] = 0.9

	if s.Channel(0)[0] != 0.1 {
		t.Fatalf("clone shares storage with original")
	}
}

func TestClampAndMaxAbs(t *testing.T) {
	s, err := New(100, []float64{1.5, -0.5}, []float64{-2, 0.25})
	if err != nil {
		t.Fatal(err)
	}

	if got := s.MaxAbs(); got != 2 {
		t.Fatalf("MaxAbs() = %v, want 2", got)
	}
	if n := s.Clamp(); n != 2 {
		t.Fatalf("Clamp() = %d, want 2", n)
	}
	if got := s.MaxAbs(); got != 1 {
		t.Fatalf("MaxAbs() after clamp = %v, want 1", got)
	}
}

func TestDurationAndScale(t *testing.T) {
	s, err := New(4, []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Duration(); got != 1500*time.Millisecond {
		t.Fatalf("Duration() = %v, want 1.5s", got)
	}

	s.Scale(0.5)
	if s.Channel(0)[3] != 0.25 {
		t.Fatalf("Scale() sample = %v, want 0.25", s.Channel(0)[3])
	}
}
