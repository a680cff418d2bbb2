package texture

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestParseScaleMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ScaleMode
		wantErr bool
	}{
		{"linear", ScaleLinear, false},
		{"NEAREST", ScaleNearest, false},
		{"", ScaleLinear, false},
		{"cubic", ScaleLinear, true},
	}
	for _, tt := range tests {
		got, err := ParseScaleMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseScaleMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseScaleMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestScaleModeText(t *testing.T) {
	var m ScaleMode
	if err := m.UnmarshalText([]byte("nearest")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if m != ScaleNearest {
		t.Errorf("UnmarshalText() = %v, want nearest", m)
	}
	b, _ := m.MarshalText()
	if string(b) != "nearest" {
		t.Errorf("MarshalText() = %q, want nearest", b)
	}
}

func TestScaleModeFilterMode(t *testing.T) {
	if ScaleLinear.FilterMode() != gputypes.FilterModeLinear {
		t.Error("ScaleLinear.FilterMode() != FilterModeLinear")
	}
	if ScaleNearest.FilterMode() != gputypes.FilterModeNearest {
		t.Error("ScaleNearest.FilterMode() != FilterModeNearest")
	}
	if ScaleNearest.Interpolator() == nil || ScaleLinear.Interpolator() == nil {
		t.Error("Interpolator() = nil")
	}
}
