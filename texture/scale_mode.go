package texture

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/assets/surface"
)

// ScaleMode selects how a texture is sampled when scaled.
type ScaleMode uint8

const (
	// ScaleLinear smooths pixels with bilinear filtering. Default.
	ScaleLinear ScaleMode = iota

	// ScaleNearest keeps hard pixel edges.
	ScaleNearest
)

// String returns the mode name.
func (m ScaleMode) String() string {
	switch m {
	case ScaleNearest:
		return "nearest"
	default:
		return "linear"
	}
}

// FilterMode maps the mode to the GPU sampler filter.
func (m ScaleMode) FilterMode() gputypes.FilterMode {
	if m == ScaleNearest {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}

// Filter maps the mode to the CPU resampling filter.
func (m ScaleMode) Filter() surface.Filter {
	if m == ScaleNearest {
		return surface.FilterNearest
	}
	return surface.FilterBilinear
}

// Interpolator returns the resampler used when scaling pixels on the CPU.
func (m ScaleMode) Interpolator() draw.Interpolator {
	return m.Filter().Interpolator()
}

// ParseScaleMode parses "linear" or "nearest" (case-insensitive).
func ParseScaleMode(s string) (ScaleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "":
		return ScaleLinear, nil
	case "nearest":
		return ScaleNearest, nil
	default:
		return ScaleLinear, fmt.Errorf("texture: unknown scale mode %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m ScaleMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ScaleMode) UnmarshalText(text []byte) error {
	mode, err := ParseScaleMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
