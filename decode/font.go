package decode

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
)

// FontInfo summarizes a parsed font.
type FontInfo struct {
	// Family is the font family name.
	Family string

	// UnitsPerEm is the design grid size.
	UnitsPerEm int
}

// Font parses a TrueType or OpenType font file.
func Font(data []byte) (*font.Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	// ParseTTF returns a *Face which embeds the thread-safe *Font.
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: font: %w", err)
	}
	return face, nil
}

// DescribeFont returns the family and units-per-em of a parsed face.
func DescribeFont(face *font.Face) FontInfo {
	return FontInfo{
		Family:     face.Describe().Family,
		UnitsPerEm: int(face.Upem()),
	}
}
