package decode

import (
	"bytes"
	"net/url"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
)

// Kind classifies a fetched payload.
type Kind uint8

const (
	// KindUnknown is binary data no parser recognizes.
	KindUnknown Kind = iota

	// KindImage is a raster image (PNG, JPEG, GIF, BMP, TIFF, WebP).
	KindImage

	// KindSVG is SVG vector markup.
	KindSVG

	// KindFont is a TrueType/OpenType (or WOFF) font file.
	KindFont

	// KindJSON is a JSON document.
	KindJSON

	// KindText is any other UTF-8 (or BOM-marked UTF-16) text.
	KindText
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindSVG:
		return "svg"
	case KindFont:
		return "font"
	case KindJSON:
		return "json"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// IsTexture reports whether the kind produces a texture.
func (k Kind) IsTexture() bool {
	return k == KindImage || k == KindSVG
}

// extensionKinds maps lower-case file extensions to kinds.
var extensionKinds = map[string]Kind{
	".png":  KindImage,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".gif":  KindImage,
	".bmp":  KindImage,
	".tif":  KindImage,
	".tiff": KindImage,
	".webp": KindImage,
	".svg":  KindSVG,
	".ttf":  KindFont,
	".otf":  KindFont,
	".woff": KindFont,
	".json": KindJSON,
	".txt":  KindText,
	".xml":  KindText,
	".csv":  KindText,
	".fnt":  KindText,
}

// Sniff classifies data. Content wins over the URL: magic numbers are
// checked first, then SVG markup, then the URL extension, and finally any
// valid UTF-8 is treated as text.
func Sniff(data []byte, rawURL string) Kind {
	if len(data) == 0 {
		return KindFromURL(rawURL)
	}

	switch {
	case filetype.IsImage(data):
		return KindImage
	case filetype.IsFont(data):
		return KindFont
	case isSVG(data):
		return KindSVG
	}

	if k := KindFromURL(rawURL); k != KindUnknown {
		return k
	}

	if utf8.Valid(data) || hasUTF16BOM(data) {
		return KindText
	}
	return KindUnknown
}

// KindFromURL classifies a locator by its file extension, ignoring any
// query string or fragment.
func KindFromURL(rawURL string) Kind {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	return extensionKinds[strings.ToLower(path.Ext(p))]
}

// isSVG reports whether data looks like SVG markup.
func isSVG(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	head = bytes.TrimPrefix(head, []byte("\xef\xbb\xbf"))
	head = bytes.TrimSpace(head)

	if bytes.HasPrefix(head, []byte("<svg")) {
		return true
	}
	if bytes.HasPrefix(head, []byte("<?xml")) || bytes.HasPrefix(head, []byte("<!--")) ||
		bytes.HasPrefix(head, []byte("<!DOCTYPE")) {
		return bytes.Contains(head, []byte("<svg"))
	}
	return false
}

func hasUTF16BOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xFE, 0xFF}) || bytes.HasPrefix(data, []byte{0xFF, 0xFE})
}
