package decode

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Text decodes a text payload to a UTF-8 string.
//
// A UTF-8 or UTF-16 byte order mark selects the encoding and is stripped;
// without a BOM the payload is taken as UTF-8.
func Text(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", fmt.Errorf("decode: text: %w", err)
	}
	return string(out), nil
}
