package fetch

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// Data decodes "data:" URLs (RFC 2397). Register it on a Mux under "data"
// to load inline SVG markup or base64 images.
var Data = Func(func(_ context.Context, rawURL string) ([]byte, error) {
	rest, ok := strings.CutPrefix(rawURL, "data:")
	if !ok {
		return nil, fmt.Errorf("fetch: not a data url: %w", ErrUnsupportedScheme)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("fetch: data url without payload: %w", ErrNotFound)
	}

	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("fetch: data url: %w", err)
		}
		return data, nil
	}

	text, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("fetch: data url: %w", err)
	}
	return []byte(text), nil
})
