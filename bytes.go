package checkerboard

import (
	"bytes"
	"fmt"
)

// CleanBytes decodes raw image bytes, removes the checkerboard with the
// default engine and returns the result encoded as PNG.
func CleanBytes(data []byte) ([]byte, Stats, error) {
	return getDefaultEngine().CleanBytes(data)
}

// CleanBytes is like the package-level CleanBytes but uses e.
func (e *Engine) CleanBytes(data []byte) ([]byte, Stats, error) {
	img, _, err := Load(data)
	if err != nil {
		return nil, Stats{}, err
	}

	stats, err := e.Clean(img)
	if err != nil {
		return nil, Stats{}, err
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, Stats{}, fmt.Errorf("encode png: %w", err)
	}

	return buf.Bytes(), stats, nil
}
