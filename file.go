package checkerboard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSuffix is inserted before the extension of cleaned output files.
const DefaultSuffix = "_clean"

// OutputPath derives the sibling file name for a cleaned image:
// "dir/name.png" becomes "dir/name_clean.png". Output is always PNG, so other
// extensions are replaced by ".png".
func OutputPath(path, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(filepath.Base(path), ext)
	if !strings.EqualFold(ext, ".png") {
		ext = ".png"
	}

	return filepath.Join(filepath.Dir(path), base+suffix+ext)
}

// CleanFile cleans the image at path and writes it next to the original
// using OutputPath. The source file is never modified. Unreadable files and
// images without an alpha channel return an error wrapping ErrNotApplicable
// and nothing is written.
func (e *Engine) CleanFile(path, suffix string) (string, Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", Stats{}, fmt.Errorf("read %s: %v: %w", path, err, ErrNotApplicable)
	}

	img, _, err := Load(data)
	if err != nil {
		return "", Stats{}, fmt.Errorf("load %s: %w", path, err)
	}

	stats, err := e.Clean(img)
	if err != nil {
		return "", Stats{}, fmt.Errorf("clean %s: %w", path, err)
	}

	outPath := OutputPath(path, suffix)
	outFile, err := os.Create(outPath)
	if err != nil {
		return "", stats, fmt.Errorf("create output: %w", err)
	}
	defer outFile.Close()

	if err := EncodePNG(outFile, img); err != nil {
		return "", stats, fmt.Errorf("encode output: %w", err)
	}
	if err := outFile.Close(); err != nil {
		return "", stats, fmt.Errorf("close output: %w", err)
	}

	return outPath, stats, nil
}
