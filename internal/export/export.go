// Package export persists completed frames as PNG images with
// per-fractal sequential filenames.
package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/san-kum/fractal/internal/render"
)

// Image unpacks a frame into a standard RGBA image.
func Image(f *render.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, b := f.Pix[y*f.Width+x].RGB()
			i := img.PixOffset(x, y)
			img.Pix[i+0] = r
			img.Pix[i+1] = g
			img.Pix[i+2] = b
			img.Pix[i+3] = 0xff
		}
	}
	return img
}

// SavePNG writes the frame to the given path.
func SavePNG(f *render.Frame, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, Image(f)); err != nil {
		return fmt.Errorf("export: encode %s: %w", path, err)
	}
	return nil
}

// NextFilename returns the next free "<name>-<n>.png" path inside dir,
// scanning existing files for the highest n. The directory is created if
// missing. name is treated as an opaque label.
func NextFilename(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	pattern, err := regexp.Compile("^" + regexp.QuoteMeta(name) + `-(\d+)\.png$`)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	highest := 0
	for _, e := range entries {
		m := pattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}

	file := fmt.Sprintf("%s-%d.png", name, highest+1)
	return filepath.Join(dir, file), nil
}

// SaveNext saves the frame under the next sequential filename for the
// given fractal name and returns the path written.
func SaveNext(f *render.Frame, dir, name string) (string, error) {
	// Spaces in display names make awkward filenames.
	path, err := NextFilename(dir, strings.ReplaceAll(name, " ", "_"))
	if err != nil {
		return "", err
	}
	if err := SavePNG(f, path); err != nil {
		return "", err
	}
	return path, nil
}
