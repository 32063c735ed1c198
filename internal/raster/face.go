package raster

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// systemFontPaths lists well-known TTF locations with Arabic coverage,
// tried in order when no font path is configured. DejaVu and Liberation
// close the list as Latin-only fallbacks.
var systemFontPaths = []string{
	"/usr/share/fonts/truetype/noto/NotoSansArabic-Regular.ttf",
	"/usr/share/fonts/truetype/noto/NotoNaskhArabic-Regular.ttf",
	"/usr/share/fonts/truetype/kacst/KacstOne.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
}

// FindFontPath resolves the font file used for raster runs. An explicitly
// configured path wins; otherwise the first existing system font is used.
func FindFontPath(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err != nil {
			return "", fmt.Errorf("configured font %s: %w", configured, err)
		}
		return configured, nil
	}

	for _, path := range systemFontPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no usable font found; set PRINTER_FONT_PATH")
}

// LoadFace parses a TTF file into a font face sized to the given pixel
// height (72 DPI, so points equal pixels).
func LoadFace(path string, sizePx float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}

	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}

	return truetype.NewFace(f, &truetype.Options{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
