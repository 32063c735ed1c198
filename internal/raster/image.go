package raster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
)

// logoThreshold is tuned for photographic logos, which scan lighter than
// rendered text.
const logoThreshold = 150

// FromImage converts an arbitrary image into a printer block: resized to
// the target dot width (byte-aligned), grayscaled and thresholded to
// 1-bit.
func FromImage(img image.Image, targetWidth int) *Block {
	width := roundUpTo8(targetWidth)
	if img.Bounds().Dx() != width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}
	return packImage(img, width, img.Bounds().Dy(), logoThreshold)
}

// DecodeBase64 decodes a base64-encoded PNG or JPEG.
func DecodeBase64(s string) (image.Image, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 image: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// LoadImageFile decodes a PNG or JPEG from disk.
func LoadImageFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}
