// Package media prepares user photos for upload to the assistant.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"

	"wayfarer/gateway"
	"wayfarer/models"

	"github.com/disintegration/imaging"
)

const (
	MaxDimension = 1024
	// MaxPixels bounds the decoded size of an upload, checked from the header
	// before any pixel data is read.
	MaxPixels   = 40_000_000
	jpegQuality = 85
)

var ErrInvalidImage = errors.New("invalid image")

// NormalizeImage decodes a data URL or bare base64 image, applies its EXIF
// orientation, shrinks it to fit MaxDimension and re-encodes it as JPEG.
func NormalizeImage(input string) (models.InlineData, error) {
	_, payload := gateway.SplitDataURL(input)
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return models.InlineData{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return models.InlineData{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return models.InlineData{}, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidImage, cfg.Width, cfg.Height, MaxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return models.InlineData{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	b := img.Bounds()
	if b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return models.InlineData{}, fmt.Errorf("failed to encode image: %w", err)
	}

	return models.InlineData{
		MimeType: "image/jpeg",
		Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}
