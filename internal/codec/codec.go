// Package codec decodes uploaded bytes, derives intrinsic image
// properties and renders thumbnails.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	// Formats the service accepts for upload.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/jenusanjay/imageservice/internal/entity"
)

// Decode parses raw bytes into an in-memory image and its format name
// ("JPEG", "PNG", "GIF"). Unsupported or malformed input fails with
// entity.ErrDecode.
func Decode(b []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", entity.ErrDecode, err)
	}

	return img, strings.ToUpper(format), nil
}

// Describe reads the intrinsic pixel dimensions of a decoded image.
func Describe(img image.Image) entity.Dimensions {
	bounds := img.Bounds()

	return entity.Dimensions{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
}

// Thumbnail downscales img to fit within maxWidth x maxHeight,
// preserving aspect ratio, and re-encodes it as JPEG. An image already
// inside the box is re-encoded unscaled; upscaling never occurs.
func Thumbnail(img image.Image, maxWidth, maxHeight int) ([]byte, error) {
	thumb := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}
