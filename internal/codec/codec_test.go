package codec

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/jenusanjay/imageservice/internal/entity"
	"github.com/stretchr/testify/require"
)

func jpegBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	return buf.Bytes()
}

func TestDecodeDescribe(t *testing.T) {
	tests := []struct {
		name   string
		raw    func(t *testing.T) []byte
		format string
		width  int
		height int
	}{
		{
			name:   "jpeg",
			raw:    func(t *testing.T) []byte { return jpegBytes(t, 500, 500) },
			format: "JPEG",
			width:  500,
			height: 500,
		},
		{
			name: "png",
			raw: func(t *testing.T) []byte {
				var buf bytes.Buffer
				require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 30, 20))))
				return buf.Bytes()
			},
			format: "PNG",
			width:  30,
			height: 20,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, format, err := Decode(tt.raw(t))
			require.NoError(t, err)
			require.Equal(t, tt.format, format)
			require.Equal(t, entity.Dimensions{Width: tt.width, Height: tt.height}, Describe(img))
		})
	}
}

func TestDecodeJunk(t *testing.T) {
	_, _, err := Decode([]byte("definitely not an image"))
	require.ErrorIs(t, err, entity.ErrDecode)
}

func TestThumbnailFitsBox(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		maxW, maxH int
		wantW      int
		wantH      int
	}{
		{name: "square downscale", srcW: 500, srcH: 500, maxW: 150, maxH: 150, wantW: 150, wantH: 150},
		{name: "landscape keeps aspect", srcW: 600, srcH: 300, maxW: 150, maxH: 150, wantW: 150, wantH: 75},
		{name: "portrait keeps aspect", srcW: 300, srcH: 600, maxW: 150, maxH: 150, wantW: 75, wantH: 150},
		{name: "small image never upscaled", srcW: 60, srcH: 40, maxW: 150, maxH: 150, wantW: 60, wantH: 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, _, err := Decode(jpegBytes(t, tt.srcW, tt.srcH))
			require.NoError(t, err)

			data, err := Thumbnail(src, tt.maxW, tt.maxH)
			require.NoError(t, err)

			thumb, format, err := Decode(data)
			require.NoError(t, err)
			require.Equal(t, "JPEG", format)

			size := Describe(thumb)
			require.Equal(t, tt.wantW, size.Width)
			require.Equal(t, tt.wantH, size.Height)
			require.LessOrEqual(t, size.Width, tt.srcW)
			require.LessOrEqual(t, size.Height, tt.srcH)
		})
	}
}
