package processor

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/insight-analyzer/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecodeMetadata checks format, mode and size reported for decoded uploads
func TestDecodeMetadata(t *testing.T) {
	p := NewImageProcessor()

	tests := []struct {
		name   string
		encode func(t *testing.T) []byte
		format string
		mode   string
		width  int
		height int
	}{
		{
			name: "jpeg 300x200",
			encode: func(t *testing.T) []byte {
				img := image.NewRGBA(image.Rect(0, 0, 300, 200))
				fillImageWithColor(img, color.RGBA{R: 100, G: 150, B: 200, A: 255})
				var buf bytes.Buffer
				require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
				return buf.Bytes()
			},
			format: "JPEG", mode: "RGB", width: 300, height: 200,
		},
		{
			name: "opaque png",
			encode: func(t *testing.T) []byte {
				img := image.NewRGBA(image.Rect(0, 0, 64, 32))
				fillImageWithColor(img, color.RGBA{R: 10, G: 20, B: 30, A: 255})
				return encodePNG(t, img)
			},
			format: "PNG", mode: "RGB", width: 64, height: 32,
		},
		{
			name: "translucent png",
			encode: func(t *testing.T) []byte {
				img := image.NewNRGBA(image.Rect(0, 0, 20, 40))
				draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{R: 10, G: 20, B: 30, A: 128}), image.Point{}, draw.Src)
				return encodePNG(t, img)
			},
			format: "PNG", mode: "RGBA", width: 20, height: 40,
		},
		{
			name: "grayscale png",
			encode: func(t *testing.T) []byte {
				return encodePNG(t, image.NewGray(image.Rect(0, 0, 16, 16)))
			},
			format: "PNG", mode: "L", width: 16, height: 16,
		},
		{
			name: "paletted png",
			encode: func(t *testing.T) []byte {
				pal := color.Palette{color.Black, color.White}
				return encodePNG(t, image.NewPaletted(image.Rect(0, 0, 8, 4), pal))
			},
			format: "PNG", mode: "P", width: 8, height: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := p.Decode(bytes.NewReader(tt.encode(t)))
			require.NoError(t, err)

			meta := p.Metadata(src)
			assert.Equal(t, tt.format, meta.Format)
			assert.Equal(t, tt.mode, meta.Mode)
			assert.Equal(t, tt.width, meta.Width)
			assert.Equal(t, tt.height, meta.Height)
		})
	}
}

func TestMetadataLine(t *testing.T) {
	p := NewImageProcessor()
	src := &entity.Source{Image: image.NewRGBA(image.Rect(0, 0, 300, 200)), Format: "JPEG", Mode: "RGB"}
	assert.Equal(t, "Format: JPEG, Mode: RGB, Size: (300, 200)", p.Metadata(src).Line)
}

// TestDecodeFailures covers inputs the gallery has to reject
func TestDecodeFailures(t *testing.T) {
	p := NewImageProcessor()

	_, err := p.Decode(strings.NewReader("definitely not an image"))
	assert.ErrorIs(t, err, entity.ErrDecode)

	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.Black, color.White}), nil))
	_, err = p.Decode(&buf)
	assert.ErrorIs(t, err, entity.ErrUnsupportedFormat)
}

// TestResizeOperation checks the fixed-size contract regardless of aspect ratio
func TestResizeOperation(t *testing.T) {
	p := NewImageProcessor()

	tests := []struct {
		name           string
		originalWidth  int
		originalHeight int
	}{
		{name: "landscape", originalWidth: 300, originalHeight: 200},
		{name: "portrait", originalWidth: 120, originalHeight: 800},
		{name: "smaller than target", originalWidth: 10, originalHeight: 10},
		{name: "single pixel", originalWidth: 1, originalHeight: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := image.NewRGBA(image.Rect(0, 0, tt.originalWidth, tt.originalHeight))
			fillImageWithColor(original, color.RGBA{R: 100, G: 150, B: 200, A: 255})
			src := &entity.Source{Image: original, Format: "PNG", Mode: "RGB"}

			resized, mode, err := p.Variant(src, entity.VariantResized)
			require.NoError(t, err)
			assert.Equal(t, ResizeWidth, resized.Bounds().Dx())
			assert.Equal(t, ResizeHeight, resized.Bounds().Dy())
			assert.Equal(t, "RGB", mode)
		})
	}
}

func TestGrayscaleIsSingleChannel(t *testing.T) {
	p := NewImageProcessor()
	original := image.NewRGBA(image.Rect(0, 0, 30, 20))
	fillImageWithColor(original, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	src := &entity.Source{Image: original, Format: "JPEG", Mode: "RGB"}

	img, mode, err := p.Variant(src, entity.VariantGrayscale)
	require.NoError(t, err)
	assert.Equal(t, "L", mode)

	gray, ok := img.(*image.Gray)
	require.True(t, ok, "grayscale must be an *image.Gray")
	assert.Equal(t, original.Bounds().Size(), gray.Bounds().Size())
	assert.Len(t, gray.Pix, 30*20, "one byte per pixel")
	assert.InDelta(t, 76, int(gray.GrayAt(5, 5).Y), 1, "pure red maps to 0.299 luma")
}

func TestRotateCounterClockwise(t *testing.T) {
	p := NewImageProcessor()
	original := image.NewNRGBA(image.Rect(0, 0, 40, 10))
	original.SetNRGBA(39, 0, color.NRGBA{R: 255, A: 255})
	src := &entity.Source{Image: original, Format: "PNG", Mode: "RGBA"}

	img, _, err := p.Variant(src, entity.VariantRotated)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())

	// top-right corner ends up top-left after a counter-clockwise turn
	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}

func TestMirrorRoundTrip(t *testing.T) {
	p := NewImageProcessor()
	original := image.NewNRGBA(image.Rect(0, 0, 17, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 17; x++ {
			original.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 15), G: uint8(y * 28), B: uint8(x + y), A: 255})
		}
	}
	src := &entity.Source{Image: original, Format: "PNG", Mode: "RGB"}

	once, _, err := p.Variant(src, entity.VariantMirrored)
	require.NoError(t, err)
	assert.NotEqual(t, original.Pix, imaging.Clone(once).Pix)

	twice, _, err := p.Variant(&entity.Source{Image: once, Format: "PNG", Mode: "RGB"}, entity.VariantMirrored)
	require.NoError(t, err)
	assert.Equal(t, original.Pix, imaging.Clone(twice).Pix)
}

// TestFilterOperations runs the fixed-kernel filters on a flat image
func TestFilterOperations(t *testing.T) {
	p := NewImageProcessor()

	tests := []struct {
		name    string
		variant string
		want    uint8
	}{
		{name: "blur keeps flat colour", variant: entity.VariantBlur, want: 100},
		{name: "sharpen keeps flat colour", variant: entity.VariantSharpen, want: 100},
		{name: "edge enhance keeps flat colour", variant: entity.VariantEdgeEnhance, want: 100},
		{name: "contour turns flat areas white", variant: entity.VariantContour, want: 255},
		{name: "emboss turns flat areas mid grey", variant: entity.VariantEmboss, want: 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := image.NewRGBA(image.Rect(0, 0, 50, 40))
			fillImageWithColor(original, color.RGBA{R: 100, G: 100, B: 100, A: 255})
			src := &entity.Source{Image: original, Format: "PNG", Mode: "RGB"}

			img, mode, err := p.Variant(src, tt.variant)
			require.NoError(t, err)
			assert.Equal(t, "RGB", mode)
			assert.Equal(t, original.Bounds().Size(), img.Bounds().Size())

			out := imaging.Clone(img)
			assert.InDelta(t, int(tt.want), int(out.Pix[(20*out.Stride)+25*4]), 1)
			assert.Equal(t, uint8(100), original.Pix[0], "source must not be modified")
		})
	}
}

func TestVariantsAreIndependent(t *testing.T) {
	p := NewImageProcessor()
	original := image.NewRGBA(image.Rect(0, 0, 300, 200))
	fillImageWithColor(original, color.RGBA{R: 50, G: 100, B: 150, A: 255})
	src := &entity.Source{Image: original, Format: "JPEG", Mode: "RGB"}

	for _, name := range entity.VariantNames {
		img, _, err := p.Variant(src, name)
		require.NoError(t, err, name)
		require.NotNil(t, img, name)

		switch name {
		case entity.VariantResized:
			assert.Equal(t, image.Pt(150, 150), img.Bounds().Size())
		case entity.VariantRotated:
			assert.Equal(t, image.Pt(200, 300), img.Bounds().Size())
		default:
			assert.Equal(t, image.Pt(300, 200), img.Bounds().Size(), name)
		}
	}

	_, _, err := p.Variant(src, "sepia")
	assert.ErrorIs(t, err, entity.ErrUnknownVariant)
}

func TestEncodePNG(t *testing.T) {
	p := NewImageProcessor()
	data, err := p.EncodePNG(image.NewGray(image.Rect(0, 0, 3, 3)))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.IsType(t, &image.Gray{}, img)
	assert.True(t, strings.HasPrefix(DataURL(data), "data:image/png;base64,"))
}

func TestCustomResizeSize(t *testing.T) {
	p := NewImageProcessorWithSize(64, 32)
	src := &entity.Source{Image: image.NewRGBA(image.Rect(0, 0, 10, 10)), Format: "PNG", Mode: "RGB"}
	img, _, err := p.Variant(src, entity.VariantResized)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(64, 32), img.Bounds().Size())
}

// fillImageWithColor заполняет изображение одним цветом
func fillImageWithColor(img *image.RGBA, color color.RGBA) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.Set(x, y, color)
		}
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
