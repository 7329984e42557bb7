package processor

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/insight-analyzer/internal/entity"
)

const (
	ResizeWidth  = 150
	ResizeHeight = 150
)

type ImageProcessor interface {
	Decode(r io.Reader) (*entity.Source, error)
	Metadata(src *entity.Source) entity.ImageMetadata
	Variant(src *entity.Source, name string) (image.Image, string, error)
	EncodePNG(img image.Image) ([]byte, error)
}

type imageProcessor struct {
	resizeWidth  int
	resizeHeight int
}

func NewImageProcessor() ImageProcessor {
	return &imageProcessor{resizeWidth: ResizeWidth, resizeHeight: ResizeHeight}
}

// NewImageProcessorWithSize overrides the fixed resize target.
func NewImageProcessorWithSize(width, height int) ImageProcessor {
	if width <= 0 || height <= 0 {
		return NewImageProcessor()
	}
	return &imageProcessor{resizeWidth: width, resizeHeight: height}
}

func (p *imageProcessor) Decode(r io.Reader) (*entity.Source, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDecode, err)
	}

	var name string
	switch format {
	case "jpeg":
		name = "JPEG"
	case "png":
		name = "PNG"
	default:
		return nil, fmt.Errorf("%w: got %s", entity.ErrUnsupportedFormat, format)
	}

	return &entity.Source{Image: img, Format: name, Mode: ModeOf(img)}, nil
}

// ModeOf names the pixel layout of a decoded image.
func ModeOf(img image.Image) string {
	switch img.(type) {
	case *image.Gray:
		return "L"
	case *image.Gray16:
		return "I;16"
	case *image.Paletted:
		return "P"
	case *image.CMYK:
		return "CMYK"
	case *image.NRGBA, *image.NRGBA64:
		return "RGBA"
	default:
		return "RGB"
	}
}

func (p *imageProcessor) Metadata(src *entity.Source) entity.ImageMetadata {
	b := src.Image.Bounds()
	return entity.ImageMetadata{
		Format: src.Format,
		Mode:   src.Mode,
		Width:  b.Dx(),
		Height: b.Dy(),
		Line:   fmt.Sprintf("Format: %s, Mode: %s, Size: (%d, %d)", src.Format, src.Mode, b.Dx(), b.Dy()),
	}
}

// Variant derives one image from the original. Every variant starts from
// src.Image, so variants never depend on each other. The returned string is
// the mode of the result.
func (p *imageProcessor) Variant(src *entity.Source, name string) (image.Image, string, error) {
	mode := src.Mode
	if mode == "P" || mode == "CMYK" {
		mode = "RGB"
	}

	switch name {
	case entity.VariantOriginal:
		return src.Image, src.Mode, nil
	case entity.VariantGrayscale:
		return Grayscale(src.Image), "L", nil
	case entity.VariantResized:
		return imaging.Resize(src.Image, p.resizeWidth, p.resizeHeight, imaging.CatmullRom), mode, nil
	case entity.VariantRotated:
		return imaging.Rotate90(src.Image), mode, nil
	case entity.VariantMirrored:
		return imaging.FlipH(src.Image), mode, nil
	case entity.VariantBlur:
		return imaging.Convolve5x5(src.Image, blurKernel, nil), mode, nil
	case entity.VariantSharpen:
		return imaging.Convolve3x3(src.Image, sharpenKernel, nil), mode, nil
	case entity.VariantEdgeEnhance:
		return imaging.Convolve3x3(src.Image, edgeEnhanceKernel, nil), mode, nil
	case entity.VariantContour:
		return imaging.Convolve3x3(src.Image, contourKernel, &imaging.ConvolveOptions{Bias: 255}), mode, nil
	case entity.VariantEmboss:
		return imaging.Convolve3x3(src.Image, embossKernel, &imaging.ConvolveOptions{Bias: 128}), mode, nil
	default:
		return nil, "", fmt.Errorf("%w: %s", entity.ErrUnknownVariant, name)
	}
}

// Grayscale returns a single-channel luminance image (ITU-R 601 weights).
func Grayscale(img image.Image) *image.Gray {
	nrgba := imaging.Grayscale(img)
	b := nrgba.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		src := nrgba.Pix[y*nrgba.Stride:]
		dst := gray.Pix[y*gray.Stride:]
		for x := 0; x < b.Dx(); x++ {
			dst[x] = src[x*4]
		}
	}
	return gray
}

func (p *imageProcessor) EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DataURL(pngData []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData)
}
