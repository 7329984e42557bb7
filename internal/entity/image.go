package entity

import "image"

// Variant names, in display order.
const (
	VariantOriginal    = "original"
	VariantGrayscale   = "grayscale"
	VariantResized     = "resized"
	VariantRotated     = "rotated"
	VariantMirrored    = "mirrored"
	VariantBlur        = "blur"
	VariantSharpen     = "sharpen"
	VariantEdgeEnhance = "edge_enhance"
	VariantContour     = "contour"
	VariantEmboss      = "emboss"
)

var VariantNames = []string{
	VariantGrayscale,
	VariantResized,
	VariantRotated,
	VariantMirrored,
	VariantBlur,
	VariantSharpen,
	VariantEdgeEnhance,
	VariantContour,
	VariantEmboss,
}

var VariantCaptions = map[string]string{
	VariantOriginal:    "Original Image",
	VariantGrayscale:   "Grayscale",
	VariantResized:     "Resized (150x150)",
	VariantRotated:     "Rotated 90°",
	VariantMirrored:    "Flipped Horizontally",
	VariantBlur:        "Blur",
	VariantSharpen:     "Sharpen",
	VariantEdgeEnhance: "Edge Enhance",
	VariantContour:     "Contour",
	VariantEmboss:      "Emboss",
}

// Source is a decoded image together with what the decoder reported about it.
type Source struct {
	Image  image.Image
	Format string
	Mode   string
}

type ImageMetadata struct {
	Format string `json:"format"`
	Mode   string `json:"mode"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Line   string `json:"line"`
}

type ImageVariant struct {
	Name    string `json:"name"`
	Caption string `json:"caption"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Mode    string `json:"mode"`
	DataURL string `json:"data_url"`
}

type GalleryResponse struct {
	Source   string         `json:"source"`
	Metadata ImageMetadata  `json:"metadata"`
	Original ImageVariant   `json:"original"`
	Variants []ImageVariant `json:"variants"`
}
