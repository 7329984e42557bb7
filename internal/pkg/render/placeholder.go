package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var frameColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}

// placeholder draws an empty plot area with the chart title and a message.
func (r *chartRenderer) placeholder(title, message string) ([]byte, error) {
	if message == "" {
		message = "No data to display"
	}

	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)

	plot := image.Rect(40, 40, r.width-40, r.height-40)
	draw.Draw(img, plot, image.NewUniform(frameColor), image.Point{}, draw.Src)
	draw.Draw(img, plot.Inset(1), image.NewUniform(white), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	drawText(img, title, (r.width-font.MeasureString(face, title).Ceil())/2, 24, black)
	drawText(img, message, (r.width-font.MeasureString(face, message).Ceil())/2, r.height/2, black)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
