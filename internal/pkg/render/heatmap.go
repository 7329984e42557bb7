package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/ds124wfegd/insight-analyzer/internal/entity"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	white     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black     = color.RGBA{A: 255}
	undefined = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	cold      = color.RGBA{R: 59, G: 76, B: 192, A: 255}
	neutral   = color.RGBA{R: 221, G: 221, B: 221, A: 255}
	warm      = color.RGBA{R: 180, G: 4, B: 38, A: 255}
)

// drawHeatmap paints an annotated correlation matrix with a diverging
// blue-white-red scale over [-1, 1].
func (r *chartRenderer) drawHeatmap(c entity.Chart) ([]byte, error) {
	if c.Matrix == nil || len(c.Matrix.Columns) == 0 {
		return nil, errNothingToDraw
	}

	face := basicfont.Face7x13
	n := len(c.Matrix.Columns)

	labelWidth := 0
	for _, name := range c.Matrix.Columns {
		if w := font.MeasureString(face, name).Ceil(); w > labelWidth {
			labelWidth = w
		}
	}

	top, left := 40, labelWidth+16
	bottom := labelWidth + 16
	cell := min((r.width-left-16)/n, (r.height-top-bottom)/n)
	if cell < 20 {
		return nil, fmt.Errorf("%d columns do not fit a %dx%d heatmap", n, r.width, r.height)
	}

	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	drawText(img, c.Title, (r.width-font.MeasureString(face, c.Title).Ceil())/2, 24, black)

	for i, row := range c.Matrix.Values {
		for j, v := range row {
			rect := image.Rect(left+j*cell, top+i*cell, left+(j+1)*cell, top+(i+1)*cell)
			fillColor := undefined
			if v != nil {
				fillColor = diverging(*v)
			}
			draw.Draw(img, rect.Inset(1), image.NewUniform(fillColor), image.Point{}, draw.Src)

			if v != nil {
				label := fmt.Sprintf("%.2f", *v)
				tx := rect.Min.X + (cell-font.MeasureString(face, label).Ceil())/2
				ty := rect.Min.Y + cell/2 + 4
				ink := black
				if *v > 0.6 || *v < -0.6 {
					ink = white
				}
				drawText(img, label, tx, ty, ink)
			}
		}
	}

	for i, name := range c.Matrix.Columns {
		w := font.MeasureString(face, name).Ceil()
		drawText(img, name, left-w-6, top+i*cell+cell/2+4, black)
		drawText(img, name, left+i*cell+(cell-w)/2, top+n*cell+16, black)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func diverging(v float64) color.RGBA {
	if v < 0 {
		return lerp(neutral, cold, -v)
	}
	return lerp(neutral, warm, v)
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

func drawText(img draw.Image, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
