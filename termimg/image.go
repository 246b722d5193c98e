// Package termimg renders embedded cover art with the kitty graphics
// protocol.
package termimg

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/dolmen-go/kittyimg"
)

// Image is cover art encoded for the terminal, sized in character cells.
type Image struct {
	Cols int
	Rows int
	Data string
}

// Empty reports whether there is nothing to draw.
func (i Image) Empty() bool {
	return i.Data == ""
}

func cropToSquare(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	size := min(h, w)
	x0 := b.Min.X + (w-size)/2
	y0 := b.Min.Y + (h-size)/2
	rect := image.Rect(x0, y0, x0+size, y0+size)
	sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok {
		return img
	}
	return sub.SubImage(rect)
}

// Encode decodes a jpeg or png picture, crops it square and encodes it as
// a kitty escape sequence. Empty input yields an empty Image.
func Encode(data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, err
	}
	square := cropToSquare(img)

	var w bytes.Buffer
	if err := kittyimg.Fprint(&w, square); err != nil {
		return Image{}, err
	}

	px := square.Bounds().Dx()
	cellW, cellH := cellSize()
	return Image{
		Cols: max(px/cellW, 1),
		Rows: max(px/cellH, 1),
		Data: w.String(),
	}, nil
}
