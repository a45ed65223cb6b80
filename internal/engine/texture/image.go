// Package texture provides image decoding for GPU texture upload.
package texture

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is tightly packed 8-bit pixel data, rows top to bottom unless flipped.
type Image struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int // 1, 3 or 4
}

// Stride returns the number of bytes per row.
func (img *Image) Stride() int {
	return img.Width * img.Channels
}

// DecodeFunc decodes the image file at path. When flipVertically is set the
// first row of Pix is the bottom row of the picture.
type DecodeFunc func(path string, flipVertically bool) (*Image, error)

// Decode reads and decodes an image file.
// Grayscale sources yield 1 channel, opaque sources 3 and everything else 4.
func Decode(path string, flipVertically bool) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	var src image.Image
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		src, err = decodeTGAReader(f)
	} else {
		src, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	img := FromImage(src)
	if flipVertically {
		img.FlipVertical()
	}
	return img, nil
}

// FromImage converts a decoded image into packed bytes.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src.(type) {
	case *image.Gray, *image.Gray16:
		gray := image.NewGray(image.Rect(0, 0, w, h))
		draw.Draw(gray, gray.Bounds(), src, b.Min, draw.Src)
		return &Image{Pix: packRows(gray.Pix, gray.Stride, w, h, 1), Width: w, Height: h, Channels: 1}
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)

	if isOpaque(src) {
		pix := make([]byte, 0, w*h*3)
		for y := 0; y < h; y++ {
			row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
			for x := 0; x < w; x++ {
				pix = append(pix, row[x*4], row[x*4+1], row[x*4+2])
			}
		}
		return &Image{Pix: pix, Width: w, Height: h, Channels: 3}
	}

	return &Image{Pix: packRows(nrgba.Pix, nrgba.Stride, w, h, 4), Width: w, Height: h, Channels: 4}
}

// FlipVertical reverses the row order in place.
func (img *Image) FlipVertical() {
	stride := img.Stride()
	tmp := make([]byte, stride)
	for top, bottom := 0, img.Height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := img.Pix[top*stride : (top+1)*stride]
		b := img.Pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}

func packRows(pix []byte, stride, w, h, channels int) []byte {
	rowLen := w * channels
	if stride == rowLen {
		return pix[:rowLen*h]
	}
	out := make([]byte, 0, rowLen*h)
	for y := 0; y < h; y++ {
		out = append(out, pix[y*stride:y*stride+rowLen]...)
	}
	return out
}
