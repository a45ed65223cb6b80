package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("TGA data truncated")

func init() {
	// TGA has no magic number; match the common header prefix of
	// files without an ID field or colour map.
	image.RegisterFormat("tga", "\x00\x00\x02", decodeTGAReader, decodeTGAConfig)
	image.RegisterFormat("tga", "\x00\x00\x0a", decodeTGAReader, decodeTGAConfig)
}

type tgaHeader struct {
	idLength    int
	imageType   byte
	width       int
	height      int
	bpp         int
	topToBottom bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, errTGATruncated
	}
	h := tgaHeader{
		idLength:    int(data[0]),
		imageType:   data[2],
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bpp:         int(data[16]),
		topToBottom: data[17]&0x20 != 0,
	}
	if data[1] != 0 {
		return h, fmt.Errorf("color-mapped TGA not supported")
	}
	if h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE {
		return h, fmt.Errorf("unsupported TGA type %d", h.imageType)
	}
	if h.bpp != 24 && h.bpp != 32 {
		return h, fmt.Errorf("unsupported TGA bit depth %d", h.bpp)
	}
	return h, nil
}

func decodeTGAReader(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	img, err := DecodeTGA(data)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func decodeTGAConfig(r io.Reader) (image.Config, error) {
	buf := make([]byte, tgaHeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return image.Config{}, errTGATruncated
	}
	h, err := parseTGAHeader(buf)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: h.width, Height: h.height}, nil
}

// DecodeTGA decodes uncompressed (type 2) and RLE (type 10) true-color TGA data.
// The result is top-to-bottom regardless of the file's origin bit.
func DecodeTGA(data []byte) (*image.NRGBA, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}
	pixelData := data[offset:]

	img := image.NewNRGBA(image.Rect(0, 0, h.width, h.height))
	bytesPerPixel := h.bpp / 8

	put := func(pixelIdx int, px []byte) {
		x := pixelIdx % h.width
		y := pixelIdx / h.width
		if !h.topToBottom {
			y = h.height - 1 - y
		}
		a := uint8(255)
		if bytesPerPixel == 4 {
			a = px[3]
		}
		// BGR(A) on disk.
		img.SetNRGBA(x, y, color.NRGBA{R: px[2], G: px[1], B: px[0], A: a})
	}

	pixelCount := h.width * h.height

	if h.imageType == TGATypeUncompressed {
		if len(pixelData) < pixelCount*bytesPerPixel {
			return nil, errTGATruncated
		}
		for i := 0; i < pixelCount; i++ {
			put(i, pixelData[i*bytesPerPixel:])
		}
		return img, nil
	}

	pixelIdx, dataIdx := 0, 0
	for pixelIdx < pixelCount {
		if dataIdx >= len(pixelData) {
			return nil, errTGATruncated
		}
		packet := pixelData[dataIdx]
		dataIdx++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run packet: one pixel repeated.
			if dataIdx+bytesPerPixel > len(pixelData) {
				return nil, errTGATruncated
			}
			px := pixelData[dataIdx : dataIdx+bytesPerPixel]
			dataIdx += bytesPerPixel
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				put(pixelIdx, px)
				pixelIdx++
			}
			continue
		}

		// Raw packet.
		for i := 0; i < count && pixelIdx < pixelCount; i++ {
			if dataIdx+bytesPerPixel > len(pixelData) {
				return nil, errTGATruncated
			}
			put(pixelIdx, pixelData[dataIdx:dataIdx+bytesPerPixel])
			dataIdx += bytesPerPixel
			pixelIdx++
		}
	}

	return img, nil
}
