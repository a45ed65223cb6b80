package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// makeTGA builds a 2x2 TGA. Pixels are given in file order, BGR(A).
func makeTGA(imageType byte, bpp int, topToBottom bool, body []byte) []byte {
	h := make([]byte, tgaHeaderSize)
	h[2] = imageType
	h[12], h[14] = 2, 2
	h[16] = byte(bpp)
	if topToBottom {
		h[17] = 0x20
	}
	return append(h, body...)
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("writing png: %v", err)
	}
	return path
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	// Bottom-up: first row in the file is the bottom row.
	body := []byte{
		0, 0, 255, 0, 255, 0, // bottom: red, green
		255, 0, 0, 255, 255, 255, // top: blue, white
	}
	img, err := DecodeTGA(makeTGA(TGATypeUncompressed, 24, false, body))
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}

	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 1, color.NRGBA{255, 0, 0, 255}},
		{1, 1, color.NRGBA{0, 255, 0, 255}},
		{0, 0, color.NRGBA{0, 0, 255, 255}},
		{1, 0, color.NRGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := img.NRGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDecodeTGARLE(t *testing.T) {
	body := []byte{
		0x81, 10, 20, 30, 128, // run of 2
		0x01, 1, 2, 3, 4, 5, 6, 7, 8, // raw 2
	}
	img, err := DecodeTGA(makeTGA(TGATypeRLE, 32, true, body))
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}

	if got, want := img.NRGBAAt(1, 0), (color.NRGBA{30, 20, 10, 128}); got != want {
		t.Errorf("run pixel = %v, want %v", got, want)
	}
	if got, want := img.NRGBAAt(1, 1), (color.NRGBA{7, 6, 5, 8}); got != want {
		t.Errorf("raw pixel = %v, want %v", got, want)
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte { d := makeTGA(TGATypeUncompressed, 24, false, make([]byte, 12)); d[1] = 1; return d }()},
		{"grayscale type", makeTGA(3, 24, false, make([]byte, 12))},
		{"16 bit", makeTGA(TGATypeUncompressed, 16, false, make([]byte, 8))},
		{"truncated pixels", makeTGA(TGATypeUncompressed, 24, false, make([]byte, 5))},
		{"truncated rle", makeTGA(TGATypeRLE, 24, false, []byte{0x83, 1})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestDecodeChannels(t *testing.T) {
	dir := t.TempDir()

	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	gray.SetGray(1, 0, color.Gray{Y: 77})

	opaque := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 255
	}

	translucent := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	translucent.SetNRGBA(2, 1, color.NRGBA{10, 20, 30, 40})

	tests := []struct {
		name     string
		img      image.Image
		channels int
	}{
		{"gray.png", gray, 1},
		{"rgb.png", opaque, 3},
		{"rgba.png", translucent, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePNG(t, dir, tt.name, tt.img)
			img, err := Decode(path, false)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if img.Channels != tt.channels {
				t.Errorf("channels = %d, want %d", img.Channels, tt.channels)
			}
			if img.Width != 3 || img.Height != 2 {
				t.Errorf("size = %dx%d, want 3x2", img.Width, img.Height)
			}
			if len(img.Pix) != 3*2*tt.channels {
				t.Errorf("len(Pix) = %d, want %d", len(img.Pix), 3*2*tt.channels)
			}
		})
	}
}

func TestDecodeFlipVertically(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	src.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 100})
	src.SetNRGBA(0, 1, color.NRGBA{0, 0, 255, 100})
	path := writePNG(t, t.TempDir(), "flip.png", src)

	plain, err := Decode(path, false)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(plain.Pix[:4], []byte{255, 0, 0, 100}) {
		t.Errorf("unflipped first row = %v, want red", plain.Pix[:4])
	}

	flipped, err := Decode(path, true)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(flipped.Pix[:4], []byte{0, 0, 255, 100}) {
		t.Errorf("flipped first row = %v, want blue", flipped.Pix[:4])
	}
}

func TestDecodeTGAFile(t *testing.T) {
	body := []byte{
		0, 0, 255, 0, 255, 0,
		255, 0, 0, 255, 255, 255,
	}
	path := filepath.Join(t.TempDir(), "tile.TGA")
	if err := os.WriteFile(path, makeTGA(TGATypeUncompressed, 24, false, body), 0644); err != nil {
		t.Fatal(err)
	}

	img, err := Decode(path, true)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Channels != 3 {
		t.Errorf("channels = %d, want 3", img.Channels)
	}
	// Flipped back to file order: bottom row (red) first.
	if !bytes.Equal(img.Pix[:3], []byte{255, 0, 0}) {
		t.Errorf("first pixel = %v, want red", img.Pix[:3])
	}
}

func TestDecodeTGAViaRegisteredFormat(t *testing.T) {
	data := makeTGA(TGATypeUncompressed, 32, true, make([]byte, 16))
	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("image.Decode: %v", err)
	}
	if format != "tga" {
		t.Errorf("format = %q, want tga", format)
	}
}

func TestDecodeMissingFile(t *testing.T) {
	if _, err := Decode(filepath.Join(t.TempDir(), "nope.png"), true); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDecodeGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(path, []byte("definitely not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(path, false); err == nil {
		t.Error("expected error for undecodable file")
	}
}
