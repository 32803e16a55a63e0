package creative

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font/basicfont"
)

func testImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func TestResizeToAspectRatio(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		ratio      string
		wantW      int
		wantH      int
	}{
		{"square to square", 500, 500, "1:1", 1080, 1080},
		{"square to portrait", 500, 500, "9:16", 1080, 1920},
		{"square to landscape", 500, 500, "16:9", 1920, 1080},
		{"wide to square", 4000, 500, "1:1", 1080, 1080},
		{"wide to portrait", 4000, 500, "9:16", 1080, 1920},
		{"tall to landscape", 500, 4000, "16:9", 1920, 1080},
		{"tall to portrait", 500, 4000, "9:16", 1080, 1920},
		{"already target size", 1080, 1080, "1:1", 1080, 1080},
		{"upscale small source", 100, 100, "16:9", 1920, 1080},
	}

	engine := NewEngine(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.ResizeToAspectRatio(testImage(tt.srcW, tt.srcH), tt.ratio)
			if err != nil {
				t.Fatalf("ResizeToAspectRatio() error = %v", err)
			}
			bounds := got.Bounds()
			if bounds.Dx() != tt.wantW || bounds.Dy() != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResizeToAspectRatioInvalid(t *testing.T) {
	engine := NewEngine(nil)
	for _, ratio := range []string{"4:3", "1:2", "", "16x9"} {
		if _, err := engine.ResizeToAspectRatio(testImage(100, 100), ratio); !errors.Is(err, ErrInvalidAspectRatio) {
			t.Errorf("ResizeToAspectRatio(%q) error = %v, want ErrInvalidAspectRatio", ratio, err)
		}
	}
}

func TestResizeDoesNotMutateSource(t *testing.T) {
	src := testImage(300, 200)
	snapshot := append([]uint8(nil), src.Pix...)

	engine := NewEngine(nil)
	if _, err := engine.ResizeToAspectRatio(src, "1:1"); err != nil {
		t.Fatalf("ResizeToAspectRatio() error = %v", err)
	}

	for i := range snapshot {
		if src.Pix[i] != snapshot[i] {
			t.Fatalf("source pixel data mutated at offset %d", i)
		}
	}
}

func TestWrapText(t *testing.T) {
	// Face7x13 advances 7px per glyph, so widths are exact multiples.
	face := basicfont.Face7x13

	tests := []struct {
		name     string
		text     string
		maxWidth int
		want     []string
	}{
		{"fits on one line", "hello world", 11 * 7, []string{"hello world"}},
		{"wraps at word boundary", "hello world foo", 11 * 7, []string{"hello world", "foo"}},
		{"each word on own line", "aaaa bbbb cccc", 5 * 7, []string{"aaaa", "bbbb", "cccc"}},
		{"oversized word kept whole", "tiny extraordinarily tiny", 8 * 7, []string{"tiny", "extraordinarily", "tiny"}},
		{"empty text", "", 100, nil},
		{"whitespace only", "   ", 100, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, height := WrapText(tt.text, tt.maxWidth, face)
			if len(lines) != len(tt.want) {
				t.Fatalf("WrapText() lines = %v, want %v", lines, tt.want)
			}
			for i := range lines {
				if lines[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, lines[i], tt.want[i])
				}
			}
			if wantHeight := len(tt.want) * lineHeight(face); height != wantHeight {
				t.Errorf("height = %d, want %d", height, wantHeight)
			}
		})
	}
}

func TestAddTextOverlay(t *testing.T) {
	engine := NewEngine(nil)
	src := testImage(1080, 1080)
	snapshot := append([]uint8(nil), src.Pix...)

	out := engine.AddTextOverlay(src, "Adventure awaits this summer", "Trail Jacket")

	bounds := out.Bounds()
	if bounds.Dx() != 1080 || bounds.Dy() != 1080 {
		t.Fatalf("overlay changed dimensions to %dx%d", bounds.Dx(), bounds.Dy())
	}

	for i := range snapshot {
		if src.Pix[i] != snapshot[i] {
			t.Fatalf("source pixel data mutated at offset %d", i)
		}
	}

	// The band darkens the bottom sixth, so a pixel there must differ from
	// the untouched source while a pixel near the top edge center stays close.
	bandR, bandG, bandB, _ := out.At(540, 1050).RGBA()
	srcR, srcG, srcB, _ := src.At(540, 1050).RGBA()
	if bandR == srcR && bandG == srcG && bandB == srcB {
		t.Error("bottom band pixel unchanged, expected darkened overlay")
	}
}

func TestProcessCreative(t *testing.T) {
	engine := NewEngine(nil)

	for _, ratio := range AspectRatios {
		t.Run(ratio, func(t *testing.T) {
			out, err := engine.ProcessCreative(testImage(640, 480), ratio, "Buy now", "Summit Pack")
			if err != nil {
				t.Fatalf("ProcessCreative() error = %v", err)
			}
			want := AspectSizes[ratio]
			bounds := out.Bounds()
			if bounds.Dx() != want.Width || bounds.Dy() != want.Height {
				t.Errorf("got %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), want.Width, want.Height)
			}
		})
	}

	if _, err := engine.ProcessCreative(testImage(640, 480), "3:2", "Buy now", "Summit Pack"); !errors.Is(err, ErrInvalidAspectRatio) {
		t.Errorf("ProcessCreative with bad ratio error = %v, want ErrInvalidAspectRatio", err)
	}
}
