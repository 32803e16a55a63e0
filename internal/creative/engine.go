package creative

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// ErrInvalidAspectRatio is returned for any ratio outside the fixed set.
var ErrInvalidAspectRatio = errors.New("invalid aspect ratio")

// Size is a target pixel box for one aspect ratio.
type Size struct {
	Width  int
	Height int
}

// AspectSizes maps the three supported ratios to their output dimensions.
var AspectSizes = map[string]Size{
	"1:1":  {1080, 1080}, // square - feed posts
	"9:16": {1080, 1920}, // portrait - stories
	"16:9": {1920, 1080}, // landscape - video covers
}

// AspectRatios lists the supported ratios in processing order.
var AspectRatios = []string{"1:1", "9:16", "16:9"}

const (
	lineGap      = 10
	textPadding  = 30
	messageInset = 15

	minMessageFontSize = 24
	minProductFontSize = 18
)

// Engine performs the deterministic image geometry and text layout that turns
// a raw photo into a branded creative. All methods return new images and never
// mutate their inputs.
type Engine struct {
	fontPaths []string
}

func NewEngine(fontPaths []string) *Engine {
	return &Engine{fontPaths: fontPaths}
}

// ResizeToAspectRatio scales the image uniformly so it fully covers the target
// box for the ratio, then center-crops to the exact target dimensions. The
// source aspect ratio is never distorted.
func (e *Engine) ResizeToAspectRatio(img image.Image, aspectRatio string) (image.Image, error) {
	target, ok := AspectSizes[aspectRatio]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAspectRatio, aspectRatio)
	}

	bounds := img.Bounds()
	srcRatio := float64(bounds.Dx()) / float64(bounds.Dy())
	targetRatio := float64(target.Width) / float64(target.Height)

	var newWidth, newHeight int
	if srcRatio > targetRatio {
		// Source is relatively wider: fit by height, excess width gets cropped.
		newHeight = target.Height
		newWidth = int(float64(newHeight) * srcRatio)
	} else {
		newWidth = target.Width
		newHeight = int(float64(newWidth) / srcRatio)
	}
	if newWidth < target.Width {
		newWidth = target.Width
	}
	if newHeight < target.Height {
		newHeight = target.Height
	}

	resized := imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
	return imaging.CropCenter(resized, target.Width, target.Height), nil
}

// WrapText breaks text into lines whose measured width fits maxWidth, greedy
// word by word. A single word wider than maxWidth is emitted on its own line
// rather than dropped. Returns the lines and the total rendered height.
func WrapText(text string, maxWidth int, face font.Face) ([]string, int) {
	var lines []string
	var current []string

	for _, word := range strings.Fields(text) {
		candidate := strings.Join(append(append([]string{}, current...), word), " ")
		if font.MeasureString(face, candidate).Ceil() <= maxWidth {
			current = append(current, word)
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = []string{word}
		} else {
			lines = append(lines, word)
		}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}

	return lines, len(lines) * lineHeight(face)
}

func lineHeight(face font.Face) int {
	m := face.Metrics()
	return (m.Ascent + m.Descent).Ceil() + lineGap
}

// AddTextOverlay draws a semi-transparent band over the bottom sixth of the
// image, renders the wrapped campaign message in white inside it, and places
// the upper-cased product name in black near the top-left corner.
func (e *Engine) AddTextOverlay(img image.Image, message, productName string) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	base := width
	if height < width {
		base = height
	}
	messageFace := e.loadFace(scaledFontSize(base, 25, minMessageFontSize))
	productFace := e.loadFace(scaledFontSize(base, 35, minProductFontSize))

	dc := gg.NewContext(width, height)
	dc.DrawImage(img, 0, 0)

	bandHeight := height / 6
	dc.SetRGBA(0, 0, 0, 180.0/255.0)
	dc.DrawRectangle(0, float64(height-bandHeight), float64(width), float64(bandHeight))
	dc.Fill()

	maxTextWidth := width - textPadding*2
	lines, _ := WrapText(message, maxTextWidth, messageFace)

	dc.SetFontFace(messageFace)
	dc.SetRGB(1, 1, 1)
	ascent := messageFace.Metrics().Ascent.Ceil()
	y := height - bandHeight + messageInset
	for _, line := range lines {
		dc.DrawString(line, textPadding, float64(y+ascent))
		y += lineHeight(messageFace)
	}

	dc.SetFontFace(productFace)
	dc.SetRGB(0, 0, 0)
	productAscent := productFace.Metrics().Ascent.Ceil()
	dc.DrawString(strings.ToUpper(productName), textPadding, float64(textPadding+productAscent))

	return dc.Image()
}

// ProcessCreative resizes the base image to the ratio and overlays the text.
func (e *Engine) ProcessCreative(base image.Image, aspectRatio, message, productName string) (image.Image, error) {
	resized, err := e.ResizeToAspectRatio(base, aspectRatio)
	if err != nil {
		return nil, err
	}
	return e.AddTextOverlay(resized, message, productName), nil
}

func scaledFontSize(base, divisor, minimum int) float64 {
	size := base / divisor
	if size < minimum {
		size = minimum
	}
	return float64(size)
}

// loadFace tries each configured TTF path and falls back to the built-in
// fixed-size face when none is readable.
func (e *Engine) loadFace(points float64) font.Face {
	for _, path := range e.fontPaths {
		if face, err := gg.LoadFontFace(path, points); err == nil {
			return face
		}
	}
	return basicfont.Face7x13
}
