// Package ansiart turns card images into 24-bit ANSI half-block art.
package ansiart

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// PixelsPerColumn converts the card width setting to terminal columns
const PixelsPerColumn = 8

// Columns returns how many terminal columns a card of the given pixel width spans
func Columns(cardWidth int) int {
	cols := cardWidth / PixelsPerColumn
	if cols < 8 {
		cols = 8
	}
	return cols
}

type cacheKey struct {
	path    string
	columns int
}

// Renderer converts image files and remembers recent results
type Renderer struct {
	cache *lru.Cache
}

// NewRenderer keeps up to size rendered images; sizes below one keep one
func NewRenderer(size int) *Renderer {
	if size < 1 {
		size = 1
	}
	cache, _ := lru.New(size)
	return &Renderer{cache: cache}
}

// RenderFile renders the image at path, columns wide
func (r *Renderer) RenderFile(path string, columns int) (string, error) {
	key := cacheKey{path: path, columns: columns}
	if art, ok := r.cache.Get(key); ok {
		return art.(string), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	art := Render(img, columns)
	r.cache.Add(key, art)
	return art, nil
}

// Render converts an image, keeping its aspect ratio
func Render(img image.Image, columns int) string {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return ""
	}
	// two pixel rows per character cell; cells are roughly twice as tall as wide
	rows := columns * bounds.Dy() / bounds.Dx() / 2
	if rows < 1 {
		rows = 1
	}

	resized := resize.Resize(uint(columns), uint(rows*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < rows*2; y += 2 {
		for x := 0; x < columns; x++ {
			// upper half block: top pixel as foreground, bottom as background
			fg, _ := colorful.MakeColor(colorAt(resized, x, y))
			bg, _ := colorful.MakeColor(colorAt(resized, x, y+1))
			buffer.WriteString(cell('▀', fg, bg))
		}
		buffer.WriteString("\n")
	}

	return buffer.String()
}

// colorAt returns the color at a specific coordinate
func colorAt(img image.Image, x, y int) color.Color {
	bounds := img.Bounds()
	x += bounds.Min.X
	y += bounds.Min.Y
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		return img.At(x, y)
	}
	return color.RGBA{0, 0, 0, 255}
}

func cell(char rune, fg, bg colorful.Color) string {
	r1, g1, b1 := fg.RGB255()
	r2, g2, b2 := bg.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m", r1, g1, b1, r2, g2, b2, char)
}

// Strip removes ANSI escape sequences from a string
func Strip(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}
