package main

// Creates the ASCII moon texture from a full-disc photograph of the near side.
// The output replaces internal/moon/texture.txt.

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Glyphs from dark to bright. Black sky maps to space so the crop box
// tightens around the disc.
const ramp = " .,*/(%&#@"

func main() {
	var in = flag.String("in", "moon.png", "Input PNG")
	var width = flag.Int("width", 200, "Output columns")
	var height = flag.Int("height", 80, "Output rows")
	flag.Parse()

	if *width < 1 || *height < 1 {
		fmt.Fprintf(os.Stderr, "Error: width and height must be positive\n")
		os.Exit(1)
	}

	file, err := os.Open(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding PNG: %v\n", err)
		os.Exit(1)
	}

	for _, line := range convert(img, *width, *height) {
		fmt.Println(line)
	}
}

// convert samples img on a width x height grid and maps CIE L* lightness
// onto the glyph ramp
func convert(img image.Image, width, height int) []string {
	bounds := img.Bounds()
	scaleX := float64(bounds.Dx()) / float64(width)
	scaleY := float64(bounds.Dy()) / float64(height)

	lines := make([]string, height)
	var sb strings.Builder
	for y := 0; y < height; y++ {
		sb.Reset()
		for x := 0; x < width; x++ {
			imgX := bounds.Min.X + int(float64(x)*scaleX)
			imgY := bounds.Min.Y + int(float64(y)*scaleY)

			c, _ := colorful.MakeColor(img.At(imgX, imgY))
			l, _, _ := c.Lab()
			sb.WriteByte(glyphFor(l))
		}
		lines[y] = sb.String()
	}
	return lines
}

func glyphFor(lightness float64) byte {
	i := int(lightness * float64(len(ramp)))
	if i < 0 {
		i = 0
	}
	if i >= len(ramp) {
		i = len(ramp) - 1
	}
	return ramp[i]
}
