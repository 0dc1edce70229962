package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
)

const FONT_SIZE = 24

// LoadFont opens a TrueType file. An empty path means no font.
func LoadFont(path string) (font.Face, error) {
	if path == "" {
		return nil, nil
	}
	file, err := ebitenutil.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open font %s: %w", path, err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(file); err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	tt, err := truetype.Parse(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}

	const dpi = 72
	return truetype.NewFace(tt, &truetype.Options{
		Size:    FONT_SIZE,
		DPI:     dpi,
		Hinting: font.HintingFull,
	}), nil
}

// newSquareImage is a white square with a darker rim, for nine-patch panels.
func newSquareImage(size, rim int) *ebiten.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			c := color.RGBA{255, 255, 255, 255}
			if x < rim || y < rim || x >= size-rim || y >= size-rim {
				c = color.RGBA{150, 150, 150, 255}
			}
			img.Set(x, y, c)
		}
	}
	return mustImage(img)
}

// newCircleImage is a white disc on a transparent square, tinted per egg.
func newCircleImage(size int) *ebiten.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			dx := float64(x) + .5 - r
			dy := float64(y) + .5 - r
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			}
		}
	}
	return mustImage(img)
}

func mustImage(img image.Image) *ebiten.Image {
	e, err := ebiten.NewImageFromImage(img, ebiten.FilterDefault)
	if err != nil {
		log.Fatalf("image %v", err)
	}
	return e
}
