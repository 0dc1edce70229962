package main

import (
	"image/color"

	"github.com/zucenko/eggroll/model"
)

func HexToF32(u uint32) GameColor {
	b := float64(0xff&u) / 255
	g := float64(0xff&(u>>8)) / 255
	r := float64(0xff&(u>>16)) / 255
	return GameColor{r, g, b}
}

type GameColor struct {
	r float64
	g float64
	b float64
}

func (c GameColor) RGBA(alpha float64) color.RGBA {
	return color.RGBA{
		R: uint8(c.r * alpha * 255),
		G: uint8(c.g * alpha * 255),
		B: uint8(c.b * alpha * 255),
		A: uint8(alpha * 255),
	}
}

var COLOR_BACKGROUND = HexToF32(0x464646)
var COLOR_UNKNOWN = HexToF32(0xff00ff)

// TILE_COLORS paints each tile id of the default catalog.
var TILE_COLORS = map[int]GameColor{
	model.TILE_SKY:   HexToF32(0x9fd3f0),
	2:                HexToF32(0x8a5a44),
	3:                HexToF32(0x0abd38),
	4:                HexToF32(0x3b8f2a),
	model.TILE_CRATE: HexToF32(0xc08a3e),
	8:                HexToF32(0x7d7d7d),
	9:                HexToF32(0x6a6a6a),
	10:               HexToF32(0x585858),
	11:               HexToF32(0xd8d8d8),
	model.TILE_CUP:   HexToF32(0xedbc1e),
	13:               HexToF32(0xe0a060),
	model.TILE_DOOR:  HexToF32(0x321ecc),
}

var EGG_COLORS = map[string]GameColor{
	"egg":        HexToF32(0xfaf6e8),
	"red-egg":    HexToF32(0xfa3636),
	"blue-egg":   HexToF32(0x34a0fb),
	"yellow-egg": HexToF32(0xf5e11b),
}

func tileColor(id int) GameColor {
	if c, found := TILE_COLORS[id]; found {
		return c
	}
	return COLOR_UNKNOWN
}

func eggColor(typeName string) GameColor {
	if c, found := EGG_COLORS[typeName]; found {
		return c
	}
	return COLOR_UNKNOWN
}
