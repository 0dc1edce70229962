package model

import (
	"fmt"
	"math"
)

// SPRITE_SIZE is the pixel size of one tile sprite. Offsets are expressed in
// sprite pixels regardless of the on-screen tile size.
const SPRITE_SIZE = 64

type Coords struct {
	X, Y             int
	OffsetX, OffsetY int
}

func NewCoords(x, y float64, offsetX, offsetY int) Coords {
	return Coords{
		X:       int(math.Floor(x)),
		Y:       int(math.Floor(y)),
		OffsetX: offsetX,
		OffsetY: offsetY,
	}
}

// ActualPosition returns the absolute position in sprite pixels.
func (c Coords) ActualPosition() (fullX, fullY int) {
	fullX = c.X*SPRITE_SIZE + c.OffsetX
	fullY = c.Y*SPRITE_SIZE + c.OffsetY
	return
}

func (c Coords) SameTile(o Coords) bool {
	return c.X == o.X && c.Y == o.Y
}

func (c Coords) String() string {
	if c.OffsetX == 0 && c.OffsetY == 0 {
		return fmt.Sprintf("(%d,%d)", c.X, c.Y)
	}
	return fmt.Sprintf("(%d%+d,%d%+d)", c.X, c.OffsetX, c.Y, c.OffsetY)
}

// round matches the half-up rounding the movement maths was tuned against.
func round(f float64) int {
	return int(math.Floor(f + .5))
}

func wrap(v, size int) int {
	if size <= 0 {
		return 0
	}
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
