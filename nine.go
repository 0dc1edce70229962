package main

import (
	"image"

	"github.com/hajimehoshi/ebiten"
)

// Nine draws a nine-patch: corners keep their size, edges stretch along one
// axis and the centre along both. positions are the four cut lines of the
// source image, shared by both axes.
type Nine struct {
	images              *ebiten.Image
	alpha               float64
	R, G, B, Scale      float64
	positions           [4]int
	x, y, width, height int
	targets             [4][2]float64
}

func NewNine(img *ebiten.Image, rim int, scale float64) *Nine {
	w, _ := img.Size()
	return &Nine{
		images: img,
		alpha:  1,
		R:      1, G: 1, B: 1,
		Scale:     scale,
		positions: [4]int{0, rim, w - rim, w},
	}
}

func (n *Nine) SetColor(c GameColor, alpha float64) {
	n.R, n.G, n.B, n.alpha = c.r, c.g, c.b, alpha
}

func (n *Nine) SetBounds(x, y, width, height int) {
	n.x, n.y, n.width, n.height = x, y, width, height
	rim := n.Scale * float64(n.positions[1]-n.positions[0])
	far := n.Scale * float64(n.positions[3]-n.positions[2])
	n.targets[0] = [2]float64{float64(x), float64(y)}
	n.targets[1] = [2]float64{float64(x) + rim, float64(y) + rim}
	n.targets[2] = [2]float64{float64(x+width) - far, float64(y+height) - far}
	n.targets[3] = [2]float64{float64(x + width), float64(y + height)}
}

func (n *Nine) Draw(screen *ebiten.Image) {
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			src := image.Rect(n.positions[col], n.positions[row], n.positions[col+1], n.positions[row+1])
			if src.Empty() {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(
				(n.targets[col+1][0]-n.targets[col][0])/float64(src.Dx()),
				(n.targets[row+1][1]-n.targets[row][1])/float64(src.Dy()))
			op.GeoM.Translate(n.targets[col][0], n.targets[row][1])
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			screen.DrawImage(n.images.SubImage(src).(*ebiten.Image), op)
		}
	}
}
