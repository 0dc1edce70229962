package model

import "math/rand"

// Board is a toroidal grid, Matrix[x][y], column first like the level files
// once swapped.
type Board struct {
	Size        BoardSize
	Matrix      [][]*Tile
	RenderAngle int
	Tiles       *TileSet
	rnd         *rand.Rand
}

func NewBlankBoard(tiles *TileSet, size BoardSize, rnd *rand.Rand) *Board {
	b := &Board{Size: size, Tiles: tiles, rnd: rnd}
	b.Matrix = b.fill(size, func(x, y int) *Tile { return tiles.Clone(TILE_SKY) })
	return b
}

func NewRandomBoard(tiles *TileSet, size BoardSize, rnd *rand.Rand) *Board {
	b := &Board{Size: size, Tiles: tiles, rnd: rnd}
	b.Randomize()
	return b
}

// NewBoardFromIds builds a board from stored tile ids. Missing cells and
// unknown ids become sky; the stored grid is cropped or padded to size.
func NewBoardFromIds(tiles *TileSet, size BoardSize, ids [][]int, rnd *rand.Rand) *Board {
	b := &Board{Size: size, Tiles: tiles, rnd: rnd}
	b.Matrix = b.fill(size, func(x, y int) *Tile {
		if x < len(ids) && y < len(ids[x]) {
			return tiles.Clone(ids[x][y])
		}
		return tiles.Clone(TILE_SKY)
	})
	return b
}

func (b *Board) fill(size BoardSize, f func(x, y int) *Tile) [][]*Tile {
	matrix := make([][]*Tile, size.Width)
	for x := 0; x < size.Width; x++ {
		matrix[x] = make([]*Tile, size.Height)
		for y := 0; y < size.Height; y++ {
			matrix[x][y] = f(x, y)
		}
	}
	return matrix
}

// Randomize refills every cell from the addable part of the catalog.
func (b *Board) Randomize() {
	addable := b.Tiles.Addable()
	b.Matrix = b.fill(b.Size, func(x, y int) *Tile {
		if len(addable) == 0 {
			return b.Tiles.Clone(TILE_SKY)
		}
		return b.Tiles.Clone(addable[b.rnd.Intn(len(addable))])
	})
}

func (b *Board) CorrectForOverflow(x, y int) Coords {
	return Coords{X: wrap(x, b.Size.Width), Y: wrap(y, b.Size.Height)}
}

func (b *Board) TileAt(x, y int) *Tile {
	c := b.CorrectForOverflow(x, y)
	return b.Matrix[c.X][c.Y]
}

func (b *Board) SetTile(c Coords, t *Tile) {
	t.NeedsDraw = true
	b.Matrix[c.X][c.Y] = t
}

func (b *Board) IsPassable(x, y int) bool {
	return b.TileAt(x, y).Background
}

// TilesSurrounding returns the wrapped 3x3 neighbourhood of (x,y).
func (b *Board) TilesSurrounding(x, y int) []*Tile {
	tiles := make([]*Tile, 0, 9)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			tiles = append(tiles, b.TileAt(x+dx, y+dy))
		}
	}
	return tiles
}

func (b *Board) MarkAllForRedraw() {
	b.Each(func(_, _ int, t *Tile) { t.NeedsDraw = true })
}

func (b *Board) Each(f func(x, y int, t *Tile)) {
	for x, column := range b.Matrix {
		for y, t := range column {
			f(x, y, t)
		}
	}
}

// TranslateRotation maps a cell through a quarter turn.
func (b *Board) TranslateRotation(x, y int, clockwise bool) (int, int) {
	width := b.Size.Width - 1
	height := b.Size.Height - 1
	if clockwise {
		// 0,0 -> w,0 -> w,h -> 0,h -> 0,0
		return width - y, x
	}
	return y, height - x
}

func (b *Board) Rotate(clockwise bool) {
	matrix := make([][]*Tile, b.Size.Width)
	for x := range matrix {
		matrix[x] = make([]*Tile, b.Size.Height)
	}
	b.Each(func(x, y int, t *Tile) {
		nx, ny := b.TranslateRotation(x, y, clockwise)
		t.NeedsDraw = true
		matrix[nx][ny] = t
	})
	b.Matrix = matrix
	if clockwise {
		b.RenderAngle = (b.RenderAngle + 90) % 360
	} else {
		b.RenderAngle = (b.RenderAngle + 270) % 360
	}
}

// Resize keeps the overlapping cells and pads the rest with sky.
func (b *Board) Resize(size BoardSize) {
	old := b.Matrix
	b.Matrix = b.fill(size, func(x, y int) *Tile {
		if x < len(old) && y < len(old[x]) {
			t := old[x][y]
			t.NeedsDraw = true
			return t
		}
		return b.Tiles.Clone(TILE_SKY)
	})
	b.Size = size
}

func (b *Board) Grow() bool {
	size := b.Size
	if !size.Grow() {
		return false
	}
	b.Resize(size)
	return true
}

func (b *Board) Shrink() bool {
	size := b.Size
	if !size.Shrink() {
		return false
	}
	b.Resize(size)
	return true
}

func (b *Board) CycleTile(x, y int) {
	c := b.CorrectForOverflow(x, y)
	b.SetTile(c, b.Tiles.Clone(b.Tiles.Next(b.Matrix[c.X][c.Y].Id)))
}

func (b *Board) Collectable() int {
	total := 0
	b.Each(func(_, _ int, t *Tile) {
		if t.Collectable > 0 {
			total += t.Collectable
		}
	})
	return total
}

// FindTile picks a random cell holding tile id other than the excluded one.
func (b *Board) FindTile(id int, exclude Coords) (Coords, bool) {
	candidates := make([]Coords, 0)
	b.Each(func(x, y int, t *Tile) {
		if t.Id == id && !(x == exclude.X && y == exclude.Y) {
			candidates = append(candidates, Coords{X: x, Y: y})
		}
	})
	if len(candidates) == 0 {
		return Coords{}, false
	}
	return candidates[b.rnd.Intn(len(candidates))], true
}

func (b *Board) Ids() [][]int {
	ids := make([][]int, len(b.Matrix))
	for x, column := range b.Matrix {
		ids[x] = make([]int, len(column))
		for y, t := range column {
			ids[x][y] = t.Id
		}
	}
	return ids
}
