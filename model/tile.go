package model

import "fmt"

type TileAction int

const (
	ACTION_NONE TileAction = iota
	ACTION_COMPLETE_LEVEL
	ACTION_TELEPORT
)

func (a TileAction) Name() string {
	switch a {
	case ACTION_NONE:
		return "none"
	case ACTION_COMPLETE_LEVEL:
		return "completeLevel"
	case ACTION_TELEPORT:
		return "teleport"
	default:
		return fmt.Sprintf("n/a:%d", a)
	}
}

const (
	TILE_SKY   = 1
	TILE_CRATE = 5
	TILE_CUP   = 12
	TILE_DOOR  = 14
)

// Tile is a per-cell instance cloned from a TileSet prototype. Cells never
// share a *Tile.
type Tile struct {
	Id           int
	Title        string
	Img          string
	Glyph        rune
	Background   bool
	Breakable    bool
	Collectable  int
	FrontLayer   bool
	Action       TileAction
	CreatePlayer string
	DontAdd      bool
	NeedsDraw    bool
}

// TileSet is the ordered tile catalog.
type TileSet struct {
	tiles []Tile
	index map[int]int
}

func NewTileSet(prototypes []Tile) *TileSet {
	ts := &TileSet{
		tiles: make([]Tile, 0, len(prototypes)),
		index: make(map[int]int, len(prototypes)),
	}
	for _, t := range prototypes {
		ts.index[t.Id] = len(ts.tiles)
		ts.tiles = append(ts.tiles, t)
	}
	return ts
}

func DefaultTileSet() *TileSet {
	return NewTileSet([]Tile{
		{Id: TILE_SKY, Title: "Sky", Img: "sky.png", Glyph: '.', Background: true},
		{Id: 2, Title: "Fabric", Img: "fabric.png", Glyph: '#'},
		{Id: 3, Title: "Cacti", Img: "cacti.png", Glyph: 'c', Background: true, FrontLayer: true, Collectable: 1},
		{Id: 4, Title: "Plant", Img: "plant.png", Glyph: 'p', Background: true, FrontLayer: true, Collectable: 10},
		{Id: TILE_CRATE, Title: "Crate", Img: "crate.png", Glyph: 'x', Breakable: true},
		{Id: 8, Title: "Work surface 2", Img: "work-surface-2.png", Glyph: '='},
		{Id: 9, Title: "Work surface 3", Img: "work-surface-3.png", Glyph: '-'},
		{Id: 10, Title: "Work surface 4", Img: "work-surface-4.png", Glyph: '_'},
		{Id: 11, Title: "Tiles", Img: "tile.png", Glyph: '+'},
		{Id: TILE_CUP, Title: "Egg Cup", Img: "egg-cup.png", Glyph: 'U', Background: true, FrontLayer: true,
			CreatePlayer: "egg", Action: ACTION_COMPLETE_LEVEL},
		{Id: 13, Title: "Toast", Img: "toast.png", Glyph: 't', Background: true, FrontLayer: true,
			Collectable: 100, DontAdd: true},
		{Id: TILE_DOOR, Title: "Door", Img: "door.png", Glyph: 'D', Background: true, FrontLayer: true,
			Action: ACTION_TELEPORT},
	})
}

func (ts *TileSet) Prototype(id int) (Tile, bool) {
	i, found := ts.index[id]
	if !found {
		return Tile{}, false
	}
	return ts.tiles[i], true
}

// Clone returns a fresh instance of the prototype, or the default sky tile
// for an unknown id.
func (ts *TileSet) Clone(id int) *Tile {
	proto, found := ts.Prototype(id)
	if !found {
		proto, _ = ts.Prototype(TILE_SKY)
	}
	t := proto
	t.NeedsDraw = true
	return &t
}

// Next returns the id following id in catalog order, wrapping to the first.
func (ts *TileSet) Next(id int) int {
	if len(ts.tiles) == 0 {
		return id
	}
	i, found := ts.index[id]
	if !found {
		return ts.tiles[0].Id
	}
	return ts.tiles[(i+1)%len(ts.tiles)].Id
}

// Addable lists the ids random generation may draw from.
func (ts *TileSet) Addable() []int {
	ids := make([]int, 0, len(ts.tiles))
	for _, t := range ts.tiles {
		if !t.DontAdd {
			ids = append(ids, t.Id)
		}
	}
	return ids
}

func (ts *TileSet) ByGlyph(g rune) (int, bool) {
	for _, t := range ts.tiles {
		if t.Glyph == g {
			return t.Id, true
		}
	}
	return 0, false
}

func (ts *TileSet) Tiles() []Tile {
	out := make([]Tile, len(ts.tiles))
	copy(out, ts.tiles)
	return out
}
