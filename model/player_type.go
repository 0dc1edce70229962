package model

type PlayerType struct {
	Type       string
	Title      string
	Img        string
	Frames     int
	Multiplier int
	Value      int
}

// PlayerTypes is the ordered egg catalog. Value is the merge key.
type PlayerTypes struct {
	types []PlayerType
}

func NewPlayerTypes(types []PlayerType) *PlayerTypes {
	return &PlayerTypes{types: append([]PlayerType(nil), types...)}
}

func DefaultPlayerTypes() *PlayerTypes {
	return NewPlayerTypes([]PlayerType{
		{Type: "egg", Title: "It is of course the egg", Img: "egg-sprite.png", Frames: 18, Multiplier: 1, Value: 1},
		{Type: "red-egg", Title: "It is of course the red egg", Img: "egg-sprite-red.png", Frames: 18, Multiplier: 2, Value: 2},
		{Type: "blue-egg", Title: "It is of course the blue egg", Img: "egg-sprite-blue.png", Frames: 18, Multiplier: 5, Value: 3},
		{Type: "yellow-egg", Title: "It is of course the yellow egg", Img: "egg-sprite-yellow.png", Frames: 18, Multiplier: 10, Value: 4},
	})
}

func (pt *PlayerTypes) ByName(name string) (PlayerType, bool) {
	for _, t := range pt.types {
		if t.Type == name {
			return t, true
		}
	}
	return PlayerType{}, false
}

// ByValue returns the first entry in catalog order carrying value.
func (pt *PlayerTypes) ByValue(value int) (PlayerType, bool) {
	for _, t := range pt.types {
		if t.Value == value {
			return t, true
		}
	}
	return PlayerType{}, false
}

func (pt *PlayerTypes) Types() []PlayerType {
	return append([]PlayerType(nil), pt.types...)
}
