package model

// COLLISION_DISTANCE is the horizontal distance in sprite pixels below which
// two eggs on the same row merge.
const COLLISION_DISTANCE = 40

// Merge replaces First and Second with one egg of Type at First's position.
type Merge struct {
	First  *Player
	Second *Player
	Type   PlayerType
}

type Collisions struct {
	Types *PlayerTypes
}

// CheckCollision only deals with horizontal collisions. A nil result means
// the pair keeps coexisting, including when no catalog entry matches the
// summed value.
func (c *Collisions) CheckCollision(p1, p2 *Player) *Merge {
	if p1 == nil || p2 == nil || p1.Id == p2.Id {
		return nil
	}
	if p1.Y != p2.Y {
		return nil
	}
	x1, _ := p1.Coords().ActualPosition()
	x2, _ := p2.Coords().ActualPosition()
	distance := x1 - x2
	if distance < 0 {
		distance = -distance
	}
	if distance >= COLLISION_DISTANCE {
		return nil
	}
	return c.combinePlayers(p1, p2)
}

func (c *Collisions) combinePlayers(p1, p2 *Player) *Merge {
	t, found := c.Types.ByValue(p1.Value + p2.Value)
	if !found {
		return nil
	}
	// eggs carry no rank of their own, the first operand always wins
	return &Merge{First: p1, Second: p2, Type: t}
}
