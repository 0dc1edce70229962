package server

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const QUARTER_TURN = 90

// Rotation animates one quarter turn of the board. The model has already
// been rotated, the animation only delays the resumption of ticking.
type Rotation struct {
	Clockwise bool
	Angle     float32
	target    float32
	tween     *gween.Tween
}

// NewRotation turns degreesPerFrame degrees per frame until the quarter
// turn is reached.
func NewRotation(clockwise bool, degreesPerFrame int) *Rotation {
	if degreesPerFrame <= 0 {
		degreesPerFrame = 1
	}
	var target float32 = QUARTER_TURN
	if !clockwise {
		target = -QUARTER_TURN
	}
	frames := float32(QUARTER_TURN) / float32(degreesPerFrame)
	return &Rotation{
		Clockwise: clockwise,
		target:    target,
		tween:     gween.New(0, target, frames, ease.Linear),
	}
}

// Update advances the animation by the given number of frames and reports
// whether the quarter turn is complete.
func (r *Rotation) Update(frames float32) bool {
	angle, finished := r.tween.Update(frames)
	r.Angle = angle
	if finished {
		r.Angle = r.target
	}
	return finished
}

// Lag is how far the drawn board still trails the rotated model.
func (r *Rotation) Lag() float32 {
	return r.Angle - r.target
}
