package client

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/zucenko/eggroll/model"
)

const (
	SCORE_ROLL   = 0.5
	MESSAGE_FADE = 3.0
)

// Hud holds what the status bar shows: a score that rolls toward the last
// reported one and a message that fades out.
type Hud struct {
	Score        float32
	Message      string
	MessageAlpha float32

	tweens       *Tweens
	scoreTween   *gween.Tween
	messageTween *gween.Tween
}

func NewHud(tweens *Tweens) *Hud {
	return &Hud{tweens: tweens}
}

func (h *Hud) Show(s model.Status) {
	target := float32(s.Score)
	if target != h.Score {
		if h.scoreTween != nil {
			h.tweens.Stop(h.scoreTween)
		}
		t := gween.New(h.Score, target, SCORE_ROLL, ease.OutQuad)
		h.scoreTween = t
		h.tweens.Start(t).
			OnChange(func(v float32) { h.Score = v }).
			AddOnFinish(func() {
				h.Score = target
				h.scoreTween = nil
			})
	}

	if s.Message == "" {
		return
	}
	if h.messageTween != nil {
		h.tweens.Stop(h.messageTween)
	}
	h.Message = s.Message
	h.MessageAlpha = 1
	t := gween.New(1, 0, MESSAGE_FADE, ease.InQuad)
	h.messageTween = t
	h.tweens.Start(t).
		OnChange(func(v float32) { h.MessageAlpha = v }).
		AddOnFinish(func() {
			h.Message = ""
			h.messageTween = nil
		})
}
