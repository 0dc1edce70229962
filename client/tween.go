package client

import "github.com/tanema/gween"

// Action reacts to a running tween. onFinish continuations run once, in the
// order they were added, after the last onChange.
type Action struct {
	onChange func(float32)
	onFinish []func()
}

func (a *Action) OnChange(f func(float32)) *Action {
	a.onChange = f
	return a
}

func (a *Action) AddOnFinish(f func()) *Action {
	a.onFinish = append(a.onFinish, f)
	return a
}

// Tweens advances every running tween by the same step.
type Tweens struct {
	running map[*gween.Tween]*Action
}

func NewTweens() *Tweens {
	return &Tweens{running: make(map[*gween.Tween]*Action)}
}

// Start registers t and returns its action for chaining callbacks.
func (ts *Tweens) Start(t *gween.Tween) *Action {
	a := &Action{}
	ts.running[t] = a
	return a
}

func (ts *Tweens) Stop(t *gween.Tween) {
	delete(ts.running, t)
}

func (ts *Tweens) Len() int {
	return len(ts.running)
}

func (ts *Tweens) Update(dt float32) {
	for t, a := range ts.running {
		curr, finished := t.Update(dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			delete(ts.running, t)
			for _, onFinish := range a.onFinish {
				onFinish()
			}
		}
	}
}
