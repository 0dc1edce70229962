package main

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
	SCORE_TONE = 880.0
	MERGE_TONE = 330.0
)

// Sound plays short tones for score and merge events. Without a working
// audio device every call is a no-op.
type Sound struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewSound() *Sound {
	return &Sound{mixer: &beep.Mixer{}}
}

func (s *Sound) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

func (s *Sound) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

func (s *Sound) Score() {
	s.play(NewTone(SCORE_TONE, 40*time.Millisecond, 0.3))
}

// Merge plays a chord that climbs with the value of the merged egg.
func (s *Sound) Merge(value int) {
	base := MERGE_TONE * math.Pow(2, float64(value-1)/12*4)
	s.play(beep.Mix(
		NewTone(base, 150*time.Millisecond, 0.2),
		NewTone(base*5/4, 150*time.Millisecond, 0.2),
		NewTone(base*3/2, 150*time.Millisecond, 0.2),
	))
}

func (s *Sound) play(st beep.Streamer) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// tone is a sine oscillator with a linear fade out.
type tone struct {
	freq     float64
	volume   float64
	phase    float64
	position int
	duration int
}

func NewTone(freq float64, duration time.Duration, volume float64) beep.Streamer {
	return &tone{freq: freq, volume: volume, duration: sampleRate.N(duration)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.duration {
			return i, i > 0
		}
		fade := 1 - float64(t.position)/float64(t.duration)
		v := math.Sin(2*math.Pi*t.phase) * t.volume * fade
		samples[i][0] = v
		samples[i][1] = v
		t.phase += t.freq / float64(sampleRate)
		if t.phase >= 1 {
			t.phase--
		}
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error {
	return nil
}
