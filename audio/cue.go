package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Cue identifies a short feedback sound
type Cue uint8

const (
	CueRebuilt Cue = iota // Flow field published
	CueBlocked            // Goal move or edit rejected
	CueNoGoal             // Rebuild requested without a goal
)

// Cue durations
const (
	rebuiltDuration = 90 * time.Millisecond
	blockedDuration = 150 * time.Millisecond
	noGoalDuration  = 200 * time.Millisecond
)

// CueStreamer builds the finite streamer for cue c
func CueStreamer(c Cue, rate beep.SampleRate) beep.Streamer {
	switch c {
	case CueRebuilt:
		// Two soft sine partials, bell-like
		mixed := beep.Mix(
			newVolume(NewOscillator(880, rebuiltDuration, WaveSine, rate), 0.6),
			newVolume(NewOscillator(1320, rebuiltDuration, WaveSine, rate), 0.25),
		)
		return newVolume(NewEnvelope(mixed, rebuiltDuration, 5*time.Millisecond, 60*time.Millisecond, rate), 0.3)
	case CueBlocked:
		osc := NewOscillator(110, blockedDuration, WaveSaw, rate)
		return newVolume(NewEnvelope(osc, blockedDuration, 2*time.Millisecond, 40*time.Millisecond, rate), 0.25)
	default:
		n1 := NewEnvelope(NewOscillator(440, noGoalDuration/2, WaveSquare, rate), noGoalDuration/2, 2*time.Millisecond, 30*time.Millisecond, rate)
		n2 := NewEnvelope(NewOscillator(330, noGoalDuration/2, WaveSquare, rate), noGoalDuration/2, 2*time.Millisecond, 30*time.Millisecond, rate)
		return newVolume(beep.Seq(n1, n2), 0.15)
	}
}

// Player plays cues through the speaker
// All methods are no-ops until Init succeeds, so callers never need to check for a sound device
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewPlayer creates an uninitialized player
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Init opens the speaker
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// SetMuted silences future cues
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Play queues cue c
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}
	s := CueStreamer(c, sampleRate)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops playback
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
