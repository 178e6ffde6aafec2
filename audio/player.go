// Package audio plays a short click whenever nodes bounce off the arena boundary
package audio

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/forcegraph/core"
)

const (
	sampleRate = beep.SampleRate(48000)

	clickFreq   = 1320.0
	clickLength = 40 * time.Millisecond

	// minClickGap drops clicks closer together than this
	minClickGap = 50 * time.Millisecond
)

// Options configures a Player
type Options struct {
	// Volume in [0, 1]
	Volume float64
	Logger *slog.Logger
	// Sink receives finished streams; nil plays through the speaker
	Sink func(beep.Streamer)
	// Now defaults to time.Now
	Now func() time.Time
}

// Player turns frame bounce counts into clicks
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	sink        func(beep.Streamer)
	volume      float64
	logger      *slog.Logger
	now         func() time.Time
	lastClick   time.Time
	initialized bool
	useSpeaker  bool
	played      int
}

// NewPlayer creates a player; Initialize must run before clicks reach the speaker
func NewPlayer(opts Options) *Player {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	p := &Player{
		mixer:  &beep.Mixer{},
		volume: math.Max(0, math.Min(1, opts.Volume)),
		logger: opts.Logger,
		now:    opts.Now,
		sink:   opts.Sink,
	}
	if p.sink == nil {
		p.sink = p.playSpeaker
		p.useSpeaker = true
	} else {
		p.initialized = true
	}
	return p
}

// Initialize opens the speaker and starts the mixer; no-op with a custom sink
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences the mixer and releases the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || !p.useSpeaker {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// Render plays one click per frame with bounces, louder for larger bursts
func (p *Player) Render(frame core.Frame) {
	if frame.Bounces <= 0 || p.volume == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	now := p.now()
	if !p.lastClick.IsZero() && now.Sub(p.lastClick) < minClickGap {
		return
	}
	p.lastClick = now
	p.played++

	p.sink(Click(sampleRate, clickFreq, ClickAmplitude(p.volume, frame.Bounces), clickLength))
}

// Played returns the number of clicks emitted
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// ClickAmplitude scales volume by burst size, saturating at eight bounces
func ClickAmplitude(volume float64, bounces int) float64 {
	burst := math.Min(float64(bounces), 8) / 8
	return volume * (0.3 + 0.7*burst)
}

func (p *Player) playSpeaker(s beep.Streamer) {
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}
