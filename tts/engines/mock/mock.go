// Package mock provides scriptable speech components for testing.
package mock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dgnsrekt/proverb/internal/audio"
	"github.com/dgnsrekt/proverb/tts"
)

// Platform implements tts.Platform in memory. Its catalog stays unloaded
// until SetVoices is called, unless it was created with NewWithVoices.
type Platform struct {
	catalog *tts.Catalog

	mu       sync.Mutex
	spoken   []tts.Utterance
	speaking bool
	cancels  int
	speakErr error
	notify   chan struct{}
}

// New returns a platform whose voice catalog is still loading.
func New() *Platform {
	return &Platform{
		catalog: tts.NewCatalog(),
		notify:  make(chan struct{}, 16),
	}
}

// NewWithVoices returns a platform with a loaded catalog.
func NewWithVoices(voices ...tts.Voice) *Platform {
	p := New()
	p.SetVoices(voices...)
	return p
}

// SetVoices finishes loading the catalog. Only the first call has an effect.
func (p *Platform) SetVoices(voices ...tts.Voice) {
	p.catalog.Resolve(voices, nil)
}

// Voices implements tts.Platform.
func (p *Platform) Voices() []tts.Voice {
	return p.catalog.Voices()
}

// VoicesReady implements tts.Platform.
func (p *Platform) VoicesReady() <-chan struct{} {
	return p.catalog.Ready()
}

// Speak implements tts.Platform. The utterance is recorded and the
// platform reports speaking until Finish or Cancel.
func (p *Platform) Speak(u tts.Utterance) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.speakErr != nil {
		return p.speakErr
	}
	p.spoken = append(p.spoken, u)
	p.speaking = true

	select {
	case p.notify <- struct{}{}:
	default:
	}
	return nil
}

// Cancel implements tts.Platform.
func (p *Platform) Cancel() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancels++
	p.speaking = false
	return nil
}

// Speaking implements tts.Platform.
func (p *Platform) Speaking() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speaking
}

// Finish ends the current utterance as if playback completed.
func (p *Platform) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.speaking = false
}

// SetSpeakError makes subsequent Speak calls fail with err.
func (p *Platform) SetSpeakError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.speakErr = err
}

// Spoken returns every utterance passed to Speak.
func (p *Platform) Spoken() []tts.Utterance {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]tts.Utterance(nil), p.spoken...)
}

// Last returns the most recent utterance.
func (p *Platform) Last() (tts.Utterance, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.spoken) == 0 {
		return tts.Utterance{}, false
	}
	return p.spoken[len(p.spoken)-1], true
}

// Cancels returns how many times Cancel was called.
func (p *Platform) Cancels() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancels
}

// WaitForSpoken waits until at least n utterances were spoken.
func (p *Platform) WaitForSpoken(n int, timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		p.mu.Lock()
		count := len(p.spoken)
		p.mu.Unlock()
		if count >= n {
			return true
		}
		select {
		case <-p.notify:
		case <-deadline:
			return false
		}
	}
}

// ErrSynthesis is returned by Engine when configured to fail.
var ErrSynthesis = errors.New("mock synthesis failure")

// Engine implements tts.Backend by producing silence.
type Engine struct {
	voices []tts.Voice
	delay  time.Duration

	mu         sync.Mutex
	shouldFail bool
	callCount  int
	last       tts.Utterance
}

// NewEngine returns an engine offering voices.
func NewEngine(voices ...tts.Voice) *Engine {
	return &Engine{voices: voices}
}

// SetDelay sets the simulated synthesis time.
func (e *Engine) SetDelay(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.delay = d
}

// SetShouldFail makes synthesis fail.
func (e *Engine) SetShouldFail(fail bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shouldFail = fail
}

// Name implements tts.Backend.
func (e *Engine) Name() string {
	return "mock"
}

// ListVoices implements tts.Backend.
func (e *Engine) ListVoices(_ context.Context) ([]tts.Voice, error) {
	return append([]tts.Voice(nil), e.voices...), nil
}

// Synthesize implements tts.Backend. It returns one 10ms block of silence
// per character of text.
func (e *Engine) Synthesize(ctx context.Context, u tts.Utterance) ([]byte, error) {
	e.mu.Lock()
	e.callCount++
	e.last = u
	delay, fail := e.delay, e.shouldFail
	e.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if fail {
		return nil, ErrSynthesis
	}

	samples := len([]rune(u.Text)) * audio.SampleRate / 100
	return audio.EncodeWAV(make([]byte, samples*audio.BytesPerSample)), nil
}

// CallCount returns how many times Synthesize was called.
func (e *Engine) CallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.callCount
}

// LastUtterance returns the most recent synthesized utterance.
func (e *Engine) LastUtterance() tts.Utterance {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// Player implements tts.AudioPlayer in memory. A clip plays until Finish
// or Stop is called.
type Player struct {
	mu      sync.Mutex
	playing bool
	plays   int
	stops   int
	last    []byte
	volume  float64
	played  chan struct{}
}

// NewPlayer returns an idle player.
func NewPlayer() *Player {
	return &Player{played: make(chan struct{}, 16)}
}

// Play implements tts.AudioPlayer.
func (p *Player) Play(pcm []byte, volume float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = true
	p.plays++
	p.last = pcm
	p.volume = volume
	select {
	case p.played <- struct{}{}:
	default:
	}
	return nil
}

// Stop implements tts.AudioPlayer.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stops++
	p.playing = false
	return nil
}

// IsPlaying implements tts.AudioPlayer.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Finish ends the current clip.
func (p *Player) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
}

// Plays returns how many clips were started.
func (p *Player) Plays() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plays
}

// Volume returns the volume of the last clip.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// WaitForPlay waits until a clip starts.
func (p *Player) WaitForPlay(timeout time.Duration) bool {
	select {
	case <-p.played:
		return true
	case <-time.After(timeout):
		return false
	}
}
