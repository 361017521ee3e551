package tts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/proverb/internal/audio"
	"github.com/dgnsrekt/proverb/internal/cache"
)

// SystemPlatform is a Platform backed by a local speech engine. The
// engine renders WAV audio which is decoded and played through an
// AudioPlayer.
type SystemPlatform struct {
	backend Backend
	player  AudioPlayer
	catalog *Catalog
	cache   *cache.Memory
	timeout time.Duration
	logger  *log.Logger

	mu           sync.Mutex
	generation   uint64
	cancelSynth  context.CancelFunc
	synthesizing bool
}

// PlatformOption configures a SystemPlatform.
type PlatformOption func(*SystemPlatform)

// WithAudioCache reuses decoded audio for repeated utterances.
func WithAudioCache(c *cache.Memory) PlatformOption {
	return func(p *SystemPlatform) {
		p.cache = c
	}
}

// NewSystemPlatform returns a platform for backend and starts loading its
// voice catalog in the background.
func NewSystemPlatform(backend Backend, player AudioPlayer, timeout time.Duration, opts ...PlatformOption) *SystemPlatform {
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	p := &SystemPlatform{
		backend: backend,
		player:  player,
		timeout: timeout,
		logger:  log.WithPrefix("speech").With("engine", backend.Name()),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.catalog = LoadCatalog(context.Background(), func(ctx context.Context) ([]Voice, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		start := time.Now()
		voices, err := backend.ListVoices(ctx)
		if err != nil {
			p.logger.Error("listing voices", "error", err)
			return nil, err
		}
		p.logger.Debug("voices loaded", "count", len(voices), "elapsed", time.Since(start).Round(time.Millisecond))
		return voices, nil
	})

	return p
}

// Backend returns the engine behind the platform.
func (p *SystemPlatform) Backend() Backend {
	return p.backend
}

// Catalog returns the voice catalog.
func (p *SystemPlatform) Catalog() *Catalog {
	return p.catalog
}

// Voices implements Platform.
func (p *SystemPlatform) Voices() []Voice {
	return p.catalog.Voices()
}

// VoicesReady implements Platform.
func (p *SystemPlatform) VoicesReady() <-chan struct{} {
	return p.catalog.Ready()
}

// Speak implements Platform. Synthesis runs in the background and any
// utterance already in progress is cancelled first.
func (p *SystemPlatform) Speak(u Utterance) error {
	if u.Text == "" {
		return ErrEmptyText
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	p.generation++
	gen := p.generation

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	p.cancelSynth = cancel
	p.synthesizing = true

	go p.synthesizeAndPlay(ctx, cancel, gen, u)
	return nil
}

func (p *SystemPlatform) synthesizeAndPlay(ctx context.Context, cancel context.CancelFunc, gen uint64, u Utterance) {
	defer cancel()

	pcm, err := p.synthesize(ctx, u)

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.generation {
		return
	}
	p.synthesizing = false
	p.cancelSynth = nil

	if err != nil {
		p.logger.Error("synthesis failed", "locale", u.Locale, "error", err)
		return
	}
	if err := p.player.Play(pcm, u.Volume); err != nil {
		p.logger.Error("playback failed", "error", err)
	}
}

func (p *SystemPlatform) synthesize(ctx context.Context, u Utterance) ([]byte, error) {
	key := cacheKey(p.backend.Name(), u)
	if p.cache != nil {
		if pcm, ok := p.cache.Get(key); ok {
			p.logger.Debug("audio cache hit", "locale", u.Locale)
			return pcm, nil
		}
	}

	pcm, err := p.render(ctx, u)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.Put(key, pcm); err != nil {
			p.logger.Debug("audio not cached", "error", err)
		}
	}
	return pcm, nil
}

func cacheKey(engine string, u Utterance) cache.Key {
	k := cache.Key{
		Engine: engine,
		Locale: u.Locale,
		Text:   u.Text,
		Rate:   u.Rate,
		Pitch:  u.Pitch,
	}
	if u.Voice != nil {
		k.Voice = u.Voice.ID
	}
	return k
}

// render runs the engine and decodes its output to PCM.
func (p *SystemPlatform) render(ctx context.Context, u Utterance) ([]byte, error) {
	data, err := p.backend.Synthesize(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
	}
	wav, err := audio.DecodeWAV(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
	}
	if err := wav.CheckFormat(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
	}
	return wav.Data, nil
}

// Cancel implements Platform.
func (p *SystemPlatform) Cancel() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.generation++
	return p.stopLocked()
}

func (p *SystemPlatform) stopLocked() error {
	if p.cancelSynth != nil {
		p.cancelSynth()
		p.cancelSynth = nil
	}
	p.synthesizing = false
	return p.player.Stop()
}

// Speaking implements Platform.
func (p *SystemPlatform) Speaking() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.synthesizing || p.player.IsPlaying()
}
