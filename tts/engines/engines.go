// Package engines selects and builds the speech backend for this system.
package engines

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/proverb/internal/audio"
	"github.com/dgnsrekt/proverb/internal/cache"
	"github.com/dgnsrekt/proverb/tts"
	"github.com/dgnsrekt/proverb/tts/engines/espeak"
	"github.com/dgnsrekt/proverb/tts/engines/say"
)

// Order returns the engines tried by "auto" on goos, most native first.
func Order(goos string) []string {
	if goos == "darwin" {
		return []string{tts.EngineSay, tts.EngineESpeak}
	}
	return []string{tts.EngineESpeak, tts.EngineSay}
}

// NewBackend returns the backend named by cfg.Engine. For "auto" it
// returns the first engine installed on this system.
func NewBackend(cfg tts.Config) (tts.Backend, error) {
	switch cfg.Engine {
	case tts.EngineNone:
		return nil, tts.ErrCapabilityAbsent
	case tts.EngineESpeak:
		return espeak.New(espeak.Config{Binary: cfg.ESpeak.Binary, Timeout: cfg.Timeout})
	case tts.EngineSay:
		return say.New(say.Config{Binary: cfg.Say.Binary, Timeout: cfg.Timeout})
	case tts.EngineAuto, "":
	default:
		return nil, fmt.Errorf("%w: unknown engine %q", tts.ErrInvalidConfig, cfg.Engine)
	}

	var errs []error
	for _, name := range Order(runtime.GOOS) {
		c := cfg
		c.Engine = name
		b, err := NewBackend(c)
		if err == nil {
			log.Debug("speech engine detected", "engine", b.Name())
			return b, nil
		}
		errs = append(errs, err)
	}
	return nil, fmt.Errorf("%w: %w", tts.ErrCapabilityAbsent, errors.Join(errs...))
}

// NewPlatform builds the speech platform for cfg. It returns
// tts.ErrCapabilityAbsent when speech is disabled, no engine is installed
// or audio output is unavailable.
func NewPlatform(cfg tts.Config) (tts.Platform, error) {
	backend, err := NewBackend(cfg)
	if err != nil {
		return nil, err
	}

	player, err := audio.NewPlayer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tts.ErrCapabilityAbsent, err)
	}

	var opts []tts.PlatformOption
	if cfg.CacheSize > 0 {
		opts = append(opts, tts.WithAudioCache(cache.NewMemory(int64(cfg.CacheSize)))) //nolint:gosec
	}
	return tts.NewSystemPlatform(backend, player, cfg.Timeout, opts...), nil
}
