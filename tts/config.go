package tts

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Engine names accepted by Config.Engine.
const (
	EngineAuto   = "auto"
	EngineESpeak = "espeak"
	EngineSay    = "say"
	EngineNone   = "none"
)

// DefaultCacheSize is the default audio cache size in bytes.
const DefaultCacheSize = 8 << 20

// Default locales for the two spoken fields of a proverb.
const (
	DefaultSourceLocale      = "ru-RU"
	DefaultTranslationLocale = "en-US"
)

// Config contains all speech configuration options. It is read from the
// "speech" section of the viper configuration by LoadConfigFromViper.
type Config struct {
	// Engine selects the speech backend. "auto" picks the first engine
	// available on this system and "none" disables speech.
	Engine string

	// Locales used for the startup voice check and for speaking.
	SourceLocale      string
	TranslationLocale string

	// Timeout bounds a single synthesis or voice listing.
	Timeout time.Duration

	// CacheSize bounds the memory used to keep synthesized audio for
	// repeated utterances. Zero disables the cache.
	CacheSize uint64

	// Engine-specific configurations
	ESpeak ESpeakConfig
	Say    SayConfig
}

// ESpeakConfig contains espeak-ng specific settings.
type ESpeakConfig struct {
	// Binary is the engine executable. Empty means espeak-ng, then espeak.
	Binary string
}

// SayConfig contains macOS say specific settings.
type SayConfig struct {
	Binary string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Engine:            EngineAuto,
		SourceLocale:      DefaultSourceLocale,
		TranslationLocale: DefaultTranslationLocale,
		Timeout:           30 * time.Second,
		CacheSize:         DefaultCacheSize,
		Say: SayConfig{
			Binary: "say",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Engine {
	case EngineAuto, EngineESpeak, EngineSay, EngineNone:
	default:
		return fmt.Errorf("%w: unknown engine %q (want auto, espeak, say or none)", ErrInvalidConfig, c.Engine)
	}

	for name, tag := range map[string]string{
		"source_locale":      c.SourceLocale,
		"translation_locale": c.TranslationLocale,
	} {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, name)
		}
		if _, err := language.Parse(normalizeTag(tag)); err != nil {
			return fmt.Errorf("%w: %s %q is not a valid language tag", ErrInvalidConfig, name, tag)
		}
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.Timeout > 5*time.Minute {
		return fmt.Errorf("%w: timeout must not exceed 5m", ErrInvalidConfig)
	}

	return nil
}

// Disabled reports whether speech has been turned off.
func (c *Config) Disabled() bool {
	return c.Engine == EngineNone
}
