package tts

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
)

// LoadConfigFromViper loads speech configuration from Viper.
func LoadConfigFromViper() (Config, error) {
	cfg := DefaultConfig()

	if viper.IsSet("speech.engine") {
		cfg.Engine = viper.GetString("speech.engine")
	}
	if viper.IsSet("speech.source_locale") {
		cfg.SourceLocale = viper.GetString("speech.source_locale")
	}
	if viper.IsSet("speech.translation_locale") {
		cfg.TranslationLocale = viper.GetString("speech.translation_locale")
	}
	if viper.IsSet("speech.timeout") {
		cfg.Timeout = viper.GetDuration("speech.timeout")
	}

	if viper.IsSet("speech.cache_size") {
		size, err := humanize.ParseBytes(viper.GetString("speech.cache_size"))
		if err != nil {
			return cfg, fmt.Errorf("%w: cache_size: %w", ErrInvalidConfig, err)
		}
		cfg.CacheSize = size
	}

	if viper.IsSet("speech.espeak.binary") {
		cfg.ESpeak.Binary = viper.GetString("speech.espeak.binary")
	}
	if viper.IsSet("speech.say.binary") {
		cfg.Say.Binary = viper.GetString("speech.say.binary")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid speech configuration: %w", err)
	}

	return cfg, nil
}

// SetViperDefaults registers the speech defaults so that `config` output
// and environment overrides see every key.
func SetViperDefaults() {
	def := DefaultConfig()
	viper.SetDefault("speech.engine", def.Engine)
	viper.SetDefault("speech.source_locale", def.SourceLocale)
	viper.SetDefault("speech.translation_locale", def.TranslationLocale)
	viper.SetDefault("speech.timeout", def.Timeout)
	viper.SetDefault("speech.cache_size", humanize.IBytes(def.CacheSize))
	viper.SetDefault("speech.espeak.binary", def.ESpeak.Binary)
	viper.SetDefault("speech.say.binary", def.Say.Binary)
}
