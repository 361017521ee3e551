// Package tts provides text-to-speech for proverbs: voice selection by
// locale, graceful degradation when no matching voice is installed, and a
// single shared warning that the UI renders as a banner.
package tts

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// Speaker speaks text in a given locale on a Platform. It never returns
// errors to its callers: problems are reported through its WarningBox.
//
// At most one utterance is active at a time. A new Speak cancels the
// current utterance and supersedes any request still waiting for the
// voice catalog.
type Speaker struct {
	platform Platform
	warnings *WarningBox
	logger   *log.Logger

	sourceLocale      string
	translationLocale string

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	generation uint64
	deferred   atomic.Int32

	startOnce sync.Once
	logEvery  rate.Sometimes
}

// SpeakerOption configures a Speaker.
type SpeakerOption func(*Speaker)

// WithLocales sets the locales checked at startup.
func WithLocales(source, translation string) SpeakerOption {
	return func(s *Speaker) {
		s.sourceLocale = source
		s.translationLocale = translation
	}
}

// WithWarnings makes the speaker publish to an existing warning box.
func WithWarnings(w *WarningBox) SpeakerOption {
	return func(s *Speaker) {
		s.warnings = w
	}
}

// NewSpeaker returns a speaker for p. A nil platform means the host has no
// speech capability; every request then only raises a warning.
func NewSpeaker(p Platform, opts ...SpeakerOption) *Speaker {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Speaker{
		platform:          p,
		logger:            log.WithPrefix("speech"),
		sourceLocale:      DefaultSourceLocale,
		translationLocale: DefaultTranslationLocale,
		ctx:               ctx,
		cancel:            cancel,
		logEvery:          rate.Sometimes{Interval: time.Minute},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.warnings == nil {
		s.warnings = NewWarningBox()
	}
	return s
}

// Warnings returns the warning box the speaker writes to.
func (s *Speaker) Warnings() *WarningBox {
	return s.warnings
}

// Available reports whether a speech platform is present.
func (s *Speaker) Available() bool {
	return s.platform != nil
}

// Start runs the startup voice check once. If the catalog is still empty
// the check runs when it finishes loading.
func (s *Speaker) Start() {
	s.startOnce.Do(func() {
		if s.platform == nil {
			s.warn(CapabilityAbsentWarning())
			return
		}

		ready := s.platform.VoicesReady()
		if len(s.platform.Voices()) > 0 || isClosed(ready) {
			s.checkVoices()
			return
		}

		go func() {
			select {
			case <-ready:
			case <-s.ctx.Done():
				return
			}
			if s.ctx.Err() != nil {
				return
			}
			s.checkVoices()
		}()
	})
}

func (s *Speaker) checkVoices() {
	voices := s.platform.Voices()
	verdict := CheckVoices(voices, s.sourceLocale, s.translationLocale)
	s.logger.Debug("voice check", "voices", len(voices), "verdict", verdict)

	if msg := verdict.Warning(s.sourceLocale, s.translationLocale); msg != "" {
		s.warn(msg)
		return
	}
	s.warnings.Clear()
}

// Speak speaks text using the best voice for locale. It returns without
// waiting for playback.
func (s *Speaker) Speak(text, locale string) {
	if s.platform == nil {
		s.warn(CapabilityAbsentWarning())
		return
	}
	if s.ctx.Err() != nil {
		return
	}

	if s.platform.Speaking() {
		if err := s.platform.Cancel(); err != nil {
			s.logger.Error("cancel utterance", "error", err)
		}
	}

	u := NewUtterance(text, locale)

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	ready := s.platform.VoicesReady()
	if len(s.platform.Voices()) == 0 && !isClosed(ready) {
		s.logger.Debug("voices not loaded, deferring", "locale", locale)
		s.deferred.Add(1)
		go func() {
			defer s.deferred.Add(-1)
			select {
			case <-ready:
			case <-s.ctx.Done():
				return
			}
			if s.ctx.Err() != nil || !s.current(gen) {
				return
			}
			s.speak(u)
		}()
		return
	}

	s.speak(u)
}

func (s *Speaker) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.generation
}

func (s *Speaker) speak(u Utterance) {
	voice, match := SelectVoice(s.platform.Voices(), u.Locale)
	if match == MatchNone {
		s.logger.Info("degraded playback", "error", fmt.Errorf("%w: %s", ErrVoiceDegraded, u.Locale))
		s.warn(DegradedWarning(u.Locale))
	} else {
		u.Voice = &voice
		s.warnings.Clear()
	}

	s.logger.Debug("speaking", "locale", u.Locale, "match", match, "voice", voice.Name)
	if err := s.platform.Speak(u); err != nil {
		s.logger.Error("speak", "locale", u.Locale, "error", err)
	}
}

// Speaking reports whether an utterance is active or waiting for voices.
func (s *Speaker) Speaking() bool {
	if s.platform == nil {
		return false
	}
	return s.deferred.Load() > 0 || s.platform.Speaking()
}

// Wait blocks until nothing is being spoken or ctx is done.
func (s *Speaker) Wait(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for s.Speaking() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// Close stops speech and releases background work. The speaker must not
// be used afterwards.
func (s *Speaker) Close() error {
	s.cancel()
	if s.platform == nil {
		return nil
	}
	return s.platform.Cancel()
}

func (s *Speaker) warn(msg string) {
	s.warnings.Set(msg)
	s.logEvery.Do(func() {
		s.logger.Warn(msg)
	})
}
