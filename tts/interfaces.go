package tts

import "context"

// Voice is one entry in the host voice catalog.
type Voice struct {
	ID       string // Identifier passed back to the engine
	Name     string // Human-readable name
	Language string // Locale tag as reported by the engine (e.g. "en-US", "ru")
	Gender   string // Voice gender, if known
}

// Utterance is a single request to speak text.
type Utterance struct {
	Text   string
	Locale string

	// Voice is the selected voice. Nil means the engine default.
	Voice *Voice

	Volume float64 // 0.0 to 1.0
	Rate   float64 // 1.0 is the engine's natural rate
	Pitch  float64 // 1.0 is the engine's natural pitch
}

// NewUtterance returns an utterance at full volume with natural rate and
// pitch.
func NewUtterance(text, locale string) Utterance {
	return Utterance{
		Text:   text,
		Locale: locale,
		Volume: 1.0,
		Rate:   1.0,
		Pitch:  1.0,
	}
}

// Platform is the host speech capability. Implementations own the voice
// catalog and the single active utterance.
type Platform interface {
	// Voices returns the current voice catalog. It may be empty until
	// VoicesReady is closed.
	Voices() []Voice

	// VoicesReady is closed once the catalog has been loaded.
	VoicesReady() <-chan struct{}

	// Speak starts speaking u and returns without waiting for playback.
	Speak(u Utterance) error

	// Cancel stops the current utterance, if any.
	Cancel() error

	// Speaking reports whether an utterance is being synthesized or played.
	Speaking() bool
}

// Backend is a speech engine that can enumerate its voices and render
// text to WAV audio.
type Backend interface {
	// Name identifies the engine in logs and reports.
	Name() string

	// ListVoices enumerates the installed voices.
	ListVoices(ctx context.Context) ([]Voice, error)

	// Synthesize renders u as a 16-bit mono PCM RIFF/WAV file.
	Synthesize(ctx context.Context, u Utterance) ([]byte, error)
}

// AudioPlayer plays raw PCM audio, one clip at a time.
type AudioPlayer interface {
	Play(pcm []byte, volume float64) error
	Stop() error
	IsPlaying() bool
}
