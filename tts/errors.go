package tts

import "errors"

// Common errors for the speech system. None of them are fatal to the
// application: speech failures never block displaying a proverb.
var (
	// ErrCapabilityAbsent means the host has no usable speech engine.
	ErrCapabilityAbsent = errors.New("no speech capability on this system")

	// ErrVoiceDegraded means no installed voice matches the requested
	// locale and the engine default voice is used instead.
	ErrVoiceDegraded = errors.New("no suitable voice for locale")

	// ErrEngineNotAvailable means the configured engine binary is missing.
	ErrEngineNotAvailable = errors.New("speech engine is not available")

	// ErrEmptyText is returned when asked to speak nothing.
	ErrEmptyText = errors.New("no text to speak")

	// ErrSynthesisFailed wraps engine failures while rendering audio.
	ErrSynthesisFailed = errors.New("speech synthesis failed")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid speech configuration")
)
