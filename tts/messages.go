package tts

import "fmt"

// Verdict is the result of the startup voice check.
type Verdict int

const (
	// VerdictOK means both languages have a voice.
	VerdictOK Verdict = iota
	// VerdictBothMissing means neither language has a voice.
	VerdictBothMissing
	// VerdictSourceMissing means only the source language lacks a voice.
	VerdictSourceMissing
	// VerdictTranslationMissing means only the translation language lacks a voice.
	VerdictTranslationMissing
)

// String returns a string representation of the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictOK:
		return "ok"
	case VerdictBothMissing:
		return "both missing"
	case VerdictSourceMissing:
		return "source missing"
	case VerdictTranslationMissing:
		return "translation missing"
	default:
		return "unknown"
	}
}

// CheckVoices decides whether voices can speak the source and translation
// locales. Exact and family matches both count as present.
func CheckVoices(voices []Voice, source, translation string) Verdict {
	hasSource := HasLanguage(voices, source)
	hasTranslation := HasLanguage(voices, translation)

	switch {
	case !hasSource && !hasTranslation:
		return VerdictBothMissing
	case !hasSource:
		return VerdictSourceMissing
	case !hasTranslation:
		return VerdictTranslationMissing
	default:
		return VerdictOK
	}
}

// Warning returns the user-facing text for the verdict, or "" when every
// language is covered.
func (v Verdict) Warning(source, translation string) string {
	switch v {
	case VerdictBothMissing:
		return fmt.Sprintf(
			"No voices for %s or %s were found on your system. Please install the language packs for your speech engine.",
			LanguageName(source), LanguageName(translation))
	case VerdictSourceMissing:
		return missingLanguageWarning(source)
	case VerdictTranslationMissing:
		return missingLanguageWarning(translation)
	default:
		return ""
	}
}

func missingLanguageWarning(tag string) string {
	name := LanguageName(tag)
	return fmt.Sprintf(
		"No suitable voice found for %s. Playback quality might be affected. Please install the %s language pack.",
		name, name)
}

// DegradedWarning is shown when a speak request falls back to the engine
// default voice.
func DegradedWarning(locale string) string {
	return fmt.Sprintf("No suitable voice found for language '%s'. Playback quality might be affected.", locale)
}

// CapabilityAbsentWarning is shown when the host has no speech engine.
func CapabilityAbsentWarning() string {
	return "Speech is not available on this system. Install espeak-ng (Linux) or use the built-in say command (macOS) to hear proverbs."
}
