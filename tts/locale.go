package tts

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Match describes how well a voice fits a requested locale.
type Match int

const (
	// MatchNone means no installed voice shares the language.
	MatchNone Match = iota
	// MatchFamily means a voice shares the primary language subtag only.
	MatchFamily
	// MatchExact means a voice has the same locale.
	MatchExact
)

// String returns a string representation of the match.
func (m Match) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchFamily:
		return "family"
	default:
		return "none"
	}
}

// normalizeTag turns engine spellings such as "en_US" into BCP 47 form.
func normalizeTag(tag string) string {
	return strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
}

// CanonicalLocale returns the canonical BCP 47 form of tag. Tags that do
// not parse are returned lower-cased so they still compare consistently.
func CanonicalLocale(tag string) string {
	t, err := language.Parse(normalizeTag(tag))
	if err != nil {
		return strings.ToLower(normalizeTag(tag))
	}
	return t.String()
}

// PrimaryLanguage returns the primary language subtag of tag, e.g. "ru"
// for "ru-RU".
func PrimaryLanguage(tag string) string {
	tag = normalizeTag(tag)
	if t, err := language.Parse(tag); err == nil {
		if base, conf := t.Base(); conf != language.No {
			return base.String()
		}
	}
	if i := strings.IndexByte(tag, '-'); i >= 0 {
		tag = tag[:i]
	}
	return strings.ToLower(tag)
}

// SameLocale reports whether a and b name the same locale.
func SameLocale(a, b string) bool {
	return CanonicalLocale(a) == CanonicalLocale(b)
}

// SameLanguage reports whether a and b share a primary language subtag.
func SameLanguage(a, b string) bool {
	pa := PrimaryLanguage(a)
	return pa != "" && pa == PrimaryLanguage(b)
}

// SelectVoice picks the voice for locale: the first exact locale match,
// otherwise the first voice of the same language family. When nothing
// matches it returns MatchNone and the caller falls back to the engine
// default voice.
func SelectVoice(voices []Voice, locale string) (Voice, Match) {
	for _, v := range voices {
		if SameLocale(v.Language, locale) {
			return v, MatchExact
		}
	}
	for _, v := range voices {
		if SameLanguage(v.Language, locale) {
			return v, MatchFamily
		}
	}
	return Voice{}, MatchNone
}

// HasLanguage reports whether any voice can speak the language of locale.
func HasLanguage(voices []Voice, locale string) bool {
	_, m := SelectVoice(voices, locale)
	return m != MatchNone
}

// LanguageName returns the English name of the language of tag, such as
// "Russian" for "ru-RU". Unknown tags are returned as given.
func LanguageName(tag string) string {
	base, err := language.ParseBase(PrimaryLanguage(tag))
	if err != nil {
		return tag
	}
	if name := display.English.Languages().Name(base); name != "" {
		return name
	}
	return tag
}
