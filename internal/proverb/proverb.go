// Package proverb fetches random proverbs from the remote proverb API.
package proverb

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Proverb is a single proverb record. It is never mutated after a fetch.
type Proverb struct {
	// SourceText is the proverb in its original language.
	SourceText string `validate:"required"`

	// TranslatedText is an English rendering of the proverb.
	TranslatedText string `validate:"required"`

	// Meaning is an explanatory gloss.
	Meaning string

	// Category is an optional classification tag. Empty means absent.
	Category string
}

// HasCategory reports whether the proverb carries a category tag.
func (p *Proverb) HasCategory() bool {
	return p != nil && p.Category != ""
}

// String renders the proverb as plain text, one field per line.
func (p *Proverb) String() string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(p.SourceText)
	b.WriteString("\n")
	b.WriteString(p.TranslatedText)
	if p.Meaning != "" {
		fmt.Fprintf(&b, "\n\nMeaning: %s", p.Meaning)
	}
	if p.HasCategory() {
		fmt.Fprintf(&b, "\nCategory: %s", p.Category)
	}
	return b.String()
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that both texts are present.
func (p *Proverb) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid proverb: %w", err)
	}
	return nil
}

// proverbResponse is the wire shape. The public API uses the
// russian_proverb/english_translation/meaning_explanation names; the
// neutral names take precedence when both are present.
type proverbResponse struct {
	SourceText     string `json:"source_text"`
	TranslatedText string `json:"translated_text"`
	Meaning        string `json:"meaning"`
	Category       string `json:"category"`

	RussianProverb     string `json:"russian_proverb"`
	EnglishTranslation string `json:"english_translation"`
	MeaningExplanation string `json:"meaning_explanation"`
}

// toDomain translates the wire shape into a Proverb. Text is carried over
// untouched.
func (r *proverbResponse) toDomain() *Proverb {
	return &Proverb{
		SourceText:     firstNonEmpty(r.SourceText, r.RussianProverb),
		TranslatedText: firstNonEmpty(r.TranslatedText, r.EnglishTranslation),
		Meaning:        firstNonEmpty(r.Meaning, r.MeaningExplanation),
		Category:       r.Category,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
