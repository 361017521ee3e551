package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dgnsrekt/proverb/internal/proverb"
	"github.com/dgnsrekt/proverb/tts"
	"github.com/dgnsrekt/proverb/ui"
	"github.com/muesli/reflow/wordwrap"
)

// Values accepted by --speak.
const (
	speakSource      = "source"
	speakTranslation = "translation"
	speakBoth        = "both"
)

type speechTarget struct {
	text   string
	locale string
}

// speechTargets returns what --speak mode reads aloud, in order.
func speechTargets(p *proverb.Proverb, mode string, cfg tts.Config) ([]speechTarget, error) {
	source := speechTarget{text: p.SourceText, locale: cfg.SourceLocale}
	translation := speechTarget{text: p.TranslatedText, locale: cfg.TranslationLocale}

	switch strings.ToLower(mode) {
	case speakSource:
		return []speechTarget{source}, nil
	case speakTranslation:
		return []speechTarget{translation}, nil
	case speakBoth:
		return []speechTarget{source, translation}, nil
	default:
		return nil, fmt.Errorf("invalid --speak value %q: use %s, %s or %s", mode, speakSource, speakTranslation, speakBoth)
	}
}

// renderPlain formats a proverb for non-interactive output.
func renderPlain(p *proverb.Proverb, width int) string {
	if width <= 0 {
		width = 80
	}
	wrap := func(s string) string {
		return wordwrap.String(s, width)
	}

	var b strings.Builder
	b.WriteString(sourceStyle.Render(wrap(p.SourceText)))
	b.WriteString("\n")
	b.WriteString(translationStyle.Render(wrap(p.TranslatedText)))
	b.WriteString("\n")

	if p.Meaning != "" {
		b.WriteString("\n")
		b.WriteString(wrap(p.Meaning))
		b.WriteString("\n")
	}
	if p.HasCategory() {
		b.WriteString(subtleStyle.Render("#" + p.Category))
		b.WriteString("\n")
	}
	return b.String()
}

// executePlain prints one proverb and, when --speak is set, reads it aloud
// before returning. Speech warnings go to errOut.
func executePlain(ctx context.Context, fetcher ui.Fetcher, speaker *tts.Speaker, cfg tts.Config, out, errOut io.Writer) error {
	p, err := fetcher.FetchProverb(ctx)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprint(out, renderPlain(p, int(width))); err != nil { //nolint:gosec
		return fmt.Errorf("unable to write proverb: %w", err)
	}

	if speak == "" || speaker == nil {
		return nil
	}
	defer func() { _ = speaker.Close() }()

	targets, err := speechTargets(p, speak, cfg)
	if err != nil {
		return err
	}

	for _, t := range targets {
		speaker.Speak(t.text, t.locale)
		if err := speaker.Wait(ctx); err != nil {
			return err
		}
	}

	if msg := speaker.Warnings().Get(); msg != "" {
		fmt.Fprintln(errOut, warnStyle.Render(msg))
	}
	return nil
}
