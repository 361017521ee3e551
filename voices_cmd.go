package main

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/dgnsrekt/proverb/tts"
	"github.com/dgnsrekt/proverb/tts/engines"
	"github.com/dustin/go-humanize"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
)

var voicesCmd = &cobra.Command{
	Use:     "voices [filter]",
	Short:   "List the speech engine and its installed voices",
	Long:    paragraph(fmt.Sprintf("\n%s the voices of the configured speech engine and check that the proverb and its translation can be read aloud. An optional filter fuzzy-matches voice names and languages.", keyword("List"))),
	Example: paragraph("proverb voices\nproverb voices russian"),
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := tts.LoadConfigFromViper()
		if err != nil {
			return err
		}

		var filter string
		if len(args) > 0 {
			filter = args[0]
		}

		r := voicesReport{
			filter:      filter,
			source:      cfg.SourceLocale,
			translation: cfg.TranslationLocale,
		}

		backend, err := engines.NewBackend(cfg)
		if err != nil {
			r.err = err
			fmt.Fprint(cmd.OutOrStdout(), r.String())
			return nil
		}
		r.engine = backend.Name()

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
		defer cancel()

		start := time.Now()
		r.voices, r.err = backend.ListVoices(ctx)
		r.elapsed = time.Since(start)

		fmt.Fprint(cmd.OutOrStdout(), r.String())
		return nil
	},
}

// voiceSource adapts a voice list for fuzzy matching.
type voiceSource []tts.Voice

func (v voiceSource) String(i int) string {
	return v[i].Name + " " + v[i].Language + " " + tts.LanguageName(v[i].Language)
}

func (v voiceSource) Len() int {
	return len(v)
}

// filterVoices returns the voices matching filter, best match first. An
// empty filter keeps every voice in engine order.
func filterVoices(voices []tts.Voice, filter string) []tts.Voice {
	if filter == "" {
		return voices
	}
	matches := fuzzy.FindFrom(filter, voiceSource(voices))
	out := make([]tts.Voice, 0, len(matches))
	for _, m := range matches {
		out = append(out, voices[m.Index])
	}
	return out
}

type voicesReport struct {
	engine      string
	voices      []tts.Voice
	err         error
	filter      string
	source      string
	translation string
	elapsed     time.Duration
}

func (r voicesReport) String() string {
	var b strings.Builder

	b.WriteString(reportTitleStyle.Render("Speech Voice Report"))
	b.WriteString("\n\n")

	if r.engine == "" {
		b.WriteString(missingStyle.Render("  ✗ engine: "))
		b.WriteString("Not available\n")
		if r.err != nil {
			fmt.Fprintf(&b, "    %s\n", indentError(r.err, "    "))
		}
		fmt.Fprintf(&b, "    %s\n", installInstructions(runtime.GOOS))
		return b.String()
	}

	b.WriteString(okStyle.Render("  ✓ engine: "))
	b.WriteString(r.engine + "\n")

	if r.err != nil {
		b.WriteString(missingStyle.Render("  ✗ voices: "))
		fmt.Fprintf(&b, "%s\n", indentError(r.err, "    "))
		return b.String()
	}

	fmt.Fprintf(&b, "  %s voices found in %s\n",
		humanize.Comma(int64(len(r.voices))),
		r.elapsed.Round(time.Millisecond))

	b.WriteString("\nLanguages:\n")
	for _, locale := range []string{r.source, r.translation} {
		voice, match := tts.SelectVoice(r.voices, locale)
		name := tts.LanguageName(locale)
		switch match {
		case tts.MatchExact:
			b.WriteString(okStyle.Render(fmt.Sprintf("  ✓ %s: ", name)))
			fmt.Fprintf(&b, "%s (%s)\n", voice.Name, voice.Language)
		case tts.MatchFamily:
			b.WriteString(warnStyle.Render(fmt.Sprintf("  ○ %s: ", name)))
			fmt.Fprintf(&b, "%s (%s, closest match)\n", voice.Name, voice.Language)
		default:
			b.WriteString(missingStyle.Render(fmt.Sprintf("  ✗ %s: ", name)))
			b.WriteString("No voice installed\n")
		}
	}

	verdict := tts.CheckVoices(r.voices, r.source, r.translation)
	if msg := verdict.Warning(r.source, r.translation); msg != "" {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(msg))
		b.WriteString("\n")
	}

	voices := filterVoices(r.voices, r.filter)
	if r.filter != "" {
		fmt.Fprintf(&b, "\nVoices matching %q:\n", r.filter)
	} else {
		b.WriteString("\nVoices:\n")
	}
	if len(voices) == 0 {
		b.WriteString(subtleStyle.Render("  none"))
		b.WriteString("\n")
	}
	for _, v := range voices {
		fmt.Fprintf(&b, "  %-24s %s\n", v.Name, subtleStyle.Render(v.Language))
	}

	return b.String()
}

// indentError keeps multi-line errors, such as joined engine errors, under
// their report line.
func indentError(err error, indent string) string {
	return strings.ReplaceAll(strings.TrimRight(err.Error(), "\n"), "\n", "\n"+indent)
}

func installInstructions(goos string) string {
	switch goos {
	case "darwin":
		return "Add voices in System Settings > Accessibility > Spoken Content, or install espeak-ng: brew install espeak-ng"
	case "windows":
		return "Install espeak-ng from https://github.com/espeak-ng/espeak-ng/releases"
	default:
		return "Install espeak-ng: sudo apt install espeak-ng (Debian/Ubuntu) or sudo dnf install espeak-ng (Fedora)"
	}
}
