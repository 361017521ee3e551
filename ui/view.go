package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/proverb/internal/proverb"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
)

// Failure texts shown in place of a proverb.
const (
	networkErrorText = "Could not reach the proverb service. Check your connection and try again."
	unknownErrorText = "An unknown error occurred."
	emptyProverbText = "Could not load a proverb. Try again!"
)

// failureText maps a fetch error to the message shown to the user.
func failureText(err error) string {
	var serr *proverb.ServerError
	switch {
	case proverb.IsNetworkError(err):
		return networkErrorText
	case errors.As(err, &serr):
		return serr.Error()
	default:
		return unknownErrorText
	}
}

func (m model) View() string {
	if m.showHelp {
		return m.helpDialogView()
	}

	var b strings.Builder
	b.WriteString(logoStyle.Render("Proverb"))
	b.WriteString("\n\n")

	switch m.state {
	case stateLoading:
		fmt.Fprintf(&b, "%s %s", m.spinner.View(), subtleStyle.Render("Fetching a proverb"+ellipsis))
	case stateFailure:
		b.WriteString(errorStyle.Render(m.wrap(m.errText)))
		b.WriteString("\n\n")
		b.WriteString(subtleStyle.Render("Press r to try again."))
	case stateSuccess:
		b.WriteString(m.proverbView())
	}

	if m.statusMessage != "" {
		b.WriteString("\n\n")
		b.WriteString(statusMessageStyle.Render(m.statusMessage))
	}

	if banner := m.bannerView(); banner != "" {
		b.WriteString("\n\n")
		b.WriteString(banner)
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return appStyle.Render(b.String())
}

func (m model) proverbView() string {
	p := m.proverb
	if p == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(sourceTextStyle.Render(m.wrap(p.SourceText)))
	b.WriteString("\n")
	b.WriteString(translatedTextStyle.Render(m.wrap(p.TranslatedText)))

	if p.Meaning != "" {
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render("Meaning: "))
		b.WriteString(m.wrap(p.Meaning))
	}
	if p.HasCategory() {
		b.WriteString("\n\n")
		b.WriteString(categoryStyle.Render(p.Category))
	}
	return b.String()
}

// contentWidth is the width available inside the app padding.
func (m model) contentWidth() int {
	w := m.width - appStyle.GetHorizontalPadding()
	if limit := int(m.cfg.GlamourMaxWidth); limit > 0 && (w <= 0 || w > limit) { //nolint:gosec
		w = limit
	}
	return w
}

func (m model) wrap(s string) string {
	w := m.contentWidth()
	if w <= 0 {
		return s
	}
	return wordwrap.String(s, w)
}

func (m model) bannerVisible() bool {
	return m.warning != "" && m.warningVersion != m.dismissedVersion
}

// bannerView renders the voice warning on a single line.
func (m model) bannerView() string {
	if !m.bannerVisible() {
		return ""
	}

	hint := subtleStyle.Render("  ? help · x dismiss")
	text := "⚠ " + m.warning
	if w := m.contentWidth(); w > 0 {
		text = runewidth.Truncate(text, max(1, w-lipgloss.Width(hint)), ellipsis)
	}
	return bannerStyle.Render(text + hint)
}

func copyToClipboard(s string) {
	// Copy using OSC 52
	termenv.Copy(s)
	// Copy using native system clipboard
	if err := clipboard.WriteAll(s); err != nil {
		log.Debug("native clipboard unavailable", "error", err)
	}
}
