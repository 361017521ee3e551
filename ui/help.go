package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/proverb/utils"
)

const voiceHelpMarkdown = `# Installing voices

Proverbs are read aloud by the speech engine installed on your system.
When no voice matches Russian or English, the engine's default voice is
used and pronunciation may suffer.

## Linux

Install **espeak-ng**, which ships voices for both languages:

    sudo apt install espeak-ng      # Debian, Ubuntu
    sudo dnf install espeak-ng      # Fedora
    sudo pacman -S espeak-ng        # Arch

## macOS

The built-in ` + "`say`" + ` command is used. Add voices under
*System Settings > Accessibility > Spoken Content > System Voice >
Manage Voices*, for example **Milena** (Russian) and **Samantha**
(English).

## Windows

Install espeak-ng from its release page and make sure ` + "`espeak-ng`" + ` is
on your ` + "`PATH`" + `.

## Still no voice?

Run ` + "`proverb voices`" + ` to list the engine and voices that were found,
and restart proverb after installing new voices.
`

func renderHelp(style string, width int) tea.Cmd {
	return func() tea.Msg {
		s, err := glamourRender(style, width, voiceHelpMarkdown)
		if err != nil {
			log.Error("error rendering voice help", "error", err)
			return helpRenderedMsg(voiceHelpMarkdown)
		}
		return helpRenderedMsg(s)
	}
}

func glamourRender(style string, width int, markdown string) (string, error) {
	options := []glamour.TermRendererOption{
		utils.GlamourStyle(style),
	}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}

	r, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return "", fmt.Errorf("error creating glamour renderer: %w", err)
	}

	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("error rendering markdown: %w", err)
	}
	return strings.TrimRight(out, "\n"), nil
}

func (m model) helpDialogView() string {
	footer := subtleStyle.Render("↑/↓ scroll · esc close")
	return helpDialogStyle.Render(m.helpViewport.View()) + "\n" + footer
}
