// Package ui provides the terminal UI for proverb.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/proverb/internal/proverb"
	"github.com/dgnsrekt/proverb/tts"
	te "github.com/muesli/termenv"
)

const (
	statusMessageTimeout = time.Second * 3 // how long to show status messages like "copied!"
	ellipsis             = "…"
)

// Fetcher loads a random proverb.
type Fetcher interface {
	FetchProverb(ctx context.Context) (*proverb.Proverb, error)
}

// Speaker speaks text and publishes voice warnings.
type Speaker interface {
	Speak(text, locale string)
	Start()
	Close() error
	Warnings() *tts.WarningBox
}

// NewProgram returns a new Tea program.
func NewProgram(cfg Config, fetcher Fetcher, speaker Speaker) *tea.Program {
	log.Debug("starting proverb ui", "style", cfg.GlamourStyle, "alt_screen", cfg.AltScreen)

	var opts []tea.ProgramOption
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return tea.NewProgram(newModel(cfg, fetcher, speaker), opts...)
}

// ReloadMsg carries configuration that changed while the program runs. It
// applies to the next fetch and the next speak request.
type ReloadMsg struct {
	SourceLocale      string
	TranslationLocale string
	Fetcher           Fetcher
}

type (
	refreshMsg struct{}

	proverbMsg struct {
		id      int
		proverb *proverb.Proverb
		err     error
	}

	warningMsg struct {
		text    string
		version uint64
	}

	helpRenderedMsg string

	statusMessageTimeoutMsg int
)

// state is the state of the current fetch.
type state int

const (
	stateIdle state = iota
	stateLoading
	stateSuccess
	stateFailure
)

func (s state) String() string {
	return map[state]string{
		stateIdle:    "idle",
		stateLoading: "loading",
		stateSuccess: "success",
		stateFailure: "failure",
	}[s]
}

type model struct {
	cfg     Config
	fetcher Fetcher
	speaker Speaker
	ctx     context.Context
	cancel  context.CancelFunc

	state   state
	proverb *proverb.Proverb
	errText string
	fetchID int

	warning          string
	warningVersion   uint64
	dismissedVersion uint64

	showHelp     bool
	helpViewport viewport.Model

	statusMessage string
	statusID      int

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	width  int
	height int
}

func newModel(cfg Config, fetcher Fetcher, speaker Speaker) model {
	if cfg.GlamourStyle == "" || cfg.GlamourStyle == styles.AutoStyle {
		if te.HasDarkBackground() {
			cfg.GlamourStyle = styles.DarkStyle
		} else {
			cfg.GlamourStyle = styles.LightStyle
		}
	}
	if cfg.SourceLocale == "" {
		cfg.SourceLocale = tts.DefaultSourceLocale
	}
	if cfg.TranslationLocale == "" {
		cfg.TranslationLocale = tts.DefaultTranslationLocale
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = subtleStyle

	ctx, cancel := context.WithCancel(context.Background())

	return model{
		cfg:          cfg,
		fetcher:      fetcher,
		speaker:      speaker,
		ctx:          ctx,
		cancel:       cancel,
		state:        stateIdle,
		spinner:      sp,
		help:         help.New(),
		keys:         newKeyMap(),
		helpViewport: viewport.New(0, 0),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return refreshMsg{} },
		startSpeechCmd(m.speaker),
		waitForWarning(m.speaker.Warnings(), 0),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.setHelpSize()
		if m.showHelp {
			return m, renderHelp(m.cfg.GlamourStyle, m.helpViewport.Width)
		}
		return m, nil

	case refreshMsg:
		return m.startFetch()

	case proverbMsg:
		m.applyFetch(msg)
		return m, nil

	case warningMsg:
		log.Debug("voice warning changed", "warning", msg.text, "version", msg.version)
		m.warning = msg.text
		m.warningVersion = msg.version
		return m, waitForWarning(m.speaker.Warnings(), msg.version)

	case helpRenderedMsg:
		m.helpViewport.SetContent(string(msg))
		m.helpViewport.GotoTop()
		return m, nil

	case statusMessageTimeoutMsg:
		if int(msg) == m.statusID {
			m.statusMessage = ""
		}
		return m, nil

	case ReloadMsg:
		if msg.SourceLocale != "" {
			m.cfg.SourceLocale = msg.SourceLocale
		}
		if msg.TranslationLocale != "" {
			m.cfg.TranslationLocale = msg.TranslationLocale
		}
		if msg.Fetcher != nil {
			m.fetcher = msg.Fetcher
		}
		log.Info("configuration reloaded", "source_locale", m.cfg.SourceLocale, "translation_locale", m.cfg.TranslationLocale)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.showHelp {
		var cmd tea.Cmd
		m.helpViewport, cmd = m.helpViewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Close) {
			m.showHelp = false
			return m, nil
		}
		var cmd tea.Cmd
		m.helpViewport, cmd = m.helpViewport.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Refresh):
		if m.state == stateLoading {
			return m, nil
		}
		return m.startFetch()

	case key.Matches(msg, m.keys.SpeakSource):
		if m.state == stateSuccess && m.proverb != nil {
			m.speaker.Speak(m.proverb.SourceText, m.cfg.SourceLocale)
		}

	case key.Matches(msg, m.keys.SpeakTranslation):
		if m.state == stateSuccess && m.proverb != nil {
			m.speaker.Speak(m.proverb.TranslatedText, m.cfg.TranslationLocale)
		}

	case key.Matches(msg, m.keys.Copy):
		if m.state == stateSuccess && m.proverb != nil {
			copyToClipboard(m.proverb.String())
			return m, m.showStatusMessage("Copied proverb")
		}

	case key.Matches(msg, m.keys.Dismiss):
		if m.bannerVisible() {
			m.dismissedVersion = m.warningVersion
		}

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.setHelpSize()
		return m, renderHelp(m.cfg.GlamourStyle, m.helpViewport.Width)
	}

	return m, nil
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	if err := m.speaker.Close(); err != nil {
		log.Warn("speech shutdown error", "error", err)
	}
	return m, tea.Quit
}

// startFetch enters the loading state and issues a fetch.
func (m model) startFetch() (tea.Model, tea.Cmd) {
	m.state = stateLoading
	m.proverb = nil
	m.errText = ""
	m.fetchID++
	m.keys.Refresh.SetEnabled(false)
	log.Debug("fetching proverb", "fetch", m.fetchID)
	return m, tea.Batch(m.spinner.Tick, fetchProverb(m.ctx, m.fetcher, m.fetchID))
}

// applyFetch handles a fetch result. Results only apply while loading so a
// fetch transitions the state exactly once.
func (m *model) applyFetch(msg proverbMsg) {
	if m.state != stateLoading || msg.id != m.fetchID {
		log.Debug("ignoring stale fetch result", "fetch", msg.id, "state", m.state)
		return
	}

	switch {
	case msg.err != nil:
		m.state = stateFailure
		m.errText = failureText(msg.err)
	case msg.proverb == nil:
		m.state = stateFailure
		m.errText = emptyProverbText
	default:
		m.state = stateSuccess
		m.proverb = msg.proverb
	}
	m.keys.Refresh.SetEnabled(true)
}

func (m *model) showStatusMessage(s string) tea.Cmd {
	m.statusMessage = s
	m.statusID++
	id := m.statusID
	return tea.Tick(statusMessageTimeout, func(time.Time) tea.Msg {
		return statusMessageTimeoutMsg(id)
	})
}

func (m *model) setHelpSize() {
	w := max(0, min(m.width-4, 100))
	h := max(0, m.height-4)
	m.helpViewport.Width = w
	m.helpViewport.Height = h
}

// COMMANDS

func fetchProverb(ctx context.Context, f Fetcher, id int) tea.Cmd {
	return func() tea.Msg {
		p, err := f.FetchProverb(ctx)
		return proverbMsg{id: id, proverb: p, err: err}
	}
}

func startSpeechCmd(s Speaker) tea.Cmd {
	return func() tea.Msg {
		s.Start()
		return nil
	}
}

// waitForWarning blocks until the warning box moves past version.
func waitForWarning(box *tts.WarningBox, version uint64) tea.Cmd {
	return func() tea.Msg {
		for {
			changed := box.Changed()
			text, v := box.Snapshot()
			if v != version {
				return warningMsg{text: text, version: v}
			}
			<-changed
		}
	}
}
