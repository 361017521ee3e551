// Package say implements a speech backend on top of the macOS say command.
package say

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dgnsrekt/proverb/internal/audio"
	"github.com/dgnsrekt/proverb/internal/subprocess"
	"github.com/dgnsrekt/proverb/tts"
)

const defaultRate = 175 // words per minute

// voiceLine matches lines of `say -v '?'`:
//
//	Milena              ru_RU    # Здравствуйте! Меня зовут Милена.
//	Eddy (English (US)) en_US    # Hello! My name is Eddy.
var voiceLine = regexp.MustCompile(`^(.+?)\s+([A-Za-z]{2,3}(?:[_-][A-Za-z0-9]+)*)\s+#`)

// Config configures the say backend.
type Config struct {
	Binary  string
	Timeout time.Duration
}

// Engine is a macOS say backend.
type Engine struct {
	binary string
	runner *subprocess.Runner
}

// New returns an engine for the say binary.
func New(cfg Config) (*Engine, error) {
	bin := cfg.Binary
	if bin == "" {
		bin = "say"
	}
	path, err := subprocess.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tts.ErrEngineNotAvailable, err)
	}
	return &Engine{
		binary: path,
		runner: subprocess.NewRunner(cfg.Timeout),
	}, nil
}

// Name implements tts.Backend.
func (e *Engine) Name() string {
	return filepath.Base(e.binary)
}

// ListVoices implements tts.Backend.
func (e *Engine) ListVoices(ctx context.Context) ([]tts.Voice, error) {
	out, err := e.runner.Output(ctx, "", e.binary, "-v", "?")
	if err != nil {
		return nil, fmt.Errorf("listing say voices: %w", err)
	}
	return ParseVoices(out), nil
}

// Synthesize implements tts.Backend. say cannot write WAV to stdout, so
// the audio goes through a temporary file.
func (e *Engine) Synthesize(ctx context.Context, u tts.Utterance) ([]byte, error) {
	if u.Text == "" {
		return nil, tts.ErrEmptyText
	}

	f, err := os.CreateTemp("", "proverb-*.wav")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	_ = f.Close()
	defer func() { _ = os.Remove(path) }()

	if _, err := e.runner.Output(ctx, u.Text, e.binary, Args(u, path)...); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading synthesized audio: %w", err)
	}
	return data, nil
}

// Args returns the command line arguments used to render u into path.
func Args(u tts.Utterance, path string) []string {
	rate := int(float64(defaultRate)*u.Rate + 0.5)
	if rate < 1 {
		rate = 1
	}
	args := []string{
		"-o", path,
		"--file-format=WAVE",
		fmt.Sprintf("--data-format=LEI%d@%d", audio.BitDepth, audio.SampleRate),
		"-r", strconv.Itoa(rate),
		"-f", "-",
	}
	if u.Voice != nil && u.Voice.ID != "" {
		args = append(args, "-v", u.Voice.ID)
	}
	return args
}

// ParseVoices parses the output of `say -v '?'`. Locales are reported as
// "ru_RU" and converted to "ru-RU".
func ParseVoices(out []byte) []tts.Voice {
	var voices []tts.Voice
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		m := voiceLine.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		voices = append(voices, tts.Voice{
			ID:       name,
			Name:     name,
			Language: strings.ReplaceAll(m[2], "_", "-"),
		})
	}
	return voices
}
