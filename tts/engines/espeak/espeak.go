// Package espeak implements a speech backend on top of espeak-ng.
package espeak

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dgnsrekt/proverb/internal/subprocess"
	"github.com/dgnsrekt/proverb/tts"
)

// Binaries tried, in order, when no binary is configured.
var defaultBinaries = []string{"espeak-ng", "espeak"}

// Engine defaults. espeak-ng writes 16-bit mono WAV at 22050 Hz.
const (
	defaultAmplitude = 100 // 0-200
	defaultSpeed     = 175 // words per minute
	defaultPitch     = 50  // 0-99
)

// Config configures the espeak backend.
type Config struct {
	// Binary overrides the executable. Empty means espeak-ng, then espeak.
	Binary  string
	Timeout time.Duration
}

// Engine is an espeak-ng backend.
type Engine struct {
	binary string
	runner *subprocess.Runner
}

// New returns an engine for the first espeak binary found.
func New(cfg Config) (*Engine, error) {
	candidates := defaultBinaries
	if cfg.Binary != "" {
		candidates = []string{cfg.Binary}
	}
	path, err := subprocess.LookPath(candidates...)
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
	out, err := e.runner.Output(ctx, "", e.binary, "--voices")
	if err != nil {
		return nil, fmt.Errorf("listing espeak voices: %w", err)
	}
	return ParseVoices(out), nil
}

// Synthesize implements tts.Backend. Text is passed on stdin and the WAV
// is read from stdout.
func (e *Engine) Synthesize(ctx context.Context, u tts.Utterance) ([]byte, error) {
	if u.Text == "" {
		return nil, tts.ErrEmptyText
	}
	out, err := e.runner.Output(ctx, u.Text, e.binary, Args(u)...)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s produced no audio", e.Name())
	}
	return out, nil
}

// Args returns the command line arguments used to synthesize u.
func Args(u tts.Utterance) []string {
	args := []string{
		"--stdout",
		"--stdin",
		"-b", "1", // UTF-8 input
		"-a", strconv.Itoa(scale(defaultAmplitude, u.Volume, 0, 200)),
		"-s", strconv.Itoa(scale(defaultSpeed, u.Rate, 80, 450)),
		"-p", strconv.Itoa(scale(defaultPitch, u.Pitch, 0, 99)),
	}
	if u.Voice != nil && u.Voice.ID != "" {
		args = append(args, "-v", u.Voice.ID)
	}
	return args
}

func scale(base int, factor float64, lo, hi int) int {
	v := int(float64(base)*factor + 0.5)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseVoices parses the table printed by `espeak-ng --voices`:
//
//	Pty Language       Age/Gender VoiceName          File          Other Languages
//	 5  ru              --/M      Russian            zle/ru
//	 2  en-us           --/M      English_(America)  gmw/en-US     (en 3)
//
// The language column is used as the voice ID since -v accepts it.
func ParseVoices(out []byte) []tts.Voice {
	var voices []tts.Voice
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || fields[0] == "Pty" {
			continue
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			continue
		}
		voices = append(voices, tts.Voice{
			ID:       fields[1],
			Name:     strings.ReplaceAll(fields[3], "_", " "),
			Language: fields[1],
			Gender:   parseGender(fields[2]),
		})
	}
	return voices
}

func parseGender(ageGender string) string {
	_, g, ok := strings.Cut(ageGender, "/")
	if !ok {
		return ""
	}
	switch strings.ToUpper(g) {
	case "M":
		return "male"
	case "F":
		return "female"
	default:
		return ""
	}
}
