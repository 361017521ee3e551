package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/dgnsrekt/proverb/internal/proverb"
	"github.com/dgnsrekt/proverb/tts"
	"github.com/dgnsrekt/proverb/tts/engines/mock"
	"github.com/spf13/viper"
)

var testProverb = &proverb.Proverb{
	SourceText:     "Тише едешь — дальше будешь",
	TranslatedText: "The slower you go, the further you'll get",
	Meaning:        "Patience pays off",
	Category:       "patience",
}

type fakeFetcher struct {
	p   *proverb.Proverb
	err error
}

func (f fakeFetcher) FetchProverb(context.Context) (*proverb.Proverb, error) {
	return f.p, f.err
}

func setSpeakMode(t *testing.T, mode string) {
	t.Helper()
	prev := speak
	speak = mode
	t.Cleanup(func() { speak = prev })
}

func TestSpeechTargets(t *testing.T) {
	cfg := tts.DefaultConfig()

	tests := []struct {
		mode    string
		want    []speechTarget
		wantErr bool
	}{
		{mode: "source", want: []speechTarget{{testProverb.SourceText, "ru-RU"}}},
		{mode: "translation", want: []speechTarget{{testProverb.TranslatedText, "en-US"}}},
		{mode: "both", want: []speechTarget{{testProverb.SourceText, "ru-RU"}, {testProverb.TranslatedText, "en-US"}}},
		{mode: "BOTH", want: []speechTarget{{testProverb.SourceText, "ru-RU"}, {testProverb.TranslatedText, "en-US"}}},
		{mode: "meaning", wantErr: true},
		{mode: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			got, err := speechTargets(testProverb, tt.mode, cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for mode %q", tt.mode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d targets, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("target %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRenderPlain(t *testing.T) {
	out := renderPlain(testProverb, 80)

	for _, want := range []string{testProverb.SourceText, testProverb.TranslatedText, "Patience pays off", "#patience"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, testProverb.SourceText) > strings.Index(out, testProverb.TranslatedText) {
		t.Error("source text should come before the translation")
	}
}

func TestRenderPlain_OptionalFields(t *testing.T) {
	p := &proverb.Proverb{SourceText: "Без труда", TranslatedText: "Without effort"}
	out := renderPlain(p, 0)

	if strings.Contains(out, "#") {
		t.Errorf("no category expected:\n%s", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected two lines, got %q", out)
	}
}

func TestExecutePlain_PrintsProverb(t *testing.T) {
	setSpeakMode(t, "")

	var out, errOut bytes.Buffer
	err := executePlain(context.Background(), fakeFetcher{p: testProverb}, nil, tts.DefaultConfig(), &out, &errOut)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), testProverb.SourceText) {
		t.Errorf("proverb not printed: %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected warnings: %q", errOut.String())
	}
}

func TestExecutePlain_FetchError(t *testing.T) {
	setSpeakMode(t, "")

	fetchErr := &proverb.NetworkError{Err: errors.New("dial tcp: refused")}
	var out, errOut bytes.Buffer
	err := executePlain(context.Background(), fakeFetcher{err: fetchErr}, nil, tts.DefaultConfig(), &out, &errOut)
	if !errors.Is(err, proverb.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed on failure, got %q", out.String())
	}
}

func TestExecutePlain_SpeakWithoutVoiceSupport(t *testing.T) {
	setSpeakMode(t, "both")

	var out, errOut bytes.Buffer
	speaker := tts.NewSpeaker(nil)
	err := executePlain(context.Background(), fakeFetcher{p: testProverb}, speaker, tts.DefaultConfig(), &out, &errOut)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(errOut.String(), tts.CapabilityAbsentWarning()) {
		t.Errorf("expected capability warning, got %q", errOut.String())
	}
}

func TestExecutePlain_SpeaksSourceThenTranslation(t *testing.T) {
	setSpeakMode(t, "both")

	platform := mock.NewWithVoices(
		tts.Voice{ID: "milena", Name: "Milena", Language: "ru-RU"},
		tts.Voice{ID: "samantha", Name: "Samantha", Language: "en-US"},
	)
	speaker := tts.NewSpeaker(platform)

	go func() {
		for n := 1; n <= 2; n++ {
			if !platform.WaitForSpoken(n, 2*time.Second) {
				return
			}
			platform.Finish()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out, errOut bytes.Buffer
	if err := executePlain(ctx, fakeFetcher{p: testProverb}, speaker, tts.DefaultConfig(), &out, &errOut); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spoken := platform.Spoken()
	if len(spoken) != 2 {
		t.Fatalf("expected 2 utterances, got %d", len(spoken))
	}
	if spoken[0].Text != testProverb.SourceText || spoken[0].Voice == nil || spoken[0].Voice.ID != "milena" {
		t.Errorf("first utterance = %+v", spoken[0])
	}
	if spoken[1].Text != testProverb.TranslatedText || spoken[1].Voice == nil || spoken[1].Voice.ID != "samantha" {
		t.Errorf("second utterance = %+v", spoken[1])
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected warnings: %q", errOut.String())
	}
}

func TestFilterVoices(t *testing.T) {
	voices := []tts.Voice{
		{ID: "samantha", Name: "Samantha", Language: "en-US"},
		{ID: "milena", Name: "Milena", Language: "ru-RU"},
		{ID: "anna", Name: "Anna", Language: "de-DE"},
	}

	if got := filterVoices(voices, ""); len(got) != 3 {
		t.Errorf("empty filter should keep all voices, got %d", len(got))
	}

	got := filterVoices(voices, "milena")
	if len(got) == 0 || got[0].ID != "milena" {
		t.Errorf("expected milena first, got %+v", got)
	}

	got = filterVoices(voices, "Russian")
	if len(got) != 1 || got[0].ID != "milena" {
		t.Errorf("language name should match, got %+v", got)
	}

	if got := filterVoices(voices, "zzzz"); len(got) != 0 {
		t.Errorf("expected no matches, got %+v", got)
	}
}

func TestVoicesReport(t *testing.T) {
	r := voicesReport{
		engine: "espeak-ng",
		voices: []tts.Voice{
			{ID: "en-gb", Name: "English", Language: "en-GB"},
			{ID: "de", Name: "German", Language: "de-DE"},
		},
		source:      "ru-RU",
		translation: "en-US",
	}
	out := r.String()

	for _, want := range []string{
		"espeak-ng",
		"2 voices found",
		"No voice installed",
		"closest match",
		"Please install the Russian language pack",
		"German",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestVoicesReport_NoEngine(t *testing.T) {
	r := voicesReport{err: tts.ErrCapabilityAbsent, source: "ru-RU", translation: "en-US"}
	out := r.String()

	if !strings.Contains(out, "Not available") {
		t.Errorf("report should show a missing engine:\n%s", out)
	}
	if !strings.Contains(out, "espeak-ng") {
		t.Errorf("report should include install instructions:\n%s", out)
	}
}

func TestVoicesReport_MultiLineErrorIndented(t *testing.T) {
	err := fmt.Errorf("%w: %w", tts.ErrCapabilityAbsent, errors.Join(
		errors.New("espeak-ng: not found"),
		errors.New("say: not found"),
	))
	out := voicesReport{err: err, source: "ru-RU", translation: "en-US"}.String()

	if !strings.Contains(out, "\n    no speech capability on this system: espeak-ng: not found\n") {
		t.Errorf("first engine error not indented:\n%s", out)
	}
	if !strings.Contains(out, "\n    say: not found\n") {
		t.Errorf("second engine error not indented:\n%s", out)
	}

	r := voicesReport{engine: "espeak-ng", err: errors.Join(errors.New("a"), errors.New("b"))}
	if out := r.String(); !strings.Contains(out, "a\n    b\n") {
		t.Errorf("voice listing error not indented:\n%s", out)
	}
}

func TestValidateStyle(t *testing.T) {
	if err := validateStyle("dark"); err != nil {
		t.Errorf("dark is a standard style: %v", err)
	}
	if err := validateStyle("auto"); err != nil {
		t.Errorf("auto is a standard style: %v", err)
	}
	if err := validateStyle(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing style file")
	}
}

func TestDefaultConfigParses(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(defaultConfig)); err != nil {
		t.Fatalf("default config does not parse: %v", err)
	}

	if got := v.GetString("speech.engine"); got != tts.EngineAuto {
		t.Errorf("speech.engine = %q", got)
	}
	if got := v.GetString("speech.source_locale"); got != tts.DefaultSourceLocale {
		t.Errorf("speech.source_locale = %q", got)
	}
	if got := v.GetDuration("api.timeout"); got != proverb.DefaultTimeout {
		t.Errorf("api.timeout = %v", got)
	}
	if got := v.GetString("api.endpoint"); got != proverb.DefaultEndpoint {
		t.Errorf("api.endpoint = %q", got)
	}
}

func TestEnsureConfigFile(t *testing.T) {
	prev := configFile
	t.Cleanup(func() { configFile = prev })

	configFile = filepath.Join(t.TempDir(), "nested", "proverb.yml")
	if err := ensureConfigFile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(configFile)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if string(data) != defaultConfig {
		t.Error("written config should be the default config")
	}

	// An existing file is left alone.
	if err := os.WriteFile(configFile, []byte("width: 60\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := ensureConfigFile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ = os.ReadFile(configFile)
	if string(data) != "width: 60\n" {
		t.Errorf("existing config was overwritten: %q", data)
	}

	configFile = filepath.Join(t.TempDir(), "proverb.json")
	if err := ensureConfigFile(); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestConfigCommandOnFreshInstall(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses true(1) as the editor")
	}

	viper.Reset()
	t.Cleanup(viper.Reset)
	prev := configFile
	t.Cleanup(func() { configFile = prev })

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("PROVERB_CONFIG_HOME", "")
	t.Setenv("EDITOR", "true")

	configFile = ""
	tryLoadConfigFromDefaultPlaces()

	want := filepath.Join(home, "proverb", "proverb.yml")
	if got := viper.ConfigFileUsed(); got != want {
		t.Fatalf("ConfigFileUsed() = %q, want %q", got, want)
	}
	if got := viper.GetString("speech.engine"); got != tts.EngineAuto {
		t.Errorf("speech.engine = %q, want the default file to be read", got)
	}

	// Registering the --config flag resets the variable, as init does.
	configFile = ""

	var out bytes.Buffer
	configCmd.SetOut(&out)
	t.Cleanup(func() { configCmd.SetOut(nil) })

	if err := configCmd.RunE(configCmd, nil); err != nil {
		t.Fatalf("config command failed: %v", err)
	}
	if !strings.Contains(out.String(), want) {
		t.Errorf("output = %q, want path %q", out.String(), want)
	}
}
