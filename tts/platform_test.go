package tts_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dgnsrekt/proverb/internal/cache"
	"github.com/dgnsrekt/proverb/tts"
	"github.com/dgnsrekt/proverb/tts/engines/mock"
)

func newSystemPlatform(t *testing.T, voices ...tts.Voice) (*tts.SystemPlatform, *mock.Engine, *mock.Player) {
	t.Helper()
	engine := mock.NewEngine(voices...)
	player := mock.NewPlayer()
	p := tts.NewSystemPlatform(engine, player, time.Second)

	select {
	case <-p.VoicesReady():
	case <-time.After(time.Second):
		t.Fatal("voice catalog did not load")
	}
	return p, engine, player
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSystemPlatformLoadsVoices(t *testing.T) {
	p, _, _ := newSystemPlatform(t, samantha, milena)
	if got := len(p.Voices()); got != 2 {
		t.Errorf("len(Voices()) = %d, want 2", got)
	}
	if p.Backend().Name() != "mock" {
		t.Errorf("Backend().Name() = %q", p.Backend().Name())
	}
}

func TestSystemPlatformSpeak(t *testing.T) {
	p, engine, player := newSystemPlatform(t, milena)

	u := tts.NewUtterance("Тише едешь", "ru-RU")
	u.Voice = &milena
	if err := p.Speak(u); err != nil {
		t.Fatalf("Speak() = %v", err)
	}
	if !p.Speaking() {
		t.Error("platform should be speaking while synthesizing")
	}
	if !player.WaitForPlay(time.Second) {
		t.Fatal("audio was never played")
	}
	if player.Volume() != 1 {
		t.Errorf("volume = %v, want 1", player.Volume())
	}
	if got := engine.LastUtterance(); got.Voice == nil || got.Voice.ID != "Milena" {
		t.Errorf("engine got voice %+v", got.Voice)
	}

	player.Finish()
	if p.Speaking() {
		t.Error("platform should be idle after playback")
	}
}

func TestSystemPlatformRejectsEmptyText(t *testing.T) {
	p, _, _ := newSystemPlatform(t)
	if err := p.Speak(tts.NewUtterance("", "en-US")); !errors.Is(err, tts.ErrEmptyText) {
		t.Errorf("Speak(\"\") = %v, want ErrEmptyText", err)
	}
}

func TestSystemPlatformCancelDuringSynthesis(t *testing.T) {
	p, engine, player := newSystemPlatform(t, samantha)
	engine.SetDelay(200 * time.Millisecond)

	if err := p.Speak(tts.NewUtterance("Hello", "en-US")); err != nil {
		t.Fatalf("Speak() = %v", err)
	}
	if err := p.Cancel(); err != nil {
		t.Fatalf("Cancel() = %v", err)
	}
	if p.Speaking() {
		t.Error("platform should be idle after Cancel")
	}
	if player.WaitForPlay(300 * time.Millisecond) {
		t.Error("cancelled utterance should not play")
	}
}

func TestSystemPlatformNewerUtteranceWins(t *testing.T) {
	p, engine, player := newSystemPlatform(t, samantha)
	engine.SetDelay(50 * time.Millisecond)

	_ = p.Speak(tts.NewUtterance("first", "en-US"))
	_ = p.Speak(tts.NewUtterance("second", "en-US"))

	if !player.WaitForPlay(time.Second) {
		t.Fatal("nothing played")
	}
	time.Sleep(100 * time.Millisecond)
	if player.Plays() != 1 {
		t.Errorf("Plays() = %d, want 1", player.Plays())
	}
}

func TestSystemPlatformSynthesisFailure(t *testing.T) {
	p, engine, player := newSystemPlatform(t, samantha)
	engine.SetShouldFail(true)

	if err := p.Speak(tts.NewUtterance("Hello", "en-US")); err != nil {
		t.Fatalf("Speak() = %v", err)
	}
	eventually(t, func() bool { return !p.Speaking() })
	if player.Plays() != 0 {
		t.Errorf("Plays() = %d, want 0", player.Plays())
	}
}

func TestSpeakerOnSystemPlatform(t *testing.T) {
	p, engine, player := newSystemPlatform(t, samantha)
	s := tts.NewSpeaker(p)
	defer s.Close()

	s.Start()
	if w := s.Warnings().Get(); w == "" {
		t.Error("missing Russian voice should raise a warning")
	}

	s.Speak("Тише едешь", "ru-RU")
	if !player.WaitForPlay(time.Second) {
		t.Fatal("audio was never played")
	}
	if got := engine.LastUtterance(); got.Voice != nil {
		t.Errorf("voice = %+v, want engine default", got.Voice)
	}
	if s.Warnings().Get() != tts.DegradedWarning("ru-RU") {
		t.Errorf("warning = %q", s.Warnings().Get())
	}
}

func TestSystemPlatformAudioCache(t *testing.T) {
	engine := mock.NewEngine(milena)
	player := mock.NewPlayer()
	audioCache := cache.NewMemory(1 << 20)
	p := tts.NewSystemPlatform(engine, player, time.Second, tts.WithAudioCache(audioCache))
	<-p.VoicesReady()

	u := tts.NewUtterance("Тише едешь", "ru-RU")
	u.Voice = &milena
	for i := 0; i < 2; i++ {
		if err := p.Speak(u); err != nil {
			t.Fatalf("Speak() = %v", err)
		}
		if !player.WaitForPlay(time.Second) {
			t.Fatalf("play %d never started", i+1)
		}
		player.Finish()
	}

	if got := engine.CallCount(); got != 1 {
		t.Errorf("engine called %d times, want 1", got)
	}
	if got := player.Plays(); got != 2 {
		t.Errorf("player started %d clips, want 2", got)
	}
	if stats := audioCache.Stats(); stats.Hits != 1 || stats.Items != 1 {
		t.Errorf("cache stats = %+v", stats)
	}

	// A different voice is a different clip.
	other := u
	other.Voice = &tts.Voice{ID: "ru+f3", Language: "ru-RU"}
	if err := p.Speak(other); err != nil {
		t.Fatalf("Speak() = %v", err)
	}
	if !player.WaitForPlay(time.Second) {
		t.Fatal("third play never started")
	}
	if got := engine.CallCount(); got != 2 {
		t.Errorf("engine called %d times, want 2", got)
	}
}
