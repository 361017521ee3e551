package say

import (
	"strings"
	"testing"

	"github.com/dgnsrekt/proverb/tts"
)

const voicesOutput = `Alex                en_US    # Most people recognize me by my voice.
Eddy (English (US)) en_US    # Hello! My name is Eddy.
Milena              ru_RU    # Здравствуйте! Меня зовут Милена.
Yuri                ru_RU    # Здравствуйте! Меня зовут Юрий.
Daniel              en_GB    # Hello, my name is Daniel.
garbage line without a locale
`

func TestParseVoices(t *testing.T) {
	voices := ParseVoices([]byte(voicesOutput))
	if len(voices) != 5 {
		t.Fatalf("ParseVoices() returned %d voices, want 5: %+v", len(voices), voices)
	}

	if voices[1].Name != "Eddy (English (US))" {
		t.Errorf("voices[1].Name = %q, want %q", voices[1].Name, "Eddy (English (US))")
	}
	if voices[2].Language != "ru-RU" {
		t.Errorf("voices[2].Language = %q, want ru-RU", voices[2].Language)
	}
}

func TestParsedVoicesMatchLocales(t *testing.T) {
	voices := ParseVoices([]byte(voicesOutput))

	v, m := tts.SelectVoice(voices, "ru-RU")
	if m != tts.MatchExact || v.Name != "Milena" {
		t.Errorf("SelectVoice(ru-RU) = %+v %v, want Milena exact", v, m)
	}

	v, m = tts.SelectVoice(voices, "en-AU")
	if m != tts.MatchFamily || v.Name != "Alex" {
		t.Errorf("SelectVoice(en-AU) = %+v %v, want Alex family", v, m)
	}
}

func TestArgs(t *testing.T) {
	u := tts.NewUtterance("Тише едешь", "ru-RU")
	u.Voice = &tts.Voice{ID: "Milena"}

	got := strings.Join(Args(u, "/tmp/out.wav"), " ")
	want := "-o /tmp/out.wav --file-format=WAVE --data-format=LEI16@22050 -r 175 -f - -v Milena"
	if got != want {
		t.Errorf("Args() = %q, want %q", got, want)
	}
}
