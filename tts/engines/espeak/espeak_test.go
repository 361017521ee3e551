package espeak

import (
	"testing"

	"github.com/dgnsrekt/proverb/tts"
)

const voicesOutput = `Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  af              --/M      Afrikaans          gmw/af
 2  en-us           --/M      English_(America)  gmw/en-US            (en 3)
 5  en-gb-x-rp      --/M      English_(Received_Pronunciation) gmw/en-GB-x-rp       (en 4)
 5  ru              --/F      Russian            zle/ru
 5  ru-LV           --/M      Russian_(Latvia)   zle/ru-LV
`

func TestParseVoices(t *testing.T) {
	voices := ParseVoices([]byte(voicesOutput))
	if len(voices) != 5 {
		t.Fatalf("ParseVoices() returned %d voices, want 5", len(voices))
	}

	want := tts.Voice{ID: "en-us", Name: "English (America)", Language: "en-us", Gender: "male"}
	if voices[1] != want {
		t.Errorf("voices[1] = %+v, want %+v", voices[1], want)
	}
	if voices[3].Gender != "female" {
		t.Errorf("voices[3].Gender = %q, want female", voices[3].Gender)
	}
}

func TestParseVoicesSkipsGarbage(t *testing.T) {
	voices := ParseVoices([]byte("\nnot a table\nPty Language\n"))
	if len(voices) != 0 {
		t.Errorf("ParseVoices() = %+v, want none", voices)
	}
}

func TestParsedVoicesMatchLocales(t *testing.T) {
	voices := ParseVoices([]byte(voicesOutput))

	v, m := tts.SelectVoice(voices, "en-US")
	if m != tts.MatchExact || v.ID != "en-us" {
		t.Errorf("SelectVoice(en-US) = %+v %v, want en-us exact", v, m)
	}

	v, m = tts.SelectVoice(voices, "ru-RU")
	if m != tts.MatchFamily || v.ID != "ru" {
		t.Errorf("SelectVoice(ru-RU) = %+v %v, want ru family", v, m)
	}
}

func TestArgs(t *testing.T) {
	u := tts.NewUtterance("Тише едешь", "ru-RU")
	args := Args(u)
	want := []string{"--stdout", "--stdin", "-b", "1", "-a", "100", "-s", "175", "-p", "50"}
	if len(args) != len(want) {
		t.Fatalf("Args() = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("Args()[%d] = %q, want %q", i, args[i], want[i])
		}
	}

	u.Voice = &tts.Voice{ID: "ru"}
	u.Volume = 5
	args = Args(u)
	if got := args[len(args)-1]; got != "ru" {
		t.Errorf("voice arg = %q, want ru", got)
	}
	if args[5] != "200" {
		t.Errorf("amplitude = %q, want clamped 200", args[5])
	}
}
