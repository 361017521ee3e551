package tts

import "testing"

func TestCanonicalLocale(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en-US", "en-US"},
		{"en_us", "en-US"},
		{"ru_RU", "ru-RU"},
		{"ru", "ru"},
		{" en-GB ", "en-GB"},
		{"!!bogus", "!!bogus"},
	}

	for _, tt := range tests {
		if got := CanonicalLocale(tt.in); got != tt.want {
			t.Errorf("CanonicalLocale(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrimaryLanguage(t *testing.T) {
	tests := map[string]string{
		"ru-RU":      "ru",
		"en_GB":      "en",
		"en-gb-x-rp": "en",
		"ru":         "ru",
		"!!-x":       "!!",
	}
	for in, want := range tests {
		if got := PrimaryLanguage(in); got != want {
			t.Errorf("PrimaryLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSameLocale(t *testing.T) {
	if !SameLocale("en-US", "en_us") {
		t.Error("en-US and en_us should be the same locale")
	}
	if SameLocale("en-US", "en-GB") {
		t.Error("en-US and en-GB should differ")
	}
	if !SameLanguage("en-US", "en-GB") {
		t.Error("en-US and en-GB should share a language")
	}
	if SameLanguage("", "") {
		t.Error("empty tags should not share a language")
	}
}

func TestSelectVoice(t *testing.T) {
	daniel := Voice{ID: "Daniel", Name: "Daniel", Language: "en-GB"}
	samantha := Voice{ID: "Samantha", Name: "Samantha", Language: "en-US"}
	milena := Voice{ID: "Milena", Name: "Milena", Language: "ru-RU"}
	anna := Voice{ID: "Anna", Name: "Anna", Language: "de-DE"}

	tests := []struct {
		name      string
		voices    []Voice
		locale    string
		wantVoice Voice
		wantMatch Match
	}{
		{
			name:      "exact match",
			voices:    []Voice{daniel, samantha, milena},
			locale:    "en-US",
			wantVoice: samantha,
			wantMatch: MatchExact,
		},
		{
			name:      "exact beats earlier family",
			voices:    []Voice{daniel, samantha},
			locale:    "en-US",
			wantVoice: samantha,
			wantMatch: MatchExact,
		},
		{
			name:      "family match",
			voices:    []Voice{anna, daniel},
			locale:    "en-US",
			wantVoice: daniel,
			wantMatch: MatchFamily,
		},
		{
			name:      "engine spelling",
			voices:    []Voice{{ID: "ru", Language: "ru_RU"}},
			locale:    "ru-RU",
			wantVoice: Voice{ID: "ru", Language: "ru_RU"},
			wantMatch: MatchExact,
		},
		{
			name:      "no match",
			voices:    []Voice{anna},
			locale:    "ru-RU",
			wantMatch: MatchNone,
		},
		{
			name:      "empty catalog",
			locale:    "ru-RU",
			wantMatch: MatchNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, m := SelectVoice(tt.voices, tt.locale)
			if m != tt.wantMatch {
				t.Errorf("match = %v, want %v", m, tt.wantMatch)
			}
			if v != tt.wantVoice {
				t.Errorf("voice = %+v, want %+v", v, tt.wantVoice)
			}
		})
	}
}

func TestLanguageName(t *testing.T) {
	tests := map[string]string{
		"ru-RU": "Russian",
		"en-US": "English",
		"de":    "German",
		"!!":    "!!",
	}
	for in, want := range tests {
		if got := LanguageName(in); got != want {
			t.Errorf("LanguageName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMatchString(t *testing.T) {
	if MatchExact.String() != "exact" || MatchFamily.String() != "family" || MatchNone.String() != "none" {
		t.Error("unexpected Match strings")
	}
}
