package ui

// Config contains TUI-specific configuration.
type Config struct {
	GlamourStyle    string `env:"GLAMOUR_STYLE"`
	GlamourMaxWidth uint

	// Locales used when speaking the two texts of a proverb.
	SourceLocale      string
	TranslationLocale string

	// For debugging the UI
	AltScreen   bool `env:"PROVERB_ALT_SCREEN" envDefault:"true"`
	EnableMouse bool `env:"PROVERB_ENABLE_MOUSE" envDefault:"false"`
}
