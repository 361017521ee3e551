// Package main provides the entry point for the proverb CLI application.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/proverb/internal/proverb"
	"github.com/dgnsrekt/proverb/tts"
	"github.com/dgnsrekt/proverb/tts/engines"
	"github.com/dgnsrekt/proverb/ui"
	"github.com/dgnsrekt/proverb/utils"
	"github.com/fsnotify/fsnotify"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	plain      bool
	speak      string
	style      string
	width      uint
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "proverb",
		Short: "Random Russian proverbs on the CLI, read aloud",
		Long: paragraph(
			fmt.Sprintf("\nA random Russian proverb with its English translation, %s!", keyword("read aloud")),
		),
		Example:          paragraph("proverb\nproverb --plain\nproverb --speak both"),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

// validateStyle checks if the style is a default style, if not, checks that
// the custom style exists.
func validateStyle(style string) error {
	if !utils.IsStandardStyle(style) {
		style = utils.ExpandPath(style)
		if _, err := os.Stat(style); errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("specified style does not exist: %s", style)
		} else if err != nil {
			return fmt.Errorf("unable to stat file: %w", err)
		}
	}
	return nil
}

func validateOptions(cmd *cobra.Command) error {
	if cmd.Flags().Changed("config") {
		viper.SetConfigFile(utils.ExpandPath(configFile))
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("unable to read config file: %w", err)
		}
	}

	// grab config values from Viper
	width = viper.GetUint("width")
	plain = viper.GetBool("plain")
	debug = viper.GetBool("debug")
	speak = viper.GetString("speak")

	if debug {
		log.SetLevel(log.DebugLevel)
	}

	if speak != "" {
		if _, err := speechTargets(&proverb.Proverb{}, speak, tts.DefaultConfig()); err != nil {
			return err
		}
		// Speaking from the command line implies plain output.
		plain = true
	}

	// validate the glamour style
	style = viper.GetString("style")
	if err := validateStyle(style); err != nil {
		return err
	}

	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	// We want to use a special no-TTY style, when stdout is not a terminal
	// and there was no specific style passed by arg
	if !isTerminal {
		plain = true
		if !cmd.Flags().Changed("style") {
			style = styles.NoTTYStyle
		}
	}

	// Detect terminal width
	if !cmd.Flags().Changed("width") { //nolint:nestif
		if isTerminal && width == 0 {
			w, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err == nil {
				width = uint(w) //nolint:gosec
			}

			if width > 120 {
				width = 120
			}
		}
		if width == 0 {
			width = 80
		}
	}
	return nil
}

func newProverbClient() (*proverb.Client, error) {
	client, err := proverb.NewClient(proverb.Config{
		Endpoint:  viper.GetString("api.endpoint"),
		Timeout:   viper.GetDuration("api.timeout"),
		UserAgent: "proverb/" + Version,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid api configuration: %w", err)
	}
	return client, nil
}

// newSpeaker builds the speaker for cfg. Missing speech support is not an
// error: the speaker then only reports warnings.
func newSpeaker(cfg tts.Config) *tts.Speaker {
	platform, err := engines.NewPlatform(cfg)
	if err != nil {
		log.Warn("speech unavailable", "engine", cfg.Engine, "error", err)
	}
	return tts.NewSpeaker(platform, tts.WithLocales(cfg.SourceLocale, cfg.TranslationLocale))
}

func execute(cmd *cobra.Command, _ []string) error {
	client, err := newProverbClient()
	if err != nil {
		return err
	}

	speechCfg, err := tts.LoadConfigFromViper()
	if err != nil {
		return err
	}

	if plain {
		var speaker *tts.Speaker
		if speak != "" {
			speaker = newSpeaker(speechCfg)
		}
		return executePlain(cmd.Context(), client, speaker, speechCfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	return runTUI(client, newSpeaker(speechCfg), speechCfg)
}

func runTUI(client *proverb.Client, speaker *tts.Speaker, speechCfg tts.Config) error {
	// Read environment to get debugging stuff
	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %v", err)
	}

	// use style set in env, or the configured style if unset
	if cfg.GlamourStyle == "" || validateStyle(cfg.GlamourStyle) != nil {
		cfg.GlamourStyle = style
	}

	cfg.GlamourMaxWidth = width
	cfg.SourceLocale = speechCfg.SourceLocale
	cfg.TranslationLocale = speechCfg.TranslationLocale

	p := ui.NewProgram(cfg, client, speaker)
	watchConfig(p)

	// Run Bubble Tea program
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}

	return nil
}

// watchConfig forwards config file changes to the running program.
func watchConfig(p *tea.Program) {
	if viper.ConfigFileUsed() == "" {
		return
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Info("configuration file changed", "file", e.Name, "op", e.Op)

		speechCfg, err := tts.LoadConfigFromViper()
		if err != nil {
			log.Warn("ignoring invalid configuration", "error", err)
			return
		}
		client, err := newProverbClient()
		if err != nil {
			log.Warn("ignoring invalid configuration", "error", err)
			return
		}

		p.Send(ui.ReloadMsg{
			SourceLocale:      speechCfg.SourceLocale,
			TranslationLocale: speechCfg.TranslationLocale,
			Fetcher:           client,
		})
	})
	viper.WatchConfig()
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug output to the log file")
	rootCmd.Flags().BoolVarP(&plain, "plain", "p", false, "print a proverb and exit instead of starting the TUI")
	rootCmd.Flags().StringVar(&speak, "speak", "", "speak the proverb (source, translation or both); implies --plain")
	rootCmd.Flags().StringVarP(&style, "style", "s", styles.AutoStyle, "style name or JSON path")
	rootCmd.Flags().UintVarP(&width, "width", "w", 0, "word-wrap at width (set to 0 to detect)")

	// Config bindings
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("plain", rootCmd.Flags().Lookup("plain"))
	_ = viper.BindPFlag("speak", rootCmd.Flags().Lookup("speak"))
	_ = viper.BindPFlag("style", rootCmd.Flags().Lookup("style"))
	_ = viper.BindPFlag("width", rootCmd.Flags().Lookup("width"))

	viper.SetDefault("style", styles.AutoStyle)
	viper.SetDefault("width", 0)
	viper.SetDefault("api.endpoint", proverb.DefaultEndpoint)
	viper.SetDefault("api.timeout", proverb.DefaultTimeout)
	viper.SetDefault("log.max_size", defaultLogMaxSize)
	viper.SetDefault("log.max_backups", defaultLogMaxBackups)
	tts.SetViperDefaults()

	rootCmd.AddCommand(configCmd, manCmd, voicesCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "proverb")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not load find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "proverb")}, dirs...)
	}

	if c := os.Getenv("PROVERB_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("proverb")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("proverb")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	configFile = filepath.Join(dirs[0], "proverb.yml")
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
		return
	}

	// Read the new file so that `config` and the config watcher find it.
	viper.SetConfigFile(configFile)
	if err := viper.ReadInConfig(); err != nil {
		log.Warn("Could not parse configuration file", "err", err)
	}
}
