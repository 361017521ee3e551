package main

import (
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogMaxSize    = 5 // megabytes
	defaultLogMaxBackups = 3
)

func getLogFilePath() (string, error) {
	dir, err := gap.NewScope(gap.User, "proverb").CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "proverb.log"), nil
}

// setupLog sends all logging to a rotating file in the user cache dir, so
// nothing is written over the TUI.
func setupLog() (func() error, error) {
	log.SetOutput(io.Discard)

	logFile, err := getLogFilePath()
	if err != nil {
		return nil, err
	}

	w := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    viper.GetInt("log.max_size"),
		MaxBackups: viper.GetInt("log.max_backups"),
	}
	log.SetOutput(w)
	log.SetReportTimestamp(true)
	log.SetLevel(log.InfoLevel)
	return w.Close, nil
}
