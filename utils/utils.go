// Package utils provides utility functions.
package utils

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/mitchellh/go-homedir"
)

// ExpandPath expands tilde and all environment variables from the given path.
func ExpandPath(path string) string {
	s, err := homedir.Expand(path)
	if err == nil {
		return os.ExpandEnv(s)
	}
	return os.ExpandEnv(path)
}

// IsStandardStyle reports whether style names a built-in glamour style.
func IsStandardStyle(style string) bool {
	if style == styles.AutoStyle {
		return true
	}
	_, ok := styles.DefaultStyles[style]
	return ok
}

// GlamourStyle returns a glamour.TermRendererOption based on the given style:
// a built-in style name, "auto", or the path to a JSON style file.
func GlamourStyle(style string) glamour.TermRendererOption {
	if style == styles.AutoStyle {
		return glamour.WithAutoStyle()
	}
	if IsStandardStyle(style) {
		return glamour.WithStandardStyle(style)
	}
	return glamour.WithStylesFromJSONFile(ExpandPath(style))
}
