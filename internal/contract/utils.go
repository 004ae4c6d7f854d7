package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/rankcast/schema"
)

// Rating label constants.
const (
	ExcellentValue = "Excellent"
	StrongValue    = "Strong"
	AverageValue   = "Average"
	WeakValue      = "Weak"
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // ExcellentColor represents a clearly positive signal.
	StrongColor    = color.New(color.FgCyan)              // StrongColor represents a healthy signal.
	AverageColor   = color.New(color.FgYellow)            // AverageColor represents standard caution, not bold.
	WeakColor      = color.New(color.FgRed, color.Bold)   // WeakColor represents standard danger.
)

// GetPlainLabel returns a plain text label for a 0-100 score. This is the core
// logic used for CSV, JSON, and table printing.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 80:
		return ExcellentValue
	case score >= 60:
		return StrongValue
	case score >= 40:
		return AverageValue
	default:
		return WeakValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(score float64) string {
	text := GetPlainLabel(score)

	switch text {
	case ExcellentValue:
		return ExcellentColor.Sprint(text)
	case StrongValue:
		return StrongColor.Sprint(text)
	case AverageValue:
		return AverageColor.Sprint(text)
	default:
		return WeakColor.Sprint(text)
	}
}

// GetChangeLabel returns the plain label of a predicted rank change.
func GetChangeLabel(change int) string {
	switch {
	case change > 0:
		return "Promotion"
	case change < 0:
		return "Demotion"
	default:
		return "Stable"
	}
}

// GetColorChangeLabel returns the colored label of a predicted rank change.
func GetColorChangeLabel(change int) string {
	text := GetChangeLabel(change)
	switch {
	case change > 0:
		return ExcellentColor.Sprint(text)
	case change < 0:
		return WeakColor.Sprint(text)
	default:
		return AverageColor.Sprint(text)
	}
}

// GetColorPriority returns a colored priority for console output.
func GetColorPriority(p schema.Priority) string {
	switch p {
	case schema.HighPriority:
		return WeakColor.Sprint(string(p))
	case schema.MediumPriority:
		return AverageColor.Sprint(string(p))
	default:
		return StrongColor.Sprint(string(p))
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".rankcast_history.db"
	}
	return filepath.Join(homeDir, ".rankcast_history.db")
}

// TruncateName truncates a name to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and one character.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
