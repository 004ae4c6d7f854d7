package outwriter

import (
	"os"

	"github.com/huangsam/rankcast/internal/contract"
	"golang.org/x/term"
)

// Bounds for the free-text column of a table.
const (
	minTextWidth = 15
	maxTextWidth = 70
)

// getMaxTableTextWidth calculates the maximum width of the free-text column
// (tips, recommendations) from the terminal width and the fixed columns.
func getMaxTableTextWidth(cfg *contract.Config, fixedWidth int) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for table borders, separators and padding
	available := termWidth - fixedWidth - 20
	if available < minTextWidth {
		return minTextWidth
	}
	if available > maxTextWidth {
		return maxTextWidth
	}
	return available
}
