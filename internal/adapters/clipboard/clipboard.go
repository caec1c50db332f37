// Package clipboard copies text through github.com/atotto/clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"shiguang/internal/ports"
)

// System writes to the OS clipboard.
type System struct{}

// Ensure System implements Clipboard
var _ ports.Clipboard = System{}

// New returns the OS clipboard.
func New() System {
	return System{}
}

// Copy places text on the clipboard.
func (System) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard not supported on this system")
	}
	return clipboard.WriteAll(text)
}
