// Package clipboard copies rendered output to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// SystemClipboard implements Copier using github.com/atotto/clipboard.
type SystemClipboard struct{}

// NewSystemClipboard constructs the platform clipboard implementation.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{}
}

// Copy writes text to the system clipboard.
func (systemClipboard *SystemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

var _ Copier = (*SystemClipboard)(nil)
