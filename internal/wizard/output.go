package wizard

import (
	"fmt"

	"github.com/atotto/clipboard"
	"wpswizard-cli/internal/interfaces"
	"wpswizard-cli/internal/namelist"
)

// OutputHandler implements the OutputHandler interface
type OutputHandler struct{}

// NewOutputHandler creates a new output handler
func NewOutputHandler() interfaces.OutputHandler {
	return &OutputHandler{}
}

// WriteToFile writes the rendered namelist to path atomically
func (h *OutputHandler) WriteToFile(doc *namelist.Document, path string) error {
	return namelist.WriteFile(doc, path)
}

// WriteToStdout prints the rendered namelist
func (h *OutputHandler) WriteToStdout(doc *namelist.Document) error {
	_, err := fmt.Print(namelist.Render(doc))
	return err
}

// WriteToClipboard copies the rendered namelist to the system clipboard
func (h *OutputHandler) WriteToClipboard(doc *namelist.Document) error {
	return clipboard.WriteAll(namelist.Render(doc))
}
