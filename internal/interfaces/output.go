package interfaces

import "wpswizard-cli/internal/namelist"

// OutputHandler dispatches a finalized namelist to its destination.
type OutputHandler interface {
	// WriteToFile writes the rendered namelist to path atomically
	WriteToFile(doc *namelist.Document, path string) error

	// WriteToStdout prints the rendered namelist
	WriteToStdout(doc *namelist.Document) error

	// WriteToClipboard copies the rendered namelist to the system clipboard
	WriteToClipboard(doc *namelist.Document) error
}
