package interfaces

import "wpswizard-cli/internal/schema"

// Prompter yields validated field values from an interactive source. The
// session logic depends on this interface so tests can drive a full run
// from scripted input instead of a terminal.
type Prompter interface {
	// Ask collects one validated value for a field, offering a default
	Ask(field schema.Field, def string) (string, error)

	// AskLabeled is Ask with the prompt text replaced
	AskLabeled(label string, field schema.Field, def string) (string, error)

	// AskInt collects an integer-kinded field as an int
	AskInt(field schema.Field, def int) (int, error)

	// AskLabeledInt is AskLabeled for integer-kinded fields
	AskLabeledInt(label string, field schema.Field, def int) (int, error)

	// Confirm asks a yes/no question with a default
	Confirm(message string, def bool) (bool, error)

	// Say writes a line of plain output
	Say(format string, args ...interface{})
}
