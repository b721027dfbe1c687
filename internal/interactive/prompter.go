// Package interactive implements the line-based prompt engine: typed
// prompts with bracketed defaults, validation with unlimited retries, and a
// quit sentinel that aborts the whole session.
package interactive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/term"
	"wpswizard-cli/internal/schema"
)

// ErrQuit is returned when the user enters the quit sentinel at any prompt.
// It is a normal early-exit path, not a failure.
var ErrQuit = errors.New("configuration cancelled by user")

// DefaultQuitWord is the reserved input that aborts the session.
const DefaultQuitWord = "q"

// Prompter collects validated values over a line-oriented input source.
type Prompter struct {
	in       *bufio.Reader
	out      io.Writer
	quitWord string
	terminal bool
}

// New creates a prompter over an arbitrary reader and writer, as used by
// tests with scripted input. Terminal-only prompt styles are disabled.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:       bufio.NewReader(in),
		out:      out,
		quitWord: DefaultQuitWord,
	}
}

// NewTerminal creates a prompter on stdin/stdout. survey prompts are used
// for confirmations when stdin is a real terminal.
func NewTerminal() *Prompter {
	return &Prompter{
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		quitWord: DefaultQuitWord,
		terminal: term.IsTerminal(int(syscall.Stdin)),
	}
}

// SetQuitWord overrides the quit sentinel (from tool settings).
func (p *Prompter) SetQuitWord(word string) {
	if word != "" {
		p.quitWord = word
	}
}

// QuitWord returns the active quit sentinel.
func (p *Prompter) QuitWord() string {
	return p.quitWord
}

// Say writes a line of plain output.
func (p *Prompter) Say(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Ask prompts for one field value. The default is shown in brackets and
// accepted on empty input; the quit sentinel aborts with ErrQuit; anything
// else is validated against the field kind and re-prompted on failure.
func (p *Prompter) Ask(field schema.Field, def string) (string, error) {
	return p.ask(field.Prompt, def, field.Validate)
}

// AskLabeled behaves like Ask with the prompt text replaced, for per-domain
// fields whose label carries the domain number.
func (p *Prompter) AskLabeled(label string, field schema.Field, def string) (string, error) {
	return p.ask(label, def, field.Validate)
}

// AskInt prompts for an integer-kinded field and returns the parsed value.
func (p *Prompter) AskInt(field schema.Field, def int) (int, error) {
	value, err := p.Ask(field, strconv.Itoa(def))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

// AskLabeledInt is AskLabeled for integer-kinded fields.
func (p *Prompter) AskLabeledInt(label string, field schema.Field, def int) (int, error) {
	value, err := p.AskLabeled(label, field, strconv.Itoa(def))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

func (p *Prompter) ask(label, def string, validate func(string) (string, error)) (string, error) {
	for {
		if def != "" {
			fmt.Fprintf(p.out, "%s [%s]: ", label, def)
		} else {
			fmt.Fprintf(p.out, "%s: ", label)
		}

		input, err := p.readLine()
		if err != nil {
			// Input exhausted mid-session: abort rather than loop or
			// write a half-collected file.
			return "", ErrQuit
		}

		if input == "" {
			if def != "" {
				return def, nil
			}
			continue
		}

		if strings.EqualFold(input, p.quitWord) {
			return "", ErrQuit
		}

		value, verr := validate(input)
		if verr != nil {
			fmt.Fprintf(p.out, "Error: %v\n", verr)
			continue
		}
		return value, nil
	}
}

// Confirm asks a yes/no question. On a real terminal it uses a survey
// prompt; otherwise a y/n line prompt with the same default, so scripted
// input works without a TTY.
func (p *Prompter) Confirm(message string, def bool) (bool, error) {
	if p.terminal {
		prompt := &survey.Confirm{
			Message: message,
			Default: def,
		}
		var result bool
		if err := survey.AskOne(prompt, &result); err != nil {
			return false, err
		}
		return result, nil
	}

	defText := "y"
	if !def {
		defText = "n"
	}

	for {
		fmt.Fprintf(p.out, "%s (y/n) [%s]: ", message, defText)

		input, err := p.readLine()
		if err != nil {
			return def, nil
		}

		if input == "" {
			return def, nil
		}

		if strings.EqualFold(input, p.quitWord) {
			return false, ErrQuit
		}

		switch strings.ToLower(input) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Error: please answer y or n")
	}
}

// readLine reads one trimmed line. A final unterminated line is still
// delivered; only a fully drained source returns an error.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
