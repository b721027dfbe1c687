// Package wizard drives the interactive namelist.wps session: seeding
// defaults from an existing file, collecting each section through the
// prompt engine, reviewing, and writing the result.
package wizard

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"wpswizard-cli/internal/interfaces"
	"wpswizard-cli/internal/namelist"
	"wpswizard-cli/internal/schema"
	"wpswizard-cli/pkg/models"
)

// Session coordinates one wizard run.
type Session struct {
	prompter interfaces.Prompter
	output   interfaces.OutputHandler
	cfg      *interfaces.Config
	now      time.Time
}

// NewSession creates a session over a prompter and resolved tool settings.
func NewSession(prompter interfaces.Prompter, cfg *interfaces.Config) *Session {
	return &Session{
		prompter: prompter,
		output:   NewOutputHandler(),
		cfg:      cfg,
		now:      time.Now(),
	}
}

// SetOutputHandler replaces the output handler, for tests.
func (s *Session) SetOutputHandler(h interfaces.OutputHandler) {
	s.output = h
}

// SetClock pins the time used for date defaults, for tests.
func (s *Session) SetClock(now time.Time) {
	s.now = now
}

// Run executes the full session. A nil return covers both a successful
// write and a user abort at review; ErrQuit propagates from any prompt.
func (s *Session) Run(req *models.SessionRequest) error {
	s.prompter.Say("WPS Namelist Interactive Configuration Tool")
	s.prompter.Say("===========================================")
	s.prompter.Say("This tool will help you configure your namelist.wps file for WRF.")
	s.prompter.Say("Press Enter to accept default values shown in [brackets].")
	s.prompter.Say("Type '%s' at any prompt to quit.", s.cfg.QuitWord)
	s.prompter.Say("")

	existingPath := req.ExistingPath
	if existingPath == "" {
		existingPath = s.cfg.ExistingFile
	}
	seed, err := s.loadSeed(existingPath)
	if err != nil {
		return err
	}

	share, maxDom, err := s.collectShare(seed)
	if err != nil {
		return err
	}

	geogrid, err := s.collectGeogrid(seed, maxDom)
	if err != nil {
		return err
	}

	ungrib, err := s.collectUngrib(seed)
	if err != nil {
		return err
	}

	metgrid, err := s.collectMetgrid(seed)
	if err != nil {
		return err
	}

	doc := namelist.NewDocument()
	doc.Append(share)
	doc.Append(geogrid)
	doc.Append(ungrib)
	doc.Append(metgrid)

	confirmed, err := s.review(doc, maxDom)
	if err != nil {
		return err
	}
	if !confirmed {
		s.prompter.Say("")
		s.prompter.Say("Configuration canceled. Exiting without writing file.")
		return nil
	}

	return s.emit(doc, req)
}

// loadSeed offers an existing namelist as the source of defaults. Anything
// short of the user accepting a parsed file yields an empty seed; parse
// problems are reported but never fatal.
func (s *Session) loadSeed(path string) (*namelist.Document, error) {
	empty := namelist.NewDocument()
	if path == "" {
		return empty, nil
	}

	if _, err := os.Stat(path); err != nil {
		return empty, nil
	}

	doc, err := namelist.ParseFile(path)
	if err != nil || doc.Len() == 0 {
		s.prompter.Say("Could not read %s for defaults; using built-in defaults instead.", path)
		return empty, nil
	}

	use, err := s.prompter.Confirm(
		fmt.Sprintf("An existing namelist was found at %s. Use it for defaults?", path), true)
	if err != nil {
		return nil, err
	}
	if !use {
		return empty, nil
	}

	s.prompter.Say("Using %s for defaults.", path)
	return doc, nil
}

// emit resolves the output target and dispatches the finalized document.
func (s *Session) emit(doc *namelist.Document, req *models.SessionRequest) error {
	target := s.cfg.Target
	if req.ToStdout {
		target = "stdout"
	}

	switch target {
	case "stdout":
		if err := s.output.WriteToStdout(doc); err != nil {
			return NewWriteError("stdout", err)
		}

	case "clipboard":
		if err := s.output.WriteToClipboard(doc); err != nil {
			return NewWriteError("clipboard", err)
		}
		s.prompter.Say("")
		s.prompter.Say("Configuration complete! The namelist has been copied to the clipboard.")
		return nil

	default:
		def := req.OutputPath
		if def == "" {
			def = s.cfg.OutputFile
		}
		outField := schema.Field{Key: "output_file", Prompt: "Output filename", Kind: schema.Text}
		path, err := s.prompter.Ask(outField, def)
		if err != nil {
			return err
		}

		if err := s.output.WriteToFile(doc, path); err != nil {
			return NewWriteError(path, err)
		}

		s.prompter.Say("")
		s.prompter.Say("Configuration complete! The namelist has been written to %s", path)

		if req.ToClipboard {
			if err := s.output.WriteToClipboard(doc); err != nil {
				s.prompter.Say("Note: could not copy the namelist to the clipboard: %v", err)
			} else {
				s.prompter.Say("The namelist was also copied to the clipboard.")
			}
		}
	}

	return nil
}

// seedAt returns the seeded value for a key at the given domain index.
func seedAt(seed *namelist.Document, section, key string, i int) (string, bool) {
	sec, ok := seed.Lookup(section)
	if !ok {
		return "", false
	}
	vals, ok := sec.Get(key)
	if !ok || i >= len(vals) || vals[i] == "" {
		return "", false
	}
	return vals[i], true
}

// seedOr returns the seeded value for a field when it satisfies the field's
// constraints, or the fallback. Seed files are untrusted input: empty input
// at a prompt accepts the displayed default verbatim, so a seeded value that
// fails validation must never be offered as one.
func seedOr(seed *namelist.Document, section string, field schema.Field, fallback string) string {
	return seedOrAt(seed, section, field, 0, fallback)
}

// seedOrAt is seedOr at a domain index.
func seedOrAt(seed *namelist.Document, section string, field schema.Field, i int, fallback string) string {
	raw, ok := seedAt(seed, section, field.Key, i)
	if !ok {
		return fallback
	}
	value, err := field.Validate(raw)
	if err != nil {
		return fallback
	}
	return value
}

// seedAtInt is seedOrAt for integer-kinded fields.
func seedAtInt(seed *namelist.Document, section string, field schema.Field, i, fallback int) int {
	v := seedOrAt(seed, section, field, i, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func itoas(values []int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Itoa(v)
	}
	return out
}
