package namelist

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Render serializes the document in WPS namelist form: each section as
// "&name", one " key = v1, v2," line per key, closed by "/". Numeric values
// are written bare and everything else single-quoted, so parsing a rendered
// document and rendering it again is byte-stable.
func Render(doc *Document) string {
	var b strings.Builder

	sections := doc.Sections()
	for i, sec := range sections {
		b.WriteString("&")
		b.WriteString(sec.Name())
		b.WriteString("\n")

		for _, key := range sec.Keys() {
			values, _ := sec.Get(key)
			formatted := make([]string, len(values))
			for j, v := range values {
				formatted[j] = formatValue(v)
			}
			fmt.Fprintf(&b, " %s = %s,\n", key, strings.Join(formatted, ", "))
		}

		b.WriteString("/\n")
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// WriteFile renders the document and writes it to path. The content goes to
// a temporary file in the target directory first and is renamed into place,
// so a failure mid-write never leaves a truncated file behind.
func WriteFile(doc *Document, path string) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".namelist-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(Render(doc)); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

// formatValue quotes non-numeric values for namelist output.
func formatValue(v string) string {
	if isNumeric(v) {
		return v
	}
	return "'" + v + "'"
}

func isNumeric(v string) bool {
	if v == "" {
		return false
	}
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}
