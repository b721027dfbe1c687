package namelist

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Parse reads a namelist from r. Sections open with "&name" and close with
// "/"; entries are "key = value" or "key = v1, v2, v3" lines. Blank lines,
// "!" comments, malformed lines, and entries outside a recognized section are
// skipped rather than reported.
func Parse(r io.Reader) *Document {
	doc := NewDocument()
	var current *Section

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}

		if strings.HasPrefix(line, "&") {
			name := strings.ToLower(strings.TrimSpace(line[1:]))
			if name == "" {
				current = nil
				continue
			}
			current = doc.Section(name)
			continue
		}

		if strings.HasPrefix(line, "/") {
			current = nil
			continue
		}

		if current == nil {
			continue
		}

		key, values, ok := parseEntry(line)
		if !ok {
			continue
		}
		current.Set(key, values...)
	}

	return doc
}

// ParseFile parses the namelist at path. A missing file is not an error; it
// yields an empty document so callers fall back to built-in defaults.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDocument(), nil
		}
		return nil, err
	}
	defer f.Close()

	return Parse(f), nil
}

// parseEntry splits a "key = value[, value...]" line into its key and
// unquoted value tokens.
func parseEntry(line string) (string, []string, bool) {
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return "", nil, false
	}

	key := strings.TrimSpace(parts[0])
	if key == "" {
		return "", nil, false
	}

	raw := strings.TrimSpace(parts[1])
	raw = strings.TrimSuffix(raw, ",")

	var values []string
	for _, tok := range strings.Split(raw, ",") {
		values = append(values, unquote(strings.TrimSpace(tok)))
	}

	return key, values, true
}

// unquote strips a single level of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
