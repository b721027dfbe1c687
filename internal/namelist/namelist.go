// Package namelist models WPS namelist files as ordered sections of
// key/value entries and provides a line-oriented parser and serializer.
package namelist

// Document is an ordered collection of namelist sections.
type Document struct {
	sections []*Section
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Section returns the named section, creating it if it does not exist.
func (d *Document) Section(name string) *Section {
	if s, ok := d.Lookup(name); ok {
		return s
	}
	s := NewSection(name)
	d.sections = append(d.sections, s)
	return s
}

// Lookup returns the named section if present.
func (d *Document) Lookup(name string) (*Section, bool) {
	for _, s := range d.sections {
		if s.name == name {
			return s, true
		}
	}
	return nil, false
}

// Append adds a section to the end of the document. An existing section with
// the same name is replaced in place so section order stays stable.
func (d *Document) Append(s *Section) {
	for i, existing := range d.sections {
		if existing.name == s.name {
			d.sections[i] = s
			return
		}
	}
	d.sections = append(d.sections, s)
}

// Sections returns the sections in document order.
func (d *Document) Sections() []*Section {
	return d.sections
}

// Len returns the number of sections.
func (d *Document) Len() int {
	return len(d.sections)
}

// Section is a named group of namelist entries. Keys keep their insertion
// order; each key maps to one value per domain for multi-valued entries.
type Section struct {
	name   string
	keys   []string
	values map[string][]string
}

// NewSection creates an empty section with the given name.
func NewSection(name string) *Section {
	return &Section{
		name:   name,
		values: make(map[string][]string),
	}
}

// Name returns the section name.
func (s *Section) Name() string {
	return s.name
}

// Set stores the values for a key. The first Set for a key fixes its position
// in the output order; later calls overwrite the values only.
func (s *Section) Set(key string, values ...string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = values
}

// Get returns all values recorded for a key.
func (s *Section) Get(key string) ([]string, bool) {
	vals, ok := s.values[key]
	return vals, ok
}

// First returns the first value recorded for a key.
func (s *Section) First(key string) (string, bool) {
	vals, ok := s.values[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// Keys returns the key names in insertion order.
func (s *Section) Keys() []string {
	return s.keys
}

// Len returns the number of keys in the section.
func (s *Section) Len() int {
	return len(s.keys)
}
