package logdoc

// Document is the in-memory form of a daily log file: a mapping from
// section name (one per source repository, plus the reserved "other"
// category) to its ordered entry lines, and a flat list of entries for
// the "What Broke or Got Weird" block.
//
// Section names are case-preserving and never empty. Sections may hold
// zero entries transiently; the writer skips them.
type Document struct {
	sections map[string][]string
	broke    []string
}

// NewDocument creates an empty Document.
func NewDocument() *Document {
	return &Document{sections: make(map[string][]string)}
}

// Entries returns the entry lines for a section, or nil if the section
// does not exist.
func (d *Document) Entries(name string) []string {
	return d.sections[name]
}

// SetEntries replaces the entry lines for a section. Empty section
// names are ignored.
func (d *Document) SetEntries(name string, entries []string) {
	if name == "" {
		return
	}
	d.sections[name] = entries
}

// AddEntry appends a single entry line to a section, creating the
// section if needed. Empty section names are ignored.
func (d *Document) AddEntry(name, line string) {
	if name == "" {
		return
	}
	d.sections[name] = append(d.sections[name], line)
}

// HasSection reports whether a section exists, even with zero entries.
func (d *Document) HasSection(name string) bool {
	_, ok := d.sections[name]
	return ok
}

// SectionNames returns the names of all sections in unspecified order.
func (d *Document) SectionNames() []string {
	names := make([]string, 0, len(d.sections))
	for name := range d.sections {
		names = append(names, name)
	}
	return names
}

// BrokeEntries returns the entries of the "What Broke or Got Weird"
// list in insertion order.
func (d *Document) BrokeEntries() []string {
	return d.broke
}

// AddBrokeEntry appends a rendered entry line to the broke list unless
// the exact line is already present. Reports whether the line was added.
func (d *Document) AddBrokeEntry(line string) bool {
	for _, existing := range d.broke {
		if existing == line {
			return false
		}
	}
	d.broke = append(d.broke, line)
	return true
}
