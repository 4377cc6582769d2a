package logdoc

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bashhack/captainslog/internal/errors"
	"github.com/bashhack/captainslog/internal/logger"
)

// Fixed document frame. Every log file starts with Header and ends with
// Footer; the parser never derives these from input.
const (
	Header = "# What I did\n\n"
	Footer = "# Whats next\n\n\n# What Broke or Got Weird\n"
)

// brokeHeading is the level-1 heading that introduces the flat broke
// list inside Footer.
const brokeHeading = "What Broke or Got Weird"

// OtherSection is the reserved section name for manual entries. It
// renders after all other sections when requested.
const OtherSection = "other"

// Writer renders Documents to disk in the canonical markdown format.
type Writer struct {
	log logger.Logger
}

// NewWriter creates a Writer that reports recoverable conditions
// through the given logger.
func NewWriter(log logger.Logger) *Writer {
	return &Writer{log: log}
}

// WriteFile renders the document and atomically replaces the file at
// path, creating parent directories as needed. When otherAtEnd is true
// the "other" section renders after all alphabetically ordered
// sections. A write failure is fatal for the invocation; everything
// else is recovered.
func (w *Writer) WriteFile(path string, doc *Document, otherAtEnd bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewWriteError(path, errors.Wrap(errors.ErrLogWriteFailed, err.Error()))
	}

	// Bootstrap an empty frame first so a recognizable structure exists
	// even before any entries land.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := w.atomicWrite(path, Header+"\n\n"+Footer); err != nil {
			return err
		}
	} else if existing, readErr := os.ReadFile(path); readErr == nil {
		// The unconditional rewrite below is what resets a corrupted
		// frame; this read exists only to warn when that happens.
		if !strings.Contains(string(existing), strings.TrimSpace(Header)) {
			w.log.Warning("Log file %s has no recognizable structure, resetting it", path)
		}
	}

	return w.atomicWrite(path, Render(doc, otherAtEnd))
}

// Render produces the canonical on-disk representation of a document.
func Render(doc *Document, otherAtEnd bool) string {
	var blocks []string
	for _, name := range sectionOrder(doc, otherAtEnd) {
		entries := doc.Entries(name)
		if len(entries) == 0 {
			continue
		}
		lines := make([]string, 0, len(entries)+2)
		lines = append(lines, "## "+name)
		lines = append(lines, entries...)
		lines = append(lines, "")
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	var b strings.Builder
	b.WriteString(Header)
	if len(blocks) > 0 {
		b.WriteString(strings.TrimSpace(strings.Join(blocks, "\n")))
		b.WriteString("\n\n")
	} else {
		b.WriteString("\n")
	}
	b.WriteString(Footer)
	for _, line := range doc.BrokeEntries() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// sectionOrder sorts section names case-insensitively, optionally
// moving the reserved "other" section to the end.
func sectionOrder(doc *Document, otherAtEnd bool) []string {
	names := doc.SectionNames()
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	if !otherAtEnd {
		return names
	}
	ordered := make([]string, 0, len(names))
	hasOther := false
	for _, name := range names {
		if name == OtherSection {
			hasOther = true
			continue
		}
		ordered = append(ordered, name)
	}
	if hasOther {
		ordered = append(ordered, OtherSection)
	}
	return ordered
}

// atomicWrite writes content to a sibling temporary file and renames it
// over the destination, so a crash mid-write never leaves a truncated log.
func (w *Writer) atomicWrite(path, content string) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return errors.NewWriteError(path, errors.Wrap(errors.ErrLogWriteFailed, err.Error()))
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.NewWriteError(path, errors.Wrap(errors.ErrLogWriteFailed, err.Error()))
	}
	return nil
}
