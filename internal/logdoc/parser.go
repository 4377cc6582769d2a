package logdoc

import (
	"os"
	"strings"

	"github.com/bashhack/captainslog/internal/logger"
)

// Parse converts raw markdown text into a Document.
//
// Only two constructs carry structure: "## <name>" opens a section and
// "- ..." lines belong to the open section. The fixed header and footer
// are not preserved; the writer regenerates them. Entries following the
// "What Broke or Got Weird" heading are collected into the flat broke
// list. Everything else (blank lines, prose) is ignored.
func Parse(content string) *Document {
	doc := NewDocument()

	current := ""
	inBroke := false

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)

		switch {
		case line == "##", strings.HasPrefix(line, "## "):
			inBroke = false
			name := strings.TrimSpace(strings.TrimPrefix(line, "##"))
			if name == "" {
				// Invalid header: no section opens until the next valid one.
				current = ""
				continue
			}
			current = name
			doc.SetEntries(name, []string{})

		case strings.HasPrefix(line, "# "):
			// A level-1 heading ends any open section. The broke list
			// follows its own heading at the bottom of the file.
			current = ""
			inBroke = strings.TrimSpace(line[2:]) == brokeHeading

		case strings.HasPrefix(line, "- "):
			if inBroke {
				doc.broke = append(doc.broke, line)
			} else if current != "" {
				doc.AddEntry(current, line)
			}
		}
	}

	return doc
}

// ParseFile reads and parses a log file. A missing or unreadable file
// yields an empty Document with a warning; parsing never fails past
// this boundary.
func ParseFile(path string, log logger.Logger) *Document {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warning("Could not read log file %s: %v", path, err)
		}
		return NewDocument()
	}
	return Parse(string(data))
}
