package gitops

import "strings"

// StatusKind classifies one line of `git status --porcelain` output.
type StatusKind int

const (
	// StatusModified covers content changes to tracked files.
	StatusModified StatusKind = iota
	// StatusAdded covers files newly staged or added.
	StatusAdded
	// StatusDeleted covers removed files.
	StatusDeleted
	// StatusRenamed covers renames; both old and new paths are carried.
	StatusRenamed
	// StatusUntracked covers files and directories git does not track yet.
	StatusUntracked
	// StatusOther covers any code this parser does not classify further
	// (copies, unmerged paths). Selection only cares about the paths.
	StatusOther
)

// StatusEntry is the structured form of one porcelain status line.
// OldPath is set only for renames.
type StatusEntry struct {
	Kind    StatusKind
	Path    string
	OldPath string
}

// ParseStatus parses `git status --porcelain` output into structured
// entries. Parsing by field rather than fixed character slicing keeps
// the selection logic independent of minor format drift. Unparseable
// lines are skipped.
func ParseStatus(output string) []StatusEntry {
	var entries []StatusEntry

	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		// Porcelain format: two status characters, a space, then the path.
		if len(line) < 4 {
			continue
		}
		code := line[:2]
		rest := strings.TrimSpace(line[3:])
		if rest == "" {
			continue
		}

		entry := StatusEntry{Kind: classify(code), Path: rest}
		if entry.Kind == StatusRenamed {
			if old, renamed, ok := strings.Cut(rest, " -> "); ok {
				entry.OldPath = old
				entry.Path = renamed
			}
		}
		entries = append(entries, entry)
	}

	return entries
}

func classify(code string) StatusKind {
	switch {
	case code == "??":
		return StatusUntracked
	case strings.ContainsRune(code, 'R'):
		return StatusRenamed
	case strings.ContainsRune(code, 'A'):
		return StatusAdded
	case strings.ContainsRune(code, 'D'):
		return StatusDeleted
	case strings.ContainsRune(code, 'M'):
		return StatusModified
	default:
		return StatusOther
	}
}
