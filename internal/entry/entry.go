// Package entry defines the log entry line format and the merge rules
// that keep a section's entries free of duplicates across repeated hook
// invocations and amended commits.
package entry

import (
	"fmt"
	"strings"
)

// shortShaLen is the length commit shas are truncated to when rendered.
const shortShaLen = 7

// ShortSha truncates a sha to its first seven characters. Shorter shas
// are returned unchanged, never padded.
func ShortSha(sha string) string {
	if len(sha) > shortShaLen {
		return sha[:shortShaLen]
	}
	return sha
}

// FormatCommit renders a commit-linked entry line: "- (<sha>) <message>".
// The sha is truncated to seven characters. The message is written as-is;
// callers are responsible for keeping it to a single line.
func FormatCommit(sha, message string) string {
	return fmt.Sprintf("- (%s) %s", ShortSha(sha), message)
}

// FormatManual renders a manual entry line: "- <text>".
func FormatManual(text string) string {
	return fmt.Sprintf("- %s", text)
}

// ParseCommit extracts the sha and message from a commit-linked entry
// line. The line must have the exact shape "- (<sha>) <message>" with no
// ")" inside the sha. Returns ok=false for anything else, including
// manual entries. An empty message after "- (<sha>) " is valid.
func ParseCommit(line string) (sha, message string, ok bool) {
	const prefix = "- ("
	if !strings.HasPrefix(line, prefix) {
		return "", "", false
	}
	rest := line[len(prefix):]
	end := strings.Index(rest, ")")
	if end < 0 || end+1 >= len(rest) || rest[end+1] != ' ' {
		return "", "", false
	}
	return rest[:end], rest[end+2:], true
}

// UpdateCommitEntries merges a commit into an existing entry list.
//
// The commit message is the dedup key: shas change under amend/rebase
// while the logged intent stays constant. A line whose message matches
// but whose sha differs is superseded and removed. If the exact line is
// already present the input is returned unchanged. Otherwise the new
// entry is appended after any stale lines are dropped. Lines that are
// not commit entries are never touched.
func UpdateCommitEntries(entries []string, newSha, newMessage string) []string {
	short := ShortSha(newSha)

	stale := make(map[int]bool)
	for i, line := range entries {
		sha, msg, ok := ParseCommit(line)
		if !ok {
			continue
		}
		if msg == newMessage && sha != short {
			stale[i] = true
		}
		if sha == short && msg == newMessage {
			// Exact entry already recorded.
			return entries
		}
	}

	updated := make([]string, 0, len(entries)+1)
	for i, line := range entries {
		if stale[i] {
			continue
		}
		updated = append(updated, line)
	}
	return append(updated, FormatCommit(newSha, newMessage))
}

// AddManualEntry appends a manual entry unless the exact rendered line
// is already present, making repeated invocations idempotent. The
// comparison is against every existing line, not just manual ones.
func AddManualEntry(entries []string, text string) []string {
	line := FormatManual(text)
	for _, existing := range entries {
		if existing == line {
			return entries
		}
	}
	updated := make([]string, 0, len(entries)+1)
	updated = append(updated, entries...)
	return append(updated, line)
}
