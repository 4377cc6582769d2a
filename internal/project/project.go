// Package project resolves which tracked project a repository path
// belongs to.
package project

import (
	"path/filepath"
	"strings"

	"github.com/bashhack/captainslog/internal/config"
)

// Info describes a resolved project. LogRepo is empty when the project
// has no dedicated log repository.
type Info struct {
	Name    string
	Root    string
	LogRepo string
}

// Find resolves a repository path to a project. Configured projects win
// when their root is the path itself or one of its ancestors; otherwise
// the repository directory name becomes the project name with no
// per-project log repository.
func Find(repoPath string, cfg *config.Config) Info {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		abs = repoPath
	}
	abs = filepath.Clean(abs)

	// The most specific (deepest) configured root wins, with the name as
	// a tie-breaker so resolution is deterministic across runs.
	var best *Info
	var bestRoot string
	for name, pc := range cfg.Projects {
		if pc.Root == "" {
			continue
		}
		root, err := filepath.Abs(pc.Root)
		if err != nil {
			continue
		}
		root = filepath.Clean(root)
		if abs != root && !isAncestor(root, abs) {
			continue
		}
		if best == nil || len(root) > len(bestRoot) || (len(root) == len(bestRoot) && name < best.Name) {
			best = &Info{Name: name, Root: root, LogRepo: pc.LogRepo}
			bestRoot = root
		}
	}
	if best != nil {
		return *best
	}

	return Info{Name: filepath.Base(abs), Root: abs}
}

// isAncestor reports whether dir is a strict ancestor of path.
func isAncestor(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
