package gitops

import (
	"io/fs"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bashhack/captainslog/internal/errors"
	"github.com/bashhack/captainslog/internal/logger"
)

// Staging batches stay well under typical command-line length limits.
const (
	maxBatchArgsLength = 100000
	batchSize          = 100
)

// GitOps performs git operations against a log repository. All commands
// run with an explicit `git -C <repo>` so the working directory of the
// hook process never matters.
type GitOps struct {
	repoPath string
	executor CommandExecutor
	log      logger.Logger
}

// New creates a GitOps instance with the default executor.
func New(repoPath string, log logger.Logger) *GitOps {
	return NewWithExecutor(repoPath, log, NewExecExecutor())
}

// NewWithExecutor creates a GitOps instance with a custom executor.
func NewWithExecutor(repoPath string, log logger.Logger, executor CommandExecutor) *GitOps {
	return &GitOps{
		repoPath: repoPath,
		executor: executor,
		log:      log,
	}
}

// IsRepository checks if the given path is a git repository
func IsRepository(path string) bool {
	cmd := exec.Command("git", "-C", path, "rev-parse", "--is-inside-work-tree")
	executor := NewExecExecutor()
	return executor.Execute(cmd) == nil
}

// RepoPath returns the repository path this instance operates on.
func (g *GitOps) RepoPath() string {
	return g.repoPath
}

// HasChanges returns true if the repository contains changes that have
// not been committed yet.
func (g *GitOps) HasChanges() (bool, error) {
	output, err := g.runGitWithOutput("status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(output) != "", nil
}

// HasLockMarkers reports whether git metadata lock files are present,
// signalling another git operation in flight. The check is advisory:
// a worktree-style .git file cannot be inspected and reads as unlocked.
func (g *GitOps) HasLockMarkers() bool {
	markers, err := filepath.Glob(filepath.Join(g.repoPath, ".git", "*.lock"))
	if err != nil {
		return false
	}
	return len(markers) > 0
}

// AddAllMarkdown stages every changed path that is a markdown file or a
// directory containing markdown files, and nothing else. This is the
// safety boundary that keeps stray repository content out of log
// commits: a path that fails the markdown rule is never passed to
// `git add`, no matter what the status output contains.
func (g *GitOps) AddAllMarkdown() error {
	output, err := g.runGitWithOutput("status", "--porcelain")
	if err != nil {
		return err
	}
	if strings.TrimSpace(output) == "" {
		return nil
	}

	paths := g.selectMarkdownPaths(ParseStatus(output))
	if len(paths) == 0 {
		return nil
	}

	return g.addInBatches(paths)
}

// selectMarkdownPaths applies the markdown selection rule to parsed
// status entries and returns a sorted, de-duplicated list of paths to
// stage. Ancestor directories of selected files are included so newly
// created nested paths are picked up.
func (g *GitOps) selectMarkdownPaths(entries []StatusEntry) []string {
	selected := make(map[string]struct{})

	addFile := func(path string) {
		selected[path] = struct{}{}
		for _, dir := range g.ancestorDirs(path) {
			selected[dir] = struct{}{}
		}
	}

	for _, entry := range entries {
		if entry.Kind == StatusRenamed {
			// Old and new halves qualify independently; only markdown
			// paths are ever staged.
			if strings.HasSuffix(entry.OldPath, ".md") {
				addFile(entry.OldPath)
			}
			if strings.HasSuffix(entry.Path, ".md") {
				addFile(entry.Path)
			}
			continue
		}

		if strings.HasSuffix(entry.Path, ".md") {
			addFile(entry.Path)
			continue
		}

		// Untracked directories surface as a bare path; include them
		// only when they contain markdown somewhere below.
		if g.dirContainsMarkdown(entry.Path) {
			selected[entry.Path] = struct{}{}
		}
	}

	paths := make([]string, 0, len(selected))
	for path := range selected {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// ancestorDirs returns the directories between a repo-relative path and
// the repository root, exclusive.
func (g *GitOps) ancestorDirs(relPath string) []string {
	var dirs []string
	for dir := filepath.Dir(relPath); dir != "." && dir != string(filepath.Separator); dir = filepath.Dir(dir) {
		dirs = append(dirs, dir)
	}
	return dirs
}

// dirContainsMarkdown reports whether the repo-relative path is a
// directory holding at least one .md file, at any depth.
func (g *GitOps) dirContainsMarkdown(relPath string) bool {
	root := filepath.Join(g.repoPath, relPath)
	found := false
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

// addInBatches stages paths in chunks sized to stay under a
// conservative command-length ceiling, falling back to one invocation
// per path for oversized or single-path batches. A failed invocation
// aborts the call; earlier batches remain staged.
func (g *GitOps) addInBatches(paths []string) error {
	for start := 0; start < len(paths); start += batchSize {
		end := start + batchSize
		if end > len(paths) {
			end = len(paths)
		}
		batch := paths[start:end]

		argsLength := 100
		for _, path := range batch {
			argsLength += len(path) + 1
		}

		if argsLength > maxBatchArgsLength || len(batch) == 1 {
			for _, path := range batch {
				if err := g.runGit("add", path); err != nil {
					return err
				}
			}
			continue
		}

		if err := g.runGit(append([]string{"add"}, batch...)...); err != nil {
			return err
		}
	}
	return nil
}

// Commit creates a commit with the given message.
func (g *GitOps) Commit(message string) error {
	return g.runGit("commit", "-m", message)
}

// Push pushes pending commits to the remote. A failure is reported, not
// retried.
func (g *GitOps) Push() error {
	return g.runGit("push")
}

// CommitAndPush runs the full stage-commit-push workflow for the log
// repository. The result is binary: any step failing fails the call,
// and partial progress (staged or committed but not pushed) is left in
// place for the next run to pick up. A held git lock aborts immediately
// without waiting.
func (g *GitOps) CommitAndPush(message string) error {
	if g.HasLockMarkers() {
		return errors.Wrapf(errors.ErrGitLocked, "lock marker present in %s", g.repoPath)
	}

	hasChanges, err := g.HasChanges()
	if err != nil {
		return errors.Wrap(err, "failed to check log repository status")
	}
	if !hasChanges {
		g.log.Info("No changes in log repository %s, nothing to commit", g.repoPath)
		return nil
	}

	if err := g.AddAllMarkdown(); err != nil {
		return errors.Wrap(err, "failed to stage log files")
	}
	if err := g.Commit(message); err != nil {
		return errors.Wrap(err, "failed to commit log update")
	}
	if err := g.Push(); err != nil {
		return errors.Wrap(err, "failed to push log update")
	}

	g.log.Info("Committed and pushed log update to %s", g.repoPath)
	return nil
}

// runGit executes a git command in the repository directory.
func (g *GitOps) runGit(args ...string) error {
	baseArgs := []string{"-C", g.repoPath}
	cmd := exec.Command("git", append(baseArgs, args...)...)
	return g.executor.Execute(cmd)
}

// runGitWithOutput executes a git command and returns its output.
func (g *GitOps) runGitWithOutput(args ...string) (string, error) {
	baseArgs := []string{"-C", g.repoPath}
	cmd := exec.Command("git", append(baseArgs, args...)...)
	return g.executor.ExecuteWithOutput(cmd)
}
