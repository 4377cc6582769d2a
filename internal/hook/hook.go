// Package hook installs the post-commit hook that feeds captainslog.
package hook

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bashhack/captainslog/internal/errors"
	"github.com/bashhack/captainslog/internal/gitops"
	"github.com/bashhack/captainslog/internal/logger"
)

// marker identifies a hook script written by this tool, so reinstalls
// overwrite our own hook without a prompt while foreign hooks are
// protected.
const marker = "captainslog post-commit hook"

const script = `#!/bin/sh
# ` + marker + `
# Records this commit in the daily log. Never blocks the commit.
captainslog commit || true
`

// Install writes the post-commit hook into the repository's hooks
// directory. An existing hook not written by captainslog is left alone
// unless force is set. Returns the path the hook was written to.
func Install(repoPath string, force bool, log logger.Logger) (string, error) {
	if !gitops.IsRepository(repoPath) {
		return "", errors.Wrapf(errors.ErrNotGitRepository, "%s is not a git repository", repoPath)
	}

	hooksDir, err := resolveHooksDir(repoPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return "", errors.Wrapf(errors.ErrLogWriteFailed, "failed to create hooks directory %s: %v", hooksDir, err)
	}

	hookPath := filepath.Join(hooksDir, "post-commit")
	if existing, readErr := os.ReadFile(hookPath); readErr == nil {
		if !strings.Contains(string(existing), marker) && !force {
			return "", errors.Errorf("a post-commit hook already exists at %s, use --force to overwrite", hookPath)
		}
		log.Info("Replacing existing post-commit hook at %s", hookPath)
	}

	if err := os.WriteFile(hookPath, []byte(script), 0755); err != nil {
		return "", errors.Wrapf(errors.ErrLogWriteFailed, "failed to write hook %s: %v", hookPath, err)
	}
	return hookPath, nil
}

// resolveHooksDir asks git for the hooks path so worktrees and custom
// core.hooksPath settings are honored.
func resolveHooksDir(repoPath string) (string, error) {
	cmd := exec.Command("git", "-C", repoPath, "rev-parse", "--git-path", "hooks")
	output, err := cmd.Output()
	if err != nil {
		return "", errors.Wrapf(errors.ErrGitOperationFailed, "failed to resolve hooks directory for %s: %v", repoPath, err)
	}

	hooksDir := strings.TrimSpace(string(output))
	if !filepath.IsAbs(hooksDir) {
		hooksDir = filepath.Join(repoPath, hooksDir)
	}
	return hooksDir, nil
}
