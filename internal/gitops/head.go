package gitops

import (
	"strings"

	git "github.com/go-git/go-git/v5"

	"github.com/bashhack/captainslog/internal/errors"
)

// noShaPrefix marks the sentinel sha value hooks pass when there is no
// real commit to record.
const noShaPrefix = "no-sha"

// IsLoggableSha reports whether a commit sha should produce a log
// entry. Empty and sentinel values short-circuit the commit path before
// any file mutation.
func IsLoggableSha(sha string) bool {
	return sha != "" && !strings.HasPrefix(sha, noShaPrefix)
}

// HeadCommit reads the sha and subject line of HEAD in the given
// repository. Used by the hook path when the caller does not pass
// commit details explicitly.
func HeadCommit(repoPath string) (sha, message string, err error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", "", errors.Wrapf(errors.ErrGitOperationFailed, "failed to open repository %s: %v", repoPath, err)
	}

	ref, err := repo.Head()
	if err != nil {
		return "", "", errors.Wrapf(errors.ErrGitOperationFailed, "failed to resolve HEAD in %s: %v", repoPath, err)
	}

	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return "", "", errors.Wrapf(errors.ErrGitOperationFailed, "failed to read HEAD commit in %s: %v", repoPath, err)
	}

	subject, _, _ := strings.Cut(strings.TrimSpace(commit.Message), "\n")
	return commit.Hash.String(), strings.TrimSpace(subject), nil
}
