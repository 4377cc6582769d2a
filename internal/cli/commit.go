package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/bashhack/captainslog/internal/config"
	"github.com/bashhack/captainslog/internal/entry"
	"github.com/bashhack/captainslog/internal/errors"
	"github.com/bashhack/captainslog/internal/gitops"
	"github.com/bashhack/captainslog/internal/logfile"
	"github.com/bashhack/captainslog/internal/project"
)

var commitCmd = &cobra.Command{
	Use:   "commit [repo-name repo-path sha message]",
	Short: "Record a commit in today's log",
	Long: `Record a commit in today's log file for the current project.

With no arguments the repository is derived from the working directory
and the HEAD commit is read directly; this is the form the post-commit
hook uses. The four-argument form takes the repository name, its path,
the commit sha and the commit message explicitly.

Recoverable problems are reported as warnings and exit zero so the
underlying git commit is never blocked.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 4 {
			return errors.Errorf("accepts no arguments or exactly four (repo-name repo-path sha message), received %d", len(args))
		}
		return nil
	},
	RunE: runCommit,
}

func runCommit(cmd *cobra.Command, args []string) error {
	log, cfg := newRuntime()
	defer log.Close()

	repoName, repoPath, sha, message, err := commitDetails(args)
	if err != nil {
		// The hook path must never fail the commit it reports on.
		log.Warning("Skipping log update: %v", err)
		printWarning("Skipping log update: %v", err)
		return nil
	}

	if !gitops.IsLoggableSha(sha) {
		log.Info("Skipping log update for %s: no valid commit sha", repoName)
		printHint("Skipping log update: no valid commit sha")
		return nil
	}
	if isLogRepository(repoPath, cfg) {
		log.Info("Skipping log update: commit made inside a log repository")
		printHint("Skipping log update: running from within a log repository")
		return nil
	}

	proj := project.Find(repoPath, cfg)
	manager := logfile.NewManager(cfg, log)
	now := time.Now()

	loc := manager.Resolve(proj, now)
	doc := manager.Load(loc)
	doc.SetEntries(repoName, entry.UpdateCommitEntries(doc.Entries(repoName), sha, message))

	if err := manager.Save(loc, doc, false); err != nil {
		printError("Could not write log file: %v", err)
		return err
	}

	if loc.RepoPath != "" {
		commitMsg := fmt.Sprintf("Update %s logs for %s", proj.Name, now.Format("2006-01-02"))
		if err := gitops.New(loc.RepoPath, log).CommitAndPush(commitMsg); err != nil {
			log.Warning("Could not commit log update: %v", err)
			printWarning("Log saved but not committed: %v", err)
			return nil
		}
	}

	printSuccess("Updated log for %s in project %s", repoName, proj.Name)
	return nil
}

// commitDetails resolves the commit to record, either from explicit
// arguments or from HEAD of the repository containing the working
// directory.
func commitDetails(args []string) (repoName, repoPath, sha, message string, err error) {
	if len(args) == 4 {
		return args[0], args[1], args[2], args[3], nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", "", "", "", errors.Wrap(err, "could not determine working directory")
	}
	abs, err := filepath.Abs(cwd)
	if err != nil {
		abs = cwd
	}

	if !gitops.IsRepository(abs) {
		return "", "", "", "", errors.Wrapf(errors.ErrNotGitRepository, "%s is not a git repository", abs)
	}

	sha, message, err = gitops.HeadCommit(abs)
	if err != nil {
		return "", "", "", "", err
	}
	return filepath.Base(abs), abs, sha, message, nil
}

// isLogRepository reports whether the committing repository is itself a
// configured log repository, which would loop: the log commit would
// trigger the hook that writes the log.
func isLogRepository(repoPath string, cfg *config.Config) bool {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		abs = filepath.Clean(repoPath)
	}

	same := func(candidate string) bool {
		if candidate == "" {
			return false
		}
		candidateAbs, err := filepath.Abs(candidate)
		if err != nil {
			candidateAbs = filepath.Clean(candidate)
		}
		return abs == candidateAbs
	}

	if same(cfg.GlobalLogRepo) {
		return true
	}
	for _, pc := range cfg.Projects {
		if same(pc.LogRepo) {
			return true
		}
	}
	return false
}
