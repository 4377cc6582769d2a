package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bashhack/captainslog/internal/errors"
	"github.com/bashhack/captainslog/internal/hook"
)

var (
	flagInstallRepo  string
	flagInstallForce bool
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the post-commit hook",
	Long: `Install the captainslog post-commit hook into a repository.

The hook records every commit in the daily log. An existing hook not
written by captainslog is left untouched unless --force is given.`,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&flagInstallRepo, "repo", "", "repository to install into (default: current directory)")
	installCmd.Flags().BoolVar(&flagInstallForce, "force", false, "overwrite an existing post-commit hook")
}

func runInstall(cmd *cobra.Command, args []string) error {
	log, _ := newRuntime()
	defer log.Close()

	repoPath := flagInstallRepo
	if repoPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "could not determine working directory")
		}
		repoPath = cwd
	}

	hookPath, err := hook.Install(repoPath, flagInstallForce, log)
	if err != nil {
		printError("Hook installation failed: %v", err)
		return err
	}

	printSuccess("Installed post-commit hook at %s", hookPath)
	printHint("Commits in this repository will now be recorded in your daily log.")
	return nil
}
