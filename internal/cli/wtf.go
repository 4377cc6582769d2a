package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bashhack/captainslog/internal/entry"
	"github.com/bashhack/captainslog/internal/errors"
	"github.com/bashhack/captainslog/internal/gitops"
	"github.com/bashhack/captainslog/internal/logfile"
	"github.com/bashhack/captainslog/internal/project"
)

var wtfCmd = &cobra.Command{
	Use:   "wtf <text>...",
	Short: "Note something that broke or got weird",
	Long: `Add a note to today's "What Broke or Got Weird" list.

The arguments are joined into a single entry, so quoting is optional:

  captainslog wtf the staging deploy wiped its own database`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWtf,
}

func runWtf(cmd *cobra.Command, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return errors.New("entry text cannot be empty")
	}

	log, cfg := newRuntime()
	defer log.Close()

	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "could not determine working directory")
	}

	proj := project.Find(cwd, cfg)
	manager := logfile.NewManager(cfg, log)
	now := time.Now()

	loc := manager.Resolve(proj, now)
	doc := manager.Load(loc)

	if !doc.AddBrokeEntry(entry.FormatManual(text)) {
		printHint("Entry already exists in %s log: %s", proj.Name, text)
		return nil
	}

	if err := manager.Save(loc, doc, true); err != nil {
		printError("Could not write log file: %v", err)
		return err
	}

	if loc.RepoPath != "" {
		commitMsg := fmt.Sprintf("Add manual entry to %s logs for %s", proj.Name, now.Format("2006-01-02"))
		if err := gitops.New(loc.RepoPath, log).CommitAndPush(commitMsg); err != nil {
			log.Warning("Could not commit log update: %v", err)
			printWarning("Log saved but not committed: %v", err)
			return nil
		}
	}

	printSuccess("Added entry to %s log: %s", proj.Name, text)
	return nil
}
