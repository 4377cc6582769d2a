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
	"github.com/bashhack/captainslog/internal/logdoc"
	"github.com/bashhack/captainslog/internal/logfile"
	"github.com/bashhack/captainslog/internal/project"
)

var btwCmd = &cobra.Command{
	Use:   "btw <text>...",
	Short: "Add a quick note to today's log",
	Long: `Add a manual note to today's log under the "other" section.

The arguments are joined into a single entry, so quoting is optional:

  captainslog btw reviewed the new API documentation`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBtw,
}

func runBtw(cmd *cobra.Command, args []string) error {
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

	existing := doc.Entries(logdoc.OtherSection)
	updated := entry.AddManualEntry(existing, text)
	if len(updated) == len(existing) {
		printHint("Entry already exists in %s log: %s", proj.Name, text)
		return nil
	}
	doc.SetEntries(logdoc.OtherSection, updated)

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
