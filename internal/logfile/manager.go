// Package logfile resolves where a project's daily log lives and keeps
// past months organized into year/month subdirectories.
package logfile

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/bashhack/captainslog/internal/config"
	"github.com/bashhack/captainslog/internal/logdoc"
	"github.com/bashhack/captainslog/internal/logger"
	"github.com/bashhack/captainslog/internal/project"
)

// logFileNamePattern matches daily log file names like 2025.01.02.md.
var logFileNamePattern = regexp.MustCompile(`^(\d{4})\.(\d{2})\.(\d{2})\.md$`)

// Location identifies a daily log file for a project on a given date.
// RepoPath is empty when the log lives outside any log repository.
type Location struct {
	FilePath    string
	BaseDir     string
	RepoPath    string
	ProjectName string
	Date        time.Time
}

type monthKey struct {
	year  int
	month time.Month
}

// Manager resolves log file locations and loads and saves their
// contents. Organization of past-month files runs at most once per
// month within a process.
type Manager struct {
	cfg     *config.Config
	log     logger.Logger
	writer  *logdoc.Writer
	baseDir string

	lastOrganized *monthKey
	now           func() time.Time
}

// NewManager creates a Manager over the given configuration.
func NewManager(cfg *config.Config, log logger.Logger) *Manager {
	return &Manager{
		cfg:     cfg,
		log:     log,
		writer:  logdoc.NewWriter(log),
		baseDir: config.DefaultBaseDir(),
		now:     time.Now,
	}
}

// Resolve determines the log file location for a project and date,
// organizing stray past-month files out of the base directory first
// when a new month has started.
func (m *Manager) Resolve(proj project.Info, date time.Time) Location {
	repoPath := proj.LogRepo
	if repoPath == "" {
		repoPath = m.cfg.GlobalLogRepo
	}
	if repoPath != "" {
		repoPath = cleanAbs(repoPath)
	}

	baseDir := m.baseDirFor(proj.Name, repoPath)

	if m.shouldOrganize(date, baseDir) {
		m.organize(baseDir)
		now := m.now()
		m.lastOrganized = &monthKey{year: now.Year(), month: now.Month()}
	}

	name := date.Format("2006.01.02") + ".md"
	filePath := filepath.Join(baseDir, name)
	if !m.isCurrentMonth(date) {
		filePath = filepath.Join(baseDir,
			strconv.Itoa(date.Year()),
			date.Format("01"),
			name)
	}

	return Location{
		FilePath:    filePath,
		BaseDir:     baseDir,
		RepoPath:    repoPath,
		ProjectName: proj.Name,
		Date:        date,
	}
}

// Load parses the log document at the resolved location. A past-month
// location falls back to the flat base directory path when the
// year/month file does not exist yet, so logs written before
// organization ran are still found. A missing file in both places
// yields an empty document.
func (m *Manager) Load(loc Location) *logdoc.Document {
	if fileExists(loc.FilePath) {
		return logdoc.ParseFile(loc.FilePath, m.log)
	}

	if !m.isCurrentMonth(loc.Date) {
		fallback := filepath.Join(loc.BaseDir, filepath.Base(loc.FilePath))
		if fileExists(fallback) {
			return logdoc.ParseFile(fallback, m.log)
		}
	}

	return logdoc.ParseFile(loc.FilePath, m.log)
}

// Save writes the document to the resolved location.
func (m *Manager) Save(loc Location, doc *logdoc.Document, otherAtEnd bool) error {
	return m.writer.WriteFile(loc.FilePath, doc, otherAtEnd)
}

// baseDirFor returns the directory holding a project's log files. With
// no log repository the default base directory gets a per-project
// subdirectory; the global repository gets one per project as well,
// while a dedicated project repository holds its logs at the top level.
func (m *Manager) baseDirFor(projectName, repoPath string) string {
	if repoPath == "" {
		return filepath.Join(m.baseDir, projectName)
	}
	if m.cfg.GlobalLogRepo != "" && repoPath == cleanAbs(m.cfg.GlobalLogRepo) {
		return filepath.Join(repoPath, projectName)
	}
	return repoPath
}

func (m *Manager) isCurrentMonth(date time.Time) bool {
	now := m.now()
	return date.Year() == now.Year() && date.Month() == now.Month()
}

// shouldOrganize decides whether past-month files need to be moved out
// of the base directory. Accessing the current month triggers
// organization once per calendar month; accessing a past month triggers
// it only when unorganized files are actually present and no
// organization has run in this process yet.
func (m *Manager) shouldOrganize(date time.Time, baseDir string) bool {
	now := m.now()
	current := monthKey{year: now.Year(), month: now.Month()}

	if m.isCurrentMonth(date) {
		return m.lastOrganized == nil || *m.lastOrganized != current
	}

	if m.lastOrganized == nil {
		return len(m.findOldLogFiles(baseDir)) > 0
	}
	return false
}

type oldLogFile struct {
	path  string
	year  int
	month int
}

// findOldLogFiles lists daily log files in the base directory that
// belong to a month other than the current one.
func (m *Manager) findOldLogFiles(baseDir string) []oldLogFile {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil
	}

	now := m.now()
	var old []oldLogFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := logFileNamePattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		year, _ := strconv.Atoi(match[1])
		month, _ := strconv.Atoi(match[2])
		if year != now.Year() || time.Month(month) != now.Month() {
			old = append(old, oldLogFile{
				path:  filepath.Join(baseDir, entry.Name()),
				year:  year,
				month: month,
			})
		}
	}
	return old
}

// organize moves every past-month log file into its year/month
// subdirectory. An existing destination is left alone and a move
// failure only warns; the current run proceeds with whatever layout
// resulted.
func (m *Manager) organize(baseDir string) {
	for _, file := range m.findOldLogFiles(baseDir) {
		targetDir := filepath.Join(baseDir, strconv.Itoa(file.year), twoDigit(file.month))
		if err := os.MkdirAll(targetDir, 0755); err != nil {
			m.log.Warning("Could not create %s: %v", targetDir, err)
			continue
		}

		target := filepath.Join(targetDir, filepath.Base(file.path))
		if fileExists(target) {
			continue
		}
		if err := os.Rename(file.path, target); err != nil {
			m.log.Warning("Could not move %s to %s: %v", file.path, target, err)
		}
	}
}

func twoDigit(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func cleanAbs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
