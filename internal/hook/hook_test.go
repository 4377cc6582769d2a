package hook

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bashhack/captainslog/internal/errors"
	"github.com/bashhack/captainslog/internal/logger"
)

func testLogger() logger.Logger {
	return logger.NewWithOutput(false, "", false, io.Discard, io.Discard)
}

func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	cmd := exec.Command("git", "init", dir)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git init failed: %v\n%s", err, output)
	}
	return dir
}

func TestInstall(t *testing.T) {
	t.Parallel()

	repo := initRepo(t)
	hookPath, err := Install(repo, false, testLogger())
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	info, err := os.Stat(hookPath)
	if err != nil {
		t.Fatalf("hook not written: %v", err)
	}
	if info.Mode()&0111 == 0 {
		t.Error("hook is not executable")
	}

	content, err := os.ReadFile(hookPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "captainslog commit") {
		t.Errorf("hook does not invoke captainslog commit:\n%s", content)
	}
}

func TestInstallReinstallIsIdempotent(t *testing.T) {
	t.Parallel()

	repo := initRepo(t)
	first, err := Install(repo, false, testLogger())
	if err != nil {
		t.Fatalf("first install failed: %v", err)
	}
	second, err := Install(repo, false, testLogger())
	if err != nil {
		t.Fatalf("reinstall failed: %v", err)
	}
	if first != second {
		t.Errorf("reinstall path = %q, want %q", second, first)
	}
}

func TestInstallRefusesForeignHook(t *testing.T) {
	t.Parallel()

	repo := initRepo(t)
	hookPath := filepath.Join(repo, ".git", "hooks", "post-commit")
	if err := os.MkdirAll(filepath.Dir(hookPath), 0755); err != nil {
		t.Fatal(err)
	}
	foreign := "#!/bin/sh\necho custom\n"
	if err := os.WriteFile(hookPath, []byte(foreign), 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := Install(repo, false, testLogger()); err == nil {
		t.Fatal("expected install to refuse a foreign hook without force")
	}

	content, err := os.ReadFile(hookPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != foreign {
		t.Error("foreign hook was modified")
	}

	if _, err := Install(repo, true, testLogger()); err != nil {
		t.Fatalf("forced install failed: %v", err)
	}
	content, err = os.ReadFile(hookPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), marker) {
		t.Error("forced install did not replace the foreign hook")
	}
}

func TestInstallRejectsNonRepository(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	_, err := Install(t.TempDir(), false, testLogger())
	if err == nil {
		t.Fatal("expected an error for a non-repository path")
	}
	if !errors.Is(err, errors.ErrNotGitRepository) {
		t.Errorf("error = %v, want ErrNotGitRepository in chain", err)
	}
}
