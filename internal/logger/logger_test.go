package logger

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestUserFacingOutput(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	log := NewWithOutput(false, "", false, &stdout, &stderr)

	log.Success("log updated for %s", "demo")
	log.InfoToUser("checking %s", "config")
	log.Error("write failed")

	if !strings.Contains(stdout.String(), "✅ log updated for demo") {
		t.Errorf("stdout missing success line: %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "ℹ️  checking config") {
		t.Errorf("stdout missing info line: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "❌ write failed") {
		t.Errorf("stderr missing error line: %q", stderr.String())
	}
}

func TestWarningShownOnlyWhenVerbose(t *testing.T) {
	t.Parallel()

	var quietOut bytes.Buffer
	quiet := NewWithOutput(false, "", false, &quietOut, &quietOut)
	quiet.Warning("something recoverable")
	if quietOut.Len() != 0 {
		t.Errorf("non-verbose warning produced output: %q", quietOut.String())
	}

	var verboseOut bytes.Buffer
	verbose := NewWithOutput(false, "", true, &verboseOut, &verboseOut)
	verbose.Warning("something recoverable")
	if !strings.Contains(verboseOut.String(), "something recoverable") {
		t.Errorf("verbose warning not shown: %q", verboseOut.String())
	}
}

func TestFileLoggingAndClose(t *testing.T) {
	t.Parallel()

	logFile := filepath.Join(t.TempDir(), "logs", "captainslog.log")
	var stdout, stderr bytes.Buffer
	log := NewWithOutput(true, logFile, false, &stdout, &stderr)

	log.Info("internal detail")
	if err := log.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// Close is idempotent once the handle is released.
	if err := log.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}
