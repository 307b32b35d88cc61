package e2e

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestEndToEndWorkflow drives a built diacare binary through a day of use.
// Build it first with: go build -o bin/diacare ./cmd/diacare
func TestEndToEndWorkflow(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get cwd: %v", err)
	}

	binDir := os.Getenv("DIACARE_BIN_DIR")
	if binDir == "" {
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)
	cliPath := filepath.Join(binDir, "diacare")

	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s. Please build it first.", cliPath)
	}

	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "diacare", "diacare.db")

	var cleanEnv []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "XDG_CONFIG_HOME=") || strings.HasPrefix(e, "DIACARE_") {
			continue
		}
		cleanEnv = append(cleanEnv, e)
	}
	cleanEnv = append(cleanEnv,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("XDG_CONFIG_HOME=%s", tempDir),
		fmt.Sprintf("DIACARE_CONFIG=%s", dbPath),
		"DIACARE_TIMEZONE=UTC",
	)

	t.Log("Initializing CLI...")
	runCmd(t, cliPath, cleanEnv, "init")
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("store not created: %v", err)
	}

	t.Log("Adding a habit...")
	runCmd(t, cliPath, cleanEnv, "habit", "add", "Evening Walk", "--time", "19:30")
	out := runCmd(t, cliPath, cleanEnv, "habit", "list")
	if !strings.Contains(out, "Evening Walk") {
		t.Fatalf("new habit not listed:\n%s", out)
	}

	t.Log("Completing every habit...")
	for _, h := range []string{"medicine", "water", "meal", "sugar", "exercise", "Evening Walk"} {
		runCmd(t, cliPath, cleanEnv, "task", "do", h)
	}

	out = runCmd(t, cliPath, cleanEnv, "streak")
	if !strings.Contains(out, "Current streak: 1 days") {
		t.Errorf("unexpected streak output:\n%s", out)
	}
	out = runCmd(t, cliPath, cleanEnv, "points")
	if !strings.Contains(out, "Total points:   60") {
		t.Errorf("unexpected points output:\n%s", out)
	}

	t.Log("Logging a reading...")
	runCmd(t, cliPath, cleanEnv, "sugar", "add", "112", "--meal", "after_meal")

	t.Log("Exporting...")
	out = runCmd(t, cliPath, cleanEnv, "export", "--format", "json")
	var snap struct {
		App       string                     `json:"app"`
		Documents map[string]json.RawMessage `json:"documents"`
	}
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("export is not JSON: %v\n%s", err, out)
	}
	if snap.App != "diacare" || len(snap.Documents) == 0 {
		t.Errorf("unexpected export: app=%q documents=%d", snap.App, len(snap.Documents))
	}

	t.Log("Backing up...")
	runCmd(t, cliPath, cleanEnv, "backup", "create")
	out = runCmd(t, cliPath, cleanEnv, "backup", "list")
	if !strings.Contains(out, "Available backups") {
		t.Errorf("backup not listed:\n%s", out)
	}

	runCmd(t, cliPath, cleanEnv, "doctor")
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.Output()
	if err != nil {
		stderr := ""
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = string(exitErr.Stderr)
		}
		t.Fatalf("Command %s %v failed: %v\nOutput: %s%s", path, args, err, out, stderr)
	}
	return string(out)
}
