// ABOUTME: Integration tests for readiness CLI.
// ABOUTME: Builds the binary and exercises the full add/score/settings workflow.
package test

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func buildBinary(t *testing.T) string {
	t.Helper()
	projectRoot, _ := filepath.Abs("..")
	binary := filepath.Join(projectRoot, fmt.Sprintf("readiness-test-%d", os.Getpid()))

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/readiness")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}
	t.Cleanup(func() { _ = os.Remove(binary) })
	return binary
}

func isolatedEnv(tmpDir, widget string) []string {
	return append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
		"XDG_DATA_HOME="+filepath.Join(tmpDir, "data"),
		"READINESS_DATA_DIR=",
		"READINESS_WIDGET="+widget,
	)
}

func TestFullWorkflow(t *testing.T) {
	binary := buildBinary(t)
	tmpDir := t.TempDir()
	env := isolatedEnv(tmpDir, "file")

	run := func(args ...string) (string, error) {
		cmd := exec.Command(binary, args...)
		cmd.Env = env
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Seed two weeks of metrics plus today's reading
	today := time.Now()
	for i := 1; i <= 14; i++ {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		output, err := run("add", date, "--hrv", "50", "--rhr", "55", "--sleep", "7.5")
		if err != nil {
			t.Fatalf("Failed to add %s: %v\n%s", date, err, output)
		}
	}
	output, err := run("add", "today", "--hrv", "53", "--rhr", "55", "--sleep", "7.5")
	if err != nil {
		t.Fatalf("Failed to add today: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Recorded metrics") {
		t.Errorf("Expected 'Recorded metrics' in output, got: %s", output)
	}

	// Steady 50ms baseline, 53ms today: moderate territory
	output, err = run("today")
	if err != nil {
		t.Fatalf("Failed to compute today: %v\n%s", err, output)
	}
	if !strings.Contains(output, "moderate") {
		t.Errorf("Expected 'moderate' in output, got: %s", output)
	}

	// The file widget publisher wrote a snapshot
	widgetPath := filepath.Join(tmpDir, "data", "readiness", "widget.json")
	if _, err := os.Stat(widgetPath); err != nil {
		t.Errorf("Expected widget snapshot at %s: %v", widgetPath, err)
	}

	// Historical recalculation
	output, err = run("recalc", "--days", "5")
	if err != nil {
		t.Fatalf("Failed to recalc: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Recalculated 5 of 5 days") {
		t.Errorf("Expected full replay in output, got: %s", output)
	}

	// History table lists the replayed days
	output, err = run("history", "--days", "7")
	if err != nil {
		t.Fatalf("Failed to list history: %v\n%s", err, output)
	}
	for i := 0; i < 5; i++ {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		if !strings.Contains(output, date) {
			t.Errorf("Expected %s in history output, got: %s", date, output)
		}
	}

	// Settings write replays history synchronously
	output, err = run("settings", "set", "window", "7")
	if err != nil {
		t.Fatalf("Failed to set window: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Replayed") {
		t.Errorf("Expected replay summary in output, got: %s", output)
	}

	output, err = run("settings", "get")
	if err != nil {
		t.Fatalf("Failed to get settings: %v\n%s", err, output)
	}
	if !strings.Contains(output, `"window_length_days": 7`) {
		t.Errorf("Expected updated window in output, got: %s", output)
	}

	// Today-scope change does not replay
	output, err = run("settings", "set", "window-end-hour", "10")
	if err != nil {
		t.Fatalf("Failed to set window-end-hour: %v\n%s", err, output)
	}
	if strings.Contains(output, "Replayed") {
		t.Errorf("Did not expect a replay for a today-scope change, got: %s", output)
	}

	// Retention cleanup
	old := today.AddDate(0, 0, -400).Format("2006-01-02")
	if output, err := run("add", old, "--hrv", "44"); err != nil {
		t.Fatalf("Failed to add old metrics: %v\n%s", err, output)
	}
	output, err = run("cleanup", "--older-than", "365d")
	if err != nil {
		t.Fatalf("Failed to cleanup: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Deleted") {
		t.Errorf("Expected deletion summary in output, got: %s", output)
	}
}

func TestInsufficientDataGivesHint(t *testing.T) {
	binary := buildBinary(t)
	tmpDir := t.TempDir()

	cmd := exec.Command(binary, "today")
	cmd.Env = isolatedEnv(tmpDir, "off")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Expected graceful handling of empty store: %v\n%s", err, output)
	}
	if !strings.Contains(string(output), "No score today") {
		t.Errorf("Expected hint output, got: %s", output)
	}
}
