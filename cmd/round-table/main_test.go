package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type MockRunner struct {
	RunError error
	Called   bool
}

func (m *MockRunner) Run(p *tea.Program) (tea.Model, error) {
	m.Called = true
	return nil, m.RunError
}

func baseArgs(t *testing.T, extra ...string) []string {
	return append([]string{"-log", filepath.Join(t.TempDir(), "test.log"), "-eat", "0"}, extra...)
}

func TestRun_FlagError(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), []string{"-undefined-flag"}, nil, &out, &MockRunner{})
	if err == nil {
		t.Error("Expected error for undefined flag, got nil")
	}
}

func TestRun_BoundedRounds(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), baseArgs(t, "-rounds", "10"), nil, &out, &MockRunner{})
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}
	text := out.String()
	// 10 rounds, two meals each, one line per round.
	if got := strings.Count(text, "time(s)"); got != 20 {
		t.Errorf("expected 20 meal lines, got %d:\n%s", got, text)
	}
	if got := strings.Count(text, "Round "); got != 10 {
		t.Errorf("expected 10 round lines, got %d", got)
	}
}

func TestRun_Plan(t *testing.T) {
	var out bytes.Buffer
	if err := Run(context.Background(), baseArgs(t, "-plan", "-n", "4"), nil, &out, &MockRunner{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Round 3:") {
		t.Errorf("plan missing last round:\n%s", out.String())
	}
}

func TestRun_ConfigErrors(t *testing.T) {
	var out bytes.Buffer
	if err := Run(context.Background(), baseArgs(t, "-n", "1"), nil, &out, &MockRunner{}); err == nil {
		t.Error("expected error for a single philosopher")
	}
	if err := Run(context.Background(), baseArgs(t, "-n", "42"), nil, &out, &MockRunner{}); err == nil {
		t.Error("expected error when names run out")
	}
	missing := filepath.Join(t.TempDir(), "missing.toml")
	if err := Run(context.Background(), baseArgs(t, "-config", missing), nil, &out, &MockRunner{}); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestRun_ConfigFileAndSummary(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "table.toml")
	body := "philosophers = 2\n[[seats]]\nname = \"Kant\"\n[[seats]]\nname = \"Kafka\"\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "out")

	var out bytes.Buffer
	err := Run(context.Background(), baseArgs(t, "-config", cfgPath, "-rounds", "4", "-out", outDir), nil, &out, &MockRunner{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Kafka") {
		t.Errorf("expected Kafka to eat:\n%s", out.String())
	}
	matches, _ := filepath.Glob(filepath.Join(outDir, "round-table-*.json"))
	if len(matches) != 1 {
		t.Errorf("expected one JSON summary, got %v", matches)
	}
}

func TestRun_CancelIsCleanShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	var out bytes.Buffer
	// Unbounded rounds with one-second meals: only the context can stop it.
	err := Run(ctx, []string{"-log", filepath.Join(t.TempDir(), "test.log")}, nil, &out, &MockRunner{})
	if err != nil {
		t.Errorf("Expected clean shutdown, got %v", err)
	}
}

func TestRun_Dashboard(t *testing.T) {
	mock := &MockRunner{}
	var out bytes.Buffer
	if err := Run(context.Background(), baseArgs(t, "-tui", "-rounds", "5"), nil, &out, mock); err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}
	if !mock.Called {
		t.Error("dashboard runner was not used")
	}
}

func TestRun_DashboardError(t *testing.T) {
	mock := &MockRunner{RunError: fmt.Errorf("ui failure")}
	var out bytes.Buffer
	err := Run(context.Background(), baseArgs(t, "-tui"), nil, &out, mock)
	if err == nil || !strings.Contains(err.Error(), "ui failure") {
		t.Errorf("Expected UI error, got %v", err)
	}
}
