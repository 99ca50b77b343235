package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"montage/internal/config"
	"montage/internal/projectstore"
	"montage/internal/testsupport"
	"montage/internal/timeline"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.ProjectDir = filepath.Join(base, "projects")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(
		"[paths]\nproject_dir = %q\nlog_dir = %q\n\n[logging]\nlevel = \"error\"\n",
		cfg.Paths.ProjectDir,
		cfg.Paths.LogDir,
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{cfg: &cfg, configPath: configPath}
}

// seedProject stores the standard fixture project and releases the store
// lock so CLI commands can take it.
func (env *cliTestEnv) seedProject(t *testing.T, id string) {
	t.Helper()

	store, err := projectstore.Open(env.cfg)
	if err != nil {
		t.Fatalf("projectstore.Open: %v", err)
	}
	defer store.Close()
	if err := store.Save(context.Background(), testsupport.NewProject(t, id)); err != nil {
		t.Fatalf("seed project: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestCLIProjectCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seedProject(t, "proj-1")

	out, _, err := runCLI(t, []string{"project", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("project list: %v", err)
	}
	requireContains(t, out, "proj-1")
	requireContains(t, out, "Test Project")

	out, _, err = runCLI(t, []string{"project", "list", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("project list --json: %v", err)
	}
	requireContains(t, out, `"id": "proj-1"`)

	out, _, err = runCLI(t, []string{"project", "show", "proj-1"}, env.configPath)
	if err != nil {
		t.Fatalf("project show: %v", err)
	}
	requireContains(t, out, "Primary Track")
	requireContains(t, out, "Webcam Track")
	requireContains(t, out, "clip-a")
	requireContains(t, out, "zoom-1")

	out, _, err = runCLI(t, []string{"project", "delete", "proj-1"}, env.configPath)
	if err != nil {
		t.Fatalf("project delete: %v", err)
	}
	requireContains(t, out, "Deleted project proj-1")

	out, _, err = runCLI(t, []string{"project", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("project list after delete: %v", err)
	}
	requireContains(t, out, "No projects stored")
}

func TestCLIClipEditRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seedProject(t, "proj-1")

	out, _, err := runCLI(t, []string{"clip", "--project", "proj-1", "split", "clip-a", "2000"}, env.configPath)
	if err != nil {
		t.Fatalf("clip split: %v", err)
	}
	requireContains(t, out, "Split clip clip-a")

	_, _, err = runCLI(t, []string{"clip", "--project", "proj-1", "delete", "clip-b"}, env.configPath)
	if err != nil {
		t.Fatalf("clip delete: %v", err)
	}

	store, err := projectstore.Open(env.cfg)
	if err != nil {
		t.Fatalf("projectstore.Open: %v", err)
	}
	defer store.Close()
	p, err := store.Load(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("Load after edits: %v", err)
	}

	if p.ClipByID("clip-b") != nil {
		t.Fatal("clip-b should be deleted")
	}
	primary := p.TrackOfType(timeline.TrackPrimary)
	if len(primary.Clips) != 2 {
		t.Fatalf("expected 2 primary clips after split and delete, got %d", len(primary.Clips))
	}
	// 10s of footage minus the deleted 5s clip.
	if got := p.Duration(); got != 5000 {
		t.Fatalf("project duration = %v, want 5000", got)
	}
}

func TestCLIUnknownProject(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"project", "show", "missing"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown project")
	}
}
