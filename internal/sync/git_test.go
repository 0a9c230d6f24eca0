package sync

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func run(t *testing.T, dir, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("%s %s: %v\n%s", name, strings.Join(args, " "), err, out)
	}
}

func gitOut(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("git %s: %v", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out))
}

// initGitRepo creates a bare origin and a working clone with one commit on
// main, the layout Write expects to find.
func initGitRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	remote := t.TempDir()
	run(t, remote, "git", "init", "--bare")

	work := t.TempDir()
	run(t, work, "git", "clone", remote, ".")
	run(t, work, "git", "config", "user.email", "sync@test.local")
	run(t, work, "git", "config", "user.name", "sync test")
	run(t, work, "git", "checkout", "-B", "main")
	if err := os.WriteFile(filepath.Join(work, "README.md"), []byte("archive repo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	run(t, work, "git", "add", "README.md")
	run(t, work, "git", "commit", "-m", "init")
	run(t, work, "git", "push", "-u", "origin", "main")
	return work
}

func TestGitDestination(t *testing.T) {
	work := initGitRepo(t)

	dest := NewGitDestination(work, "threads.jsonl", "main")
	data := []byte(`{"version":"1","type":"threads.archive"}` + "\n")
	if err := dest.Write(context.Background(), data); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(work, "threads.jsonl"))
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("archive content = %q, want %q", got, data)
	}

	// Identical content is a no-op: no second archive commit.
	if err := dest.Write(context.Background(), data); err != nil {
		t.Fatalf("second Write: %v", err)
	}
	count, err := strconv.Atoi(gitOut(t, work, "rev-list", "--count", "main"))
	if err != nil {
		t.Fatalf("parse commit count: %v", err)
	}
	if count != 2 {
		t.Errorf("commit count = %d, want 2 (init + one archive commit)", count)
	}
}

func TestGitDestination_SubDirectory(t *testing.T) {
	work := initGitRepo(t)

	dest := NewGitDestination(work, filepath.Join("data", "threads.jsonl"), "main")
	data := []byte(`{"type":"comment"}` + "\n")
	if err := dest.Write(context.Background(), data); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(work, "data", "threads.jsonl"))
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("archive content = %q, want %q", got, data)
	}
}
