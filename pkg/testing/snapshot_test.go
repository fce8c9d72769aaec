package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/hostbridge/internal/showcase"
)

func TestCaptureSnapshot_Structure(t *testing.T) {
	tester := NewTesterWithT(t)
	MountComponent(tester, showcase.Toggle{Label: "Wi-Fi"})

	snap := tester.CaptureSnapshot()
	if snap.Container != DefaultContainerID {
		t.Errorf("container = %q", snap.Container)
	}
	if snap.Renders != 1 {
		t.Errorf("renders = %d, want 1", snap.Renders)
	}
	if len(snap.Nodes) != 1 {
		t.Fatalf("nodes = %d, want 1", len(snap.Nodes))
	}
	button := snap.Nodes[0]
	if button.Tag != "button" {
		t.Errorf("tag = %q, want button", button.Tag)
	}
	if button.Attrs["aria-pressed"] != "false" || button.Attrs["id"] != "toggle" {
		t.Errorf("attrs = %v", button.Attrs)
	}
	if len(button.Listeners) != 1 || button.Listeners[0] != "onClick" {
		t.Errorf("listeners = %v, want [onClick]", button.Listeners)
	}
	if len(button.Children) != 1 || button.Children[0].Text != "Wi-Fi: off" {
		t.Errorf("children = %v", button.Children)
	}
}

func TestSnapshot_Diff_Equal(t *testing.T) {
	tester := NewTesterWithT(t)
	MountComponent(tester, showcase.Counter{Initial: 1})

	a := tester.CaptureSnapshot()
	b := tester.CaptureSnapshot()

	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}
}

func TestSnapshot_Diff_Different(t *testing.T) {
	tester := NewTesterWithT(t)
	MountComponent(tester, showcase.Counter{Initial: 1})
	a := tester.CaptureSnapshot()

	tester.ClickAndPump(ByID("increment"))
	b := tester.CaptureSnapshot()

	if diff := a.Diff(b); diff == "" {
		t.Error("expected diff after the count changed")
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	tester := NewTesterWithT(t)
	MountComponent(tester, showcase.TodoList{Title: "t", Items: []string{"a"}})

	snap := tester.CaptureSnapshot()

	dir := t.TempDir()
	path := filepath.Join(dir, "testdata", "todo.snapshot.yaml")

	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("snapshot file should exist after UpdateFile")
	}

	// MatchesFile should pass now
	snap.MatchesFile(t, path)
}

func TestSnapshot_YAML(t *testing.T) {
	tester := NewTesterWithT(t)
	MountComponent(tester, showcase.Toggle{Label: "x", On: true})

	out, err := tester.CaptureSnapshot().YAML()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"container: root", "tag: button", "aria-pressed:", "- onClick", "x: on"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML missing %q:\n%s", want, out)
		}
	}
}

func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	tester := NewTesterWithT(t)
	MountComponent(tester, showcase.Counter{Initial: 0})
	snap := tester.CaptureSnapshot()

	rec := &recordingT{name: t.Name()}
	snap.MatchesFile(rec, filepath.Join(t.TempDir(), "missing.yaml"))

	if !rec.fatal {
		t.Error("expected Fatalf for a missing snapshot file")
	}
	if !strings.Contains(rec.msg, UpdateSnapshotsEnv) {
		t.Errorf("message should explain how to create the file: %s", rec.msg)
	}
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	tester := NewTesterWithT(t)
	MountComponent(tester, showcase.Counter{Initial: 0})
	path := filepath.Join(t.TempDir(), "counter.yaml")
	if err := tester.CaptureSnapshot().UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	tester.ClickAndPump(ByID("increment"))
	rec := &recordingT{name: t.Name()}
	tester.CaptureSnapshot().MatchesFile(rec, path)

	if !rec.errored {
		t.Error("expected Errorf for a mismatched snapshot")
	}
}

func TestSnapshot_MatchesFile_UpdateEnv(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "1")
	tester := NewTesterWithT(t)
	MountComponent(tester, showcase.Counter{Initial: 0})
	path := filepath.Join(t.TempDir(), "new", "counter.yaml")

	rec := &recordingT{name: t.Name()}
	tester.CaptureSnapshot().MatchesFile(rec, path)

	if rec.fatal || rec.errored {
		t.Fatalf("update mode should not fail: %s", rec.msg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("snapshot not written: %v", err)
	}
}

// recordingT captures failures instead of failing the enclosing test.
type recordingT struct {
	name    string
	fatal   bool
	errored bool
	msg     string
}

func (r *recordingT) Helper()      {}
func (r *recordingT) Name() string { return r.name }

func (r *recordingT) Fatalf(format string, args ...any) {
	r.fatal = true
	r.msg = fmt.Sprintf(format, args...)
}

func (r *recordingT) Errorf(format string, args ...any) {
	r.errored = true
	r.msg = fmt.Sprintf(format, args...)
}
