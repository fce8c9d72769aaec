package testing

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/hostbridge/pkg/host/memory"
)

// UpdateSnapshotsEnv names the environment variable that switches
// MatchesFile from comparing to rewriting golden files.
const UpdateSnapshotsEnv = "HOSTBRIDGE_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the committed document below the tester's container.
type Snapshot struct {
	Container string          `yaml:"container"`
	Renders   int             `yaml:"renders"`
	Nodes     []*SnapshotNode `yaml:"nodes,omitempty"`
}

// SnapshotNode is one serialized document node.
type SnapshotNode = memory.Outline

// CaptureSnapshot captures the current document.
func (t *Tester) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{
		Container: t.container.ContainerID(),
		Renders:   t.runtime.Renders(),
	}
	snap.Nodes = t.container.Outline()
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When
// HOSTBRIDGE_UPDATE_SNAPSHOTS=1 is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s (-expected +actual)\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a diff from other to this snapshot. Returns empty string if
// equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	return cmp.Diff(other, s)
}

// YAML returns the snapshot in its golden-file encoding.
func (s *Snapshot) YAML() (string, error) {
	data, err := marshalSnapshot(s)
	return string(data), err
}

// --- Internal ---

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot YAML: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	return yaml.Marshal(s)
}
