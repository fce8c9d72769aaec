package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-drift/hostbridge/pkg/codec"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HOSTBRIDGE_APP_NAME",
		"HOSTBRIDGE_CONTAINER",
		"HOSTBRIDGE_CODEC",
		"HOSTBRIDGE_STRICT_SLOTS",
		"HOSTBRIDGE_LOG_LEVEL",
		"HOSTBRIDGE_VERBOSE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestResolveDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/acme/dashboard\n\ngo 1.24\n")

	got, err := Resolve(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got.ModulePath != "example.com/acme/dashboard" {
		t.Errorf("ModulePath = %q", got.ModulePath)
	}
	if got.AppName != "dashboard" {
		t.Errorf("AppName = %q, want dashboard", got.AppName)
	}
	if got.Container != DefaultContainer {
		t.Errorf("Container = %q, want %q", got.Container, DefaultContainer)
	}
	if got.Codec != codec.JSON {
		t.Errorf("Codec = %s, want json", got.Codec.Name())
	}
	if !got.StrictSlots {
		t.Error("StrictSlots should default to true")
	}
	if got.LogLevel != slog.LevelInfo || got.Verbose {
		t.Errorf("log = %v verbose=%v", got.LogLevel, got.Verbose)
	}
}

func TestResolveMajorVersionSuffix(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/widgets/v2\n")

	got, err := Resolve(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got.AppName != "widgets" {
		t.Errorf("AppName = %q, want widgets", got.AppName)
	}
}

func TestResolveWithoutGoMod(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "scratch")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Resolve(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got.ModulePath != "" || got.AppName != "scratch" {
		t.Errorf("got module %q app %q", got.ModulePath, got.AppName)
	}
}

func TestResolveFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
app:
  name: Demo
render:
  container: app
  codec: CBOR
  strict_slots: false
log:
  level: debug
  verbose: true
`)

	got, err := Resolve(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got.AppName != "Demo" || got.Container != "app" {
		t.Errorf("app %q container %q", got.AppName, got.Container)
	}
	if got.Codec != codec.CBOR {
		t.Errorf("Codec = %s, want cbor", got.Codec.Name())
	}
	if got.StrictSlots {
		t.Error("StrictSlots should be false")
	}
	if got.LogLevel != slog.LevelDebug || !got.Verbose {
		t.Errorf("log = %v verbose=%v", got.LogLevel, got.Verbose)
	}
}

func TestResolveEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, FileName, "render:\n  container: app\n  codec: cbor\n")
	t.Setenv("HOSTBRIDGE_CONTAINER", "mount")
	t.Setenv("HOSTBRIDGE_CODEC", "json")
	t.Setenv("HOSTBRIDGE_STRICT_SLOTS", "false")
	t.Setenv("HOSTBRIDGE_LOG_LEVEL", "warn")
	t.Setenv("HOSTBRIDGE_VERBOSE", "true")

	got, err := Resolve(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got.Container != "mount" {
		t.Errorf("Container = %q, want mount", got.Container)
	}
	if got.Codec != codec.JSON {
		t.Errorf("Codec = %s, want json", got.Codec.Name())
	}
	if got.StrictSlots {
		t.Error("StrictSlots should be overridden to false")
	}
	if got.LogLevel != slog.LevelWarn || !got.Verbose {
		t.Errorf("log = %v verbose=%v", got.LogLevel, got.Verbose)
	}
}

func TestResolveInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown codec", "render:\n  codec: protobuf\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"bad container", "render:\n  container: \"a b\"\n"},
		{"bad yaml", "render: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			writeFile(t, dir, FileName, tt.content)
			if _, err := Resolve(dir); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/x\n")
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(nested); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })

	root, err := FindProjectRoot()
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(root)
	if got != want {
		t.Errorf("root = %q, want %q", got, want)
	}
}
