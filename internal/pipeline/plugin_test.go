package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// writeScript writes an executable shell script to dir/name.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunPluginReportsFileToOpen(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "picked.txt")
	writeFile(t, target)
	script := writeScript(t, dir, "pick.sh", `echo "`+target+`" > "$CLIFM_BUS"`)

	result, err := RunPlugin(context.Background(), script, nil, dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.OpenFile != target {
		t.Errorf("got OpenFile %q, want %q", result.OpenFile, target)
	}
}

func TestRunPluginReportsCommandLine(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "runline.sh", `echo "echo hello" > "$CLIFM_BUS"`)

	result, err := RunPlugin(context.Background(), script, nil, dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.RunLine != "echo hello" {
		t.Errorf("got RunLine %q, want %q", result.RunLine, "echo hello")
	}
}

func TestRunPluginNoBusWrite(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "quiet.sh", `exit 0`)

	result, err := RunPlugin(context.Background(), script, nil, dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.OpenFile != "" || result.RunLine != "" {
		t.Errorf("expected empty result, got %+v", result)
	}
}
