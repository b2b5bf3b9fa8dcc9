package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"classmate/internal/config"
)

// execute runs the root command with args against an isolated database.
func execute(t *testing.T, dbPath, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.ConfigFileEnv, "")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--db", dbPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_ExecPersists(t *testing.T) {
	db := filepath.Join(t.TempDir(), "class.db")

	out, err := execute(t, db, "", "exec", "add n/Alice e/alice@uni.edu")
	if err != nil {
		t.Fatalf("exec add: %v", err)
	}
	if !strings.Contains(out, "New student added: Alice") {
		t.Errorf("output = %q", out)
	}

	out, err = execute(t, db, "", "exec", "list")
	if err != nil {
		t.Fatalf("exec list: %v", err)
	}
	if !strings.Contains(out, "1. Alice") {
		t.Errorf("list after restart = %q", out)
	}
}

func TestCLI_ExecJoinsArguments(t *testing.T) {
	db := filepath.Join(t.TempDir(), "class.db")

	if _, err := execute(t, db, "", "exec", "create", "tut/T1"); err != nil {
		t.Fatalf("exec create: %v", err)
	}
	out, err := execute(t, db, "", "exec", "events", "tut/")
	if err != nil {
		t.Fatalf("exec events: %v", err)
	}
	if !strings.Contains(out, "T1") {
		t.Errorf("events = %q", out)
	}
}

func TestCLI_ExecFailure(t *testing.T) {
	db := filepath.Join(t.TempDir(), "class.db")

	if _, err := execute(t, db, "", "exec", "delete 3"); err == nil {
		t.Error("deleting from an empty list should fail")
	}
	if _, err := execute(t, db, "", "exec"); err == nil {
		t.Error("exec without a line should fail")
	}
}

func TestCLI_InteractiveShell(t *testing.T) {
	db := filepath.Join(t.TempDir(), "class.db")
	t.Setenv("CLASSMATE_SHELL_PROMPT", "")

	out, err := execute(t, db, "add n/Bob\nnonsense\nexit\n")
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	for _, want := range []string{"New student added: Bob", "Error: ", "Goodbye!"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestCLI_ExportImport(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.db")
	target := filepath.Join(dir, "target.db")
	file := filepath.Join(dir, "out", "class.yaml")

	if _, err := execute(t, source, "", "exec", "add n/Cara"); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if _, err := execute(t, source, "", "export", file); err != nil {
		t.Fatalf("export: %v", err)
	}
	if data, err := os.ReadFile(file); err != nil || !strings.Contains(string(data), "Cara") {
		t.Fatalf("export file = %q (%v)", data, err)
	}

	if _, err := execute(t, target, "", "import", file); err != nil {
		t.Fatalf("import: %v", err)
	}
	out, err := execute(t, target, "", "exec", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Cara") {
		t.Errorf("imported list = %q", out)
	}
}

func TestCLI_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "classmate.json")
	if err := os.WriteFile(cfgPath, []byte(`{"database": {"timeout": "nonsense"}}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := execute(t, filepath.Join(dir, "c.db"), "", "--config", cfgPath, "exec", "list"); err == nil {
		t.Error("an invalid config file should stop startup")
	}
}
