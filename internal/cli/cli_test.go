package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/poetryreqs/pkg/errors"
)

const manifest = `[tool.poetry.dependencies]
python = "^3.10"
requests = "2.31.0"
flask = ""
`

// execute runs the root command with args and returns what it printed and
// what it logged.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), logs.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

func TestRoot_Defaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, "pyproject.toml", manifest)

	out, logs, err := execute(t)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "requirements.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "requests==2.31.0\nflask" {
		t.Errorf("requirements.txt = %q", data)
	}
	if !strings.Contains(out, "Requirements written to requirements.txt") {
		t.Errorf("output = %q, want confirmation", out)
	}
	if !strings.Contains(logs, "Converted 2 dependencies") {
		t.Errorf("logs = %q, want progress line", logs)
	}
}

func TestRoot_ExplicitPaths(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "backend.toml")
	outPath := filepath.Join(dir, "reqs.txt")
	writeFile(t, in, manifest)

	out, _, err := execute(t, in, "--output", outPath)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("output not written: %v", err)
	}
	if !strings.Contains(out, outPath) {
		t.Errorf("output = %q, want path %q", out, outPath)
	}
}

func TestRoot_Stdout(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "pyproject.toml")
	writeFile(t, in, manifest)

	out, _, err := execute(t, in, "-o", "-")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if out != "requests==2.31.0\nflask" {
		t.Errorf("stdout = %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "-")); !os.IsNotExist(err) {
		t.Error("no file named - should be created")
	}
}

func TestRoot_Verbose(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "pyproject.toml")
	writeFile(t, in, manifest)

	_, logs, err := execute(t, in, "-o", filepath.Join(dir, "requirements.txt"), "-v")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	for _, want := range []string{"Reading manifest", "Skipped runtime constraint"} {
		if !strings.Contains(logs, want) {
			t.Errorf("logs = %q, want %q", logs, want)
		}
	}
}

func TestRoot_Errors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string // empty means the file is not created
		code     errors.Code
	}{
		{"not found", "", errors.ErrCodeFileNotFound},
		{"missing section", "[tool.poetry]\n", errors.ErrCodeMissingSection},
		{"invalid toml", "[tool.poetry\n", errors.ErrCodeInvalidManifest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			in := filepath.Join(dir, "pyproject.toml")
			if tt.manifest != "" {
				writeFile(t, in, tt.manifest)
			}
			outPath := filepath.Join(dir, "requirements.txt")

			_, _, err := execute(t, in, "-o", outPath)
			if !errors.Is(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
			if _, err := os.Stat(outPath); !os.IsNotExist(err) {
				t.Error("output should not be written on failure")
			}
		})
	}
}

func TestRoot_TooManyArgs(t *testing.T) {
	if _, _, err := execute(t, "a.toml", "b.toml"); err == nil {
		t.Error("expected error for two positional arguments")
	}
}

func TestRoot_Version(t *testing.T) {
	out, _, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.HasPrefix(out, appName+" version ") {
		t.Errorf("version output = %q", out)
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, _, err := execute(t, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s failed: %v", shell, err)
			}
			if !strings.Contains(out, appName) {
				t.Errorf("completion %s output does not mention %s", shell, appName)
			}
		})
	}

	if _, _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}
