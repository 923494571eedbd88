package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	got := String()
	if !strings.HasPrefix(got, "version: v1.2.3\n") {
		t.Errorf("String() = %q, want version line first", got)
	}
	if !strings.Contains(got, "commit: "+Commit) {
		t.Errorf("String() = %q, missing commit", got)
	}
}

func TestTemplate(t *testing.T) {
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version ") {
		t.Errorf("Template() = %q, want cobra name placeholder", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("Template() should end with a newline")
	}
}
