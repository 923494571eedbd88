package python

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/poetryreqs/pkg/errors"
)

// DefaultRequirements is the output written when no path is given.
const DefaultRequirements = "requirements.txt"

// Requirement formats d as a requirements line: "name==version" for a
// simple spec, "name[extras]version" for a detailed one, and the bare name
// when there is no version.
func (d Dependency) Requirement() string {
	if d.Spec.Kind == Simple {
		if d.Spec.Version == "" {
			return d.Name
		}
		return d.Name + "==" + d.Spec.Version
	}

	var b strings.Builder
	b.WriteString(d.Name)
	if len(d.Spec.Extras) > 0 {
		b.WriteByte('[')
		b.WriteString(strings.Join(d.Spec.Extras, ","))
		b.WriteByte(']')
	}
	b.WriteString(d.Spec.Version)
	return b.String()
}

// Requirements formats deps in order, leaving out the python entry.
func Requirements(deps []Dependency) []string {
	lines := make([]string, 0, len(deps))
	for _, d := range deps {
		if d.IsRuntime() {
			continue
		}
		lines = append(lines, d.Requirement())
	}
	return lines
}

// Render joins lines with newlines. No newline is added after the last line.
func Render(lines []string) []byte {
	return []byte(strings.Join(lines, "\n"))
}

// WriteRequirements replaces the file at path with content. The data is
// written to a temporary file next to path and renamed into place, so
// readers never see a partial file and a failed write leaves the old one.
func WriteRequirements(path string, content []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	// CreateTemp uses 0600.
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "replace %s", path)
	}
	return nil
}

// WriteTo writes content to w, for output that does not go to a file.
func WriteTo(w io.Writer, content []byte) error {
	if _, err := w.Write(content); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write requirements")
	}
	return nil
}
