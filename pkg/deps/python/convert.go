package python

import "io"

// Result summarizes a conversion.
type Result struct {
	// Manifest is the loaded pyproject.
	Manifest *Pyproject
	// Output is the path written, or "" when writing to an io.Writer.
	Output string
	// Lines are the requirements written, in order.
	Lines []string
	// Skipped are the dependency names left out (the python entry).
	Skipped []string
}

// Convert reads the manifest at manifestPath and replaces outputPath with
// the equivalent requirements file. Nothing is written unless the whole
// manifest converts.
func Convert(manifestPath, outputPath string) (*Result, error) {
	res, content, err := prepare(manifestPath)
	if err != nil {
		return nil, err
	}
	if err := WriteRequirements(outputPath, content); err != nil {
		return nil, err
	}
	res.Output = outputPath
	return res, nil
}

// ConvertTo is like Convert but writes the requirements to w.
func ConvertTo(manifestPath string, w io.Writer) (*Result, error) {
	res, content, err := prepare(manifestPath)
	if err != nil {
		return nil, err
	}
	if err := WriteTo(w, content); err != nil {
		return nil, err
	}
	return res, nil
}

func prepare(manifestPath string) (*Result, []byte, error) {
	p, err := LoadPyproject(manifestPath)
	if err != nil {
		return nil, nil, err
	}

	var skipped []string
	for _, d := range p.Dependencies {
		if d.IsRuntime() {
			skipped = append(skipped, d.Name)
		}
	}
	lines := Requirements(p.Dependencies)

	return &Result{Manifest: p, Lines: lines, Skipped: skipped}, Render(lines), nil
}
