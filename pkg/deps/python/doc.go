// Package python converts the dependency table of a Poetry pyproject.toml
// into a pip requirements file.
//
// # Manifest
//
// [LoadPyproject] reads the manifest and returns the entries of
// [tool.poetry.dependencies] in the order they appear in the file. Each entry
// is a [Dependency] whose [Spec] records whether the TOML value was a plain
// version string or a table:
//
//	[tool.poetry.dependencies]
//	python = "^3.10"                                              # skipped
//	requests = "2.31.0"                                           # Simple
//	urllib3 = { version = ">=1.0", extras = ["security", "socks"] } # Detailed
//
// # Requirements
//
// [Requirements] turns dependencies into lines:
//
//	requests==2.31.0
//	urllib3[security,socks]>=1.0
//
// Version strings are copied as written. A caret constraint such as "^3.10"
// produces "pkg==^3.10"; no translation to PEP 440 is attempted.
//
// # Converting
//
// [Convert] does the whole job for one file pair. The output is rendered in
// memory first and replaces the destination with a rename, so a failed run
// leaves any existing requirements file untouched.
//
//	res, err := python.Convert("pyproject.toml", "requirements.txt")
//	if errors.Is(err, errors.ErrCodeMissingSection) {
//	    // not a Poetry project
//	}
package python
