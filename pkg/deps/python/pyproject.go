package python

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/poetryreqs/pkg/errors"
)

// DefaultManifest is the manifest read when no path is given.
const DefaultManifest = "pyproject.toml"

// runtimeName is the key Poetry uses for the interpreter constraint.
const runtimeName = "python"

// sectionPath is the key path of the dependency table.
var sectionPath = []string{"tool", "poetry", "dependencies"}

// SectionName is sectionPath in TOML header form.
const SectionName = "[tool.poetry.dependencies]"

// SpecKind tells how a dependency was declared.
type SpecKind int

const (
	// Simple is a bare version string: requests = "2.31.0".
	Simple SpecKind = iota
	// Detailed is a table: urllib3 = { version = "...", extras = [...] }.
	Detailed
)

func (k SpecKind) String() string {
	if k == Detailed {
		return "detailed"
	}
	return "simple"
}

// Spec is the value side of a dependency entry. For Simple specs only
// Version is set. Detailed specs default to an empty Version and no Extras
// when the table omits them; other table keys (optional, markers, source)
// are not kept.
type Spec struct {
	Kind    SpecKind
	Version string
	Extras  []string
}

// Dependency is one entry of the dependency table.
type Dependency struct {
	Name string
	Spec Spec
}

// IsRuntime reports whether d is the interpreter constraint rather than an
// installable package.
func (d Dependency) IsRuntime() bool {
	return strings.EqualFold(d.Name, runtimeName)
}

// Pyproject is the part of a pyproject.toml the converter cares about.
type Pyproject struct {
	// Path is the file the manifest was loaded from, empty for ParsePyproject.
	Path string
	// Name is tool.poetry.name, falling back to project.name.
	Name string
	// Dependencies are in document order.
	Dependencies []Dependency
}

// LoadPyproject reads and decodes the manifest at path.
//
// A missing file yields ErrCodeFileNotFound, invalid TOML or an
// unsupported dependency value ErrCodeInvalidManifest, and a document
// without the dependency table ErrCodeMissingSection.
func LoadPyproject(path string) (*Pyproject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "the file %s does not exist", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	p, err := parse(data, path)
	if err != nil {
		return nil, err
	}
	p.Path = path
	return p, nil
}

// ParsePyproject decodes manifest content. Errors are coded like those of
// LoadPyproject.
func ParsePyproject(data []byte) (*Pyproject, error) {
	return parse(data, DefaultManifest)
}

func parse(data []byte, source string) (*Pyproject, error) {
	var doc map[string]any
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", source)
	}

	table, ok := lookupTable(doc, sectionPath)
	if !ok {
		return nil, errors.New(errors.ErrCodeMissingSection,
			"dependencies not found in %s under %s", source, SectionName)
	}

	names := orderedKeys(md, table)
	p := &Pyproject{
		Name:         projectName(doc),
		Dependencies: make([]Dependency, 0, len(names)),
	}
	for _, name := range names {
		spec, err := decodeSpec(md, name, table[name])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "%s: dependency %q", source, name)
		}
		p.Dependencies = append(p.Dependencies, Dependency{Name: name, Spec: spec})
	}
	return p, nil
}

// lookupTable walks path through nested tables. Any missing or non-table
// segment reports false.
func lookupTable(doc map[string]any, path []string) (map[string]any, bool) {
	cur := doc
	for _, key := range path {
		next, ok := cur[key].(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// orderedKeys returns the keys of the dependency table in the order the
// decoder first saw them. Keys below the table (inline table fields,
// sub-table headers) are folded into their dependency's position.
func orderedKeys(md toml.MetaData, table map[string]any) []string {
	depth := len(sectionPath)
	seen := make(map[string]bool, len(table))
	keys := make([]string, 0, len(table))

	for _, k := range md.Keys() {
		if len(k) <= depth || !slices.Equal([]string(k[:depth]), sectionPath) {
			continue
		}
		name := k[depth]
		if _, ok := table[name]; !ok || seen[name] {
			continue
		}
		seen[name] = true
		keys = append(keys, name)
	}

	// Every table key is normally reported by MetaData; anything it missed
	// goes last in sorted order so output stays deterministic.
	if len(keys) < len(table) {
		var rest []string
		for name := range table {
			if !seen[name] {
				rest = append(rest, name)
			}
		}
		slices.Sort(rest)
		keys = append(keys, rest...)
	}
	return keys
}

func decodeSpec(md toml.MetaData, name string, v any) (Spec, error) {
	switch v := v.(type) {
	case string:
		return Spec{Kind: Simple, Version: v}, nil
	case map[string]any:
		spec := Spec{Kind: Detailed}
		if raw, ok := v["version"]; ok {
			s, ok := raw.(string)
			if !ok {
				return Spec{}, fmt.Errorf("version must be a string, got %s", tomlType(md, name, "version"))
			}
			spec.Version = s
		}
		if raw, ok := v["extras"]; ok {
			items, ok := raw.([]any)
			if !ok {
				return Spec{}, fmt.Errorf("extras must be an array, got %s", tomlType(md, name, "extras"))
			}
			for _, item := range items {
				s, ok := item.(string)
				if !ok {
					return Spec{}, stderrors.New("extras must contain only strings")
				}
				spec.Extras = append(spec.Extras, s)
			}
		}
		return spec, nil
	default:
		return Spec{}, fmt.Errorf("unsupported value of type %s", tomlType(md, name))
	}
}

// tomlType names the TOML type of a key below the dependency table.
func tomlType(md toml.MetaData, key ...string) string {
	full := append(slices.Clone(sectionPath), key...)
	if t := md.Type(full...); t != "" {
		return strings.ToLower(t)
	}
	return "unknown"
}

func projectName(doc map[string]any) string {
	if poetry, ok := lookupTable(doc, sectionPath[:2]); ok {
		if name, ok := poetry["name"].(string); ok && name != "" {
			return name
		}
	}
	if project, ok := lookupTable(doc, []string{"project"}); ok {
		if name, ok := project["name"].(string); ok {
			return name
		}
	}
	return ""
}
