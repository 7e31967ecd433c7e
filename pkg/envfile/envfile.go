package envfile

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/fonda/pkg/deps"
	"github.com/matzehuels/fonda/pkg/errors"
)

// Format is an environment document syntax.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// DefaultNames are the file names Find looks for, in order.
var DefaultNames = []string{"environment.yaml", "environment.yml", "environment.toml"}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput,
			"unsupported environment file %q (want .yaml, .yml or .toml)", path)
	}
}

// Find returns the first of DefaultNames that exists in dir.
func Find(dir string) (string, error) {
	paths := FindAll(dir)
	if len(paths) == 0 {
		return "", errors.New(errors.ErrCodeFileNotFound,
			"no environment file in %s (looked for %s)", dir, strings.Join(DefaultNames, ", "))
	}
	return paths[0], nil
}

// FindAll returns every one of DefaultNames that exists in dir, in
// DefaultNames order.
func FindAll(dir string) []string {
	var paths []string
	for _, name := range DefaultNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			paths = append(paths, path)
		}
	}
	return paths
}

// Load reads, validates and parses the document at path.
func Load(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "environment file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// LoadEnvironment loads path and converts it to a deps.Environment.
func LoadEnvironment(path string) (deps.Environment, error) {
	doc, err := Load(path)
	if err != nil {
		return deps.Environment{}, err
	}
	return doc.Environment()
}

// Parse validates data against the environment schema and decodes it.
func Parse(data []byte, format Format) (*Document, error) {
	result, err := Validate(data, format)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &SchemaError{Issues: result.Issues}
	}

	switch format {
	case YAML:
		return parseYAML(data)
	case TOML:
		return parseTOML(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown format %q", format)
	}
}
