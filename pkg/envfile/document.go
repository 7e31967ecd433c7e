package envfile

import (
	"github.com/matzehuels/fonda/pkg/deps"
	"github.com/matzehuels/fonda/pkg/errors"
)

// Document keys with a meaning. Other keys are kept in Fields but ignored.
const (
	keyName          = "name"
	keyPythonVersion = "python_version"
	keyDependencies  = "dependencies"
	keyPip           = "pip"
)

// Document is a parsed environment document with its top-level keys in
// document order.
type Document struct {
	Path   string  // Source file; empty when parsed from bytes
	Format Format  // Syntax the document was read from
	Fields []Field // Top-level keys in document order
}

// Field is one top-level key. Exactly one of Scalar and Items is
// meaningful, as indicated by IsList.
type Field struct {
	Key    string
	Scalar string
	Items  []Item
	IsList bool
}

// Item is one list entry. Entries of a nested "pip" mapping inside a list
// carry Nested == "pip".
type Item struct {
	Text   string
	Nested string
}

// Get returns the field named key.
func (d *Document) Get(key string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Environment converts the document into the resolver's input.
//
// Entries of nested pip lists inside dependencies, and entries of the
// top-level pip list, form the pip section in the order they appear.
func (d *Document) Environment() (deps.Environment, error) {
	var env deps.Environment
	for _, f := range d.Fields {
		switch f.Key {
		case keyName:
			env.Name = f.Scalar
		case keyPythonVersion:
			env.PythonVersion = f.Scalar
		case keyDependencies:
			for _, it := range f.Items {
				if it.Nested == keyPip {
					env.Pip = append(env.Pip, it.Text)
				} else {
					env.Dependencies = append(env.Dependencies, it.Text)
				}
			}
		case keyPip:
			for _, it := range f.Items {
				env.Pip = append(env.Pip, it.Text)
			}
		}
	}

	if err := errors.ValidateEnvName(env.Name); err != nil {
		return deps.Environment{}, err
	}
	if err := errors.ValidatePythonVersion(env.PythonVersion); err != nil {
		return deps.Environment{}, err
	}
	return env, nil
}
