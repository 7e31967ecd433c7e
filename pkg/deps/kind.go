package deps

import (
	"github.com/matzehuels/fonda/pkg/platform"
)

// Kind is the classified form of a dependency. The set of kinds is closed:
// [Package], [PipPackage], [Git], [URL], [LocalPath] and [Editable].
type Kind interface {
	// Requirement returns the installable requirements.txt line.
	Requirement() string
	isKind()
}

// EditableTarget is a kind that may follow an editable flag.
type EditableTarget interface {
	Kind
	isEditableTarget()
}

// Package is a conda-section name with an optional version constraint.
type Package struct {
	Spec string // e.g. "numpy>=1.24.0"
}

// PipPackage is a package destined for pip, either from the pip section or
// from a compact "pip:" entry.
type PipPackage struct {
	Spec string
}

// Git is a VCS reference. URL keeps its "git+" prefix so that
// URL + "@" + Ref reproduces the original text.
type Git struct {
	URL      string // e.g. "git+https://github.com/org/repo.git"
	Ref      string // branch, tag or commit; empty if absent
	Fragment string // trailing "#..." fragment such as "egg=name"; empty if absent
}

// URL is a direct archive or package URL.
type URL struct {
	URL string
}

// LocalPath is a local directory, only valid as an editable target.
type LocalPath struct {
	Path string
}

// Editable is a development install of Target.
type Editable struct {
	Target EditableTarget
}

func (k Package) Requirement() string    { return k.Spec }
func (k PipPackage) Requirement() string { return k.Spec }
func (k URL) Requirement() string        { return k.URL }
func (k LocalPath) Requirement() string  { return k.Path }
func (k Editable) Requirement() string   { return "-e " + k.Target.Requirement() }

func (k Git) Requirement() string {
	s := k.URL
	if k.Ref != "" {
		s += "@" + k.Ref
	}
	if k.Fragment != "" {
		s += "#" + k.Fragment
	}
	return s
}

func (Package) isKind()    {}
func (PipPackage) isKind() {}
func (Git) isKind()        {}
func (URL) isKind()        {}
func (LocalPath) isKind()  {}
func (Editable) isKind()   {}

func (Git) isEditableTarget()       {}
func (URL) isEditableTarget()       {}
func (LocalPath) isEditableTarget() {}

// Spec is one classified dependency.
type Spec struct {
	Raw      string       // The line as it appeared in the document
	Section  Section      // Document list the line came from
	Kind     Kind         // Classified form
	Platform platform.Tag // Platform restriction from the marker comment
}

// Requirement returns the installable line for the spec, with marker
// comments and the "pip:" prefix stripped.
func (s Spec) Requirement() string {
	return s.Kind.Requirement()
}
