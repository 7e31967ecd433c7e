package deps

// Section identifies the document list a dependency line came from.
type Section int

const (
	// Conda is the "dependencies" list.
	Conda Section = iota
	// Pip is the "pip" list.
	Pip
)

// String returns the document key of the section.
func (s Section) String() string {
	if s == Pip {
		return "pip"
	}
	return "dependencies"
}

// Environment is a loaded environment description.
type Environment struct {
	Name          string   // Environment (and virtualenv directory) name
	PythonVersion string   // Optional interpreter constraint, e.g. "3.11"
	Dependencies  []string // Raw lines of the dependencies section, in order
	Pip           []string // Raw lines of the pip section, in order
}

// Options configures resolution behavior.
type Options struct {
	Logger func(string, ...any) // Debug callback for dropped entries (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}
