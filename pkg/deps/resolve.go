package deps

import (
	"fmt"

	"github.com/matzehuels/fonda/pkg/platform"
)

// Resolve classifies every entry of env and returns the manifest for host.
//
// Entries from the dependencies section come first, then entries from the
// pip section, each in document order. Entries restricted to another
// platform are dropped, and a requirement identical to an earlier one is
// dropped as well. The first classification error aborts resolution.
func Resolve(env Environment, host platform.Tag, opts Options) (Manifest, error) {
	opts = opts.WithDefaults()

	sections := []struct {
		section Section
		lines   []string
	}{
		{Conda, env.Dependencies},
		{Pip, env.Pip},
	}

	var m Manifest
	seen := make(map[string]bool)
	for _, s := range sections {
		for i, raw := range s.lines {
			specs, err := Classify(raw, s.section)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", s.section, i, err)
			}
			for _, spec := range specs {
				req := spec.Requirement()
				if !spec.Platform.Matches(host) {
					opts.Logger("skip %q: restricted to %s", req, spec.Platform)
					continue
				}
				if seen[req] {
					opts.Logger("skip %q: duplicate", req)
					continue
				}
				seen[req] = true
				m = append(m, req)
			}
		}
	}
	return m, nil
}
