// Package envfile loads environment documents.
//
// An environment document names a virtual environment and lists its
// dependencies. Two formats are read:
//
//	# environment.yaml
//	name: analysis
//	python_version: "3.11"
//	dependencies:
//	  - numpy>=1.24
//	  - pywin32          # [win]
//	  - pip:
//	      - requests
//	pip:
//	  - -e ./tools
//
//	# environment.toml
//	name = "analysis"
//	python_version = "3.11"
//	dependencies = ["numpy>=1.24", "pywin32 # [win]", { pip = ["requests"] }]
//	pip = ["-e ./tools"]
//
// In YAML a platform marker is an ordinary trailing comment and is
// re-attached to its entry while loading. TOML discards comments, so there
// the marker goes inside the string.
//
// Documents are checked against an embedded JSON schema before use. Keys are
// kept in document order: nested "pip" lists inside dependencies join the
// pip section at the position where they appear.
package envfile
