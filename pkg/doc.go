// Package pkg provides the libraries behind fonda, which turns conda-style
// environment files into Python virtual environments.
//
// # Overview
//
// fonda reads an environment file, resolves its dependency lines for one
// platform into a flat requirements manifest and hands that manifest to an
// installer. The pkg directory is organized by stage:
//
//  1. [envfile] - Load YAML or TOML environment documents
//  2. [platform] - Host detection and platform marker tags
//  3. [deps] - Classify dependency lines, resolve and write the manifest
//  4. [orchestrator] - Create the environment and install the manifest
//  5. [errors], [observability], [buildinfo] - Shared support
//
// # Architecture
//
// The data flow through fonda:
//
//	environment.yaml / environment.toml
//	         ↓
//	    [envfile] package (schema check, ordered fields)
//	         ↓
//	    [deps] package (classify, filter by [platform], dedup)
//	         ↓
//	    requirements.txt
//	         ↓
//	    [orchestrator] package (uv, falling back to python -m venv)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/fonda/pkg/deps"
//	    "github.com/matzehuels/fonda/pkg/envfile"
//	    "github.com/matzehuels/fonda/pkg/orchestrator"
//	    "github.com/matzehuels/fonda/pkg/platform"
//	)
//
//	env, _ := envfile.LoadEnvironment("environment.yaml")
//	host, _ := platform.Current()
//	manifest, _ := deps.Resolve(env, host, deps.Options{})
//
//	o := orchestrator.New(&orchestrator.UV{}, &orchestrator.Venv{Host: host}, orchestrator.Options{})
//	report, err := o.Run(ctx, env, manifest)
//
// [envfile]: https://pkg.go.dev/github.com/matzehuels/fonda/pkg/envfile
// [platform]: https://pkg.go.dev/github.com/matzehuels/fonda/pkg/platform
// [deps]: https://pkg.go.dev/github.com/matzehuels/fonda/pkg/deps
// [orchestrator]: https://pkg.go.dev/github.com/matzehuels/fonda/pkg/orchestrator
// [errors]: https://pkg.go.dev/github.com/matzehuels/fonda/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/fonda/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/fonda/pkg/buildinfo
package pkg
