package deps

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/fonda/pkg/errors"
	"github.com/matzehuels/fonda/pkg/platform"
)

func sampleEnv() Environment {
	return Environment{
		Name:          "analysis",
		PythonVersion: "3.11",
		Dependencies: []string{
			"numpy>=1.24.0",
			"pywin32>=300 # [win]",
			"# plotting",
			"matplotlib",
			"pip:requests,httpx",
			"uvloop # [linux]",
			"pyobjc # [osx]",
		},
		Pip: []string{
			"requests",
			"git+https://github.com/org/repo.git@v1.0.0",
			"-e .",
			"rich # [linux]",
		},
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		host platform.Tag
		want Manifest
	}{
		{
			host: platform.Windows,
			want: Manifest{
				"numpy>=1.24.0", "pywin32>=300", "matplotlib", "requests", "httpx",
				"git+https://github.com/org/repo.git@v1.0.0", "-e .",
			},
		},
		{
			host: platform.Linux,
			want: Manifest{
				"numpy>=1.24.0", "matplotlib", "requests", "httpx", "uvloop",
				"git+https://github.com/org/repo.git@v1.0.0", "-e .", "rich",
			},
		},
		{
			host: platform.MacOS,
			want: Manifest{
				"numpy>=1.24.0", "matplotlib", "requests", "httpx", "pyobjc",
				"git+https://github.com/org/repo.git@v1.0.0", "-e .",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.host.String(), func(t *testing.T) {
			got, err := Resolve(sampleEnv(), tt.host, Options{})
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestResolveUnmarkedSurvivesEverywhere(t *testing.T) {
	env := Environment{Dependencies: []string{"pandas", "scipy # solver"}, Pip: []string{"typer"}}
	for _, host := range []platform.Tag{platform.Windows, platform.Linux, platform.MacOS} {
		got, err := Resolve(env, host, Options{})
		if err != nil {
			t.Fatalf("Resolve(%v) error: %v", host, err)
		}
		if want := (Manifest{"pandas", "scipy", "typer"}); !reflect.DeepEqual(got, want) {
			t.Errorf("Resolve(%v) = %q, want %q", host, got, want)
		}
	}
}

func TestResolveMarkedEntry(t *testing.T) {
	env := Environment{Dependencies: []string{"pywin32>=300 # [win]"}}
	for _, host := range []platform.Tag{platform.Windows, platform.Linux, platform.MacOS} {
		got, err := Resolve(env, host, Options{})
		if err != nil {
			t.Fatalf("Resolve(%v) error: %v", host, err)
		}
		present := len(got) == 1 && got[0] == "pywin32>=300"
		if present != (host == platform.Windows) {
			t.Errorf("Resolve(%v) = %q, present = %v", host, got, present)
		}
	}
}

func TestResolveOrdering(t *testing.T) {
	env := Environment{
		Dependencies: []string{"c", "a", "b"},
		Pip:          []string{"z", "y"},
	}
	got, err := Resolve(env, platform.Linux, Options{})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if want := (Manifest{"c", "a", "b", "z", "y"}); !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveDedupKeepsFirst(t *testing.T) {
	env := Environment{
		Dependencies: []string{"requests", "numpy", "pip:requests,flask"},
		Pip:          []string{"flask", "numpy", "click"},
	}
	var logs []string
	got, err := Resolve(env, platform.Linux, Options{
		Logger: func(msg string, args ...any) { logs = append(logs, fmt.Sprintf(msg, args...)) },
	})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if want := (Manifest{"requests", "numpy", "flask", "click"}); !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
	if len(logs) != 3 {
		t.Errorf("logged %d skips, want 3: %q", len(logs), logs)
	}
}

func TestResolveFailsFast(t *testing.T) {
	env := Environment{
		Dependencies: []string{"numpy"},
		Pip:          []string{"requests", "git+https://github.com/org/repo.git@", "flask"},
	}
	got, err := Resolve(env, platform.Linux, Options{})
	if err == nil {
		t.Fatalf("Resolve() = %q, want error", got)
	}
	if got != nil {
		t.Errorf("Resolve() returned partial manifest %q", got)
	}
	if !errors.Is(err, errors.ErrCodeMalformedGitRef) {
		t.Errorf("Resolve() code = %v, want %v", errors.GetCode(err), errors.ErrCodeMalformedGitRef)
	}
	if !strings.Contains(err.Error(), "pip[1]") {
		t.Errorf("Resolve() error %q should name the failing entry", err)
	}
	if !strings.Contains(err.Error(), "git+https://github.com/org/repo.git@") {
		t.Errorf("Resolve() error %q should carry the raw line", err)
	}
}

func TestResolveMarkerErrorOnOtherPlatform(t *testing.T) {
	// An unknown marker fails even when the host would have filtered the line.
	env := Environment{Dependencies: []string{"pywin32 # [windows]"}}
	if _, err := Resolve(env, platform.Linux, Options{}); !errors.Is(err, errors.ErrCodeUnknownPlatformMarker) {
		t.Errorf("Resolve() error = %v, want %v", err, errors.ErrCodeUnknownPlatformMarker)
	}
}

func TestResolveEditablePathsPreserved(t *testing.T) {
	env := Environment{Pip: []string{"-e .", "-e ./path/to/pkg", "-e ../../odd path/pkg"}}
	got, err := Resolve(env, platform.MacOS, Options{})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	want := Manifest{"-e .", "-e ./path/to/pkg", "-e ../../odd path/pkg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveEmpty(t *testing.T) {
	got, err := Resolve(Environment{Name: "empty"}, platform.Linux, Options{})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Resolve() = %q, want empty", got)
	}
}
