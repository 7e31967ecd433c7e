package deps

import (
	"testing"

	"github.com/matzehuels/fonda/pkg/errors"
	"github.com/matzehuels/fonda/pkg/platform"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		section  Section
		want     []Kind
		platform platform.Tag
	}{
		{
			name:    "conda package",
			raw:     "numpy>=1.24.0",
			section: Conda,
			want:    []Kind{Package{Spec: "numpy>=1.24.0"}},
		},
		{
			name:    "pip section package",
			raw:     "  requests==2.31.0  ",
			section: Pip,
			want:    []Kind{PipPackage{Spec: "requests==2.31.0"}},
		},
		{
			name:     "windows marker",
			raw:      "pywin32>=300 # [win]",
			section:  Conda,
			want:     []Kind{Package{Spec: "pywin32>=300"}},
			platform: platform.Windows,
		},
		{
			name:     "marker is case and space tolerant",
			raw:      "pyobjc  #  [ MacOS ]",
			section:  Pip,
			want:     []Kind{PipPackage{Spec: "pyobjc"}},
			platform: platform.MacOS,
		},
		{
			name:     "darwin alias",
			raw:      "appnope # [darwin]",
			section:  Conda,
			want:     []Kind{Package{Spec: "appnope"}},
			platform: platform.MacOS,
		},
		{
			name:    "plain comment is not a marker",
			raw:     "scipy # pinned for the solver",
			section: Conda,
			want:    []Kind{Package{Spec: "scipy"}},
		},
		{
			name:    "git with ref",
			raw:     "git+https://github.com/org/repo.git@v1.0.0",
			section: Pip,
			want:    []Kind{Git{URL: "git+https://github.com/org/repo.git", Ref: "v1.0.0"}},
		},
		{
			name:    "git without ref",
			raw:     "git+https://github.com/org/repo.git",
			section: Conda,
			want:    []Kind{Git{URL: "git+https://github.com/org/repo.git"}},
		},
		{
			name:    "git with credentials in host",
			raw:     "git+ssh://git@github.com/org/repo.git@main",
			section: Pip,
			want:    []Kind{Git{URL: "git+ssh://git@github.com/org/repo.git", Ref: "main"}},
		},
		{
			name:    "git credentials without ref",
			raw:     "git+ssh://git@github.com/org/repo.git",
			section: Pip,
			want:    []Kind{Git{URL: "git+ssh://git@github.com/org/repo.git"}},
		},
		{
			name:    "git scp form",
			raw:     "git+git@github.com:org/repo.git@abc123",
			section: Pip,
			want:    []Kind{Git{URL: "git+git@github.com:org/repo.git", Ref: "abc123"}},
		},
		{
			name:    "git fragment is not a comment",
			raw:     "git+https://github.com/org/repo.git@v2#egg=repo",
			section: Pip,
			want:    []Kind{Git{URL: "git+https://github.com/org/repo.git", Ref: "v2", Fragment: "egg=repo"}},
		},
		{
			name:     "git with marker",
			raw:      "git+https://github.com/org/winlib.git@v1 # [win]",
			section:  Pip,
			want:     []Kind{Git{URL: "git+https://github.com/org/winlib.git", Ref: "v1"}},
			platform: platform.Windows,
		},
		{
			name:    "url",
			raw:     "https://files.example.com/pkg-1.0.tar.gz",
			section: Pip,
			want:    []Kind{URL{URL: "https://files.example.com/pkg-1.0.tar.gz"}},
		},
		{
			name:    "http url in conda section",
			raw:     "http://mirror.local/wheels/pkg-1.0-py3-none-any.whl",
			section: Conda,
			want:    []Kind{URL{URL: "http://mirror.local/wheels/pkg-1.0-py3-none-any.whl"}},
		},
		{
			name:    "editable current dir",
			raw:     "-e .",
			section: Pip,
			want:    []Kind{Editable{Target: LocalPath{Path: "."}}},
		},
		{
			name:    "editable relative path",
			raw:     "-e ./path/to/pkg",
			section: Pip,
			want:    []Kind{Editable{Target: LocalPath{Path: "./path/to/pkg"}}},
		},
		{
			name:    "editable long flag",
			raw:     "--editable=../shared",
			section: Pip,
			want:    []Kind{Editable{Target: LocalPath{Path: "../shared"}}},
		},
		{
			name:    "editable git",
			raw:     "-e git+https://github.com/org/repo.git@dev#egg=repo",
			section: Pip,
			want: []Kind{Editable{Target: Git{
				URL: "git+https://github.com/org/repo.git", Ref: "dev", Fragment: "egg=repo",
			}}},
		},
		{
			name:    "editable url",
			raw:     "-e https://example.com/src.zip",
			section: Pip,
			want:    []Kind{Editable{Target: URL{URL: "https://example.com/src.zip"}}},
		},
		{
			name:    "compact pip list",
			raw:     "pip:requests, httpx ,rich",
			section: Conda,
			want: []Kind{
				PipPackage{Spec: "requests"},
				PipPackage{Spec: "httpx"},
				PipPackage{Spec: "rich"},
			},
		},
		{
			name:    "compact single name",
			raw:     "pip: black",
			section: Conda,
			want:    []Kind{PipPackage{Spec: "black"}},
		},
		{
			name:    "compact constraint with comma",
			raw:     "pip:numpy>=1.24,<2,requests",
			section: Conda,
			want: []Kind{
				PipPackage{Spec: "numpy>=1.24,<2"},
				PipPackage{Spec: "requests"},
			},
		},
		{
			name:    "compact git entry",
			raw:     "pip:git+https://github.com/org/repo.git@v1",
			section: Conda,
			want:    []Kind{Git{URL: "git+https://github.com/org/repo.git", Ref: "v1"}},
		},
		{
			name:     "compact with marker",
			raw:      "pip:uvloop,gunicorn # [linux]",
			section:  Conda,
			want:     []Kind{PipPackage{Spec: "uvloop"}, PipPackage{Spec: "gunicorn"}},
			platform: platform.Linux,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs, err := Classify(tt.raw, tt.section)
			if err != nil {
				t.Fatalf("Classify(%q) error: %v", tt.raw, err)
			}
			if len(specs) != len(tt.want) {
				t.Fatalf("Classify(%q) returned %d specs, want %d", tt.raw, len(specs), len(tt.want))
			}
			for i, spec := range specs {
				if spec.Kind != tt.want[i] {
					t.Errorf("spec[%d].Kind = %#v, want %#v", i, spec.Kind, tt.want[i])
				}
				if spec.Platform != tt.platform {
					t.Errorf("spec[%d].Platform = %v, want %v", i, spec.Platform, tt.platform)
				}
				if spec.Raw != tt.raw {
					t.Errorf("spec[%d].Raw = %q, want %q", i, spec.Raw, tt.raw)
				}
				if spec.Section != tt.section {
					t.Errorf("spec[%d].Section = %v, want %v", i, spec.Section, tt.section)
				}
			}
		})
	}
}

func TestClassifySkip(t *testing.T) {
	lines := []string{"", "   ", "\t", "# just a comment", "  # [win]", "#[linux]"}
	for _, line := range lines {
		specs, err := Classify(line, Conda)
		if err != nil {
			t.Errorf("Classify(%q) error: %v", line, err)
		}
		if len(specs) != 0 {
			t.Errorf("Classify(%q) = %v, want no specs", line, specs)
		}
	}
}

func TestClassifyErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		code errors.Code
	}{
		{"unknown marker", "pywin32 # [windows]", errors.ErrCodeUnknownPlatformMarker},
		{"selector expression", "pywin32 # [not win]", errors.ErrCodeUnknownPlatformMarker},
		{"two markers", "pkg # [win] [linux]", errors.ErrCodeUnknownPlatformMarker},
		{"empty marker", "pkg # []", errors.ErrCodeUnknownPlatformMarker},
		{"empty git ref", "git+https://github.com/org/repo.git@", errors.ErrCodeMalformedGitRef},
		{"git ref with space", "git+https://github.com/org/repo.git@v1 extra", errors.ErrCodeMalformedGitRef},
		{"bare git prefix", "git+", errors.ErrCodeEmptySpec},
		{"git ref without url", "git+@v1", errors.ErrCodeEmptySpec},
		{"bare pip prefix", "pip:", errors.ErrCodeEmptySpec},
		{"blank pip list", "pip:   ", errors.ErrCodeEmptySpec},
		{"empty pip item", "pip:requests,,httpx", errors.ErrCodeEmptySpec},
		{"editable without target", "-e", errors.ErrCodeEmptySpec},
		{"editable with only comment", "-e # [linux]", errors.ErrCodeEmptySpec},
		{"url without host", "https://", errors.ErrCodeEmptySpec},
		{"double editable", "-e -e ./pkg", errors.ErrCodeDuplicateEditableFlag},
		{"mixed editable flags", "-e --editable ./pkg", errors.ErrCodeDuplicateEditableFlag},
		{"editable bad git", "-e git+https://github.com/org/repo.git@", errors.ErrCodeMalformedGitRef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs, err := Classify(tt.raw, Pip)
			if err == nil {
				t.Fatalf("Classify(%q) = %v, want error", tt.raw, specs)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Classify(%q) code = %v, want %v (err: %v)", tt.raw, errors.GetCode(err), tt.code, err)
			}
			ce, ok := err.(*ClassificationError)
			if !ok {
				t.Fatalf("Classify(%q) error type = %T, want *ClassificationError", tt.raw, err)
			}
			if ce.Line != tt.raw {
				t.Errorf("ClassificationError.Line = %q, want %q", ce.Line, tt.raw)
			}
		})
	}
}

func TestGitRoundTrip(t *testing.T) {
	inputs := []string{
		"git+https://host/repo.git@v1.0.0",
		"git+https://github.com/org/repo@feature/new-parser",
		"git+ssh://git@github.com/org/repo.git@0f3c2a1",
	}
	for _, in := range inputs {
		specs, err := Classify(in, Pip)
		if err != nil {
			t.Fatalf("Classify(%q) error: %v", in, err)
		}
		g, ok := specs[0].Kind.(Git)
		if !ok {
			t.Fatalf("Classify(%q) kind = %T, want Git", in, specs[0].Kind)
		}
		if got := g.URL + "@" + g.Ref; got != in {
			t.Errorf("URL+@+Ref = %q, want %q", got, in)
		}
		if got := specs[0].Requirement(); got != in {
			t.Errorf("Requirement() = %q, want %q", got, in)
		}
	}
}

func TestRequirement(t *testing.T) {
	tests := []struct {
		raw     string
		section Section
		want    []string
	}{
		{"numpy>=1.24.0 # [linux]", Conda, []string{"numpy>=1.24.0"}},
		{"pip:requests,httpx", Conda, []string{"requests", "httpx"}},
		{"-e .", Pip, []string{"-e ."}},
		{"-e ./path/to/pkg  # local checkout", Pip, []string{"-e ./path/to/pkg"}},
		{"--editable ../lib", Pip, []string{"-e ../lib"}},
		{"git+https://h/r.git@v1#egg=r", Pip, []string{"git+https://h/r.git@v1#egg=r"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			specs, err := Classify(tt.raw, tt.section)
			if err != nil {
				t.Fatalf("Classify(%q) error: %v", tt.raw, err)
			}
			if len(specs) != len(tt.want) {
				t.Fatalf("got %d specs, want %d", len(specs), len(tt.want))
			}
			for i, spec := range specs {
				if got := spec.Requirement(); got != tt.want[i] {
					t.Errorf("Requirement()[%d] = %q, want %q", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestSplitComment(t *testing.T) {
	tests := []struct {
		line, text, comment string
	}{
		{"pkg # [win]", "pkg ", " [win]"},
		{"# only", "", " only"},
		{"repo.git#egg=x", "repo.git#egg=x", ""},
		{"repo.git#egg=x\t# [osx]", "repo.git#egg=x\t", " [osx]"},
		{"pkg", "pkg", ""},
	}
	for _, tt := range tests {
		text, comment := splitComment(tt.line)
		if text != tt.text || comment != tt.comment {
			t.Errorf("splitComment(%q) = (%q, %q), want (%q, %q)", tt.line, text, comment, tt.text, tt.comment)
		}
	}
}
