// Package platform maps host operating systems and inline marker tags onto
// the small set of platforms a dependency line can be restricted to.
//
// A dependency line is restricted with a trailing marker comment:
//
//	pywin32>=300   # [win]
//	pyobjc         # [osx]
//
// Lines without a marker carry [Any] and are installed everywhere.
package platform

import (
	"runtime"
	"strings"

	"github.com/matzehuels/fonda/pkg/errors"
)

// Tag identifies the platform a dependency is restricted to.
type Tag int

const (
	// Any means the dependency is included on every platform.
	Any Tag = iota
	Windows
	Linux
	MacOS
)

// String returns the canonical marker name for the tag.
func (t Tag) String() string {
	switch t {
	case Windows:
		return "win"
	case Linux:
		return "linux"
	case MacOS:
		return "osx"
	default:
		return "any"
	}
}

// Matches reports whether a dependency tagged t should be installed on host.
// Any always matches; otherwise the tags must be equal.
func (t Tag) Matches(host Tag) bool {
	return t == Any || t == host
}

// markerTags lists the tags accepted inside "# [tag]" markers.
var markerTags = map[string]Tag{
	"win":    Windows,
	"linux":  Linux,
	"osx":    MacOS,
	"darwin": MacOS,
	"macos":  MacOS,
}

// ParseMarker maps the text between the brackets of a marker comment to a
// tag. Matching is case-insensitive and ignores surrounding whitespace.
func ParseMarker(tag string) (Tag, error) {
	if t, ok := markerTags[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return t, nil
	}
	return Any, errors.New(errors.ErrCodeUnknownPlatformMarker, "unknown platform marker [%s]", tag)
}

// Parse maps a user-supplied platform name (for example a --platform flag)
// to a host tag. It accepts the marker names plus "windows" and "mac".
// "any" is rejected because a host is always one concrete platform.
func Parse(name string) (Tag, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "windows":
		return Windows, nil
	case "mac":
		return MacOS, nil
	}
	t, err := ParseMarker(name)
	if err != nil {
		return Any, errors.New(errors.ErrCodeInvalidInput, "unknown platform %q (want win, linux or osx)", name)
	}
	return t, nil
}

// Detect maps a GOOS value to a host tag. Hosts other than Windows, Linux
// and macOS are unsupported: no marked dependency could ever match them.
func Detect(goos string) (Tag, error) {
	switch goos {
	case "windows":
		return Windows, nil
	case "linux":
		return Linux, nil
	case "darwin":
		return MacOS, nil
	}
	return Any, errors.New(errors.ErrCodeUnsupportedPlatform, "unsupported platform %q", goos)
}

// Current returns the tag of the running host.
func Current() (Tag, error) {
	return Detect(runtime.GOOS)
}
