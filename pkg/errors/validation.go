package errors

import (
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"
)

// ValidateEnvName validates an environment name before it is used as a
// directory for the virtual environment.
//
// The name must be a single relative path component:
//   - not empty, at most 255 characters
//   - no control characters
//   - no path separators and no "." or ".." components
func ValidateEnvName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidEnvironment, "environment name cannot be empty")
	}

	if len(name) > 255 {
		return New(ErrCodeInvalidEnvironment, "environment name too long (max 255 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidEnvironment, "environment name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, `/\`) {
		return New(ErrCodeInvalidEnvironment, "environment name cannot contain path separators: %q", name)
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidEnvironment, "environment name cannot be %q", name)
	}

	return nil
}

// ValidatePythonVersion validates a python_version constraint such as
// "3.11", ">=3.10", ">=3.9,<3.13" or "~=3.10". An empty string is valid
// and means "whatever interpreter the tool picks".
func ValidatePythonVersion(constraint string) error {
	if constraint == "" {
		return nil
	}
	if _, err := semver.NewConstraint(NormalizePythonConstraint(constraint)); err != nil {
		return Wrap(ErrCodeInvalidEnvironment, err, "invalid python_version %q", constraint)
	}
	return nil
}

// NormalizePythonConstraint maps PEP 440 operators that semver does not
// know onto their closest semver equivalents ("==" to "=", "~=" to "~").
func NormalizePythonConstraint(constraint string) string {
	c := strings.TrimSpace(constraint)
	c = strings.ReplaceAll(c, "~=", "~")
	c = strings.ReplaceAll(c, "==", "=")
	return c
}
