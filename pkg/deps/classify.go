package deps

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/fonda/pkg/errors"
	"github.com/matzehuels/fonda/pkg/platform"
)

var (
	markerRE    = regexp.MustCompile(`\[([^\[\]]*)\]`)
	urlSchemeRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)
)

const (
	gitPrefix     = "git+"
	compactPrefix = "pip:"
)

// editableFlags are the flags that mark an editable install.
var editableFlags = []string{"-e", "--editable"}

// ClassificationError reports a dependency line that cannot be classified.
type ClassificationError struct {
	Code    errors.Code // One of the classification error codes
	Section Section     // Section the line came from
	Line    string      // The offending raw line
	Detail  string      // What was wrong with it
}

// Error implements the error interface.
func (e *ClassificationError) Error() string {
	return fmt.Sprintf("%s: %s entry %q: %s", e.Code, e.Section, e.Line, e.Detail)
}

// Unwrap exposes the code as an *errors.Error for errors.Is checks.
func (e *ClassificationError) Unwrap() error {
	return errors.New(e.Code, "%s", e.Detail)
}

// Classify parses one raw dependency line from section.
//
// A blank or comment-only line yields no specs and no error. A compact
// "pip:a,b" entry yields one spec per name. All specs from one line share
// the line's platform marker.
func Classify(raw string, section Section) ([]Spec, error) {
	fail := func(code errors.Code, format string, args ...any) error {
		return &ClassificationError{Code: code, Section: section, Line: raw, Detail: fmt.Sprintf(format, args...)}
	}

	text, comment := splitComment(strings.TrimSpace(raw))
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	tag, err := parseMarker(comment)
	if err != nil {
		return nil, fail(errors.ErrCodeUnknownPlatformMarker, "%s", errors.UserMessage(err))
	}

	kinds, code, detail := classifyText(text, section)
	if code != "" {
		return nil, fail(code, "%s", detail)
	}

	specs := make([]Spec, 0, len(kinds))
	for _, k := range kinds {
		specs = append(specs, Spec{Raw: raw, Section: section, Kind: k, Platform: tag})
	}
	return specs, nil
}

// splitComment separates a line from its inline comment. A "#" starts a
// comment only at the start of the line or after whitespace, so URL
// fragments such as "repo.git#egg=name" stay part of the spec.
func splitComment(line string) (text, comment string) {
	for i := 0; i < len(line); i++ {
		if line[i] != '#' {
			continue
		}
		if i == 0 || line[i-1] == ' ' || line[i-1] == '\t' {
			return line[:i], line[i+1:]
		}
	}
	return line, ""
}

// parseMarker extracts the platform tag from comment text. No bracketed
// token means Any; more than one, or an unrecognized one, is an error.
func parseMarker(comment string) (platform.Tag, error) {
	matches := markerRE.FindAllStringSubmatch(comment, -1)
	switch len(matches) {
	case 0:
		return platform.Any, nil
	case 1:
		return platform.ParseMarker(matches[0][1])
	default:
		return platform.Any, errors.New(errors.ErrCodeUnknownPlatformMarker,
			"%d platform markers, at most one allowed", len(matches))
	}
}

// classifyText applies the prefix precedence chain to a comment-free spec.
// On failure it returns a non-empty code and a detail message.
func classifyText(text string, section Section) ([]Kind, errors.Code, string) {
	if rest, ok := cutEditable(text); ok {
		if rest == "" {
			return nil, errors.ErrCodeEmptySpec, "editable flag without a target"
		}
		if _, again := cutEditable(rest); again {
			return nil, errors.ErrCodeDuplicateEditableFlag, "editable flag given more than once"
		}
		target, code, detail := classifyTarget(rest)
		if code != "" {
			return nil, code, detail
		}
		return []Kind{Editable{Target: target}}, "", ""
	}

	if strings.HasPrefix(text, gitPrefix) || urlSchemeRE.MatchString(text) {
		target, code, detail := classifyTarget(text)
		if code != "" {
			return nil, code, detail
		}
		return []Kind{target}, "", ""
	}

	if rest, ok := strings.CutPrefix(text, compactPrefix); ok {
		return splitCompact(rest)
	}

	if section == Pip {
		return []Kind{PipPackage{Spec: text}}, "", ""
	}
	return []Kind{Package{Spec: text}}, "", ""
}

// cutEditable strips a leading editable flag. The flag must be followed by
// whitespace (or "=" for the long form) or end the text.
func cutEditable(text string) (string, bool) {
	for _, flag := range editableFlags {
		if text == flag {
			return "", true
		}
		rest, ok := strings.CutPrefix(text, flag)
		if !ok {
			continue
		}
		switch {
		case rest[0] == ' ' || rest[0] == '\t':
			return strings.TrimSpace(rest), true
		case flag == "--editable" && rest[0] == '=':
			return strings.TrimSpace(rest[1:]), true
		}
	}
	return "", false
}

// classifyTarget classifies something that can follow an editable flag:
// a git reference, a URL or, failing both, a literal local path.
func classifyTarget(text string) (EditableTarget, errors.Code, string) {
	switch {
	case strings.HasPrefix(text, gitPrefix):
		return parseGit(text)
	case urlSchemeRE.MatchString(text):
		if rest := text[strings.Index(text, "://")+3:]; strings.TrimSpace(rest) == "" {
			return nil, errors.ErrCodeEmptySpec, "URL has nothing after the scheme"
		}
		return URL{URL: text}, "", ""
	default:
		return LocalPath{Path: text}, "", ""
	}
}

// parseGit splits "git+<url>[@ref][#fragment]". The ref separator is the
// last "@" in the URL path, so credentials in the host part
// ("git+ssh://git@host/...") and slashes in branch names both work.
func parseGit(text string) (EditableTarget, errors.Code, string) {
	body, fragment, _ := strings.Cut(text, "#")

	if strings.TrimSpace(strings.TrimPrefix(body, gitPrefix)) == "" {
		return nil, errors.ErrCodeEmptySpec, "git reference has no URL"
	}

	pathStart := 0
	if i := strings.Index(body, "://"); i >= 0 {
		if j := strings.IndexByte(body[i+3:], '/'); j >= 0 {
			pathStart = i + 3 + j
		} else {
			pathStart = len(body)
		}
	} else if i := strings.IndexByte(body, ':'); i >= 0 {
		// scp-like "git+user@host:org/repo.git"
		pathStart = i
	}

	at := strings.LastIndexByte(body[pathStart:], '@')
	if at < 0 {
		return Git{URL: body, Fragment: fragment}, "", ""
	}
	at += pathStart

	url, ref := body[:at], body[at+1:]
	if ref == "" {
		return nil, errors.ErrCodeMalformedGitRef, "empty ref after \"@\""
	}
	if strings.ContainsAny(ref, " \t") {
		return nil, errors.ErrCodeMalformedGitRef, fmt.Sprintf("ref %q contains whitespace", ref)
	}
	if strings.TrimPrefix(url, gitPrefix) == "" {
		return nil, errors.ErrCodeEmptySpec, "git reference has no URL"
	}
	return Git{URL: url, Ref: ref, Fragment: fragment}, "", ""
}

// splitCompact splits the remainder of a "pip:" entry into pip packages.
// Items that start with a comparison operator continue the previous
// item's constraint, so "pip:numpy>=1.24,<2,requests" yields two packages.
func splitCompact(rest string) ([]Kind, errors.Code, string) {
	if strings.TrimSpace(rest) == "" {
		return nil, errors.ErrCodeEmptySpec, "nothing after \"pip:\""
	}

	var items []string
	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, errors.ErrCodeEmptySpec, "empty name in \"pip:\" list"
		}
		if strings.ContainsAny(part[:1], "<>=!~") && len(items) > 0 {
			items[len(items)-1] += "," + part
			continue
		}
		items = append(items, part)
	}

	kinds := make([]Kind, 0, len(items))
	for _, item := range items {
		if strings.HasPrefix(item, gitPrefix) || urlSchemeRE.MatchString(item) {
			target, code, detail := classifyTarget(item)
			if code != "" {
				return nil, code, detail
			}
			kinds = append(kinds, target)
			continue
		}
		kinds = append(kinds, PipPackage{Spec: item})
	}
	return kinds, "", ""
}
