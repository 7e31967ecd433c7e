package deps

import (
	"bufio"
	"os"
	"strings"

	"github.com/matzehuels/fonda/pkg/errors"
)

// Manifest is the resolved, ordered list of installable requirement lines.
type Manifest []string

// Render returns the manifest as a requirements file: one entry per line,
// each terminated by "\n". An empty manifest renders as the empty string.
func (m Manifest) Render() string {
	var b strings.Builder
	for _, req := range m {
		b.WriteString(req)
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteFile writes the rendered manifest to path, replacing any existing file.
func WriteFile(path string, m Manifest) error {
	if err := os.WriteFile(path, []byte(m.Render()), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWrite, err, "write %s", path)
	}
	return nil
}

// ReadFile reads an existing requirements file. Blank lines and lines
// starting with "#" are skipped; everything else is kept verbatim.
func ReadFile(path string) (Manifest, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	var m Manifest
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		m = append(m, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return m, nil
}
