package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/fonda/pkg/envfile"
	"github.com/matzehuels/fonda/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// EnvFileListModel - Interactive environment file selection
// =============================================================================

// envCandidate is an environment file found in the working directory.
type envCandidate struct {
	Path string
	Name string // Environment name; empty if the file does not load
	Err  error
}

// EnvFileListModel is the bubbletea model for picking one of several
// environment files.
type EnvFileListModel struct {
	Files    []envCandidate
	Cursor   int
	Selected *envCandidate
}

// NewEnvFileListModel creates a new environment file list model.
func NewEnvFileListModel(files []envCandidate) EnvFileListModel {
	return EnvFileListModel{Files: files}
}

func (m EnvFileListModel) Init() tea.Cmd {
	return nil
}

func (m EnvFileListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Files)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Files[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m EnvFileListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Environment File"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, f := range m.Files {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}

		status, detail := styleIconSuccess.Render(iconSuccess), f.Name
		if f.Err != nil {
			status, detail = StyleWarning.Render(iconWarning), errors.UserMessage(f.Err)
		}
		line := fmt.Sprintf("%s%s %-20s  %s", cursor, status, f.Path, listDimStyle.Render(detail))

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case f.Err != nil:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// Selection
// =============================================================================

// interactive reports whether a picker can be shown.
func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// loadCandidates loads each path far enough to label it in the picker.
func loadCandidates(paths []string) []envCandidate {
	files := make([]envCandidate, len(paths))
	for i, p := range paths {
		env, err := envfile.LoadEnvironment(p)
		files[i] = envCandidate{Path: p, Name: env.Name, Err: err}
	}
	return files
}

// pickEnvFile lets the user choose among paths. It returns "" when the
// picker was closed without a choice.
func pickEnvFile(paths []string) (string, error) {
	final, err := tea.NewProgram(NewEnvFileListModel(loadCandidates(paths))).Run()
	if err != nil {
		return "", err
	}
	fm, ok := final.(EnvFileListModel)
	if !ok || fm.Selected == nil {
		return "", nil
	}
	return fm.Selected.Path, nil
}
