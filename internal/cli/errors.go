package cli

import (
	stderrors "errors"
	"strings"

	"github.com/matzehuels/fonda/pkg/errors"
	"github.com/matzehuels/fonda/pkg/orchestrator"
)

var errConflictingModes = errors.New(errors.ErrCodeInvalidInput, "-w and -r cannot be combined")

// ErrorMessage formats err for the terminal, followed by the external
// tool's output verbatim when a tool failed.
func ErrorMessage(err error) string {
	msg := err.Error()
	if e, ok := err.(*errors.Error); ok {
		msg = errors.UserMessage(e) + " " + StyleDim.Render("["+string(e.Code)+"]")
	}

	var b strings.Builder
	b.WriteString(styleIconError.Render(iconError) + " " + msg)

	var te *orchestrator.ToolError
	if stderrors.As(err, &te) && te.Output != "" {
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(te.Output, "\n"))
	}
	return b.String()
}
