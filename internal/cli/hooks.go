package cli

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// hooks reports resolution and orchestration progress: a spinner while an
// external tool runs, debug logs for everything else.
type hooks struct {
	ctx    context.Context
	logger *log.Logger

	mu      sync.Mutex
	spinner *Spinner
}

func newHooks(ctx context.Context, logger *log.Logger) *hooks {
	if ctx == nil {
		ctx = context.Background()
	}
	return &hooks{ctx: ctx, logger: logger}
}

func (h *hooks) OnResolveStart(_ context.Context, env, platform string) {
	h.logger.Debug("resolving", "env", env, "platform", platform)
}

func (h *hooks) OnResolveComplete(_ context.Context, env, platform string, entries int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("resolve failed", "env", env, "platform", platform, "err", err)
		return
	}
	h.logger.Debug("resolved", "env", env, "platform", platform, "entries", entries,
		"duration", d.Round(time.Microsecond))
}

func (h *hooks) OnTransition(_ context.Context, from, to string) {
	h.logger.Debug("state", "from", from, "to", to)
}

func (h *hooks) OnCommandStart(_ context.Context, tool string, args []string) {
	line := strings.TrimSpace(tool + " " + strings.Join(args, " "))
	h.logger.Debug("running", "cmd", line)

	// The spinner would interleave with debug output.
	if h.logger.GetLevel() <= log.DebugLevel {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.spinner = newSpinnerWithContext(h.ctx, line)
	h.spinner.Start()
}

func (h *hooks) OnCommandComplete(_ context.Context, tool string, exitCode int, d time.Duration, err error) {
	h.mu.Lock()
	if h.spinner != nil {
		h.spinner.Stop()
		h.spinner = nil
	}
	h.mu.Unlock()

	h.logger.Debug("finished", "tool", tool, "exit", exitCode, "duration", d.Round(time.Millisecond), "err", err)
}
