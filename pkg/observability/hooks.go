// Package observability provides hooks for progress reporting, metrics and
// logging around resolution and environment creation.
//
// Libraries emit events through the registered hooks; the defaults do
// nothing. The CLI registers its own implementations at startup to drive
// the spinner and debug logging, and other embedders can plug in metrics
// backends the same way without fonda depending on them.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetOrchestratorHooks(&myOrchestratorHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Orchestrator().OnCommandStart(ctx, "uv", []string{"venv", "myenv"})
//	// ... run the child process ...
//	observability.Orchestrator().OnCommandComplete(ctx, "uv", 0, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Resolve Hooks
// =============================================================================

// ResolveHooks receives events from manifest resolution.
type ResolveHooks interface {
	OnResolveStart(ctx context.Context, env, platform string)
	OnResolveComplete(ctx context.Context, env, platform string, entries int, duration time.Duration, err error)
}

// =============================================================================
// Orchestrator Hooks
// =============================================================================

// OrchestratorHooks receives events from environment creation and install.
type OrchestratorHooks interface {
	// OnTransition records a state machine step.
	OnTransition(ctx context.Context, from, to string)

	// OnCommandStart records the launch of an external tool.
	OnCommandStart(ctx context.Context, tool string, args []string)

	// OnCommandComplete records the exit of an external tool. exitCode is -1
	// when the tool could not be started.
	OnCommandComplete(ctx context.Context, tool string, exitCode int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopResolveHooks is a no-op implementation of ResolveHooks.
type NoopResolveHooks struct{}

func (NoopResolveHooks) OnResolveStart(context.Context, string, string) {}
func (NoopResolveHooks) OnResolveComplete(context.Context, string, string, int, time.Duration, error) {
}

// NoopOrchestratorHooks is a no-op implementation of OrchestratorHooks.
type NoopOrchestratorHooks struct{}

func (NoopOrchestratorHooks) OnTransition(context.Context, string, string)     {}
func (NoopOrchestratorHooks) OnCommandStart(context.Context, string, []string) {}
func (NoopOrchestratorHooks) OnCommandComplete(context.Context, string, int, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	resolveHooks      ResolveHooks      = NoopResolveHooks{}
	orchestratorHooks OrchestratorHooks = NoopOrchestratorHooks{}
	hooksMu           sync.RWMutex
)

// SetResolveHooks registers custom resolve hooks.
// This should be called once at application startup.
func SetResolveHooks(h ResolveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		resolveHooks = h
	}
}

// SetOrchestratorHooks registers custom orchestrator hooks.
// This should be called once at application startup.
func SetOrchestratorHooks(h OrchestratorHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		orchestratorHooks = h
	}
}

// Resolve returns the registered resolve hooks.
func Resolve() ResolveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return resolveHooks
}

// Orchestrator returns the registered orchestrator hooks.
func Orchestrator() OrchestratorHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return orchestratorHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	resolveHooks = NoopResolveHooks{}
	orchestratorHooks = NoopOrchestratorHooks{}
}
