// Package orchestrator creates a Python virtual environment and installs a
// resolved manifest into it.
//
// # State Machine
//
// A run walks an explicit state machine, visiting each state at most once:
//
//	Start → CreatingFast ─┬─────────────────────→ EnvReady → Installing ─┬→ Done
//	                      └→ CreatingStandard ─┬→ EnvReady               └→ InstallFailed
//	                                           └→ Failed
//
// The fast back-end ([UV]) is tried first. If it is missing from the host
// or exits non-zero, the standard back-end ([Venv]) is tried exactly once.
// The back-end that created the environment also installs into it. Neither
// creation nor installation is retried.
//
// # Back-ends and Runners
//
// A [Backend] turns create/install requests into external commands and runs
// them through a [Runner]. [ExecRunner] runs real processes; tests inject a
// fake runner or fake back-ends so every path through the state machine can
// be exercised without spawning anything.
//
// Failures are reported as *[ToolError] carrying the command line, exit
// code and the child's combined output.
package orchestrator
