package types

import "fmt"

// ExitError carries a specific process exit code alongside its message.
// The cmd package's exitCode helper, called from Execute, unwraps it via
// errors.As and exits with Code instead of the default 1.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// UsageError signals a bad CLI invocation (exit code 1).
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

// WorkspaceError signals a missing workspace path or unreadable alias
// manifest (exit code 2).
type WorkspaceError struct {
	Message string
}

func (e *WorkspaceError) Error() string { return e.Message }

// GitError signals a failure in the Git Adapter: unknown base ref, or git
// not found on PATH (exit code 2).
type GitError struct {
	Message string
}

func (e *GitError) Error() string { return e.Message }

// ParseError is a per-file parse failure. It is downgraded to a warning
// unless the fraction of files that failed exceeds the catastrophic
// threshold, in which case the caller promotes it to an ExitError (exit
// code 3).
type ParseError struct {
	File    FileID
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// ResolveError is a per-binding resolution failure. Always downgraded:
// the binding becomes external rather than reaching the process
// boundary.
type ResolveError struct {
	Specifier string
	Message   string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s: %s", e.Specifier, e.Message)
}

// QueryError signals a query-level problem, such as an unknown chain
// endpoint. It never reaches the process boundary as a nonzero exit; the
// caller prints the message and returns an empty result set with exit 0.
type QueryError struct {
	Message string
}

func (e *QueryError) Error() string { return e.Message }

// ParseFailureThreshold is the fraction of files that must fail to parse
// before ParseError is promoted to a catastrophic (exit code 3) failure.
const ParseFailureThreshold = 0.25
