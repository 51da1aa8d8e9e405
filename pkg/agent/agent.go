package agent

// ExecOptions controls how a process is executed through the agent.
type ExecOptions struct {
	Cwd              string // working directory, empty means inherit
	Silent           bool   // suppress live output, still capture it
	IgnoreReturnCode bool   // do not turn a non-zero exit into an error
}

// ExecResult carries the outcome of a process execution.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Agent is the capability surface this subsystem consumes for process
// execution, search-path management and progress logging. All process
// execution is routed through Exec with literal, non-interpolated
// arguments; nothing here shells out directly.
type Agent interface {
	Exec(command string, args []string, opts ExecOptions) (ExecResult, error)
	AddPath(path string)
	Info(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Debug(format string, args ...interface{})
}
