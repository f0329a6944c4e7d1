package judge

import "context"

// RunResult captures one execution of the submitted program against a
// single test case input.
type RunResult struct {
	Stdout string
	Stderr string

	CpuMs  int64
	MemKiB int64

	ExitCode int
	TimedOut bool
}

// CompileResult is the outcome of the compile step. Ok is true for
// interpreted languages that have no compile step.
type CompileResult struct {
	Ok     bool
	Output string
}

// Execution is a compiled submission ready to run test cases. Close
// releases the workspace.
type Execution interface {
	Run(ctx context.Context, input string, cpuLimMs int, memLimKiB int) (RunResult, error)
	Close() error
}

// Runner prepares a submission for execution: it materializes the
// source, runs the compile step and hands back an Execution. A failed
// compile is reported in CompileResult, not as an error; errors are
// infrastructure faults.
type Runner interface {
	Prepare(ctx context.Context, lang Language, code string) (Execution, CompileResult, error)
}
