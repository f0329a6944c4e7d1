package judge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

const compileTimeout = 20 * time.Second

// output larger than this is truncated before comparison and storage
const maxOutputBytes = 1 << 20

// localRunner executes submissions in a throwaway directory on the host
// with os/exec, enforcing the cpu limit through a context deadline.
type localRunner struct{}

func NewLocalRunner() *localRunner {
	return &localRunner{}
}

func (r *localRunner) Prepare(ctx context.Context, lang Language, code string) (Execution, CompileResult, error) {
	dir, err := os.MkdirTemp("", "judge-")
	if err != nil {
		return nil, CompileResult{}, fmt.Errorf("failed to create workspace: %w", err)
	}

	codePath := filepath.Join(dir, lang.CodeFilename)
	if err := os.WriteFile(codePath, []byte(code), 0644); err != nil {
		os.RemoveAll(dir)
		return nil, CompileResult{}, fmt.Errorf("failed to write source file: %w", err)
	}

	if lang.Compiled() {
		cctx, cancel := context.WithTimeout(ctx, compileTimeout)
		defer cancel()

		fields := strings.Fields(*lang.CompileCmd)
		cmd := exec.CommandContext(cctx, fields[0], fields[1:]...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) || errors.Is(cctx.Err(), context.DeadlineExceeded) {
				os.RemoveAll(dir)
				return nil, CompileResult{Ok: false, Output: truncate(string(out))}, nil
			}
			os.RemoveAll(dir)
			return nil, CompileResult{}, fmt.Errorf("failed to run compiler: %w", err)
		}
	}

	return &localExecution{dir: dir, lang: lang}, CompileResult{Ok: true}, nil
}

type localExecution struct {
	dir  string
	lang Language
}

func (e *localExecution) Run(ctx context.Context, input string, cpuLimMs int, memLimKiB int) (RunResult, error) {
	// wall clock gets headroom over the cpu limit so that an
	// io-blocked program is still cut off eventually
	wallLim := time.Duration(2*cpuLimMs+1000) * time.Millisecond
	rctx, cancel := context.WithTimeout(ctx, wallLim)
	defer cancel()

	fields := strings.Fields(e.lang.RunCmd)
	cmd := exec.CommandContext(rctx, fields[0], fields[1:]...)
	cmd.Dir = e.dir
	cmd.Stdin = strings.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if cmd.ProcessState == nil {
		return RunResult{}, fmt.Errorf("failed to start program: %w", err)
	}

	res := RunResult{
		Stdout:   truncate(stdout.String()),
		Stderr:   truncate(stderr.String()),
		CpuMs:    elapsed.Milliseconds(),
		ExitCode: cmd.ProcessState.ExitCode(),
		TimedOut: errors.Is(rctx.Err(), context.DeadlineExceeded) || elapsed.Milliseconds() > int64(cpuLimMs),
	}
	if rusage, ok := cmd.ProcessState.SysUsage().(*syscall.Rusage); ok {
		res.MemKiB = rusage.Maxrss
	}
	return res, nil
}

func (e *localExecution) Close() error {
	return os.RemoveAll(e.dir)
}

func truncate(s string) string {
	if len(s) > maxOutputBytes {
		return s[:maxOutputBytes]
	}
	return s
}
