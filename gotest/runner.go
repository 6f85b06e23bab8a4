package gotest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"

	"github.com/bitrise-io/go-utils/stringutil"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/hashicorp/go-version"
)

var goVersionPattern = regexp.MustCompile(`go(\d+\.\d+(?:\.\d+)?)`)

// RunParams ...
type RunParams struct {
	WorkDir  string
	Packages []string
	Options  []string
}

// Output ...
type Output struct {
	RawJSON  []byte
	Stderr   string
	ExitCode int
	Tests    []FinishedTest
}

// Failed reports whether any test ended in a non passing, non skipped state.
func (o Output) Failed() bool {
	for _, test := range o.Tests {
		switch test.Result.Status {
		case StatusPassed, StatusSkipped:
		default:
			return true
		}
	}
	return false
}

// Runner ...
type Runner interface {
	Version() (*version.Version, error)
	Run(ctx context.Context, params RunParams, listener Listener) (Output, error)
}

type runner struct {
	logger         log.Logger
	commandFactory command.Factory
}

// NewRunner ...
func NewRunner(logger log.Logger, commandFactory command.Factory) Runner {
	return &runner{
		logger:         logger,
		commandFactory: commandFactory,
	}
}

func (r *runner) Version() (*version.Version, error) {
	cmd := r.commandFactory.Create("go", []string{"version"}, nil)
	out, err := cmd.RunAndReturnTrimmedOutput()
	if err != nil {
		return nil, fmt.Errorf("failed to run %s: %w", cmd.PrintableCommandArgs(), err)
	}
	return ParseVersion(out)
}

// ParseVersion reads the toolchain version from `go version` output.
func ParseVersion(out string) (*version.Version, error) {
	match := goVersionPattern.FindStringSubmatch(out)
	if match == nil {
		return nil, fmt.Errorf("unexpected go version output: %s", out)
	}
	return version.NewVersion(match[1])
}

// Run executes `go test -json` and feeds the listener. OnBegin and OnEnd are always called.
// The returned error is the error of the go test process, which is non nil whenever a test failed.
func (r *runner) Run(ctx context.Context, params RunParams, listener Listener) (Output, error) {
	listener.OnBegin(ctx)

	args := append([]string{"test", "-json"}, params.Options...)
	args = append(args, params.Packages...)

	var stdout, stderr bytes.Buffer
	processor := newEventProcessor(ctx, listener, r.logger)
	cmd := r.commandFactory.Create("go", args, &command.Opts{
		Stdout: io.MultiWriter(&stdout, processor),
		Stderr: &stderr,
		Dir:    params.WorkDir,
	})

	r.logger.TPrintf("$ %s", cmd.PrintableCommandArgs())

	exitCode, err := cmd.RunAndReturnExitCode()
	processor.close()

	output := Output{
		RawJSON:  stdout.Bytes(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
		Tests:    processor.finished,
	}

	// A failing test already explains a non zero exit code; anything else is a runner problem.
	if err != nil && !output.Failed() {
		runErr := fmt.Errorf("go test exited with code %d: %w", exitCode, err)
		if output.Stderr != "" {
			runErr = fmt.Errorf("%w\n%s", runErr, stringutil.LastNLines(output.Stderr, errorDetailMaxLines))
		}
		listener.OnError(runErr)
	}

	listener.OnEnd(ctx)

	return output, err
}
