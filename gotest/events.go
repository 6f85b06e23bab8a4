package gotest

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bitrise-io/go-utils/stringutil"
	"github.com/bitrise-io/go-utils/v2/log"
)

const (
	timeoutPanic        = "panic: test timed out"
	errorDetailMaxLines = 20
)

// TestEvent is one line of `go test -json` output.
type TestEvent struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`
}

type runningTest struct {
	pkg      string
	name     string
	started  time.Time
	output   strings.Builder
	timedOut bool
}

// eventProcessor decodes the json stream written by go test and dispatches finished tests.
// It is an io.Writer so it can sit directly on the command's stdout.
type eventProcessor struct {
	ctx      context.Context
	listener Listener
	logger   log.Logger

	pending   []byte
	running   map[string]*runningTest
	order     []string
	timedOut  map[string]bool
	malformed int
	finished  []FinishedTest
}

func newEventProcessor(ctx context.Context, listener Listener, logger log.Logger) *eventProcessor {
	return &eventProcessor{
		ctx:      ctx,
		listener: listener,
		logger:   logger,
		running:  map[string]*runningTest{},
		timedOut: map[string]bool{},
	}
}

func (p *eventProcessor) Write(b []byte) (int, error) {
	p.pending = append(p.pending, b...)
	for {
		i := bytes.IndexByte(p.pending, '\n')
		if i < 0 {
			break
		}
		line := p.pending[:i]
		p.handleLine(line)
		p.pending = p.pending[i+1:]
	}
	return len(b), nil
}

func (p *eventProcessor) handleLine(line []byte) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return
	}

	var event TestEvent
	if err := json.Unmarshal(line, &event); err != nil {
		p.malformed++
		p.logger.Debugf("Skipping non-json test output: %s", line)
		return
	}
	p.handle(event)
}

func (p *eventProcessor) handle(event TestEvent) {
	if event.Test == "" {
		p.handlePackageEvent(event)
		return
	}

	key := testKey(event.Package, event.Test)
	switch event.Action {
	case "run":
		p.start(event)
	case "output":
		test, ok := p.running[key]
		if !ok {
			test = p.start(event)
		}
		test.output.WriteString(event.Output)
		if strings.Contains(event.Output, timeoutPanic) {
			test.timedOut = true
		}
	case "pass", "fail", "skip":
		test, ok := p.running[key]
		if !ok {
			test = p.start(event)
		}
		timedOut := test.timedOut || p.timedOut[event.Package]
		p.finish(test, statusFor(event.Action, timedOut), secondsToDuration(event.Elapsed))
	}
}

func (p *eventProcessor) handlePackageEvent(event TestEvent) {
	switch event.Action {
	case "output":
		if strings.Contains(event.Output, timeoutPanic) {
			p.timedOut[event.Package] = true
		}
	case "pass", "fail", "skip":
		p.abandon(event.Package, event.Time)
	}
}

func (p *eventProcessor) start(event TestEvent) *runningTest {
	key := testKey(event.Package, event.Test)
	if test, ok := p.running[key]; ok {
		return test
	}

	test := &runningTest{pkg: event.Package, name: event.Test, started: event.Time}
	p.running[key] = test
	p.order = append(p.order, key)
	return test
}

func (p *eventProcessor) finish(test *runningTest, status Status, duration time.Duration) {
	delete(p.running, testKey(test.pkg, test.name))

	result := TestResult{
		Status:   status,
		Duration: duration,
		Error:    errorFor(status, test.output.String()),
	}
	testCase := TestCase{
		Package: test.pkg,
		Name:    test.name,
		Title:   Title(test.name),
	}

	p.finished = append(p.finished, FinishedTest{Case: testCase, Result: result})
	p.listener.OnTestEnd(p.ctx, testCase, result)
}

// abandon reports tests of pkg that never got a terminal event. A zero `at` is the end of the process.
func (p *eventProcessor) abandon(pkg string, at time.Time) {
	var remaining []string
	for _, key := range p.order {
		test, ok := p.running[key]
		if !ok {
			continue
		}
		if pkg != "" && test.pkg != pkg {
			remaining = append(remaining, key)
			continue
		}

		status := StatusInterrupted
		if test.timedOut || p.timedOut[test.pkg] {
			status = StatusTimedOut
		}

		var duration time.Duration
		if !at.IsZero() && !test.started.IsZero() {
			duration = at.Sub(test.started)
		}
		p.finish(test, status, duration)
	}
	p.order = remaining
}

// close flushes a trailing line without a newline and abandons every test still running.
func (p *eventProcessor) close() {
	if len(p.pending) > 0 {
		p.handleLine(p.pending)
		p.pending = nil
	}
	p.abandon("", time.Time{})
	if p.malformed > 0 {
		p.logger.Debugf("%d line(s) of go test output were not json", p.malformed)
	}
}

func statusFor(action string, timedOut bool) Status {
	switch action {
	case "pass":
		return StatusPassed
	case "skip":
		return StatusSkipped
	default:
		if timedOut {
			return StatusTimedOut
		}
		return StatusFailed
	}
}

func errorFor(status Status, output string) *TestError {
	switch status {
	case StatusPassed, StatusSkipped:
		return nil
	}

	relevant := failureOutput(output)
	message := firstLine(relevant)
	detail := stringutil.LastNLines(relevant, errorDetailMaxLines)
	switch {
	case status == StatusTimedOut && message == "":
		message = "test timed out"
	case status == StatusInterrupted && message == "":
		message = "test did not finish"
	}

	return &TestError{Message: message, Output: detail}
}

// failureOutput drops the framing lines go test prints around every test.
func failureOutput(output string) string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isFramingLine(trimmed) {
			continue
		}
		lines = append(lines, trimmed)
	}
	return strings.Join(lines, "\n")
}

func isFramingLine(line string) bool {
	for _, prefix := range []string{"=== RUN", "=== PAUSE", "=== CONT", "=== NAME", "--- PASS", "--- FAIL", "--- SKIP"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func testKey(pkg, test string) string {
	return pkg + " " + test
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
