// Package gotest runs `go test -json` and reports the lifecycle of the session to a Listener.
package gotest

import (
	"context"
	"strings"
	"time"
)

// Status is the terminal state of one test.
type Status string

// Test statuses ...
const (
	StatusPassed      Status = "passed"
	StatusFailed      Status = "failed"
	StatusSkipped     Status = "skipped"
	StatusTimedOut    Status = "timedOut"
	StatusInterrupted Status = "interrupted"
)

// TestCase identifies a test.
type TestCase struct {
	Package string
	Name    string
	// Title is the human readable form of Name.
	Title string
}

// TestError carries the failure detail of a test.
type TestError struct {
	Message string `json:"message"`
	Output  string `json:"output,omitempty"`
}

// TestResult ...
type TestResult struct {
	Status   Status
	Duration time.Duration
	Error    *TestError
}

// FinishedTest ...
type FinishedTest struct {
	Case   TestCase
	Result TestResult
}

// Listener receives the events of one test session.
// OnBegin is called before any test runs and OnEnd after the last OnTestEnd.
// Calls are never concurrent.
type Listener interface {
	OnBegin(ctx context.Context)
	OnTestEnd(ctx context.Context, test TestCase, result TestResult)
	OnEnd(ctx context.Context)
	OnError(err error)
}

var titleReplacer = strings.NewReplacer("/", " ", "_", " ")

// Title turns a test name like TestLogin/C100_C200 into "TestLogin C100 C200".
func Title(name string) string {
	return titleReplacer.Replace(name)
}
