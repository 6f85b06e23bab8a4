package gotest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	events []string
	tests  []FinishedTest
	errors []error
}

func (l *recordingListener) OnBegin(context.Context) {
	l.events = append(l.events, "begin")
}

func (l *recordingListener) OnTestEnd(_ context.Context, test TestCase, result TestResult) {
	l.events = append(l.events, "test:"+test.Name)
	l.tests = append(l.tests, FinishedTest{Case: test, Result: result})
}

func (l *recordingListener) OnEnd(context.Context) {
	l.events = append(l.events, "end")
}

func (l *recordingListener) OnError(err error) {
	l.errors = append(l.errors, err)
}

func Test_GivenPassAndFail_WhenProcessed_ThenReportsEachTest(t *testing.T) {
	// Given
	input := lines(
		`{"Time":"2024-01-01T00:00:00Z","Action":"run","Package":"example.com/app","Test":"TestLogin/C100_C200"}`,
		`{"Time":"2024-01-01T00:00:00Z","Action":"output","Package":"example.com/app","Test":"TestLogin/C100_C200","Output":"=== RUN   TestLogin/C100_C200\n"}`,
		`{"Time":"2024-01-01T00:00:00Z","Action":"output","Package":"example.com/app","Test":"TestLogin/C100_C200","Output":"    login_test.go:12: expected 200, got 500\n"}`,
		`{"Time":"2024-01-01T00:00:00Z","Action":"output","Package":"example.com/app","Test":"TestLogin/C100_C200","Output":"--- FAIL: TestLogin/C100_C200 (0.25s)\n"}`,
		`{"Time":"2024-01-01T00:00:00Z","Action":"fail","Package":"example.com/app","Test":"TestLogin/C100_C200","Elapsed":0.25}`,
		`{"Time":"2024-01-01T00:00:00Z","Action":"run","Package":"example.com/app","Test":"TestLogout"}`,
		`{"Time":"2024-01-01T00:00:00Z","Action":"pass","Package":"example.com/app","Test":"TestLogout","Elapsed":0.5}`,
		`{"Time":"2024-01-01T00:00:01Z","Action":"fail","Package":"example.com/app","Elapsed":1}`,
	)
	listener := &recordingListener{}
	processor := newEventProcessor(context.Background(), listener, log.NewLogger())

	// When
	write(t, processor, input)
	processor.close()

	// Then
	require.Len(t, listener.tests, 2)

	failed := listener.tests[0]
	assert.Equal(t, "TestLogin C100 C200", failed.Case.Title)
	assert.Equal(t, "example.com/app", failed.Case.Package)
	assert.Equal(t, StatusFailed, failed.Result.Status)
	assert.Equal(t, 250*time.Millisecond, failed.Result.Duration)
	require.NotNil(t, failed.Result.Error)
	assert.Equal(t, "login_test.go:12: expected 200, got 500", failed.Result.Error.Message)

	passed := listener.tests[1]
	assert.Equal(t, StatusPassed, passed.Result.Status)
	assert.Equal(t, 500*time.Millisecond, passed.Result.Duration)
	assert.Nil(t, passed.Result.Error)

	assert.Len(t, processor.finished, 2)
}

func Test_GivenSkippedTest_WhenProcessed_ThenReportsSkipped(t *testing.T) {
	// Given
	input := lines(
		`{"Action":"run","Package":"p","Test":"TestC5"}`,
		`{"Action":"skip","Package":"p","Test":"TestC5","Elapsed":0}`,
	)
	listener := &recordingListener{}
	processor := newEventProcessor(context.Background(), listener, log.NewLogger())

	// When
	write(t, processor, input)
	processor.close()

	// Then
	require.Len(t, listener.tests, 1)
	assert.Equal(t, StatusSkipped, listener.tests[0].Result.Status)
	assert.Nil(t, listener.tests[0].Result.Error)
}

func Test_GivenTimeoutPanic_WhenPackageEnds_ThenRunningTestTimedOut(t *testing.T) {
	// Given
	input := lines(
		`{"Time":"2024-01-01T00:00:00Z","Action":"run","Package":"p","Test":"TestSlow"}`,
		`{"Time":"2024-01-01T00:00:01Z","Action":"output","Package":"p","Output":"panic: test timed out after 1s\n"}`,
		`{"Time":"2024-01-01T00:00:02Z","Action":"fail","Package":"p","Elapsed":2}`,
	)
	listener := &recordingListener{}
	processor := newEventProcessor(context.Background(), listener, log.NewLogger())

	// When
	write(t, processor, input)
	processor.close()

	// Then
	require.Len(t, listener.tests, 1)
	result := listener.tests[0].Result
	assert.Equal(t, StatusTimedOut, result.Status)
	assert.Equal(t, 2*time.Second, result.Duration)
	require.NotNil(t, result.Error)
	assert.Equal(t, "test timed out", result.Error.Message)
}

func Test_GivenTimeoutInTestOutput_WhenTestFails_ThenTimedOut(t *testing.T) {
	// Given
	input := lines(
		`{"Action":"run","Package":"p","Test":"TestSlow"}`,
		`{"Action":"output","Package":"p","Test":"TestSlow","Output":"panic: test timed out after 10m0s\n"}`,
		`{"Action":"fail","Package":"p","Test":"TestSlow","Elapsed":600}`,
	)
	listener := &recordingListener{}
	processor := newEventProcessor(context.Background(), listener, log.NewLogger())

	// When
	write(t, processor, input)
	processor.close()

	// Then
	require.Len(t, listener.tests, 1)
	assert.Equal(t, StatusTimedOut, listener.tests[0].Result.Status)
	assert.Equal(t, "panic: test timed out after 10m0s", listener.tests[0].Result.Error.Message)
}

func Test_GivenUnfinishedTest_WhenStreamEnds_ThenInterrupted(t *testing.T) {
	// Given
	input := `{"Action":"run","Package":"p","Test":"TestKilled"}` + "\n" + `{"Action":"output","Package":"p","Test":"TestKilled","Output":"working\n"}`
	listener := &recordingListener{}
	processor := newEventProcessor(context.Background(), listener, log.NewLogger())

	// When
	write(t, processor, input)
	processor.close()

	// Then
	require.Len(t, listener.tests, 1)
	result := listener.tests[0].Result
	assert.Equal(t, StatusInterrupted, result.Status)
	assert.Equal(t, "working", result.Error.Message)
}

func Test_GivenSplitWrites_WhenProcessed_ThenLinesAreReassembled(t *testing.T) {
	// Given
	line := `{"Action":"pass","Package":"p","Test":"TestA","Elapsed":0.1}` + "\n"
	listener := &recordingListener{}
	processor := newEventProcessor(context.Background(), listener, log.NewLogger())

	// When
	write(t, processor, line[:10])
	write(t, processor, line[10:])
	processor.close()

	// Then
	require.Len(t, listener.tests, 1)
	assert.Equal(t, "TestA", listener.tests[0].Case.Name)
}

func Test_GivenMalformedLines_WhenProcessed_ThenSkipsThem(t *testing.T) {
	// Given
	input := lines(
		"# example.com/broken",
		"not json",
		`{"Action":"pass","Package":"p","Test":"TestA"}`,
	)
	listener := &recordingListener{}
	processor := newEventProcessor(context.Background(), listener, log.NewLogger())

	// When
	write(t, processor, input)
	processor.close()

	// Then
	assert.Equal(t, 2, processor.malformed)
	assert.Len(t, listener.tests, 1)
}

func Test_Title(t *testing.T) {
	assert.Equal(t, "TestLogin C100 C200", Title("TestLogin/C100_C200"))
	assert.Equal(t, "TestLogout", Title("TestLogout"))
	assert.Equal(t, "TestA C1: works", Title("TestA/C1:_works"))
}

func Test_ParseVersion(t *testing.T) {
	tests := []struct {
		out     string
		want    string
		wantErr bool
	}{
		{out: "go version go1.22.1 linux/amd64", want: "1.22.1"},
		{out: "go version go1.21 darwin/arm64", want: "1.21.0"},
		{out: "go version devel go1.23-a1b2c3 linux/amd64", want: "1.23.0"},
		{out: "command not found", wantErr: true},
	}

	for _, tt := range tests {
		v, err := ParseVersion(tt.out)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, v.String())
	}
}

func Test_OutputFailed(t *testing.T) {
	passing := Output{Tests: []FinishedTest{
		{Result: TestResult{Status: StatusPassed}},
		{Result: TestResult{Status: StatusSkipped}},
	}}
	assert.False(t, passing.Failed())

	failing := Output{Tests: []FinishedTest{
		{Result: TestResult{Status: StatusPassed}},
		{Result: TestResult{Status: StatusInterrupted}},
	}}
	assert.True(t, failing.Failed())
}

func lines(l ...string) string {
	return strings.Join(l, "\n") + "\n"
}

func write(t *testing.T, processor *eventProcessor, s string) {
	n, err := processor.Write([]byte(s))
	require.NoError(t, err)
	require.Equal(t, len(s), n)
}
