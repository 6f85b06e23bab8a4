package report

import (
	"testing"
	"time"

	"github.com/bitrise-steplib/steps-go-test-testrail/gotest"
	"github.com/bitrise-steplib/steps-go-test-testrail/testrail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_StatusIDFor(t *testing.T) {
	tests := map[gotest.Status]testrail.StatusID{
		gotest.StatusPassed:      testrail.StatusPassed,
		gotest.StatusSkipped:     testrail.StatusUntested,
		gotest.StatusFailed:      testrail.StatusFailed,
		gotest.StatusTimedOut:    testrail.StatusFailed,
		gotest.StatusInterrupted: testrail.StatusFailed,
	}

	for status, want := range tests {
		t.Run(string(status), func(t *testing.T) {
			assert.Equal(t, want, StatusIDFor(status))
		})
	}

	assert.Equal(t, testrail.StatusID(1), StatusIDFor(gotest.StatusPassed))
	assert.Equal(t, testrail.StatusID(3), StatusIDFor(gotest.StatusSkipped))
	assert.Equal(t, testrail.StatusID(5), StatusIDFor(gotest.StatusFailed))
}

func Test_Comment(t *testing.T) {
	tests := []struct {
		name   string
		result gotest.TestResult
		want   string
	}{
		{
			name:   "passed",
			result: gotest.TestResult{Status: gotest.StatusPassed, Duration: 1500 * time.Millisecond},
			want:   "Executed in 1500ms",
		},
		{
			name: "failed with detail",
			result: gotest.TestResult{
				Status: gotest.StatusFailed,
				Error:  &gotest.TestError{Message: "boom", Output: "boom\nat x.go:1"},
			},
			want: `failed: {"message":"boom","output":"boom\nat x.go:1"}`,
		},
		{
			name:   "timed out without output",
			result: gotest.TestResult{Status: gotest.StatusTimedOut, Error: &gotest.TestError{Message: "test timed out"}},
			want:   `timedOut: {"message":"test timed out"}`,
		},
		{
			name:   "interrupted without detail",
			result: gotest.TestResult{Status: gotest.StatusInterrupted},
			want:   "interrupted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Comment(tt.result))
		})
	}
}

func Test_GivenTitleWithTwoIDs_WhenFailedTestAdded_ThenRecordsTwoResults(t *testing.T) {
	// Given
	aggregator := NewAggregator()
	result := gotest.TestResult{Status: gotest.StatusFailed, Error: &gotest.TestError{Message: "boom"}}

	// When
	added := aggregator.Add([]int{100, 200}, result)

	// Then
	assert.Equal(t, 2, added)
	results := aggregator.Results()
	require.Len(t, results, 2)
	assert.Equal(t, 100, results[0].CaseID)
	assert.Equal(t, 200, results[1].CaseID)
	for _, r := range results {
		assert.Equal(t, testrail.StatusFailed, r.StatusID)
		assert.Equal(t, `failed: {"message":"boom"}`, r.Comment)
	}
}

func Test_GivenNoIDs_WhenAdded_ThenRecordsNothing(t *testing.T) {
	aggregator := NewAggregator()

	for _, status := range []gotest.Status{gotest.StatusPassed, gotest.StatusFailed, gotest.StatusTimedOut, gotest.StatusInterrupted} {
		assert.Equal(t, 0, aggregator.Add(nil, gotest.TestResult{Status: status}))
	}
	assert.Equal(t, 0, aggregator.Len())
}

func Test_GivenSkippedTest_WhenAdded_ThenRecordsNothing(t *testing.T) {
	// Given
	aggregator := NewAggregator()

	// When
	added := aggregator.Add([]int{1, 2}, gotest.TestResult{Status: gotest.StatusSkipped})

	// Then
	assert.Equal(t, 0, added)
	assert.Empty(t, aggregator.Results())
}

func Test_GivenResults_WhenCallerModifiesCopy_ThenBufferIsUnchanged(t *testing.T) {
	// Given
	aggregator := NewAggregator()
	aggregator.Add([]int{1}, gotest.TestResult{Status: gotest.StatusPassed})

	// When
	results := aggregator.Results()
	results[0].CaseID = 99

	// Then
	assert.Equal(t, 1, aggregator.Results()[0].CaseID)
}
