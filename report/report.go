// Package report turns finished tests into TestRail results.
package report

import (
	"encoding/json"
	"fmt"

	"github.com/bitrise-steplib/steps-go-test-testrail/gotest"
	"github.com/bitrise-steplib/steps-go-test-testrail/testrail"
)

// StatusIDFor maps a test status to the TestRail status it is reported as.
func StatusIDFor(status gotest.Status) testrail.StatusID {
	switch status {
	case gotest.StatusPassed:
		return testrail.StatusPassed
	case gotest.StatusSkipped:
		return testrail.StatusUntested
	default:
		return testrail.StatusFailed
	}
}

// Comment describes a result for the TestRail result comment field.
func Comment(result gotest.TestResult) string {
	if result.Status == gotest.StatusPassed {
		return fmt.Sprintf("Executed in %dms", result.Duration.Milliseconds())
	}
	if result.Error == nil {
		return string(result.Status)
	}

	detail, err := json.Marshal(result.Error)
	if err != nil {
		return fmt.Sprintf("%s: %+v", result.Status, *result.Error)
	}
	return fmt.Sprintf("%s: %s", result.Status, detail)
}

// Aggregator buffers results until the end of the session.
type Aggregator struct {
	results []testrail.Result
}

// NewAggregator ...
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add records one result per case ID and returns how many were recorded.
// Skipped tests are never recorded.
func (a *Aggregator) Add(caseIDs []int, result gotest.TestResult) int {
	if result.Status == gotest.StatusSkipped || len(caseIDs) == 0 {
		return 0
	}

	statusID := StatusIDFor(result.Status)
	comment := Comment(result)
	for _, caseID := range caseIDs {
		a.results = append(a.results, testrail.Result{
			CaseID:   caseID,
			StatusID: statusID,
			Comment:  comment,
		})
	}
	return len(caseIDs)
}

// Results returns a copy of the buffered results in insertion order.
func (a *Aggregator) Results() []testrail.Result {
	results := make([]testrail.Result, len(a.results))
	copy(results, a.results)
	return results
}

// Len ...
func (a *Aggregator) Len() int {
	return len(a.results)
}
