// Package reporter wires a go test session to TestRail.
package reporter

import (
	"context"
	"sort"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-go-test-testrail/caseid"
	"github.com/bitrise-steplib/steps-go-test-testrail/gotest"
	"github.com/bitrise-steplib/steps-go-test-testrail/report"
	"github.com/bitrise-steplib/steps-go-test-testrail/testrun"
)

// Summary ...
type Summary struct {
	RunID    int
	RunState testrun.State
	Recorded int
	// UnknownCaseIDs are referenced by test titles but were not found in the test directory.
	UnknownCaseIDs []int
}

// Reporter implements gotest.Listener.
type Reporter struct {
	manager    testrun.Manager
	logger     log.Logger
	aggregator *report.Aggregator
	referenced map[int]bool
}

// NewReporter ...
func NewReporter(manager testrun.Manager, logger log.Logger) *Reporter {
	return &Reporter{
		manager:    manager,
		logger:     logger,
		aggregator: report.NewAggregator(),
		referenced: map[int]bool{},
	}
}

var _ gotest.Listener = (*Reporter)(nil)

// OnBegin ...
func (r *Reporter) OnBegin(ctx context.Context) {
	r.aggregator = report.NewAggregator()
	r.referenced = map[int]bool{}

	if err := r.manager.Begin(ctx); err != nil {
		r.logger.Errorf("Failed to prepare TestRail run: %s", err)
	}
	r.logger.Println()
}

// OnTestEnd ...
func (r *Reporter) OnTestEnd(_ context.Context, test gotest.TestCase, result gotest.TestResult) {
	caseIDs := caseid.MatchTitle(test.Title)
	if caseIDs == nil {
		r.logger.Debugf("No case ID in test title: %s", test.Title)
		return
	}
	for _, id := range caseIDs {
		r.referenced[id] = true
	}

	if result.Status == gotest.StatusSkipped {
		r.logger.Debugf("Not reporting skipped test: %s", test.Title)
		return
	}

	added := r.aggregator.Add(caseIDs, result)
	r.logger.Debugf("%s (%s): recorded %d result(s)", test.Title, result.Status, added)
}

// OnEnd submits the collected results. The submission outlives a cancelled session context
// so an interrupted run still reports what it recorded.
func (r *Reporter) OnEnd(ctx context.Context) {
	r.logger.Println()
	r.manager.Submit(context.WithoutCancel(ctx), r.aggregator.Results())
}

// OnError ...
func (r *Reporter) OnError(err error) {
	r.logger.Errorf("Test run error: %s", err)
}

// Summary describes the finished session.
func (r *Reporter) Summary() Summary {
	known := map[int]bool{}
	for _, id := range r.manager.CaseIDs() {
		known[id] = true
	}

	var unknown []int
	for id := range r.referenced {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	sort.Ints(unknown)

	return Summary{
		RunID:          r.manager.RunID(),
		RunState:       r.manager.State(),
		Recorded:       r.aggregator.Len(),
		UnknownCaseIDs: unknown,
	}
}
