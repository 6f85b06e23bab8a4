// Package testrun creates or updates the TestRail run of a session and submits its results.
package testrun

import (
	"context"
	"fmt"
	"time"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-go-test-testrail/caseid"
	"github.com/bitrise-steplib/steps-go-test-testrail/testrail"
)

const runNameTimeLayout = "2006-01-02 15:04:05"

// State ...
type State string

// Run states ...
const (
	StateNoRun    State = "no-run"
	StateCreating State = "creating"
	StateCreated  State = "created"
	StateUpdating State = "updating"
	StateUpdated  State = "updated"
)

// Config ...
type Config struct {
	ProjectID int
	SuiteID   int
	// RunID is the run to reuse; zero means a new run is created.
	RunID   int
	RunName string
	TestDir string
}

// Manager ...
type Manager interface {
	Begin(ctx context.Context) error
	Submit(ctx context.Context, results []testrail.Result)
	State() State
	RunID() int
	CaseIDs() []int
}

type manager struct {
	config    Config
	client    testrail.Client
	extractor caseid.Extractor
	logger    log.Logger
	now       func() time.Time

	state   State
	run     *testrail.Run
	caseIDs []int
}

// NewManager ...
func NewManager(config Config, client testrail.Client, extractor caseid.Extractor, logger log.Logger) Manager {
	return &manager{
		config:    config,
		client:    client,
		extractor: extractor,
		logger:    logger,
		now:       time.Now,
		state:     StateNoRun,
	}
}

// Begin creates a new run, or updates the configured one, with the case IDs found in the test directory.
// Only extraction errors are returned; TestRail errors are logged and leave the session without a confirmed run.
func (m *manager) Begin(ctx context.Context) error {
	if m.config.RunID == 0 {
		return m.create(ctx)
	}
	return m.update(ctx)
}

func (m *manager) create(ctx context.Context) error {
	m.state = StateCreating

	caseIDs, err := m.extract()
	if err != nil {
		return err
	}

	name := fmt.Sprintf("%s - Created On %s", m.config.RunName, m.now().Format(runNameTimeLayout))
	m.logger.Infof("Creating TestRail run: %s", name)
	m.logger.Printf("- project: %d, suite: %d, cases: %d", m.config.ProjectID, m.config.SuiteID, len(caseIDs))

	run, err := m.client.AddRun(ctx, m.config.ProjectID, testrail.AddRunRequest{
		SuiteID:    m.config.SuiteID,
		Name:       name,
		IncludeAll: false,
		CaseIDs:    caseIDs,
	})
	if err != nil {
		m.logger.Errorf("Failed to create TestRail run: %s", err)
		return nil
	}

	m.run = &run
	m.state = StateCreated
	m.logger.Donef("Created TestRail run %d: %s", run.ID, run.URL)

	return nil
}

func (m *manager) update(ctx context.Context) error {
	m.state = StateUpdating

	caseIDs, err := m.extract()
	if err != nil {
		return err
	}

	m.logger.Infof("Updating TestRail run %d", m.config.RunID)
	m.logger.Printf("- cases: %d", len(caseIDs))

	run, err := m.client.UpdateRun(ctx, m.config.RunID, testrail.UpdateRunRequest{
		IncludeAll: false,
		CaseIDs:    caseIDs,
	})
	if err != nil {
		m.logger.Errorf("Failed to update TestRail run %d: %s", m.config.RunID, err)
		return nil
	}

	if run.ID == 0 {
		run.ID = m.config.RunID
	}
	m.run = &run
	m.state = StateUpdated
	m.logger.Donef("Updated TestRail run %d: %s", run.ID, run.URL)

	return nil
}

func (m *manager) extract() ([]int, error) {
	caseIDs, err := m.extractor.Extract(m.config.TestDir)
	if err != nil {
		return nil, fmt.Errorf("failed to collect case IDs: %w", err)
	}
	m.caseIDs = caseIDs
	m.logger.Debugf("Case IDs in %s: %v", m.config.TestDir, caseIDs)
	return caseIDs, nil
}

// Submit uploads all results in one request. Failures are logged.
func (m *manager) Submit(ctx context.Context, results []testrail.Result) {
	runID := m.RunID()
	if runID == 0 {
		m.logger.Warnf("No TestRail run available, %d result(s) not submitted", len(results))
		return
	}

	if len(results) == 0 {
		m.logger.Printf("No results to submit to TestRail run %d", runID)
		return
	}

	m.logger.Infof("Submitting %d result(s) to TestRail run %d", len(results), runID)

	if err := m.client.AddResultsForCases(ctx, runID, testrail.AddResultsRequest{Results: results}); err != nil {
		m.logger.Errorf("Failed to submit results to TestRail run %d: %s", runID, err)
		return
	}

	m.logger.Donef("Results submitted")
}

func (m *manager) State() State {
	return m.state
}

// RunID is the confirmed run's ID, falling back to the configured one.
func (m *manager) RunID() int {
	if m.run != nil {
		return m.run.ID
	}
	return m.config.RunID
}

func (m *manager) CaseIDs() []int {
	return m.caseIDs
}
