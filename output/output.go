package output

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/bitrise-io/bitrise/configs"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-go-test-testrail/fileremover"
	"github.com/bitrise-steplib/steps-go-test-testrail/gotest"
	"github.com/bitrise-steplib/steps-go-test-testrail/testaddon"
)

const (
	testResultKey  = "GO_TEST_RESULT"
	testLogPathKey = "GO_TEST_LOG_PATH"
	runIDKey       = "TESTRAIL_RUN_ID"
	resultCountKey = "TESTRAIL_RESULT_COUNT"

	testLogFileName = "go_test.json"
)

// FileExporter copies a file to its destination and exposes the destination as a step output.
type FileExporter interface {
	ExportOutputFile(key, sourcePath, destinationPath string) error
}

// Exporter ...
type Exporter interface {
	ExportTestRunResult(failed bool)
	ExportRunID(runID int)
	ExportResultCount(count int)
	ExportTestLog(deployDir, testLog string) error
	ExportTestReport(name string, tests []gotest.FinishedTest)
}

type exporter struct {
	envRepository     env.Repository
	logger            log.Logger
	outputExporter    FileExporter
	testAddonExporter testaddon.Exporter
	fileRemover       fileremover.FileRemover
}

// NewExporter ...
func NewExporter(envRepository env.Repository, logger log.Logger, outputExporter FileExporter, testAddonExporter testaddon.Exporter, fileRemover fileremover.FileRemover) Exporter {
	return &exporter{
		envRepository:     envRepository,
		logger:            logger,
		outputExporter:    outputExporter,
		testAddonExporter: testAddonExporter,
		fileRemover:       fileRemover,
	}
}

func (e exporter) ExportTestRunResult(failed bool) {
	status := "succeeded"
	if failed {
		status = "failed"
	}
	e.set(testResultKey, status)
}

func (e exporter) ExportRunID(runID int) {
	if runID <= 0 {
		return
	}
	e.set(runIDKey, strconv.Itoa(runID))
}

func (e exporter) ExportResultCount(count int) {
	e.set(resultCountKey, strconv.Itoa(count))
}

func (e exporter) ExportTestLog(deployDir, testLog string) error {
	pth, err := saveRawOutputToLogFile(testLog)
	if err != nil {
		return fmt.Errorf("failed to save the raw go test output: %w", err)
	}
	defer func() {
		if err := e.fileRemover.RemoveAll(filepath.Dir(pth)); err != nil {
			e.logger.Warnf("Failed to clean up temporary log: %s", err)
		}
	}()

	deployPth := filepath.Join(deployDir, testLogFileName)
	if err := e.outputExporter.ExportOutputFile(testLogPathKey, pth, deployPth); err != nil {
		return fmt.Errorf("failed to export go test log from (%s) to (%s): %w", pth, deployPth, err)
	}

	return nil
}

func (e exporter) ExportTestReport(name string, tests []gotest.FinishedTest) {
	addonResultPath := e.envRepository.Get(configs.BitrisePerStepTestResultDirEnvKey)
	if len(addonResultPath) == 0 {
		e.logger.Debugf("%s is not set, skipping test report export", configs.BitrisePerStepTestResultDirEnvKey)
		return
	}

	e.logger.Println()
	e.logger.Infof("Exporting test results")

	if err := e.testAddonExporter.ExportReport(testaddon.ReportExport{
		Tests:                 tests,
		TargetAddonPath:       addonResultPath,
		TargetAddonBundleName: name,
	}); err != nil {
		e.logger.Warnf("Failed to export test results: %s", err)
	}
}

func (e exporter) set(key, value string) {
	if err := e.envRepository.Set(key, value); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", key, err)
	}
}
