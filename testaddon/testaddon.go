package testaddon

import (
	"path/filepath"

	"github.com/bitrise-steplib/steps-go-test-testrail/gotest"
)

// Exporter ...
type Exporter interface {
	ExportReport(info ReportExport) error
}

type exporter struct {
	testAddon TestAddon
}

// NewExporter ...
func NewExporter(testAddon TestAddon) Exporter {
	return &exporter{
		testAddon: testAddon,
	}
}

// ReportExport ...
type ReportExport struct {
	Tests                 []gotest.FinishedTest
	TargetAddonPath       string
	TargetAddonBundleName string
}

func (e exporter) ExportReport(info ReportExport) error {
	info.TargetAddonBundleName = e.testAddon.ReplaceUnsupportedFilenameCharacters(info.TargetAddonBundleName)
	addonPerStepOutputDir := filepath.Join(info.TargetAddonPath, info.TargetAddonBundleName)

	if err := e.testAddon.WriteReport(addonPerStepOutputDir, NewReport(info.Tests)); err != nil {
		return err
	}
	if err := e.testAddon.SaveBundleMetadata(addonPerStepOutputDir, info.TargetAddonBundleName); err != nil {
		return err
	}
	return nil
}
