package testaddon

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
)

const (
	reportFileName   = "go-test.xml"
	metadataFileName = "test-info.json"
)

type TestAddon interface {
	ReplaceUnsupportedFilenameCharacters(s string) string
	WriteReport(outputDir string, report Report) error
	SaveBundleMetadata(outputDir string, bundleName string) error
}

type testAddon struct {
	logger      log.Logger
	fileManager fileutil.FileManager
}

func NewTestAddon(logger log.Logger, fileManager fileutil.FileManager) TestAddon {
	return &testAddon{
		logger:      logger,
		fileManager: fileManager,
	}
}

// ReplaceUnsupportedFilenameCharacters Replaces characters '/' and ':', which are unsupported in filnenames on macOS
func (t testAddon) ReplaceUnsupportedFilenameCharacters(s string) string {
	s = strings.Replace(s, "/", "-", -1)
	s = strings.Replace(s, ":", "-", -1)
	return s
}

func (t testAddon) WriteReport(outputDir string, report Report) error {
	content, err := xml.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode test report: %w", err)
	}

	pth := filepath.Join(outputDir, reportFileName)
	if err := t.fileManager.Write(pth, xml.Header+string(content), 0600); err != nil {
		return fmt.Errorf("failed to write test report (%s): %w", pth, err)
	}
	t.logger.Donef("Test report written to %s", pth)

	return nil
}

func (t testAddon) SaveBundleMetadata(outputDir string, bundleName string) error {
	// Save test bundle metadata
	type testBundle struct {
		BundleName string `json:"test-name"`
	}
	bytes, err := json.Marshal(testBundle{
		BundleName: bundleName,
	})
	if err != nil {
		return fmt.Errorf("could not encode metadata: %w", err)
	}
	if err = t.fileManager.Write(filepath.Join(outputDir, metadataFileName), string(bytes), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
