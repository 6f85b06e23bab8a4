package output

import (
	"fmt"
	"path/filepath"

	"github.com/bitrise-io/go-utils/fileutil"
	"github.com/bitrise-io/go-utils/pathutil"
)

func saveRawOutputToLogFile(rawOutput string) (string, error) {
	tmpDir, err := pathutil.NormalizedOSTempDirPath("go-test-output")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir, error: %s", err)
	}
	logPth := filepath.Join(tmpDir, "raw-go-test-output.json")
	if err := fileutil.WriteStringToFile(logPth, rawOutput); err != nil {
		return "", fmt.Errorf("failed to write go test output to file, error: %s", err)
	}

	return logPth, nil
}
