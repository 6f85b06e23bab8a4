package step

import (
	"fmt"
	"strings"

	"github.com/bitrise-io/go-utils/colorstring"
	"github.com/bitrise-io/go-utils/stringutil"
	"github.com/bitrise-steplib/steps-go-test-testrail/gotest"
)

const stderrLastLines = 20

func (s TestRailSync) printSummary(result Result) {
	counts := map[gotest.Status]int{}
	for _, test := range result.TestOutput.Tests {
		counts[test.Result.Status]++
	}

	s.logger.Println()
	s.logger.Infof("Summary")
	s.logger.Printf("- tests: %d", len(result.TestOutput.Tests))
	s.logger.Printf("- %s: %d", colorstring.Green("passed"), counts[gotest.StatusPassed])
	s.logger.Printf("- %s: %d", colorstring.Red("failed"), counts[gotest.StatusFailed]+counts[gotest.StatusTimedOut]+counts[gotest.StatusInterrupted])
	s.logger.Printf("- %s: %d", colorstring.Yellow("skipped"), counts[gotest.StatusSkipped])

	summary := result.Summary
	if summary.RunID != 0 {
		s.logger.Printf("- TestRail run: %d (%s)", summary.RunID, summary.RunState)
	} else {
		s.logger.Printf("- TestRail run: none (%s)", summary.RunState)
	}
	s.logger.Printf("- results recorded: %d", summary.Recorded)

	if len(summary.UnknownCaseIDs) > 0 {
		ids := make([]string, 0, len(summary.UnknownCaseIDs))
		for _, id := range summary.UnknownCaseIDs {
			ids = append(ids, fmt.Sprintf("C%d", id))
		}
		s.logger.Warnf("Case IDs referenced by test titles but not found in the test directory: %s", strings.Join(ids, ", "))
	}

	if stderr := strings.TrimSpace(result.TestOutput.Stderr); stderr != "" {
		s.logger.Println()
		s.logger.Warnf("Last lines of the go test error output:")
		s.logger.Printf("%s", stringutil.LastNLines(stderr, stderrLastLines))
	}
}

func (s TestRailSync) printLogLocation() {
	s.logger.Infof(colorstring.Magenta(`
The go test json log is stored in $BITRISE_DEPLOY_DIR, and its full path
is available in the $GO_TEST_LOG_PATH environment variable.`))
}
