package testaddon

import (
	"encoding/xml"
	"strings"

	"github.com/bitrise-steplib/steps-go-test-testrail/gotest"
)

// Report is the JUnit document the test addon reads.
type Report struct {
	XMLName    xml.Name    `xml:"testsuites"`
	TestSuites []TestSuite `xml:"testsuite"`
}

// TestSuite holds the tests of one Go package.
type TestSuite struct {
	XMLName   xml.Name   `xml:"testsuite"`
	Name      string     `xml:"name,attr"`
	Tests     int        `xml:"tests,attr"`
	Failures  int        `xml:"failures,attr"`
	Skipped   int        `xml:"skipped,attr"`
	Time      float64    `xml:"time,attr"`
	TestCases []TestCase `xml:"testcase"`
}

// TestCase ...
type TestCase struct {
	XMLName   xml.Name `xml:"testcase"`
	Name      string   `xml:"name,attr"`
	ClassName string   `xml:"classname,attr"`
	Time      float64  `xml:"time,attr"`
	Failure   *Failure `xml:"failure,omitempty"`
	Skipped   *Skipped `xml:"skipped,omitempty"`
}

// Failure ...
type Failure struct {
	XMLName xml.Name `xml:"failure,omitempty"`
	Message string   `xml:"message,attr,omitempty"`
	Value   string   `xml:",chardata"`
}

// Skipped ...
type Skipped struct {
	XMLName xml.Name `xml:"skipped,omitempty"`
}

// NewReport groups the tests by package, keeping the order packages first appear in.
func NewReport(tests []gotest.FinishedTest) Report {
	var report Report
	suiteIndex := map[string]int{}

	for _, test := range tests {
		idx, ok := suiteIndex[test.Case.Package]
		if !ok {
			idx = len(report.TestSuites)
			suiteIndex[test.Case.Package] = idx
			report.TestSuites = append(report.TestSuites, TestSuite{Name: test.Case.Package})
		}
		suite := &report.TestSuites[idx]

		testCase := TestCase{
			Name:      test.Case.Name,
			ClassName: test.Case.Package,
			Time:      test.Result.Duration.Seconds(),
		}

		switch test.Result.Status {
		case gotest.StatusPassed:
		case gotest.StatusSkipped:
			testCase.Skipped = &Skipped{}
			suite.Skipped++
		default:
			testCase.Failure = newFailure(test.Result)
			suite.Failures++
		}

		suite.Tests++
		suite.Time += testCase.Time
		suite.TestCases = append(suite.TestCases, testCase)
	}

	return report
}

func newFailure(result gotest.TestResult) *Failure {
	failure := &Failure{Message: string(result.Status)}
	if result.Error == nil {
		return failure
	}

	failure.Message = strings.TrimSpace(string(result.Status) + ": " + result.Error.Message)
	failure.Value = result.Error.Output
	return failure
}
