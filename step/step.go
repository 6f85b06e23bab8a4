package step

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-go-test-testrail/caseid"
	"github.com/bitrise-steplib/steps-go-test-testrail/gotest"
	"github.com/bitrise-steplib/steps-go-test-testrail/output"
	"github.com/bitrise-steplib/steps-go-test-testrail/reporter"
	"github.com/bitrise-steplib/steps-go-test-testrail/testrail"
	"github.com/bitrise-steplib/steps-go-test-testrail/testrun"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-version"
	shellquote "github.com/kballard/go-shellquote"
)

// go test -json is available since 1.10.
var minSupportedGoVersion = version.Must(version.NewVersion("1.10"))

const (
	defaultWorkDir  = "."
	defaultPackages = "./..."
)

// Input ...
type Input struct {
	// TestRail
	Host      string          `env:"testrail_host,required"`
	Username  string          `env:"testrail_username,required"`
	APIKey    stepconf.Secret `env:"testrail_api_key,required"`
	RunName   string          `env:"testrail_run_name,required"`
	ProjectID int             `env:"testrail_project_id,required"`
	SuiteID   int             `env:"testrail_suite_id,required"`
	RunID     int             `env:"testrail_run_id"`

	// go test
	TestDir       string `env:"test_dir,required"`
	WorkDir       string `env:"work_dir"`
	Packages      string `env:"packages"`
	GoTestOptions string `env:"go_test_options"`

	// Debug
	Verbose bool `env:"verbose,opt[yes,no]"`

	// Output export
	DeployDir string `env:"BITRISE_DEPLOY_DIR"`
}

// Config ...
type Config struct {
	Host      string
	Username  string
	APIKey    stepconf.Secret
	RunName   string
	ProjectID int
	SuiteID   int
	RunID     int

	TestDir       string
	WorkDir       string
	Packages      []string
	GoTestOptions []string

	DeployDir string
}

// PathModifier ...
type PathModifier interface {
	AbsPath(pth string) (string, error)
}

// TestRailConfigParser ...
type TestRailConfigParser struct {
	inputParser  stepconf.InputParser
	logger       log.Logger
	goVersion    *version.Version
	pathModifier PathModifier
}

// NewTestRailConfigParser ...
func NewTestRailConfigParser(inputParser stepconf.InputParser, logger log.Logger, goVersion *version.Version, pathModifier PathModifier) TestRailConfigParser {
	return TestRailConfigParser{
		inputParser:  inputParser,
		logger:       logger,
		goVersion:    goVersion,
		pathModifier: pathModifier,
	}
}

// ProcessConfig ...
func (s TestRailConfigParser) ProcessConfig() (Config, error) {
	var input Input
	if err := s.inputParser.Parse(&input); err != nil {
		return Config{}, err
	}

	stepconf.Print(input)
	s.logger.Println()

	s.logger.EnableDebugLog(input.Verbose)

	if err := validateInput(input); err != nil {
		return Config{}, fmt.Errorf("invalid inputs: %w", err)
	}

	// validate Go version
	s.logger.Printf("- go version: %s", s.goVersion)
	if s.goVersion.LessThan(minSupportedGoVersion) {
		return Config{}, fmt.Errorf("invalid Go version (%s), should not be less than min supported: %s", s.goVersion, minSupportedGoVersion)
	}
	s.logger.Println()

	testDir, err := s.pathModifier.AbsPath(input.TestDir)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute test directory path: %w", err)
	}

	workDir := input.WorkDir
	if workDir == "" {
		workDir = defaultWorkDir
	}
	workDir, err = s.pathModifier.AbsPath(workDir)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute working directory path: %w", err)
	}

	packages := strings.Fields(input.Packages)
	if len(packages) == 0 {
		packages = []string{defaultPackages}
	}

	options, err := shellquote.Split(input.GoTestOptions)
	if err != nil {
		return Config{}, fmt.Errorf("provided go_test_options (%s) are not valid CLI parameters: %w", input.GoTestOptions, err)
	}
	if options == nil {
		options = []string{}
	}

	return Config{
		Host:      input.Host,
		Username:  input.Username,
		APIKey:    input.APIKey,
		RunName:   input.RunName,
		ProjectID: input.ProjectID,
		SuiteID:   input.SuiteID,
		RunID:     input.RunID,

		TestDir:       testDir,
		WorkDir:       workDir,
		Packages:      packages,
		GoTestOptions: options,

		DeployDir: input.DeployDir,
	}, nil
}

func validateInput(input Input) error {
	return validation.ValidateStruct(&input,
		validation.Field(&input.Host, validation.Required, validation.By(isHTTPURL)),
		validation.Field(&input.Username, validation.Required),
		validation.Field(&input.RunName, validation.Required),
		validation.Field(&input.ProjectID, validation.Required, validation.Min(1)),
		validation.Field(&input.SuiteID, validation.Required, validation.Min(1)),
		validation.Field(&input.RunID, validation.Min(0)),
		validation.Field(&input.TestDir, validation.Required),
	)
}

func isHTTPURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return errors.New("must be a valid URL")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an http or https URL")
	}
	return nil
}

// TestRailSync ...
type TestRailSync struct {
	logger         log.Logger
	runner         gotest.Runner
	client         testrail.Client
	extractor      caseid.Extractor
	outputExporter output.Exporter
}

// NewTestRailSync ...
func NewTestRailSync(logger log.Logger, runner gotest.Runner, client testrail.Client, extractor caseid.Extractor, outputExporter output.Exporter) TestRailSync {
	return TestRailSync{
		logger:         logger,
		runner:         runner,
		client:         client,
		extractor:      extractor,
		outputExporter: outputExporter,
	}
}

// Result ...
type Result struct {
	RunName   string
	DeployDir string

	TestOutput gotest.Output
	Summary    reporter.Summary
}

// Run executes go test and reports the outcome of every titled test to TestRail.
func (s TestRailSync) Run(ctx context.Context, cfg Config) (Result, error) {
	manager := testrun.NewManager(testrun.Config{
		ProjectID: cfg.ProjectID,
		SuiteID:   cfg.SuiteID,
		RunID:     cfg.RunID,
		RunName:   cfg.RunName,
		TestDir:   cfg.TestDir,
	}, s.client, s.extractor, s.logger)
	listener := reporter.NewReporter(manager, s.logger)

	s.logger.Infof("Running go test")

	testOutput, testErr := s.runner.Run(ctx, gotest.RunParams{
		WorkDir:  cfg.WorkDir,
		Packages: cfg.Packages,
		Options:  cfg.GoTestOptions,
	}, listener)

	result := Result{
		RunName:    cfg.RunName,
		DeployDir:  cfg.DeployDir,
		TestOutput: testOutput,
		Summary:    listener.Summary(),
	}

	s.printSummary(result)

	if testErr != nil {
		s.logger.Println()
		s.logger.Warnf("go test exit code: %d", testOutput.ExitCode)
		s.logger.Errorf("go test failed: %s", testErr)
		return result, testErr
	}

	s.logger.Println()
	s.logger.Infof("go test succeeded.")

	return result, nil
}

// Export ...
func (s TestRailSync) Export(result Result, testFailed bool) error {
	s.outputExporter.ExportTestRunResult(testFailed)
	s.outputExporter.ExportRunID(result.Summary.RunID)
	s.outputExporter.ExportResultCount(result.Summary.Recorded)

	if result.DeployDir != "" && len(result.TestOutput.RawJSON) > 0 {
		if err := s.outputExporter.ExportTestLog(result.DeployDir, string(result.TestOutput.RawJSON)); err != nil {
			return err
		}
		s.printLogLocation()
	}

	if len(result.TestOutput.Tests) > 0 {
		s.outputExporter.ExportTestReport(result.RunName, result.TestOutput.Tests)
	}

	return nil
}
