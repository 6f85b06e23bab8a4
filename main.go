package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitrise-io/go-steputils/v2/export"
	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-go-test-testrail/caseid"
	"github.com/bitrise-steplib/steps-go-test-testrail/fileremover"
	"github.com/bitrise-steplib/steps-go-test-testrail/gotest"
	"github.com/bitrise-steplib/steps-go-test-testrail/output"
	"github.com/bitrise-steplib/steps-go-test-testrail/step"
	"github.com/bitrise-steplib/steps-go-test-testrail/testaddon"
	"github.com/bitrise-steplib/steps-go-test-testrail/testrail"
	"github.com/spf13/afero"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := log.NewLogger()
	envRepository := env.NewRepository()
	commandFactory := command.NewFactory(envRepository)
	goRunner := gotest.NewRunner(logger, commandFactory)

	goVersion, err := goRunner.Version()
	if err != nil {
		logger.Errorf("Failed to determine Go version: %s", err)
		return 1
	}

	configParser := step.NewTestRailConfigParser(stepconf.NewInputParser(envRepository), logger, goVersion, pathutil.NewPathModifier())
	config, err := configParser.ProcessConfig()
	if err != nil {
		logger.Errorf("Process config: %s", err)
		return 1
	}

	client := testrail.NewClient(testrail.ClientConfig{
		Host:     config.Host,
		Username: config.Username,
		APIKey:   string(config.APIKey),
	}, logger)

	fileExporter := export.NewExporter(commandFactory)
	testAddonExporter := testaddon.NewExporter(testaddon.NewTestAddon(logger, fileutil.NewFileManager()))
	fs := afero.NewOsFs()
	outputExporter := output.NewExporter(envRepository, logger, &fileExporter, testAddonExporter, fileremover.NewFileRemover(fs))

	testRailSync := step.NewTestRailSync(logger, goRunner, client, caseid.NewExtractor(fs), outputExporter)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	result, runErr := testRailSync.Run(ctx, config)

	if err := testRailSync.Export(result, runErr != nil); err != nil {
		logger.Warnf("Failed to export outputs: %s", err)
	}

	if runErr != nil {
		return 1
	}
	return 0
}
