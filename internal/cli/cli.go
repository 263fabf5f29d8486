package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/chipgrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("chipgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
chipgrid - experiment descriptors for chip classification runs.

Usage:
  chipgrid [options] [DEFINITION_PATH...]

Arguments:
  DEFINITION_PATH
    Path to a single .hcl file or a directory containing .hcl files.
    Experiments declared there are registered as hcl.<name>.

Examples:
  chipgrid -e potsdam -a root_uri=/opt/data/rv -a data_uri=s3://bucket/potsdam -a test_run=True
  chipgrid -list ./experiments

Options:
`)
		flagSet.PrintDefaults()
	}

	var defPaths stringList
	experimentArgs := keyValues{}

	selectorFlag := flagSet.String("e", "", "Experiment selector: a method name such as 'potsdam.main' or a set name such as 'potsdam'. Empty selects all.")
	flagSet.Var(&defPaths, "d", "Path to an HCL definition file or directory. Repeatable.")
	flagSet.Var(experimentArgs, "a", "Experiment argument as key=value. Repeatable.")
	formatFlag := flagSet.String("format", "yaml", "Output format. Options: 'yaml' or 'json'.")
	outFlag := flagSet.String("out", "", "Write the document to this file instead of standard output.")
	noPlanFlag := flagSet.Bool("no-plan", false, "Omit the command plans from the output.")
	listFlag := flagSet.Bool("list", false, "List the registered experiment methods and exit.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if len(args) == 0 {
		slog.Debug("No arguments provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	defPaths = append(defPaths, flagSet.Args()...)
	slog.Debug("Definition paths determined.", "paths", []string(defPaths))

	config, err := app.NewConfig(app.Config{
		Selector:        *selectorFlag,
		DefinitionPaths: defPaths,
		Args:            experimentArgs,
		Format:          strings.ToLower(*formatFlag),
		OutPath:         *outFlag,
		NoPlan:          *noPlanFlag,
		List:            *listFlag,
		LogFormat:       strings.ToLower(*logFormatFlag),
		LogLevel:        strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
