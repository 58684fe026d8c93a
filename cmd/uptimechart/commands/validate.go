package commands

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"

	storagefile "github.com/rcreports/uptimechart/internal/http/backend/storage/file"
	"github.com/rcreports/uptimechart/internal/log"
)

type validateCommand struct {
	reportsInput        string
	reportsExcludeRegex string
	reportsIncludeRegex string
	configPath          string
	pluginsPaths        []string
}

// NewValidateCommand returns the validate command.
func NewValidateCommand(app *kingpin.Application) Command {
	c := &validateCommand{}
	cmd := app.Command("validate", "Validates the uptime report data files and the configuration.")
	cmd.Flag("input", "Report discovery path, will discover recursively all YAML and JSON files.").Short('i').Required().StringVar(&c.reportsInput)
	cmd.Flag("fs-exclude", "Filter regex to ignore matched discovered report file paths.").Short('e').StringVar(&c.reportsExcludeRegex)
	cmd.Flag("fs-include", "Filter regex to include matched discovered report file paths, everything else will be ignored. Exclude has preference.").Short('n').StringVar(&c.reportsIncludeRegex)
	cmd.Flag("config", "The configuration file path to validate along the reports.").Short('c').StringVar(&c.configPath)
	cmd.Flag("plugins-path", "The path to color plugins (can be repeated).").Short('p').StringsVar(&c.pluginsPaths)

	return c
}

func (v validateCommand) Name() string { return "validate" }
func (v validateCommand) Run(ctx context.Context, config RootConfig) error {
	logger := config.Logger.WithValues(log.Kv{"command": v.Name()})

	if v.configPath != "" {
		plugins, err := newColorPluginRepo(logger, true, v.pluginsPaths)
		if err != nil {
			return fmt.Errorf("could not load color plugins: %w", err)
		}

		_, err = loadConfig(ctx, v.configPath, plugins)
		if err != nil {
			return err
		}
		logger.WithValues(log.Kv{"config": v.configPath}).Debugf("Configuration validated")
	}

	excludeRegex, err := compileOptionalRegex(v.reportsExcludeRegex)
	if err != nil {
		return fmt.Errorf("invalid exclude regex: %w", err)
	}
	includeRegex, err := compileOptionalRegex(v.reportsIncludeRegex)
	if err != nil {
		return fmt.Errorf("invalid include regex: %w", err)
	}

	paths, err := discoverReportFiles(logger, excludeRegex, includeRegex, v.reportsInput)
	if err != nil {
		return fmt.Errorf("could not discover files: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("0 report files have been discovered")
	}

	validations := []*fileValidation{}
	totalServices := 0
	for _, input := range paths {
		validation := &fileValidation{File: input}
		validations = append(validations, validation)

		data, err := os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("could not read report file data: %w", err)
		}

		report, err := storagefile.LoadReport(data)
		if err != nil {
			validation.Errs = append(validation.Errs, fmt.Errorf("invalid report: %w", err))
		} else {
			totalServices += len(report.Bullets)
		}

		// Don't wait until the end to show validation per file.
		logger := logger.WithValues(log.Kv{"file": validation.File})
		logger.Debugf("File validated")
		for _, err := range validation.Errs {
			logger.Errorf("%s", err)
		}
	}

	for _, v := range validations {
		if len(v.Errs) != 0 {
			return fmt.Errorf("validation failed")
		}
	}

	logger.WithValues(log.Kv{"reports": len(paths), "services": totalServices}).Infof("Validation succeeded")
	return nil
}

type fileValidation struct {
	File string
	Errs []error
}
