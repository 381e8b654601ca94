// =============================================================================
// passwd2json - Converter Module
// =============================================================================
//
// This module runs the whole conversion for one pair of input files.
//
// CONVERSION PIPELINE:
//   1. Read the account table into lines
//   2. Read the group table into lines
//   3. Parse account lines into records
//   4. Merge group memberships into a new record set
//   5. Render the record set as JSON
//   6. Check the rendered document against the output schema
//   7. Write the output file (atomically)
//   8. Write the optional XLSX report
//   9. Remove expired outputs from earlier runs
//
// Steps 1-6 finish before anything touches the output directory, so a
// failing run never leaves a partial output file.
//
// =============================================================================

package converter

import (
	"fmt"
	"time"

	"github.com/ginjaninja78/passwd2json/internal/accounts"
	"github.com/ginjaninja78/passwd2json/internal/config"
	"github.com/ginjaninja78/passwd2json/internal/groups"
	"github.com/ginjaninja78/passwd2json/internal/linereader"
	"github.com/ginjaninja78/passwd2json/internal/render"
	"github.com/ginjaninja78/passwd2json/internal/types"
	"github.com/ginjaninja78/passwd2json/internal/validation"
	"github.com/ginjaninja78/passwd2json/internal/xlsxreport"
	"github.com/ginjaninja78/passwd2json/pkg/utils"
)

// Stage names used in StageError and log messages.
const (
	StageReadAccounts  = "read account table"
	StageReadGroups    = "read group table"
	StageParseAccounts = "parse account table"
	StageRender        = "render JSON"
	StageSelfCheck     = "check output"
	StageWriteOutput   = "write output"
	StageWriteReport   = "write XLSX report"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one conversion run.
type Result struct {
	// PasswdPath and GroupPath are the input files.
	PasswdPath string
	GroupPath  string

	// OutputFile is the path of the written JSON file. It is empty when the
	// run fails before the write and in dry-run mode. If a later step (the
	// XLSX report) fails, it stays set while Success is false.
	OutputFile string

	// ReportFile is the path of the XLSX report, if one was written.
	ReportFile string

	// Document is the rendered JSON, without the trailing newline.
	Document []byte

	// Success indicates whether the run completed.
	Success bool

	// Error is a *types.StageError when the run failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about a run.
type ProcessingStats struct {
	// AccountLines is the number of lines in the account table.
	AccountLines int

	// Accounts is the number of distinct usernames.
	Accounts int

	// DuplicateUsernames is the number of account lines that replaced an
	// earlier line for the same username.
	DuplicateUsernames int

	// Groups holds the membership merger's counters.
	Groups groups.MergeStats

	// BytesWritten is the size of the output file.
	BytesWritten int

	// RemovedOutputs is the number of expired outputs deleted.
	RemovedOutputs int

	// ProcessingTime is the wall time of the run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Options are the per-run settings that come from the command line.
type Options struct {
	// PasswdPath is the account table.
	PasswdPath string

	// GroupPath is the group table.
	GroupPath string

	// OutputPath, when set, replaces the generated output file name.
	OutputPath string

	// DryRun stops after the self-check; nothing is written.
	DryRun bool
}

// Logger is an interface for logging. internal/logging provides the
// zerolog-backed implementation.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Converter converts one account table and one group table into JSON.
type Converter struct {
	opts      Options
	config    *config.Config
	files     *utils.FileManager
	validator *validation.Validator
	logger    Logger
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a Converter.
//
// PARAMETERS:
//   - opts: input paths and run flags.
//   - cfg: the application configuration (nil means defaults).
//   - logger: where progress is reported (nil discards it).
//
// RETURNS:
//   - A new Converter, or an error if the output schema cannot be compiled.
func New(opts Options, cfg *config.Config, logger Logger) (*Converter, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = nopLogger{}
	}

	validator, err := validation.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare output validator: %w", err)
	}

	return &Converter{
		opts:      opts,
		config:    cfg,
		files:     utils.NewFileManager(cfg.OutputDir, cfg.FileNameFormat),
		validator: validator,
		logger:    logger,
	}, nil
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline.
func (c *Converter) Run() (result Result) {
	startTime := time.Now()
	result = Result{
		PasswdPath: c.opts.PasswdPath,
		GroupPath:  c.opts.GroupPath,
	}

	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	// =========================================================================
	// STEPS 1-6: BUILD AND CHECK THE DOCUMENT
	// =========================================================================

	records, err := c.build(&result)
	if err != nil {
		result.Error = err
		return result
	}

	if c.opts.DryRun {
		c.logger.Info("Dry run: %d accounts rendered, nothing written", result.Stats.Accounts)
		result.Success = true
		return result
	}

	// =========================================================================
	// STEP 7: WRITE OUTPUT FILE
	// =========================================================================

	content := append(append([]byte{}, result.Document...), '\n')

	outputPath, err := c.writeOutput(content)
	if err != nil {
		result.Error = &types.StageError{Stage: StageWriteOutput, Err: err}
		return result
	}

	result.OutputFile = outputPath
	result.Stats.BytesWritten = len(content)
	c.logger.Info("Wrote %d accounts to %s", result.Stats.Accounts, outputPath)

	// =========================================================================
	// STEP 8: WRITE XLSX REPORT
	// =========================================================================

	if c.config.XLSXReport != "" {
		if err := xlsxreport.Write(c.config.XLSXReport, records.Records()); err != nil {
			result.Error = &types.StageError{Stage: StageWriteReport, Err: err}
			return result
		}
		result.ReportFile = c.config.XLSXReport
		c.logger.Info("Wrote XLSX report to %s", c.config.XLSXReport)
	}

	// =========================================================================
	// STEP 9: RETENTION
	// =========================================================================

	if c.config.RetentionDays > 0 && c.opts.OutputPath == "" {
		maxAge := time.Duration(c.config.RetentionDays) * 24 * time.Hour
		removed, err := c.files.CleanOldOutputs(maxAge, outputPath)
		if err != nil {
			// The new output is already in place; a failed cleanup only
			// delays removal until the next run.
			c.logger.Warn("Failed to remove expired outputs: %v", err)
		}
		result.Stats.RemovedOutputs = removed
		if removed > 0 {
			c.logger.Info("Removed %d expired output file(s)", removed)
		}
	}

	result.Success = true
	return result
}

// Check runs the pipeline up to the self-check and writes nothing.
func (c *Converter) Check() Result {
	opts := c.opts
	c.opts.DryRun = true
	defer func() { c.opts = opts }()

	return c.Run()
}

// build performs steps 1-6 and fills in result.Document and result.Stats.
func (c *Converter) build(result *Result) (*types.RecordSet, error) {
	// =========================================================================
	// STEP 1-2: READ INPUT FILES
	// =========================================================================

	c.logger.Debug("Reading account table: %s", c.opts.PasswdPath)
	accountLines, err := linereader.ReadLines(c.opts.PasswdPath)
	if err != nil {
		return nil, &types.StageError{Stage: StageReadAccounts, Err: err}
	}

	c.logger.Debug("Reading group table: %s", c.opts.GroupPath)
	groupLines, err := linereader.ReadLines(c.opts.GroupPath)
	if err != nil {
		return nil, &types.StageError{Stage: StageReadGroups, Err: err}
	}

	// =========================================================================
	// STEP 3: PARSE ACCOUNTS
	// =========================================================================
	// All account lines are parsed before any group line is looked at.

	parsed, err := accounts.Parse(accountLines)
	if err != nil {
		return nil, &types.StageError{Stage: StageParseAccounts, Err: err}
	}

	result.Stats.AccountLines = len(accountLines)
	result.Stats.Accounts = parsed.Len()
	result.Stats.DuplicateUsernames = len(accountLines) - parsed.Len()
	c.logger.Debug("Parsed %d accounts from %d lines", parsed.Len(), len(accountLines))

	if result.Stats.DuplicateUsernames > 0 {
		c.logger.Warn("%d duplicate username(s); later lines replaced earlier ones",
			result.Stats.DuplicateUsernames)
	}

	// =========================================================================
	// STEP 4: MERGE GROUP MEMBERSHIPS
	// =========================================================================

	merged, mergeStats := groups.Merge(parsed, groupLines)
	result.Stats.Groups = mergeStats
	c.logger.Debug("Merged %d memberships from %d group lines (%d without members, %d unknown members)",
		mergeStats.Memberships, mergeStats.Lines, mergeStats.Skipped, mergeStats.UnknownMembers)

	// =========================================================================
	// STEP 5: RENDER
	// =========================================================================

	document, err := render.Render(merged, render.Options{
		Indent:   c.config.Indent,
		SortKeys: c.config.SortKeys(),
	})
	if err != nil {
		return nil, &types.StageError{Stage: StageRender, Err: err}
	}

	// =========================================================================
	// STEP 6: SELF-CHECK
	// =========================================================================

	if err := c.validator.Validate(document); err != nil {
		return nil, &types.StageError{Stage: StageSelfCheck, Err: err}
	}

	result.Document = document
	return merged, nil
}

// writeOutput writes content either to the caller-supplied path or to a
// generated name in the output directory.
func (c *Converter) writeOutput(content []byte) (string, error) {
	if c.opts.OutputPath != "" {
		if err := utils.WriteFileAtomic(c.opts.OutputPath, content); err != nil {
			return "", err
		}
		return c.opts.OutputPath, nil
	}

	return c.files.WriteOutput(content)
}

// =============================================================================
// DEFAULT LOGGER
// =============================================================================

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
