// Package injector splices the computed paths into the template files and
// writes the machine-specific outputs.
//
// Targets are processed in order and the run stops at the first failure.
// Outputs written before the failure stay on disk; there is no rollback and
// no atomic rename. A target whose template is too short fails before its
// output is touched.
package injector

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fanimeengine/prepenv/pkg/errors"
	"github.com/fanimeengine/prepenv/pkg/logging"
	"github.com/fanimeengine/prepenv/pkg/splice"
	"github.com/fanimeengine/prepenv/pkg/templates"
	"github.com/fanimeengine/prepenv/pkg/types"
	"github.com/rs/zerolog"
)

// OutputPerm is used when an output file is created
const OutputPerm fs.FileMode = 0644

// Options configures an Injector
type Options struct {
	// DryRun computes outputs and diffs without writing anything
	DryRun bool
}

// Injector processes templates.Target values against a filesystem
type Injector struct {
	fs     types.FS
	dryRun bool
	logger zerolog.Logger
}

// New creates an Injector
func New(fsys types.FS, opts Options) *Injector {
	return &Injector{
		fs:     fsys,
		dryRun: opts.DryRun,
		logger: logging.GetLogger("injector"),
	}
}

// Render reads the target's template and returns the spliced content.
func (inj *Injector) Render(target templates.Target) ([]byte, error) {
	data, err := inj.fs.ReadFile(target.Template)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, errors.ErrTemplateNotFound, "template for %s not found", target.Name).
				WithDetail("path", target.Template)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read template for %s", target.Name).
			WithDetail("path", target.Template)
	}

	lines, err := splice.Apply(splice.SplitLines(data), target.Edits...)
	if err != nil {
		return nil, errors.Wrapf(err, errors.GetErrorCode(err), "cannot splice %s", target.Template).
			WithDetail("target", target.Name)
	}
	return splice.Join(lines), nil
}

// Process renders one target and writes its output.
func (inj *Injector) Process(target templates.Target) Result {
	result := Result{
		Target:   target.Name,
		Template: target.Template,
		Output:   target.Output,
	}
	fail := func(err error) Result {
		result.Status = StatusFailed
		result.Err = err
		return result
	}

	content, err := inj.Render(target)
	if err != nil {
		return fail(err)
	}

	result.Warnings = formatWarnings(target.Output, content)
	for _, w := range result.Warnings {
		inj.logger.Warn().Str("target", target.Name).Str("output", target.Output).Msg(w)
	}

	if err := inj.checkParent(target); err != nil {
		return fail(err)
	}

	previous, existed, err := inj.readExisting(target)
	if err != nil {
		return fail(err)
	}
	result.Changed = !existed || string(previous) != string(content)
	if result.Changed {
		result.Diff = udiff.Unified(target.Output, target.Output, string(previous), string(content))
	}

	if inj.dryRun {
		result.Status = StatusPlanned
		inj.logger.Info().
			Str("target", target.Name).
			Str("output", target.Output).
			Bool("changed", result.Changed).
			Msg("Dry run, output not written")
		return result
	}

	if err := inj.fs.WriteFile(target.Output, content, OutputPerm); err != nil {
		return fail(errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", target.Output).
			WithDetail("target", target.Name))
	}

	result.Status = StatusWritten
	inj.logger.Info().
		Str("target", target.Name).
		Str("template", target.Template).
		Str("output", target.Output).
		Int("bytes", len(content)).
		Bool("changed", result.Changed).
		Msg("Wrote output")
	return result
}

// Run processes every target in order, stopping at the first failure. The
// returned results include the failed target.
func (inj *Injector) Run(targets []templates.Target) ([]Result, error) {
	done := logging.LogOperationStart(inj.logger, "inject")
	defer done()

	results := make([]Result, 0, len(targets))
	for _, target := range targets {
		result := inj.Process(target)
		results = append(results, result)
		if result.Err != nil {
			inj.logger.Error().Err(result.Err).Str("target", target.Name).Msg("Aborting run")
			return results, result.Err
		}
	}
	return results, nil
}

// Check compares every output with what Run would write, without writing.
// It returns an ErrStaleOutput error when any output is stale or missing.
func (inj *Injector) Check(targets []templates.Target) ([]Result, error) {
	results := make([]Result, 0, len(targets))
	stale := 0
	for _, target := range targets {
		result := Result{Target: target.Name, Template: target.Template, Output: target.Output}

		content, err := inj.Render(target)
		if err != nil {
			result.Status = StatusFailed
			result.Err = err
			results = append(results, result)
			return results, err
		}

		previous, existed, err := inj.readExisting(target)
		if err != nil {
			result.Status = StatusFailed
			result.Err = err
			results = append(results, result)
			return results, err
		}
		switch {
		case !existed:
			result.Status = StatusMissing
			result.Changed = true
		case string(previous) != string(content):
			result.Status = StatusStale
			result.Changed = true
			result.Diff = udiff.Unified(target.Output, target.Output, string(previous), string(content))
		default:
			result.Status = StatusCurrent
		}
		if result.Changed {
			stale++
		}
		results = append(results, result)
	}

	if stale > 0 {
		return results, errors.Newf(errors.ErrStaleOutput, "%d of %d outputs are out of date", stale, len(targets))
	}
	return results, nil
}

// readExisting returns the current output. A missing file is not an error.
func (inj *Injector) readExisting(target templates.Target) ([]byte, bool, error) {
	data, err := inj.fs.ReadFile(target.Output)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read existing %s", target.Output).
			WithDetail("target", target.Name)
	}
	return data, true, nil
}

// checkParent fails when the output's directory is absent. It is never
// created.
func (inj *Injector) checkParent(target templates.Target) error {
	dir := filepath.Dir(target.Output)
	info, err := inj.fs.Stat(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDirMissing, "output directory %s does not exist", dir).
			WithDetail("target", target.Name)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrDirMissing, "output parent %s is not a directory", dir).
			WithDetail("target", target.Name)
	}
	return nil
}
