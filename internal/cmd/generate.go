package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"go.uber.org/zap"

	"mvvmgen/internal/config"
	"mvvmgen/internal/diag"
	"mvvmgen/internal/parser"
	"mvvmgen/internal/pipeline"
)

// ErrDiagnostics is returned when a run reported error diagnostics.
var ErrDiagnostics = errors.New("generation reported errors")

// Input selects manifests and types shared by generate and watch.
type Input struct {
	Manifests      []string `arg:"" name:"manifest" help:"Declaration manifests (YAML or JSON)." type:"existingfile"`
	Output         string   `help:"Directory for generated files. Sources go to stdout when empty." short:"o" type:"path"`
	Types          []string `help:"Only generate these types (comma-separated)." short:"T" sep:","`
	Exclude        []string `help:"Skip these types (comma-separated)." short:"X" sep:","`
	Parallelism    int      `help:"Types processed concurrently; 0 keeps the configured value." short:"j"`
	StrictManifest bool     `help:"Reject manifest keys that map to no declaration field."`
	Diagnostics    string   `help:"Diagnostics output format." enum:"text,json" default:"text"`
	Report         string   `help:"Also write a JSON report of the run to this file." type:"path"`
}

func (in *Input) apply(cfg *config.Config) {
	if len(in.Types) > 0 {
		cfg.Options.IncludeTypes = in.Types
	}
	if len(in.Exclude) > 0 {
		cfg.Options.ExcludeTypes = in.Exclude
	}
	if in.Parallelism > 0 {
		cfg.Options.Parallelism = in.Parallelism
	}
}

// Report is the machine readable outcome of a run.
type Report struct {
	RunID     RunID             `json:"runId"`
	Platform  config.Platform   `json:"platform"`
	Manifests []ManifestReport  `json:"manifests"`
	Summary   string            `json:"summary"`
	Errors    bool              `json:"errors"`
	all       []diag.Diagnostic // flattened, for text output
	failures  []error
}

// ManifestReport lists the per-type results of one manifest.
type ManifestReport struct {
	Path  string                `json:"path"`
	Types []pipeline.TypeResult `json:"types"`
}

// runner executes one generation pass.
type runner struct {
	cfg    *config.Config
	logger *zap.Logger
	runID  RunID
	in     *Input
	stdout io.Writer
	stderr io.Writer
}

func (r *runner) run(ctx context.Context) (*Report, error) {
	p := parser.New()
	p.Strict = r.in.StrictManifest
	engine := pipeline.New(r.cfg, pipeline.WithLogger(r.logger))

	report := &Report{RunID: r.runID, Platform: r.cfg.Options.Platform}
	for _, path := range r.in.Manifests {
		file, err := p.ParseFile(path)
		if err != nil {
			return nil, err
		}
		results, err := engine.ProcessFile(ctx, file)
		if err != nil {
			return nil, err
		}
		if err := r.write(results); err != nil {
			return nil, err
		}
		report.Manifests = append(report.Manifests, ManifestReport{Path: path, Types: results})
		report.all = append(report.all, pipeline.Diagnostics(results)...)
		report.failures = append(report.failures, pipeline.Failures(results)...)
		report.Errors = report.Errors || pipeline.HasErrors(results)
	}
	report.Summary = diag.Summary(report.all)

	if err := r.printDiagnostics(report); err != nil {
		return nil, err
	}
	if r.in.Report != "" {
		if err := writeReport(r.in.Report, report); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// write stores generated sources. Files whose content is unchanged are left
// untouched so their timestamps do not move.
func (r *runner) write(results []pipeline.TypeResult) error {
	for _, res := range results {
		if !res.Generated {
			continue
		}
		if r.in.Output == "" {
			if _, err := io.WriteString(r.stdout, res.Source); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(r.in.Output, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		dest := filepath.Join(r.in.Output, res.FileName)
		if old, err := os.ReadFile(dest); err == nil && bytes.Equal(old, []byte(res.Source)) {
			r.logger.Debug("unchanged", zap.String("file", dest))
			continue
		}
		if err := os.WriteFile(dest, []byte(res.Source), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}
		r.logger.Info("wrote", zap.String("file", dest))
	}
	return nil
}

func (r *runner) printDiagnostics(report *Report) error {
	if r.in.Diagnostics == "json" {
		return json.MarshalWrite(r.stderr, report, jsontext.WithIndent("  "))
	}
	for _, f := range report.failures {
		if _, err := fmt.Fprintf(r.stderr, "fatal: %v\n", f); err != nil {
			return err
		}
	}
	for _, d := range report.all {
		if _, err := fmt.Fprintln(r.stderr, d.String()); err != nil {
			return err
		}
	}
	if len(report.all) > 0 {
		_, err := fmt.Fprintln(r.stderr, report.Summary)
		return err
	}
	return nil
}

func writeReport(path string, report *Report) error {
	data, err := json.Marshal(report, jsontext.WithIndent("  "))
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// Generate runs one generation pass.
type Generate struct {
	Input `embed:""`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(cfg *config.Config, logger *zap.Logger, runID RunID) error {
	g.apply(cfg)
	r := &runner{cfg: cfg, logger: logger, runID: runID, in: &g.Input, stdout: os.Stdout, stderr: os.Stderr}
	report, err := r.run(context.Background())
	if err != nil {
		return err
	}
	if report.Errors {
		return ErrDiagnostics
	}
	return nil
}
