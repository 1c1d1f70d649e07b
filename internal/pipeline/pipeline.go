// Package pipeline runs declared types through inspection, linking,
// checking, assembly and emission.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mvvmgen/internal/check"
	"mvvmgen/internal/config"
	"mvvmgen/internal/diag"
	"mvvmgen/internal/generator"
	"mvvmgen/internal/inspect"
	"mvvmgen/internal/link"
	"mvvmgen/internal/model"
	"mvvmgen/internal/plan"
)

// TypeResult is the outcome for one declared type.
type TypeResult struct {
	TypeName    string            `json:"type"`
	FileName    string            `json:"file,omitempty"`
	Source      string            `json:"-"`
	Generated   bool              `json:"generated"`
	Diagnostics []diag.Diagnostic `json:"diagnostics,omitempty"`
	Failure     string            `json:"failure,omitempty"`
	Err         error             `json:"-"` // emission failure, set by ProcessFile
}

// Engine processes declarations with one configuration. It holds no per-type
// state, so a single Engine may process types concurrently.
type Engine struct {
	cfg       *config.Config
	logger    *zap.Logger
	inspector *inspect.Inspector
	generator *generator.Generator
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for progress output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Engine for cfg.
func New(cfg *config.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:       cfg,
		logger:    zap.NewNop(),
		inspector: inspect.New(cfg),
		generator: generator.New(cfg),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProcessType turns one declared type into generated source and diagnostics.
// User data problems are reported as diagnostics; the returned error is only
// set when emission itself failed.
func (e *Engine) ProcessType(decl *model.TypeDecl, dtos inspect.DtoSource) (TypeResult, error) {
	opts := e.cfg.Options
	res := TypeResult{TypeName: decl.FullName()}
	c := diag.NewCollector(res.TypeName, opts.Strict, opts.Quiet)
	log := e.logger.With(zap.String("type", res.TypeName))

	r := e.inspector.Inspect(decl, dtos)
	d := &r.Descriptors

	link.Link(d.ObservableProperties, d.ComputedProperties)
	link.LinkCommands(d.ObservableProperties, d.RelayCommands)
	link.LinkCanExecute(d.ObservableProperties, d.RelayCommands)

	ok := check.Check(check.Input{
		Decl:        decl,
		Platform:    opts.Platform,
		Descriptors: d,
		Rejected:    r.Rejected,
		Unresolved:  link.Unresolved(d),
		Strict:      opts.Strict,
	}, c)
	res.Diagnostics = c.Diagnostics()
	if !ok {
		log.Warn("skipping type with conflicting generated members", zap.Int("diagnostics", len(res.Diagnostics)))
		return res, nil
	}

	p := plan.Assemble(decl, opts.Platform, *d)
	if !p.FoundAnythingToGenerate() {
		log.Debug("nothing to generate")
		return res, nil
	}

	src, err := e.generator.Generate(p)
	if err != nil {
		return res, fmt.Errorf("generating %s: %w", res.TypeName, err)
	}
	res.FileName = generator.FileName(p)
	res.Source = src
	res.Generated = true

	log.Debug("generated",
		zap.String("file", res.FileName),
		zap.Int("properties", len(p.AllProperties())),
		zap.Int("commands", len(p.RelayCommands)),
		zap.Int("diagnostics", len(res.Diagnostics)),
	)
	return res, nil
}

// ProcessFile processes every selected type of file in parallel. Results keep
// the declaration order of the manifest. An emission failure is stored on the
// result of its type and does not stop the others.
func (e *Engine) ProcessFile(ctx context.Context, file *model.File) ([]TypeResult, error) {
	var selected []*model.TypeDecl
	for i := range file.Types {
		t := &file.Types[i]
		if e.cfg.ShouldIncludeType(t.Name, t.IsPublic()) {
			selected = append(selected, t)
		}
	}

	results := make([]TypeResult, len(selected))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, e.cfg.Options.Parallelism))
	for i, decl := range selected {
		i, decl := i, decl
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := e.ProcessType(decl, file)
			if err != nil {
				e.logger.Error("emission failed", zap.String("type", res.TypeName), zap.Error(err))
				res.Err = err
				res.Failure = err.Error()
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Info("processed manifest",
		zap.String("path", file.Path),
		zap.Int("types", len(selected)),
		zap.Int("generated", countGenerated(results)),
		zap.String("diagnostics", diag.Summary(Diagnostics(results))),
	)
	return results, nil
}

// Diagnostics flattens the diagnostics of all results.
func Diagnostics(results []TypeResult) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, r := range results {
		out = append(out, r.Diagnostics...)
	}
	return out
}

// Failures returns the emission failures of results.
func Failures(results []TypeResult) []error {
	var out []error
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r.Err)
		}
	}
	return out
}

// HasErrors reports whether any result failed or carries an error diagnostic.
func HasErrors(results []TypeResult) bool {
	if len(Failures(results)) > 0 {
		return true
	}
	for _, d := range Diagnostics(results) {
		if d.Severity == diag.SeverityError {
			return true
		}
	}
	return false
}

func countGenerated(results []TypeResult) int {
	n := 0
	for _, r := range results {
		if r.Generated {
			n++
		}
	}
	return n
}
