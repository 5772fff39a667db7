// Package driver runs one generation pass: classify every annotated class,
// resolve its visibility and groups, emit and print the generated types, and
// hand the files to the output sink.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"update-object-generator/internal/classify"
	"update-object-generator/internal/descriptor"
	"update-object-generator/internal/diagnostic"
	"update-object-generator/internal/emit"
	"update-object-generator/internal/group"
	"update-object-generator/internal/output"
	"update-object-generator/internal/render"
	"update-object-generator/internal/visibility"
)

// Options configure a Driver.
type Options struct {
	// Concurrency bounds the number of classes processed at once.
	// Zero means runtime.GOMAXPROCS(0).
	Concurrency int
	Emit        emit.Options
	Logger      *slog.Logger
}

// Driver processes annotated classes into generated files.
type Driver struct {
	printer    render.Printer
	sink       output.Sink
	classifier *classify.FieldClassifier
	emitter    *emit.Emitter
	opts       Options
	logger     *slog.Logger
}

// Result summarizes a run.
type Result struct {
	// Files in class input order, then generation order within a class.
	Files       []output.GeneratedFile
	Diagnostics diagnostic.Diagnostics
	// Generated and Skipped count classes.
	Generated int
	Skipped   int
}

// New creates a Driver that prints with printer and writes to sink.
func New(printer render.Printer, sink output.Sink, opts Options) *Driver {
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Driver{
		printer:    printer,
		sink:       sink,
		classifier: classify.NewFieldClassifier(),
		emitter:    emit.New(opts.Emit),
		opts:       opts,
		logger:     logger,
	}
}

// classOutcome is the result of one class. Each worker owns one slot.
type classOutcome struct {
	files []output.GeneratedFile
	diags diagnostic.Diagnostics
	err   error
}

// Run processes classes. Class-scoped failures become error diagnostics and skip
// only that class; an unusable output root or colliding outputs end the run with
// an error.
func (d *Driver) Run(ctx context.Context, classes []descriptor.RawClass) (*Result, error) {
	res := &Result{}

	if len(classes) == 0 {
		res.Diagnostics.AddInfo(diagnostic.CodeNoAnnotatedClasses, "no annotated classes found", "", "")
		d.logger.Info("no annotated classes found")

		return res, nil
	}

	if err := d.sink.Prepare(); err != nil {
		res.Diagnostics.AddError(diagnostic.CodeOutputRootUnavailable, err.Error(), "", "")
		return res, fmt.Errorf("preparing output: %w", err)
	}

	d.logger.Debug("generation started",
		"classes", len(classes),
		"language", d.printer.Language(),
		"concurrency", d.opts.Concurrency)

	outcomes := make([]classOutcome, len(classes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Concurrency)

	for i := range classes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			outcomes[i] = d.processClass(&classes[i])

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return res, fmt.Errorf("generation interrupted: %w", err)
	}

	for i, o := range outcomes {
		res.Diagnostics.Merge(o.diags)

		if o.err != nil {
			res.Skipped++
			res.Diagnostics.AddClassError(classes[i].QualifiedName(), o.err)

			continue
		}

		res.Generated++
		res.Files = append(res.Files, o.files...)
	}

	if err := d.sink.Write(res.Files); err != nil {
		if errors.Is(err, diagnostic.ErrDuplicateOutput) {
			res.Diagnostics.AddError(diagnostic.CodeDuplicateOutput, err.Error(), "", "")
		}

		return res, fmt.Errorf("writing output: %w", err)
	}

	d.logger.Info("generation finished",
		"generated", res.Generated,
		"skipped", res.Skipped,
		"files", len(res.Files))

	return res, nil
}

func (d *Driver) processClass(raw *descriptor.RawClass) classOutcome {
	var out classOutcome

	name := raw.QualifiedName()
	log := d.logger.With("class", name)

	log.Debug("processing class", "target", raw.EffectiveTarget())

	class, err := d.classifier.ClassifyClass(raw, &out.diags)
	if err != nil {
		log.Warn("class skipped", "error", err)
		out.err = err

		return out
	}

	vis, err := visibility.Resolve(class)
	if err != nil {
		log.Warn("class skipped", "error", err)
		out.err = diagnostic.NewClassError(name, "", err)

		return out
	}

	groups := group.Collect(class.Fields)

	for _, f := range d.emitter.Emit(class, vis, groups) {
		text, err := d.printer.Print(f)
		if err != nil {
			log.Warn("class skipped", "type", f.Decl.Name, "error", err)
			out.err = diagnostic.NewClassError(name, "", err)
			out.files = nil

			return out
		}

		out.files = append(out.files, output.GeneratedFile{
			Class:   name,
			Package: f.Decl.Source.Package,
			Name:    f.Decl.Name,
			Path:    d.printer.Path(f),
			Content: text,
		})
	}

	log.Debug("class generated",
		"visibility", vis,
		"fields", len(class.Fields),
		"groups", len(groups))

	return out
}
