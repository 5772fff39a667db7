package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"update-object-generator/internal/diagnostic"
	"update-object-generator/internal/driver"
	"update-object-generator/internal/emit"
	"update-object-generator/internal/output"
	"update-object-generator/internal/render"
)

// Generate writes update objects for every annotated class.
type Generate struct {
	Sources `embed:""`

	Out                string `help:"Output root for generated files" default:"." type:"path" env:"UOG_OUT"`
	CreateOut          bool   `help:"Create the output root when it does not exist" env:"UOG_CREATE_OUT"`
	Lang               string `help:"Target language" enum:"kotlin,go" default:"kotlin" env:"UOG_LANG"`
	Concurrency        int    `help:"Classes processed in parallel (0 uses GOMAXPROCS)" default:"0" env:"UOG_CONCURRENCY"`
	MutableCollections bool   `help:"Use mutable collection types in update objects" env:"UOG_MUTABLE_COLLECTIONS"`
	DryRun             bool   `help:"List the files that would be written without writing them"`

	Stdout io.Writer `kong:"-"`
}

// Run is called by Kong when the generate command is executed.
func (c *Generate) Run(logger *slog.Logger) error {
	classes, err := c.Sources.Load(logger)
	if err != nil {
		return err
	}

	printer, err := render.New(c.Lang)
	if err != nil {
		return err
	}

	var (
		sink output.Sink
		mem  *output.MemorySink
	)

	if c.DryRun {
		mem = &output.MemorySink{}
		sink = mem
	} else {
		sink = output.NewFileSink(c.Out, c.CreateOut)
	}

	logger.Info("generating update objects", "classes", len(classes), "lang", c.Lang, "out", c.Out)

	d := driver.New(printer, sink, driver.Options{
		Concurrency: c.Concurrency,
		Emit:        emit.Options{MutableCollections: c.MutableCollections},
		Logger:      logger,
	})

	res, err := d.Run(context.Background(), classes)

	if res != nil {
		logDiagnostics(logger, res.Diagnostics)
	}

	if err != nil {
		return err
	}

	if mem != nil {
		w := c.Stdout
		if w == nil {
			w = os.Stdout
		}

		for _, f := range mem.Files() {
			fmt.Fprintf(w, "%s\t%d bytes\t(%s)\n", f.Path, len(f.Content), f.Class)
		}
	}

	if res.Diagnostics.HasErrors() {
		return fmt.Errorf("generation finished with %d error(s); %d class(es) skipped",
			len(res.Diagnostics.Errors), res.Skipped)
	}

	return nil
}

func logDiagnostics(logger *slog.Logger, diags diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		attrs := []any{"code", d.Code}
		if d.Class != "" {
			attrs = append(attrs, "class", d.Class)
		}

		if d.Field != "" {
			attrs = append(attrs, "field", d.Field)
		}

		switch d.Severity {
		case diagnostic.SeverityError:
			logger.Error(d.Message, attrs...)
		case diagnostic.SeverityWarning:
			logger.Warn(d.Message, attrs...)
		default:
			logger.Info(d.Message, attrs...)
		}
	}
}
