package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"update-object-generator/internal/descriptor"
	"update-object-generator/internal/diagnostic"
	"update-object-generator/internal/report"
)

// Inspect prints how every annotated class would be generated.
type Inspect struct {
	Sources `embed:""`

	Export string `help:"Also write the collected classes to a descriptor file; the format follows the extension" type:"path"`

	Stdout io.Writer `kong:"-"`
}

// Run is called by Kong when the inspect command is executed.
func (c *Inspect) Run(logger *slog.Logger) error {
	classes, err := c.Sources.Load(logger)
	if err != nil {
		return err
	}

	var diags diagnostic.Diagnostics

	entries := report.Inspect(classes, &diags)
	logDiagnostics(logger, diags)

	w := c.Stdout
	if w == nil {
		w = os.Stdout
	}

	if _, err := io.WriteString(w, report.Render(entries)); err != nil {
		return err
	}

	if c.Export != "" {
		f := &descriptor.File{Version: descriptor.CurrentVersion, Classes: classes}
		if err := descriptor.WriteFile(f, c.Export); err != nil {
			return fmt.Errorf("exporting classes: %w", err)
		}

		logger.Info("classes exported", "file", c.Export, "classes", len(classes))
	}

	return nil
}
