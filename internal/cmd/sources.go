package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"update-object-generator/internal/descriptor"
	"update-object-generator/internal/goscan"
)

// ErrNoSources is returned when neither descriptor files nor Go packages are given.
var ErrNoSources = errors.New("nothing to read: pass --descriptors or --packages")

// Sources selects where annotated classes are read from.
type Sources struct {
	Descriptors []string `help:"Descriptor files (.yaml, .yml, .json, .msgpack)" type:"existingfile" env:"UOG_DESCRIPTORS"`
	Packages    []string `help:"Go package patterns to scan for marked structs" env:"UOG_PACKAGES"`
	Dir         string   `help:"Directory Go package patterns are resolved in" default:"." type:"existingdir" env:"UOG_DIR"`
}

// Load reads descriptor files first, then scans Go packages.
func (s *Sources) Load(logger *slog.Logger) ([]descriptor.RawClass, error) {
	if len(s.Descriptors) == 0 && len(s.Packages) == 0 {
		return nil, ErrNoSources
	}

	var classes []descriptor.RawClass

	if len(s.Descriptors) > 0 {
		loaded, err := descriptor.LoadFiles(s.Descriptors...)
		if err != nil {
			return nil, err
		}

		logger.Debug("descriptors loaded", "files", len(s.Descriptors), "classes", len(loaded))
		classes = append(classes, loaded...)
	}

	if len(s.Packages) > 0 {
		scanned, err := goscan.NewScanner(s.Dir).Scan(s.Packages...)
		if err != nil {
			return nil, fmt.Errorf("scanning packages: %w", err)
		}

		logger.Debug("packages scanned", "patterns", s.Packages, "classes", len(scanned))
		classes = append(classes, scanned...)
	}

	return classes, nil
}
