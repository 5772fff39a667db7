// Package output persists generated files under an output root.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"update-object-generator/internal/diagnostic"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// GeneratedFile is one rendered type ready to be written.
type GeneratedFile struct {
	// Class is the qualified name of the class the file was generated for.
	Class string
	// Package and Name identify the generated type.
	Package string
	Name    string
	// Path is relative to the output root.
	Path    string
	Content []byte
}

// Key returns the (package, name) pair the file occupies.
func (f GeneratedFile) Key() string {
	if f.Package == "" {
		return f.Name
	}

	return f.Package + "." + f.Name
}

// Sink receives the generated files of a run.
type Sink interface {
	// Prepare checks that the destination is usable. It is called before any
	// class is processed.
	Prepare() error
	Write(files []GeneratedFile) error
}

// CheckCollisions reports the first pair of files that share a (package, name)
// pair or a path.
func CheckCollisions(files []GeneratedFile) error {
	byKey := make(map[string]GeneratedFile, len(files))
	byPath := make(map[string]GeneratedFile, len(files))

	for _, f := range files {
		if prev, ok := byKey[f.Key()]; ok {
			return fmt.Errorf("%w: %s generated for both %s and %s", diagnostic.ErrDuplicateOutput, f.Key(), prev.Class, f.Class)
		}

		path := filepath.Clean(f.Path)
		if prev, ok := byPath[path]; ok {
			return fmt.Errorf("%w: %s written by both %s and %s", diagnostic.ErrDuplicateOutput, path, prev.Key(), f.Key())
		}

		byKey[f.Key()] = f
		byPath[path] = f
	}

	return nil
}

// FileSink writes files below Root.
type FileSink struct {
	Root string
	// Create makes Prepare create a missing root instead of failing.
	Create bool
}

// NewFileSink creates a FileSink.
func NewFileSink(root string, create bool) *FileSink {
	return &FileSink{Root: root, Create: create}
}

// Prepare checks that Root is an existing directory.
func (s *FileSink) Prepare() error {
	if s.Root == "" {
		return fmt.Errorf("%w: no output root configured", diagnostic.ErrOutputRootUnavailable)
	}

	info, err := os.Stat(s.Root)

	switch {
	case errors.Is(err, fs.ErrNotExist) && s.Create:
		if err := os.MkdirAll(s.Root, dirPerm); err != nil {
			return fmt.Errorf("%w: %w", diagnostic.ErrOutputRootUnavailable, err)
		}

		return nil
	case err != nil:
		return fmt.Errorf("%w: %w", diagnostic.ErrOutputRootUnavailable, err)
	case !info.IsDir():
		return fmt.Errorf("%w: %s is not a directory", diagnostic.ErrOutputRootUnavailable, s.Root)
	}

	return nil
}

// Write checks for collisions and writes every file, creating parent
// directories as needed. Nothing is written when two files collide.
func (s *FileSink) Write(files []GeneratedFile) error {
	if err := CheckCollisions(files); err != nil {
		return err
	}

	return WriteFiles(files, s.Root)
}

// WriteFiles writes all files below the output directory.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Path)

		err := os.MkdirAll(filepath.Dir(outputPath), dirPerm)
		if err != nil {
			return fmt.Errorf("creating directory for %s: %w", file.Path, err)
		}

		err = os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Path, err)
		}
	}

	return nil
}

// MemorySink keeps the files in memory. It backs dry runs and tests.
type MemorySink struct {
	mu    sync.Mutex
	files []GeneratedFile
}

// Prepare always succeeds.
func (s *MemorySink) Prepare() error { return nil }

// Write records files after the same collision check FileSink performs.
func (s *MemorySink) Write(files []GeneratedFile) error {
	if err := CheckCollisions(files); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.files = append(s.files, files...)

	return nil
}

// Files returns the recorded files.
func (s *MemorySink) Files() []GeneratedFile {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]GeneratedFile(nil), s.files...)
}
