// Package render selects the printer that turns the document model into source
// text for a target language.
package render

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"update-object-generator/internal/codemodel"
	"update-object-generator/internal/render/golang"
	"update-object-generator/internal/render/kotlin"
)

// Target languages.
const (
	LanguageKotlin = "kotlin"
	LanguageGo     = "go"
)

// ErrUnknownLanguage is returned by New for a language without a printer.
var ErrUnknownLanguage = errors.New("unknown target language")

// Printer renders one generated file.
type Printer interface {
	Language() string
	FileExtension() string
	// Path returns the file path relative to the output root.
	Path(file *codemodel.File) string
	Print(file *codemodel.File) ([]byte, error)
}

var printers = map[string]func() Printer{
	LanguageKotlin: func() Printer { return kotlin.New() },
	LanguageGo:     func() Printer { return golang.New() },
}

// New returns the printer for lang.
func New(lang string) (Printer, error) {
	ctor, ok := printers[strings.ToLower(lang)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownLanguage, lang, strings.Join(Languages(), ", "))
	}

	return ctor(), nil
}

// Languages lists the supported target languages in sorted order.
func Languages() []string {
	out := make([]string, 0, len(printers))
	for lang := range printers {
		out = append(out, lang)
	}

	slices.Sort(out)

	return out
}
