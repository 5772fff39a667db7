// Package report renders what a generation run would produce for each annotated
// class as text tables.
package report

import (
	"fmt"
	"strings"

	"github.com/bndr/gotabulate"

	"update-object-generator/internal/classify"
	"update-object-generator/internal/descriptor"
	"update-object-generator/internal/diagnostic"
	"update-object-generator/internal/group"
	"update-object-generator/internal/model"
	"update-object-generator/internal/visibility"
)

const (
	tableFormat = "grid"
	maxCellSize = 60
	statusOK    = "ok"
	noValue     = "-"
)

// Entry is the inspection result of one class.
type Entry struct {
	Name       string
	Class      *model.ClassDescriptor
	Visibility model.Visibility
	Groups     []model.PartialGroup
	Err        error
}

// Inspect classifies every class the way a generation run would, without
// emitting anything. Benign findings are added to diags.
func Inspect(raws []descriptor.RawClass, diags *diagnostic.Diagnostics) []Entry {
	classifier := classify.NewFieldClassifier()
	entries := make([]Entry, 0, len(raws))

	for i := range raws {
		e := Entry{Name: raws[i].QualifiedName()}

		e.Class, e.Err = classifier.ClassifyClass(&raws[i], diags)
		if e.Err == nil {
			e.Visibility, e.Err = visibility.Resolve(e.Class)
		}

		if e.Err == nil {
			e.Groups = group.Collect(e.Class.Fields)
		}

		entries = append(entries, e)
	}

	return entries
}

// Summary renders one row per class.
func Summary(entries []Entry) string {
	if len(entries) == 0 {
		return "no annotated classes\n"
	}

	rows := make([][]any, 0, len(entries))

	for _, e := range entries {
		if e.Err != nil {
			rows = append(rows, []any{e.Name, noValue, noValue, noValue, noValue, e.Err.Error()})
			continue
		}

		rows = append(rows, []any{
			e.Name,
			e.Class.UpdateObjectName(),
			e.Visibility.String(),
			len(e.Class.Fields),
			orNone(groupNames(e.Groups)),
			statusOK,
		})
	}

	t := gotabulate.Create(rows)
	t.SetHeaders([]string{"Class", "Update object", "Visibility", "Fields", "Partial objects", "Status"})
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(maxCellSize)

	return t.Render(tableFormat)
}

// Fields renders the classified fields of one class.
func Fields(e Entry) string {
	if e.Err != nil || len(e.Class.Fields) == 0 {
		return fmt.Sprintf("%s: no fields\n", e.Name)
	}

	rows := make([][]any, 0, len(e.Class.Fields))
	for _, f := range e.Class.Fields {
		rows = append(rows, []any{
			f.Name,
			f.SourceType().String(),
			f.UpdateType().String(),
			f.Required,
			orNone(strings.Join(f.PartialGroups, ", ")),
			orNone(f.DefaultLiteral),
		})
	}

	t := gotabulate.Create(rows)
	t.SetHeaders([]string{"Field", "Type", "Update type", "Required", "Groups", "Default"})
	t.SetAlign("left")

	return fmt.Sprintf("%s:\n%s", e.Name, t.Render(tableFormat))
}

// Render renders the summary followed by the field table of every healthy class.
func Render(entries []Entry) string {
	var b strings.Builder

	b.WriteString(Summary(entries))

	for _, e := range entries {
		if e.Err != nil {
			continue
		}

		b.WriteString("\n")
		b.WriteString(Fields(e))
	}

	return b.String()
}

func groupNames(groups []model.PartialGroup) string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}

	return strings.Join(names, ", ")
}

func orNone(s string) string {
	if s == "" {
		return noValue
	}

	return s
}
