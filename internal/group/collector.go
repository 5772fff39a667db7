// Package group derives partial groups from classified fields.
package group

import "update-object-generator/internal/model"

// Collect returns one group per distinct group name, ordered by first appearance
// while scanning fields in declaration order. Each group keeps its fields in
// declaration order; a field may appear in several groups.
func Collect(fields []model.FieldDescriptor) []model.PartialGroup {
	var groups []model.PartialGroup

	index := map[string]int{}

	for _, f := range fields {
		for _, name := range f.PartialGroups {
			i, ok := index[name]
			if !ok {
				i = len(groups)
				index[name] = i
				groups = append(groups, model.PartialGroup{Name: name})
			}

			groups[i].Fields = append(groups[i].Fields, f)
		}
	}

	return groups
}
