package catalog

import (
	"fmt"
	"strings"
)

// ValidationError lists every problem found in a catalog document.
type ValidationError struct {
	problems []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("catalog validation failed: %s", strings.Join(e.problems, "; "))
}

// Problems returns a copy of the individual problems.
func (e *ValidationError) Problems() []string {
	out := make([]string, len(e.problems))
	copy(out, e.problems)
	return out
}

// Validate checks identity and reference invariants. Unresolved compared_to
// references are allowed; they render without a target label.
func Validate(collections []Collection) error {
	var problems []string
	seen := map[string]struct{}{}
	for i, col := range collections {
		id := strings.TrimSpace(col.ID)
		if id == "" {
			problems = append(problems, fmt.Sprintf("collections[%d]: empty id", i))
		} else if _, dup := seen[id]; dup {
			problems = append(problems, fmt.Sprintf("collections[%d]: duplicate id %q", i, id))
		}
		seen[id] = struct{}{}

		models := map[string]struct{}{}
		for j, m := range col.Models {
			where := fmt.Sprintf("collections[%d].models[%d]", i, j)
			mid := strings.TrimSpace(m.ID)
			if mid == "" {
				problems = append(problems, where+": empty id")
			} else if _, dup := models[mid]; dup {
				problems = append(problems, fmt.Sprintf("%s: duplicate id %q in collection %q", where, mid, id))
			}
			models[mid] = struct{}{}
			if !m.Type.Known() {
				problems = append(problems, fmt.Sprintf("%s: unknown type %q", where, m.Type))
			}
			if strings.TrimSpace(m.FileURL) == "" {
				problems = append(problems, where+": empty file_url")
			}
		}
	}
	if len(problems) > 0 {
		return &ValidationError{problems: problems}
	}
	return nil
}
