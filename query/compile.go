package query

import (
	"strconv"
	"strings"
)

// Compile folds chain into one terminated SQL statement.
//
// The first operation fixes the statement kind. Every later operation must
// be a Where; their conditions merge into the head with " AND ". A SelectAll
// gaining its first condition reclassifies to Select. Heads whose template
// has no condition slot accept trailing Where refinements but ignore them,
// matching the substitution-only contract.
func Compile(chain Chain) (string, error) {
	if len(chain) == 0 {
		return "", &CompileError{Reason: "empty chain"}
	}

	var conds []string
	for i, op := range chain[1:] {
		w, ok := op.(Where)
		if !ok {
			return "", &CompileError{Reason: "operation " + strconv.Itoa(i+1) + " is not a condition refinement"}
		}
		conds = append(conds, w.Condition)
	}

	final := chain[0]
	switch head := final.(type) {
	case SelectAll:
		if len(conds) > 0 {
			final = Select{
				Table:     head.Table,
				Selection: head.Selection,
				Condition: strings.Join(conds, " AND "),
				Ordering:  head.Ordering,
			}
		}
	case Select:
		if len(conds) > 0 {
			head.Condition = strings.Join(append([]string{head.Condition}, conds...), " AND ")
			final = head
		}
	case Where:
		if len(conds) > 0 {
			head.Condition = strings.Join(append([]string{head.Condition}, conds...), " AND ")
			final = head
		}
	}

	return final.Render() + Terminator, nil
}

// orderingClause synthesizes the ORDER BY clause for a selection. Ordering
// only applies to plain "*" selections; aggregate selections suppress it. A
// leading "-" marks a column descending and renders with one space on each
// side.
func orderingClause(selection string, ordering []string) string {
	if selection != "*" || len(ordering) == 0 {
		return ""
	}
	parts := make([]string, len(ordering))
	for i, col := range ordering {
		if rest, ok := strings.CutPrefix(col, "-"); ok {
			parts[i] = " " + rest + " DESC "
		} else {
			parts[i] = col
		}
	}
	return "ORDER BY " + strings.Join(parts, ",")
}

func joinList(items []string) string {
	return strings.Join(items, ", ")
}
