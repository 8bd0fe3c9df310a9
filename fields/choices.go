package fields

import (
	"fmt"
	"reflect"
	"sort"
)

// Choice pairs an allowed column value with its display label.
type Choice struct {
	Value any
	Label string
}

// Choices restricts a column to a fixed set of values. An empty set means
// the column is unrestricted.
type Choices []Choice

// Contains reports whether v is one of the allowed values.
func (cs Choices) Contains(v any) bool {
	for _, c := range cs {
		if reflect.DeepEqual(c.Value, v) {
			return true
		}
	}
	return false
}

// ChoicesFrom builds a choice set from value/label pairs, ordered by the
// string form of each value so the set renders deterministically.
func ChoicesFrom(pairs map[any]string) Choices {
	cs := make(Choices, 0, len(pairs))
	for v, label := range pairs {
		cs = append(cs, Choice{Value: v, Label: label})
	}
	sort.Slice(cs, func(i, j int) bool {
		return fmt.Sprint(cs[i].Value) < fmt.Sprint(cs[j].Value)
	})
	return cs
}
