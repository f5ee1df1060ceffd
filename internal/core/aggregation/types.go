package aggregation

import (
	"sort"

	v1 "github.com/aevon-lab/experiment-tracker/internal/api/v1"
	"github.com/aevon-lab/experiment-tracker/internal/core/variant"
)

// DecodedRow is one warehouse row after blob decoding.
// ExperimentIDs keeps its original order; it is positionally correlated with Blob.
type DecodedRow struct {
	Day            v1.Date
	ExperimentName string
	variant.Signals
}

// groupKey identifies one experiment on one day.
type groupKey struct {
	Day          v1.Date
	ExperimentID string
}

// ExperimentDayGroup accumulates one (day, experiment) pair during a request.
type ExperimentDayGroup struct {
	ExperimentName string
	Variants       stringSet
}

type stringSet map[string]struct{}

func (s stringSet) add(values ...string) {
	for _, v := range values {
		if v != "" {
			s[v] = struct{}{}
		}
	}
}

// sorted returns the members in ascending order. Never nil.
func (s stringSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
