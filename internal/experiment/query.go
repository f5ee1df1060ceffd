package experiment

import (
	"fmt"
	"strings"

	"github.com/aevon-lab/experiment-tracker/internal/core/columns"
	"github.com/aevon-lab/experiment-tracker/internal/core/partition"
)

// Result column aliases of the windowed query.
const (
	colEventDay       = "event_day"
	colExperimentIDs  = "experiment_ids"
	colExperimentName = "experiment_name"
	colVariant        = "variant"
	colVariantBlob    = "variant_blob"
)

const (
	paramGCID      = "gcid"
	paramCutoff    = "cutoff"
	paramEventName = "event_name"

	probeQuery = "SELECT 1"
)

// windowedQuery selects every event row of gcid inside window. Identifiers come
// from resolved columns only; all values are bound by name.
func windowedQuery(cols columns.Columns, gcid string, window partition.Window, eventName string) (string, map[string]any) {
	params := map[string]any{paramGCID: gcid}

	dayExpr := cols.EventTS
	var windowFilter string
	if cols.Partitioned() {
		dayExpr = cols.PartitionDay
		windowFilter = partition.Predicate(cols.PartitionYear, cols.PartitionMonth, cols.PartitionDay)
		for k, v := range window.Params() {
			params[k] = v
		}
	} else {
		windowFilter = fmt.Sprintf("%s >= :%s", cols.EventTS, paramCutoff)
		params[paramCutoff] = window.Cutoff
	}

	blobExpr := "NULL"
	if cols.VariantBlob != "" {
		blobExpr = cols.VariantBlob
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s AS %s, %s AS %s, %s AS %s, %s AS %s, %s AS %s",
		dayExpr, colEventDay,
		cols.ExperimentID, colExperimentIDs,
		cols.ExperimentName, colExperimentName,
		cols.Variant, colVariant,
		blobExpr, colVariantBlob,
	)
	fmt.Fprintf(&b, " FROM %s WHERE %s = :%s AND %s", cols.Table, cols.GCID, paramGCID, windowFilter)

	if cols.EventName != "" && eventName != "" {
		fmt.Fprintf(&b, " AND %s = :%s", cols.EventName, paramEventName)
		params[paramEventName] = eventName
	}

	fmt.Fprintf(&b, " ORDER BY %s", colEventDay)
	return b.String(), params
}
