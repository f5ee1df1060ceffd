package experiment

import (
	"testing"
	"time"

	"github.com/aevon-lab/experiment-tracker/internal/core/columns"
	"github.com/aevon-lab/experiment-tracker/internal/core/storage"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)

func partitionedMapping() map[string]string {
	return map[string]string{
		columns.RoleTable:          "analytics.events",
		columns.RoleGCID:           "gcid",
		columns.RoleExperimentID:   "experiment_id",
		columns.RoleExperimentName: "experiment_name",
		columns.RoleVariant:        "variation_id",
		columns.RoleVariantBlob:    "variation_blob",
		columns.RolePartitionYear:  "etr_y",
		columns.RolePartitionMonth: "etr_ym",
		columns.RolePartitionDay:   "etr_ymd",
	}
}

func resolveColumns(t *testing.T, mapping map[string]string, encoding columns.Encoding) columns.Columns {
	t.Helper()
	cols, err := columns.Resolve(mapping, encoding)
	require.NoError(t, err)
	return cols
}

func newTestService(t *testing.T, q storage.Querier, cols columns.Columns, opts Options) *Service {
	t.Helper()
	svc := NewService(q, cols, opts)
	svc.nowFn = func() time.Time { return fixedNow }
	return svc
}

func eventRow(day, ids, name, variant, blob any) storage.Row {
	return storage.Row{
		colEventDay:       day,
		colExperimentIDs:  ids,
		colExperimentName: name,
		colVariant:        variant,
		colVariantBlob:    blob,
	}
}
