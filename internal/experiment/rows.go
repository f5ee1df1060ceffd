package experiment

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	v1 "github.com/aevon-lab/experiment-tracker/internal/api/v1"
	"github.com/aevon-lab/experiment-tracker/internal/core/aggregation"
	"github.com/aevon-lab/experiment-tracker/internal/core/blob"
	"github.com/aevon-lab/experiment-tracker/internal/core/columns"
	"github.com/aevon-lab/experiment-tracker/internal/core/storage"
	"github.com/aevon-lab/experiment-tracker/internal/core/variant"
	"github.com/aevon-lab/experiment-tracker/internal/metrics"
)

const (
	skipReasonDay = "unparseable_day"
	skipReasonIDs = "no_experiment_ids"
)

var errMissingDay = errors.New("event day is null")

// decodeRows converts raw warehouse rows into decoded rows. Rows with an
// unreadable day or no experiment ids are dropped.
func decodeRows(rows []storage.Row, encoding columns.Encoding) []aggregation.DecodedRow {
	decodeIDs := blob.Parse
	if encoding == columns.EncodingScalar {
		decodeIDs = blob.Scalar
	}

	out := make([]aggregation.DecodedRow, 0, len(rows))
	skippedDays := 0
	for _, row := range rows {
		day, err := parseEventDay(row[colEventDay])
		if err != nil {
			skippedDays++
			metrics.RowsSkipped.WithLabelValues(skipReasonDay).Inc()
			continue
		}

		ids := decodeIDs(cellText(row[colExperimentIDs]))
		if ids.Kind == blob.KindUnparseable {
			metrics.BlobDecodeFallbacks.WithLabelValues(colExperimentIDs).Inc()
		}
		if len(ids.Tokens) == 0 {
			metrics.RowsSkipped.WithLabelValues(skipReasonIDs).Inc()
			continue
		}

		variants := blob.Parse(cellText(row[colVariantBlob]))
		if variants.Kind == blob.KindUnparseable {
			metrics.BlobDecodeFallbacks.WithLabelValues(colVariantBlob).Inc()
		}

		out = append(out, aggregation.DecodedRow{
			Day:            day,
			ExperimentName: strings.TrimSpace(cellText(row[colExperimentName])),
			Signals: variant.Signals{
				ExperimentIDs: ids.Tokens,
				Scalar:        strings.TrimSpace(cellText(row[colVariant])),
				Blob:          variants.Tokens,
			},
		})
	}

	if skippedDays > 0 {
		slog.Warn("[Experiment] Skipped rows with unreadable event day", "count", skippedDays)
	}
	return out
}

// parseEventDay accepts a time value, a YYYY-MM-DD string, or any longer
// timestamp string that starts with a date.
func parseEventDay(v any) (v1.Date, error) {
	switch t := v.(type) {
	case nil:
		return v1.Date{}, errMissingDay
	case time.Time:
		return v1.DateOf(t), nil
	case *time.Time:
		if t == nil {
			return v1.Date{}, errMissingDay
		}
		return v1.DateOf(*t), nil
	}

	s := strings.TrimSpace(cellText(v))
	if len(s) < 10 {
		return v1.Date{}, fmt.Errorf("event day %q is not a date", s)
	}
	return v1.ParseDate(s[:10])
}

func cellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}
