package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	v1 "github.com/aevon-lab/experiment-tracker/internal/api/v1"
	"github.com/aevon-lab/experiment-tracker/internal/core/aggregation"
	"github.com/aevon-lab/experiment-tracker/internal/core/columns"
	"github.com/aevon-lab/experiment-tracker/internal/core/partition"
	"github.com/aevon-lab/experiment-tracker/internal/core/storage"
	"github.com/aevon-lab/experiment-tracker/internal/core/variant"
	"github.com/aevon-lab/experiment-tracker/internal/metrics"
)

// ErrInvalidRequest marks request validation errors that should return HTTP 400.
var ErrInvalidRequest = errors.New("invalid experiment request")

// Options tunes a Service. Zero values fall back to defaults.
type Options struct {
	Profile        string // label shown by the connection probe
	EventNameValue string // restricts rows to one event when the event_name column is mapped
	DefaultDays    int // window applied when a request leaves days unset
	MaxDays        int
}

// Service answers participation and detail queries for one user against the
// warehouse. It holds no per-request state and is safe for concurrent use.
type Service struct {
	querier    storage.Querier
	columns    columns.Columns
	reconciler variant.Reconciler
	opts       Options
	nowFn      func() time.Time
}

// NewService creates a new experiment service over resolved columns.
func NewService(querier storage.Querier, cols columns.Columns, opts Options) *Service {
	if opts.MaxDays <= 0 || opts.MaxDays > v1.MaxDays {
		opts.MaxDays = v1.MaxDays
	}
	if opts.DefaultDays <= 0 {
		opts.DefaultDays = v1.DefaultDays
	}
	if opts.DefaultDays > opts.MaxDays {
		opts.DefaultDays = opts.MaxDays
	}
	if opts.Profile == "" {
		opts.Profile = "default"
	}

	return &Service{
		querier:    querier,
		columns:    cols,
		reconciler: variant.NewReconciler(cols.Encoding == columns.EncodingScalar),
		opts:       opts,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// SearchParticipation lists, per day, the experiments gcid took part in during
// the trailing window. Warehouse failures are returned unchanged.
func (s *Service) SearchParticipation(ctx context.Context, gcid string, days int) (*v1.SearchResult, error) {
	gcid, err := s.validate(gcid, days)
	if err != nil {
		return nil, err
	}

	now := s.nowFn()
	rows, err := s.scan(ctx, "search", gcid, days, now)
	if err != nil {
		return nil, err
	}

	agg := aggregation.NewParticipation(s.reconciler)
	fold(agg, rows)
	daily := agg.Result()

	slog.Info("[Experiment] Search completed", "days", days, "rows", len(rows), "active_days", len(daily))

	return &v1.SearchResult{
		GCID:        gcid,
		Days:        days,
		GeneratedAt: now,
		Daily:       daily,
	}, nil
}

// GetExperimentDetails derives the lifecycle of experimentID for gcid from the
// same windowed scan used by search. An experiment never observed yields the
// absent shape rather than an error.
func (s *Service) GetExperimentDetails(ctx context.Context, gcid, experimentID string, days int) (*v1.ExperimentDetail, error) {
	gcid, err := s.validate(gcid, days)
	if err != nil {
		return nil, err
	}
	experimentID = strings.TrimSpace(experimentID)
	if experimentID == "" {
		return nil, fmt.Errorf("%w: experiment_id cannot be empty", ErrInvalidRequest)
	}

	rows, err := s.scan(ctx, "details", gcid, days, s.nowFn())
	if err != nil {
		return nil, err
	}

	agg := aggregation.NewDetail(experimentID, s.reconciler)
	fold(agg, rows)
	detail := agg.Result()

	slog.Info("[Experiment] Details completed",
		"experiment_id", experimentID,
		"days", days,
		"rows", len(rows),
		"running_days", detail.RunningDays)

	return &detail, nil
}

func (s *Service) validate(gcid string, days int) (string, error) {
	gcid = strings.TrimSpace(gcid)
	if err := v1.ValidateGCID(gcid); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	if err := v1.ValidateDays(days, s.opts.MaxDays); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	return gcid, nil
}

// scan runs the windowed query and decodes its rows.
func (s *Service) scan(ctx context.Context, operation, gcid string, days int, now time.Time) ([]aggregation.DecodedRow, error) {
	window := partition.Trailing(now, days)
	query, params := windowedQuery(s.columns, gcid, window, s.opts.EventNameValue)

	slog.Debug("[Experiment] Running windowed query",
		"operation", operation,
		"gcid", gcid,
		"start", window.StartYearMonthDay)

	raw, err := s.querier.RunQuery(ctx, query, params)
	if err != nil {
		slog.Error("[Experiment] Windowed query failed", "operation", operation, "error", err)
		return nil, err
	}

	metrics.RowsScanned.WithLabelValues(operation).Add(float64(len(raw)))
	return decodeRows(raw, s.columns.Encoding), nil
}

func fold(agg aggregation.Aggregator, rows []aggregation.DecodedRow) {
	for _, row := range rows {
		agg.Add(row)
	}
}
