package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	v1 "github.com/aevon-lab/experiment-tracker/internal/api/v1"
	"github.com/aevon-lab/experiment-tracker/internal/core/storage"
)

// CheckConnection runs a trivial query against the warehouse. It never returns
// an error: every failure is reported through the message.
func (s *Service) CheckConnection(ctx context.Context) v1.ConnectionCheck {
	value, err := s.querier.RunScalar(ctx, probeQuery, nil)
	if err != nil {
		slog.Warn("[Experiment] Connection probe failed", "error", err)
		return v1.ConnectionCheck{
			OK:      false,
			Message: fmt.Sprintf("Warehouse connection failed: %v", probeCause(err)),
		}
	}

	if n, ok := asInt(value); !ok || n != 1 {
		slog.Warn("[Experiment] Connection probe returned unexpected value", "value", value)
		return v1.ConnectionCheck{
			OK:      false,
			Message: "Connected but unexpected response from warehouse",
		}
	}

	return v1.ConnectionCheck{
		OK:      true,
		Message: fmt.Sprintf("Connected using profile '%s'", s.opts.Profile),
	}
}

// probeCause strips the client's wrapper so the message shows the driver error.
func probeCause(err error) error {
	if errors.Is(err, storage.ErrUpstreamQuery) {
		if inner := errors.Unwrap(err); inner != nil {
			return inner
		}
	}
	return err
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}
