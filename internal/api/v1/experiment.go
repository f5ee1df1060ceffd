package v1

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// UnknownExperiment is the display name used when a name cannot be attributed.
	UnknownExperiment = "Unknown experiment"

	MaxGCIDLength = 128
	DefaultDays   = 30
	MaxDays       = 365
)

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	GCID string `json:"gcid"`
	Days int    `json:"days"`
}

// Normalize trims the gcid and applies the default window, then validates.
// defaultDays <= 0 means DefaultDays and maxDays <= 0 means MaxDays.
func (r *SearchRequest) Normalize(defaultDays, maxDays int) error {
	r.GCID = strings.TrimSpace(r.GCID)
	if r.Days == 0 {
		r.Days = defaultDays
		if r.Days <= 0 {
			r.Days = DefaultDays
		}
	}
	if err := ValidateGCID(r.GCID); err != nil {
		return err
	}
	return ValidateDays(r.Days, maxDays)
}

// ValidateGCID checks a trimmed gcid. The limit counts characters, not bytes.
func ValidateGCID(gcid string) error {
	if gcid == "" {
		return fmt.Errorf("gcid cannot be empty")
	}
	if utf8.RuneCountInString(gcid) > MaxGCIDLength {
		return fmt.Errorf("gcid must be at most %d characters", MaxGCIDLength)
	}
	return nil
}

// ValidateDays checks the trailing window size.
func ValidateDays(days, maxDays int) error {
	if maxDays <= 0 || maxDays > MaxDays {
		maxDays = MaxDays
	}
	if days < 1 || days > maxDays {
		return fmt.Errorf("days must be between 1 and %d", maxDays)
	}
	return nil
}

// ExperimentSummary is one experiment observed on one day.
type ExperimentSummary struct {
	ExperimentID   string   `json:"experiment_id"`
	ExperimentName string   `json:"experiment_name"`
	Variants       []string `json:"variants"`
}

// DailyParticipation lists the distinct experiments of one day.
// Count is the number of distinct experiments, not events.
type DailyParticipation struct {
	Day         Date                `json:"day"`
	Count       int                 `json:"count"`
	Experiments []ExperimentSummary `json:"experiments"`
}

// SearchResult is the response of POST /api/search.
type SearchResult struct {
	GCID        string               `json:"gcid"`
	Days        int                  `json:"days"`
	GeneratedAt time.Time            `json:"generated_at"`
	Daily       []DailyParticipation `json:"daily"`
}

// ExperimentDetail is the response of GET /api/experiments/:experiment_id.
type ExperimentDetail struct {
	ExperimentID           string   `json:"experiment_id"`
	ExperimentName         string   `json:"experiment_name"`
	StartDate              *Date    `json:"start_date"`
	EndDate                *Date    `json:"end_date"`
	RunningDays            int      `json:"running_days"`
	OverlapExperimentCount int      `json:"overlap_experiment_count"`
	Variants               []string `json:"variants"`
}

// AbsentDetail is the detail shape returned when the experiment was not observed.
func AbsentDetail(experimentID string) ExperimentDetail {
	return ExperimentDetail{
		ExperimentID:   experimentID,
		ExperimentName: UnknownExperiment,
		Variants:       []string{},
	}
}

// ConnectionCheck is the response of GET /api/connection-check.
type ConnectionCheck struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Health is the response of GET /api/health.
type Health struct {
	Status  string `json:"status"`
	AppName string `json:"app_name"`
}
