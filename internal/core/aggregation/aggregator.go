package aggregation

import (
	"sort"
	"strings"

	v1 "github.com/aevon-lab/experiment-tracker/internal/api/v1"
	"github.com/aevon-lab/experiment-tracker/internal/core/variant"
)

// Aggregator folds decoded rows of one request into a response shape.
// Implementations are not safe for concurrent use; build one per request.
type Aggregator interface {
	Add(row DecodedRow)
}

// Participation groups rows by day and experiment id.
type Participation struct {
	reconciler variant.Reconciler
	groups     map[groupKey]*ExperimentDayGroup
}

// NewParticipation returns an empty participation accumulator.
func NewParticipation(r variant.Reconciler) *Participation {
	return &Participation{
		reconciler: r,
		groups:     make(map[groupKey]*ExperimentDayGroup),
	}
}

// group returns the accumulator for key, creating it on first use.
func (p *Participation) group(key groupKey, name string) *ExperimentDayGroup {
	g, ok := p.groups[key]
	if !ok {
		g = &ExperimentDayGroup{ExperimentName: name, Variants: make(stringSet)}
		p.groups[key] = g
		return g
	}
	// A group first seen on a multi-experiment row takes the first real name.
	if g.ExperimentName == v1.UnknownExperiment && name != v1.UnknownExperiment {
		g.ExperimentName = name
	}
	return g
}

// Add folds one row. Rows without experiment ids are ignored.
func (p *Participation) Add(row DecodedRow) {
	ids := row.ExperimentIDs
	if len(ids) == 0 {
		return
	}

	name := v1.UnknownExperiment
	if len(ids) == 1 {
		if n := strings.TrimSpace(row.ExperimentName); n != "" {
			name = n
		}
	}

	for i, id := range ids {
		g := p.group(groupKey{Day: row.Day, ExperimentID: id}, name)
		g.Variants.add(p.reconciler.Attribute(row.Signals, i)...)
	}
}

// Result returns one entry per day ascending, experiments ascending by id,
// variants sorted. Calling it twice yields equal values.
func (p *Participation) Result() []v1.DailyParticipation {
	byDay := make(map[v1.Date][]v1.ExperimentSummary)
	for key, g := range p.groups {
		byDay[key.Day] = append(byDay[key.Day], v1.ExperimentSummary{
			ExperimentID:   key.ExperimentID,
			ExperimentName: g.ExperimentName,
			Variants:       g.Variants.sorted(),
		})
	}

	days := make([]v1.Date, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	daily := make([]v1.DailyParticipation, 0, len(days))
	for _, day := range days {
		experiments := byDay[day]
		sort.Slice(experiments, func(i, j int) bool {
			return experiments[i].ExperimentID < experiments[j].ExperimentID
		})
		daily = append(daily, v1.DailyParticipation{
			Day:         day,
			Count:       len(experiments),
			Experiments: experiments,
		})
	}
	return daily
}

// Detail derives the lifecycle of one target experiment.
type Detail struct {
	target     string
	reconciler variant.Reconciler

	matched  bool
	start    v1.Date
	end      v1.Date
	name     string
	variants stringSet

	targetDays map[v1.Date]struct{}
	idsByDay   map[v1.Date]stringSet
}

// NewDetail returns an accumulator for experimentID.
func NewDetail(experimentID string, r variant.Reconciler) *Detail {
	return &Detail{
		target:     experimentID,
		reconciler: r,
		variants:   make(stringSet),
		targetDays: make(map[v1.Date]struct{}),
		idsByDay:   make(map[v1.Date]stringSet),
	}
}

// Add folds one row. Every row contributes its ids to the per-day overlap
// index; only rows containing the target update dates, name and variants.
func (d *Detail) Add(row DecodedRow) {
	if len(row.ExperimentIDs) == 0 {
		return
	}

	ids, ok := d.idsByDay[row.Day]
	if !ok {
		ids = make(stringSet)
		d.idsByDay[row.Day] = ids
	}
	ids.add(row.ExperimentIDs...)

	if !containsID(row.ExperimentIDs, d.target) {
		return
	}

	if !d.matched || row.Day.Before(d.start) {
		d.start = row.Day
	}
	if !d.matched || row.Day.After(d.end) {
		d.end = row.Day
	}
	d.matched = true
	d.targetDays[row.Day] = struct{}{}

	// Last real name wins.
	if n := strings.TrimSpace(row.ExperimentName); n != "" && n != v1.UnknownExperiment {
		d.name = n
	}

	for i, id := range row.ExperimentIDs {
		if id == d.target {
			d.variants.add(d.reconciler.Attribute(row.Signals, i)...)
		}
	}
	d.variants.add(d.reconciler.Scan(row.Signals, d.target)...)
}

// Result returns the detail, or the absent shape if the target was never seen.
func (d *Detail) Result() v1.ExperimentDetail {
	if !d.matched {
		return v1.AbsentDetail(d.target)
	}

	overlap := make(stringSet)
	for day := range d.targetDays {
		for id := range d.idsByDay[day] {
			if id != d.target {
				overlap[id] = struct{}{}
			}
		}
	}

	name := d.name
	if name == "" {
		name = v1.UnknownExperiment
	}

	start, end := d.start, d.end
	return v1.ExperimentDetail{
		ExperimentID:           d.target,
		ExperimentName:         name,
		StartDate:              &start,
		EndDate:                &end,
		RunningDays:            end.DaysSince(start) + 1,
		OverlapExperimentCount: len(overlap),
		Variants:               d.variants.sorted(),
	}
}
