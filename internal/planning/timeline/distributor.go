// Package timeline turns an ordered list of task titles and a date range into
// a contiguous schedule of work items.
package timeline

import (
	"github.com/planny/planny-backend/internal/planning/domain"
)

// Plan is the sprint arithmetic for one distribution.
type Plan struct {
	TotalDays      int `json:"total_days"`
	SprintCount    int `json:"sprint_count"`
	SprintDays     int `json:"sprint_days"`
	ItemsPerSprint int `json:"items_per_sprint"`
}

// Distributor schedules work items. It holds no state besides its options and
// is safe for concurrent use.
type Distributor struct {
	opts Options
}

// New returns a Distributor, filling in the default sprint length.
func New(opts Options) *Distributor {
	if opts.SprintDays <= 0 {
		opts.SprintDays = DefaultSprintDays
	}
	return &Distributor{opts: opts}
}

// Options returns the effective options.
func (d *Distributor) Options() Options {
	return d.opts
}

// Generate runs the configured mode. sprintOverride is ignored in legacy mode.
func (d *Distributor) Generate(titles []string, r domain.DateRange, sprintOverride int) ([]domain.WorkItem, error) {
	if d.opts.Mode == ModeLegacy {
		return d.DistributeEven(titles, r)
	}
	return d.Distribute(titles, r, sprintOverride)
}

// PlanFor computes sprint count and lengths for n items. A non-positive
// override falls back to the automatic count.
func (d *Distributor) PlanFor(n int, r domain.DateRange, sprintOverride int) Plan {
	total := r.TotalDays()

	var count int
	if sprintOverride > 0 {
		count = sprintOverride
	} else {
		count = ceilDiv(total, d.opts.SprintDays)
		if count > n {
			count = n
		}
		if count < 1 {
			count = 1
		}
	}

	p := Plan{
		TotalDays:   total,
		SprintCount: count,
		SprintDays:  max(1, total/count),
	}
	if n > 0 {
		p.ItemsPerSprint = ceilDiv(n, count)
	}
	return p
}

// Distribute buckets titles into sprint windows covering r. The sprint that
// receives the final title closes on r.End.
func (d *Distributor) Distribute(titles []string, r domain.DateRange, sprintOverride int) ([]domain.WorkItem, error) {
	r, err := normalize(r)
	if err != nil {
		return nil, err
	}
	n := len(titles)
	if n == 0 {
		return []domain.WorkItem{}, nil
	}

	plan := d.PlanFor(n, r, sprintOverride)
	items := make([]domain.WorkItem, 0, n)

	next := 0
	sprintStart := r.Start
	for i := 0; i < plan.SprintCount && next < n; i++ {
		take := min(plan.ItemsPerSprint, n-next)
		last := i == plan.SprintCount-1 || next+take >= n

		sprintEnd := r.End
		if !last {
			sprintEnd = domain.AddDays(sprintStart, plan.SprintDays-1)
		}
		window := domain.DateRange{Start: r.Clamp(sprintStart), End: r.Clamp(sprintEnd)}

		batch := titles[next : next+take]
		if d.opts.Span == SpanShared {
			for _, title := range batch {
				items = append(items, domain.NewWorkItem(title, "", window.Start, window.End, i+1))
			}
		} else {
			per := max(1, (domain.DaysBetween(window.Start, window.End)+1)/len(batch))
			items = append(items, slots(batch, window, per, i+1)...)
		}

		next += take
		sprintStart = domain.AddDays(sprintEnd, 1)
	}
	return items, nil
}

// DistributeEven is the pre-sprint behaviour: one slot of
// max(1, totalDays/n) days per title, the last title closing on r.End.
func (d *Distributor) DistributeEven(titles []string, r domain.DateRange) ([]domain.WorkItem, error) {
	r, err := normalize(r)
	if err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return []domain.WorkItem{}, nil
	}
	per := max(1, r.TotalDays()/len(titles))
	return slots(titles, r, per, 0), nil
}

// slots lays titles end to end inside w, per days each, the last one
// stretching to w.End. Dates past w.End are pinned to it.
func slots(titles []string, w domain.DateRange, per, sprint int) []domain.WorkItem {
	out := make([]domain.WorkItem, 0, len(titles))
	start := w.Start
	for j, title := range titles {
		end := w.End
		if j < len(titles)-1 {
			end = domain.AddDays(start, per-1)
		}
		out = append(out, domain.NewWorkItem(title, "", w.Clamp(start), w.Clamp(end), sprint))
		start = domain.AddDays(end, 1)
	}
	return out
}

func normalize(r domain.DateRange) (domain.DateRange, error) {
	r = domain.NewDateRange(r.Start, r.End)
	if r.Reversed() {
		return r, &DistributionError{Range: r, Reason: "end date is before start date"}
	}
	return r, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
