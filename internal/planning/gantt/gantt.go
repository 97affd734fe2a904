// Package gantt projects scheduled tasks onto fixed-length sprint windows and
// produces the rows a timeline chart renders.
package gantt

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/planny/planny-backend/internal/planning/domain"
)

// DefaultWindowDays is the sprint window length.
const DefaultWindowDays = 14

// Item is one dated task with its completion percentage.
type Item struct {
	ID      string
	Title   string
	Start   time.Time
	End     time.Time
	Percent int
}

// Row is one chart entry, either a sprint aggregate or a task.
type Row struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Group     string    `json:"group"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Percent   int       `json:"percent"`
	Aggregate bool      `json:"aggregate"`
}

// MarshalJSON writes Start and End as YYYY-MM-DD like every other date on the wire.
func (r Row) MarshalJSON() ([]byte, error) {
	type row Row
	return json.Marshal(struct {
		row
		Start string `json:"start"`
		End   string `json:"end"`
	}{row(r), domain.FormatDate(r.Start), domain.FormatDate(r.End)})
}

// Options tunes the windowing. SprintCount > 0 fixes the number of windows.
type Options struct {
	WindowDays  int
	SprintCount int
}

// Windows returns the window count and length for r.
func (o Options) Windows(r domain.DateRange) (count, length int) {
	total := r.TotalDays()
	length = o.WindowDays
	if length <= 0 {
		length = DefaultWindowDays
	}
	if o.SprintCount > 0 {
		return o.SprintCount, max(1, total/o.SprintCount)
	}
	return max(1, (total+length-1)/length), length
}

// SprintLabel names the n-th window.
func SprintLabel(n int) string {
	return fmt.Sprintf("Sprint %d", n)
}

// Project buckets items by the window their start date falls in and returns
// one aggregate row per window plus one row per item, stable-sorted by start.
func Project(items []Item, r domain.DateRange, opts Options) []Row {
	r = domain.NewDateRange(r.Start, r.End)
	count, length := opts.Windows(r)

	sums := make([]int, count)
	sizes := make([]int, count)
	itemRows := make([]Row, 0, len(items))
	for _, it := range items {
		w := domain.DaysBetween(r.Start, it.Start)/length + 1
		w = min(max(w, 1), count)
		sums[w-1] += it.Percent
		sizes[w-1]++

		itemRows = append(itemRows, Row{
			ID:      it.ID,
			Label:   it.Title,
			Group:   SprintLabel(w),
			Start:   domain.Day(it.Start),
			End:     domain.Day(it.End),
			Percent: it.Percent,
		})
	}

	rows := make([]Row, 0, count+len(itemRows))
	for i := 0; i < count; i++ {
		start := r.Clamp(domain.AddDays(r.Start, i*length))
		end := r.End
		if i < count-1 {
			end = r.Clamp(domain.AddDays(start, length-1))
		}
		pct := 0
		if sizes[i] > 0 {
			pct = sums[i] / sizes[i]
		}
		rows = append(rows, Row{
			ID:        fmt.Sprintf("sprint-%d", i+1),
			Label:     SprintLabel(i + 1),
			Group:     SprintLabel(i + 1),
			Start:     start,
			End:       end,
			Percent:   pct,
			Aggregate: true,
		})
	}
	rows = append(rows, itemRows...)

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Start.Before(rows[j].Start)
	})
	return rows
}

// ChartRows converts rows into the 8-column table expected by the chart
// widget: id, name, resource, start, end, duration, percent, dependencies.
func ChartRows(rows []Row) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, []any{
			r.ID,
			r.Label,
			r.Group,
			domain.FormatDate(r.Start),
			domain.FormatDate(r.End),
			nil,
			r.Percent,
			nil,
		})
	}
	return out
}
