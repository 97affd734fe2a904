package timeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planny/planny-backend/internal/planning/domain"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func titles(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("task %d", i+1)
	}
	return out
}

func spans(items []domain.WorkItem) [][2]string {
	out := make([][2]string, len(items))
	for i, it := range items {
		out[i] = [2]string{domain.FormatDate(it.Start), domain.FormatDate(it.End)}
	}
	return out
}

func TestDistribute_SharedSprintWindows(t *testing.T) {
	d := New(Options{Span: SpanShared})
	r := domain.NewDateRange(date(t, "2024-01-01"), date(t, "2024-01-29"))

	plan := d.PlanFor(7, r, 0)
	assert.Equal(t, Plan{TotalDays: 28, SprintCount: 2, SprintDays: 14, ItemsPerSprint: 4}, plan)

	items, err := d.Distribute(titles(7), r, 0)
	require.NoError(t, err)
	require.Len(t, items, 7)

	for _, it := range items[:4] {
		assert.Equal(t, "2024-01-01", domain.FormatDate(it.Start))
		assert.Equal(t, "2024-01-14", domain.FormatDate(it.End))
		assert.Equal(t, 1, it.Sprint)
	}
	for _, it := range items[4:] {
		assert.Equal(t, "2024-01-15", domain.FormatDate(it.Start))
		assert.Equal(t, "2024-01-29", domain.FormatDate(it.End))
		assert.Equal(t, 2, it.Sprint)
	}
	assert.Equal(t, "task 1", items[0].Title)
	assert.Equal(t, domain.StatusPending, items[0].Status)
}

func TestDistribute_SubdividedSprintWindows(t *testing.T) {
	d := New(Options{})
	r := domain.NewDateRange(date(t, "2024-01-01"), date(t, "2024-01-29"))

	items, err := d.Distribute(titles(7), r, 0)
	require.NoError(t, err)

	assert.Equal(t, [][2]string{
		{"2024-01-01", "2024-01-03"},
		{"2024-01-04", "2024-01-06"},
		{"2024-01-07", "2024-01-09"},
		{"2024-01-10", "2024-01-14"},
		{"2024-01-15", "2024-01-19"},
		{"2024-01-20", "2024-01-24"},
		{"2024-01-25", "2024-01-29"},
	}, spans(items))
}

func TestDistribute_Contiguous(t *testing.T) {
	d := New(Options{})
	start := date(t, "2025-03-03")

	for days := 20; days <= 90; days += 7 {
		for n := 1; n <= 7; n++ {
			for override := -1; override <= 4; override++ {
				name := fmt.Sprintf("days=%d n=%d override=%d", days, n, override)
				t.Run(name, func(t *testing.T) {
					r := domain.NewDateRange(start, start.AddDate(0, 0, days))
					items, err := d.Distribute(titles(n), r, override)
					require.NoError(t, err)
					require.Len(t, items, n)

					assert.True(t, items[0].Start.Equal(r.Start))
					assert.True(t, items[n-1].End.Equal(r.End))
					for i, it := range items {
						assert.False(t, it.End.Before(it.Start), "item %d ends before it starts", i)
						if i > 0 {
							assert.True(t, it.Start.Equal(domain.AddDays(items[i-1].End, 1)), "gap or overlap before item %d", i)
						}
					}
				})
			}
		}
	}
}

func TestPlanFor_SprintCountBounds(t *testing.T) {
	d := New(Options{})
	start := date(t, "2024-06-01")

	for _, days := range []int{0, 1, 13, 14, 15, 60, 365} {
		for n := 1; n <= 10; n++ {
			r := domain.NewDateRange(start, start.AddDate(0, 0, days))
			p := d.PlanFor(n, r, 0)
			assert.GreaterOrEqual(t, p.SprintCount, 1)
			assert.LessOrEqual(t, p.SprintCount, n)
			assert.GreaterOrEqual(t, p.SprintDays, 1)
		}
	}
}

func TestDistribute_OverrideClosesOnRangeEnd(t *testing.T) {
	d := New(Options{Span: SpanShared})
	r := domain.NewDateRange(date(t, "2024-01-01"), date(t, "2024-01-31"))

	// 7 titles over 5 sprints of 6 days, two per sprint: the 4th sprint takes
	// the last title and must stretch to the end of the range.
	items, err := d.Distribute(titles(7), r, 5)
	require.NoError(t, err)
	require.Len(t, items, 7)

	assert.Equal(t, 4, items[6].Sprint)
	assert.Equal(t, "2024-01-19", domain.FormatDate(items[6].Start))
	assert.Equal(t, "2024-01-31", domain.FormatDate(items[6].End))
}

func TestDistribute_NonPositiveOverrideFallsBack(t *testing.T) {
	d := New(Options{})
	r := domain.NewDateRange(date(t, "2024-01-01"), date(t, "2024-01-29"))

	auto, err := d.Distribute(titles(7), r, 0)
	require.NoError(t, err)
	negative, err := d.Distribute(titles(7), r, -3)
	require.NoError(t, err)

	assert.Equal(t, auto, negative)
}

func TestDistribute_EdgeCases(t *testing.T) {
	d := New(Options{})

	t.Run("empty titles", func(t *testing.T) {
		r := domain.NewDateRange(date(t, "2024-01-01"), date(t, "2024-01-29"))
		items, err := d.Distribute(nil, r, 0)
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.NotNil(t, items)
	})

	t.Run("single day range", func(t *testing.T) {
		day := date(t, "2024-02-10")
		items, err := d.Distribute(titles(1), domain.NewDateRange(day, day), 0)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, items[0].Start.Equal(day))
		assert.True(t, items[0].End.Equal(day))
	})

	t.Run("more titles than days stay inside the range", func(t *testing.T) {
		r := domain.NewDateRange(date(t, "2024-02-10"), date(t, "2024-02-12"))
		items, err := d.Distribute(titles(6), r, 0)
		require.NoError(t, err)
		require.Len(t, items, 6)
		for _, it := range items {
			assert.False(t, it.Start.Before(r.Start))
			assert.False(t, it.End.After(r.End))
			assert.False(t, it.End.Before(it.Start))
		}
		assert.True(t, items[5].End.Equal(r.End))
	})

	t.Run("reversed range", func(t *testing.T) {
		r := domain.NewDateRange(date(t, "2024-02-10"), date(t, "2024-02-01"))
		_, err := d.Distribute(titles(3), r, 0)

		var derr *DistributionError
		require.ErrorAs(t, err, &derr)
		assert.Contains(t, derr.Error(), "2024-02-10..2024-02-01")
	})
}

func TestDistributeEven(t *testing.T) {
	d := New(Options{Mode: ModeLegacy})
	r := domain.NewDateRange(date(t, "2024-01-01"), date(t, "2024-01-29"))

	items, err := d.Generate(titles(7), r, 3)
	require.NoError(t, err)

	assert.Equal(t, [][2]string{
		{"2024-01-01", "2024-01-04"},
		{"2024-01-05", "2024-01-08"},
		{"2024-01-09", "2024-01-12"},
		{"2024-01-13", "2024-01-16"},
		{"2024-01-17", "2024-01-20"},
		{"2024-01-21", "2024-01-24"},
		{"2024-01-25", "2024-01-29"},
	}, spans(items))
	for _, it := range items {
		assert.Zero(t, it.Sprint)
	}

	_, err = d.DistributeEven(titles(2), domain.NewDateRange(r.End, r.Start))
	assert.Error(t, err)
}

func TestParseOptions(t *testing.T) {
	m, err := ParseMode("Legacy")
	require.NoError(t, err)
	assert.Equal(t, ModeLegacy, m)

	s, err := ParseSpan("shared")
	require.NoError(t, err)
	assert.Equal(t, SpanShared, s)

	_, err = ParseSpan("halves")
	assert.Error(t, err)
	_, err = ParseMode("random")
	assert.Error(t, err)

	assert.Equal(t, DefaultSprintDays, New(Options{}).Options().SprintDays)
}
