package pipeline

import (
	"fmt"
	"math"
	"sort"
	"time"

	"deployment-analyzer/internal/model"
)

// AggregateOptions narrows and localizes a pivot computation. The zero
// value means no filtering and English labels.
type AggregateOptions struct {
	MaxDelay *float64   // keep rows with delay <= MaxDelay, minutes
	From     *time.Time // keep rows with arrival date >= From
	To       *time.Time // keep rows with arrival date <= To
	Labels   model.Labels
}

// Aggregate builds the mean-delay pivot grid for the given granularity.
// Rows are calendar buckets, columns are always the 24 hours of day;
// buckets with no contributing records stay missing, never zero. The
// result is deterministic and independent of input ordering. An input
// that is empty after filtering yields nil.
func Aggregate(records []model.CleanedRecord, g model.Granularity, opts AggregateOptions) *model.PivotGrid {
	labels := opts.Labels
	if labels.Locale == "" {
		labels = model.LabelsFor("en")
	}

	filtered := filterRecords(records, opts)
	if len(filtered) == 0 {
		return nil
	}

	switch g {
	case model.Weekly:
		return pivotFixed(filtered, g, labels.WeekdaysShort[:], func(r model.CleanedRecord) int {
			return model.MondayIndex(r.Weekday)
		})
	case model.Monthly:
		return pivotFixed(filtered, g, labels.MonthsShort[:], func(r model.CleanedRecord) int {
			return r.Month - 1
		})
	case model.Hourly:
		return pivotFixed(filtered, g, []string{labels.AllData}, func(r model.CleanedRecord) int {
			return 0
		})
	case model.Yearly:
		return pivotByDate(filtered, g, func(d time.Time) string {
			return fmt.Sprintf("%s %02d", labels.MonthsShort[int(d.Month())-1], d.Day())
		})
	default: // Daily
		return pivotByDay(filtered)
	}
}

func filterRecords(records []model.CleanedRecord, opts AggregateOptions) []model.CleanedRecord {
	// The range bounds are date-valued; any time of day they carry is
	// dropped so a bound always covers its whole calendar day.
	out := make([]model.CleanedRecord, 0, len(records))
	for _, r := range records {
		if opts.MaxDelay != nil && r.DelayMinutes > *opts.MaxDelay {
			continue
		}
		if opts.From != nil && r.Date.Before(truncateToDate(*opts.From)) {
			continue
		}
		if opts.To != nil && r.Date.After(truncateToDate(*opts.To)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// pivotFixed aggregates onto a fixed row axis: every label gets a row
// whether or not any record lands in it.
func pivotFixed(records []model.CleanedRecord, g model.Granularity, rowLabels []string, rowOf func(model.CleanedRecord) int) *model.PivotGrid {
	grid := newGrid(g, rowLabels, len(records))

	sums := make([][]float64, len(rowLabels))
	counts := make([][]int, len(rowLabels))
	for i := range sums {
		sums[i] = make([]float64, model.HoursPerDay)
		counts[i] = make([]int, model.HoursPerDay)
	}

	for _, r := range records {
		row := rowOf(r)
		sums[row][r.Hour] += r.DelayMinutes
		counts[row][r.Hour]++
	}

	fillMeans(grid, sums, counts)
	return grid
}

// pivotByDay aggregates onto the days of month actually present, ascending.
func pivotByDay(records []model.CleanedRecord) *model.PivotGrid {
	days := map[int]bool{}
	for _, r := range records {
		days[r.Day] = true
	}
	order := make([]int, 0, len(days))
	for d := range days {
		order = append(order, d)
	}
	sort.Ints(order)

	rowIdx := make(map[int]int, len(order))
	rowLabels := make([]string, len(order))
	for i, d := range order {
		rowIdx[d] = i
		rowLabels[i] = fmt.Sprintf("%d", d)
	}

	return pivotFixed(records, model.Daily, rowLabels, func(r model.CleanedRecord) int {
		return rowIdx[r.Day]
	})
}

// pivotByDate aggregates onto the distinct arrival dates present, in
// chronological order.
func pivotByDate(records []model.CleanedRecord, g model.Granularity, label func(time.Time) string) *model.PivotGrid {
	dates := map[time.Time]bool{}
	for _, r := range records {
		dates[r.Date] = true
	}
	order := make([]time.Time, 0, len(dates))
	for d := range dates {
		order = append(order, d)
	}
	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })

	rowIdx := make(map[time.Time]int, len(order))
	rowLabels := make([]string, len(order))
	for i, d := range order {
		rowIdx[d] = i
		rowLabels[i] = label(d)
	}

	return pivotFixed(records, g, rowLabels, func(r model.CleanedRecord) int {
		return rowIdx[r.Date]
	})
}

func newGrid(g model.Granularity, rowLabels []string, recordCount int) *model.PivotGrid {
	hours := make([]int, model.HoursPerDay)
	cells := make([][]model.Cell, len(rowLabels))
	for h := range hours {
		hours[h] = h
	}
	for i := range cells {
		cells[i] = make([]model.Cell, model.HoursPerDay)
	}
	return &model.PivotGrid{
		Granularity: g,
		RowLabels:   append([]string(nil), rowLabels...),
		Hours:       hours,
		Cells:       cells,
		RecordCount: recordCount,
	}
}

func fillMeans(grid *model.PivotGrid, sums [][]float64, counts [][]int) {
	min, max := math.Inf(1), math.Inf(-1)
	for i := range sums {
		for h := 0; h < model.HoursPerDay; h++ {
			if counts[i][h] == 0 {
				continue
			}
			mean := sums[i][h] / float64(counts[i][h])
			grid.Cells[i][h] = model.Cell{Valid: true, Value: mean}
			grid.PresentCells++
			if mean < min {
				min = mean
			}
			if mean > max {
				max = mean
			}
		}
	}
	if grid.PresentCells > 0 {
		grid.Min, grid.Max = min, max
	}
}
