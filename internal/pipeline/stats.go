package pipeline

import (
	"fmt"
	"sort"
	"time"

	"deployment-analyzer/internal/model"
)

// Summarize computes the headline statistics for a cleaned batch, including
// the months and years the data covers.
func Summarize(records []model.CleanedRecord, labels model.Labels) model.Statistics {
	if labels.Locale == "" {
		labels = model.LabelsFor("en")
	}

	stats := model.Statistics{TotalRecords: len(records)}
	if len(records) == 0 {
		return stats
	}

	delays := make([]float64, len(records))
	months := map[time.Time]bool{}
	years := map[int]bool{}
	for i, r := range records {
		delays[i] = r.DelayMinutes
		months[time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC)] = true
		years[r.Year] = true
	}

	stats.AvgDelay = mean(delays)
	stats.MinDelay, stats.MaxDelay = minMax(delays)

	monthOrder := make([]time.Time, 0, len(months))
	for m := range months {
		monthOrder = append(monthOrder, m)
	}
	sort.Slice(monthOrder, func(i, j int) bool { return monthOrder[i].Before(monthOrder[j]) })
	for _, m := range monthOrder {
		stats.AvailableMonths = append(stats.AvailableMonths,
			fmt.Sprintf("%s %d", labels.Months[int(m.Month())-1], m.Year()))
	}

	for y := range years {
		stats.AvailableYears = append(stats.AvailableYears, y)
	}
	sort.Ints(stats.AvailableYears)

	return stats
}

// AssessQuality computes per-source quality metrics for a cleaned batch.
// Raw row counts per source come from the uncleaned batch so completeness
// reflects what the filters discarded.
func AssessQuality(raw model.RawBatch, cleaned []model.CleanedRecord) []model.QualityMetrics {
	rawCounts := map[string]int{}
	for _, r := range raw.Records {
		rawCounts[r.SourceFile]++
	}

	bySource := map[string][]float64{}
	for _, r := range cleaned {
		bySource[r.SourceFile] = append(bySource[r.SourceFile], r.DelayMinutes)
	}

	sources := make([]string, 0, len(rawCounts))
	for s := range rawCounts {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	out := make([]model.QualityMetrics, 0, len(sources))
	for _, s := range sources {
		delays := bySource[s]
		qm := model.QualityMetrics{
			SourceFile: s,
			TotalRows:  rawCounts[s],
			KeptRows:   len(delays),
		}
		if qm.TotalRows > 0 {
			qm.Completeness = float64(qm.KeptRows) / float64(qm.TotalRows)
		}
		if len(delays) > 0 {
			qm.MeanDelay = mean(delays)
			qm.MedianDelay = median(delays)
			qm.StdDevDelay = stddev(delays, qm.MeanDelay)
			qm.MinDelay, qm.MaxDelay = minMax(delays)
		}
		out = append(out, qm)
	}
	return out
}
