package pipeline

import (
	"fmt"
	"math"
	"sort"

	"deployment-analyzer/internal/model"
)

// DefaultAnomalyThreshold is used when a spec leaves the threshold unset.
const DefaultAnomalyThreshold = 3.0

// AnomalyReport summarizes the records flagged by one detection pass.
type AnomalyReport struct {
	Method     string  `json:"method"`
	Threshold  float64 `json:"threshold"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`

	MeanDelay   float64 `json:"mean_delay"`
	MedianDelay float64 `json:"median_delay"`
	MinDelay    float64 `json:"min_delay"`
	MaxDelay    float64 `json:"max_delay"`

	ByWeekday map[string]int `json:"by_weekday,omitempty"`
	ByHour    map[int]int    `json:"by_hour,omitempty"`

	Records []model.CleanedRecord `json:"records,omitempty"`
}

// DetectAnomalies flags records with unusual delays. Supported methods are
// zscore, iqr, percentile and absolute; a zero threshold falls back to the
// method default.
func DetectAnomalies(records []model.CleanedRecord, spec model.AnomalySpec) (*AnomalyReport, error) {
	threshold := spec.Threshold
	if threshold == 0 {
		threshold = DefaultAnomalyThreshold
	}

	delays := make([]float64, len(records))
	for i, r := range records {
		delays[i] = r.DelayMinutes
	}

	var flagged []model.CleanedRecord
	switch spec.Method {
	case "zscore", "":
		flagged = flagZScore(records, delays, threshold)
	case "iqr":
		flagged = flagIQR(records, delays, threshold)
	case "percentile":
		flagged = flagPercentile(records, delays, threshold)
	case "absolute":
		flagged = flagAbsolute(records, threshold)
	default:
		return nil, fmt.Errorf("unknown anomaly detection method: %q", spec.Method)
	}

	report := &AnomalyReport{
		Method:    spec.Method,
		Threshold: threshold,
		Count:     len(flagged),
		Records:   flagged,
	}
	if report.Method == "" {
		report.Method = "zscore"
	}
	if len(records) > 0 {
		report.Percentage = 100 * float64(len(flagged)) / float64(len(records))
	}
	if len(flagged) > 0 {
		fd := make([]float64, len(flagged))
		report.ByWeekday = make(map[string]int)
		report.ByHour = make(map[int]int)
		for i, r := range flagged {
			fd[i] = r.DelayMinutes
			report.ByWeekday[r.Weekday.String()]++
			report.ByHour[r.Hour]++
		}
		report.MeanDelay = mean(fd)
		report.MedianDelay = median(fd)
		report.MinDelay, report.MaxDelay = minMax(fd)
	}

	return report, nil
}

func flagZScore(records []model.CleanedRecord, delays []float64, threshold float64) []model.CleanedRecord {
	m := mean(delays)
	sd := stddev(delays, m)
	if sd == 0 {
		return nil
	}
	var out []model.CleanedRecord
	for i, r := range records {
		if math.Abs(delays[i]-m)/sd > threshold {
			out = append(out, r)
		}
	}
	return out
}

func flagIQR(records []model.CleanedRecord, delays []float64, multiplier float64) []model.CleanedRecord {
	q1 := quantile(delays, 0.25)
	q3 := quantile(delays, 0.75)
	iqr := q3 - q1
	if iqr == 0 {
		return nil
	}
	lo, hi := q1-multiplier*iqr, q3+multiplier*iqr
	var out []model.CleanedRecord
	for i, r := range records {
		if delays[i] < lo || delays[i] > hi {
			out = append(out, r)
		}
	}
	return out
}

func flagPercentile(records []model.CleanedRecord, delays []float64, pct float64) []model.CleanedRecord {
	// threshold is the share to flag from the top, e.g. 5 flags delays
	// above the 95th percentile
	cut := quantile(delays, (100-pct)/100)
	var out []model.CleanedRecord
	for i, r := range records {
		if delays[i] > cut {
			out = append(out, r)
		}
	}
	return out
}

func flagAbsolute(records []model.CleanedRecord, limit float64) []model.CleanedRecord {
	var out []model.CleanedRecord
	for _, r := range records {
		if r.DelayMinutes > limit {
			out = append(out, r)
		}
	}
	return out
}

// quantile computes the q-th quantile with linear interpolation between
// adjacent order statistics. The input slice is not modified.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	return quantile(values, 0.5)
}

func stddev(values []float64, m float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

func minMax(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
