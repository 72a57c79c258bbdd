package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deployment-analyzer/internal/model"
)

func delayBatch(delays ...float64) []model.CleanedRecord {
	recs := make([]model.CleanedRecord, len(delays))
	for i, d := range delays {
		recs[i] = cleanedAt(ts(2025, time.March, 10, 10+i%4, 0, 0), d)
	}
	return recs
}

// clusterWithOutlier builds a batch large enough for one extreme value to
// clear the z-score threshold against the sample standard deviation.
func clusterWithOutlier(outlier float64) []model.CleanedRecord {
	delays := make([]float64, 0, 21)
	for i := 0; i < 10; i++ {
		delays = append(delays, 9, 11)
	}
	delays = append(delays, outlier)
	return delayBatch(delays...)
}

func TestDetectAnomalies_ZScore(t *testing.T) {
	recs := clusterWithOutlier(500)

	report, err := DetectAnomalies(recs, model.AnomalySpec{Method: "zscore"})
	require.NoError(t, err)

	assert.Equal(t, "zscore", report.Method)
	assert.Equal(t, DefaultAnomalyThreshold, report.Threshold)
	require.Equal(t, 1, report.Count)
	assert.Equal(t, 500.0, report.Records[0].DelayMinutes)
	assert.InDelta(t, 100.0/21, report.Percentage, 0.001)
	assert.Equal(t, 500.0, report.MinDelay)
	assert.Equal(t, 500.0, report.MaxDelay)
}

func TestDetectAnomalies_ZScoreConstantSeries(t *testing.T) {
	// Zero variance must flag nothing instead of dividing by zero.
	recs := delayBatch(10, 10, 10, 10)

	report, err := DetectAnomalies(recs, model.AnomalySpec{Method: "zscore"})
	require.NoError(t, err)
	assert.Zero(t, report.Count)
}

func TestDetectAnomalies_IQR(t *testing.T) {
	recs := delayBatch(10, 12, 11, 13, 12, 11, 10, 13, 12, 400)

	report, err := DetectAnomalies(recs, model.AnomalySpec{Method: "iqr", Threshold: 1.5})
	require.NoError(t, err)
	require.Equal(t, 1, report.Count)
	assert.Equal(t, 400.0, report.Records[0].DelayMinutes)
}

func TestDetectAnomalies_Percentile(t *testing.T) {
	// Threshold 10 flags the slowest 10% of the batch.
	recs := delayBatch(1, 2, 3, 4, 5, 6, 7, 8, 9, 100)

	report, err := DetectAnomalies(recs, model.AnomalySpec{Method: "percentile", Threshold: 10})
	require.NoError(t, err)
	require.Equal(t, 1, report.Count)
	assert.Equal(t, 100.0, report.Records[0].DelayMinutes)
}

func TestDetectAnomalies_PercentileFlagsTopShare(t *testing.T) {
	delays := make([]float64, 100)
	for i := range delays {
		delays[i] = float64(i + 1)
	}
	recs := delayBatch(delays...)

	// default threshold 3 means the top 3%
	report, err := DetectAnomalies(recs, model.AnomalySpec{Method: "percentile"})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Count)

	report, err = DetectAnomalies(recs, model.AnomalySpec{Method: "percentile", Threshold: 5})
	require.NoError(t, err)
	require.Equal(t, 5, report.Count)
	assert.Equal(t, 96.0, report.MinDelay)
	assert.Equal(t, 100.0, report.MaxDelay)
}

func TestDetectAnomalies_Absolute(t *testing.T) {
	recs := delayBatch(30, 59, 60, 61, 120)

	report, err := DetectAnomalies(recs, model.AnomalySpec{Method: "absolute", Threshold: 60})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count)
}

func TestDetectAnomalies_UnknownMethod(t *testing.T) {
	_, err := DetectAnomalies(delayBatch(1, 2, 3), model.AnomalySpec{Method: "magic"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "magic")
}

func TestDetectAnomalies_Distributions(t *testing.T) {
	recs := clusterWithOutlier(500)

	report, err := DetectAnomalies(recs, model.AnomalySpec{})
	require.NoError(t, err)
	require.Equal(t, 1, report.Count)

	outlier := report.Records[0]
	assert.Equal(t, 1, report.ByHour[outlier.Hour])
	assert.Equal(t, 1, report.ByWeekday[outlier.Weekday.String()])
}

func TestQuantile(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	assert.Equal(t, 2.5, quantile(values, 0.5))
	assert.Equal(t, 1.0, quantile(values, 0))
	assert.Equal(t, 4.0, quantile(values, 1))
	// input stays untouched
	assert.Equal(t, []float64{1, 2, 3, 4}, values)
}
