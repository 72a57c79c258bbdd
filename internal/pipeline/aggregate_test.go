package pipeline

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deployment-analyzer/internal/model"
)

// cleanedAt builds a minimal cleaned record for an arrival time and delay.
func cleanedAt(arrival time.Time, delay float64) model.CleanedRecord {
	return model.CleanedRecord{
		Arrival:      arrival,
		Activation:   arrival.Add(time.Duration(delay * float64(time.Minute))),
		DelayMinutes: delay,
		Weekday:      arrival.Weekday(),
		Hour:         arrival.Hour(),
		Day:          arrival.Day(),
		Month:        int(arrival.Month()),
		Year:         arrival.Year(),
		Date:         time.Date(arrival.Year(), arrival.Month(), arrival.Day(), 0, 0, 0, 0, arrival.Location()),
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	assert.Nil(t, Aggregate(nil, model.Daily, AggregateOptions{}))
	assert.Nil(t, Aggregate([]model.CleanedRecord{}, model.Weekly, AggregateOptions{}))
}

func TestAggregate_WeeklyAxisIsFixed(t *testing.T) {
	// One record on a Wednesday; the weekly grid still carries all seven
	// weekday rows, Monday first.
	recs := []model.CleanedRecord{cleanedAt(ts(2025, time.March, 12, 9, 0, 0), 10)}

	grid := Aggregate(recs, model.Weekly, AggregateOptions{})
	require.NotNil(t, grid)
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, grid.RowLabels)
	require.Len(t, grid.Cells, 7)

	cell := grid.Cell(2, 9) // Wednesday row
	assert.True(t, cell.Valid)
	assert.Equal(t, 10.0, cell.Value)
	assert.Equal(t, 1, grid.PresentCells)
}

func TestAggregate_MonthlyAxisIsFixed(t *testing.T) {
	recs := []model.CleanedRecord{cleanedAt(ts(2025, time.March, 12, 9, 0, 0), 10)}

	grid := Aggregate(recs, model.Monthly, AggregateOptions{})
	require.NotNil(t, grid)
	require.Len(t, grid.RowLabels, 12)
	assert.Equal(t, "Jan", grid.RowLabels[0])
	assert.Equal(t, "Dec", grid.RowLabels[11])

	assert.True(t, grid.Cell(2, 9).Valid) // March row
	assert.False(t, grid.Cell(0, 9).Valid)
}

func TestAggregate_MissingIsNotZero(t *testing.T) {
	recs := []model.CleanedRecord{
		cleanedAt(ts(2025, time.March, 12, 9, 0, 0), 0), // genuine zero delay
	}

	grid := Aggregate(recs, model.Weekly, AggregateOptions{})
	require.NotNil(t, grid)

	present := grid.Cell(2, 9)
	assert.True(t, present.Valid)
	assert.Equal(t, 0.0, present.Value)

	missing := grid.Cell(2, 10)
	assert.False(t, missing.Valid)
}

func TestAggregate_HourlyMean(t *testing.T) {
	// Two records at hour 14 averaging 30.0, two at hour 23 averaging 15.0.
	recs := []model.CleanedRecord{
		cleanedAt(ts(2025, time.March, 10, 14, 0, 0), 20),
		cleanedAt(ts(2025, time.March, 11, 14, 30, 0), 40),
		cleanedAt(ts(2025, time.March, 10, 23, 5, 0), 10),
		cleanedAt(ts(2025, time.March, 12, 23, 45, 0), 20),
	}

	grid := Aggregate(recs, model.Hourly, AggregateOptions{})
	require.NotNil(t, grid)
	require.Equal(t, []string{"All Data"}, grid.RowLabels)
	require.Len(t, grid.Cells, 1)

	assert.Equal(t, 30.0, grid.Cell(0, 14).Value)
	assert.Equal(t, 15.0, grid.Cell(0, 23).Value)
	assert.Equal(t, 2, grid.PresentCells)
	assert.Equal(t, 15.0, grid.Min)
	assert.Equal(t, 30.0, grid.Max)
	assert.Equal(t, 4, grid.RecordCount)
}

func TestAggregate_DailyRowsAreDaysPresent(t *testing.T) {
	recs := []model.CleanedRecord{
		cleanedAt(ts(2025, time.March, 25, 8, 0, 0), 5),
		cleanedAt(ts(2025, time.March, 3, 8, 0, 0), 7),
		cleanedAt(ts(2025, time.March, 14, 8, 0, 0), 9),
	}

	grid := Aggregate(recs, model.Daily, AggregateOptions{})
	require.NotNil(t, grid)
	assert.Equal(t, []string{"3", "14", "25"}, grid.RowLabels)
}

func TestAggregate_YearlyRowsAreChronologicalDates(t *testing.T) {
	recs := []model.CleanedRecord{
		cleanedAt(ts(2025, time.April, 2, 8, 0, 0), 5),
		cleanedAt(ts(2025, time.March, 10, 8, 0, 0), 7),
		cleanedAt(ts(2025, time.March, 10, 15, 0, 0), 9),
	}

	grid := Aggregate(recs, model.Yearly, AggregateOptions{})
	require.NotNil(t, grid)
	assert.Equal(t, []string{"Mar 10", "Apr 02"}, grid.RowLabels)
}

func TestAggregate_GermanLabels(t *testing.T) {
	recs := []model.CleanedRecord{cleanedAt(ts(2025, time.March, 12, 9, 0, 0), 10)}

	grid := Aggregate(recs, model.Weekly, AggregateOptions{Labels: model.LabelsFor("de")})
	require.NotNil(t, grid)
	assert.Equal(t, "Mo", grid.RowLabels[0])
	assert.Equal(t, "So", grid.RowLabels[6])

	// identical bucket contents regardless of locale
	english := Aggregate(recs, model.Weekly, AggregateOptions{})
	assert.Equal(t, english.Cells, grid.Cells)
}

func TestAggregate_MaxDelayFilter(t *testing.T) {
	recs := []model.CleanedRecord{
		cleanedAt(ts(2025, time.March, 10, 14, 0, 0), 20),
		cleanedAt(ts(2025, time.March, 10, 14, 0, 0), 900),
	}

	limit := 60.0
	grid := Aggregate(recs, model.Hourly, AggregateOptions{MaxDelay: &limit})
	require.NotNil(t, grid)
	assert.Equal(t, 20.0, grid.Cell(0, 14).Value)
	assert.Equal(t, 1, grid.RecordCount)

	// filtering everything out yields no grid at all
	tight := 1.0
	assert.Nil(t, Aggregate(recs, model.Hourly, AggregateOptions{MaxDelay: &tight}))
}

func TestAggregate_DateRangeFilter(t *testing.T) {
	recs := []model.CleanedRecord{
		cleanedAt(ts(2025, time.March, 10, 14, 0, 0), 20),
		cleanedAt(ts(2025, time.April, 10, 14, 0, 0), 40),
	}

	from := ts(2025, time.April, 1, 0, 0, 0)
	grid := Aggregate(recs, model.Hourly, AggregateOptions{From: &from})
	require.NotNil(t, grid)
	assert.Equal(t, 40.0, grid.Cell(0, 14).Value)
	assert.Equal(t, 1, grid.RecordCount)
}

func TestAggregate_DateRangeBoundsCoverWholeDay(t *testing.T) {
	recs := []model.CleanedRecord{
		cleanedAt(ts(2025, time.March, 10, 8, 0, 0), 20),
		cleanedAt(ts(2025, time.March, 12, 8, 0, 0), 40),
	}

	// bounds carrying a time of day still include records from those dates
	from := ts(2025, time.March, 10, 18, 0, 0)
	to := ts(2025, time.March, 12, 6, 0, 0)
	grid := Aggregate(recs, model.Hourly, AggregateOptions{From: &from, To: &to})
	require.NotNil(t, grid)
	assert.Equal(t, 2, grid.RecordCount)
}

func TestAggregate_OrderIndependent(t *testing.T) {
	base := []model.CleanedRecord{
		cleanedAt(ts(2025, time.March, 10, 14, 0, 0), 20),
		cleanedAt(ts(2025, time.March, 11, 9, 0, 0), 40),
		cleanedAt(ts(2025, time.March, 12, 23, 0, 0), 10),
		cleanedAt(ts(2025, time.April, 1, 7, 0, 0), 55),
		cleanedAt(ts(2025, time.April, 2, 7, 30, 0), 65),
	}
	want := Aggregate(base, model.Yearly, AggregateOptions{})

	shuffled := append([]model.CleanedRecord(nil), base...)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, Aggregate(shuffled, model.Yearly, AggregateOptions{}))
	}
}
