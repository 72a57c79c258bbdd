package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellJSON(t *testing.T) {
	data, err := json.Marshal([]Cell{{Valid: true, Value: 12.5}, {}, {Valid: true, Value: 0}})
	require.NoError(t, err)
	assert.JSONEq(t, `[12.5, null, 0]`, string(data))

	var cells []Cell
	require.NoError(t, json.Unmarshal(data, &cells))
	require.Len(t, cells, 3)
	assert.True(t, cells[0].Valid)
	assert.False(t, cells[1].Valid)
	assert.True(t, cells[2].Valid)
	assert.Equal(t, 0.0, cells[2].Value)
}

func TestGridCellOutOfRange(t *testing.T) {
	grid := PivotGrid{Cells: [][]Cell{{{Valid: true, Value: 1}}}}
	assert.False(t, grid.Cell(-1, 0).Valid)
	assert.False(t, grid.Cell(0, 24).Valid)
	assert.False(t, grid.Cell(5, 0).Valid)
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("")
	require.NoError(t, err)
	assert.Equal(t, Daily, g)

	for _, s := range []string{"daily", "weekly", "monthly", "yearly", "hourly"} {
		g, err := ParseGranularity(s)
		require.NoError(t, err)
		assert.Equal(t, Granularity(s), g)
	}

	_, err = ParseGranularity("quarterly")
	assert.Error(t, err)
}

func TestLabelsFor(t *testing.T) {
	assert.Equal(t, "en", LabelsFor("").Locale)
	assert.Equal(t, "de", LabelsFor("de").Locale)
	assert.Equal(t, "de", LabelsFor("de-AT").Locale)
	assert.Equal(t, "de", LabelsFor("DE_de").Locale)
	assert.Equal(t, "en", LabelsFor("fr").Locale)
	assert.Equal(t, "Montag", LabelsFor("german").Weekdays[0])
}

func TestMondayIndex(t *testing.T) {
	assert.Equal(t, 0, MondayIndex(time.Monday))
	assert.Equal(t, 2, MondayIndex(time.Wednesday))
	assert.Equal(t, 6, MondayIndex(time.Sunday))
}

func TestRawBatchMerge(t *testing.T) {
	a := RawBatch{Columns: []string{"x", "y"}, Records: []RawRecord{{Instruction: "1"}}}
	b := RawBatch{Columns: []string{"y", "z"}, Records: []RawRecord{{Instruction: "2"}}}

	a.Merge(b)
	assert.Equal(t, []string{"x", "y", "z"}, a.Columns)
	require.Len(t, a.Records, 2)
}

func TestRawRecordKey(t *testing.T) {
	now := time.Now()
	yes := true
	a := RawRecord{Instruction: "i", Activation: &now, Published: &yes}
	b := RawRecord{Instruction: "i", Activation: &now, Published: &yes}
	assert.Equal(t, a.Key(), b.Key())

	no := false
	c := RawRecord{Instruction: "i", Activation: &now, Published: &no}
	assert.NotEqual(t, a.Key(), c.Key())

	// source file is deliberately excluded so the same row imported twice
	// from different files still deduplicates
	d := a
	d.SourceFile = "other.csv"
	assert.Equal(t, a.Key(), d.Key())
}
