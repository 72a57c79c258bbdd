package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deployment-analyzer/internal/model"
)

func TestExportCleaned_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleaned.csv")
	recs := []model.CleanedRecord{
		cleanedAt(ts(2025, time.March, 10, 14, 0, 0), 30),
		cleanedAt(ts(2025, time.March, 11, 9, 30, 0), 45),
	}

	result := ExportCleaned("abc123", path, recs)
	require.True(t, result.Success, result.Error)
	assert.Equal(t, "csv", result.Type)
	assert.Equal(t, 2, result.RecordCount)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, cleanedCSVHeader, rows[0])
	assert.Equal(t, "30", rows[1][4]) // delay_minutes
	assert.Equal(t, "Monday", rows[1][5])
}

func TestExportCleaned_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleaned.json")
	recs := []model.CleanedRecord{cleanedAt(ts(2025, time.March, 10, 14, 0, 0), 30)}

	result := ExportCleaned("abc123", path, recs)
	require.True(t, result.Success, result.Error)
	assert.Equal(t, "json", result.Type)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var payload struct {
		ExportInfo struct {
			AnalysisID  string `json:"analysis_id"`
			RecordCount int    `json:"record_count"`
			ExportType  string `json:"export_type"`
		} `json:"export_info"`
		Data []model.CleanedRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, "abc123", payload.ExportInfo.AnalysisID)
	assert.Equal(t, 1, payload.ExportInfo.RecordCount)
	assert.Equal(t, "cleaned_records", payload.ExportInfo.ExportType)
	require.Len(t, payload.Data, 1)
	assert.Equal(t, 30.0, payload.Data[0].DelayMinutes)
}

func TestExportGrid_MissingCellsStayEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.csv")
	recs := []model.CleanedRecord{
		cleanedAt(ts(2025, time.March, 12, 9, 0, 0), 0), // real zero delay
	}
	grid := Aggregate(recs, model.Weekly, AggregateOptions{})
	require.NotNil(t, grid)

	result := ExportGrid(path, grid)
	require.True(t, result.Success, result.Error)
	assert.Equal(t, 7, result.RecordCount)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, rows, 8)

	assert.True(t, strings.HasPrefix(rows[0], "weekly,0,1,"))

	wednesday := strings.Split(rows[3], ",")
	require.Len(t, wednesday, 25)
	assert.Equal(t, "Wed", wednesday[0])
	assert.Equal(t, "0.00", wednesday[10]) // hour 9 column, present zero
	assert.Equal(t, "", wednesday[11])     // hour 10 column, missing
}

func TestExportGrid_NilGrid(t *testing.T) {
	result := ExportGrid(filepath.Join(t.TempDir(), "grid.csv"), nil)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}
