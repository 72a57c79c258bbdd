package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"deployment-analyzer/internal/model"
)

// ExportCleaned writes the cleaned batch to a file, CSV or JSON depending
// on the extension. Unknown extensions fall back to CSV.
func ExportCleaned(analysisID, path string, records []model.CleanedRecord) model.ExportResult {
	var (
		count int
		err   error
		typ   string
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		typ = "json"
		count, err = exportCleanedJSON(analysisID, path, records)
	default:
		typ = "csv"
		count, err = exportCleanedCSV(path, records)
	}

	result := model.ExportResult{
		Type:        typ,
		Path:        path,
		RecordCount: count,
		Success:     err == nil,
		ExportedAt:  time.Now(),
	}

	if err != nil {
		result.Error = err.Error()
		fmt.Printf("❌ Export to file failed: %v\n", err)
	} else {
		fmt.Printf("✅ Export successful: %d records exported to %s\n", count, path)
	}

	return result
}

var cleanedCSVHeader = []string{
	"instruction", "published", "arrival", "activation", "delay_minutes",
	"weekday", "hour", "day", "month", "year", "date",
	"rights_holder", "usage_rights", "expiry_date", "source_file",
}

func exportCleanedCSV(path string, records []model.CleanedRecord) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(cleanedCSVHeader); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range records {
		row := []string{
			r.Instruction,
			strconv.FormatBool(r.Published),
			r.Arrival.Format(time.RFC3339),
			r.Activation.Format(time.RFC3339),
			strconv.FormatFloat(r.DelayMinutes, 'f', -1, 64),
			r.Weekday.String(),
			strconv.Itoa(r.Hour),
			strconv.Itoa(r.Day),
			strconv.Itoa(r.Month),
			strconv.Itoa(r.Year),
			r.Date.Format("2006-01-02"),
			r.Rights.Holder,
			r.Rights.UsageTerms,
			r.Rights.Expiry,
			r.SourceFile,
		}
		if err := writer.Write(row); err != nil {
			return i, fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return len(records), writer.Error()
}

func exportCleanedJSON(analysisID, path string, records []model.CleanedRecord) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	exportData := map[string]interface{}{
		"export_info": map[string]interface{}{
			"analysis_id":  analysisID,
			"exported_at":  time.Now().UTC(),
			"record_count": len(records),
			"export_type":  "cleaned_records",
		},
		"data": records,
	}

	if err := encoder.Encode(exportData); err != nil {
		return 0, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return len(records), nil
}

// ExportGrid writes a pivot grid as CSV. Missing cells become empty fields
// so they stay distinguishable from zero-delay cells.
func ExportGrid(path string, grid *model.PivotGrid) model.ExportResult {
	count, err := writeGridCSV(path, grid)

	result := model.ExportResult{
		Type:        "grid",
		Path:        path,
		RecordCount: count,
		Success:     err == nil,
		ExportedAt:  time.Now(),
	}
	if err != nil {
		result.Error = err.Error()
		fmt.Printf("❌ Grid export failed: %v\n", err)
	} else {
		fmt.Printf("✅ Grid export successful: %d rows written to %s\n", count, path)
	}
	return result
}

func writeGridCSV(path string, grid *model.PivotGrid) (int, error) {
	if grid == nil {
		return 0, fmt.Errorf("no grid to export")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := make([]string, 0, model.HoursPerDay+1)
	header = append(header, string(grid.Granularity))
	for _, h := range grid.Hours {
		header = append(header, strconv.Itoa(h))
	}
	if err := writer.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	for i, label := range grid.RowLabels {
		row := make([]string, 0, model.HoursPerDay+1)
		row = append(row, label)
		for h := 0; h < model.HoursPerDay; h++ {
			cell := grid.Cell(i, h)
			if cell.Valid {
				row = append(row, strconv.FormatFloat(cell.Value, 'f', 2, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := writer.Write(row); err != nil {
			return i, fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return len(grid.RowLabels), writer.Error()
}
