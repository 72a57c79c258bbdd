package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"deployment-analyzer/internal/model"
)

var db *sql.DB

// Initialize DB connection
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	// Create tables if not exists
	tables := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			spec TEXT,
			status TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS analysis_errors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id TEXT,
			error_message TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS cleaned_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id TEXT,
			record TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS result_grids (
			analysis_id TEXT,
			granularity TEXT,
			grid TEXT,
			created_at DATETIME,
			PRIMARY KEY (analysis_id, granularity)
		);`,
		`CREATE TABLE IF NOT EXISTS quality_metrics (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id TEXT,
			metrics TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS output_files (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id TEXT,
			file_name TEXT,
			file_type TEXT,
			file_path TEXT,
			created_at DATETIME
		);`,
	}

	for _, table := range tables {
		if _, err := db.Exec(table); err != nil {
			return err
		}
	}

	return nil
}

// SaveAnalysis stores a new analysis run
func SaveAnalysis(analysisID string, spec model.AnalysisSpec) error {
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO analyses (id, spec, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		analysisID, specJSON, "pending", now, now)
	return err
}

// UpdateAnalysisStatus updates the run status
func UpdateAnalysisStatus(analysisID string, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE analyses SET status = ?, updated_at = ? WHERE id = ?`, status, now, analysisID)
	return err
}

// SaveAnalysisError records an error for an analysis
func SaveAnalysisError(analysisID string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO analysis_errors (analysis_id, error_message, created_at) VALUES (?, ?, ?)`,
		analysisID, err.Error(), now)
	return e
}

// GetAnalysisErrors returns all errors recorded for an analysis
func GetAnalysisErrors(analysisID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT error_message, created_at FROM analysis_errors WHERE analysis_id = ? ORDER BY created_at`, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errors []map[string]interface{}
	for rows.Next() {
		var msg string
		var createdAt time.Time
		if err := rows.Scan(&msg, &createdAt); err != nil {
			return nil, err
		}
		errors = append(errors, map[string]interface{}{
			"message":   msg,
			"createdAt": createdAt,
		})
	}
	return errors, rows.Err()
}

// ListAnalyses returns all analyses with basic info
func ListAnalyses() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, status, created_at, updated_at FROM analyses ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []map[string]interface{}
	for rows.Next() {
		var id, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		analyses = append(analyses, map[string]interface{}{
			"id":        id,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return analyses, rows.Err()
}

// GetAnalysis fetches full analysis spec and status
func GetAnalysis(analysisID string) (map[string]interface{}, error) {
	var specJSON, status string
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT spec, status, created_at, updated_at FROM analyses WHERE id = ?`, analysisID).
		Scan(&specJSON, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var spec model.AnalysisSpec
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":        analysisID,
		"spec":      spec,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}, nil
}

// DeleteAnalysis removes an analysis and everything stored for it
func DeleteAnalysis(analysisID string) error {
	statements := []string{
		`DELETE FROM cleaned_records WHERE analysis_id = ?`,
		`DELETE FROM result_grids WHERE analysis_id = ?`,
		`DELETE FROM quality_metrics WHERE analysis_id = ?`,
		`DELETE FROM output_files WHERE analysis_id = ?`,
		`DELETE FROM analysis_errors WHERE analysis_id = ?`,
		`DELETE FROM analyses WHERE id = ?`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt, analysisID); err != nil {
			return err
		}
	}
	return nil
}

// SaveCleanedRecords stores the cleaned batch for later re-aggregation
func SaveCleanedRecords(analysisID string, records []model.CleanedRecord) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO cleaned_records (analysis_id, record) VALUES (?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		recJSON, err := json.Marshal(rec)
		if err != nil {
			tx.Rollback()
			return err
		}
		if _, err := stmt.Exec(analysisID, recJSON); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GetCleanedRecords loads the cleaned batch of an analysis
func GetCleanedRecords(analysisID string, limit int) ([]model.CleanedRecord, error) {
	query := `SELECT record FROM cleaned_records WHERE analysis_id = ? ORDER BY id`
	args := []interface{}{analysisID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.CleanedRecord
	for rows.Next() {
		var recJSON string
		if err := rows.Scan(&recJSON); err != nil {
			return nil, err
		}
		var rec model.CleanedRecord
		if err := json.Unmarshal([]byte(recJSON), &rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SaveGrid stores a pivot grid, replacing an earlier one of the same
// granularity
func SaveGrid(analysisID string, grid *model.PivotGrid) error {
	gridJSON, err := json.Marshal(grid)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT OR REPLACE INTO result_grids (analysis_id, granularity, grid, created_at) VALUES (?, ?, ?, ?)`,
		analysisID, string(grid.Granularity), gridJSON, time.Now().UTC())
	return err
}

// GetGrid loads a stored pivot grid, nil when none was stored
func GetGrid(analysisID string, granularity model.Granularity) (*model.PivotGrid, error) {
	var gridJSON string
	err := db.QueryRow(`SELECT grid FROM result_grids WHERE analysis_id = ? AND granularity = ?`,
		analysisID, string(granularity)).Scan(&gridJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var grid model.PivotGrid
	if err := json.Unmarshal([]byte(gridJSON), &grid); err != nil {
		return nil, err
	}
	return &grid, nil
}

// SaveQualityMetrics stores per-source quality metrics
func SaveQualityMetrics(analysisID string, metrics []model.QualityMetrics) error {
	for _, m := range metrics {
		mJSON, err := json.Marshal(m)
		if err != nil {
			return err
		}
		if _, err := db.Exec(`INSERT INTO quality_metrics (analysis_id, metrics) VALUES (?, ?)`,
			analysisID, mJSON); err != nil {
			return err
		}
	}
	return nil
}

// GetQualityMetrics loads per-source quality metrics
func GetQualityMetrics(analysisID string) ([]model.QualityMetrics, error) {
	rows, err := db.Query(`SELECT metrics FROM quality_metrics WHERE analysis_id = ? ORDER BY id`, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []model.QualityMetrics
	for rows.Next() {
		var mJSON string
		if err := rows.Scan(&mJSON); err != nil {
			return nil, err
		}
		var m model.QualityMetrics
		if err := json.Unmarshal([]byte(mJSON), &m); err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// SaveOutputFile records an export file written for an analysis
func SaveOutputFile(analysisID, fileName, fileType, filePath string) error {
	_, err := db.Exec(`INSERT INTO output_files (analysis_id, file_name, file_type, file_path, created_at) VALUES (?, ?, ?, ?, ?)`,
		analysisID, fileName, fileType, filePath, time.Now().UTC())
	return err
}

// GetOutputFiles lists the export files recorded for an analysis
func GetOutputFiles(analysisID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT file_name, file_type, file_path, created_at FROM output_files WHERE analysis_id = ? ORDER BY created_at`, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []map[string]interface{}
	for rows.Next() {
		var name, typ, path string
		var createdAt time.Time
		if err := rows.Scan(&name, &typ, &path, &createdAt); err != nil {
			return nil, err
		}
		files = append(files, map[string]interface{}{
			"fileName":  name,
			"fileType":  typ,
			"filePath":  path,
			"createdAt": createdAt,
		})
	}
	return files, rows.Err()
}
