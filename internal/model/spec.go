package model

import "time"

// Source is one input file or URL for an analysis run.
type Source struct {
	Type      string `json:"type"` // csv, json
	Path      string `json:"path"`
	Delimiter string `json:"delimiter,omitempty"` // empty = sniff
}

// AnomalySpec configures optional anomaly detection over the cleaned batch.
type AnomalySpec struct {
	Method    string  `json:"method"` // zscore, iqr, percentile, absolute
	Threshold float64 `json:"threshold,omitempty"`
}

// ExportSpec names the output files an analysis run should write.
type ExportSpec struct {
	DataFile string `json:"dataFile,omitempty"` // cleaned batch, .csv or .json
	GridFile string `json:"gridFile,omitempty"` // pivot grid CSV
}

// AnalysisSpec is the full configuration for one analysis run; it is the
// body of POST /api/v1/analyses and is built from flags by the CLI.
type AnalysisSpec struct {
	Sources     []Source     `json:"sources"`
	Granularity string       `json:"granularity,omitempty"` // default daily
	MaxDelay    *float64     `json:"maxDelay,omitempty"`    // minutes
	Locale      string       `json:"locale,omitempty"`      // weekday/month labels
	Anomaly     *AnomalySpec `json:"anomaly,omitempty"`
	Export      *ExportSpec  `json:"export,omitempty"`
	Store       bool         `json:"store"`             // persist cleaned records
	Timeout     string       `json:"timeout,omitempty"` // run timeout, e.g. "2m"
}

// ExportResult reports one export operation.
type ExportResult struct {
	Type        string    `json:"type"` // "csv", "json", "grid", "database"
	Path        string    `json:"path"`
	RecordCount int       `json:"record_count"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	ExportedAt  time.Time `json:"exported_at"`
}

// Statistics summarizes a cleaned batch.
type Statistics struct {
	TotalRecords    int      `json:"total_records"`
	AvgDelay        float64  `json:"avg_delay"`
	MinDelay        float64  `json:"min_delay"`
	MaxDelay        float64  `json:"max_delay"`
	AvailableMonths []string `json:"available_months,omitempty"` // "March 2025"
	AvailableYears  []int    `json:"available_years,omitempty"`
}

// QualityMetrics captures per-source data quality, persisted alongside the
// cleaned records.
type QualityMetrics struct {
	SourceFile   string  `json:"source_file"`
	TotalRows    int     `json:"total_rows"`
	KeptRows     int     `json:"kept_rows"`
	Completeness float64 `json:"completeness"` // kept / total
	MeanDelay    float64 `json:"mean_delay"`
	MedianDelay  float64 `json:"median_delay"`
	StdDevDelay  float64 `json:"stddev_delay"`
	MinDelay     float64 `json:"min_delay"`
	MaxDelay     float64 `json:"max_delay"`
}
