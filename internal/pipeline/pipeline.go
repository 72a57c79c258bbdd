package pipeline

import (
	"context"
	"fmt"
	"time"

	"deployment-analyzer/internal/model"
)

// AnalysisResult is everything one analysis run produced.
type AnalysisResult struct {
	ID         string                `json:"id"`
	Spec       model.AnalysisSpec    `json:"spec"`
	CleanStats model.CleanStats      `json:"clean_stats"`
	Statistics model.Statistics      `json:"statistics"`
	Quality    []model.QualityMetrics `json:"quality,omitempty"`
	Grid       *model.PivotGrid      `json:"grid,omitempty"`
	Anomalies  *AnomalyReport        `json:"anomalies,omitempty"`
	Exports    []model.ExportResult  `json:"exports,omitempty"`
	Records    []model.CleanedRecord `json:"-"`
	StartedAt  time.Time             `json:"started_at"`
	FinishedAt time.Time             `json:"finished_at"`
}

// Run executes one analysis end to end: ingest all sources, clean, compute
// statistics and quality metrics, build the pivot grid, then run the
// optional anomaly detection and file exports. Persistence is the caller's
// concern; Run never touches the database.
func Run(ctx context.Context, id string, spec model.AnalysisSpec) (*AnalysisResult, error) {
	fmt.Printf("🚀 Starting analysis %s with %d source(s)\n", id, len(spec.Sources))

	result := &AnalysisResult{ID: id, Spec: spec, StartedAt: time.Now()}

	granularity, err := model.ParseGranularity(spec.Granularity)
	if err != nil {
		return nil, err
	}
	labels := model.LabelsFor(spec.Locale)

	raw, err := Ingest(ctx, spec.Sources)
	if err != nil {
		return nil, fmt.Errorf("ingestion failed: %w", err)
	}
	if len(raw.Records) == 0 {
		return nil, fmt.Errorf("no records ingested from %d source(s)", len(spec.Sources))
	}

	cleaned, stats, err := Clean(raw)
	if err != nil {
		return nil, fmt.Errorf("cleaning failed: %w", err)
	}
	result.CleanStats = stats
	result.Records = cleaned

	result.Statistics = Summarize(cleaned, labels)
	result.Quality = AssessQuality(raw, cleaned)

	result.Grid = Aggregate(cleaned, granularity, AggregateOptions{
		MaxDelay: spec.MaxDelay,
		Labels:   labels,
	})

	if spec.Anomaly != nil {
		report, err := DetectAnomalies(cleaned, *spec.Anomaly)
		if err != nil {
			return nil, fmt.Errorf("anomaly detection failed: %w", err)
		}
		result.Anomalies = report
		fmt.Printf("🔍 Anomaly detection (%s): %d of %d records flagged\n",
			report.Method, report.Count, len(cleaned))
	}

	if spec.Export != nil {
		if spec.Export.DataFile != "" {
			result.Exports = append(result.Exports, ExportCleaned(id, spec.Export.DataFile, cleaned))
		}
		if spec.Export.GridFile != "" {
			result.Exports = append(result.Exports, ExportGrid(spec.Export.GridFile, result.Grid))
		}
	}

	result.FinishedAt = time.Now()
	fmt.Printf("🎉 Analysis %s finished: %d records kept, took %v\n",
		id, stats.Kept, result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond))

	return result, nil
}
