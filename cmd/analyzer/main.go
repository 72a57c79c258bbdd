package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"

	"deployment-analyzer/internal/model"
	"deployment-analyzer/internal/pipeline"
	"deployment-analyzer/internal/store"
)

func main() {
	var (
		inputs           = flag.String("input", "", "comma-separated input files or URLs (CSV or JSON)")
		granularity      = flag.String("granularity", "daily", "daily, weekly, monthly, yearly or hourly")
		maxDelay         = flag.Float64("max-delay", 0, "ignore records with delays above this many minutes (0 = no limit)")
		locale           = flag.String("locale", "en", "locale for weekday and month labels")
		delimiter        = flag.String("delimiter", "", "CSV delimiter override (default: sniffed per file)")
		anomalyMethod    = flag.String("anomaly-method", "", "enable anomaly detection: zscore, iqr, percentile or absolute")
		anomalyThreshold = flag.Float64("anomaly-threshold", 0, "anomaly detection threshold (0 = method default)")
		dataFile         = flag.String("out-data", "", "write the cleaned batch to this file (.csv or .json)")
		gridFile         = flag.String("out-grid", "", "write the pivot grid to this CSV file")
		dbPath           = flag.String("db", "", "persist the analysis into this SQLite database")
		quiet            = flag.Bool("quiet", false, "suppress the grid printout")
	)
	flag.Parse()

	if *inputs == "" {
		fmt.Fprintln(os.Stderr, "at least one -input file is required")
		flag.Usage()
		os.Exit(2)
	}

	spec := model.AnalysisSpec{
		Granularity: *granularity,
		Locale:      *locale,
		Store:       *dbPath != "",
	}
	for _, path := range strings.Split(*inputs, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		typ := "csv"
		if strings.HasSuffix(strings.ToLower(path), ".json") {
			typ = "json"
		}
		spec.Sources = append(spec.Sources, model.Source{Type: typ, Path: path, Delimiter: *delimiter})
	}
	if *maxDelay > 0 {
		spec.MaxDelay = maxDelay
	}
	if *anomalyMethod != "" {
		spec.Anomaly = &model.AnomalySpec{Method: *anomalyMethod, Threshold: *anomalyThreshold}
	}
	if *dataFile != "" || *gridFile != "" {
		spec.Export = &model.ExportSpec{DataFile: *dataFile, GridFile: *gridFile}
	}

	analysisID := uuid.New().String()
	result, err := pipeline.Run(context.Background(), analysisID, spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Analysis failed: %v\n", err)
		os.Exit(1)
	}

	printStatistics(result.Statistics)
	if result.Anomalies != nil {
		printAnomalies(result.Anomalies)
	}
	if !*quiet && result.Grid != nil {
		printGrid(result.Grid)
	}

	if *dbPath != "" {
		if err := persist(*dbPath, analysisID, spec, result); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Failed to persist analysis: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("💾 Analysis %s persisted to %s\n", analysisID, *dbPath)
	}
}

func persist(dbPath, analysisID string, spec model.AnalysisSpec, result *pipeline.AnalysisResult) error {
	if err := store.InitDB(dbPath); err != nil {
		return err
	}
	if err := store.SaveAnalysis(analysisID, spec); err != nil {
		return err
	}
	if err := store.SaveCleanedRecords(analysisID, result.Records); err != nil {
		return err
	}
	if result.Grid != nil {
		if err := store.SaveGrid(analysisID, result.Grid); err != nil {
			return err
		}
	}
	if err := store.SaveQualityMetrics(analysisID, result.Quality); err != nil {
		return err
	}
	return store.UpdateAnalysisStatus(analysisID, "completed")
}

func printStatistics(stats model.Statistics) {
	fmt.Printf("\n📊 %d records, delay avg %.1f min (min %.1f, max %.1f)\n",
		stats.TotalRecords, stats.AvgDelay, stats.MinDelay, stats.MaxDelay)
	if len(stats.AvailableMonths) > 0 {
		fmt.Printf("   Covered months: %s\n", strings.Join(stats.AvailableMonths, ", "))
	}
}

func printAnomalies(report *pipeline.AnomalyReport) {
	fmt.Printf("\n🔍 Anomalies (%s, threshold %.1f): %d flagged (%.1f%%)\n",
		report.Method, report.Threshold, report.Count, report.Percentage)
	if report.Count > 0 {
		fmt.Printf("   Flagged delays between %.1f and %.1f minutes\n", report.MinDelay, report.MaxDelay)
	}
}

func printGrid(grid *model.PivotGrid) {
	fmt.Printf("\n🗓  Mean delay in minutes (%s)\n", grid.Granularity)

	w := tabwriter.NewWriter(os.Stdout, 4, 0, 1, ' ', 0)
	header := make([]string, 0, model.HoursPerDay+1)
	header = append(header, "")
	for _, h := range grid.Hours {
		header = append(header, fmt.Sprintf("%d", h))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for i, label := range grid.RowLabels {
		row := make([]string, 0, model.HoursPerDay+1)
		row = append(row, label)
		for h := 0; h < model.HoursPerDay; h++ {
			cell := grid.Cell(i, h)
			if cell.Valid {
				row = append(row, fmt.Sprintf("%.1f", cell.Value))
			} else {
				row = append(row, "-")
			}
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()

	if grid.PresentCells > 0 {
		fmt.Printf("   Cell means range from %.1f to %.1f minutes over %d records\n",
			grid.Min, grid.Max, grid.RecordCount)
	}
}
