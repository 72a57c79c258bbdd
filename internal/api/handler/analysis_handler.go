package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"deployment-analyzer/internal/model"
	"deployment-analyzer/internal/pipeline"
	"deployment-analyzer/internal/store"
	"deployment-analyzer/pkg/utils"
)

var outputs = utils.NewOutputManager("outputs")

// analysisID extracts the ID segment from /api/v1/analyses/{id}[/suffix].
func analysisID(path, suffix string) (string, bool) {
	const prefix = "/api/v1/analyses/"
	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		return "", false
	}
	id := path[len(prefix) : len(path)-len(suffix)]
	return id, id != ""
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// CreateAnalysis creates and starts a new analysis run
// @Summary Create a new analysis
// @Description Ingest the configured sources, clean and reconcile the records and build the delay pivot grid
// @Tags analyses
// @Accept json
// @Produce json
// @Param analysis body model.AnalysisSpec true "Analysis configuration"
// @Success 200 {object} map[string]interface{} "Analysis created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /analyses [post]
func CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var spec model.AnalysisSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if len(spec.Sources) == 0 {
		http.Error(w, "At least one source is required", http.StatusBadRequest)
		return
	}
	if _, err := model.ParseGranularity(spec.Granularity); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	analysisID := uuid.New().String()

	if err := store.SaveAnalysis(analysisID, spec); err != nil {
		http.Error(w, "Failed to save analysis", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), utils.ParseDuration(spec.Timeout))
	go func() {
		defer cancel()
		runAnalysis(ctx, analysisID, spec)
	}()

	writeJSON(w, map[string]interface{}{
		"message":    "Analysis created successfully!",
		"analysisID": analysisID,
		"status":     "pending",
		"createdAt":  time.Now().UTC(),
	})
}

// runAnalysis executes the pipeline and persists everything it produced.
// Export files are placed under the per-analysis output directory so the
// download endpoint can serve them.
func runAnalysis(ctx context.Context, analysisID string, spec model.AnalysisSpec) {
	store.UpdateAnalysisStatus(analysisID, "running")

	if spec.Export != nil {
		if spec.Export.DataFile != "" {
			if path, err := outputs.GetOutputFilePath(analysisID, spec.Export.DataFile); err == nil {
				spec.Export.DataFile = path
			}
		}
		if spec.Export.GridFile != "" {
			if path, err := outputs.GetOutputFilePath(analysisID, spec.Export.GridFile); err == nil {
				spec.Export.GridFile = path
			}
		}
	}

	result, err := pipeline.Run(ctx, analysisID, spec)
	if err != nil {
		store.SaveAnalysisError(analysisID, err)
		store.UpdateAnalysisStatus(analysisID, "failed")
		return
	}

	if result.Grid != nil {
		if err := store.SaveGrid(analysisID, result.Grid); err != nil {
			store.SaveAnalysisError(analysisID, err)
		}
	}
	if err := store.SaveQualityMetrics(analysisID, result.Quality); err != nil {
		store.SaveAnalysisError(analysisID, err)
	}
	if spec.Store {
		if err := store.SaveCleanedRecords(analysisID, result.Records); err != nil {
			store.SaveAnalysisError(analysisID, err)
		}
	}
	for _, exp := range result.Exports {
		if exp.Success {
			store.SaveOutputFile(analysisID, filepath.Base(exp.Path), outputs.GetFileType(exp.Path), exp.Path)
		}
	}

	store.UpdateAnalysisStatus(analysisID, "completed")
}

// ListAnalyses retrieves all analysis runs
// @Summary List all analyses
// @Description Get a list of all analysis runs with their current status
// @Tags analyses
// @Accept json
// @Produce json
// @Success 200 {array} map[string]interface{} "List of analyses"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /analyses [get]
func ListAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses, err := store.ListAnalyses()
	if err != nil {
		http.Error(w, "Failed to fetch analyses", http.StatusInternalServerError)
		return
	}
	writeJSON(w, analyses)
}

// GetAnalysis retrieves a specific analysis run
// @Summary Get analysis
// @Description Retrieve spec and status of a specific analysis run
// @Tags analyses
// @Accept json
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} map[string]interface{} "Analysis details"
// @Failure 400 {object} map[string]interface{} "Invalid analysis ID"
// @Failure 404 {object} map[string]interface{} "Analysis not found"
// @Router /analyses/{id} [get]
func GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := analysisID(r.URL.Path, "")
	if !ok {
		http.Error(w, "Analysis ID is required", http.StatusBadRequest)
		return
	}

	analysis, err := store.GetAnalysis(id)
	if err != nil {
		http.Error(w, "Analysis not found", http.StatusNotFound)
		return
	}
	writeJSON(w, analysis)
}

// GetAnalysisGrid returns the delay pivot grid for an analysis
// @Summary Get pivot grid
// @Description Return the stored grid, or recompute it from the stored records when granularity or maxDelay differ
// @Tags analyses
// @Accept json
// @Produce json
// @Param id path string true "Analysis ID"
// @Param granularity query string false "daily, weekly, monthly, yearly or hourly"
// @Param maxDelay query number false "Maximum delay in minutes"
// @Param from query string false "Keep records arriving on or after this date"
// @Param to query string false "Keep records arriving on or before this date"
// @Param locale query string false "Label locale, e.g. de"
// @Success 200 {object} model.PivotGrid "Pivot grid"
// @Failure 400 {object} map[string]interface{} "Invalid parameters"
// @Failure 404 {object} map[string]interface{} "No grid available"
// @Router /analyses/{id}/grid [get]
func GetAnalysisGrid(w http.ResponseWriter, r *http.Request) {
	id, ok := analysisID(r.URL.Path, "/grid")
	if !ok {
		http.Error(w, "Analysis ID is required", http.StatusBadRequest)
		return
	}

	granularity, err := model.ParseGranularity(r.URL.Query().Get("granularity"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var maxDelay *float64
	if s := r.URL.Query().Get("maxDelay"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			http.Error(w, "maxDelay must be a non-negative number", http.StatusBadRequest)
			return
		}
		maxDelay = &v
	}

	var from, to *time.Time
	if s := r.URL.Query().Get("from"); s != "" {
		if from = utils.ParseTimestamp(s); from == nil {
			http.Error(w, "from must be a date", http.StatusBadRequest)
			return
		}
	}
	if s := r.URL.Query().Get("to"); s != "" {
		if to = utils.ParseTimestamp(s); to == nil {
			http.Error(w, "to must be a date", http.StatusBadRequest)
			return
		}
	}

	// An unfiltered request for an already-stored granularity is served
	// from the database.
	if maxDelay == nil && from == nil && to == nil && r.URL.Query().Get("locale") == "" {
		grid, err := store.GetGrid(id, granularity)
		if err != nil {
			http.Error(w, "Failed to load grid", http.StatusInternalServerError)
			return
		}
		if grid != nil {
			writeJSON(w, grid)
			return
		}
	}

	records, err := store.GetCleanedRecords(id, 0)
	if err != nil {
		http.Error(w, "Failed to load records", http.StatusInternalServerError)
		return
	}
	if len(records) == 0 {
		http.Error(w, "No stored records for this analysis", http.StatusNotFound)
		return
	}

	grid := pipeline.Aggregate(records, granularity, pipeline.AggregateOptions{
		MaxDelay: maxDelay,
		From:     from,
		To:       to,
		Labels:   model.LabelsFor(r.URL.Query().Get("locale")),
	})
	if grid == nil {
		http.Error(w, "No records left after filtering", http.StatusNotFound)
		return
	}
	writeJSON(w, grid)
}

// GetAnalysisStats returns summary statistics for an analysis
// @Summary Get statistics
// @Description Summary statistics over the stored cleaned records
// @Tags analyses
// @Accept json
// @Produce json
// @Param id path string true "Analysis ID"
// @Param locale query string false "Label locale, e.g. de"
// @Success 200 {object} model.Statistics "Statistics"
// @Failure 404 {object} map[string]interface{} "No stored records"
// @Router /analyses/{id}/stats [get]
func GetAnalysisStats(w http.ResponseWriter, r *http.Request) {
	id, ok := analysisID(r.URL.Path, "/stats")
	if !ok {
		http.Error(w, "Analysis ID is required", http.StatusBadRequest)
		return
	}

	records, err := store.GetCleanedRecords(id, 0)
	if err != nil {
		http.Error(w, "Failed to load records", http.StatusInternalServerError)
		return
	}
	if len(records) == 0 {
		http.Error(w, "No stored records for this analysis", http.StatusNotFound)
		return
	}

	writeJSON(w, pipeline.Summarize(records, model.LabelsFor(r.URL.Query().Get("locale"))))
}

// GetAnalysisAnomalies runs anomaly detection over the stored records
// @Summary Detect anomalies
// @Description Flag records with unusual delays using the requested method
// @Tags analyses
// @Accept json
// @Produce json
// @Param id path string true "Analysis ID"
// @Param method query string false "zscore, iqr, percentile or absolute" default(zscore)
// @Param threshold query number false "Method threshold"
// @Success 200 {object} pipeline.AnomalyReport "Anomaly report"
// @Failure 400 {object} map[string]interface{} "Invalid parameters"
// @Failure 404 {object} map[string]interface{} "No stored records"
// @Router /analyses/{id}/anomalies [get]
func GetAnalysisAnomalies(w http.ResponseWriter, r *http.Request) {
	id, ok := analysisID(r.URL.Path, "/anomalies")
	if !ok {
		http.Error(w, "Analysis ID is required", http.StatusBadRequest)
		return
	}

	spec := model.AnomalySpec{Method: r.URL.Query().Get("method")}
	if s := r.URL.Query().Get("threshold"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			http.Error(w, "threshold must be a number", http.StatusBadRequest)
			return
		}
		spec.Threshold = v
	}

	records, err := store.GetCleanedRecords(id, 0)
	if err != nil {
		http.Error(w, "Failed to load records", http.StatusInternalServerError)
		return
	}
	if len(records) == 0 {
		http.Error(w, "No stored records for this analysis", http.StatusNotFound)
		return
	}

	report, err := pipeline.DetectAnomalies(records, spec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, report)
}

// GET /api/v1/analyses/{id}/records
func GetAnalysisRecords(w http.ResponseWriter, r *http.Request) {
	id, ok := analysisID(r.URL.Path, "/records")
	if !ok {
		http.Error(w, "Analysis ID is required", http.StatusBadRequest)
		return
	}

	limit := 100 // default
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	records, err := store.GetCleanedRecords(id, limit)
	if err != nil {
		http.Error(w, "Failed to retrieve records", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"analysis_id": id,
		"records":     records,
		"count":       len(records),
		"limit":       limit,
	})
}

// GetAnalysisErrors retrieves errors for an analysis
// @Summary Get analysis errors
// @Description Retrieve all errors that occurred during an analysis run
// @Tags analyses
// @Accept json
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} map[string]interface{} "Analysis errors"
// @Failure 400 {object} map[string]interface{} "Invalid analysis ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /analyses/{id}/errors [get]
func GetAnalysisErrors(w http.ResponseWriter, r *http.Request) {
	id, ok := analysisID(r.URL.Path, "/errors")
	if !ok {
		http.Error(w, "Analysis ID is required", http.StatusBadRequest)
		return
	}

	errors, err := store.GetAnalysisErrors(id)
	if err != nil {
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"analysis_id": id,
		"errors":      errors,
		"count":       len(errors),
	})
}

// GET /api/v1/analyses/{id}/quality
func GetAnalysisQuality(w http.ResponseWriter, r *http.Request) {
	id, ok := analysisID(r.URL.Path, "/quality")
	if !ok {
		http.Error(w, "Analysis ID is required", http.StatusBadRequest)
		return
	}

	metrics, err := store.GetQualityMetrics(id)
	if err != nil {
		http.Error(w, "Failed to retrieve quality metrics", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"analysis_id": id,
		"metrics":     metrics,
		"count":       len(metrics),
	})
}

// GET /api/v1/analyses/{id}/files
func GetAnalysisFiles(w http.ResponseWriter, r *http.Request) {
	id, ok := analysisID(r.URL.Path, "/files")
	if !ok {
		http.Error(w, "Analysis ID is required", http.StatusBadRequest)
		return
	}

	files, err := store.GetOutputFiles(id)
	if err != nil {
		http.Error(w, "Failed to retrieve files", http.StatusInternalServerError)
		return
	}
	for _, file := range files {
		if name, ok := file["fileName"].(string); ok {
			file["downloadUrl"] = outputs.GetDownloadURL(id, name)
		}
	}

	writeJSON(w, map[string]interface{}{
		"analysis_id": id,
		"files":       files,
		"count":       len(files),
	})
}

// DeleteAnalysis deletes an analysis and its artifacts
// @Summary Delete analysis
// @Description Delete an analysis run and all stored records, grids and metrics
// @Tags analyses
// @Accept json
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} map[string]interface{} "Analysis deleted"
// @Failure 400 {object} map[string]interface{} "Invalid analysis ID"
// @Failure 404 {object} map[string]interface{} "Analysis not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /analyses/{id} [delete]
func DeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := analysisID(r.URL.Path, "")
	if !ok {
		http.Error(w, "Analysis ID is required", http.StatusBadRequest)
		return
	}

	if _, err := store.GetAnalysis(id); err != nil {
		http.Error(w, "Analysis not found", http.StatusNotFound)
		return
	}

	files, _ := store.GetOutputFiles(id)
	for _, file := range files {
		if filePath, ok := file["filePath"].(string); ok {
			os.Remove(filePath)
		}
	}
	os.RemoveAll(fmt.Sprintf("outputs/%s", id))

	if err := store.DeleteAnalysis(id); err != nil {
		http.Error(w, "Failed to delete analysis", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"message":       "Analysis and all artifacts deleted successfully",
		"analysis_id":   id,
		"files_deleted": len(files),
	})
}

// DownloadFile serves an export file for download
// @Summary Download file
// @Description Download a specific output file from an analysis run
// @Tags files
// @Accept json
// @Produce application/octet-stream
// @Param analysisID path string true "Analysis ID"
// @Param filename path string true "File name"
// @Success 200 {file} file "File download"
// @Failure 400 {object} map[string]interface{} "Invalid URL format"
// @Failure 404 {object} map[string]interface{} "File not found"
// @Router /download/{analysisID}/{filename} [get]
func DownloadFile(w http.ResponseWriter, r *http.Request) {
	// URL format: /api/v1/download/analysisID/filename
	pathParts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(pathParts) < 5 {
		http.Error(w, "Invalid URL format", http.StatusBadRequest)
		return
	}
	analysisID := pathParts[3]
	fileName := pathParts[4]

	filePath := fmt.Sprintf("outputs/%s/%s", analysisID, fileName)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", fileName))
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeFile(w, r, filePath)
}
