package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	_ "deployment-analyzer/docs"
	"deployment-analyzer/internal/api/handler"
	"deployment-analyzer/pkg/router"
)

func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/analyses", handler.CreateAnalysis)
	r.GET("/api/v1/analyses", handler.ListAnalyses)
	// More specific routes first
	r.GET("/api/v1/analyses/*/grid", handler.GetAnalysisGrid)
	r.GET("/api/v1/analyses/*/stats", handler.GetAnalysisStats)
	r.GET("/api/v1/analyses/*/anomalies", handler.GetAnalysisAnomalies)
	r.GET("/api/v1/analyses/*/records", handler.GetAnalysisRecords)
	r.GET("/api/v1/analyses/*/errors", handler.GetAnalysisErrors)
	r.GET("/api/v1/analyses/*/quality", handler.GetAnalysisQuality)
	r.GET("/api/v1/analyses/*/files", handler.GetAnalysisFiles)
	// Generic analysis routes last
	r.GET("/api/v1/analyses/*", handler.GetAnalysis)
	r.DELETE("/api/v1/analyses/*", handler.DeleteAnalysis)

	r.GET("/api/v1/download/*", handler.DownloadFile)

	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.WrapHandler))
}
