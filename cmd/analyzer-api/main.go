package main

import (
	"log"

	"deployment-analyzer/internal/api"
	"deployment-analyzer/internal/store"
	"deployment-analyzer/pkg/router"
)

// @title Deployment Analyzer API
// @version 1.0
// @description Timestamp reconciliation and delay aggregation for deployment event exports
// @host localhost:8080
// @BasePath /api/v1
func main() {
	if err := store.InitDB("analyzer.db"); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	r := router.New()
	api.RegisterRoutes(r)
	r.Start(":8080")
}
