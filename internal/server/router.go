package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	logger *slog.Logger,
	receiptH *ReceiptHandler,
	analyticsH *AnalyticsHandler,
	budgetH *BudgetHandler,
	exportH *ExportHandler,
	healthH *HealthHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))

	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	receipts := v1.Group("/receipts")
	receipts.POST("/scan", receiptH.Scan)
	receipts.GET("", receiptH.List)
	receipts.GET("/:id/items", receiptH.Items)

	analytics := v1.Group("/analytics")
	analytics.GET("/categories", analyticsH.Categories)
	analytics.GET("/totals", analyticsH.Totals)

	bud := v1.Group("/budget")
	bud.GET("", budgetH.Get)
	bud.PUT("", budgetH.Put)
	bud.GET("/status", budgetH.Status)
	bud.GET("/weekly", budgetH.Weekly)

	v1.GET("/export/items", exportH.Items)

	return r
}
