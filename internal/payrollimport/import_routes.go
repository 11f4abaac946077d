package payrollimport

import (
	"salary-system/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(api *gin.RouterGroup, handler *Handler) {
	imports := api.Group("/payroll-imports")
	imports.Use(middleware.RateLimitByIP(rate.Limit(1), 3))
	{
		imports.POST("", handler.Import)
		imports.POST("/validate", handler.Validate)
		imports.POST("/analyze-columns", handler.AnalyzeColumns)
	}
}
