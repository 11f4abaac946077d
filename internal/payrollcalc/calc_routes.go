package payrollcalc

import "github.com/gin-gonic/gin"

func RegisterRoutes(api *gin.RouterGroup, handler *Handler) {
	payrolls := api.Group("/payrolls")
	{
		payrolls.GET("/:id/calculation", handler.Preview)
		payrolls.POST("/:id/calculate", handler.Calculate)
		payrolls.POST("/calculate-batch", handler.CalculateBatch)
	}

	periods := api.Group("/payroll-periods")
	{
		periods.POST("/:periodId/calculate", handler.CalculateByPeriod)
	}
}
