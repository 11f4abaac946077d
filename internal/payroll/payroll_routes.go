package payroll

import "github.com/gin-gonic/gin"

func RegisterRoutes(api *gin.RouterGroup, handler *Handler) {
	payrolls := api.Group("/payrolls")
	{
		payrolls.GET("/:id", handler.GetByID)
	}

	periods := api.Group("/payroll-periods")
	{
		periods.GET("/:periodId/payrolls", handler.GetByPeriod)
	}
}
