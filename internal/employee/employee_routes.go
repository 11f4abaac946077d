package employee

import "github.com/gin-gonic/gin"

func RegisterRoutes(api *gin.RouterGroup, handler *Handler) {
	employees := api.Group("/employees")
	{
		employees.GET("", handler.GetAll)
		employees.POST("", handler.Create)
	}
}
