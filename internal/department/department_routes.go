package department

import "github.com/gin-gonic/gin"

func RegisterRoutes(api *gin.RouterGroup, handler *Handler) {
	departments := api.Group("/departments")
	{
		departments.GET("", handler.GetAll)
		departments.POST("", handler.Create)
	}
}
