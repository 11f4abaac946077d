package catalog

import "github.com/gin-gonic/gin"

func RegisterRoutes(api *gin.RouterGroup, handler *Handler) {
	components := api.Group("/salary-components")
	{
		components.GET("", handler.GetAll)
		components.POST("", handler.Create)
	}
}
