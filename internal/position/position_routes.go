package position

import "github.com/gin-gonic/gin"

func RegisterRoutes(api *gin.RouterGroup, handler *Handler) {
	positions := api.Group("/positions")
	{
		positions.GET("", handler.GetAll)
		positions.POST("", handler.Create)
	}
}
