package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/health", handler.Health)

	api := router.Group("/api")
	{
		api.GET("/regions", handler.ListRegions)
		api.GET("/regions/locate", handler.LocateRegion)
		api.GET("/regions/address", handler.ResolveAddress)

		market := api.Group("/:property_type")
		{
			market.GET("/transactions/:region_code", handler.GetTransactions)
			market.GET("/jeonse/:region_code", handler.GetJeonseMarket)
			market.GET("/monthly-rent/:region_code", handler.GetMonthlyRentMarket)
			market.GET("/timeseries/:region_code", handler.GetTimeSeries)
		}
	}
}
