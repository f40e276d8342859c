package api

import (
	"estateledger/server/internal/database"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, db *database.Database) {
	handler := NewHandler(db, nil)

	api := router.Group("/api")
	{
		api.POST("/houses", handler.RegisterHouse)
		api.POST("/offices", handler.RegisterOffice)
		api.POST("/agents", handler.RegisterAgent)
		api.POST("/customers", handler.RegisterCustomer)
		api.POST("/agent-offices", handler.AssignAgentToOffice)
		api.POST("/listings", handler.RegisterListing)
		api.POST("/sales", handler.RegisterSale)

		reports := api.Group("/reports")
		{
			reports.GET("/top-offices", handler.GetTopOffices)
			reports.GET("/top-agents", handler.GetTopAgents)
			reports.GET("/average-days-on-market", handler.GetAverageDaysOnMarket)
			reports.GET("/average-price", handler.GetAveragePrice)
			reports.GET("/top-zip-codes", handler.GetTopZipCodes)
			reports.POST("/commissions", handler.SnapshotCommissions)
		}
	}
}
