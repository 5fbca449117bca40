package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gurmukh6912/saskfood-connect/blockchain"
	"github.com/gurmukh6912/saskfood-connect/config"
	"github.com/gurmukh6912/saskfood-connect/handlers"
	"github.com/gurmukh6912/saskfood-connect/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	config.Load()
	config.InitDB(config.DatabasePath())

	if rpcURL := config.EthereumRPCURL(); rpcURL != "" {
		handlers.ChainClient = blockchain.NewClient(rpcURL)
	} else {
		log.Println("ETHEREUM_RPC_URL not set, blockchain payments disabled")
	}

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "SaskFood Connect API",
			"version": "1.0.0",
		})
	})

	routes.SetupRoutes(r)

	addr := config.ListenAddr()
	log.Println("Starting server on", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Server failed: ", err)
	}
}
