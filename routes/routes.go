package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/izzydoesit/gemini-api/handlers"
	"github.com/izzydoesit/gemini-api/service"
)

// NewOrderPath is the intake endpoint; the payload's request field must
// match it exactly.
const NewOrderPath = "/v1/order/new"

func RegisterRoutes(router *gin.Engine, gw *service.Gateway) {
	orderHandler := handlers.NewOrderHandler(gw)

	// GET/PUT/PATCH/DELETE on the order endpoint must come back 405, not 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method Not Allowed"})
	})

	v1 := router.Group("/v1")
	{
		v1.POST("/order/new", orderHandler.NewOrder)
	}

	router.GET("/health", orderHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
