package httpserver

import (
	"github.com/labstack/echo/v4"
)

type Deps struct {
	CatalogHandler *CatalogHTTP
	OrderHandler   *OrderHTTP
	StatusHandler  *StatusHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", d.StatusHandler.Live)
	e.GET("/health/ready", d.StatusHandler.Ready)

	e.GET("/", d.StatusHandler.Root)
	e.GET("/test", d.StatusHandler.Test)
	e.GET("/schema", d.StatusHandler.Schema)

	api := e.Group("/api")
	api.GET("/hello", d.StatusHandler.Hello)

	products := api.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.POST("", d.CatalogHandler.CreateProduct)
	products.POST("/seed", d.CatalogHandler.SeedProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)

	api.POST("/orders", d.OrderHandler.CreateOrder)
}
