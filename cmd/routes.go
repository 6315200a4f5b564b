package main

import (
	"log/slog"

	_ "github.com/mandic19/Shop/docs"
	"github.com/mandic19/Shop/internal/handlers"
	"github.com/mandic19/Shop/internal/middleware"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type routeHandlers struct {
	orders        *handlers.OrderHandlers
	products      *handlers.ProductHandlers
	variants      *handlers.VariantHandlers
	images        *handlers.ImageHandlers
	variantImages *handlers.VariantImageHandlers
	health        *handlers.HealthHandlers
}

// newServer builds the echo instance. Every /v1 route sits behind limiter.
func newServer(logger *slog.Logger, h routeHandlers, limiter echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.BodyLimit("12M"))
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.RequestLogger(logger))

	// Health checks
	e.GET("/health", h.health.HealthCheck)
	e.GET("/health/ready", h.health.ReadinessCheck)
	e.GET("/health/live", h.health.LivenessCheck)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	versions := middleware.NewVersionMiddleware()
	e.GET("/versions", versions.VersionsHandler)

	v1 := versions.VersionRoute(e, "v1", limiter)

	orders := v1.Group("/orders")
	orders.POST("", h.orders.CreateOrder)
	orders.GET("/:id", h.orders.GetOrder)

	products := v1.Group("/products")
	products.GET("", h.products.ListProducts)
	products.POST("", h.products.CreateProduct)
	products.GET("/:id", h.products.GetProduct)
	products.PUT("/:id", h.products.UpdateProduct)
	products.DELETE("/:id", h.products.DeleteProduct)

	variants := v1.Group("/variants")
	variants.GET("", h.variants.ListVariants)
	variants.POST("", h.variants.CreateVariant)
	variants.GET("/:id", h.variants.GetVariant)
	variants.PUT("/:id", h.variants.UpdateVariant)
	variants.DELETE("/:id", h.variants.DeleteVariant)

	images := v1.Group("/images")
	images.GET("", h.images.ListImages)
	images.POST("", h.images.CreateImage)
	images.POST("/upload", h.images.UploadImage)
	images.GET("/:id", h.images.GetImage)
	images.GET("/:id/url", h.images.GetImageURL)
	images.PUT("/:id", h.images.UpdateImage)
	images.DELETE("/:id", h.images.DeleteImage)

	variantImages := v1.Group("/variant-images")
	variantImages.GET("", h.variantImages.ListVariantImages)
	variantImages.POST("", h.variantImages.CreateVariantImage)
	variantImages.GET("/:id", h.variantImages.GetVariantImage)
	variantImages.PUT("/:id", h.variantImages.UpdateVariantImage)
	variantImages.DELETE("/:id", h.variantImages.DeleteVariantImage)

	return e
}
