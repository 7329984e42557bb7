package transport

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/ds124wfegd/insight-analyzer/internal/transport/middleware"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	TemplatesDir   string
	RequestTimeout time.Duration
}

func InitRoutes(datasetHandler *DatasetHandler, galleryHandler *GalleryHandler, cfg RouterConfig) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(cfg.RequestTimeout))

	api := router.Group("/api")
	{
		dataset := api.Group("/dataset")
		{
			dataset.GET("/options", datasetHandler.GetOptions)
			dataset.GET("/rows", datasetHandler.GetRows)
			dataset.GET("/charts", datasetHandler.GetCharts)
			dataset.GET("/charts/:file", datasetHandler.GetChartImage)
			dataset.GET("/export", datasetHandler.Export)
			dataset.GET("/summary", datasetHandler.GetSummary)
		}

		gallery := api.Group("/gallery")
		{
			gallery.GET("", galleryHandler.GetDefault)
			gallery.POST("", galleryHandler.Upload)
			gallery.GET("/variants/:file", galleryHandler.GetDefaultVariant)
			gallery.POST("/variants/:file", galleryHandler.UploadVariant)
		}
	}

	if cfg.TemplatesDir != "" {
		router.Static("/static", cfg.TemplatesDir)
		router.GET("/", func(c *gin.Context) {
			c.File(filepath.Join(cfg.TemplatesDir, "index.html"))
		})
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "insight-analyzer",
		})
	})
	return router
}
