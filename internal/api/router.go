package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jengzang/a5grid/internal/config"
	"github.com/jengzang/a5grid/internal/handler"
	"github.com/jengzang/a5grid/internal/metrics"
	"github.com/jengzang/a5grid/internal/middleware"
	"github.com/jengzang/a5grid/internal/repository"
	"github.com/jengzang/a5grid/internal/service"
)

// SetupRouter 设置路由. The returned func releases the caches held by the
// services.
func SetupRouter(cfg *config.Config, db *sql.DB, log *zap.Logger) (*gin.Engine, func(), error) {
	cellService, err := service.NewCellService(cfg.CacheMaxCost, cfg.MaxUncompactCells, log)
	if err != nil {
		return nil, nil, err
	}
	gridService := service.NewGridService(repository.NewGridRepository(db), cellService, cfg.DefaultResolution, log)
	coverageService := service.NewCoverageService(repository.NewCoverageRepository(db), cellService, log)

	cells := handler.NewCellHandler(cellService, cfg.DefaultResolution)
	grid := handler.NewGridHandler(gridService, cfg.DefaultResolution)
	coverages := handler.NewCoverageHandler(coverageService, cellService)

	r := gin.New()
	r.Use(
		middleware.Recovery(log),
		middleware.Logger(log),
		middleware.Metrics(),
		middleware.CORS(),
		middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "a5grid API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	auth := middleware.Auth(cfg.JWTSecret)

	api := r.Group("/api/v1")
	{
		c := api.Group("/cells")
		{
			c.GET("/encode", cells.Encode)
			c.GET("/res0", cells.Res0)
			c.GET("/wireframe", cells.Wireframe)
			c.POST("/compact", cells.Compact)
			c.POST("/uncompact", cells.Uncompact)
			c.GET("/:id", cells.GetCell)
			c.GET("/:id/boundary", cells.GetBoundary)
			c.GET("/:id/contains", cells.Contains)
			c.GET("/:id/parent", cells.GetParent)
			c.GET("/:id/children", cells.GetChildren)
		}

		api.GET("/resolutions/:res", cells.GetResolution)

		g := api.Group("/grid")
		{
			g.GET("/summary", grid.Summary)
			g.GET("/cells", grid.GetGridCells)
			g.GET("/cells/:id", grid.GetGridCell)
			g.GET("/cells/:id/rollup", grid.Rollup)
			g.POST("/points", auth, grid.IngestPoints)
			g.DELETE("/resolutions/:res", auth, grid.Reset)
		}

		cov := api.Group("/coverages")
		{
			cov.GET("", coverages.List)
			cov.GET("/:name", coverages.Get)
			cov.GET("/:name/geojson", coverages.GeoJSON)
			cov.POST("", auth, coverages.Save)
			cov.DELETE("/:name", auth, coverages.Delete)
		}
	}

	return r, cellService.Close, nil
}
