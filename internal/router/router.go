package router

import (
	"net/http"

	"github.com/amformscst/backend/config"
	"github.com/amformscst/backend/internal/handler"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func Setup(
	cfg *config.Config,
	templateHandler *handler.TextTemplateHandler,
	variableHandler *handler.VariableHandler,
	notebookHandler *handler.NotebookHandler,
	formgenHandler *handler.FormgenHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(gzip.Gzip(gzip.DefaultCompression))
	{
		templateHandler.RegisterRoutes(api)
		variableHandler.RegisterRoutes(api)
		notebookHandler.RegisterRoutes(api)
		formgenHandler.RegisterRoutes(api)
	}

	return r
}
