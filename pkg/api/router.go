package api

import (
	"context"
	"net/http"
	"time"

	"library_catalog/pkg/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robinjoseph08/golib/logger"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	AllowedOrigin string
	Log           logger.Logger
}

func NewRouter(cfg RouterConfig, books store.BookStore, db Pinger) *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{cfg.AllowedOrigin},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(RequestID(), AccessLog(cfg.Log), gin.Recovery())

	r.GET("/manage/health", healthCheck(db))

	h := NewBookHandler(books, cfg.Log)
	libros := r.Group("/api/libros")
	{
		libros.GET("", h.List)
		libros.GET("/disponibles", h.ListAvailable)
		libros.GET("/:id", h.Get)
		libros.POST("", h.Create)
		libros.PUT("/:id", h.Update)
		libros.DELETE("/:id", h.Delete)
		libros.GET("/buscar/titulo/:titulo", h.SearchByTitle)
		libros.GET("/buscar/autor/:autor", h.SearchByAuthor)
	}

	return r
}

func healthCheck(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "DOWN",
				"details": "Database ping failed",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	}
}
