package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"kona/api/handlers"
	"kona/services"
)

// HealthCheck 는 저장소 백엔드의 생존 여부를 확인한다.
// 파일 백엔드는 nil 을 넘겨도 된다.
type HealthCheck func(ctx context.Context) error

func New(topics *services.TopicService, health HealthCheck) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		if health != nil {
			if err := health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "storage": "down", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/topics", handlers.ListTopicsHandler(topics))
		api.GET("/topics/:id", handlers.GetTopicHandler(topics))
		api.GET("/topics/:id/history", handlers.GetTopicHistoryHandler(topics))
	}

	return r
}
