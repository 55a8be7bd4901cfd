package main

import (
	"context"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/bson"

	"kona/api/router"
	"kona/config"
	"kona/db"
	"kona/repositories"
	"kona/services"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()

	ctx := context.Background()

	var index repositories.TopicIndexStore
	var articles repositories.ArticleStore
	var health router.HealthCheck
	switch cfg.Storage.Backend {
	case "mongo":
		if err := db.Init(ctx); err != nil {
			log.Fatal("failed to initialize MongoDB:", err)
		}
		index = repositories.NewMongoTopicIndexStore(db.Database())
		articles = repositories.NewMongoArticleStore(db.Database())
		health = func(ctx context.Context) error {
			return db.Database().RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
		}
	default:
		index = repositories.NewFileTopicIndexStore(cfg.Storage.CacheDir, cfg.Storage.Strict)
		articles = repositories.NewFileArticleStore(cfg.Storage.CacheDir, cfg.Storage.Strict)
	}

	topics := services.NewTopicService(
		services.NewArticleCache(index, articles),
		services.NewVersionManager(index),
	)

	r := router.New(topics, health)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal("failed to start api server:", err)
	}
}
