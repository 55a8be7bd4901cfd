package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"kona/config"
	"kona/db"
	"kona/kafka"
	"kona/models"
	"kona/repositories"
	"kona/services"
	"kona/similarity"
)

// Submission 은 생성 파이프라인이 넘겨주는 판정 요청 한 건이다.
type Submission struct {
	Candidate models.CandidateTopic `json:"candidate"`
	Article   models.ArticleData    `json:"article"`
}

func main() {
	inDir := flag.String("in", "incoming", "directory of submission JSON files")
	flag.Parse()

	config.InitApp()
	cfg := config.GetConfig()

	ctx := context.Background()

	var index repositories.TopicIndexStore
	var articles repositories.ArticleStore
	switch cfg.Storage.Backend {
	case "mongo":
		if err := db.Init(ctx); err != nil {
			log.Fatal("failed to initialize MongoDB:", err)
		}
		index = repositories.NewMongoTopicIndexStore(db.Database())
		articles = repositories.NewMongoArticleStore(db.Database())
	default:
		index = repositories.NewFileTopicIndexStore(cfg.Storage.CacheDir, cfg.Storage.Strict)
		articles = repositories.NewFileArticleStore(cfg.Storage.CacheDir, cfg.Storage.Strict)
	}

	var producer kafka.Producer = kafka.NopProducer{}
	if cfg.Events.Enabled {
		kafkaConfig := kafka.NewConfig()
		if err := kafka.CreateTopicsIfNotExists(kafkaConfig); err != nil {
			log.Fatal("failed to create kafka topics:", err)
		}
		p, err := kafka.NewProducer(kafkaConfig)
		if err != nil {
			log.Fatal("failed to create kafka producer:", err)
		}
		producer = p
	}
	defer producer.Close()

	extractor := similarity.NewRuleBasedExtractor()
	engine := services.NewEngine(
		services.NewResolver(index, extractor, cfg.Similarity),
		services.NewEvaluator(extractor, cfg.UpdatePolicy),
		services.NewVersionManager(index),
		services.NewArticleCache(index, articles),
		services.NewEventService(producer),
	)

	if err := run(ctx, engine, *inDir); err != nil {
		log.Fatal(err)
	}
}

// run 은 제출 디렉토리의 JSON 파일을 이름순으로 하나씩 판정한다.
// 처리에 성공한 파일은 .done 접미사로 이름을 바꿔 재처리를 막는다.
func run(ctx context.Context, engine *services.Engine, inDir string) error {
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return fmt.Errorf("failed to read submission dir %s: %w", inDir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	if len(files) == 0 {
		config.Logger.Info("처리할 제출 파일이 없습니다")
		return nil
	}

	for _, name := range files {
		path := filepath.Join(inDir, name)

		data, err := os.ReadFile(path)
		if err != nil {
			config.Logger.Errorf("제출 파일 읽기 실패 %s: %v", name, err)
			continue
		}

		var sub Submission
		if err := json.Unmarshal(data, &sub); err != nil {
			config.Logger.Errorf("제출 파일 파싱 실패 %s: %v", name, err)
			continue
		}

		verdict, err := engine.Process(ctx, sub.Candidate, sub.Article)
		if err != nil {
			config.Logger.Errorf("판정 실패 %s: %v", name, err)
			continue
		}

		config.Logger.Infof("판정 완료 %s: action=%s topic=%s v%d", name, verdict.Action, verdict.TopicID, verdict.Version)
		if err := os.Rename(path, path+".done"); err != nil {
			config.Logger.Warnf("처리 완료 표시 실패 %s: %v", name, err)
		}
	}

	return nil
}
