package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging      LoggingConfig      `yaml:"logging"`
	Storage      StorageConfig      `yaml:"storage"`
	Similarity   SimilarityConfig   `yaml:"similarity"`
	UpdatePolicy UpdatePolicyConfig `yaml:"update_policy"`
	Events       EventsConfig       `yaml:"events"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// StorageConfig 는 토픽 인덱스/기사 저장소 설정이다.
// Backend 는 "file"(기본) 또는 "mongo" 를 지원한다.
type StorageConfig struct {
	Backend  string `yaml:"backend"`
	CacheDir string `yaml:"cache_dir"`

	// Strict 가 true 이면 손상된 저장 파일을 만났을 때 빈 저장소로
	// 대체하지 않고 오류를 반환한다. 기본값(false)은 가용성을 우선한다.
	Strict bool `yaml:"strict"`

	MongoURI    string `yaml:"mongo_uri"`
	MongoDBName string `yaml:"mongo_db_name"`
}

// SimilarityConfig 는 유사도 판단에 쓰는 가중치와 임계값을 정의한다.
// 두 가지 가중치 변형을 모두 설정으로 노출한다:
//   - Entity/Keyword/TitleWord: 개체 중심 가중치 (진단용 종합 점수)
//   - CacheTitle/CacheKeyword: 캐시 재사용 판단용 가중치
type SimilarityConfig struct {
	EntityWeight    float64 `yaml:"entity_weight"`
	KeywordWeight   float64 `yaml:"keyword_weight"`
	TitleWordWeight float64 `yaml:"title_word_weight"`

	CacheTitleWeight   float64 `yaml:"cache_title_weight"`
	CacheKeywordWeight float64 `yaml:"cache_keyword_weight"`

	Threshold float64 `yaml:"threshold"`
}

// UpdatePolicyConfig 는 기사 업데이트/재생성 판단 기준을 정의한다.
type UpdatePolicyConfig struct {
	// StaleHours 를 초과해 경과한 기사는 내용과 무관하게 업데이트 사유가 된다.
	StaleHours int `yaml:"stale_hours"`

	// RegenerateHours 는 마지막 갱신 이후 재생성까지의 허용 시간이다.
	RegenerateHours int `yaml:"regenerate_hours"`

	// SignificantUpdates 회 이상 실질 업데이트가 누적되면 재생성 대상이 된다.
	SignificantUpdates int `yaml:"significant_updates"`
}

// EventsConfig 는 판정 결과 이벤트 발행 여부를 제어한다.
// Kafka 브로커 주소 등은 환경변수로 관리한다 (kafka 패키지 참조).
type EventsConfig struct {
	Enabled bool `yaml:"enabled"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	applyDefaults(&c)
	config = &c

	initLogger(c.Logging.Level)
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

// SetConfigForTest 는 테스트에서 설정 파일 없이 설정을 주입하기 위한 헬퍼다.
func SetConfigForTest(c AppConfig) {
	applyDefaults(&c)
	config = &c
}

func applyDefaults(c *AppConfig) {
	if c.Storage.Backend == "" {
		c.Storage.Backend = "file"
	}
	if c.Storage.CacheDir == "" {
		c.Storage.CacheDir = "cache/articles"
	}
	if c.Similarity.EntityWeight == 0 && c.Similarity.KeywordWeight == 0 && c.Similarity.TitleWordWeight == 0 {
		c.Similarity.EntityWeight = 0.5
		c.Similarity.KeywordWeight = 0.3
		c.Similarity.TitleWordWeight = 0.2
	}
	if c.Similarity.CacheTitleWeight == 0 && c.Similarity.CacheKeywordWeight == 0 {
		c.Similarity.CacheTitleWeight = 0.3
		c.Similarity.CacheKeywordWeight = 0.7
	}
	if c.Similarity.Threshold == 0 {
		c.Similarity.Threshold = 0.7
	}
	if c.UpdatePolicy.StaleHours == 0 {
		c.UpdatePolicy.StaleHours = 24
	}
	if c.UpdatePolicy.RegenerateHours == 0 {
		c.UpdatePolicy.RegenerateHours = 6
	}
	if c.UpdatePolicy.SignificantUpdates == 0 {
		c.UpdatePolicy.SignificantUpdates = 3
	}
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
