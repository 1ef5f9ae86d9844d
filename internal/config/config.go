package config

import (
	"os"
	"strconv"
)

// Config 危机评估服务配置
type Config struct {
	// 危机引擎特定配置
	Crisis struct {
		// 目录定义文件（为空时使用内置定义集）
		Catalog struct {
			IndicatorsPath string // 指标定义 YAML 路径
			ProtocolsPath  string // 协议定义 YAML 路径
		}

		// 建议列表配置
		Recommendation struct {
			TopN int // 建议列表展示上限，默认 8
		}
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load 加载配置
func Load() (*Config, error) {
	cfg := &Config{}

	// 从环境变量加载（默认值）
	cfg.Crisis.Catalog.IndicatorsPath = getEnv("CATALOG_INDICATORS_PATH", "")
	cfg.Crisis.Catalog.ProtocolsPath = getEnv("CATALOG_PROTOCOLS_PATH", "")
	cfg.Crisis.Recommendation.TopN = getEnvInt("RECOMMENDATION_TOP_N", 8)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
