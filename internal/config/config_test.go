package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	// 清除环境变量
	os.Clearenv()

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// 验证默认值
	assert.Equal(t, "", cfg.Crisis.Catalog.IndicatorsPath)
	assert.Equal(t, "", cfg.Crisis.Catalog.ProtocolsPath)
	assert.Equal(t, 8, cfg.Crisis.Recommendation.TopN)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	// 设置环境变量
	os.Setenv("CATALOG_INDICATORS_PATH", "/etc/crisis/indicators.yaml")
	os.Setenv("CATALOG_PROTOCOLS_PATH", "/etc/crisis/protocols.yaml")
	os.Setenv("RECOMMENDATION_TOP_N", "5")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// 验证环境变量覆盖
	assert.Equal(t, "/etc/crisis/indicators.yaml", cfg.Crisis.Catalog.IndicatorsPath)
	assert.Equal(t, "/etc/crisis/protocols.yaml", cfg.Crisis.Catalog.ProtocolsPath)
	assert.Equal(t, 5, cfg.Crisis.Recommendation.TopN)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	// 清理环境变量
	os.Clearenv()
}

func TestGetEnvInt_InvalidValue(t *testing.T) {
	os.Setenv("RECOMMENDATION_TOP_N", "not-a-number")
	defer os.Unsetenv("RECOMMENDATION_TOP_N")

	cfg, err := Load()
	require.NoError(t, err)

	// 非法数值回退默认值
	assert.Equal(t, 8, cfg.Crisis.Recommendation.TopN)
}

func TestGetEnv(t *testing.T) {
	// 测试默认值
	os.Clearenv()
	value := getEnv("TEST_KEY", "default-value")
	assert.Equal(t, "default-value", value)

	// 测试环境变量存在
	os.Setenv("TEST_KEY", "env-value")
	value = getEnv("TEST_KEY", "default-value")
	assert.Equal(t, "env-value", value)

	// 清理
	os.Unsetenv("TEST_KEY")
}
