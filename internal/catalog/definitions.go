package catalog

import (
	"embed"
	"fmt"
	"os"

	"wisefido-crisis/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed definitions/*.yaml
var definitionFS embed.FS

// indicatorFile 指标定义文件结构
type indicatorFile struct {
	Indicators []models.Indicator `yaml:"indicators"`
}

// protocolFile 协议定义文件结构
type protocolFile struct {
	Protocols []models.Protocol `yaml:"protocols"`
}

// LoadDefaultIndicators 加载内置指标目录
func LoadDefaultIndicators() (*IndicatorCatalog, error) {
	data, err := definitionFS.ReadFile("definitions/indicators.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded indicator definitions: %w", err)
	}
	return parseIndicators(data)
}

// LoadDefaultProtocols 加载内置协议目录
func LoadDefaultProtocols() (*ProtocolCatalog, error) {
	data, err := definitionFS.ReadFile("definitions/protocols.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded protocol definitions: %w", err)
	}
	return parseProtocols(data)
}

// LoadIndicatorsFromFile 从外部 YAML 文件加载指标目录（部署侧覆盖内置定义用）
func LoadIndicatorsFromFile(path string) (*IndicatorCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read indicator definitions %s: %w", path, err)
	}
	return parseIndicators(data)
}

// LoadProtocolsFromFile 从外部 YAML 文件加载协议目录
func LoadProtocolsFromFile(path string) (*ProtocolCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read protocol definitions %s: %w", path, err)
	}
	return parseProtocols(data)
}

func parseIndicators(data []byte) (*IndicatorCatalog, error) {
	var file indicatorFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, configErrorf("", "failed to parse indicator definitions: %v", err)
	}
	if len(file.Indicators) == 0 {
		return nil, configErrorf("", "indicator definition set is empty")
	}
	return NewIndicatorCatalog(file.Indicators)
}

func parseProtocols(data []byte) (*ProtocolCatalog, error) {
	var file protocolFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, configErrorf("", "failed to parse protocol definitions: %v", err)
	}
	if len(file.Protocols) == 0 {
		return nil, configErrorf("", "protocol definition set is empty")
	}
	return NewProtocolCatalog(file.Protocols)
}
