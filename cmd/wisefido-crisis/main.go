package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"wisefido-crisis/internal/catalog"
	"wisefido-crisis/internal/config"
	"wisefido-crisis/internal/logger"
	"wisefido-crisis/internal/models"
	"wisefido-crisis/internal/service"

	"go.uber.org/zap"
)

// assessmentRequest 一次评估请求（文件或标准输入的 JSON 文档）
type assessmentRequest struct {
	UserID  string                  `json:"user_id"`
	Context *models.ContextSnapshot `json:"context"`
}

// assessmentReport 评估结果报告（写到标准输出）
type assessmentReport struct {
	Assessment *models.Assessment     `json:"assessment"`
	Trend      models.TrendDescriptor `json:"trend"`
	SafetyPlan *models.SafetyPlan     `json:"safety_plan"`
}

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. 初始化日志
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "wisefido-crisis")
	if err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer log.Sync()

	// 3. 构建目录（配置错误为致命错误，阻止服务启动）
	indicators, protocols, err := loadCatalogs(cfg)
	if err != nil {
		log.Fatal("Failed to build catalogs",
			zap.Error(err),
		)
	}
	log.Info("Catalogs loaded",
		zap.Int("indicators", indicators.Len()),
		zap.Int("protocols", len(protocols.All())),
	)

	// 4. 创建服务
	crisisService := service.NewCrisisService(cfg, indicators, protocols, log)

	// 5. 读取评估请求（参数为文件路径，缺省读标准输入）
	request, err := readRequest(os.Args[1:])
	if err != nil {
		log.Fatal("Failed to read assessment request",
			zap.Error(err),
		)
	}

	// 6. 评估：评分 → 走势 → 安全计划
	assessment, err := crisisService.Assess(request.UserID, request.Context)
	if err != nil {
		log.Fatal("Assessment failed",
			zap.String("user_id", request.UserID),
			zap.Error(err),
		)
	}

	plan, err := crisisService.GenerateSafetyPlan(request.UserID, request.Context)
	if err != nil {
		log.Fatal("Safety plan generation failed",
			zap.String("user_id", request.UserID),
			zap.Error(err),
		)
	}

	report := assessmentReport{
		Assessment: assessment,
		Trend:      crisisService.AnalyzeTrend(request.Context),
		SafetyPlan: plan,
	}

	// 7. 输出报告
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		log.Fatal("Failed to encode report",
			zap.Error(err),
		)
	}
}

// loadCatalogs 构建指标/协议目录（支持外部定义文件覆盖内置定义）
func loadCatalogs(cfg *config.Config) (*catalog.IndicatorCatalog, *catalog.ProtocolCatalog, error) {
	var (
		indicators *catalog.IndicatorCatalog
		protocols  *catalog.ProtocolCatalog
		err        error
	)

	if path := cfg.Crisis.Catalog.IndicatorsPath; path != "" {
		indicators, err = catalog.LoadIndicatorsFromFile(path)
	} else {
		indicators, err = catalog.LoadDefaultIndicators()
	}
	if err != nil {
		return nil, nil, err
	}

	if path := cfg.Crisis.Catalog.ProtocolsPath; path != "" {
		protocols, err = catalog.LoadProtocolsFromFile(path)
	} else {
		protocols, err = catalog.LoadDefaultProtocols()
	}
	if err != nil {
		return nil, nil, err
	}

	return indicators, protocols, nil
}

// readRequest 读取评估请求
func readRequest(args []string) (*assessmentRequest, error) {
	var data []byte
	var err error

	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read request file %s: %w", args[0], err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read request from stdin: %w", err)
		}
	}

	var request assessmentRequest
	if err := json.Unmarshal(data, &request); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	if request.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	return &request, nil
}
