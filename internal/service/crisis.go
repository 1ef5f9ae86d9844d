package service

import (
	"fmt"

	"wisefido-crisis/internal/catalog"
	"wisefido-crisis/internal/config"
	"wisefido-crisis/internal/escalation"
	"wisefido-crisis/internal/models"
	"wisefido-crisis/internal/protocol"
	"wisefido-crisis/internal/safetyplan"
	"wisefido-crisis/internal/scorer"
	"wisefido-crisis/internal/trend"

	"go.uber.org/zap"
)

// CrisisService 危机评估服务层
// 职责：
// 1. 入参业务规则验证
// 2. 编排评分器/协议选择器/升级监控器/走势分析器/安全计划生成器
// 3. 维护评估谱系（追加历史与状态流转）
// 目录在进程启动时注入，服务本身无全局状态，可在测试中替换目录。
type CrisisService struct {
	indicators *catalog.IndicatorCatalog
	protocols  *catalog.ProtocolCatalog
	scorer     *scorer.RiskScorer
	selector   *protocol.Selector
	monitor    *escalation.Monitor
	analyzer   *trend.Analyzer
	generator  *safetyplan.Generator
	history    *AssessmentHistory
	logger     *zap.Logger
}

// NewCrisisService 创建危机评估服务
func NewCrisisService(
	cfg *config.Config,
	indicators *catalog.IndicatorCatalog,
	protocols *catalog.ProtocolCatalog,
	logger *zap.Logger,
) *CrisisService {
	selector := protocol.NewSelector(protocols, logger)
	riskScorer := scorer.NewRiskScorer(indicators, selector, cfg.Crisis.Recommendation.TopN, logger)

	return &CrisisService{
		indicators: indicators,
		protocols:  protocols,
		scorer:     riskScorer,
		selector:   selector,
		monitor:    escalation.NewMonitor(riskScorer, selector, logger),
		analyzer:   trend.NewAnalyzer(),
		generator:  safetyplan.NewGenerator(logger),
		history:    NewAssessmentHistory(),
		logger:     logger,
	}
}

// Assess 对用户上下文评分并追加到评估历史
// 业务规则：
// - user_id 必填
// - 上下文可以为空（得到低置信度 minimal 结果），不视为错误
func (s *CrisisService) Assess(userID string, ctx *models.ContextSnapshot) (*models.Assessment, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	assessment := s.scorer.Score(userID, ctx)
	if err := s.history.Append(assessment); err != nil {
		return nil, fmt.Errorf("failed to append assessment: %w", err)
	}

	return assessment, nil
}

// SelectProtocol 按风险等级选择干预协议（全函数）
func (s *CrisisService) SelectProtocol(level models.RiskLevel) models.Protocol {
	return s.selector.Select(level)
}

// CheckEscalation 检查用户最近的评估在新上下文下是否需要升级
// 判定为升级时：
// - 既有评估标记为 escalated（成为历史记录）
// - 追加一条新的更高等级评估（等级不低于既有等级的下一级，永不自动降级）
// 未升级时既有评估进入 monitored 状态。
// 返回判定决策与升级后追加的新评估（未升级时为 nil）。
func (s *CrisisService) CheckEscalation(userID string, ctx *models.ContextSnapshot) (escalation.Decision, *models.Assessment, error) {
	if userID == "" {
		return escalation.Decision{}, nil, fmt.Errorf("user_id is required")
	}

	current, ok := s.history.Latest(userID)
	if !ok {
		return escalation.Decision{}, nil, fmt.Errorf("no existing assessment for user %s", userID)
	}

	decision := s.monitor.Evaluate(current, ctx)

	if !decision.Escalate {
		if current.Status == models.AssessmentStatusNew {
			if err := s.history.UpdateStatus(userID, current.AssessmentID, models.AssessmentStatusMonitored); err != nil {
				s.logger.Warn("Failed to mark assessment as monitored",
					zap.String("assessment_id", current.AssessmentID),
					zap.Error(err),
				)
			}
		}
		return decision, nil, nil
	}

	escalated := s.buildEscalatedAssessment(current, decision)

	if current.Status != models.AssessmentStatusEscalated && current.Status != models.AssessmentStatusResolved {
		if err := s.history.UpdateStatus(userID, current.AssessmentID, models.AssessmentStatusEscalated); err != nil {
			s.logger.Warn("Failed to mark assessment as escalated",
				zap.String("assessment_id", current.AssessmentID),
				zap.Error(err),
			)
		}
	}
	if err := s.history.Append(escalated); err != nil {
		return decision, nil, fmt.Errorf("failed to append escalated assessment: %w", err)
	}

	s.logger.Warn("Assessment escalated",
		zap.String("user_id", userID),
		zap.String("previous_assessment_id", current.AssessmentID),
		zap.String("new_assessment_id", escalated.AssessmentID),
		zap.String("previous_level", string(current.RiskLevel)),
		zap.String("new_level", string(escalated.RiskLevel)),
		zap.String("reason", decision.Reason),
	)

	return decision, escalated, nil
}

// buildEscalatedAssessment 基于重评结果生成升级后的新评估
// 等级单调性：新等级取 max(重评等级, 既有等级的下一级)；
// 等级被抬升时，按抬升后等级的协议重建建议列表头部。
func (s *CrisisService) buildEscalatedAssessment(current *models.Assessment, decision escalation.Decision) *models.Assessment {
	escalated := *decision.Reassessment
	escalated.RiskLevel = models.MaxRiskLevel(decision.Reassessment.RiskLevel, current.RiskLevel.NextRiskLevel())
	escalated.Status = models.AssessmentStatusNew

	if escalated.RiskLevel != decision.Reassessment.RiskLevel {
		selected := s.selector.Select(escalated.RiskLevel)
		merged := make([]string, 0, len(escalated.Recommendations)+len(selected.ImmediateActions)+1)
		seen := make(map[string]bool)
		appendUnique := func(item string) {
			if item == "" || seen[item] {
				return
			}
			seen[item] = true
			merged = append(merged, item)
		}
		appendUnique(selected.Guidance)
		for _, action := range selected.ImmediateActions {
			appendUnique(action)
		}
		for _, rec := range escalated.Recommendations {
			appendUnique(rec)
		}
		escalated.Recommendations = merged
	}

	return &escalated
}

// AnalyzeTrend 分析情绪走势（供仪表盘/洞察功能使用）
func (s *CrisisService) AnalyzeTrend(ctx *models.ContextSnapshot) models.TrendDescriptor {
	return s.analyzer.Analyze(ctx)
}

// GenerateSafetyPlan 生成个性化安全计划
// 协议取用户最近评估的等级；无评估历史时使用 minimal 兜底协议。
func (s *CrisisService) GenerateSafetyPlan(userID string, ctx *models.ContextSnapshot) (*models.SafetyPlan, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	level := models.RiskLevelMinimal
	if latest, ok := s.history.Latest(userID); ok {
		level = latest.RiskLevel
	}

	return s.generator.Generate(userID, ctx, s.selector.Select(level)), nil
}

// Resolve 关闭评估（由外部专业复核流程触发）
func (s *CrisisService) Resolve(userID, assessmentID string) error {
	if userID == "" {
		return fmt.Errorf("user_id is required")
	}
	if assessmentID == "" {
		return fmt.Errorf("assessment_id is required")
	}

	if err := s.history.UpdateStatus(userID, assessmentID, models.AssessmentStatusResolved); err != nil {
		return fmt.Errorf("failed to resolve assessment: %w", err)
	}

	s.logger.Info("Assessment resolved",
		zap.String("user_id", userID),
		zap.String("assessment_id", assessmentID),
	)
	return nil
}

// History 返回用户的评估历史（按时间顺序）
func (s *CrisisService) History(userID string) []*models.Assessment {
	return s.history.List(userID)
}
