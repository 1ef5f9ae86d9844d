package scorer

import (
	"sort"
	"time"

	"wisefido-crisis/internal/catalog"
	"wisefido-crisis/internal/evaluator"
	"wisefido-crisis/internal/models"
	"wisefido-crisis/internal/protocol"
	"wisefido-crisis/internal/trend"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 风险等级判定阈值（降序评估）
const (
	criticalThreshold = 0.95
	highThreshold     = 0.80
	mediumThreshold   = 0.60
	lowThreshold      = 0.30
)

// 置信度计算参数
const (
	confidenceBase          = 0.5
	confidenceCap           = 0.95
	indicatorBonusPerActive = 0.1
	indicatorBonusCap       = 0.3
	recentDataBonusPartial  = 0.1 // 有任意情绪历史
	recentDataBonusFull     = 0.2 // 有完整分析窗口（>= 7 点）
	diversityBonusPerFamily = 0.05
	diversityBonusCap       = 0.2
)

// RiskScorer 风险评分器
// 职责：
// 1. 批量评估目录内全部指标，收集活跃集合（单指标故障剔除，不中断）
// 2. 计算综合得分、风险等级与置信度
// 3. 生成有界去重的建议列表
// 4. 产出不可变的 Assessment
// 评分是纯函数：同一上下文两次评分得到相同的得分/等级/活跃集合。
type RiskScorer struct {
	indicators *catalog.IndicatorCatalog
	evaluator  *evaluator.IndicatorEvaluator
	selector   *protocol.Selector
	analyzer   *trend.Analyzer
	topN       int
	logger     *zap.Logger
	now        func() time.Time
}

// NewRiskScorer 创建风险评分器
// topN 为建议列表的展示上限，<= 0 时使用默认值 8
func NewRiskScorer(
	indicators *catalog.IndicatorCatalog,
	selector *protocol.Selector,
	topN int,
	logger *zap.Logger,
) *RiskScorer {
	if topN <= 0 {
		topN = 8
	}
	return &RiskScorer{
		indicators: indicators,
		evaluator:  evaluator.NewIndicatorEvaluator(logger),
		selector:   selector,
		analyzer:   trend.NewAnalyzer(),
		topN:       topN,
		logger:     logger,
		now:        time.Now,
	}
}

// Score 对上下文快照评分，产出 Assessment（全函数，永不失败）
// 空上下文得到 score=0、level=minimal 的低置信度结果，而不是错误。
func (s *RiskScorer) Score(userID string, ctx *models.ContextSnapshot) *models.Assessment {
	var (
		activeIDs   []string
		matched     = make(map[string]string)
		weightSum   float64
		activeCount int
		activeTags  []string
	)

	// 逐个评估指标；单指标故障记录后剔除，评分继续
	for _, indicator := range s.indicators.All() {
		result, err := s.evaluator.Evaluate(indicator, ctx)
		if err != nil {
			s.logger.Error("Indicator evaluation fault, excluding from active set",
				zap.String("indicator_id", indicator.ID),
				zap.Any("signals", indicatorSignalValues(indicator, ctx)),
				zap.Error(err),
			)
			continue
		}
		if !result.Triggered {
			continue
		}

		activeIDs = append(activeIDs, indicator.ID)
		matched[indicator.ID] = result.MatchedPredicateID
		weightSum += indicator.RiskWeight
		activeCount++
		activeTags = append(activeTags, indicator.InterventionTags...)
	}
	sort.Strings(activeIDs)

	score := compositeScore(weightSum, activeCount)
	level := LevelForScore(score)
	selected := s.selector.Select(level)
	trendDescriptor := s.analyzer.Analyze(ctx)

	assessment := &models.Assessment{
		AssessmentID:       uuid.New().String(),
		UserID:             userID,
		RiskLevel:          level,
		RiskScore:          score,
		ActiveIndicatorIDs: activeIDs,
		MatchedPredicates:  matched,
		RiskTrend:          trendDescriptor.Direction,
		Recommendations:    s.buildRecommendations(selected, activeTags),
		Confidence:         s.confidence(activeCount, ctx),
		Status:             models.AssessmentStatusNew,
		Timestamp:          s.now(),
	}

	s.logger.Info("Risk assessment produced",
		zap.String("assessment_id", assessment.AssessmentID),
		zap.String("user_id", userID),
		zap.String("risk_level", string(level)),
		zap.Float64("risk_score", score),
		zap.Int("active_indicators", activeCount),
		zap.Float64("confidence", assessment.Confidence),
	)

	return assessment
}

// LevelForScore 得分 → 风险等级（降序阈值判定）
func LevelForScore(score float64) models.RiskLevel {
	switch {
	case score >= criticalThreshold:
		return models.RiskLevelCritical
	case score >= highThreshold:
		return models.RiskLevelHigh
	case score >= mediumThreshold:
		return models.RiskLevelMedium
	case score >= lowThreshold:
		return models.RiskLevelLow
	default:
		return models.RiskLevelMinimal
	}
}

// compositeScore 综合得分 = 活跃指标权重和 / 活跃指标数，截断到 [0,1]
// 活跃集合为空时得分为 0
func compositeScore(weightSum float64, activeCount int) float64 {
	if activeCount == 0 {
		return 0.0
	}
	score := weightSum / float64(activeCount)
	if score < 0.0 {
		return 0.0
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}

// confidence 置信度 = 基础 0.5 + 指标数加成 + 近期数据加成 + 数据来源多样性加成
// 硬上限 0.95
func (s *RiskScorer) confidence(activeCount int, ctx *models.ContextSnapshot) float64 {
	confidence := confidenceBase

	indicatorBonus := indicatorBonusPerActive * float64(activeCount)
	if indicatorBonus > indicatorBonusCap {
		indicatorBonus = indicatorBonusCap
	}
	confidence += indicatorBonus

	if ctx != nil {
		if len(ctx.MoodHistory) >= 7 {
			confidence += recentDataBonusFull
		} else if len(ctx.MoodHistory) > 0 {
			confidence += recentDataBonusPartial
		}

		diversityBonus := diversityBonusPerFamily * float64(ctx.PopulatedSignalFamilies())
		if diversityBonus > diversityBonusCap {
			diversityBonus = diversityBonusCap
		}
		confidence += diversityBonus
	}

	if confidence > confidenceCap {
		confidence = confidenceCap
	}
	return confidence
}

// buildRecommendations 生成建议列表
// 顺序：协议指引文本 → 协议即时行动 → 活跃指标的干预标签；去重后截断到 topN
func (s *RiskScorer) buildRecommendations(selected models.Protocol, activeTags []string) []string {
	seen := make(map[string]bool)
	recommendations := make([]string, 0, s.topN)

	appendUnique := func(item string) {
		if item == "" || seen[item] || len(recommendations) >= s.topN {
			return
		}
		seen[item] = true
		recommendations = append(recommendations, item)
	}

	appendUnique(selected.Guidance)
	for _, action := range selected.ImmediateActions {
		appendUnique(action)
	}
	for _, tag := range activeTags {
		appendUnique(tag)
	}

	return recommendations
}

// indicatorSignalValues 收集指标涉及的信号当前值（故障日志可复现用）
func indicatorSignalValues(indicator models.Indicator, ctx *models.ContextSnapshot) map[string]interface{} {
	values := make(map[string]interface{})
	for _, p := range indicator.Predicates {
		if p.Signal == "" {
			continue
		}
		if v, ok := ctx.NumericSignal(p.Signal); ok {
			values[p.Signal] = v
			continue
		}
		if v, ok := ctx.FlagSignal(p.Signal); ok {
			values[p.Signal] = v
			continue
		}
		if v := ctx.ListSignal(p.Signal); v != nil {
			values[p.Signal] = v
			continue
		}
		values[p.Signal] = nil
	}
	return values
}
