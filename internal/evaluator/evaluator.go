package evaluator

import (
	"fmt"

	"wisefido-crisis/internal/models"

	"go.uber.org/zap"
)

// Result 单个指标的评估结果
type Result struct {
	Triggered          bool   // 指标是否触发
	MatchedPredicateID string // 命中的谓词 id（审计/可解释性用）
}

// IndicatorEvaluator 风险指标评估器
// 按指标的检测规则逐个评估谓词（OR 组合，首个命中生效）。
// 单个指标内部的评估故障在本层吸收并转为错误返回，由调用方决定剔除。
type IndicatorEvaluator struct {
	logger *zap.Logger
}

// NewIndicatorEvaluator 创建指标评估器
func NewIndicatorEvaluator(logger *zap.Logger) *IndicatorEvaluator {
	return &IndicatorEvaluator{
		logger: logger,
	}
}

// Evaluate 评估单个指标
// 返回指标是否触发以及命中的谓词 id；谓词定义畸形或评估过程 panic 时
// 返回错误（EvaluationFault），调用方将该指标从活跃集合中剔除。
func (e *IndicatorEvaluator) Evaluate(indicator models.Indicator, ctx *models.ContextSnapshot) (result Result, err error) {
	// 单指标故障隔离：任何 panic 都不允许中断整次评分调用
	defer func() {
		if r := recover(); r != nil {
			result = Result{}
			err = fmt.Errorf("predicate evaluation panicked: %v", r)
		}
	}()

	for _, p := range indicator.Predicates {
		matched, perr := evaluatePredicate(p, ctx)
		if perr != nil {
			return Result{}, fmt.Errorf("indicator %s predicate %s: %w", indicator.ID, p.ID, perr)
		}
		if matched {
			e.logger.Debug("Indicator triggered",
				zap.String("indicator_id", indicator.ID),
				zap.String("predicate_id", p.ID),
				zap.String("signal", p.Signal),
			)
			return Result{
				Triggered:          true,
				MatchedPredicateID: p.ID,
			}, nil
		}
	}

	return Result{}, nil
}
